package export

// MissingVariablePolicy controls how a projected name that does not
// resolve against the (first file's) variable dictionary is handled
// when the schema is built.
type MissingVariablePolicy int

const (
	// OnMissingDrop removes an unresolvable name from the schema
	// entirely. This is the default.
	OnMissingDrop MissingVariablePolicy = iota
	// OnMissingNullColumn keeps an unresolvable name as a column of
	// typed nulls for every row, in every file.
	OnMissingNullColumn
)

// Projection is a caller-supplied ordered list of variable names,
// resolved case-insensitively against a file's dictionary. A nil or
// empty Projection with Options.IncludeAll unset selects the built-in
// default ML roster (see DefaultRoster).
type Projection []string

// Options controls projection resolution and schema construction. The
// zero value is valid and behaves as OnMissingDrop with no IncludeAll.
type Options struct {
	// IncludeAll, when true, ignores the supplied Projection and
	// projects every variable in the first file's dictionary, in
	// dictionary order.
	IncludeAll bool
	// OnMissingVariable controls how a name that fails to resolve is
	// treated when the schema is built.
	OnMissingVariable MissingVariablePolicy
}

// DefaultOptions returns the zero-value Options: explicit or default
// projection, unresolved names dropped.
func DefaultOptions() Options {
	return Options{}
}

// ProgressFunc is called once per completed file during Multi, after
// that file's rows have been merged into the writer.
type ProgressFunc func(current, total int, name string)
