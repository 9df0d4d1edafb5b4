// Package collision tracks case-insensitive name collisions while
// building the variable dictionary's name-to-index map.
package collision

// Tracker records the first VarHeader index seen for each
// case-insensitive variable name and collects a warning for every
// later duplicate, instead of erroring or overwriting the first entry.
type Tracker struct {
	firstIndex map[string]int // lowercased name -> first index seen
	warnings   []Warning
}

// Warning describes a duplicate variable name encountered while
// building the dictionary. The duplicate (Index) is not reachable by
// name lookup; FirstIndex is the dictionary entry that wins the lookup.
type Warning struct {
	Name       string
	FirstIndex int
	Index      int
}

// NewTracker creates a new, empty collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		firstIndex: make(map[string]int),
	}
}

// Track records name (already lowercased by the caller) at the given
// VarHeader index. It returns true if this is the first time name has
// been seen; on a repeat, it appends a Warning and returns false.
func (t *Tracker) Track(lowerName string, index int) bool {
	if first, exists := t.firstIndex[lowerName]; exists {
		t.warnings = append(t.warnings, Warning{Name: lowerName, FirstIndex: first, Index: index})
		return false
	}

	t.firstIndex[lowerName] = index

	return true
}

// Warnings returns the duplicate-name warnings collected so far, in the
// order they were encountered.
func (t *Tracker) Warnings() []Warning {
	return t.warnings
}

// Count returns the number of distinct names tracked.
func (t *Tracker) Count() int {
	return len(t.firstIndex)
}
