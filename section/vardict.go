package section

import (
	"strings"

	"github.com/go-ibt/ibt/endian"
	"github.com/go-ibt/ibt/errs"
	"github.com/go-ibt/ibt/internal/collision"
	"github.com/go-ibt/ibt/internal/hash"
)

// VarDict is the immutable, ordered variable dictionary decoded from a
// file's VarHeader array. Lookups are case-insensitive; on a duplicate
// name the first VarHeader wins and later ones are reported as
// warnings rather than overwriting it.
type VarDict struct {
	vars     []VarHeader
	byLower  map[string]int
	warnings []collision.Warning
}

// ParseVarDict decodes NumVars VarHeader entries starting at
// VarHeaderOffset and builds the case-insensitive name index.
func ParseVarDict(engine endian.EndianEngine, data []byte, h FileHeader) (VarDict, error) {
	d := VarDict{
		vars:    make([]VarHeader, 0, h.NumVars),
		byLower: make(map[string]int, h.NumVars),
	}

	tracker := collision.NewTracker()
	off := int(h.VarHeaderOffset)

	for i := 0; i < int(h.NumVars); i++ {
		vh, err := ParseVarHeader(engine, data, off+i*VarHeaderSize, h.BufLen)
		if err != nil {
			return d, errs.WithIndex(err, i)
		}

		d.vars = append(d.vars, vh)

		lower := strings.ToLower(vh.Name)
		if tracker.Track(lower, i) {
			d.byLower[lower] = i
		}
	}

	d.warnings = tracker.Warnings()

	return d, nil
}

// Len returns the number of variables in the dictionary.
func (d VarDict) Len() int {
	return len(d.vars)
}

// All returns the ordered VarHeader slice backing the dictionary. The
// slice must not be mutated by callers.
func (d VarDict) All() []VarHeader {
	return d.vars
}

// Index returns the VarHeader index for name, case-insensitively, and
// false if no variable resolves to that name.
func (d VarDict) Index(name string) (int, bool) {
	i, ok := d.byLower[strings.ToLower(name)]
	return i, ok
}

// Get returns the VarHeader for name, case-insensitively.
func (d VarDict) Get(name string) (VarHeader, bool) {
	i, ok := d.Index(name)
	if !ok {
		return VarHeader{}, false
	}

	return d.vars[i], true
}

// Warnings returns the duplicate-name warnings collected while building
// the dictionary, in VarHeader order.
func (d VarDict) Warnings() []collision.Warning {
	return d.warnings
}

// Fingerprint returns a 64-bit xxHash of the dictionary's case-folded
// names, in dictionary order, so reordering the names changes it. Two
// dictionaries with matching fingerprints map every name to the same
// index, barring a hash collision; variable types, offsets and counts
// are not part of the hash.
func (d VarDict) Fingerprint() uint64 {
	var sb strings.Builder
	for _, v := range d.vars {
		sb.WriteString(strings.ToLower(v.Name))
		sb.WriteByte(0)
	}

	return hash.ID(sb.String())
}
