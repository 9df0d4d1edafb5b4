// Package format defines the closed set of variable type tags used by
// VarHeader.Type and the byte widths they decode to.
package format

import "fmt"

// VarType is the tag for one of the six variable types a VarHeader can
// declare. The set is closed: any other value is a decode error.
type VarType int32

const (
	Char     VarType = 0 // 1 byte, ASCII character
	Bool     VarType = 1 // 1 byte, false iff the byte is 0
	Int      VarType = 2 // 4 bytes, signed two's-complement
	BitField VarType = 3 // 4 bytes, unsigned opaque bitset
	Float    VarType = 4 // 4 bytes, IEEE-754 binary32
	Double   VarType = 5 // 8 bytes, IEEE-754 binary64
)

// Width returns the byte width of one scalar element of t, and false if t
// is not one of the six known variants.
func Width(t VarType) (int, bool) {
	switch t {
	case Char, Bool:
		return 1, true
	case Int, BitField, Float:
		return 4, true
	case Double:
		return 8, true
	default:
		return 0, false
	}
}

// Valid reports whether t is one of the six known variants.
func Valid(t VarType) bool {
	_, ok := Width(t)
	return ok
}

func (t VarType) String() string {
	switch t {
	case Char:
		return "Char"
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case BitField:
		return "BitField"
	case Float:
		return "Float"
	case Double:
		return "Double"
	default:
		return fmt.Sprintf("VarType(%d)", int32(t))
	}
}
