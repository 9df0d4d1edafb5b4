package section

import (
	"github.com/go-ibt/ibt/binio"
	"github.com/go-ibt/ibt/endian"
	"github.com/go-ibt/ibt/errs"
	"github.com/go-ibt/ibt/format"
)

// VarHeader describes one variable's layout within a sample frame: its
// type, its byte offset within the frame, its array arity, and its
// fixed-length name/description/unit strings. Exactly VarHeaderSize (144)
// bytes on disk.
type VarHeader struct {
	// Type is the tag for one of the six closed variable types.
	Type format.VarType
	// Offset is the byte position of the value within a sample frame.
	Offset int32
	// Count is the array arity; Count >= 1.
	Count int32
	// CountAsTime is a source-defined flag, stored verbatim.
	CountAsTime bool
	Name        string
	Description string
	Unit        string
}

// ParseVarHeader decodes one 144-byte VarHeader at off within data and
// validates it against bufLen, the byte width of the sample frame it
// will be read from.
func ParseVarHeader(engine endian.EndianEngine, data []byte, off int, bufLen int32) (VarHeader, error) {
	var h VarHeader

	if off < 0 || off+VarHeaderSize > len(data) {
		return h, errs.ErrTruncated
	}

	typ, err := binio.ReadI32(engine, data, off+0)
	if err != nil {
		return h, err
	}
	offset, err := binio.ReadI32(engine, data, off+4)
	if err != nil {
		return h, err
	}
	count, err := binio.ReadI32(engine, data, off+8)
	if err != nil {
		return h, err
	}
	countAsTime, err := binio.ReadU8(data, off+12)
	if err != nil {
		return h, err
	}
	// off+13..off+16 is 3 bytes of struct padding, skipped.

	name, err := binio.ReadFixedASCII(data, off+16, VarNameLen)
	if err != nil {
		return h, err
	}
	desc, err := binio.ReadFixedASCII(data, off+16+VarNameLen, VarDescLen)
	if err != nil {
		return h, err
	}
	unit, err := binio.ReadFixedASCII(data, off+16+VarNameLen+VarDescLen, VarUnitLen)
	if err != nil {
		return h, err
	}

	h.Type = format.VarType(typ)
	h.Offset = offset
	h.Count = count
	h.CountAsTime = countAsTime != 0
	h.Name = name
	h.Description = desc
	h.Unit = unit

	if err := h.validate(bufLen); err != nil {
		return h, err
	}

	return h, nil
}

func (h VarHeader) validate(bufLen int32) error {
	width, ok := format.Width(h.Type)
	if !ok {
		return errs.WithVariable(errs.ErrUnknownVarType, h.Name)
	}
	if h.Count < 1 {
		return errs.WithVariable(errs.ErrVarOutOfFrame, h.Name)
	}
	if h.Offset < 0 {
		return errs.WithVariable(errs.ErrVarOutOfFrame, h.Name)
	}
	if h.Offset+h.Count*int32(width) > bufLen { //nolint:gosec
		return errs.WithVariable(errs.ErrVarOutOfFrame, h.Name)
	}

	return nil
}

// Width returns the byte width of one scalar element of this variable's type.
func (h VarHeader) Width() int {
	w, _ := format.Width(h.Type)
	return w
}

// ByteLen returns the total byte span this variable occupies within a
// sample frame: Count * Width().
func (h VarHeader) ByteLen() int {
	return int(h.Count) * h.Width()
}
