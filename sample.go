package ibt

import (
	"github.com/go-ibt/ibt/binio"
	"github.com/go-ibt/ibt/endian"
	"github.com/go-ibt/ibt/errs"
	"github.com/go-ibt/ibt/format"
	"github.com/go-ibt/ibt/section"
)

// Sample is one decoded telemetry frame. A Sample produced by the
// streaming Samples iterator borrows its backing buffer from the
// iterator and is only valid until the next iteration step; a Sample
// produced by SampleAt owns an independent buffer and remains valid
// for as long as the caller holds it. See Telemetry.Samples and
// Telemetry.SampleAt.
type Sample struct {
	dict   *section.VarDict
	engine endian.EndianEngine
	buf    []byte
}

// Get decodes and returns the named variable's value from this sample,
// case-insensitively. It reports false if no variable by that name
// exists in the dictionary.
func (s Sample) Get(name string) (Value, bool) {
	vh, ok := s.dict.Get(name)
	if !ok {
		return Value{}, false
	}

	v, err := decodeValue(s.engine, s.buf, vh)
	if err != nil {
		return Value{}, false
	}

	return v, true
}

// ToMap decodes every variable in the dictionary and returns them keyed
// by their on-disk name (not case-folded).
func (s Sample) ToMap() map[string]Value {
	vars := s.dict.All()
	out := make(map[string]Value, len(vars))

	for _, vh := range vars {
		v, err := decodeValue(s.engine, s.buf, vh)
		if err != nil {
			continue
		}

		out[vh.Name] = v
	}

	return out
}

// decodeValue reads one variable's value out of a sample frame buffer
// according to its VarHeader. Char variables always decode as a single
// NUL-stopped ASCII string regardless of Count, matching how iRacing
// encodes fixed-length text fields within a frame.
func decodeValue(engine endian.EndianEngine, buf []byte, vh section.VarHeader) (Value, error) {
	v := Value{
		Name:        vh.Name,
		Unit:        vh.Unit,
		Description: vh.Description,
		Type:        vh.Type,
		Count:       vh.Count,
	}

	off := int(vh.Offset)
	n := int(vh.Count)

	if vh.Type == format.Char {
		str, err := binio.ReadFixedASCII(buf, off, n)
		if err != nil {
			return Value{}, errs.WithVariable(err, vh.Name)
		}

		v.str = str

		return v, nil
	}

	width := vh.Width()

	if n == 1 {
		if err := decodeScalar(&v, engine, buf, off, vh.Type); err != nil {
			return Value{}, errs.WithVariable(err, vh.Name)
		}

		return v, nil
	}

	if err := decodeArray(&v, engine, buf, off, width, n, vh.Type); err != nil {
		return Value{}, errs.WithVariable(err, vh.Name)
	}

	return v, nil
}

func decodeScalar(v *Value, engine endian.EndianEngine, buf []byte, off int, typ format.VarType) error {
	switch typ {
	case format.Bool:
		b, err := binio.ReadU8(buf, off)
		if err != nil {
			return err
		}

		v.boolean = b != 0
	case format.Int:
		i, err := binio.ReadI32(engine, buf, off)
		if err != nil {
			return err
		}

		v.i32 = i
	case format.BitField:
		u, err := binio.ReadU32(engine, buf, off)
		if err != nil {
			return err
		}

		v.u32 = u
	case format.Float:
		f, err := binio.ReadF32(engine, buf, off)
		if err != nil {
			return err
		}

		v.f32 = f
	case format.Double:
		f, err := binio.ReadF64(engine, buf, off)
		if err != nil {
			return err
		}

		v.f64 = f
	default:
		return errs.ErrUnknownVarType
	}

	return nil
}

func decodeArray(v *Value, engine endian.EndianEngine, buf []byte, off, width, count int, typ format.VarType) error {
	switch typ {
	case format.Bool:
		arr := make([]bool, count)
		for i := 0; i < count; i++ {
			b, err := binio.ReadU8(buf, off+i*width)
			if err != nil {
				return err
			}

			arr[i] = b != 0
		}

		v.boolArr = arr
	case format.Int:
		arr := make([]int32, count)
		for i := 0; i < count; i++ {
			n, err := binio.ReadI32(engine, buf, off+i*width)
			if err != nil {
				return err
			}

			arr[i] = n
		}

		v.i32Arr = arr
	case format.BitField:
		arr := make([]uint32, count)
		for i := 0; i < count; i++ {
			n, err := binio.ReadU32(engine, buf, off+i*width)
			if err != nil {
				return err
			}

			arr[i] = n
		}

		v.u32Arr = arr
	case format.Float:
		arr := make([]float32, count)
		for i := 0; i < count; i++ {
			n, err := binio.ReadF32(engine, buf, off+i*width)
			if err != nil {
				return err
			}

			arr[i] = n
		}

		v.f32Arr = arr
	case format.Double:
		arr := make([]float64, count)
		for i := 0; i < count; i++ {
			n, err := binio.ReadF64(engine, buf, off+i*width)
			if err != nil {
				return err
			}

			arr[i] = n
		}

		v.f64Arr = arr
	default:
		return errs.ErrUnknownVarType
	}

	return nil
}
