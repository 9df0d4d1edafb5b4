package ibt

import "github.com/go-ibt/ibt/format"

// Value is a typed read of one variable from one sample frame, paired
// with that variable's static metadata. Its dynamic shape follows the
// VarHeader it was read from: a string for Char variables, a scalar for
// non-Char variables with Count == 1, or an array of length Count
// otherwise.
type Value struct {
	Name        string
	Unit        string
	Description string
	Type        format.VarType
	Count       int32

	str     string
	boolean bool
	i32     int32
	u32     uint32
	f32     float32
	f64     float64

	boolArr []bool
	i32Arr  []int32
	u32Arr  []uint32
	f32Arr  []float32
	f64Arr  []float64
}

// IsString reports whether this value decoded as a Char-typed string.
func (v Value) IsString() bool { return v.Type == format.Char }

// IsArray reports whether this value decoded as an array (Count > 1 and
// not a Char string).
func (v Value) IsArray() bool { return v.Count > 1 && v.Type != format.Char }

// String returns the decoded value for a Char variable (scalar or array).
func (v Value) String() string { return v.str }

// Bool returns the decoded value for a scalar Bool variable.
func (v Value) Bool() bool { return v.boolean }

// Int32 returns the decoded value for a scalar Int variable.
func (v Value) Int32() int32 { return v.i32 }

// Uint32 returns the decoded value for a scalar BitField variable.
func (v Value) Uint32() uint32 { return v.u32 }

// Float32 returns the decoded value for a scalar Float variable.
func (v Value) Float32() float32 { return v.f32 }

// Float64 returns the decoded value for a scalar Double variable.
func (v Value) Float64() float64 { return v.f64 }

// BoolArray returns the decoded values for an array Bool variable.
func (v Value) BoolArray() []bool { return v.boolArr }

// Int32Array returns the decoded values for an array Int variable.
func (v Value) Int32Array() []int32 { return v.i32Arr }

// Uint32Array returns the decoded values for an array BitField variable.
func (v Value) Uint32Array() []uint32 { return v.u32Arr }

// Float32Array returns the decoded values for an array Float variable.
func (v Value) Float32Array() []float32 { return v.f32Arr }

// Float64Array returns the decoded values for an array Double variable.
func (v Value) Float64Array() []float64 { return v.f64Arr }

// Any returns the decoded value boxed as any: string, bool, int32,
// uint32, float32, float64, or one of the Array slice types above.
func (v Value) Any() any {
	switch {
	case v.IsString():
		return v.str
	case v.IsArray():
		switch v.Type {
		case format.Bool:
			return v.boolArr
		case format.Int:
			return v.i32Arr
		case format.BitField:
			return v.u32Arr
		case format.Float:
			return v.f32Arr
		case format.Double:
			return v.f64Arr
		}

		return nil
	default:
		switch v.Type {
		case format.Bool:
			return v.boolean
		case format.Int:
			return v.i32
		case format.BitField:
			return v.u32
		case format.Float:
			return v.f32
		case format.Double:
			return v.f64
		}

		return nil
	}
}

// Last returns the scalar value itself for a scalar or string Value, and
// the last element of the underlying array for an array Value. The
// Parquet exporter uses this to flatten periodic array variables into a
// single "most recent sample" column, per the columnar schema's
// documented lossy projection.
func (v Value) Last() any {
	if !v.IsArray() {
		return v.Any()
	}

	switch v.Type {
	case format.Bool:
		return v.boolArr[len(v.boolArr)-1]
	case format.Int:
		return v.i32Arr[len(v.i32Arr)-1]
	case format.BitField:
		return v.u32Arr[len(v.u32Arr)-1]
	case format.Float:
		return v.f32Arr[len(v.f32Arr)-1]
	case format.Double:
		return v.f64Arr[len(v.f64Arr)-1]
	default:
		return nil
	}
}
