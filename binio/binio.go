// Package binio provides deterministic little-endian scalar reads and
// fixed-length ASCII string reads, independent of host byte order.
//
// Every function is bounds-checked against the supplied slice and fails
// with errs.ErrTruncated rather than panicking when the slice is shorter
// than the value being decoded. No function in this package allocates
// beyond the string it returns.
package binio

import (
	"math"

	"github.com/go-ibt/ibt/endian"
	"github.com/go-ibt/ibt/errs"
)

// ReadU8 reads one unsigned byte at off.
func ReadU8(data []byte, off int) (uint8, error) {
	if off < 0 || off+1 > len(data) {
		return 0, errs.ErrTruncated
	}

	return data[off], nil
}

// ReadI32 reads a little-endian signed 32-bit integer at off using engine.
func ReadI32(engine endian.EndianEngine, data []byte, off int) (int32, error) {
	u, err := ReadU32(engine, data, off)
	if err != nil {
		return 0, err
	}

	return int32(u), nil //nolint:gosec
}

// ReadU32 reads a little-endian unsigned 32-bit integer at off using engine.
func ReadU32(engine endian.EndianEngine, data []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(data) {
		return 0, errs.ErrTruncated
	}

	return engine.Uint32(data[off : off+4]), nil
}

// ReadF32 reads a little-endian IEEE-754 binary32 at off using engine.
func ReadF32(engine endian.EndianEngine, data []byte, off int) (float32, error) {
	u, err := ReadU32(engine, data, off)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(u), nil
}

// ReadF64 reads a little-endian IEEE-754 binary64 at off using engine.
func ReadF64(engine endian.EndianEngine, data []byte, off int) (float64, error) {
	if off < 0 || off+8 > len(data) {
		return 0, errs.ErrTruncated
	}

	u := engine.Uint64(data[off : off+8])

	return math.Float64frombits(u), nil
}

// ReadFixedASCII reads exactly n bytes starting at off, stops at the
// first NUL byte, and decodes the prefix as ASCII. Bytes beyond a NUL
// are discarded. The source file is specified as ASCII but this function
// tolerates non-ASCII bytes by passing them through unchanged rather
// than validating them.
func ReadFixedASCII(data []byte, off, n int) (string, error) {
	if off < 0 || n < 0 || off+n > len(data) {
		return "", errs.ErrTruncated
	}

	field := data[off : off+n]
	if i := indexNUL(field); i >= 0 {
		field = field[:i]
	}

	return string(field), nil
}

func indexNUL(b []byte) int {
	for i, c := range b {
		if c == 0x00 {
			return i
		}
	}

	return -1
}
