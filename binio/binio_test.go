package binio

import (
	"math"
	"testing"

	"github.com/go-ibt/ibt/endian"
)

func TestReadScalars(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	data := make([]byte, 0, 32)
	data = engine.AppendUint32(data, 0xFFFFFFFF) // -1 as int32
	data = engine.AppendUint32(data, 5000)
	data = engine.AppendUint32(data, math.Float32bits(12.5))
	data = engine.AppendUint64(data, math.Float64bits(3.25))

	i32, err := ReadI32(engine, data, 0)
	if err != nil || i32 != -1 {
		t.Fatalf("ReadI32 = %d, %v, want -1, nil", i32, err)
	}

	u32, err := ReadU32(engine, data, 4)
	if err != nil || u32 != 5000 {
		t.Fatalf("ReadU32 = %d, %v, want 5000, nil", u32, err)
	}

	f32, err := ReadF32(engine, data, 8)
	if err != nil || f32 != 12.5 {
		t.Fatalf("ReadF32 = %v, %v, want 12.5, nil", f32, err)
	}

	f64, err := ReadF64(engine, data, 12)
	if err != nil || f64 != 3.25 {
		t.Fatalf("ReadF64 = %v, %v, want 3.25, nil", f64, err)
	}
}

func TestReadScalarsTruncated(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	data := make([]byte, 3)

	if _, err := ReadI32(engine, data, 0); err == nil {
		t.Fatal("expected truncated error")
	}
	if _, err := ReadU8(data, 3); err == nil {
		t.Fatal("expected truncated error")
	}
}

func TestReadFixedASCII(t *testing.T) {
	data := append([]byte("Speed"), make([]byte, 27)...)

	s, err := ReadFixedASCII(data, 0, 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "Speed" {
		t.Fatalf("ReadFixedASCII = %q, want Speed", s)
	}
}

func TestReadFixedASCIINoNUL(t *testing.T) {
	data := []byte("12345678")

	s, err := ReadFixedASCII(data, 0, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "12345678" {
		t.Fatalf("ReadFixedASCII = %q, want 12345678", s)
	}
}

func TestReadFixedASCIINonASCIIBytes(t *testing.T) {
	data := []byte{0xFF, 0xFE, 0x00, 0x00}

	s, err := ReadFixedASCII(data, 0, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("ReadFixedASCII length = %d, want 2", len(s))
	}
}

func TestReadFixedASCIITruncated(t *testing.T) {
	data := []byte("short")
	if _, err := ReadFixedASCII(data, 0, 32); err == nil {
		t.Fatal("expected truncated error")
	}
}
