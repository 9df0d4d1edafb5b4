package section

import (
	"github.com/go-ibt/ibt/binio"
	"github.com/go-ibt/ibt/endian"
	"github.com/go-ibt/ibt/errs"
)

// FileHeader is the fixed 112-byte header at the start of every .ibt
// file: 28 signed little-endian int32 fields. Reserved slots are
// consumed but not interpreted.
type FileHeader struct {
	// Version is the SDK schema version. Must equal 2.
	Version int32
	// Status is an opaque status word, stored verbatim and never validated.
	Status int32
	// TickRate is the sample rate in Hz, e.g. 60.
	TickRate int32
	// SessionInfoUpdate is a monotonic revision counter for the YAML blob.
	SessionInfoUpdate int32
	// SessionInfoLen is the byte length of the YAML blob.
	SessionInfoLen int32
	// SessionInfoOffset is the absolute byte offset of the YAML blob.
	SessionInfoOffset int32
	// NumVars is the count of VarHeader entries (N).
	NumVars int32
	// VarHeaderOffset is the absolute byte offset of the VarHeader array.
	VarHeaderOffset int32
	// NumBuf is the count of sample frames (M).
	NumBuf int32
	// BufLen is the byte width of one sample frame.
	BufLen int32
	// BufOffset is the absolute byte offset of the sample region.
	BufOffset int32
}

// ParseFileHeader decodes the 112-byte FileHeader from the start of data
// and validates its cross-field invariants. data must be at least
// FileHeaderSize bytes; it may be longer (the DiskSubHeader follows
// contiguously and callers typically decode both from one read).
func ParseFileHeader(engine endian.EndianEngine, data []byte) (FileHeader, error) {
	var h FileHeader

	if len(data) < FileHeaderSize {
		return h, errs.ErrTruncated
	}

	fields := make([]int32, 28)
	for i := range fields {
		v, err := binio.ReadI32(engine, data, i*4)
		if err != nil {
			return h, err
		}
		fields[i] = v
	}

	h.Version = fields[0]
	h.Status = fields[1]
	h.TickRate = fields[2]
	h.SessionInfoUpdate = fields[3]
	h.SessionInfoLen = fields[4]
	h.SessionInfoOffset = fields[5]
	h.NumVars = fields[6]
	h.VarHeaderOffset = fields[7]
	h.NumBuf = fields[8]
	h.BufLen = fields[9]
	// fields[10:13] reserved, ignored.
	h.BufOffset = fields[13]
	// fields[14:28] reserved, ignored.

	if err := h.validate(); err != nil {
		return h, err
	}

	return h, nil
}

func (h FileHeader) validate() error {
	if h.Version != 2 {
		return errs.ErrUnsupportedVersion
	}
	if h.SessionInfoOffset < MinAbsoluteOffset {
		return errs.WithOffset(errs.ErrTruncated, int64(h.SessionInfoOffset))
	}
	if h.VarHeaderOffset < MinAbsoluteOffset {
		return errs.WithOffset(errs.ErrTruncated, int64(h.VarHeaderOffset))
	}
	if h.NumBuf > 0 && h.BufOffset < MinAbsoluteOffset {
		return errs.WithOffset(errs.ErrTruncated, int64(h.BufOffset))
	}
	if h.NumVars < 0 {
		return errs.ErrTruncated
	}
	if h.NumBuf < 0 {
		return errs.ErrTruncated
	}
	if h.SessionInfoLen < 0 {
		return errs.ErrTruncated
	}
	if h.NumBuf > 0 && h.BufLen <= 0 {
		return errs.ErrTruncated
	}

	return nil
}
