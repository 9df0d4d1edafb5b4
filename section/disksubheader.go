package section

import (
	"github.com/go-ibt/ibt/binio"
	"github.com/go-ibt/ibt/endian"
	"github.com/go-ibt/ibt/errs"
)

// DiskSubHeader is the 32-byte header that follows the FileHeader
// contiguously: start_date (f32), start_time (f64), end_time (f64),
// lap_count (i32), record_count (i32), and 4 bytes of trailing padding.
//
// RecordCount should equal FileHeader.NumBuf but callers must not rely
// on it; the file header's NumBuf is authoritative.
type DiskSubHeader struct {
	StartDate   float32
	StartTime   float64
	EndTime     float64
	LapCount    int32
	RecordCount int32
}

// ParseDiskSubHeader decodes the 32-byte DiskSubHeader starting at
// FileHeaderSize within data. data must contain at least
// FileHeaderSize+DiskSubHeaderSize bytes.
func ParseDiskSubHeader(engine endian.EndianEngine, data []byte) (DiskSubHeader, error) {
	var h DiskSubHeader

	base := FileHeaderSize
	if len(data) < base+DiskSubHeaderSize {
		return h, errs.ErrTruncated
	}

	startDate, err := binio.ReadF32(engine, data, base+0)
	if err != nil {
		return h, err
	}
	startTime, err := binio.ReadF64(engine, data, base+4)
	if err != nil {
		return h, err
	}
	endTime, err := binio.ReadF64(engine, data, base+12)
	if err != nil {
		return h, err
	}
	lapCount, err := binio.ReadI32(engine, data, base+20)
	if err != nil {
		return h, err
	}
	recordCount, err := binio.ReadI32(engine, data, base+24)
	if err != nil {
		return h, err
	}
	// base+28..base+32 is trailing padding, discarded.

	h.StartDate = startDate
	h.StartTime = startTime
	h.EndTime = endTime
	h.LapCount = lapCount
	h.RecordCount = recordCount

	return h, nil
}
