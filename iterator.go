package ibt

import (
	"context"
	"fmt"
	"iter"

	"github.com/go-ibt/ibt/errs"
	"github.com/go-ibt/ibt/internal/pool"
)

// frameBufSize returns the pool buffer size to request for one sample
// frame: exactly BufLen bytes.
func (t *Telemetry) frameBufSize() int {
	return int(t.header.BufLen)
}

// Samples returns a single-pass iterator over every sample frame in the
// file, in on-disk order. Each yielded Sample borrows a buffer owned by
// the iterator: it is only valid until the next iteration step, and
// must not be retained past it. Use SampleAt for a Sample that outlives
// its iteration step.
//
// A read error or a short read (a file truncated mid-frame) aborts the
// iterator at that frame instead of silently ending the sequence; call
// Err after the range loop to distinguish a complete pass from one cut
// short. Cancelling ctx also stops iteration early and is reported the
// same way, as errs.ErrCancelled.
func (t *Telemetry) Samples(ctx context.Context) iter.Seq2[int, Sample] {
	return func(yield func(int, Sample) bool) {
		t.iterErr = nil

		if t.closed {
			t.iterErr = errs.ErrClosed
			return
		}

		numBuf := int(t.header.NumBuf)
		if numBuf <= 0 {
			return
		}

		buf := pool.NewByteBuffer(t.frameBufSize())
		buf.ExtendOrGrow(int(t.header.BufLen))
		defer buf.Reset()

		frame := buf.Bytes()

		for i := 0; i < numBuf; i++ {
			select {
			case <-ctx.Done():
				t.iterErr = errs.ErrCancelled
				return
			default:
			}

			off := int64(t.header.BufOffset) + int64(i)*int64(t.header.BufLen)

			n, err := t.src.ReadAt(frame, off)
			if err != nil || n < len(frame) {
				t.iterErr = errs.WithOffset(errs.ErrShortRead, off)
				t.logger.Warn("sample iteration stopped early",
					"kind", errs.KindShortRead, "offset", off, "frame_index", i)

				return
			}

			sample := Sample{dict: &t.dict, engine: t.engine, buf: frame}
			if !yield(i, sample) {
				return
			}
		}
	}
}

// Err returns the error, if any, that stopped the most recent Samples
// pass before it exhausted every frame. It is nil after a complete pass
// and is reset at the start of every new call to Samples, matching the
// bufio.Scanner convention of checking Err once the range loop ends.
func (t *Telemetry) Err() error {
	return t.iterErr
}

// SampleAt decodes and returns the sample frame at index, independent
// of any in-progress Samples iteration. The returned Sample owns its
// buffer and remains valid for as long as the caller holds it.
func (t *Telemetry) SampleAt(ctx context.Context, index int) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}

	if t.closed {
		return Sample{}, errs.ErrClosed
	}

	numBuf := int(t.header.NumBuf)
	if index < 0 || index >= numBuf {
		return Sample{}, fmt.Errorf("%w: sample index %d (have %d)", errs.ErrNotFound, index, numBuf)
	}

	frame := make([]byte, t.header.BufLen)
	off := int64(t.header.BufOffset) + int64(index)*int64(t.header.BufLen)

	n, err := t.src.ReadAt(frame, off)
	if err != nil || n < len(frame) {
		return Sample{}, errs.WithOffset(errs.ErrTruncated, off)
	}

	return Sample{dict: &t.dict, engine: t.engine, buf: frame}, nil
}

// Len returns the number of sample frames in the file.
func (t *Telemetry) Len() int {
	return int(t.header.NumBuf)
}
