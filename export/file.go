package export

import (
	"context"
	"errors"
	"os"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/go-ibt/ibt"
	"github.com/go-ibt/ibt/errs"
	"github.com/go-ibt/ibt/internal/pool"
)

// File exports one Telemetry handle's sample stream to a single Parquet
// file at outPath, under the given projection and options, and returns
// the number of rows written. Any existing file at outPath is
// overwritten; on error, the partially written output is removed.
func File(ctx context.Context, t *ibt.Telemetry, outPath string, proj Projection, opts Options) (int64, error) {
	rs, err := resolveProjection(t.Variables(), t.VariableByName, proj, opts)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, errs.Wrap(errs.ErrIO, err)
	}

	rows, err := writeSingle(ctx, f, rs, t)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(outPath)

		return 0, err
	}

	// Closing the Parquet writer also closes f, so an already-closed file
	// is not a failure here.
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		_ = os.Remove(outPath)

		return 0, errs.Wrap(errs.ErrIO, err)
	}

	return rows, nil
}

// writeSession accumulates one Telemetry's rows into builder starting
// at sample_idx 0, applying the fixed column set in rs. Column values
// are staged into pooled slices while samples stream by (see
// columnStage), then copied into the Arrow builders once the pass
// completes or stops early. It returns the number of rows appended.
func writeSession(ctx context.Context, t *ibt.Telemetry, rs resolvedSchema, sessionID string, bld *array.RecordBuilder) (int64, error) {
	idBld := bld.Field(0).(*array.StringBuilder) //nolint:forcetypeassert
	idxBld := bld.Field(1).(*array.Int32Builder) //nolint:forcetypeassert

	n := t.Len()

	idxBuf, idxDone := pool.GetInt64Slice(n)
	defer idxDone()

	idBuf, idDone := pool.GetStringSlice(n)
	defer idDone()

	stages := make([]*columnStage, len(rs.columns))
	for i, col := range rs.columns {
		stages[i] = newColumnStage(col, n)
	}

	defer func() {
		for _, s := range stages {
			s.release()
		}
	}()

	var rows int64

	for idx, sample := range t.Samples(ctx) {
		idxBuf[rows] = int64(idx)
		idBuf[rows] = sessionID

		for i := range rs.columns {
			stages[i].set(int(rows), sample)
		}

		rows++
	}

	for i := int64(0); i < rows; i++ {
		idBld.Append(idBuf[i])
		idxBld.Append(int32(idxBuf[i])) //nolint:gosec
	}

	for i, s := range stages {
		s.flush(bld.Field(i+2), int(rows))
	}

	if err := ctx.Err(); err != nil {
		return rows, err
	}

	if err := t.Err(); err != nil {
		return rows, err
	}

	return rows, nil
}

// writeSingle builds one Parquet file containing exactly one
// Telemetry's rows.
func writeSingle(ctx context.Context, f *os.File, rs resolvedSchema, t *ibt.Telemetry) (int64, error) {
	mem := memory.NewGoAllocator()

	writer, err := pqarrow.NewFileWriter(rs.schema, f, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		return 0, errs.Wrap(errs.ErrIO, err)
	}
	defer writer.Close() //nolint:errcheck

	bld := array.NewRecordBuilder(mem, rs.schema)
	defer bld.Release()

	rows, err := writeSession(ctx, t, rs, t.SessionID(), bld)
	if err != nil {
		return rows, err
	}

	rec := bld.NewRecord()
	defer rec.Release()

	if err := writer.WriteBuffered(rec); err != nil {
		return rows, errs.Wrap(errs.ErrIO, err)
	}

	return rows, nil
}
