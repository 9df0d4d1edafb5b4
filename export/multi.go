package export

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/go-ibt/ibt"
	"github.com/go-ibt/ibt/errs"
)

// Multi exports the sample streams of an ordered list of .ibt files to a
// single Parquet file at outPath. The schema is fixed by resolving the
// projection against the first file's dictionary; a column this file's
// dictionary lacks is filled with typed nulls rather than failing the
// whole export. sample_idx restarts at 0 within each file's rows.
// progress, if non-nil, is called once per completed file.
//
// Per spec.md's documented memory policy, each file's rows are
// accumulated and flushed as one record batch before the next file is
// opened, so peak memory is bounded by one file's row count rather than
// the whole corpus.
func Multi(ctx context.Context, paths []string, outPath string, proj Projection, opts Options, progress ProgressFunc) (int64, error) {
	if len(paths) == 0 {
		return 0, fmt.Errorf("%w: no input files", errs.ErrProjectionEmpty)
	}

	first, err := ibt.Open(paths[0])
	if err != nil {
		return 0, err
	}
	defer first.Close()

	rs, err := resolveProjection(first.Variables(), first.VariableByName, proj, opts)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, errs.Wrap(errs.ErrIO, err)
	}

	writer, err := pqarrow.NewFileWriter(rs.schema, f, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		_ = f.Close()
		_ = os.Remove(outPath)

		return 0, errs.Wrap(errs.ErrIO, err)
	}

	mem := memory.NewGoAllocator()

	var total int64

	if err := writeBatch(ctx, writer, mem, rs, first); err != nil {
		_ = writer.Close()
		_ = f.Close()
		_ = os.Remove(outPath)

		return 0, err
	}

	total += int64(first.Len())

	if progress != nil {
		progress(1, len(paths), paths[0])
	}

	for i, path := range paths[1:] {
		rows, err := processFollowingFile(ctx, path, rs, writer, mem)
		if err != nil {
			_ = writer.Close()
			_ = f.Close()
			_ = os.Remove(outPath)

			return 0, err
		}

		total += rows

		if progress != nil {
			progress(i+2, len(paths), path)
		}
	}

	if err := writer.Close(); err != nil {
		_ = f.Close()
		return 0, errs.Wrap(errs.ErrIO, err)
	}

	// Closing the Parquet writer also closes f, so an already-closed file
	// is not a failure here.
	if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return 0, errs.Wrap(errs.ErrIO, err)
	}

	return total, nil
}

// processFollowingFile opens one of the non-first files in a Multi
// export, re-resolving each fixed column's VarHeader against this
// file's own dictionary (columns absent here write as nulls), and
// writes its rows as one more record batch.
func processFollowingFile(ctx context.Context, path string, fixed resolvedSchema, writer *pqarrow.FileWriter, mem memory.Allocator) (int64, error) {
	tel, err := ibt.Open(path)
	if err != nil {
		return 0, err
	}
	defer tel.Close()

	rs := rebind(fixed, tel)

	if err := writeBatch(ctx, writer, mem, rs, tel); err != nil {
		return 0, err
	}

	return int64(tel.Len()), nil
}

// rebind re-resolves fixed's column VarHeaders against a subsequent
// file's dictionary, keeping the schema (column names and types)
// untouched. A column the file's dictionary lacks is marked absent and
// appends as null for every row of this file.
func rebind(fixed resolvedSchema, tel *ibt.Telemetry) resolvedSchema {
	cols := make([]column, len(fixed.columns))

	for i, c := range fixed.columns {
		vh, ok := tel.VariableByName(c.name)
		if !ok {
			cols[i] = column{name: c.name, dtype: c.dtype}
			continue
		}

		cols[i] = column{name: c.name, dtype: c.dtype, header: vh, present: true}
	}

	return resolvedSchema{columns: cols, schema: fixed.schema}
}

// writeBatch accumulates every sample of one Telemetry into a fresh
// record batch and writes it to writer as its own row group, so the
// batch is flushed before the next file is processed.
func writeBatch(ctx context.Context, writer *pqarrow.FileWriter, mem memory.Allocator, rs resolvedSchema, t *ibt.Telemetry) error {
	bld := array.NewRecordBuilder(mem, rs.schema)
	defer bld.Release()

	if _, err := writeSession(ctx, t, rs, t.SessionID(), bld); err != nil {
		return err
	}

	rec := bld.NewRecord()
	defer rec.Release()

	if err := writer.Write(rec); err != nil {
		return errs.Wrap(errs.ErrIO, err)
	}

	return nil
}
