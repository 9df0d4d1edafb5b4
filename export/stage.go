package export

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/go-ibt/ibt"
	"github.com/go-ibt/ibt/internal/pool"
)

// columnStage buffers one projected column's decoded values across a
// whole file's sample pass before they're copied into the column's
// Arrow builder. It borrows its backing slice from internal/pool's
// typed slice pools instead of growing a fresh one per file — exactly
// the row-to-columnar reshape those pools exist for.
type columnStage struct {
	col  column
	text bool // true for a string column (a Char variable)

	strVals []string
	strDone func()

	numVals []float64
	numDone func()

	present []bool
}

// newColumnStage allocates a stage sized for n rows. release must be
// called once the stage's values have been flushed.
func newColumnStage(col column, n int) *columnStage {
	s := &columnStage{col: col, present: make([]bool, n)}

	if col.dtype == arrow.BinaryTypes.String {
		s.text = true
		s.strVals, s.strDone = pool.GetStringSlice(n)
	} else {
		s.numVals, s.numDone = pool.GetFloat64Slice(n)
	}

	return s
}

func (s *columnStage) release() {
	if s.strDone != nil {
		s.strDone()
	}

	if s.numDone != nil {
		s.numDone()
	}
}

// set decodes col's variable from sample into row's slot, leaving it
// unset (null on flush) if the column isn't present in this file or the
// variable is absent from this particular sample.
func (s *columnStage) set(row int, sample ibt.Sample) {
	if !s.col.present {
		return
	}

	v, ok := sample.Get(s.col.header.Name)
	if !ok {
		return
	}

	s.present[row] = true

	if s.text {
		s.strVals[row], _ = v.Last().(string)
		return
	}

	s.numVals[row] = toFloat64(v.Last())
}

// toFloat64 widens a decoded scalar to float64 for columnStage's shared
// numeric staging buffer; flush narrows it back to the column's real
// type. Every non-string Value scalar (bool, int32, uint32, float32,
// float64) fits float64 without loss.
func toFloat64(v any) float64 {
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}

		return 0
	case int32:
		return float64(x)
	case uint32:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}

// flush copies the first rows values staged so far into b, appending a
// null for any row the variable was absent or missing in.
func (s *columnStage) flush(b array.Builder, rows int) {
	for i := 0; i < rows; i++ {
		if !s.present[i] {
			b.AppendNull()
			continue
		}

		switch bb := b.(type) {
		case *array.StringBuilder:
			bb.Append(s.strVals[i])
		case *array.BooleanBuilder:
			bb.Append(s.numVals[i] != 0)
		case *array.Int32Builder:
			bb.Append(int32(s.numVals[i])) //nolint:gosec
		case *array.Uint32Builder:
			bb.Append(uint32(s.numVals[i])) //nolint:gosec
		case *array.Float32Builder:
			bb.Append(float32(s.numVals[i]))
		case *array.Float64Builder:
			bb.Append(s.numVals[i])
		default:
			b.AppendNull()
		}
	}
}
