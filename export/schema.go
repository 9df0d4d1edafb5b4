package export

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/go-ibt/ibt/errs"
	"github.com/go-ibt/ibt/format"
	"github.com/go-ibt/ibt/section"
)

// column describes one resolved projected variable: its presentation
// name, its Arrow column type, and the VarHeader to read it from in
// files where it resolves. header is the zero VarHeader when the
// column was kept only because of OnMissingNullColumn.
type column struct {
	name    string
	dtype   arrow.DataType
	header  section.VarHeader
	present bool
}

// resolvedSchema is a fixed, ordered set of columns plus the Arrow
// schema built from them, shared by File and Multi.
type resolvedSchema struct {
	columns []column
	schema  *arrow.Schema
}

// columnType maps a VarHeader's variable type to its Arrow column type,
// per spec.md §4.E's table. Array-valued variables use the scalar
// equivalent: the exporter flattens arrays to their last element.
func columnType(t format.VarType) (arrow.DataType, error) {
	switch t {
	case format.Char:
		return arrow.BinaryTypes.String, nil
	case format.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case format.Int:
		return arrow.PrimitiveTypes.Int32, nil
	case format.BitField:
		return arrow.PrimitiveTypes.Uint32, nil
	case format.Float:
		return arrow.PrimitiveTypes.Float32, nil
	case format.Double:
		return arrow.PrimitiveTypes.Float64, nil
	default:
		return nil, errs.ErrUnknownVarType
	}
}

// resolveProjection picks the projection names (explicit, IncludeAll,
// or DefaultRoster), resolves them against dict, and builds the fixed
// Arrow schema. It returns errs.ErrProjectionEmpty if nothing resolves.
func resolveProjection(dict []section.VarHeader, index func(name string) (section.VarHeader, bool), proj Projection, opts Options) (resolvedSchema, error) {
	var names []string

	switch {
	case opts.IncludeAll:
		names = make([]string, len(dict))
		for i, vh := range dict {
			names[i] = vh.Name
		}
	case len(proj) > 0:
		names = proj
	default:
		names = DefaultRoster
	}

	fields := []arrow.Field{
		{Name: "session_id", Type: arrow.BinaryTypes.String, Nullable: false},
		{Name: "sample_idx", Type: arrow.PrimitiveTypes.Int32, Nullable: false},
	}

	cols := make([]column, 0, len(names))

	for _, name := range names {
		vh, ok := index(name)
		if !ok {
			if opts.OnMissingVariable != OnMissingNullColumn {
				continue
			}

			cols = append(cols, column{name: name, dtype: arrow.PrimitiveTypes.Float64})
			fields = append(fields, arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64, Nullable: true})

			continue
		}

		dtype, err := columnType(vh.Type)
		if err != nil {
			return resolvedSchema{}, errs.WithVariable(err, name)
		}

		cols = append(cols, column{name: name, dtype: dtype, header: vh, present: true})
		fields = append(fields, arrow.Field{Name: name, Type: dtype, Nullable: true})
	}

	if len(cols) == 0 {
		return resolvedSchema{}, fmt.Errorf("%w: no projected variable resolved", errs.ErrProjectionEmpty)
	}

	return resolvedSchema{columns: cols, schema: arrow.NewSchema(fields, nil)}, nil
}
