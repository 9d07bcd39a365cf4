package builtins

import (
	"context"
	"fmt"

	"github.com/kbukum/compgraph/ops"
	"github.com/kbukum/compgraph/row"
)

func columnNotString(column string, v row.Value) error {
	return fmt.Errorf("builtins: column %q is %s, not string", column, v.Kind())
}

func columnNotNumeric(column string, v row.Value) error {
	return fmt.Errorf("builtins: column %q is %s, not numeric", column, v.Kind())
}

// collectRows drains it into a slice. Every built-in Reducer is handed a
// group that the engine's grouper has already buffered in memory (see
// ops.grouper), so collecting it again here costs nothing extra — it's
// just turning the RowIterator view back into a slice the Python-derived
// aggregation logic below was designed around.
func collectRows(ctx context.Context, it ops.RowIterator) ([]row.Row, error) {
	var out []row.Row
	for {
		r, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, r)
	}
}
