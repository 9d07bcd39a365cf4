package ops

import (
	"context"

	"github.com/kbukum/compgraph/row"
)

// Join performs a sort-merge join of left and right on keys, calling
// joiner once per distinct key value present in either side. Both inputs
// MUST already be sorted by keys. A key present only on one side is paired
// with an empty slice on the other, letting joiner decide whether that's
// an inner-join drop or an outer-join pass-through.
func Join(left, right RowIterator, keys []string, joiner Joiner) RowIterator {
	return &joinOp{
		left:  newGrouper(left, keys),
		right: newGrouper(right, keys),
		keys:  keys,
		j:     joiner,
	}
}

type joinOp struct {
	left, right *grouper
	keys        []string
	j           Joiner

	leftGroup, rightGroup   []row.Row
	leftKey, rightKey       row.Key
	haveLeft, haveRight     bool
	leftDone, rightDone     bool
	pending                 []row.Row
	pendingIdx              int
}

func (op *joinOp) Next(ctx context.Context) (row.Row, bool, error) {
	for {
		if op.pendingIdx < len(op.pending) {
			r := op.pending[op.pendingIdx]
			op.pendingIdx++
			return r, true, nil
		}
		op.pending = nil
		op.pendingIdx = 0

		if !op.haveLeft && !op.leftDone {
			g, k, ok, err := op.left.next(ctx)
			if err != nil {
				return nil, false, err
			}
			if ok {
				op.leftGroup, op.leftKey, op.haveLeft = g, k, true
			} else {
				op.leftDone = true
			}
		}
		if !op.haveRight && !op.rightDone {
			g, k, ok, err := op.right.next(ctx)
			if err != nil {
				return nil, false, err
			}
			if ok {
				op.rightGroup, op.rightKey, op.haveRight = g, k, true
			} else {
				op.rightDone = true
			}
		}

		switch {
		case op.haveLeft && op.haveRight:
			c, err := op.leftKey.Compare(op.rightKey)
			if err != nil {
				return nil, false, joinerError(err)
			}
			switch {
			case c == 0:
				out, jerr := op.j.Join(op.keys, op.leftGroup, op.rightGroup)
				if jerr != nil {
					return nil, false, joinerError(jerr)
				}
				op.haveLeft, op.haveRight = false, false
				op.pending = out
			case c < 0:
				out, jerr := op.j.Join(op.keys, op.leftGroup, nil)
				if jerr != nil {
					return nil, false, joinerError(jerr)
				}
				op.haveLeft = false
				op.pending = out
			default:
				out, jerr := op.j.Join(op.keys, nil, op.rightGroup)
				if jerr != nil {
					return nil, false, joinerError(jerr)
				}
				op.haveRight = false
				op.pending = out
			}
		case op.haveLeft:
			out, jerr := op.j.Join(op.keys, op.leftGroup, nil)
			if jerr != nil {
				return nil, false, joinerError(jerr)
			}
			op.haveLeft = false
			op.pending = out
		case op.haveRight:
			out, jerr := op.j.Join(op.keys, nil, op.rightGroup)
			if jerr != nil {
				return nil, false, joinerError(jerr)
			}
			op.haveRight = false
			op.pending = out
		default:
			return nil, false, nil
		}
	}
}

func (op *joinOp) Close() error {
	errL := op.left.close()
	errR := op.right.close()
	if errL != nil {
		return errL
	}
	return errR
}
