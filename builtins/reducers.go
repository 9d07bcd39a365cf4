package builtins

import (
	"sort"
	"time"

	"github.com/kbukum/compgraph/ops"
	"github.com/kbukum/compgraph/row"
)

func groupDict(keys []string, first row.Row) row.Row {
	return first.Project(keys...)
}

// FirstReducer yields only the first row of each group.
type FirstReducer struct{}

func (FirstReducer) Reduce(keys []string, rows ops.RowIterator) ops.RowIterator {
	return aggregate(rows, func(_ []string, group []row.Row) ([]row.Row, error) {
		if len(group) == 0 {
			return nil, nil
		}
		return group[:1], nil
	}, keys)
}

// Count yields one row per group holding the group's key columns plus
// Column set to the number of rows in the group.
type Count struct {
	Column string
}

func (c Count) Reduce(keys []string, rows ops.RowIterator) ops.RowIterator {
	return aggregate(rows, func(keys []string, group []row.Row) ([]row.Row, error) {
		if len(group) == 0 {
			return nil, nil
		}
		out := groupDict(keys, group[0]).With(c.Column, row.Int(int64(len(group))))
		return []row.Row{out}, nil
	}, keys)
}

// Sum yields one row per group holding the group's key columns plus Column
// set to the sum of Column across the group's rows. The sum stays an
// integer if every summed value was an integer, matching Python's
// int-stays-int arithmetic; otherwise it is a float.
type Sum struct {
	Column string
}

func (s Sum) Reduce(keys []string, rows ops.RowIterator) ops.RowIterator {
	return aggregate(rows, func(keys []string, group []row.Row) ([]row.Row, error) {
		if len(group) == 0 {
			return nil, nil
		}
		var total float64
		allInt := true
		for _, r := range group {
			v, err := r.MustGet(s.Column)
			if err != nil {
				return nil, err
			}
			n, ok := v.Number()
			if !ok {
				return nil, columnNotNumeric(s.Column, v)
			}
			if v.Kind() != row.KindInt {
				allInt = false
			}
			total += n
		}
		result := row.Float(total)
		if allInt {
			result = row.Int(int64(total))
		}
		out := groupDict(keys, group[0]).With(s.Column, result)
		return []row.Row{out}, nil
	}, keys)
}

// TermFrequency yields one row per distinct value of WordsColumn within the
// group: the group's key columns, WordsColumn set to that value, and
// ResultColumn set to its share of the group's total row count. Output
// order follows first-occurrence order within the group, matching the
// insertion order a Python dict would preserve.
type TermFrequency struct {
	WordsColumn  string
	ResultColumn string
}

func (tf TermFrequency) Reduce(keys []string, rows ops.RowIterator) ops.RowIterator {
	return aggregate(rows, func(keys []string, group []row.Row) ([]row.Row, error) {
		if len(group) == 0 {
			return nil, nil
		}
		counts := make(map[string]float64)
		var order []string
		for _, r := range group {
			v, err := r.MustGet(tf.WordsColumn)
			if err != nil {
				return nil, err
			}
			word, ok := v.AsString()
			if !ok {
				return nil, columnNotString(tf.WordsColumn, v)
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
		total := float64(len(group))
		base := groupDict(keys, group[0])
		out := make([]row.Row, 0, len(order))
		for _, word := range order {
			r := base.With(tf.WordsColumn, row.String(word)).With(tf.ResultColumn, row.Float(counts[word]/total))
			out = append(out, r)
		}
		return out, nil
	}, keys)
}

// TopN yields the N rows of each group with the largest value in Column,
// ordered descending. Ties keep their original relative order within the
// group, matching heapq.nlargest's stability.
type TopN struct {
	Column string
	N      int
}

func (t TopN) Reduce(keys []string, rows ops.RowIterator) ops.RowIterator {
	return aggregate(rows, func(_ []string, group []row.Row) ([]row.Row, error) {
		values := make([]float64, len(group))
		for i, r := range group {
			v, err := r.MustGet(t.Column)
			if err != nil {
				return nil, err
			}
			n, ok := v.Number()
			if !ok {
				return nil, columnNotNumeric(t.Column, v)
			}
			values[i] = n
		}
		ranked := make([]int, len(group))
		for i := range ranked {
			ranked[i] = i
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return values[ranked[i]] > values[ranked[j]]
		})
		n := t.N
		if n > len(ranked) {
			n = len(ranked)
		}
		out := make([]row.Row, n)
		for i := 0; i < n; i++ {
			out[i] = group[ranked[i]]
		}
		return out, nil
	}, keys)
}

// CalculateSpeed yields one row per group (typically keyed by weekday and
// hour) holding the group's key columns plus ResultColumn set to total
// route length over total elapsed time, in km/h.
type CalculateSpeed struct {
	LengthColumn string
	EnterColumn  string
	LeaveColumn  string
	Layout       string
	ResultColumn string
}

func (cs CalculateSpeed) Reduce(keys []string, rows ops.RowIterator) ops.RowIterator {
	return aggregate(rows, func(keys []string, group []row.Row) ([]row.Row, error) {
		if len(group) == 0 {
			return nil, nil
		}
		var lengthTotal, timeTotalHours float64
		for _, r := range group {
			enter, err := r.MustGet(cs.EnterColumn)
			if err != nil {
				return nil, err
			}
			leave, err := r.MustGet(cs.LeaveColumn)
			if err != nil {
				return nil, err
			}
			enterStr, ok := enter.AsString()
			if !ok {
				return nil, columnNotString(cs.EnterColumn, enter)
			}
			leaveStr, ok := leave.AsString()
			if !ok {
				return nil, columnNotString(cs.LeaveColumn, leave)
			}
			enterTime, err := time.Parse(cs.Layout, enterStr)
			if err != nil {
				return nil, err
			}
			leaveTime, err := time.Parse(cs.Layout, leaveStr)
			if err != nil {
				return nil, err
			}
			timeTotalHours += leaveTime.Sub(enterTime).Hours()

			lengthVal, err := r.MustGet(cs.LengthColumn)
			if err != nil {
				return nil, err
			}
			length, ok := lengthVal.Number()
			if !ok {
				return nil, columnNotNumeric(cs.LengthColumn, lengthVal)
			}
			lengthTotal += length
		}
		out := groupDict(keys, group[0]).With(cs.ResultColumn, row.Float(lengthTotal/timeTotalHours))
		return []row.Row{out}, nil
	}, keys)
}
