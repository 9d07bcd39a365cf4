package builtins

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/kbukum/compgraph/row"
)

// DummyMapper yields exactly the row passed in unchanged. Grounded on
// operations.py's DummyMapper — used where a graph stage needs a Mapper
// slot but no transformation.
type DummyMapper struct{}

func (DummyMapper) Map(r row.Row) ([]row.Row, error) { return []row.Row{r}, nil }

var punctuationPattern = regexp.MustCompile(`([^\w\s]|_)+`)

// FilterPunctuation strips punctuation and underscores out of Column,
// mirroring operations.py's regex `([^\w\s]|_)+`.
type FilterPunctuation struct {
	Column string
}

func (m FilterPunctuation) Map(r row.Row) ([]row.Row, error) {
	v, err := r.MustGet(m.Column)
	if err != nil {
		return nil, err
	}
	s, ok := v.AsString()
	if !ok {
		return nil, columnNotString(m.Column, v)
	}
	cleaned := punctuationPattern.ReplaceAllString(s, "")
	return []row.Row{r.With(m.Column, row.String(cleaned))}, nil
}

// LowerCase lowercases the value in Column.
type LowerCase struct {
	Column string
}

func (m LowerCase) Map(r row.Row) ([]row.Row, error) {
	v, err := r.MustGet(m.Column)
	if err != nil {
		return nil, err
	}
	s, ok := v.AsString()
	if !ok {
		return nil, columnNotString(m.Column, v)
	}
	return []row.Row{r.With(m.Column, row.String(strings.ToLower(s)))}, nil
}

// Split fans a row out into one row per substring of Column, splitting on
// Separator (a regexp). Every fanned-out row is a copy of the original
// with only Column replaced, matching operations.py's Split.
type Split struct {
	Column    string
	Separator string
}

var defaultSeparator = regexp.MustCompile(`\s+`)

func (m Split) Map(r row.Row) ([]row.Row, error) {
	v, err := r.MustGet(m.Column)
	if err != nil {
		return nil, err
	}
	s, ok := v.AsString()
	if !ok {
		return nil, columnNotString(m.Column, v)
	}

	sep := defaultSeparator
	if m.Separator != "" {
		sep, err = regexp.Compile(m.Separator)
		if err != nil {
			return nil, err
		}
	}

	var out []row.Row
	start := 0
	for _, loc := range sep.FindAllStringIndex(s, -1) {
		out = append(out, r.With(m.Column, row.String(s[start:loc[0]])))
		start = loc[1]
	}
	out = append(out, r.With(m.Column, row.String(s[start:])))
	return out, nil
}

// Product multiplies Columns together and stores the result in
// ResultColumn (defaulting to "product").
type Product struct {
	Columns      []string
	ResultColumn string
}

func (m Product) Map(r row.Row) ([]row.Row, error) {
	result := m.ResultColumn
	if result == "" {
		result = "product"
	}
	product := 1.0
	for _, col := range m.Columns {
		v, err := r.MustGet(col)
		if err != nil {
			return nil, err
		}
		n, ok := v.Number()
		if !ok {
			return nil, columnNotNumeric(col, v)
		}
		product *= n
	}
	return []row.Row{r.With(result, row.Float(product))}, nil
}

// Filter drops rows for which Condition returns false.
type Filter struct {
	Condition func(row.Row) (bool, error)
}

func (m Filter) Map(r row.Row) ([]row.Row, error) {
	keep, err := m.Condition(r)
	if err != nil {
		return nil, err
	}
	if !keep {
		return nil, nil
	}
	return []row.Row{r}, nil
}

// Project keeps only the named columns.
type Project struct {
	Columns []string
}

func (m Project) Map(r row.Row) ([]row.Row, error) {
	return []row.Row{r.Project(m.Columns...)}, nil
}

// Calculate stores the result of Operation in Result.
type Calculate struct {
	Operation func(row.Row) (row.Value, error)
	Result    string
}

func (m Calculate) Map(r row.Row) ([]row.Row, error) {
	v, err := m.Operation(r)
	if err != nil {
		return nil, err
	}
	return []row.Row{r.With(m.Result, v)}, nil
}

var weekdayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// CalculateTime parses EnterTime against Layout (a Go reference-time
// layout, not a strftime format string — the corpus has no strftime
// translator, so the idiomatic Go way is used directly) and stores the
// weekday name and hour-of-day it falls on.
type CalculateTime struct {
	EnterTime     string
	Layout        string
	WeekdayResult string
	HourResult    string
}

func (m CalculateTime) Map(r row.Row) ([]row.Row, error) {
	v, err := r.MustGet(m.EnterTime)
	if err != nil {
		return nil, err
	}
	s, ok := v.AsString()
	if !ok {
		return nil, columnNotString(m.EnterTime, v)
	}
	t, err := time.Parse(m.Layout, s)
	if err != nil {
		return nil, err
	}
	weekdayIdx := (int(t.Weekday()) + 6) % 7
	out := r.With(m.WeekdayResult, row.String(weekdayNames[weekdayIdx])).
		With(m.HourResult, row.Int(int64(t.Hour())))
	return []row.Row{out}, nil
}

const earthRadiusKm = 6373.0

// CalculateLength computes the haversine great-circle distance in
// kilometers between StartPoint and EndPoint, each a FloatList of
// [longitude, latitude] in degrees, and stores it in ResultColumn. A row
// that already carries ResultColumn is passed through unchanged, matching
// operations.py's idempotency check.
type CalculateLength struct {
	StartPoint   string
	EndPoint     string
	ResultColumn string
}

func (m CalculateLength) Map(r row.Row) ([]row.Row, error) {
	if _, ok := r.Get(m.ResultColumn); ok {
		return []row.Row{r}, nil
	}

	start, err := m.coords(r, m.StartPoint)
	if err != nil {
		return nil, err
	}
	end, err := m.coords(r, m.EndPoint)
	if err != nil {
		return nil, err
	}

	dist := haversineKm(start[0], start[1], end[0], end[1])
	return []row.Row{r.With(m.ResultColumn, row.Float(dist))}, nil
}

func (m CalculateLength) coords(r row.Row, column string) ([2]float64, error) {
	v, err := r.MustGet(column)
	if err != nil {
		return [2]float64{}, err
	}
	fl, ok := v.AsFloatList()
	if !ok || len(fl) != 2 {
		return [2]float64{}, columnNotNumeric(column, v)
	}
	return [2]float64{fl[0], fl[1]}, nil
}

func haversineKm(lonStart, latStart, lonEnd, latEnd float64) float64 {
	radLonStart, radLatStart := degToRad(lonStart), degToRad(latStart)
	radLonEnd, radLatEnd := degToRad(lonEnd), degToRad(latEnd)

	dLat := (radLatEnd - radLatStart) / 2
	dLon := (radLonEnd - radLonStart) / 2
	a := math.Pow(math.Sin(dLat), 2) + math.Cos(radLatStart)*math.Cos(radLatEnd)*math.Pow(math.Sin(dLon), 2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
