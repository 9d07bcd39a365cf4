package algorithms

import (
	"github.com/kbukum/compgraph/builtins"
	"github.com/kbukum/compgraph/extsort"
	"github.com/kbukum/compgraph/graph"
)

// TimeLayout is the Go reference-time layout matching the reference
// implementation's '%Y%m%dT%H%M%S.%f' timestamp format (e.g.
// "20171020T112238.723000").
const TimeLayout = "20060102T150405.000000"

// AverageSpeedConfig configures AverageSpeed.
type AverageSpeedConfig struct {
	EnterTimeColumn     string
	LeaveTimeColumn     string
	EdgeIDColumn        string
	StartCoordColumn    string
	EndCoordColumn      string
	WeekdayResultColumn string
	HourResultColumn    string
	SpeedResultColumn   string
	TimeLayout          string
	SortOptions         extsort.Options
}

func (c *AverageSpeedConfig) applyDefaults() {
	if c.EnterTimeColumn == "" {
		c.EnterTimeColumn = "enter_time"
	}
	if c.LeaveTimeColumn == "" {
		c.LeaveTimeColumn = "leave_time"
	}
	if c.EdgeIDColumn == "" {
		c.EdgeIDColumn = "edge_id"
	}
	if c.StartCoordColumn == "" {
		c.StartCoordColumn = "start"
	}
	if c.EndCoordColumn == "" {
		c.EndCoordColumn = "end"
	}
	if c.WeekdayResultColumn == "" {
		c.WeekdayResultColumn = "weekday"
	}
	if c.HourResultColumn == "" {
		c.HourResultColumn = "hour"
	}
	if c.SpeedResultColumn == "" {
		c.SpeedResultColumn = "speed"
	}
	if c.TimeLayout == "" {
		c.TimeLayout = TimeLayout
	}
}

// AverageSpeed builds a graph measuring average speed in km/h per
// (weekday, hour), joining per-edge travel times from timeSource against
// per-edge road lengths from lengthSource.
func AverageSpeed(timeSource, lengthSource string, cfg AverageSpeedConfig) *graph.Graph {
	cfg.applyDefaults()

	timeGraph := graph.FromIter(timeSource).
		Map(builtins.CalculateTime{
			EnterTime:     cfg.EnterTimeColumn,
			Layout:        cfg.TimeLayout,
			WeekdayResult: cfg.WeekdayResultColumn,
			HourResult:    cfg.HourResultColumn,
		}).
		Sort([]string{cfg.EdgeIDColumn}, cfg.SortOptions)

	const lengthColumn = "length_column"
	lengthGraph := graph.FromIter(lengthSource).
		Map(builtins.CalculateLength{
			StartPoint:   cfg.StartCoordColumn,
			EndPoint:     cfg.EndCoordColumn,
			ResultColumn: lengthColumn,
		}).
		Sort([]string{cfg.EdgeIDColumn}, cfg.SortOptions)

	return timeGraph.Join(builtins.InnerJoiner{}, lengthGraph, []string{cfg.EdgeIDColumn}).
		Sort([]string{cfg.WeekdayResultColumn, cfg.HourResultColumn}, cfg.SortOptions).
		Reduce(builtins.CalculateSpeed{
			LengthColumn: lengthColumn,
			EnterColumn:  cfg.EnterTimeColumn,
			LeaveColumn:  cfg.LeaveTimeColumn,
			Layout:       cfg.TimeLayout,
			ResultColumn: cfg.SpeedResultColumn,
		}, []string{cfg.WeekdayResultColumn, cfg.HourResultColumn})
}
