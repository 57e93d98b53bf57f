package player

import (
	"fmt"
	"math"
)

// MetricNames is the fixed ordered metric universe carried by every record,
// matching the source export block from "Goals" through "Penalty conversion, %".
var MetricNames = []string{
	"Goals",
	"xG",
	"Assists",
	"xA",
	"Shots",
	"Shots on target, %",
	"Goal conversion, %",
	"Passes per 90",
	"Accurate passes, %",
	"Key passes per 90",
	"Dribbles per 90",
	"Successful dribbles, %",
	"Touches in box per 90",
	"Penalty conversion, %",
}

var metricSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(MetricNames))
	for _, name := range MetricNames {
		set[name] = struct{}{}
	}
	return set
}()

// KnownMetric reports whether name belongs to the metric universe.
func KnownMetric(name string) bool {
	_, ok := metricSet[name]
	return ok
}

// Record is one season of performance data for a single player. Metrics maps
// metric name to value; a nil entry means the value was missing in the source
// data and must stay missing downstream.
type Record struct {
	Name          string
	ParentTeam    string
	Team          string
	League        string
	Season        string
	Age           int
	Position      string
	PositionGroup string
	MinutesPlayed int
	Metrics       map[string]*float64
}

func (r Record) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if r.ParentTeam == "" {
		return fmt.Errorf("player parent team is required")
	}
	if r.Team == "" {
		return fmt.Errorf("player team is required")
	}
	if r.League == "" {
		return fmt.Errorf("player league is required")
	}
	if r.Season == "" {
		return fmt.Errorf("player season is required")
	}
	if r.PositionGroup == "" {
		return fmt.Errorf("player position group is required")
	}
	if r.MinutesPlayed < 0 {
		return fmt.Errorf("player minutes played must not be negative")
	}
	for name, value := range r.Metrics {
		if !KnownMetric(name) {
			return fmt.Errorf("unknown metric: %s", name)
		}
		if value == nil {
			continue
		}
		if math.IsNaN(*value) || math.IsInf(*value, 0) {
			return fmt.Errorf("metric %s is not finite", name)
		}
		if *value < 0 {
			return fmt.Errorf("metric %s must not be negative", name)
		}
	}

	return nil
}

// MetricValue returns the stored value for name, or nil when the metric is
// absent for this record.
func (r Record) MetricValue(name string) *float64 {
	value, ok := r.Metrics[name]
	if !ok || value == nil {
		return nil
	}
	v := *value
	return &v
}

// Clone returns a deep copy safe to hand across repository boundaries.
func (r Record) Clone() Record {
	copied := r
	if r.Metrics != nil {
		copied.Metrics = make(map[string]*float64, len(r.Metrics))
		for name, value := range r.Metrics {
			if value == nil {
				copied.Metrics[name] = nil
				continue
			}
			v := *value
			copied.Metrics[name] = &v
		}
	}
	return copied
}
