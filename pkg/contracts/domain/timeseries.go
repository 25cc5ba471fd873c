package domain

import (
	"time"
)

// TimelinePoint is one dated observation in a metric's time series.
type TimelinePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TimeSeries is a date-sorted sequence of observations for one metric.
// Derived from MetricRecords; never persisted by this core.
type TimeSeries struct {
	MetricID string          `json:"metric_id"`
	Points   []TimelinePoint `json:"points"`
}

// Len reports the number of observations in the series.
func (s TimeSeries) Len() int { return len(s.Points) }

// Latest returns the most recent observation, or false when the series is empty.
func (s TimeSeries) Latest() (TimelinePoint, bool) {
	if len(s.Points) == 0 {
		return TimelinePoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// CombinedPoint is the cross-metric view of a single reporting period:
// every metric value recorded for the same date.
type CombinedPoint struct {
	Date   time.Time          `json:"date"`
	Values map[string]float64 `json:"values"`
}

// Value looks up a metric value for this period.
func (p CombinedPoint) Value(metricID string) (float64, bool) {
	v, ok := p.Values[metricID]
	return v, ok
}
