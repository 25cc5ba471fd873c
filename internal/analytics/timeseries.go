// Package analytics derives structured insights from normalized metric time
// series: market-condition classification, seasonal-deviation comparison,
// trend-inflection detection, and insight synthesis. Every function is a
// pure transformation over in-memory data and degrades to a well-typed
// neutral result when its input is missing or insufficient.
package analytics

import (
	"sort"
	"time"

	"marketlens/pkg/contracts/domain"
)

// BuildSeries groups metric records into per-metric series, sorted ascending
// by date. When the same (metric, date) pair appears more than once the later
// record wins, matching the append-only upsert semantics of the consuming
// store.
func BuildSeries(records []domain.MetricRecord) map[string]domain.TimeSeries {
	byMetric := make(map[string]map[time.Time]float64)
	for _, rec := range records {
		day := rec.RecordedDate.Truncate(24 * time.Hour)
		if byMetric[rec.MetricTypeID] == nil {
			byMetric[rec.MetricTypeID] = make(map[time.Time]float64)
		}
		byMetric[rec.MetricTypeID][day] = rec.Value
	}

	series := make(map[string]domain.TimeSeries, len(byMetric))
	for metricID, byDate := range byMetric {
		points := make([]domain.TimelinePoint, 0, len(byDate))
		for date, value := range byDate {
			points = append(points, domain.TimelinePoint{Date: date, Value: value})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
		series[metricID] = domain.TimeSeries{MetricID: metricID, Points: points}
	}
	return series
}

// BuildTimeline produces the combined per-period view: one point per
// reporting date carrying every metric recorded for it, sorted ascending.
func BuildTimeline(records []domain.MetricRecord) []domain.CombinedPoint {
	byDate := make(map[time.Time]map[string]float64)
	for _, rec := range records {
		day := rec.RecordedDate.Truncate(24 * time.Hour)
		if byDate[day] == nil {
			byDate[day] = make(map[string]float64)
		}
		byDate[day][rec.MetricTypeID] = rec.Value
	}

	timeline := make([]domain.CombinedPoint, 0, len(byDate))
	for date, values := range byDate {
		timeline = append(timeline, domain.CombinedPoint{Date: date, Values: values})
	}
	sort.Slice(timeline, func(i, j int) bool { return timeline[i].Date.Before(timeline[j].Date) })
	return timeline
}

// PercentChange computes the percent change from previous to current.
// A zero previous value yields zero rather than a division blowup.
func PercentChange(previous, current float64) float64 {
	if previous == 0 {
		return 0
	}
	return ((current - previous) / previous) * 100
}

// SeriesStats summarizes one metric series for insight synthesis.
type SeriesStats struct {
	Latest  float64
	Min     float64
	Max     float64
	Average float64
	Count   int
}

// Stats computes summary statistics over a series. Empty series yield the
// zero value.
func Stats(series domain.TimeSeries) SeriesStats {
	if len(series.Points) == 0 {
		return SeriesStats{}
	}

	stats := SeriesStats{
		Min:   series.Points[0].Value,
		Max:   series.Points[0].Value,
		Count: len(series.Points),
	}
	sum := 0.0
	for _, p := range series.Points {
		if p.Value < stats.Min {
			stats.Min = p.Value
		}
		if p.Value > stats.Max {
			stats.Max = p.Value
		}
		sum += p.Value
	}
	stats.Latest = series.Points[len(series.Points)-1].Value
	stats.Average = sum / float64(len(series.Points))
	return stats
}
