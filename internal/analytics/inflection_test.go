package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketlens/internal/metrics"
	"marketlens/pkg/contracts/domain"
)

func monthlySeries(metricID string, values ...float64) domain.TimeSeries {
	points := make([]domain.TimelinePoint, len(values))
	for i, v := range values {
		points[i] = domain.TimelinePoint{
			Date:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0),
			Value: v,
		}
	}
	return domain.TimeSeries{MetricID: metricID, Points: points}
}

func TestDetectInflectionPoints_ShortSeries(t *testing.T) {
	series := monthlySeries(metrics.MedianPrice, 100, 200, 100, 200)

	got := DetectInflectionPoints(series, "")

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDetectInflectionPoints_MonotonicSeries(t *testing.T) {
	series := monthlySeries(metrics.MedianPrice,
		100, 110, 120, 130, 140, 150, 160, 170, 180, 190)

	got := DetectInflectionPoints(series, "")

	assert.Empty(t, got)
}

func TestDetectInflectionPoints_SinglePeak(t *testing.T) {
	series := monthlySeries(metrics.HomesSold, 100, 100, 130, 100, 100)

	got := DetectInflectionPoints(series, "Homes Sold")

	require.Len(t, got, 1)
	peak := got[0]
	assert.Equal(t, domain.InflectionPeak, peak.Type)
	assert.Equal(t, 130.0, peak.Value)
	assert.Equal(t, series.Points[2].Date, peak.Date)
	// Magnitude is the weaker adjacent move: 130 back to 100 is ~23%.
	assert.InDelta(t, 23.08, peak.Magnitude, 0.01)
	assert.Contains(t, peak.Description, "Homes Sold")
	assert.Contains(t, peak.Description, "peaked")
}

func TestDetectInflectionPoints_SingleTrough(t *testing.T) {
	series := monthlySeries(metrics.HomesSold, 100, 100, 70, 100, 100)

	got := DetectInflectionPoints(series, "")

	require.Len(t, got, 1)
	assert.Equal(t, domain.InflectionTrough, got[0].Type)
	assert.InDelta(t, 30.0, got[0].Magnitude, 0.01)
	assert.Contains(t, got[0].Description, metrics.HomesSold)
}

func TestDetectInflectionPoints_BelowThresholdIgnored(t *testing.T) {
	series := monthlySeries(metrics.MedianPrice, 100, 100, 104, 100, 100)

	got := DetectInflectionPoints(series, "")

	assert.Empty(t, got)
}

func TestDetectInflectionPoints_CappedAndDateSorted(t *testing.T) {
	// A long zigzag produces far more than five candidates.
	series := monthlySeries(metrics.ActiveListings,
		100, 150, 100, 150, 100, 150, 100, 150, 100, 150, 100, 150, 100)

	got := DetectInflectionPoints(series, "")

	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Date.Before(got[i].Date))
	}
}

func TestDetectInflectionPoints_MomentumShift(t *testing.T) {
	// Flat for half the series, then sharp growth: no local extrema, but
	// momentum accelerates at the turn.
	series := monthlySeries(metrics.MedianPrice,
		100, 100, 100, 100, 120, 140, 160, 180)

	got := DetectInflectionPoints(series, "")

	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Equal(t, domain.InflectionAcceleration, p.Type)
		assert.Contains(t, p.Description, "accelerated")
	}
}
