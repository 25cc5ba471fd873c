package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketlens/internal/metrics"
	"marketlens/pkg/contracts/domain"
)

func record(metricID string, date time.Time, value float64) domain.MetricRecord {
	return domain.MetricRecord{
		MetricTypeID: metricID,
		Value:        value,
		RecordedDate: date,
		Provenance:   domain.ProvenanceImported,
	}
}

func TestBuildSeries(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	records := []domain.MetricRecord{
		record(metrics.MedianPrice, feb, 455000),
		record(metrics.MedianPrice, jan, 450000),
		record(metrics.HomesSold, jan, 42),
	}

	series := BuildSeries(records)

	require.Len(t, series, 2)

	price := series[metrics.MedianPrice]
	require.Equal(t, 2, price.Len())
	assert.Equal(t, 450000.0, price.Points[0].Value)
	assert.Equal(t, 455000.0, price.Points[1].Value)
	assert.True(t, price.Points[0].Date.Before(price.Points[1].Date))

	sold := series[metrics.HomesSold]
	require.Equal(t, 1, sold.Len())
	assert.Equal(t, 42.0, sold.Points[0].Value)
}

func TestBuildSeries_LaterRecordWinsDuplicateDate(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	series := BuildSeries([]domain.MetricRecord{
		record(metrics.MedianPrice, jan, 450000),
		record(metrics.MedianPrice, jan, 460000),
	})

	price := series[metrics.MedianPrice]
	require.Equal(t, 1, price.Len())
	assert.Equal(t, 460000.0, price.Points[0].Value)
}

func TestBuildSeries_Empty(t *testing.T) {
	assert.Empty(t, BuildSeries(nil))
}

func TestBuildTimeline(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	timeline := BuildTimeline([]domain.MetricRecord{
		record(metrics.HomesSold, feb, 38),
		record(metrics.MedianPrice, jan, 450000),
		record(metrics.HomesSold, jan, 42),
	})

	require.Len(t, timeline, 2)
	assert.True(t, jan.Equal(timeline[0].Date))
	assert.Equal(t, 450000.0, timeline[0].Values[metrics.MedianPrice])
	assert.Equal(t, 42.0, timeline[0].Values[metrics.HomesSold])

	require.Len(t, timeline[1].Values, 1)
	assert.Equal(t, 38.0, timeline[1].Values[metrics.HomesSold])
}

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 10.0, PercentChange(100, 110), 0.001)
	assert.InDelta(t, -25.0, PercentChange(200, 150), 0.001)
	assert.Zero(t, PercentChange(0, 150))
	assert.Zero(t, PercentChange(100, 100))
}

func TestStats(t *testing.T) {
	series := monthlySeries(metrics.DaysOnMarket, 40, 20, 30)

	stats := Stats(series)

	assert.Equal(t, 30.0, stats.Latest)
	assert.Equal(t, 20.0, stats.Min)
	assert.Equal(t, 40.0, stats.Max)
	assert.InDelta(t, 30.0, stats.Average, 0.001)
	assert.Equal(t, 3, stats.Count)

	assert.Equal(t, SeriesStats{}, Stats(domain.TimeSeries{}))
}
