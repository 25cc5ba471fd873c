package extraction

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketlens/internal/config"
	apperrors "marketlens/internal/errors"
	"marketlens/internal/metrics"
	"marketlens/pkg/contracts/domain"
)

func testExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(nil, config.ExtractionConfig{
		MaxUploadBytes:  1 << 20,
		HeaderScanDepth: 10,
	}, nil)
}

func recordsFor(result *domain.ExtractionResult, metricID string) []domain.MetricRecord {
	var out []domain.MetricRecord
	for _, r := range result.Records {
		if r.MetricTypeID == metricID {
			out = append(out, r)
		}
	}
	return out
}

func TestExtract_RoundTrip(t *testing.T) {
	csv := "Date,Median Sale Price,Active Listings\n2024-01-01,450000,120\n"

	result, err := testExtractor(t).Extract(context.Background(), []byte(csv))

	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.Records, 2)
	assert.Empty(t, result.Warnings)
	assert.NotEmpty(t, result.BatchID)

	want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, rec := range result.Records {
		assert.True(t, want.Equal(rec.RecordedDate))
		assert.False(t, rec.IsOutlier)
		assert.Equal(t, domain.ProvenanceImported, rec.Provenance)
	}

	median := recordsFor(result, metrics.MedianPrice)
	require.Len(t, median, 1)
	assert.Equal(t, 450000.0, median[0].Value)

	active := recordsFor(result, metrics.ActiveListings)
	require.Len(t, active, 1)
	assert.Equal(t, 120.0, active[0].Value)
}

func TestExtract_BannerRowBeforeHeaders(t *testing.T) {
	csv := strings.Join([]string{
		"Greater Springfield Market Report,,",
		"Date,Median Sale Price,Homes Sold",
		"2024-03-01,415000,38",
	}, "\n")

	result, err := testExtractor(t).Extract(context.Background(), []byte(csv))

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Len(t, result.Records, 2)
}

func TestExtract_NoMetricColumnsIsFatal(t *testing.T) {
	csv := "Region,Agent,Notes\nSpringfield,Smith,n/a\n"

	result, err := testExtractor(t).Extract(context.Background(), []byte(csv))

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeExtraction))
	assert.False(t, result.Success)
	assert.Empty(t, result.Records)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Median Sale Price")
}

func TestExtract_YTDColumnsNeverMapped(t *testing.T) {
	csv := "Date,Median Sale Price,YTD Homes Sold\n2024-02-01,430000,512\n"

	result, err := testExtractor(t).Extract(context.Background(), []byte(csv))

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, metrics.MedianPrice, result.Records[0].MetricTypeID)
}

func TestExtract_MonthYearColumns(t *testing.T) {
	csv := "Month,Year,Median Sale Price\nMarch,2024,425000\n4,2024,428000\n"

	result, err := testExtractor(t).Extract(context.Background(), []byte(csv))

	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), result.Records[0].RecordedDate)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), result.Records[1].RecordedDate)
}

func TestExtract_CurrentMonthFallback(t *testing.T) {
	e := testExtractor(t)
	e.now = func() time.Time {
		return time.Date(2024, time.June, 17, 9, 30, 0, 0, time.UTC)
	}

	csv := "Median Sale Price,Homes Sold\n440000,51\n"

	result, err := e.Extract(context.Background(), []byte(csv))

	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	want := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	for _, rec := range result.Records {
		assert.True(t, want.Equal(rec.RecordedDate))
	}
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "2024-06-01")
}

func TestExtract_FallbackDisabledDropsUndatedRows(t *testing.T) {
	e := NewExtractor(nil, config.ExtractionConfig{
		MaxUploadBytes:              1 << 20,
		HeaderScanDepth:             10,
		DisableCurrentMonthFallback: true,
	}, nil)

	csv := "Median Sale Price,Homes Sold\n440000,51\n"

	result, err := e.Extract(context.Background(), []byte(csv))

	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.False(t, result.Success)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "row dropped")
}

func TestExtract_UnparseableCellWarnsAndContinues(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Median Sale Price,Homes Sold",
		"2024-01-01,not a number,42",
		"2024-02-01,455000,40",
	}, "\n")

	result, err := testExtractor(t).Extract(context.Background(), []byte(csv))

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Len(t, result.Records, 3)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Median Sale Price")
}

func TestExtract_OutOfBoundsValueFlaggedNotDropped(t *testing.T) {
	csv := "Date,Median Sale Price\n2024-01-01,99000000\n"

	result, err := testExtractor(t).Extract(context.Background(), []byte(csv))

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.True(t, result.Records[0].IsOutlier)
	assert.NotEmpty(t, result.Records[0].OutlierReason)
	assert.True(t, result.Success)
}

func TestExtract_EmptyRowsSkipped(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Median Sale Price",
		"2024-01-01,450000",
		",",
		"2024-02-01,452000",
	}, "\n")

	result, err := testExtractor(t).Extract(context.Background(), []byte(csv))

	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
	assert.Empty(t, result.Warnings)
}

func TestExtract_EmptyUploadRejected(t *testing.T) {
	result, err := testExtractor(t).Extract(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)
}

func TestSheetRows_TabDelimited(t *testing.T) {
	tsv := "Date\tMedian Sale Price\n2024-01-01\t450000\n"

	rows, err := SheetRows([]byte(tsv))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Date", "Median Sale Price"}, rows[0])
}

func TestSheetRows_StripsBOM(t *testing.T) {
	csv := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Homes Sold\n2024-01-01,42\n")...)

	rows, err := SheetRows(csv)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Date", rows[0][0])
}
