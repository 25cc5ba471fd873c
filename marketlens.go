// Package marketlens ingests tabular market reports and derives structured
// analytical insights from the normalized metric series: market-condition
// classification, seasonal-deviation commentary, and trend-inflection
// detection.
//
// Every function here is a pure, synchronous transformation over in-memory
// data. Calls are independent and idempotent, so callers may parallelize
// freely; ExtractAll does exactly that for a batch of uploads.
package marketlens

import (
	"context"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"marketlens/internal/analytics"
	"marketlens/internal/config"
	"marketlens/internal/extraction"
	"marketlens/internal/infrastructure"
	"marketlens/internal/metrics"
	"marketlens/pkg/contracts/domain"
)

// maxConcurrentExtractions bounds ExtractAll's worker group.
const maxConcurrentExtractions = 4

var validate = newValidator()

// extractionMetrics lazily builds the otel extraction counters. Instrument
// creation can only fail on invalid names, so a failure is logged once and
// extraction proceeds unmetered.
var extractionMetrics = sync.OnceValue(func() *infrastructure.ExtractionMetrics {
	m, err := infrastructure.NewExtractionMetrics()
	if err != nil {
		infrastructure.GetLogger().Warn("extraction metrics disabled",
			slog.String("error", err.Error()))
		return nil
	}
	return m
})

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Extract converts raw spreadsheet bytes (XLSX workbook or delimited text)
// into normalized, validated metric records. Row-level problems surface as
// warnings on the result; only a sheet with no usable structure returns an
// error, and even then the result carries the error strings for display.
func Extract(ctx context.Context, raw []byte) (*domain.ExtractionResult, error) {
	extractor := extraction.NewExtractor(
		infrastructure.LoggerFromContext(ctx),
		config.Default().Extraction,
		extractionMetrics(),
	)
	return extractor.Extract(ctx, raw)
}

// ExtractAll runs one extraction per upload concurrently with a bounded
// group. Results keep the input order. A fatal extraction failure in one
// upload does not abort the others; per-upload errors live on each result.
func ExtractAll(ctx context.Context, uploads [][]byte) ([]*domain.ExtractionResult, error) {
	results := make([]*domain.ExtractionResult, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentExtractions)

	for i, raw := range uploads {
		g.Go(func() error {
			result, _ := Extract(gctx, raw)
			results[i] = result
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Validate bounds-checks a value against the metric's semantic range,
// flagging (never rejecting) outliers. Unknown metric ids pass through as
// non-outliers.
func Validate(metricTypeID string, value float64) domain.ValidationResult {
	return metrics.Validate(metricTypeID, value)
}

// MetricCatalog returns the fixed catalog of canonical metric definitions.
func MetricCatalog() []domain.MetricTypeDefinition {
	return metrics.Catalog
}

// ClassifyMarket runs weighted multi-factor scoring over supply, velocity,
// negotiation-leverage, and price-momentum signals. Missing signals are
// excluded from the weighted total; zero signals yield balanced with low
// confidence.
func ClassifyMarket(signals domain.MarketSignals) domain.MarketClassification {
	return analytics.ClassifyMarket(signals)
}

// CompareToSeasonal classifies an observed period-over-period percent change
// against the metric's monthly seasonal baseline. Metrics without a modeled
// baseline always classify as typical.
func CompareToSeasonal(metricID string, month int, observedChangePercent float64) domain.SeasonalComparison {
	return analytics.CompareToSeasonal(metricID, month, observedChangePercent)
}

// SeasonalContext renders the human-readable sentence variant of
// CompareToSeasonal. Empty for metrics without a modeled baseline.
func SeasonalContext(metricID string, month int, observedChangePercent float64) string {
	return analytics.SeasonalContext(metricID, month, observedChangePercent)
}

// DetectInflectionPoints finds local peaks/troughs and momentum shifts in a
// chronological series, returning at most five points ranked by magnitude
// and sorted by date.
func DetectInflectionPoints(series domain.TimeSeries, label string) []domain.InflectionPoint {
	return analytics.DetectInflectionPoints(series, label)
}

// BuildSeries groups metric records into per-metric, date-sorted series.
func BuildSeries(records []domain.MetricRecord) map[string]domain.TimeSeries {
	return analytics.BuildSeries(records)
}

// BuildTimeline produces the combined per-period view across metrics.
func BuildTimeline(records []domain.MetricRecord) []domain.CombinedPoint {
	return analytics.BuildTimeline(records)
}

// GenerateInsights composes classifier, seasonal, inflection, and spread
// outputs into the fixed-shape insight bundle. Missing upstream inputs
// suppress only the dependent insight.
func GenerateInsights(ctx context.Context, ictx domain.InsightContext) []domain.Insight {
	logger := infrastructure.LoggerFromContext(ctx)
	if err := validate.Struct(ictx); err != nil {
		logger.WarnContext(ctx, "insight context invalid", slog.String("error", err.Error()))
		return []domain.Insight{}
	}
	synthesizer := analytics.NewSynthesizer(logger)
	return synthesizer.GenerateInsights(ictx)
}
