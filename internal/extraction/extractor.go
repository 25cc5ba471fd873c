package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketlens/internal/config"
	apperrors "marketlens/internal/errors"
	"marketlens/internal/infrastructure"
	"marketlens/internal/metrics"
	"marketlens/internal/validation"
	"marketlens/pkg/contracts/domain"
)

// exampleHeaders is quoted in the batch-fatal error when no metric columns
// can be recognized, so the caller knows what a usable report looks like.
var exampleHeaders = []string{"Median Sale Price", "Homes Sold", "Active Listings", "Days on Market"}

// Extractor orchestrates header mapping, date resolution, numeric parsing,
// and bounds validation into normalized metric records. One row's failure
// never aborts the batch.
type Extractor struct {
	logger  *slog.Logger
	cfg     config.ExtractionConfig
	metrics *infrastructure.ExtractionMetrics
	now     func() time.Time
}

// NewExtractor creates an extractor. metrics may be nil when observability
// is not wired up.
func NewExtractor(logger *slog.Logger, cfg config.ExtractionConfig, metrics *infrastructure.ExtractionMetrics) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HeaderScanDepth <= 0 {
		cfg.HeaderScanDepth = 10
	}
	return &Extractor{
		logger:  logger,
		cfg:     cfg,
		metrics: metrics,
		now:     time.Now,
	}
}

// Extract converts raw spreadsheet bytes (XLSX workbook or delimited text)
// into an ExtractionResult. Row-level problems become warnings; only a sheet
// with no usable structure at all is fatal, in which case the result carries
// the error strings and an EXTRACTION error is returned alongside it.
func (e *Extractor) Extract(ctx context.Context, raw []byte) (*domain.ExtractionResult, error) {
	result := &domain.ExtractionResult{BatchID: uuid.NewString()}
	logger := e.logger.With(slog.String("batch_id", result.BatchID))

	validator := validation.NewUploadValidator(logger, e.cfg.MaxUploadBytes)
	if err := validator.ValidateUpload(raw); err != nil {
		result.AddError(err.Error())
		return result, apperrors.NewValidationError("upload rejected", err)
	}

	rows, err := SheetRows(raw)
	if err != nil {
		result.AddError(err.Error())
		return result, apperrors.NewParsingError("could not read report sheet", err)
	}
	if len(rows) == 0 {
		result.AddError("sheet contains no rows")
		return result, apperrors.NewExtractionError("sheet contains no rows", nil)
	}

	headerIdx, cm := e.locateHeaders(rows)
	if headerIdx < 0 || len(cm.Metrics) == 0 {
		msg := fmt.Sprintf("no recognizable metric columns found; expected headers such as %q",
			strings.Join(exampleHeaders, `", "`))
		result.AddError(msg)
		logger.ErrorContext(ctx, "extraction failed: no metric columns",
			slog.Int("rows_scanned", min(len(rows), e.cfg.HeaderScanDepth)))
		return result, apperrors.NewExtractionError(msg, nil)
	}

	logger.InfoContext(ctx, "mapped report columns",
		slog.Int("header_row", headerIdx),
		slog.Int("metric_columns", len(cm.Metrics)),
		slog.Bool("has_date_column", cm.DateCol >= 0),
		slog.Bool("has_month_year", cm.MonthCol >= 0 && cm.YearCol >= 0),
		slog.Int("ytd_columns_skipped", len(cm.SkippedYTD)))

	fallbackDate := e.sheetFallbackDate(cm, result)

	metricCols := sortedMetricColumns(cm)
	rowsProcessed := 0
	outliers := 0

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowsProcessed++

		recordDate, ok := e.resolveRowDate(row, cm, fallbackDate)
		if !ok {
			result.AddWarning(fmt.Sprintf("row %d: could not resolve a date; row dropped", i+1))
			continue
		}

		for _, col := range metricCols {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}

			metricID := cm.Metrics[col]
			value, ok := ParseNumeric(cell)
			if !ok {
				result.AddWarning(fmt.Sprintf("row %d: could not parse %q for %s; value skipped",
					i+1, cell, metrics.DisplayName(metricID)))
				continue
			}

			check := metrics.Validate(metricID, value)
			if check.IsOutlier {
				outliers++
			}

			result.Records = append(result.Records, domain.MetricRecord{
				MetricTypeID:  metricID,
				Value:         value,
				RecordedDate:  recordDate,
				IsOutlier:     check.IsOutlier,
				OutlierReason: check.Reason,
				Provenance:    domain.ProvenanceImported,
			})
		}
	}

	result.Success = len(result.Records) > 0 && len(result.Errors) == 0

	if e.metrics != nil {
		e.metrics.RecordBatch(ctx, result.BatchID, rowsProcessed, len(result.Records), len(result.Warnings), outliers)
	}

	logger.InfoContext(ctx, "extraction complete",
		slog.Int("rows_processed", rowsProcessed),
		slog.Int("records_extracted", len(result.Records)),
		slog.Int("warnings", len(result.Warnings)),
		slog.Int("outliers_flagged", outliers),
		slog.Bool("success", result.Success))

	return result, nil
}

// locateHeaders maps the first row as headers and falls back to scanning the
// leading rows when that yields zero metric columns.
func (e *Extractor) locateHeaders(rows [][]string) (int, ColumnMap) {
	cm := MapHeaders(rows[0])
	if len(cm.Metrics) > 0 {
		return 0, cm
	}
	if idx, found, ok := findScoredHeader(rows, e.cfg.HeaderScanDepth); ok {
		return idx, found
	}
	return -1, cm
}

// findScoredHeader wraps FindHeaderRow and rejects candidates without any
// metric column: a date-only row is not a usable header.
func findScoredHeader(rows [][]string, scanDepth int) (int, ColumnMap, bool) {
	idx, cm, ok := FindHeaderRow(rows, scanDepth)
	if !ok || len(cm.Metrics) == 0 {
		return -1, cm, false
	}
	return idx, cm, true
}

// sheetFallbackDate returns the default record date for sheets that carry no
// date information anywhere, warning once. This keeps rows instead of losing
// them, at the cost of date precision.
func (e *Extractor) sheetFallbackDate(cm ColumnMap, result *domain.ExtractionResult) time.Time {
	if cm.HasDateInfo() || e.cfg.DisableCurrentMonthFallback {
		return time.Time{}
	}
	now := e.now().UTC()
	fallback := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	result.AddWarning(fmt.Sprintf("no date column detected; defaulting all records to %s",
		fallback.Format("2006-01-02")))
	return fallback
}

// resolveRowDate resolves a row's reporting date from the date column, then
// the month/year pair, then the sheet-level fallback.
func (e *Extractor) resolveRowDate(row []string, cm ColumnMap, fallback time.Time) (time.Time, bool) {
	if cm.DateCol >= 0 && cm.DateCol < len(row) {
		if d, ok := ResolveDate(row[cm.DateCol]); ok {
			return d, true
		}
	}
	if cm.MonthCol >= 0 && cm.YearCol >= 0 && cm.MonthCol < len(row) && cm.YearCol < len(row) {
		if d, ok := ResolveMonthYear(row[cm.MonthCol], row[cm.YearCol]); ok {
			return d, true
		}
	}
	if !fallback.IsZero() {
		return fallback, true
	}
	return time.Time{}, false
}

// sortedMetricColumns returns the mapped metric column indices in ascending
// order so extraction output is deterministic.
func sortedMetricColumns(cm ColumnMap) []int {
	cols := make([]int, 0, len(cm.Metrics))
	for col := range cm.Metrics {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
