package domain

import (
	"time"
)

// MetricUnit identifies the semantic unit of a market metric.
type MetricUnit string

const (
	UnitUSD    MetricUnit = "USD"
	UnitCount  MetricUnit = "count"
	UnitDays   MetricUnit = "days"
	UnitMonths MetricUnit = "months"
	UnitRatio  MetricUnit = "ratio"
)

// Provenance records how a metric value entered the system.
type Provenance string

const (
	ProvenanceImported Provenance = "imported"
	ProvenanceManual   Provenance = "manual"
)

// MetricTypeDefinition describes one canonical market metric. The catalog of
// definitions is fixed; DisplayName is for presentation, MinValue/MaxValue are
// the semantic bounds used for outlier flagging.
type MetricTypeDefinition struct {
	ID          string     `json:"id" validate:"required"`
	DisplayName string     `json:"display_name" validate:"required"`
	Unit        MetricUnit `json:"unit" validate:"required,oneof=USD count days months ratio"`
	MinValue    float64    `json:"min_value"`
	MaxValue    float64    `json:"max_value"`
}

// MetricRecord is one normalized observation of a metric for a reporting
// period. Monthly series are anchored to the first day of the month.
// Outlier flags are informational and never remove data.
type MetricRecord struct {
	MetricTypeID  string     `json:"metric_type_id"`
	Value         float64    `json:"value"`
	RecordedDate  time.Time  `json:"recorded_date"`
	IsOutlier     bool       `json:"is_outlier"`
	OutlierReason string     `json:"outlier_reason,omitempty"`
	Provenance    Provenance `json:"provenance"`
}

// ValidationResult is the outcome of a bounds check on a single value.
type ValidationResult struct {
	IsOutlier bool   `json:"is_outlier"`
	Reason    string `json:"reason,omitempty"`
}

// ExtractionResult carries everything produced by one extraction batch.
// Warnings are non-fatal per-row issues; Errors are batch-fatal. Success is
// true iff at least one record was extracted and no fatal error occurred.
type ExtractionResult struct {
	BatchID  string         `json:"batch_id"`
	Records  []MetricRecord `json:"records"`
	Warnings []string       `json:"warnings,omitempty"`
	Errors   []string       `json:"errors,omitempty"`
	Success  bool           `json:"success"`
}

// AddWarning appends a non-fatal issue to the result.
func (r *ExtractionResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddError appends a batch-fatal issue to the result.
func (r *ExtractionResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}
