package metrics

import (
	"fmt"

	"marketlens/pkg/contracts/domain"
)

// Validate bounds-checks a value against the metric's semantic range.
// Out-of-range values are flagged, never rejected or mutated. Unknown metric
// ids pass through as non-outliers.
func Validate(metricTypeID string, value float64) domain.ValidationResult {
	def, ok := Lookup(metricTypeID)
	if !ok {
		return domain.ValidationResult{IsOutlier: false}
	}

	if value < def.MinValue {
		return domain.ValidationResult{
			IsOutlier: true,
			Reason: fmt.Sprintf("%s value %s is below the expected minimum of %s",
				def.DisplayName, formatValue(value, def.Unit), formatValue(def.MinValue, def.Unit)),
		}
	}
	if value > def.MaxValue {
		return domain.ValidationResult{
			IsOutlier: true,
			Reason: fmt.Sprintf("%s value %s is above the expected maximum of %s",
				def.DisplayName, formatValue(value, def.Unit), formatValue(def.MaxValue, def.Unit)),
		}
	}

	return domain.ValidationResult{IsOutlier: false}
}

// formatValue renders a value with its unit for outlier reasons.
func formatValue(value float64, unit domain.MetricUnit) string {
	switch unit {
	case domain.UnitUSD:
		return fmt.Sprintf("$%.0f", value)
	case domain.UnitRatio:
		return fmt.Sprintf("%.2f", value)
	case domain.UnitCount:
		return fmt.Sprintf("%.0f", value)
	default:
		return fmt.Sprintf("%.1f %s", value, unit)
	}
}
