package analytics

import (
	"fmt"
	"time"

	"marketlens/internal/metrics"
	"marketlens/pkg/contracts/domain"
)

// seasonalTolerance is the band, in percentage points, around the monthly
// baseline within which an observed change counts as typical.
const seasonalTolerance = 3.0

// strongMonthCutoff is the baseline deviation, in percentage points, beyond
// which a month counts as typically strong (or weak) for a metric.
const strongMonthCutoff = 2.0

// seasonalBaselines models expected month-over-month percent change by
// calendar month, derived from typical residential-market seasonality:
// the spring-market upswing, the summer plateau, and the holiday slowdown.
// Index 0 is January.
var seasonalBaselines = map[string][12]float64{
	metrics.MedianPrice:    {-1.5, 0.5, 2.0, 2.5, 2.0, 1.5, 0.5, -0.5, -1.0, -1.0, -1.5, -1.0},
	metrics.HomesSold:      {-8, 2, 10, 8, 6, 5, -2, -3, -5, -4, -10, -8},
	metrics.NewListings:    {5, 8, 12, 10, 6, 2, -2, -4, -3, -6, -12, -15},
	metrics.ActiveListings: {-2, 1, 5, 6, 5, 4, 2, 0, -2, -4, -6, -8},
	metrics.DaysOnMarket:   {8, 4, -5, -8, -6, -4, -1, 2, 3, 4, 6, 8},
}

// CompareToSeasonal classifies an observed period-over-period percent change
// against the metric's monthly baseline. Metrics without a modeled baseline,
// and out-of-range months, always classify as typical.
func CompareToSeasonal(metricID string, month int, observedChangePercent float64) domain.SeasonalComparison {
	baseline, ok := baselineFor(metricID, month)
	if !ok {
		return domain.SeasonalTypical
	}

	switch {
	case observedChangePercent > baseline+seasonalTolerance:
		return domain.SeasonalAbove
	case observedChangePercent < baseline-seasonalTolerance:
		return domain.SeasonalBelow
	default:
		return domain.SeasonalTypical
	}
}

// SeasonalContext renders a human-readable sentence situating the observed
// change against the seasonal baseline. Metrics without a modeled baseline
// yield an empty string.
func SeasonalContext(metricID string, month int, observedChangePercent float64) string {
	baseline, ok := baselineFor(metricID, month)
	if !ok {
		return ""
	}

	name := metrics.DisplayName(metricID)
	monthName := MonthName(month)
	comparison := CompareToSeasonal(metricID, month, observedChangePercent)

	switch comparison {
	case domain.SeasonalAbove:
		return fmt.Sprintf("%s moved %.1f%% in %s, ahead of the typical %.1f%% for this time of year",
			name, observedChangePercent, monthName, baseline)
	case domain.SeasonalBelow:
		return fmt.Sprintf("%s moved %.1f%% in %s, behind the typical %.1f%% for this time of year",
			name, observedChangePercent, monthName, baseline)
	default:
		return fmt.Sprintf("%s moved %.1f%% in %s, in line with the typical %.1f%% for this time of year",
			name, observedChangePercent, monthName, baseline)
	}
}

// MonthName returns the English month name, or an empty string for
// out-of-range values.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

// SeasonLabel returns the coarse season for a month: spring (Mar-May),
// summer (Jun-Aug), fall (Sep-Nov), winter otherwise.
func SeasonLabel(month int) string {
	switch {
	case month >= 3 && month <= 5:
		return "spring"
	case month >= 6 && month <= 8:
		return "summer"
	case month >= 9 && month <= 11:
		return "fall"
	default:
		return "winter"
	}
}

// IsTypicallyStrongMonth reports whether the month's baseline favors the
// metric. For days on market the sign convention inverts: shorter market
// time is the strong direction.
func IsTypicallyStrongMonth(metricID string, month int) bool {
	baseline, ok := baselineFor(metricID, month)
	if !ok {
		return false
	}
	if metricID == metrics.DaysOnMarket {
		return baseline <= -strongMonthCutoff
	}
	return baseline >= strongMonthCutoff
}

// IsTypicallyWeakMonth is the inverse helper of IsTypicallyStrongMonth.
func IsTypicallyWeakMonth(metricID string, month int) bool {
	baseline, ok := baselineFor(metricID, month)
	if !ok {
		return false
	}
	if metricID == metrics.DaysOnMarket {
		return baseline >= strongMonthCutoff
	}
	return baseline <= -strongMonthCutoff
}

func baselineFor(metricID string, month int) (float64, bool) {
	if month < 1 || month > 12 {
		return 0, false
	}
	baselines, ok := seasonalBaselines[metricID]
	if !ok {
		return 0, false
	}
	return baselines[month-1], true
}
