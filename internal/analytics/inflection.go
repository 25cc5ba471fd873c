package analytics

import (
	"fmt"
	"math"
	"sort"

	"marketlens/pkg/contracts/domain"
)

const (
	// minInflectionPoints is the shortest series the detector will analyze.
	minInflectionPoints = 5
	// inflectionThreshold is the minimum magnitude, in percent, for a
	// candidate to be reported.
	inflectionThreshold = 5.0
	// maxInflectionPoints caps the output after ranking by magnitude.
	maxInflectionPoints = 5
)

// DetectInflectionPoints finds local peaks/troughs and momentum shifts in a
// chronological series. Candidates from both detectors are merged, ranked
// descending by magnitude, capped at five, then re-sorted ascending by date
// for chronological display. Series shorter than five points yield an empty
// slice.
func DetectInflectionPoints(series domain.TimeSeries, label string) []domain.InflectionPoint {
	points := series.Points
	if len(points) < minInflectionPoints {
		return []domain.InflectionPoint{}
	}
	if label == "" {
		label = series.MetricID
	}

	candidates := detectExtrema(points, label)
	candidates = append(candidates, detectMomentumShifts(points, label)...)

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Magnitude > candidates[j].Magnitude
	})
	if len(candidates) > maxInflectionPoints {
		candidates = candidates[:maxInflectionPoints]
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Date.Before(candidates[j].Date)
	})
	return candidates
}

// detectExtrema compares each interior point to its immediate neighbors.
// Magnitude is the smaller of the two adjacent percent deltas, a
// conservative weakest-link measure.
func detectExtrema(points []domain.TimelinePoint, label string) []domain.InflectionPoint {
	var found []domain.InflectionPoint

	for i := 1; i < len(points)-1; i++ {
		prev, cur, next := points[i-1].Value, points[i].Value, points[i+1].Value

		isPeak := cur > prev && cur > next
		isTrough := cur < prev && cur < next
		if !isPeak && !isTrough {
			continue
		}

		deltaIn := math.Abs(PercentChange(prev, cur))
		deltaOut := math.Abs(PercentChange(cur, next))
		magnitude := math.Min(deltaIn, deltaOut)
		if magnitude < inflectionThreshold {
			continue
		}

		if isPeak {
			found = append(found, domain.InflectionPoint{
				Date:        points[i].Date,
				Value:       cur,
				Type:        domain.InflectionPeak,
				Magnitude:   magnitude,
				Description: fmt.Sprintf("%s peaked at %s", label, formatSeriesValue(cur)),
			})
		} else {
			found = append(found, domain.InflectionPoint{
				Date:        points[i].Date,
				Value:       cur,
				Type:        domain.InflectionTrough,
				Magnitude:   magnitude,
				Description: fmt.Sprintf("%s bottomed out at %s", label, formatSeriesValue(cur)),
			})
		}
	}
	return found
}

// detectMomentumShifts looks for changes in the rate of change using a
// 3-point rolling window: previous momentum over points i-3..i-1, current
// momentum over points i..i+2.
func detectMomentumShifts(points []domain.TimelinePoint, label string) []domain.InflectionPoint {
	var found []domain.InflectionPoint

	for i := 3; i+2 < len(points); i++ {
		prevMomentum := PercentChange(points[i-3].Value, points[i-1].Value)
		curMomentum := PercentChange(points[i].Value, points[i+2].Value)

		delta := curMomentum - prevMomentum
		if math.Abs(delta) <= inflectionThreshold {
			continue
		}

		if delta > 0 {
			found = append(found, domain.InflectionPoint{
				Date:        points[i].Date,
				Value:       points[i].Value,
				Type:        domain.InflectionAcceleration,
				Magnitude:   math.Abs(delta),
				Description: fmt.Sprintf("%s momentum accelerated", label),
			})
		} else {
			found = append(found, domain.InflectionPoint{
				Date:        points[i].Date,
				Value:       points[i].Value,
				Type:        domain.InflectionDeceleration,
				Magnitude:   math.Abs(delta),
				Description: fmt.Sprintf("%s momentum decelerated", label),
			})
		}
	}
	return found
}

// formatSeriesValue renders a value compactly for descriptions.
func formatSeriesValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
