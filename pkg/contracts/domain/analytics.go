package domain

import (
	"time"
)

// MarketCondition is the three-way market classification.
type MarketCondition string

const (
	ConditionSellers  MarketCondition = "sellers"
	ConditionBuyers   MarketCondition = "buyers"
	ConditionBalanced MarketCondition = "balanced"
)

// ConfidenceLevel expresses how decisively the weighted signals agree.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// MarketFactor records one signal's contribution to a classification:
// the raw value, the side it indicates, its weight, and a one-line
// justification for downstream display.
type MarketFactor struct {
	Metric      string          `json:"metric"`
	Value       float64         `json:"value"`
	Indicator   MarketCondition `json:"indicator"`
	Weight      float64         `json:"weight"`
	Description string          `json:"description"`
}

// MarketClassification is the full output of the market condition classifier.
type MarketClassification struct {
	Condition  MarketCondition `json:"condition"`
	Confidence ConfidenceLevel `json:"confidence"`
	Factors    []MarketFactor  `json:"factors"`
}

// MarketSignals are the optional inputs to the classifier. Nil pointers mean
// the signal was not supplied and is excluded from the weighted total.
// PriceYoYChange is a percentage (8 means +8%); ListToSaleRatio is a decimal
// ratio (1.02 means 102%).
type MarketSignals struct {
	MonthsOfSupply  *float64 `json:"months_of_supply,omitempty"`
	DaysOnMarket    *float64 `json:"days_on_market,omitempty"`
	ListToSaleRatio *float64 `json:"list_to_sale_ratio,omitempty"`
	PriceYoYChange  *float64 `json:"price_yoy_change,omitempty"`
}

// SeasonalComparison classifies an observed change against the monthly
// seasonal baseline for a metric.
type SeasonalComparison string

const (
	SeasonalAbove   SeasonalComparison = "above"
	SeasonalBelow   SeasonalComparison = "below"
	SeasonalTypical SeasonalComparison = "typical"
)

// InflectionType distinguishes local reversals from momentum shifts.
type InflectionType string

const (
	InflectionPeak         InflectionType = "peak"
	InflectionTrough       InflectionType = "trough"
	InflectionAcceleration InflectionType = "acceleration"
	InflectionDeceleration InflectionType = "deceleration"
)

// Glyph returns the display glyph for an inflection type. Presentation hint
// only; not part of the analytical contract.
func (t InflectionType) Glyph() string {
	switch t {
	case InflectionPeak:
		return "▲"
	case InflectionTrough:
		return "▼"
	case InflectionAcceleration:
		return "⬆"
	case InflectionDeceleration:
		return "⬇"
	default:
		return ""
	}
}

// Color returns the display color for an inflection type. Presentation hint
// only; not part of the analytical contract.
func (t InflectionType) Color() string {
	switch t {
	case InflectionPeak:
		return "green"
	case InflectionTrough:
		return "red"
	case InflectionAcceleration:
		return "blue"
	case InflectionDeceleration:
		return "orange"
	default:
		return "gray"
	}
}

// InflectionPoint marks a local peak/trough or a momentum shift in a series.
// Magnitude is a percentage.
type InflectionPoint struct {
	Date        time.Time      `json:"date"`
	Value       float64        `json:"value"`
	Type        InflectionType `json:"type"`
	Magnitude   float64        `json:"magnitude"`
	Description string         `json:"description"`
}
