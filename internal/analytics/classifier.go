package analytics

import (
	"fmt"

	"marketlens/pkg/contracts/domain"
)

// Classification score cutoffs. A side must carry at least 60% of the
// supplied weight to win; 80% upgrades confidence to high.
const (
	conditionCutoff      = 0.6
	highConfidenceCutoff = 0.8
)

// signalRule describes one classifier input as data: where to read it, how
// to classify it, its weight, and how to justify it. Adding a signal means
// adding a table entry, not new branching.
type signalRule struct {
	metric   string
	weight   float64
	value    func(domain.MarketSignals) *float64
	classify func(v float64) domain.MarketCondition
	describe func(v float64, c domain.MarketCondition) string
}

var signalRules = []signalRule{
	{
		metric: "months_of_supply",
		weight: 3,
		value:  func(s domain.MarketSignals) *float64 { return s.MonthsOfSupply },
		classify: func(v float64) domain.MarketCondition {
			switch {
			case v < 4:
				return domain.ConditionSellers
			case v > 6:
				return domain.ConditionBuyers
			default:
				return domain.ConditionBalanced
			}
		},
		describe: func(v float64, c domain.MarketCondition) string {
			switch c {
			case domain.ConditionSellers:
				return fmt.Sprintf("%.1f months of supply is tight inventory favoring sellers", v)
			case domain.ConditionBuyers:
				return fmt.Sprintf("%.1f months of supply is excess inventory favoring buyers", v)
			default:
				return fmt.Sprintf("%.1f months of supply is in the balanced range", v)
			}
		},
	},
	{
		metric: "days_on_market",
		weight: 2,
		value:  func(s domain.MarketSignals) *float64 { return s.DaysOnMarket },
		classify: func(v float64) domain.MarketCondition {
			switch {
			case v < 30:
				return domain.ConditionSellers
			case v > 60:
				return domain.ConditionBuyers
			default:
				return domain.ConditionBalanced
			}
		},
		describe: func(v float64, c domain.MarketCondition) string {
			switch c {
			case domain.ConditionSellers:
				return fmt.Sprintf("homes are selling in %.0f days, a fast pace favoring sellers", v)
			case domain.ConditionBuyers:
				return fmt.Sprintf("homes are taking %.0f days to sell, giving buyers time and leverage", v)
			default:
				return fmt.Sprintf("homes are selling in a typical %.0f days", v)
			}
		},
	},
	{
		metric: "list_to_sale_ratio",
		weight: 2,
		value:  func(s domain.MarketSignals) *float64 { return s.ListToSaleRatio },
		classify: func(v float64) domain.MarketCondition {
			switch {
			case v >= 1.0:
				return domain.ConditionSellers
			case v < 0.97:
				return domain.ConditionBuyers
			default:
				return domain.ConditionBalanced
			}
		},
		describe: func(v float64, c domain.MarketCondition) string {
			switch c {
			case domain.ConditionSellers:
				return fmt.Sprintf("homes are closing at %.1f%% of list price, at or above asking", v*100)
			case domain.ConditionBuyers:
				return fmt.Sprintf("homes are closing at %.1f%% of list price, leaving room to negotiate", v*100)
			default:
				return fmt.Sprintf("homes are closing at %.1f%% of list price", v*100)
			}
		},
	},
	{
		metric: "price_yoy_change",
		weight: 1,
		value:  func(s domain.MarketSignals) *float64 { return s.PriceYoYChange },
		classify: func(v float64) domain.MarketCondition {
			switch {
			case v >= 5:
				return domain.ConditionSellers
			case v <= 0:
				return domain.ConditionBuyers
			default:
				return domain.ConditionBalanced
			}
		},
		describe: func(v float64, c domain.MarketCondition) string {
			switch c {
			case domain.ConditionSellers:
				return fmt.Sprintf("prices are up %.1f%% year over year, strong appreciation", v)
			case domain.ConditionBuyers:
				return fmt.Sprintf("prices are down %.1f%% year over year", -v)
			default:
				return fmt.Sprintf("prices are up a modest %.1f%% year over year", v)
			}
		},
	},
}

// ClassifyMarket runs weighted multi-factor scoring over the supplied
// signals. Missing signals are excluded from the weighted total rather than
// causing failure; zero signals yield balanced with low confidence and an
// empty factor list.
func ClassifyMarket(signals domain.MarketSignals) domain.MarketClassification {
	var factors []domain.MarketFactor
	var totalWeight, sellersScore, buyersScore float64

	for _, rule := range signalRules {
		v := rule.value(signals)
		if v == nil {
			continue
		}

		indicator := rule.classify(*v)
		totalWeight += rule.weight
		switch indicator {
		case domain.ConditionSellers:
			sellersScore += rule.weight
		case domain.ConditionBuyers:
			buyersScore += rule.weight
		}

		factors = append(factors, domain.MarketFactor{
			Metric:      rule.metric,
			Value:       *v,
			Indicator:   indicator,
			Weight:      rule.weight,
			Description: rule.describe(*v, indicator),
		})
	}

	if totalWeight == 0 {
		return domain.MarketClassification{
			Condition:  domain.ConditionBalanced,
			Confidence: domain.ConfidenceLow,
			Factors:    []domain.MarketFactor{},
		}
	}

	sellersRatio := sellersScore / totalWeight
	buyersRatio := buyersScore / totalWeight

	condition := domain.ConditionBalanced
	var confidence domain.ConfidenceLevel

	switch {
	case sellersRatio >= conditionCutoff:
		condition = domain.ConditionSellers
		confidence = ratioConfidence(sellersRatio)
	case buyersRatio >= conditionCutoff:
		condition = domain.ConditionBuyers
		confidence = ratioConfidence(buyersRatio)
	default:
		confidence = balancedConfidence(sellersRatio, buyersRatio)
	}

	return domain.MarketClassification{
		Condition:  condition,
		Confidence: confidence,
		Factors:    factors,
	}
}

func ratioConfidence(ratio float64) domain.ConfidenceLevel {
	if ratio >= highConfidenceCutoff {
		return domain.ConfidenceHigh
	}
	return domain.ConfidenceMedium
}

// balancedConfidence is high when neither side has traction, medium when the
// stronger side stays under half the weight, low otherwise.
func balancedConfidence(sellersRatio, buyersRatio float64) domain.ConfidenceLevel {
	larger := sellersRatio
	if buyersRatio > larger {
		larger = buyersRatio
	}
	switch {
	case sellersRatio < 0.4 && buyersRatio < 0.4:
		return domain.ConfidenceHigh
	case larger < 0.5:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
