package analytics

import (
	"fmt"
	"log/slog"
	"math"

	"marketlens/internal/metrics"
	"marketlens/pkg/contracts/domain"
)

// spreadSignificanceGate: the average/median price gap must exceed this share
// of the median before a spread insight is emitted.
const spreadSignificanceGate = 0.05

// Synthesizer composes classifier, seasonal, and spread outputs into short
// structured insight statements for client conversation.
type Synthesizer struct {
	logger *slog.Logger
}

// NewSynthesizer creates an insight synthesizer.
func NewSynthesizer(logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{logger: logger}
}

// GenerateInsights produces the fixed-shape insight bundle for the latest
// reporting period: market condition, price, inventory, velocity, and an
// optional price-spread insight. Missing upstream inputs suppress only the
// dependent insight, never the whole bundle.
func (s *Synthesizer) GenerateInsights(ictx domain.InsightContext) []domain.Insight {
	insights := []domain.Insight{}
	if ictx.Latest.Values == nil {
		s.logger.Warn("insight synthesis skipped: latest period has no values")
		return insights
	}

	month := int(ictx.Latest.Date.Month())

	if insight, ok := s.marketConditionInsight(ictx); ok {
		insights = append(insights, insight)
	}
	if insight, ok := s.priceInsight(ictx, month); ok {
		insights = append(insights, insight)
	}
	if insight, ok := s.inventoryInsight(ictx, month); ok {
		insights = append(insights, insight)
	}
	if insight, ok := s.velocityInsight(ictx, month); ok {
		insights = append(insights, insight)
	}
	if insight, ok := s.priceSpreadInsight(ictx.Latest); ok {
		insights = append(insights, insight)
	}

	s.logger.Info("insight synthesis complete",
		slog.Int("insights", len(insights)),
		slog.String("period", ictx.Latest.Date.Format("2006-01-02")))

	return insights
}

// collectSignals assembles classifier inputs from the latest period, deriving
// months of supply from active listings and monthly sales when it was not
// reported directly.
func (s *Synthesizer) collectSignals(ictx domain.InsightContext) domain.MarketSignals {
	var signals domain.MarketSignals

	if mos, ok := ictx.Latest.Value(metrics.MonthsOfSupply); ok {
		signals.MonthsOfSupply = &mos
	} else if active, ok := ictx.Latest.Value(metrics.ActiveListings); ok {
		if sold, ok := ictx.Latest.Value(metrics.HomesSold); ok && sold > 0 {
			derived := active / sold
			signals.MonthsOfSupply = &derived
		}
	}

	if dom, ok := ictx.Latest.Value(metrics.DaysOnMarket); ok {
		signals.DaysOnMarket = &dom
	}
	if ratio, ok := ictx.Latest.Value(metrics.ListToSaleRatio); ok {
		signals.ListToSaleRatio = &ratio
	}

	if ictx.PriorYear != nil {
		if current, ok := ictx.Latest.Value(metrics.MedianPrice); ok {
			if prior, ok := ictx.PriorYear.Value(metrics.MedianPrice); ok && prior != 0 {
				yoy := PercentChange(prior, current)
				signals.PriceYoYChange = &yoy
			}
		}
	}

	return signals
}

func (s *Synthesizer) marketConditionInsight(ictx domain.InsightContext) (domain.Insight, bool) {
	classification := ClassifyMarket(s.collectSignals(ictx))
	if len(classification.Factors) == 0 {
		return domain.Insight{}, false
	}

	var headline, talkingPoint string
	sentiment := domain.SentimentNeutral

	switch classification.Condition {
	case domain.ConditionSellers:
		headline = "This is a seller's market"
		talkingPoint = "Sellers hold the leverage right now: well-priced homes are attracting competition, and buyers should come prepared with strong offers."
		sentiment = domain.SentimentPositive
	case domain.ConditionBuyers:
		headline = "This is a buyer's market"
		talkingPoint = "Buyers have room to negotiate: inventory is outpacing demand, so sellers need sharper pricing and patience."
		sentiment = domain.SentimentNegative
	default:
		headline = "The market is balanced"
		talkingPoint = "Neither side holds a clear edge, so realistic pricing and preparation decide outcomes."
	}

	context := fmt.Sprintf("%s confidence based on %d signals", classification.Confidence, len(classification.Factors))
	for _, factor := range classification.Factors {
		context += "; " + factor.Description
	}

	return domain.Insight{
		Headline:     headline,
		Context:      context,
		TalkingPoint: talkingPoint,
		Category:     domain.CategoryMarketCondition,
		Priority:     domain.PriorityHigh,
		Sentiment:    sentiment,
	}, true
}

func (s *Synthesizer) priceInsight(ictx domain.InsightContext, month int) (domain.Insight, bool) {
	current, ok := ictx.Latest.Value(metrics.MedianPrice)
	if !ok || ictx.PriorMonth == nil {
		return domain.Insight{}, false
	}
	prior, ok := ictx.PriorMonth.Value(metrics.MedianPrice)
	if !ok || prior == 0 {
		return domain.Insight{}, false
	}

	change := PercentChange(prior, current)
	comparison := CompareToSeasonal(metrics.MedianPrice, month, change)

	var headline string
	sentiment := domain.SentimentNeutral
	switch comparison {
	case domain.SeasonalAbove:
		headline = "Prices are outperforming seasonal norms"
		sentiment = domain.SentimentPositive
	case domain.SeasonalBelow:
		headline = "Prices are underperforming seasonal norms"
		sentiment = domain.SentimentNegative
	default:
		headline = "Prices are tracking seasonal norms"
	}

	context := fmt.Sprintf("Median sale price is $%.0f, a %+.1f%% move from last month.", current, change)
	if seasonal := SeasonalContext(metrics.MedianPrice, month, change); seasonal != "" {
		context += " " + seasonal + "."
	}
	if ictx.PriorYear != nil {
		if priorYear, ok := ictx.PriorYear.Value(metrics.MedianPrice); ok && priorYear != 0 {
			context += fmt.Sprintf(" Year over year, prices are %+.1f%%.", PercentChange(priorYear, current))
		}
	}

	talkingPoint := fmt.Sprintf("The median sale price came in at $%.0f this period; the monthly move of %+.1f%% is %s for %s.",
		current, change, seasonalPhrase(comparison), MonthName(month))

	return domain.Insight{
		Headline:     headline,
		Context:      context,
		TalkingPoint: talkingPoint,
		Category:     domain.CategoryPrice,
		Priority:     domain.PriorityHigh,
		Sentiment:    sentiment,
	}, true
}

func (s *Synthesizer) inventoryInsight(ictx domain.InsightContext, month int) (domain.Insight, bool) {
	active, ok := ictx.Latest.Value(metrics.ActiveListings)
	if !ok {
		return domain.Insight{}, false
	}

	signals := s.collectSignals(ictx)

	headline := fmt.Sprintf("%.0f homes on the market", active)
	priority := domain.PriorityMedium
	sentiment := domain.SentimentNeutral
	urgency := ""

	if signals.MonthsOfSupply != nil {
		mos := *signals.MonthsOfSupply
		switch {
		case mos < 2:
			urgency = fmt.Sprintf("At %.1f months of supply, inventory is critically tight: serious buyers cannot afford to wait.", mos)
			priority = domain.PriorityHigh
			sentiment = domain.SentimentPositive
		case mos < 4:
			urgency = fmt.Sprintf("At %.1f months of supply, inventory remains tight and well-priced homes move quickly.", mos)
			sentiment = domain.SentimentPositive
		case mos <= 6:
			urgency = fmt.Sprintf("At %.1f months of supply, inventory is in the healthy, balanced range.", mos)
		default:
			urgency = fmt.Sprintf("At %.1f months of supply, inventory is elevated and sellers face real competition.", mos)
			sentiment = domain.SentimentNegative
		}
	}

	context := fmt.Sprintf("There are %.0f active listings this period.", active)
	if ictx.PriorMonth != nil {
		if prior, ok := ictx.PriorMonth.Value(metrics.ActiveListings); ok && prior != 0 {
			change := PercentChange(prior, active)
			context += fmt.Sprintf(" Inventory moved %+.1f%% month over month.", change)
			if seasonal := SeasonalContext(metrics.ActiveListings, month, change); seasonal != "" {
				context += " " + seasonal + "."
			}
		}
	}

	talkingPoint := urgency
	if talkingPoint == "" {
		talkingPoint = fmt.Sprintf("Inventory stands at %.0f active listings this period.", active)
	}

	return domain.Insight{
		Headline:     headline,
		Context:      context,
		TalkingPoint: talkingPoint,
		Category:     domain.CategoryInventory,
		Priority:     priority,
		Sentiment:    sentiment,
	}, true
}

func (s *Synthesizer) velocityInsight(ictx domain.InsightContext, month int) (domain.Insight, bool) {
	sold, hasSold := ictx.Latest.Value(metrics.HomesSold)
	dom, hasDOM := ictx.Latest.Value(metrics.DaysOnMarket)
	if !hasSold && !hasDOM {
		return domain.Insight{}, false
	}

	var headline, context string
	sentiment := domain.SentimentNeutral

	switch {
	case hasSold && hasDOM:
		headline = fmt.Sprintf("%.0f homes sold, averaging %.0f days on market", sold, dom)
	case hasSold:
		headline = fmt.Sprintf("%.0f homes sold this period", sold)
	default:
		headline = fmt.Sprintf("Homes are averaging %.0f days on market", dom)
	}

	if hasDOM {
		switch {
		case dom < 30:
			context = fmt.Sprintf("At %.0f days on market, sales velocity is fast.", dom)
			sentiment = domain.SentimentPositive
		case dom > 60:
			context = fmt.Sprintf("At %.0f days on market, sales velocity is slow.", dom)
			sentiment = domain.SentimentNegative
		default:
			context = fmt.Sprintf("At %.0f days on market, sales velocity is moderate.", dom)
		}
	}

	if hasSold && ictx.PriorMonth != nil {
		if prior, ok := ictx.PriorMonth.Value(metrics.HomesSold); ok && prior != 0 {
			change := PercentChange(prior, sold)
			context += fmt.Sprintf(" Sales volume moved %+.1f%% month over month.", change)
			if seasonal := SeasonalContext(metrics.HomesSold, month, change); seasonal != "" {
				context += " " + seasonal + "."
			}
		}
	}

	talkingPoint := context
	switch {
	case IsTypicallyStrongMonth(metrics.HomesSold, month):
		talkingPoint += fmt.Sprintf(" %s is typically one of the stronger months of the %s market.",
			MonthName(month), SeasonLabel(month))
	case IsTypicallyWeakMonth(metrics.HomesSold, month):
		talkingPoint += fmt.Sprintf(" %s is typically one of the slower months, so soft volume is not alarming.",
			MonthName(month))
	}

	return domain.Insight{
		Headline:     headline,
		Context:      context,
		TalkingPoint: talkingPoint,
		Category:     domain.CategoryVelocity,
		Priority:     domain.PriorityMedium,
		Sentiment:    sentiment,
	}, true
}

// priceSpreadInsight compares average and median price. A wide gap signals
// high-end activity skewing the average; it is only emitted past the
// significance gate.
func (s *Synthesizer) priceSpreadInsight(latest domain.CombinedPoint) (domain.Insight, bool) {
	average, hasAvg := latest.Value(metrics.AveragePrice)
	median, hasMed := latest.Value(metrics.MedianPrice)
	if !hasAvg || !hasMed || median == 0 {
		return domain.Insight{}, false
	}

	gap := average - median
	if math.Abs(gap) <= median*spreadSignificanceGate {
		return domain.Insight{}, false
	}

	gapPercent := (gap / median) * 100

	var headline, context, talkingPoint string
	if gap > 0 {
		headline = "Luxury sales are pulling the average up"
		context = fmt.Sprintf("The average sale price ($%.0f) sits %.1f%% above the median ($%.0f), pointing to strong activity at the high end.",
			average, gapPercent, median)
		talkingPoint = "High-end closings are skewing the average upward, so the median is the better gauge of a typical home here."
	} else {
		headline = "Entry-level sales are pulling the average down"
		context = fmt.Sprintf("The average sale price ($%.0f) sits %.1f%% below the median ($%.0f), pointing to heavy activity at the entry level.",
			average, -gapPercent, median)
		talkingPoint = "A wave of entry-level closings is dragging the average below the median, a sign of first-time-buyer activity."
	}

	return domain.Insight{
		Headline:     headline,
		Context:      context,
		TalkingPoint: talkingPoint,
		Category:     domain.CategoryPriceSpread,
		Priority:     domain.PriorityLow,
		Sentiment:    domain.SentimentNeutral,
	}, true
}

func seasonalPhrase(c domain.SeasonalComparison) string {
	switch c {
	case domain.SeasonalAbove:
		return "stronger than usual"
	case domain.SeasonalBelow:
		return "softer than usual"
	default:
		return "about normal"
	}
}
