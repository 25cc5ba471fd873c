package domain

// InsightCategory tags which slice of the market an insight speaks to.
type InsightCategory string

const (
	CategoryMarketCondition InsightCategory = "market_condition"
	CategoryPrice           InsightCategory = "price"
	CategoryInventory       InsightCategory = "inventory"
	CategoryVelocity        InsightCategory = "velocity"
	CategoryPriceSpread     InsightCategory = "price_spread"
)

// InsightPriority orders insights for display.
type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// InsightSentiment is the directional tone of an insight.
type InsightSentiment string

const (
	SentimentPositive InsightSentiment = "positive"
	SentimentNegative InsightSentiment = "negative"
	SentimentNeutral  InsightSentiment = "neutral"
)

// Insight is one structured analytical statement: a headline, supporting
// context, and a talking point phrased for client conversation.
type Insight struct {
	Headline     string           `json:"headline"`
	Context      string           `json:"context"`
	TalkingPoint string           `json:"talking_point"`
	Category     InsightCategory  `json:"category"`
	Priority     InsightPriority  `json:"priority"`
	Sentiment    InsightSentiment `json:"sentiment"`
}

// InsightContext is the input bundle for insight synthesis: the latest
// reporting period, the prior month and prior year for comparisons, and the
// full normalized timeline. PriorMonth and PriorYear may be nil; dependent
// insights degrade individually rather than suppressing the whole bundle.
type InsightContext struct {
	Latest     CombinedPoint   `json:"latest" validate:"required"`
	PriorMonth *CombinedPoint  `json:"prior_month,omitempty"`
	PriorYear  *CombinedPoint  `json:"prior_year,omitempty"`
	Timeline   []CombinedPoint `json:"timeline,omitempty"`
}
