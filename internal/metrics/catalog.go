// Package metrics holds the fixed catalog of canonical market metrics and the
// bounds validator that flags out-of-range values for human review.
package metrics

import (
	"marketlens/pkg/contracts/domain"
)

// Catalog is the fixed set of canonical metric definitions, in definition
// order. Order matters: header alias ties are resolved by first match.
var Catalog = []domain.MetricTypeDefinition{
	{ID: MedianPrice, DisplayName: "Median Sale Price", Unit: domain.UnitUSD, MinValue: 10_000, MaxValue: 5_000_000},
	{ID: AveragePrice, DisplayName: "Average Sale Price", Unit: domain.UnitUSD, MinValue: 10_000, MaxValue: 10_000_000},
	{ID: HomesSold, DisplayName: "Homes Sold", Unit: domain.UnitCount, MinValue: 0, MaxValue: 10_000},
	{ID: NewListings, DisplayName: "New Listings", Unit: domain.UnitCount, MinValue: 0, MaxValue: 10_000},
	{ID: ActiveListings, DisplayName: "Active Listings", Unit: domain.UnitCount, MinValue: 0, MaxValue: 50_000},
	{ID: DaysOnMarket, DisplayName: "Days on Market", Unit: domain.UnitDays, MinValue: 0, MaxValue: 365},
	{ID: MonthsOfSupply, DisplayName: "Months of Supply", Unit: domain.UnitMonths, MinValue: 0, MaxValue: 24},
	{ID: ListToSaleRatio, DisplayName: "List to Sale Ratio", Unit: domain.UnitRatio, MinValue: 0.5, MaxValue: 1.5},
}

// Canonical metric identifiers.
const (
	MedianPrice     = "median_price"
	AveragePrice    = "average_price"
	HomesSold       = "homes_sold"
	NewListings     = "new_listings"
	ActiveListings  = "active_listings"
	DaysOnMarket    = "days_on_market"
	MonthsOfSupply  = "months_of_supply"
	ListToSaleRatio = "list_to_sale_ratio"
)

var catalogByID = func() map[string]domain.MetricTypeDefinition {
	m := make(map[string]domain.MetricTypeDefinition, len(Catalog))
	for _, def := range Catalog {
		m[def.ID] = def
	}
	return m
}()

// Lookup returns the definition for a canonical metric id.
func Lookup(id string) (domain.MetricTypeDefinition, bool) {
	def, ok := catalogByID[id]
	return def, ok
}

// DisplayName returns the display name for a metric id, falling back to the
// id itself for unknown metrics.
func DisplayName(id string) string {
	if def, ok := catalogByID[id]; ok {
		return def.DisplayName
	}
	return id
}
