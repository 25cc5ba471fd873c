// Package extraction converts raw tabular market reports into normalized,
// validated metric records. It handles arbitrary column layouts, mixed date
// encodings, and inconsistent numeric formatting.
package extraction

import (
	"strings"

	"marketlens/internal/metrics"
)

// metricAliases maps canonical metric ids to the column wordings seen in the
// wild. Matching is case-insensitive substring in either direction, and ties
// resolve to the first entry in catalog definition order.
var metricAliases = map[string][]string{
	metrics.MedianPrice: {
		"median price", "median sale price", "median sales price",
		"median sold price", "median home price",
	},
	metrics.AveragePrice: {
		"average price", "average sale price", "average sales price",
		"avg price", "avg sale price", "mean sale price",
	},
	metrics.HomesSold: {
		"homes sold", "closed sales", "units sold", "total sales",
		"number of sales", "sold listings", "closed",
	},
	metrics.NewListings: {
		"new listings", "listings added", "new on market",
	},
	metrics.ActiveListings: {
		"active listings", "active inventory", "homes for sale",
		"inventory", "active",
	},
	metrics.DaysOnMarket: {
		"days on market", "average days on market", "avg days on market",
		"dom", "cdom", "median days on market", "market time",
	},
	metrics.MonthsOfSupply: {
		"months of supply", "months supply", "months of inventory", "msi",
	},
	metrics.ListToSaleRatio: {
		"list to sale ratio", "sale to list ratio", "list to sale",
		"sale to list", "sp lp", "percent of list", "pct of list",
	},
}

// ColumnMap records what each column of a header row was classified as.
type ColumnMap struct {
	// Metrics maps column index to canonical metric id.
	Metrics map[int]string
	// DateCol is the index of a full-date column, -1 when absent.
	DateCol int
	// MonthCol and YearCol are the indices of a split month/year pair,
	// -1 when absent.
	MonthCol int
	YearCol  int
	// SkippedYTD lists columns excluded because they carry cumulative
	// year-to-date figures, which must never be read as monthly values.
	SkippedYTD []int
}

// Score is the header-row candidate score used by fallback discovery:
// one point per metric column, plus one for a date column, plus one for a
// complete month/year pair.
func (m ColumnMap) Score() int {
	score := len(m.Metrics)
	if m.DateCol >= 0 {
		score++
	}
	if m.MonthCol >= 0 && m.YearCol >= 0 {
		score++
	}
	return score
}

// HasDateInfo reports whether the sheet carries any per-row date source.
func (m ColumnMap) HasDateInfo() bool {
	return m.DateCol >= 0 || (m.MonthCol >= 0 && m.YearCol >= 0)
}

// MapHeaders classifies a row of raw header strings into metric, date, month,
// year, and skipped YTD columns.
func MapHeaders(headers []string) ColumnMap {
	cm := ColumnMap{
		Metrics:  make(map[int]string),
		DateCol:  -1,
		MonthCol: -1,
		YearCol:  -1,
	}

	for i, raw := range headers {
		header := normalizeHeader(raw)
		if header == "" {
			continue
		}

		// Cumulative YTD columns are excluded outright.
		if strings.Contains(header, "ytd") || strings.Contains(header, "year to date") {
			cm.SkippedYTD = append(cm.SkippedYTD, i)
			continue
		}

		// Date, month, and year headers are claimed before metric alias
		// matching: a bare "Month" column must never be read as a
		// months-of-supply fragment.
		switch {
		case isDateHeader(header):
			if cm.DateCol < 0 {
				cm.DateCol = i
			}
			continue
		case isMonthHeader(header):
			if cm.MonthCol < 0 {
				cm.MonthCol = i
			}
			continue
		case isYearHeader(header):
			if cm.YearCol < 0 {
				cm.YearCol = i
			}
			continue
		}

		if id, ok := matchMetric(header); ok {
			cm.Metrics[i] = id
		}
	}

	return cm
}

// matchMetric finds the first catalog metric whose alias matches the
// normalized header, substring in either direction. Catalog definition order
// breaks ties.
func matchMetric(header string) (string, bool) {
	for _, def := range metrics.Catalog {
		for _, alias := range metricAliases[def.ID] {
			if strings.Contains(header, alias) {
				return def.ID, true
			}
			// Reverse matching covers truncated headers like "Sales"
			// against "closed sales". Only leading/trailing fragments
			// count: interior tokens ("sales" inside "median sales
			// price") are too ambiguous.
			if len(header) >= 3 && (strings.HasPrefix(alias, header) || strings.HasSuffix(alias, header)) {
				return def.ID, true
			}
		}
	}
	return "", false
}

// normalizeHeader lowercases, trims, and collapses underscores, hyphens, and
// repeated whitespace into single spaces.
func normalizeHeader(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "/", " ")
	return strings.Join(strings.Fields(s), " ")
}

func isDateHeader(header string) bool {
	if header == "period" || header == "reporting period" {
		return true
	}
	return strings.Contains(header, "date")
}

func isMonthHeader(header string) bool {
	// "months of supply" style headers are metrics, never month columns.
	if strings.Contains(header, "months") {
		return false
	}
	return strings.Contains(header, "month")
}

func isYearHeader(header string) bool {
	// Guard against change columns like "year over year" or "1 year change".
	if strings.Contains(header, "over") || strings.Contains(header, "change") || strings.Contains(header, "yoy") {
		return false
	}
	return strings.Contains(header, "year")
}
