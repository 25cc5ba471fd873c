package extraction

import (
	"strconv"
	"strings"
	"time"
)

// spreadsheet serial dates count days from the standard epoch, which lands on
// 1899-12-30 once the historical leap-year quirk cancels out.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// genericLayouts are last-resort parse attempts for date strings that match
// none of the explicit forms.
var genericLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01-02-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01",
}

// ResolveDate normalizes a raw cell value of unknown shape to a calendar
// date. Resolution order: numeric spreadsheet serial, ISO, US month/day/year,
// "Month YYYY" (anchored to day 1), then generic layouts. Returns false when
// nothing matches.
func ResolveDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}

	// Numeric spreadsheet date serial.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || serial > 2_958_465 { // 9999-12-31
			return time.Time{}, false
		}
		return serialEpoch.AddDate(0, 0, int(serial)), true
	}

	// ISO date, with or without a time suffix.
	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		if d, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return d, true
		}
	}

	// US MM/DD/YYYY or M/D/YYYY.
	if strings.Count(s, "/") == 2 {
		if d, err := time.Parse("1/2/2006", s); err == nil {
			return d, true
		}
	}

	// "Month YYYY" or "Mon YYYY", anchored to day 1.
	if fields := strings.Fields(s); len(fields) == 2 {
		name := strings.ToLower(strings.TrimRight(fields[0], "."))
		if month, ok := monthNames[name]; ok {
			if year, err := strconv.Atoi(strings.TrimSuffix(fields[1], ",")); err == nil && year >= 1000 {
				return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
			}
		}
	}

	for _, layout := range genericLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}

	return time.Time{}, false
}

// ResolveMonthYear combines a split month/year column pair into the first day
// of that month. The month accepts a 1-12 number or a month name/abbreviation;
// the year accepts any numeric value of 1000 or more.
func ResolveMonthYear(monthCell, yearCell string) (time.Time, bool) {
	month, ok := resolveMonth(monthCell)
	if !ok {
		return time.Time{}, false
	}

	yearStr := strings.TrimSpace(yearCell)
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		// Year cells sometimes arrive as floats ("2024.0").
		f, ferr := strconv.ParseFloat(yearStr, 64)
		if ferr != nil {
			return time.Time{}, false
		}
		year = int(f)
	}
	if year < 1000 {
		return time.Time{}, false
	}

	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

// resolveMonth accepts a 1-12 numeric value or a month name/abbreviation.
func resolveMonth(cell string) (time.Month, bool) {
	s := strings.ToLower(strings.TrimRight(strings.TrimSpace(cell), "."))
	if s == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}

	if month, ok := monthNames[s]; ok {
		return month, true
	}
	return 0, false
}
