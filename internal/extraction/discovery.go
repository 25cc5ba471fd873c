package extraction

// FindHeaderRow scans up to scanDepth leading rows for the most plausible
// header row. Sheets often open with a title banner or report metadata before
// the real headers; each candidate row is scored by ColumnMap.Score and the
// highest-scoring row wins, first occurrence on ties. Returns false when no
// candidate scores above zero.
func FindHeaderRow(rows [][]string, scanDepth int) (int, ColumnMap, bool) {
	if scanDepth <= 0 {
		scanDepth = 10
	}
	if scanDepth > len(rows) {
		scanDepth = len(rows)
	}

	bestIdx := -1
	bestScore := 0
	var bestMap ColumnMap

	for i := 0; i < scanDepth; i++ {
		cm := MapHeaders(rows[i])
		if score := cm.Score(); score > bestScore {
			bestIdx = i
			bestScore = score
			bestMap = cm
		}
	}

	if bestIdx < 0 {
		return -1, ColumnMap{DateCol: -1, MonthCol: -1, YearCol: -1}, false
	}
	return bestIdx, bestMap, true
}
