package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindHeaderRow(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		wantIdx  int
		wantOK   bool
		wantCols int
	}{
		{
			name: "headers on first row",
			rows: [][]string{
				{"Date", "Median Sale Price", "Homes Sold"},
				{"2024-01-01", "450000", "42"},
			},
			wantIdx: 0, wantOK: true, wantCols: 2,
		},
		{
			name: "banner row before headers",
			rows: [][]string{
				{"Greater Springfield Market Report - January 2024"},
				{"Date", "Median Sale Price", "Homes Sold"},
				{"2024-01-01", "450000", "42"},
			},
			wantIdx: 1, wantOK: true, wantCols: 2,
		},
		{
			name: "banner and blank rows before headers",
			rows: [][]string{
				{"Quarterly Market Snapshot"},
				{""},
				{"Prepared by the research desk"},
				{"Month", "Year", "Active Listings", "Days on Market"},
				{"1", "2024", "120", "35"},
			},
			wantIdx: 3, wantOK: true, wantCols: 2,
		},
		{
			name: "no header row anywhere",
			rows: [][]string{
				{"lorem", "ipsum"},
				{"dolor", "sit"},
			},
			wantOK: false,
		},
		{
			name:   "empty sheet",
			rows:   [][]string{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, cm, ok := FindHeaderRow(tt.rows, 10)

			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIdx, idx)
				assert.Len(t, cm.Metrics, tt.wantCols)
			}
		})
	}
}

func TestFindHeaderRow_TieGoesToFirstOccurrence(t *testing.T) {
	rows := [][]string{
		{"Median Sale Price", "Homes Sold"},
		{"Median Sale Price", "Homes Sold"},
	}

	idx, _, ok := FindHeaderRow(rows, 10)

	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestFindHeaderRow_RespectsScanDepth(t *testing.T) {
	rows := make([][]string, 0, 12)
	for i := 0; i < 11; i++ {
		rows = append(rows, []string{"filler"})
	}
	rows = append(rows, []string{"Date", "Median Sale Price"})

	// Header row sits past the scan depth, so it is never found.
	_, _, ok := FindHeaderRow(rows, 10)
	assert.False(t, ok)
}
