package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_InRangeValues(t *testing.T) {
	// Every catalog metric accepts values on and inside its bounds.
	for _, def := range Catalog {
		t.Run(def.ID, func(t *testing.T) {
			midpoint := (def.MinValue + def.MaxValue) / 2

			for _, value := range []float64{def.MinValue, midpoint, def.MaxValue} {
				result := Validate(def.ID, value)
				assert.False(t, result.IsOutlier, "value %v should be in range for %s", value, def.ID)
				assert.Empty(t, result.Reason)
			}
		})
	}
}

func TestValidate_OutOfRangeValues(t *testing.T) {
	tests := []struct {
		name       string
		metricID   string
		value      float64
		wantInText string
	}{
		{
			name:       "median price below minimum",
			metricID:   MedianPrice,
			value:      5_000,
			wantInText: "minimum",
		},
		{
			name:       "median price above maximum",
			metricID:   MedianPrice,
			value:      6_000_000,
			wantInText: "maximum",
		},
		{
			name:       "negative days on market",
			metricID:   DaysOnMarket,
			value:      -1,
			wantInText: "minimum",
		},
		{
			name:       "days on market above a year",
			metricID:   DaysOnMarket,
			value:      400,
			wantInText: "maximum",
		},
		{
			name:       "list to sale ratio far above asking",
			metricID:   ListToSaleRatio,
			value:      2.0,
			wantInText: "maximum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.metricID, tt.value)

			require.True(t, result.IsOutlier)
			assert.Contains(t, result.Reason, tt.wantInText)
			assert.Contains(t, result.Reason, DisplayName(tt.metricID))
		})
	}
}

func TestValidate_UnknownMetricPassesThrough(t *testing.T) {
	result := Validate("not_a_metric", 1e12)

	assert.False(t, result.IsOutlier)
	assert.Empty(t, result.Reason)
}

func TestLookup(t *testing.T) {
	def, ok := Lookup(MonthsOfSupply)
	require.True(t, ok)
	assert.Equal(t, "Months of Supply", def.DisplayName)

	_, ok = Lookup("unknown")
	assert.False(t, ok)
}

func TestCatalogIsComplete(t *testing.T) {
	assert.Len(t, Catalog, 8)
	for _, def := range Catalog {
		assert.NotEmpty(t, def.ID)
		assert.NotEmpty(t, def.DisplayName)
		assert.Less(t, def.MinValue, def.MaxValue, "bounds inverted for %s", def.ID)
	}
}
