package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAddsResidualToLastPart(t *testing.T) {
	tests := []struct {
		name  string
		total string
		n     int
		want  []string
	}{
		{"even split", "300", 3, []string{"100", "100", "100"}},
		{"residual cent on last", "1000", 3, []string{"333.33", "333.33", "333.34"}},
		{"large amount", "100000", 3, []string{"33333.33", "33333.33", "33333.34"}},
		{"single part", "99.99", 1, []string{"99.99"}},
		{"sub-cent shares", "0.05", 4, []string{"0.01", "0.01", "0.01", "0.02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := decimal.NewFromString(tt.total)
			require.NoError(t, err)

			parts := Split(total, tt.n)
			require.Len(t, parts, tt.n)

			sum := decimal.Zero
			for i, part := range parts {
				assert.Equal(t, tt.want[i], part.String(), "part %d", i)
				sum = sum.Add(part)
			}
			assert.True(t, sum.Equal(total), "parts sum to %s, want %s", sum, total)
		})
	}
}

func TestMinorUnitConversions(t *testing.T) {
	assert.Equal(t, "12.34", FromMinorUnits(1234).String())
	assert.Equal(t, int64(1234), ToMinorUnits(decimal.RequireFromString("12.34")))
	assert.Equal(t, int64(1234), ToMinorUnits(decimal.RequireFromString("12.349")))
	assert.Equal(t, int64(0), ToMinorUnits(decimal.Zero))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "33333.33", Truncate(decimal.RequireFromString("33333.3399")).String())
}

func TestFormat(t *testing.T) {
	amount := decimal.RequireFromString("1234.5")
	assert.Equal(t, "1234.50 EUR", Format(amount, "EUR"))
	assert.Equal(t, "1234.50", Format(amount, ""))
}
