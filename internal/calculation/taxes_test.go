package calculation

import (
	"errors"
	"testing"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeTaxOwed(t *testing.T) {
	table := NewIncomeTaxTable2025()

	tests := []struct {
		name     string
		income   decimal.Decimal
		expected decimal.Decimal
	}{
		{
			name:   "bottom bracket",
			income: decimal.NewFromInt(1000000),
			// 1,000,000 * 0.05 * 1.021 = 51,050
			expected: decimal.NewFromInt(51050),
		},
		{
			name:   "first bracket boundary",
			income: decimal.NewFromInt(1950000),
			// 1,950,000 * 0.05 * 1.021 = 99,547.5
			expected: decimal.NewFromFloat(99547.5),
		},
		{
			name:   "middle bracket",
			income: decimal.NewFromInt(5000000),
			// (5,000,000 * 0.20 - 427,500) * 1.021 = 584,522.5
			expected: decimal.NewFromFloat(584522.5),
		},
		{
			name:   "top bracket",
			income: decimal.NewFromInt(50000000),
			// (50,000,000 * 0.45 - 4,796,000) * 1.021 = 18,075,784
			expected: decimal.NewFromInt(18075784),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.IncomeTaxOwed(tt.income)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestIncomeTaxOwedEdges(t *testing.T) {
	table := NewIncomeTaxTable2025()

	zero, err := table.IncomeTaxOwed(decimal.Zero)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = table.IncomeTaxOwed(decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestIncomeTaxMonotonic(t *testing.T) {
	table := NewIncomeTaxTable2025()

	// Crossing each bracket boundary must never reduce the tax owed.
	prev := decimal.Zero
	for _, income := range []int64{
		1949999, 1950000, 1950001,
		3299999, 3300000, 3300001,
		6949999, 6950000, 6950001,
		8999999, 9000000, 9000001,
		17999999, 18000000, 18000001,
		39999999, 40000000, 40000001,
	} {
		tax, err := table.IncomeTaxOwed(decimal.NewFromInt(income))
		require.NoError(t, err)
		assert.True(t, tax.GreaterThanOrEqual(prev), "tax decreased at income %d", income)
		prev = tax
	}
}

func TestResidentTax(t *testing.T) {
	table := NewIncomeTaxTable2025()

	got, err := table.ResidentTax(decimal.NewFromInt(5000000))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(500000)))
}

func TestMarginalRate(t *testing.T) {
	table := NewIncomeTaxTable2025()

	got, err := table.MarginalRate(decimal.NewFromInt(5000000))
	require.NoError(t, err)
	// 0.20 * 1.021
	assert.True(t, got.Equal(decimal.NewFromFloat(0.2042)), "got %s", got)
}

func TestSavingsFromDeduction(t *testing.T) {
	table := NewIncomeTaxTable2025()

	savings, err := table.SavingsFromDeduction(decimal.NewFromInt(50000), decimal.NewFromInt(5000000))
	require.NoError(t, err)

	// Income tax: 50,000 * 0.20 * 1.021 = 10,210; resident: 50,000 * 0.10 = 5,000.
	assert.True(t, savings.IncomeTaxSavings.Equal(decimal.NewFromInt(10210)), "got %s", savings.IncomeTaxSavings)
	assert.True(t, savings.ResidentTaxSavings.Equal(decimal.NewFromInt(5000)))
	assert.True(t, savings.TotalSavings.Equal(decimal.NewFromInt(15210)))
}

func TestSavingsFromDeductionFloorsAtZero(t *testing.T) {
	table := NewIncomeTaxTable2025()

	// Deduction larger than income: savings bounded by the tax owed.
	savings, err := table.SavingsFromDeduction(decimal.NewFromInt(50000), decimal.NewFromInt(30000))
	require.NoError(t, err)

	fullTax, err := table.IncomeTaxOwed(decimal.NewFromInt(30000))
	require.NoError(t, err)
	assert.True(t, savings.IncomeTaxSavings.Equal(fullTax))
	assert.True(t, savings.ResidentTaxSavings.Equal(decimal.NewFromInt(3000)))
}
