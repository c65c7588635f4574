package calculation

import (
	"errors"
	"testing"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOldRegimeDeduction(t *testing.T) {
	table := NewOldRegimeDeductionTable()

	tests := []struct {
		name     string
		premium  decimal.Decimal
		expected decimal.Decimal
	}{
		{"zero premium", decimal.Zero, decimal.Zero},
		{"below first boundary", decimal.NewFromInt(20000), decimal.NewFromInt(20000)},
		{"first boundary inclusive", decimal.NewFromInt(25000), decimal.NewFromInt(25000)},
		{"just above first boundary", decimal.NewFromInt(25001), decimal.NewFromFloat(25000.5)},
		{"second boundary", decimal.NewFromInt(50000), decimal.NewFromInt(37500)},
		{"third tier", decimal.NewFromInt(80000), decimal.NewFromInt(45000)},
		{"third boundary hits cap", decimal.NewFromInt(100000), decimal.NewFromInt(50000)},
		{"above all tiers", decimal.NewFromInt(200000), decimal.NewFromInt(50000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Deduction(tt.premium)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestDeductionRejectsNegativePremium(t *testing.T) {
	table := NewOldRegimeDeductionTable()
	_, err := table.Deduction(decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDeductionMonotonic(t *testing.T) {
	table := NewOldRegimeDeductionTable()

	prev := decimal.Zero
	for premium := int64(0); premium <= 120000; premium += 500 {
		got, err := table.Deduction(decimal.NewFromInt(premium))
		require.NoError(t, err)
		assert.True(t, got.GreaterThanOrEqual(prev), "deduction decreased at premium %d", premium)
		assert.True(t, got.LessThanOrEqual(table.Cap))
		prev = got
	}
}

func TestPostReformDeduction(t *testing.T) {
	table := NewPostReformDeductionTable()

	tests := []struct {
		premium  int64
		expected int64
	}{
		{20000, 20000},
		{40000, 30000},
		{80000, 40000},
		{100000, 40000},
	}

	for _, tt := range tests {
		got, err := table.Deduction(decimal.NewFromInt(tt.premium))
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)), "premium %d: got %s", tt.premium, got)
	}
}
