package calculation

import (
	"errors"
	"testing"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calcTestPlan(t *testing.T) domain.PolicyPlan {
	t.Helper()
	plan, err := domain.NewPolicyPlan(decimal.NewFromInt(8333), decimal.NewFromFloat(0.0125), 15)
	require.NoError(t, err)
	return plan
}

func TestAccumulateClosedFormZeroMonths(t *testing.T) {
	value, err := AccumulateClosedForm(calcTestPlan(t), 0)
	require.NoError(t, err)
	assert.True(t, value.IsZero())
}

func TestAccumulateClosedFormNegativeMonths(t *testing.T) {
	_, err := AccumulateClosedForm(calcTestPlan(t), -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAccumulateClosedFormZeroYield(t *testing.T) {
	plan, err := domain.NewPolicyPlan(decimal.NewFromInt(10000), decimal.Zero, 10)
	require.NoError(t, err)
	plan.BalanceFeeRateMonthly = decimal.Zero

	value, err := AccumulateClosedForm(plan, 12)
	require.NoError(t, err)

	// With zero yield and no balance fee, the value is the plain sum of
	// net contributions: 9,870 * 12.
	assert.True(t, value.Equal(decimal.NewFromInt(118440)), "got %s", value)
}

func TestAccumulateClosedFormGrowth(t *testing.T) {
	plan := calcTestPlan(t)

	oneYear, err := AccumulateClosedForm(plan, 12)
	require.NoError(t, err)
	fiveYears, err := AccumulateClosedForm(plan, 60)
	require.NoError(t, err)

	// More months accumulate more value, and a positive yield beats the
	// raw contributions net of fees over a long horizon.
	assert.True(t, fiveYears.GreaterThan(oneYear))

	netContrib := plan.NetMonthlyPremium().Mul(decimal.NewFromInt(60))
	assert.True(t, fiveYears.GreaterThan(netContrib.Mul(decimal.NewFromFloat(0.99))))
}

func TestAccumulateStepwiseTracksPaidAndFees(t *testing.T) {
	plan := calcTestPlan(t)

	b, err := AccumulateStepwise(plan, 24)
	require.NoError(t, err)

	assert.True(t, b.TotalPaid.Equal(plan.MonthlyPremium.Mul(decimal.NewFromInt(24))))
	assert.True(t, b.TotalFees.IsPositive())
	assert.True(t, b.Balance.IsPositive())
	assert.True(t, b.Balance.LessThan(b.TotalPaid.Add(b.TotalPaid)), "balance implausibly large: %s", b.Balance)
}

func TestStepwiseMatchesClosedFormOrder(t *testing.T) {
	// The closed form deducts the balance fee in aggregate, the stepwise
	// run compounds it monthly; over a modest horizon they must land
	// within a fraction of a percent of each other.
	plan := calcTestPlan(t)
	months := 120

	closed, err := AccumulateClosedForm(plan, months)
	require.NoError(t, err)
	stepwise, err := AccumulateStepwise(plan, months)
	require.NoError(t, err)

	diff := closed.Sub(stepwise.Balance).Abs()
	tolerance := closed.Mul(decimal.NewFromFloat(0.01))
	assert.True(t, diff.LessThan(tolerance), "closed %s vs stepwise %s", closed, stepwise.Balance)
}

func TestSurrenderDeduction(t *testing.T) {
	value := decimal.NewFromInt(1000000)

	tests := []struct {
		years    int
		expected int64
	}{
		{0, 100000},
		{1, 90000},
		{5, 50000},
		{9, 10000},
		{10, 0},
		{15, 0},
	}

	for _, tt := range tests {
		got := SurrenderDeduction(value, tt.years)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)), "year %d: got %s", tt.years, got)
	}
}
