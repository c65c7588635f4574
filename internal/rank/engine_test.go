package rank

import (
	"errors"
	"testing"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIncome = decimal.NewFromInt(5000000)

func rankTestPlan(t *testing.T) domain.PolicyPlan {
	t.Helper()
	plan, err := domain.NewPolicyPlan(decimal.NewFromInt(8333), decimal.NewFromFloat(0.0125), 15)
	require.NoError(t, err)
	return plan
}

func rankTestGrid() domain.ParameterGrid {
	return domain.ParameterGrid{
		IncludeContinue: true,
		Partial: &domain.PartialWithdrawalGrid{
			IntervalYears:     []int{5, 3},
			WithdrawalRatios:  []decimal.Decimal{decimal.NewFromFloat(0.5), decimal.NewFromFloat(0.25)},
			Reinvestments:     []domain.ReinvestmentOption{domain.CashReinvestment(), domain.TaxableFund(decimal.NewFromFloat(0.04))},
			WithdrawalFeeRate: domain.DefaultWithdrawalFeeRate,
		},
		FullWithdrawalYears: []int{10, 5},
		Switch: &domain.SwitchGrid{
			SwitchYears:      []int{10, 5},
			FeeRates:         []decimal.Decimal{decimal.NewFromFloat(0.02), decimal.Zero},
			NewFund:          domain.TaxableFund(decimal.NewFromFloat(0.04)),
			ContinuePremiums: true,
		},
	}
}

func TestExpandGridCanonicalOrder(t *testing.T) {
	grid := rankTestGrid()
	strategies := ExpandGrid(grid)
	require.Len(t, strategies, grid.Size())

	// Continue first.
	assert.Equal(t, domain.KindContinue, strategies[0].Kind())

	// Families in declaration order, numeric ranges ascending even
	// though the inputs above are descending.
	partial := strategies[1].(domain.PartialWithdrawal)
	assert.Equal(t, 3, partial.IntervalYears)
	assert.True(t, partial.WithdrawalRatio.Equal(decimal.NewFromFloat(0.25)))

	full := strategies[9].(domain.FullWithdrawal)
	assert.Equal(t, 5, full.WithdrawalYear)

	sw := strategies[11].(domain.Switch)
	assert.Equal(t, 5, sw.SwitchYear)
	assert.True(t, sw.FeeRate.IsZero())
}

func TestRankStrategiesComplete(t *testing.T) {
	engine := NewEngine()
	plan := rankTestPlan(t)
	grid := rankTestGrid()

	set, err := engine.RankStrategies(plan, grid, testIncome)
	require.NoError(t, err)
	require.Len(t, set.Results, grid.Size())

	// Ranks are 1..n and net benefits are non-increasing.
	for i, r := range set.Results {
		assert.Equal(t, i+1, r.Rank)
		if i > 0 {
			assert.True(t, set.Results[i-1].Result.NetBenefit.GreaterThanOrEqual(r.Result.NetBenefit),
				"rank %d out of order", r.Rank)
		}
	}

	assert.NotEmpty(t, set.Recommendation)
	assert.NotNil(t, set.Best())
}

func TestRankStrategiesReproducible(t *testing.T) {
	plan := rankTestPlan(t)
	grid := rankTestGrid()

	first, err := NewEngine().RankStrategies(plan, grid, testIncome)
	require.NoError(t, err)
	second, err := NewEngine().RankStrategies(plan, grid, testIncome)
	require.NoError(t, err)

	require.Len(t, second.Results, len(first.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Result.StrategyLabel, second.Results[i].Result.StrategyLabel)
		assert.True(t, first.Results[i].Result.NetBenefit.Equal(second.Results[i].Result.NetBenefit))
	}
}

func TestRankStrategiesTieBreak(t *testing.T) {
	engine := NewEngine()
	plan := rankTestPlan(t)

	// Two identical switch cells except for input order: both evaluate
	// to the same net benefit, so the ascending canonical order decides.
	grid := domain.ParameterGrid{
		Switch: &domain.SwitchGrid{
			SwitchYears:      []int{10, 5},
			FeeRates:         []decimal.Decimal{decimal.Zero},
			NewFund:          domain.CashReinvestment(),
			ContinuePremiums: false,
		},
	}

	set, err := engine.RankStrategies(plan, grid, testIncome)
	require.NoError(t, err)
	require.Len(t, set.Results, 2)

	// Not a tie here, but ordering must be deterministic either way;
	// expansion presents year 5 before year 10.
	strategies := ExpandGrid(grid)
	assert.Equal(t, 5, strategies[0].(domain.Switch).SwitchYear)
	assert.Equal(t, 10, strategies[1].(domain.Switch).SwitchYear)
}

func TestRankStrategiesAbortsOnInvalidCell(t *testing.T) {
	engine := NewEngine()
	plan := rankTestPlan(t)

	grid := domain.ParameterGrid{
		IncludeContinue:     true,
		FullWithdrawalYears: []int{5, 99}, // 99 exceeds the term
	}

	_, err := engine.RankStrategies(plan, grid, testIncome)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidParameter))
}

func TestRankStrategiesRejectsEmptyGrid(t *testing.T) {
	engine := NewEngine()
	plan := rankTestPlan(t)

	_, err := engine.RankStrategies(plan, domain.ParameterGrid{}, testIncome)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
