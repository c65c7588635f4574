package rank

import (
	"sort"

	"github.com/hokensim/hokensim/internal/calculation"
	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine ranks strategy grids. Construct with NewEngine.
type Engine struct {
	Evaluator *calculation.StrategyEvaluator
	Logger    calculation.Logger
}

// NewEngine creates a ranking engine over a fresh evaluator.
func NewEngine() *Engine {
	return &Engine{
		Evaluator: calculation.NewStrategyEvaluator(),
		Logger:    calculation.NopLogger{},
	}
}

// SetLogger routes engine and evaluator logging; nil restores the no-op.
func (e *Engine) SetLogger(l calculation.Logger) {
	if l == nil {
		l = calculation.NopLogger{}
	}
	e.Logger = l
	e.Evaluator.SetLogger(l)
}

// RankStrategies expands the grid, validates every cell against the
// plan, evaluates them all and returns the results ordered by net
// benefit, best first. Any invalid cell aborts the whole ranking: a
// partial ranking silently missing cells would misrank.
//
// Ties on net benefit keep the canonical expansion order, so two runs
// over the same inputs always produce the same ordering.
func (e *Engine) RankStrategies(plan domain.PolicyPlan, grid domain.ParameterGrid, taxableIncome decimal.Decimal) (*RankingSet, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	strategies := ExpandGrid(grid)
	for _, s := range strategies {
		if err := s.Validate(plan); err != nil {
			return nil, err
		}
	}

	e.Logger.Infof("ranking %d strategies", len(strategies))

	results := make([]RankedResult, 0, len(strategies))
	for _, s := range strategies {
		r, err := e.Evaluator.Evaluate(plan, s, taxableIncome)
		if err != nil {
			return nil, err
		}
		results = append(results, RankedResult{
			Kind:     s.Kind().String(),
			Strategy: s,
			Result:   *r,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Result.NetBenefit.GreaterThan(results[j].Result.NetBenefit)
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	set := &RankingSet{
		Plan:          plan,
		TaxableIncome: taxableIncome,
		Results:       results,
	}
	set.Recommendation = set.GenerateRecommendation()
	return set, nil
}

// ExpandGrid enumerates the grid in canonical order: Continue first,
// then partial withdrawals (interval, then ratio, then reinvestment),
// then full withdrawals, then switches (year, then fee). Numeric ranges
// are visited ascending regardless of input order.
func ExpandGrid(grid domain.ParameterGrid) []domain.Strategy {
	strategies := make([]domain.Strategy, 0, grid.Size())

	if grid.IncludeContinue {
		strategies = append(strategies, domain.Continue{})
	}

	if p := grid.Partial; p != nil {
		intervals := sortedInts(p.IntervalYears)
		ratios := sortedDecimals(p.WithdrawalRatios)
		for _, interval := range intervals {
			for _, ratio := range ratios {
				for _, reinvest := range p.Reinvestments {
					strategies = append(strategies, domain.PartialWithdrawal{
						IntervalYears:     interval,
						WithdrawalRatio:   ratio,
						WithdrawalFeeRate: p.WithdrawalFeeRate,
						Reinvestment:      reinvest,
					})
				}
			}
		}
	}

	for _, year := range sortedInts(grid.FullWithdrawalYears) {
		strategies = append(strategies, domain.FullWithdrawal{WithdrawalYear: year})
	}

	if s := grid.Switch; s != nil {
		years := sortedInts(s.SwitchYears)
		fees := sortedDecimals(s.FeeRates)
		for _, year := range years {
			for _, fee := range fees {
				strategies = append(strategies, domain.Switch{
					SwitchYear:       year,
					FeeRate:          fee,
					NewFund:          s.NewFund,
					ContinuePremiums: s.ContinuePremiums,
				})
			}
		}
	}

	return strategies
}

func sortedInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	sort.Ints(out)
	return out
}

func sortedDecimals(in []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out
}
