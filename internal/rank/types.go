// Package rank expands a strategy parameter grid, evaluates every cell
// and orders the outcomes by net benefit.
package rank

import (
	"fmt"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
)

// RankedResult is one strategy's outcome with its rank position.
type RankedResult struct {
	Rank     int                     `json:"rank"`
	Kind     string                  `json:"kind"`
	Strategy domain.Strategy         `json:"-"`
	Result   domain.EvaluationResult `json:"result"`
}

// RankingSet is the full ranked output for one plan and income.
type RankingSet struct {
	Plan           domain.PolicyPlan `json:"plan"`
	TaxableIncome  decimal.Decimal   `json:"taxableIncome"`
	Results        []RankedResult    `json:"results"`
	Recommendation string            `json:"recommendation,omitempty"`
}

// Best returns the top-ranked result, or nil for an empty set.
func (rs *RankingSet) Best() *RankedResult {
	if len(rs.Results) == 0 {
		return nil
	}
	return &rs.Results[0]
}

// GenerateRecommendation produces a short human-readable summary of the
// ranking: the winner and its margin over holding to term, when that
// baseline is in the set.
func (rs *RankingSet) GenerateRecommendation() string {
	best := rs.Best()
	if best == nil {
		return ""
	}

	var baseline *RankedResult
	for i := range rs.Results {
		if rs.Results[i].Result.Kind == domain.KindContinue {
			baseline = &rs.Results[i]
			break
		}
	}

	if baseline == nil || baseline.Rank == best.Rank {
		return fmt.Sprintf("Best strategy: %s with a projected net benefit of %s yen.",
			best.Result.StrategyLabel, best.Result.NetBenefit.StringFixed(0))
	}
	margin := best.Result.NetBenefit.Sub(baseline.Result.NetBenefit)
	return fmt.Sprintf("Best strategy: %s, ahead of holding to term by %s yen (net benefit %s yen).",
		best.Result.StrategyLabel, margin.StringFixed(0), best.Result.NetBenefit.StringFixed(0))
}
