package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PartialWithdrawalGrid enumerates the partial-withdrawal knobs. The
// expanded cells are the cross-product of the three ranges.
type PartialWithdrawalGrid struct {
	IntervalYears     []int
	WithdrawalRatios  []decimal.Decimal
	Reinvestments     []ReinvestmentOption
	WithdrawalFeeRate decimal.Decimal
}

// SwitchGrid enumerates the switch knobs: year x fee cross-product into
// a single target fund.
type SwitchGrid struct {
	SwitchYears      []int
	FeeRates         []decimal.Decimal
	NewFund          ReinvestmentOption
	ContinuePremiums bool
}

// ParameterGrid is the full strategy grid explored by the ranker. A nil
// family section means that family is not explored.
type ParameterGrid struct {
	IncludeContinue     bool
	Partial             *PartialWithdrawalGrid
	FullWithdrawalYears []int
	Switch              *SwitchGrid
}

// Size returns the number of strategy cells the grid expands to.
func (g ParameterGrid) Size() int {
	n := 0
	if g.IncludeContinue {
		n++
	}
	if g.Partial != nil {
		n += len(g.Partial.IntervalYears) * len(g.Partial.WithdrawalRatios) * len(g.Partial.Reinvestments)
	}
	n += len(g.FullWithdrawalYears)
	if g.Switch != nil {
		n += len(g.Switch.SwitchYears) * len(g.Switch.FeeRates)
	}
	return n
}

// Validate rejects an empty grid; per-cell validation against a plan
// happens at expansion time.
func (g ParameterGrid) Validate() error {
	if g.Size() == 0 {
		return fmt.Errorf("%w: parameter grid expands to zero strategies", ErrInvalidInput)
	}
	if g.Partial != nil {
		if len(g.Partial.IntervalYears) == 0 || len(g.Partial.WithdrawalRatios) == 0 || len(g.Partial.Reinvestments) == 0 {
			return fmt.Errorf("%w: partial withdrawal grid needs intervals, ratios and reinvestments", ErrInvalidInput)
		}
	}
	if g.Switch != nil {
		if len(g.Switch.SwitchYears) == 0 || len(g.Switch.FeeRates) == 0 {
			return fmt.Errorf("%w: switch grid needs years and fee rates", ErrInvalidInput)
		}
	}
	return nil
}
