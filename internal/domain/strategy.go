package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StrategyKind identifies one of the four strategy families. The
// declaration order is also the ranking tie-break order.
type StrategyKind int

const (
	KindContinue StrategyKind = iota
	KindPartialWithdrawal
	KindFullWithdrawal
	KindSwitch
)

// String returns the family name used in labels and output rows.
func (k StrategyKind) String() string {
	switch k {
	case KindContinue:
		return "continue"
	case KindPartialWithdrawal:
		return "partial-withdrawal"
	case KindFullWithdrawal:
		return "full-withdrawal"
	case KindSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// Strategy is the closed set of withdrawal strategies the evaluator
// understands. The interface is sealed so the evaluator can dispatch
// exhaustively and the ranker can enumerate exactly these four shapes.
type Strategy interface {
	Kind() StrategyKind
	Label() string
	Validate(plan PolicyPlan) error

	sealed()
}

// Continue holds the policy to term and surrenders at maturity.
type Continue struct{}

func (Continue) Kind() StrategyKind             { return KindContinue }
func (Continue) Label() string                  { return "continue to term" }
func (Continue) Validate(plan PolicyPlan) error { return nil }
func (Continue) sealed()                        {}

// PartialWithdrawal surrenders a fixed fraction of the balance every
// IntervalYears and reinvests the net proceeds.
type PartialWithdrawal struct {
	IntervalYears     int
	WithdrawalRatio   decimal.Decimal // fraction of the balance, in (0,1]
	WithdrawalFeeRate decimal.Decimal // fee on each withdrawal, in [0,1)
	Reinvestment      ReinvestmentOption
}

func (s PartialWithdrawal) Kind() StrategyKind { return KindPartialWithdrawal }

func (s PartialWithdrawal) Label() string {
	return fmt.Sprintf("partial withdrawal (every %dy, %s, reinvest %s)",
		s.IntervalYears, formatPercent(s.WithdrawalRatio), formatPercent(s.Reinvestment.AnnualReturnRate))
}

func (s PartialWithdrawal) Validate(plan PolicyPlan) error {
	if s.IntervalYears < 1 || s.IntervalYears > plan.TermYears {
		return fmt.Errorf("%w: withdrawal interval %d years outside [1,%d]", ErrInvalidParameter, s.IntervalYears, plan.TermYears)
	}
	if s.WithdrawalRatio.LessThanOrEqual(decimal.Zero) || s.WithdrawalRatio.GreaterThan(one) {
		return fmt.Errorf("%w: withdrawal ratio must be in (0,1], got %s", ErrInvalidParameter, s.WithdrawalRatio)
	}
	if s.WithdrawalFeeRate.IsNegative() || s.WithdrawalFeeRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("%w: withdrawal fee rate must be in [0,1), got %s", ErrInvalidParameter, s.WithdrawalFeeRate)
	}
	if err := s.Reinvestment.Validate(); err != nil {
		return fmt.Errorf("%w: reinvestment: %s", ErrInvalidParameter, err)
	}
	return nil
}

func (PartialWithdrawal) sealed() {}

// FullWithdrawal surrenders the whole policy at WithdrawalYear and stops
// paying premiums from that point on.
type FullWithdrawal struct {
	WithdrawalYear int // in [1, TermYears]
}

func (s FullWithdrawal) Kind() StrategyKind { return KindFullWithdrawal }

func (s FullWithdrawal) Label() string {
	return fmt.Sprintf("full withdrawal (year %d)", s.WithdrawalYear)
}

func (s FullWithdrawal) Validate(plan PolicyPlan) error {
	if s.WithdrawalYear < 1 || s.WithdrawalYear > plan.TermYears {
		return fmt.Errorf("%w: withdrawal year %d outside [1,%d]", ErrInvalidParameter, s.WithdrawalYear, plan.TermYears)
	}
	return nil
}

func (FullWithdrawal) sealed() {}

// Switch surrenders the whole policy at SwitchYear, pays a one-time
// switching fee on the surrender value, and moves the net proceeds into
// NewFund for the remaining term. When ContinuePremiums is set the
// monthly premium keeps flowing into the new fund.
type Switch struct {
	SwitchYear       int             // in [1, TermYears]
	FeeRate          decimal.Decimal // one-time fee on the surrender value, in [0,1)
	NewFund          ReinvestmentOption
	ContinuePremiums bool
}

func (s Switch) Kind() StrategyKind { return KindSwitch }

func (s Switch) Label() string {
	return fmt.Sprintf("switch (year %d, fee %s, fund %s)",
		s.SwitchYear, formatPercent(s.FeeRate), formatPercent(s.NewFund.AnnualReturnRate))
}

func (s Switch) Validate(plan PolicyPlan) error {
	if s.SwitchYear < 1 || s.SwitchYear > plan.TermYears {
		return fmt.Errorf("%w: switch year %d outside [1,%d]", ErrInvalidParameter, s.SwitchYear, plan.TermYears)
	}
	if s.FeeRate.IsNegative() || s.FeeRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("%w: switch fee rate must be in [0,1), got %s", ErrInvalidParameter, s.FeeRate)
	}
	if err := s.NewFund.Validate(); err != nil {
		return fmt.Errorf("%w: new fund: %s", ErrInvalidParameter, err)
	}
	return nil
}

func (Switch) sealed() {}

// formatPercent renders a decimal fraction as a trimmed percentage.
func formatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
