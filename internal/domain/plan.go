package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default fee schedule for the savings policies this tool models.
var (
	DefaultSetupFeeRate          = decimal.NewFromFloat(0.013)   // per premium payment
	DefaultBalanceFeeRateMonthly = decimal.NewFromFloat(0.00008) // per month on the balance
	DefaultWithdrawalFeeRate     = decimal.NewFromFloat(0.01)    // per partial surrender
)

// PolicyPlan describes a savings-type life-insurance policy under
// evaluation. All rates are decimal fractions (0.0125 = 1.25%).
type PolicyPlan struct {
	MonthlyPremium        decimal.Decimal `yaml:"monthly_premium" json:"monthly_premium"`
	AnnualYieldRate       decimal.Decimal `yaml:"annual_yield_rate" json:"annual_yield_rate"`
	TermYears             int             `yaml:"term_years" json:"term_years"`
	SetupFeeRate          decimal.Decimal `yaml:"setup_fee_rate" json:"setup_fee_rate"`
	BalanceFeeRateMonthly decimal.Decimal `yaml:"balance_fee_rate_monthly" json:"balance_fee_rate_monthly"`
}

// NewPolicyPlan builds a plan with the default fee schedule and
// validates it.
func NewPolicyPlan(monthlyPremium, annualYieldRate decimal.Decimal, termYears int) (PolicyPlan, error) {
	plan := PolicyPlan{
		MonthlyPremium:        monthlyPremium,
		AnnualYieldRate:       annualYieldRate,
		TermYears:             termYears,
		SetupFeeRate:          DefaultSetupFeeRate,
		BalanceFeeRateMonthly: DefaultBalanceFeeRateMonthly,
	}
	if err := plan.Validate(); err != nil {
		return PolicyPlan{}, err
	}
	return plan, nil
}

// Validate checks the plan invariants. Non-positive premiums or terms
// are rejected, never clamped.
func (p PolicyPlan) Validate() error {
	if p.MonthlyPremium.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: monthly premium must be positive, got %s", ErrInvalidInput, p.MonthlyPremium)
	}
	if p.TermYears <= 0 {
		return fmt.Errorf("%w: term years must be positive, got %d", ErrInvalidInput, p.TermYears)
	}
	if p.AnnualYieldRate.IsNegative() {
		return fmt.Errorf("%w: annual yield rate must not be negative, got %s", ErrInvalidInput, p.AnnualYieldRate)
	}
	if p.SetupFeeRate.IsNegative() || p.SetupFeeRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("%w: setup fee rate must be in [0,1), got %s", ErrInvalidInput, p.SetupFeeRate)
	}
	if p.BalanceFeeRateMonthly.IsNegative() || p.BalanceFeeRateMonthly.GreaterThanOrEqual(one) {
		return fmt.Errorf("%w: monthly balance fee rate must be in [0,1), got %s", ErrInvalidInput, p.BalanceFeeRateMonthly)
	}
	return nil
}

// AnnualPremium returns MonthlyPremium x 12.
func (p PolicyPlan) AnnualPremium() decimal.Decimal {
	return p.MonthlyPremium.Mul(twelve)
}

// TotalMonths returns TermYears x 12.
func (p PolicyPlan) TotalMonths() int {
	return p.TermYears * 12
}

// MonthlyYieldRate returns AnnualYieldRate / 12.
func (p PolicyPlan) MonthlyYieldRate() decimal.Decimal {
	return p.AnnualYieldRate.Div(twelve)
}

// NetMonthlyPremium returns the monthly premium after the setup fee.
func (p PolicyPlan) NetMonthlyPremium() decimal.Decimal {
	return p.MonthlyPremium.Mul(one.Sub(p.SetupFeeRate))
}

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)
