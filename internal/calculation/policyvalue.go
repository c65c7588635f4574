package calculation

import (
	"fmt"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
)

// AccumulateClosedForm projects the policy cash value after months of
// level contributions with the future-value-of-annuity formula. The
// ongoing balance fee is deducted once in aggregate rather than
// compounded monthly, which makes this the quick-estimate variant;
// strategies where withdrawal timing interacts with compounding use
// AccumulateStepwise instead.
func AccumulateClosedForm(plan domain.PolicyPlan, months int) (decimal.Decimal, error) {
	if err := plan.Validate(); err != nil {
		return decimal.Zero, err
	}
	if months < 0 {
		return decimal.Zero, fmt.Errorf("%w: months must not be negative, got %d", domain.ErrInvalidInput, months)
	}
	if months == 0 {
		return decimal.Zero, nil
	}

	net := plan.NetMonthlyPremium()
	rate := plan.MonthlyYieldRate()
	n := decimal.NewFromInt(int64(months))

	var value decimal.Decimal
	if rate.IsZero() {
		// Zero yield: plain sum of contributions, no compounding.
		value = net.Mul(n)
	} else {
		growth := one.Add(rate).Pow(n).Sub(one)
		value = net.Mul(growth).Div(rate)
	}

	balanceFee := value.Mul(plan.BalanceFeeRateMonthly).Mul(n)
	return value.Sub(balanceFee), nil
}

// PolicyBalance is the outcome of a stepwise accumulation.
type PolicyBalance struct {
	Balance   decimal.Decimal
	TotalPaid decimal.Decimal
	TotalFees decimal.Decimal
}

// StepMonth advances one contribution month: the net premium goes in,
// the balance compounds at the monthly yield, then the balance fee
// comes out.
func StepMonth(plan domain.PolicyPlan, b PolicyBalance) PolicyBalance {
	setupFee := plan.MonthlyPremium.Mul(plan.SetupFeeRate)
	b.TotalPaid = b.TotalPaid.Add(plan.MonthlyPremium)
	b.TotalFees = b.TotalFees.Add(setupFee)

	b.Balance = b.Balance.Add(plan.MonthlyPremium.Sub(setupFee)).Mul(one.Add(plan.MonthlyYieldRate()))

	balanceFee := b.Balance.Mul(plan.BalanceFeeRateMonthly)
	b.Balance = b.Balance.Sub(balanceFee)
	b.TotalFees = b.TotalFees.Add(balanceFee)
	return b
}

// AccumulateStepwise runs the exact month-by-month accumulation for the
// given number of months.
func AccumulateStepwise(plan domain.PolicyPlan, months int) (PolicyBalance, error) {
	if err := plan.Validate(); err != nil {
		return PolicyBalance{}, err
	}
	if months < 0 {
		return PolicyBalance{}, fmt.Errorf("%w: months must not be negative, got %d", domain.ErrInvalidInput, months)
	}
	var b PolicyBalance
	for month := 1; month <= months; month++ {
		b = StepMonth(plan, b)
	}
	return b, nil
}

var (
	surrenderBaseRate  = decimal.NewFromFloat(0.10)
	surrenderDecayRate = decimal.NewFromFloat(0.01)
)

// SurrenderDeduction returns the early-termination penalty on a
// surrender value: 10% declining one point per elapsed year, zero from
// year 10 on.
func SurrenderDeduction(value decimal.Decimal, elapsedYears int) decimal.Decimal {
	rate := surrenderBaseRate.Sub(surrenderDecayRate.Mul(decimal.NewFromInt(int64(elapsedYears))))
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return value.Mul(rate)
}
