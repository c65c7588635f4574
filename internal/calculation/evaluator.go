package calculation

import (
	"fmt"
	"math"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
)

// StrategyEvaluator projects the net benefit of a withdrawal strategy
// against a policy plan by composing the policy value model, the
// deduction table and the income-tax table.
type StrategyEvaluator struct {
	Taxes      *IncomeTaxTable
	Deductions *DeductionTable
	Logger     Logger
}

// NewStrategyEvaluator creates an evaluator on the 2025 statutory
// tables.
func NewStrategyEvaluator() *StrategyEvaluator {
	return &StrategyEvaluator{
		Taxes:      NewIncomeTaxTable2025(),
		Deductions: NewOldRegimeDeductionTable(),
		Logger:     NopLogger{},
	}
}

// SetLogger replaces the evaluator's logger; nil restores the no-op.
func (se *StrategyEvaluator) SetLogger(l Logger) {
	if l == nil {
		se.Logger = NopLogger{}
		return
	}
	se.Logger = l
}

// Evaluate projects the strategy. Dispatch is exhaustive over the
// closed strategy set; out-of-range strategy fields fail with
// InvalidParameter, never clamped.
func (se *StrategyEvaluator) Evaluate(plan domain.PolicyPlan, strategy domain.Strategy, taxableIncome decimal.Decimal) (*domain.EvaluationResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if taxableIncome.IsNegative() {
		return nil, fmt.Errorf("%w: taxable income must not be negative, got %s", domain.ErrInvalidInput, taxableIncome)
	}
	if err := strategy.Validate(plan); err != nil {
		return nil, err
	}

	switch s := strategy.(type) {
	case domain.Continue:
		return se.evaluateFullSurrender(plan, plan.TermYears, taxableIncome, s.Kind(), s.Label())
	case domain.FullWithdrawal:
		return se.evaluateFullSurrender(plan, s.WithdrawalYear, taxableIncome, s.Kind(), s.Label())
	case domain.PartialWithdrawal:
		return se.evaluatePartialWithdrawal(plan, s, taxableIncome)
	case domain.Switch:
		return se.evaluateSwitch(plan, s, taxableIncome)
	default:
		return nil, fmt.Errorf("%w: unknown strategy type %T", domain.ErrInvalidParameter, strategy)
	}
}

// annualDeductionSavings returns the tax saved in one year by deducting
// the plan's annual premium under the old regime.
func (se *StrategyEvaluator) annualDeductionSavings(annualPremium, taxableIncome decimal.Decimal) (decimal.Decimal, error) {
	deduction, err := se.Deductions.Deduction(annualPremium)
	if err != nil {
		return decimal.Zero, err
	}
	savings, err := se.Taxes.SavingsFromDeduction(deduction, taxableIncome)
	if err != nil {
		return decimal.Zero, err
	}
	return savings.TotalSavings, nil
}

// evaluateFullSurrender covers Continue (years == TermYears) and
// FullWithdrawal (years < TermYears): accumulate with the closed form,
// surrender in full, tax the profit as occasional income. Premiums
// after the surrender year are never paid and earn no deduction.
func (se *StrategyEvaluator) evaluateFullSurrender(plan domain.PolicyPlan, years int, taxableIncome decimal.Decimal, kind domain.StrategyKind, label string) (*domain.EvaluationResult, error) {
	months := years * 12

	gross, err := AccumulateClosedForm(plan, months)
	if err != nil {
		return nil, err
	}
	surrender := gross.Sub(SurrenderDeduction(gross, years))
	totalPaid := plan.MonthlyPremium.Mul(decimal.NewFromInt(int64(months)))
	profit := surrender.Sub(totalPaid)

	withdrawalTax, err := se.Taxes.LumpSumTax(profit, taxableIncome)
	if err != nil {
		return nil, err
	}

	annualSavings, err := se.annualDeductionSavings(plan.AnnualPremium(), taxableIncome)
	if err != nil {
		return nil, err
	}
	totalSavings := annualSavings.Mul(decimal.NewFromInt(int64(years)))

	netBenefit := totalSavings.Add(surrender).Sub(totalPaid).Sub(withdrawalTax)

	se.Logger.Debugf("full surrender year %d: gross=%s surrender=%s tax=%s net=%s",
		years, gross.StringFixed(0), surrender.StringFixed(0), withdrawalTax.StringFixed(0), netBenefit.StringFixed(0))

	return &domain.EvaluationResult{
		StrategyLabel:            label,
		Kind:                     kind,
		TotalPaidIn:              totalPaid,
		GrossPolicyValue:         gross,
		SurrenderValue:           surrender,
		TotalDeductionTaxSavings: totalSavings,
		WithdrawalTax:            withdrawalTax,
		NetBenefit:               netBenefit,
		EffectiveAnnualReturn:    effectiveAnnualReturn(netBenefit, totalPaid, years),
	}, nil
}

// evaluatePartialWithdrawal runs the month-by-month simulation: at each
// interval boundary a slice of the balance is surrendered, taxed as
// occasional income on its pro-rated profit, and moved into the
// reinvestment vehicle, while the undrawn balance keeps compounding in
// the policy. The stepwise variant is required here because withdrawal
// timing interacts with compounding.
func (se *StrategyEvaluator) evaluatePartialWithdrawal(plan domain.PolicyPlan, s domain.PartialWithdrawal, taxableIncome decimal.Decimal) (*domain.EvaluationResult, error) {
	totalMonths := plan.TotalMonths()
	intervalMonths := s.IntervalYears * 12
	monthlyReinvestRate := s.Reinvestment.MonthlyReturnRate()

	var policy PolicyBalance
	var reinvestBalance, reinvestBasis decimal.Decimal
	var totalWithdrawalTax decimal.Decimal
	remainingRatio := one.Sub(s.WithdrawalRatio)

	// paidBasis tracks the premium share still attributable to the
	// policy; it shrinks with each withdrawal so later profits are
	// computed against the remaining basis.
	paidBasis := decimal.Zero

	for month := 1; month <= totalMonths; month++ {
		policy = StepMonth(plan, policy)
		paidBasis = paidBasis.Add(plan.MonthlyPremium)

		reinvestBalance = reinvestBalance.Mul(one.Add(monthlyReinvestRate))

		if month%intervalMonths == 0 && month < totalMonths {
			withdrawal := policy.Balance.Mul(s.WithdrawalRatio)
			fee := withdrawal.Mul(s.WithdrawalFeeRate)
			netWithdrawal := withdrawal.Sub(fee)

			profit := netWithdrawal.Sub(paidBasis.Mul(s.WithdrawalRatio))
			tax, err := se.Taxes.LumpSumTax(profit, taxableIncome)
			if err != nil {
				return nil, err
			}
			totalWithdrawalTax = totalWithdrawalTax.Add(tax)

			addition := netWithdrawal.Sub(tax)
			reinvestBalance = reinvestBalance.Add(addition)
			reinvestBasis = reinvestBasis.Add(addition)

			policy.Balance = policy.Balance.Mul(remainingRatio)
			paidBasis = paidBasis.Mul(remainingRatio)
		}
	}

	// Final surrender of whatever stayed in the policy.
	finalSurrender := policy.Balance.Sub(SurrenderDeduction(policy.Balance, plan.TermYears))
	finalProfit := finalSurrender.Sub(paidBasis)
	finalTax, err := se.Taxes.LumpSumTax(finalProfit, taxableIncome)
	if err != nil {
		return nil, err
	}
	totalWithdrawalTax = totalWithdrawalTax.Add(finalTax)
	netPolicy := finalSurrender.Sub(finalTax)

	// Capital gains on the reinvestment vehicle's own growth.
	reinvestGain := reinvestBalance.Sub(reinvestBasis)
	reinvestTax := decimal.Zero
	if reinvestGain.IsPositive() {
		reinvestTax = reinvestGain.Mul(s.Reinvestment.CapitalGainsTaxRate)
	}
	netReinvest := reinvestBalance.Sub(reinvestTax)

	annualSavings, err := se.annualDeductionSavings(plan.AnnualPremium(), taxableIncome)
	if err != nil {
		return nil, err
	}
	totalSavings := annualSavings.Mul(decimal.NewFromInt(int64(plan.TermYears)))

	totalPaid := policy.TotalPaid
	netBenefit := netPolicy.Add(netReinvest).Add(totalSavings).Sub(totalPaid)

	se.Logger.Debugf("partial withdrawal every %dy at %s: policy=%s reinvest=%s net=%s",
		s.IntervalYears, s.WithdrawalRatio, netPolicy.StringFixed(0), netReinvest.StringFixed(0), netBenefit.StringFixed(0))

	return &domain.EvaluationResult{
		StrategyLabel:            s.Label(),
		Kind:                     s.Kind(),
		TotalPaidIn:              totalPaid,
		GrossPolicyValue:         policy.Balance,
		SurrenderValue:           finalSurrender,
		ReinvestmentValue:        netReinvest,
		TotalDeductionTaxSavings: totalSavings,
		WithdrawalTax:            totalWithdrawalTax,
		ReinvestmentTax:          reinvestTax,
		NetBenefit:               netBenefit,
		EffectiveAnnualReturn:    effectiveAnnualReturn(netBenefit, totalPaid, plan.TermYears),
	}, nil
}

// evaluateSwitch is the two-phase computation: surrender in full at the
// switch year, pay the one-time switching fee on the surrender value,
// then grow the net proceeds in the new fund for the remaining term,
// optionally with the monthly premium redirected into the fund.
func (se *StrategyEvaluator) evaluateSwitch(plan domain.PolicyPlan, s domain.Switch, taxableIncome decimal.Decimal) (*domain.EvaluationResult, error) {
	// Phase 1: policy accumulation to the switch year.
	policy, err := AccumulateStepwise(plan, s.SwitchYear*12)
	if err != nil {
		return nil, err
	}
	surrender := policy.Balance.Sub(SurrenderDeduction(policy.Balance, s.SwitchYear))
	switchCost := surrender.Mul(s.FeeRate)

	profit := surrender.Sub(policy.TotalPaid)
	withdrawalTax, err := se.Taxes.LumpSumTax(profit, taxableIncome)
	if err != nil {
		return nil, err
	}
	netProceeds := surrender.Sub(switchCost).Sub(withdrawalTax)

	// Phase 2: lump sum in the new fund for the remaining term.
	remainingMonths := (plan.TermYears - s.SwitchYear) * 12
	fundMonthlyRate := s.NewFund.MonthlyReturnRate()

	fundBalance := netProceeds
	fundBasis := netProceeds
	totalPaid := policy.TotalPaid
	for month := 1; month <= remainingMonths; month++ {
		fundBalance = fundBalance.Mul(one.Add(fundMonthlyRate))
		if s.ContinuePremiums {
			fundBalance = fundBalance.Add(plan.MonthlyPremium)
			fundBasis = fundBasis.Add(plan.MonthlyPremium)
			totalPaid = totalPaid.Add(plan.MonthlyPremium)
		}
	}

	fundGain := fundBalance.Sub(fundBasis)
	reinvestTax := decimal.Zero
	if fundGain.IsPositive() {
		reinvestTax = fundGain.Mul(s.NewFund.CapitalGainsTaxRate)
	}
	netFund := fundBalance.Sub(reinvestTax)

	// Deduction savings stop when the policy is surrendered.
	annualSavings, err := se.annualDeductionSavings(plan.AnnualPremium(), taxableIncome)
	if err != nil {
		return nil, err
	}
	totalSavings := annualSavings.Mul(decimal.NewFromInt(int64(s.SwitchYear)))

	netBenefit := netFund.Add(totalSavings).Sub(totalPaid)

	se.Logger.Debugf("switch year %d fee %s: surrender=%s proceeds=%s fund=%s net=%s",
		s.SwitchYear, s.FeeRate, surrender.StringFixed(0), netProceeds.StringFixed(0), netFund.StringFixed(0), netBenefit.StringFixed(0))

	return &domain.EvaluationResult{
		StrategyLabel:            s.Label(),
		Kind:                     s.Kind(),
		TotalPaidIn:              totalPaid,
		GrossPolicyValue:         policy.Balance,
		SurrenderValue:           surrender,
		ReinvestmentValue:        netFund,
		TotalDeductionTaxSavings: totalSavings,
		WithdrawalTax:            withdrawalTax,
		ReinvestmentTax:          reinvestTax,
		SwitchCost:               switchCost,
		NetBenefit:               netBenefit,
		EffectiveAnnualReturn:    effectiveAnnualReturn(netBenefit, totalPaid, plan.TermYears),
	}, nil
}

// effectiveAnnualReturn annualizes the total benefit over the committed
// capital: ((netBenefit + totalPaid) / totalPaid)^(1/years) - 1.
// Returns zero when the ratio or the horizon is degenerate.
func effectiveAnnualReturn(netBenefit, totalPaid decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 || totalPaid.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	ratio := netBenefit.Add(totalPaid).Div(totalPaid)
	if ratio.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	annualized := math.Pow(ratio.InexactFloat64(), 1.0/float64(years)) - 1.0
	return decimal.NewFromFloat(annualized)
}
