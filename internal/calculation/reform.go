package calculation

import (
	"fmt"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
)

// ReformImpact compares the deduction tax savings a plan earns under
// the pre-reform schedule against what the same premiums would earn
// under the post-reform schedule.
type ReformImpact struct {
	OldDeduction     decimal.Decimal `json:"old_deduction"`
	NewDeduction     decimal.Decimal `json:"new_deduction"`
	OldAnnualSavings decimal.Decimal `json:"old_annual_savings"`
	NewAnnualSavings decimal.Decimal `json:"new_annual_savings"`
	AnnualDifference decimal.Decimal `json:"annual_difference"`
	TermDifference   decimal.Decimal `json:"term_difference"`
	Grandfathered    bool            `json:"grandfathered"`
}

// ReformImpactAnalysis quantifies what the plan holder keeps by being
// grandfathered under the old regime. policyStartYear and reformYear
// are explicit so the analysis never reads the clock: a contract
// started at or after reformYear is not grandfathered and the
// difference is reported as zero.
func (se *StrategyEvaluator) ReformImpactAnalysis(plan domain.PolicyPlan, taxableIncome decimal.Decimal, policyStartYear, reformYear int) (*ReformImpact, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if policyStartYear <= 0 || reformYear <= 0 {
		return nil, fmt.Errorf("%w: policy start year and reform year must be positive, got %d and %d",
			domain.ErrInvalidInput, policyStartYear, reformYear)
	}

	annualPremium := plan.AnnualPremium()

	oldDeduction, err := se.Deductions.Deduction(annualPremium)
	if err != nil {
		return nil, err
	}
	newDeduction, err := NewPostReformDeductionTable().Deduction(annualPremium)
	if err != nil {
		return nil, err
	}

	oldSavings, err := se.Taxes.SavingsFromDeduction(oldDeduction, taxableIncome)
	if err != nil {
		return nil, err
	}
	newSavings, err := se.Taxes.SavingsFromDeduction(newDeduction, taxableIncome)
	if err != nil {
		return nil, err
	}

	impact := &ReformImpact{
		OldDeduction:     oldDeduction,
		NewDeduction:     newDeduction,
		OldAnnualSavings: oldSavings.TotalSavings,
		NewAnnualSavings: newSavings.TotalSavings,
		Grandfathered:    policyStartYear < reformYear,
	}
	if impact.Grandfathered {
		impact.AnnualDifference = oldSavings.TotalSavings.Sub(newSavings.TotalSavings)
		impact.TermDifference = impact.AnnualDifference.Mul(decimal.NewFromInt(int64(plan.TermYears)))
	}

	se.Logger.Debugf("reform impact: old=%s new=%s annual diff=%s grandfathered=%t",
		oldDeduction.StringFixed(0), newDeduction.StringFixed(0), impact.AnnualDifference.StringFixed(0), impact.Grandfathered)
	return impact, nil
}
