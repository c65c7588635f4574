package calculation

import (
	"fmt"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionTier is one row of the premium-deduction table:
// deduction = premium x Rate + Base for premiums at or below Upper.
// Boundaries are inclusive on the lower tier.
type DeductionTier struct {
	Upper decimal.Decimal
	Rate  decimal.Decimal
	Base  decimal.Decimal
}

// DeductionTable computes the life-insurance premium income deduction.
type DeductionTable struct {
	Tiers []DeductionTier // ascending by Upper; premiums above the last tier hit the cap
	Cap   decimal.Decimal
}

// NewOldRegimeDeductionTable returns the old-regime schedule (contracts
// entered before the 2012 reform cutoff): full deduction up to 25,000,
// then half plus 12,500, then a quarter plus 25,000, capped at 50,000.
func NewOldRegimeDeductionTable() *DeductionTable {
	return &DeductionTable{
		Tiers: []DeductionTier{
			{decimal.NewFromInt(25000), one, decimal.Zero},
			{decimal.NewFromInt(50000), decimal.NewFromFloat(0.5), decimal.NewFromInt(12500)},
			{decimal.NewFromInt(100000), decimal.NewFromFloat(0.25), decimal.NewFromInt(25000)},
		},
		Cap: decimal.NewFromInt(50000),
	}
}

// NewPostReformDeductionTable returns the post-2012 general
// life-insurance schedule: full deduction up to 20,000, then half plus
// 10,000, then a quarter plus 20,000, capped at 40,000.
func NewPostReformDeductionTable() *DeductionTable {
	return &DeductionTable{
		Tiers: []DeductionTier{
			{decimal.NewFromInt(20000), one, decimal.Zero},
			{decimal.NewFromInt(40000), decimal.NewFromFloat(0.5), decimal.NewFromInt(10000)},
			{decimal.NewFromInt(80000), decimal.NewFromFloat(0.25), decimal.NewFromInt(20000)},
		},
		Cap: decimal.NewFromInt(40000),
	}
}

// Deduction returns the deduction for an annual premium. Zero premium
// yields zero; negative premium is rejected.
func (dt *DeductionTable) Deduction(annualPremium decimal.Decimal) (decimal.Decimal, error) {
	if annualPremium.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: annual premium must not be negative, got %s", domain.ErrInvalidInput, annualPremium)
	}
	for _, tier := range dt.Tiers {
		if annualPremium.LessThanOrEqual(tier.Upper) {
			return decimal.Min(annualPremium.Mul(tier.Rate).Add(tier.Base), dt.Cap), nil
		}
	}
	return dt.Cap, nil
}
