package calculation

import (
	"fmt"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. National income tax: 2025 quick-calculation table, seven brackets
//    from 5% to 45%. Bracket thresholds are not inflation-indexed.
//
// 2. Resident tax: 10% flat on taxable income, independent of bracket.
//
// 3. Reconstruction surtax: 2.1% on the national income-tax component
//    only, not on resident tax.

// TaxBracket is one row of the progressive quick table:
// tax = income x Rate - QuickDeduction for income at or below Upper.
// A zero Upper marks the unbounded top bracket.
type TaxBracket struct {
	Upper          decimal.Decimal
	Rate           decimal.Decimal
	QuickDeduction decimal.Decimal
}

// IncomeTaxTable computes national income tax, flat resident tax and
// the reconstruction surtax from a quick-calculation bracket table.
type IncomeTaxTable struct {
	Year         int
	Brackets     []TaxBracket // ascending by Upper; last entry unbounded
	ResidentRate decimal.Decimal
	SurtaxRate   decimal.Decimal
}

// NewIncomeTaxTable2025 returns the statutory 2025 table.
func NewIncomeTaxTable2025() *IncomeTaxTable {
	return &IncomeTaxTable{
		Year: 2025,
		Brackets: []TaxBracket{
			{decimal.NewFromInt(1950000), decimal.NewFromFloat(0.05), decimal.Zero},
			{decimal.NewFromInt(3300000), decimal.NewFromFloat(0.10), decimal.NewFromInt(97500)},
			{decimal.NewFromInt(6950000), decimal.NewFromFloat(0.20), decimal.NewFromInt(427500)},
			{decimal.NewFromInt(9000000), decimal.NewFromFloat(0.23), decimal.NewFromInt(636000)},
			{decimal.NewFromInt(18000000), decimal.NewFromFloat(0.33), decimal.NewFromInt(1536000)},
			{decimal.NewFromInt(40000000), decimal.NewFromFloat(0.40), decimal.NewFromInt(2796000)},
			{decimal.Zero, decimal.NewFromFloat(0.45), decimal.NewFromInt(4796000)},
		},
		ResidentRate: decimal.NewFromFloat(0.10),
		SurtaxRate:   decimal.NewFromFloat(0.021),
	}
}

// bracketFor returns the first bracket whose upper bound covers income.
func (t *IncomeTaxTable) bracketFor(income decimal.Decimal) TaxBracket {
	for _, b := range t.Brackets {
		if b.Upper.IsZero() || income.LessThanOrEqual(b.Upper) {
			return b
		}
	}
	return t.Brackets[len(t.Brackets)-1]
}

// IncomeTaxOwed returns the national income tax including the
// reconstruction surtax. Zero income owes zero tax; negative income is
// rejected rather than clamped.
func (t *IncomeTaxTable) IncomeTaxOwed(taxableIncome decimal.Decimal) (decimal.Decimal, error) {
	if taxableIncome.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: taxable income must not be negative, got %s", domain.ErrInvalidInput, taxableIncome)
	}
	if taxableIncome.IsZero() {
		return decimal.Zero, nil
	}
	b := t.bracketFor(taxableIncome)
	base := taxableIncome.Mul(b.Rate).Sub(b.QuickDeduction)
	if base.IsNegative() {
		base = decimal.Zero
	}
	return base.Mul(one.Add(t.SurtaxRate)), nil
}

// MarginalRate returns the bracket rate applied at taxableIncome,
// including the surtax multiplier.
func (t *IncomeTaxTable) MarginalRate(taxableIncome decimal.Decimal) (decimal.Decimal, error) {
	if taxableIncome.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: taxable income must not be negative, got %s", domain.ErrInvalidInput, taxableIncome)
	}
	if taxableIncome.IsZero() {
		return decimal.Zero, nil
	}
	b := t.bracketFor(taxableIncome)
	return b.Rate.Mul(one.Add(t.SurtaxRate)), nil
}

// ResidentTax returns the flat resident tax on taxableIncome.
func (t *IncomeTaxTable) ResidentTax(taxableIncome decimal.Decimal) (decimal.Decimal, error) {
	if taxableIncome.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: taxable income must not be negative, got %s", domain.ErrInvalidInput, taxableIncome)
	}
	return taxableIncome.Mul(t.ResidentRate), nil
}

// TaxSavings breaks down the annual tax saved by an income deduction.
type TaxSavings struct {
	Deduction          decimal.Decimal `json:"deduction"`
	IncomeTaxSavings   decimal.Decimal `json:"incomeTaxSavings"`
	ResidentTaxSavings decimal.Decimal `json:"residentTaxSavings"`
	TotalSavings       decimal.Decimal `json:"totalSavings"`
}

// SavingsFromDeduction computes the tax saved by removing deduction from
// taxableIncome, as a before/after delta on both tax components. Income
// after deduction floors at zero.
func (t *IncomeTaxTable) SavingsFromDeduction(deduction, taxableIncome decimal.Decimal) (TaxSavings, error) {
	if deduction.IsNegative() {
		return TaxSavings{}, fmt.Errorf("%w: deduction must not be negative, got %s", domain.ErrInvalidInput, deduction)
	}
	before, err := t.IncomeTaxOwed(taxableIncome)
	if err != nil {
		return TaxSavings{}, err
	}
	after := taxableIncome.Sub(deduction)
	if after.IsNegative() {
		after = decimal.Zero
	}
	afterTax, err := t.IncomeTaxOwed(after)
	if err != nil {
		return TaxSavings{}, err
	}

	incomeSavings := before.Sub(afterTax)
	residentSavings := taxableIncome.Sub(after).Mul(t.ResidentRate)

	return TaxSavings{
		Deduction:          deduction,
		IncomeTaxSavings:   incomeSavings,
		ResidentTaxSavings: residentSavings,
		TotalSavings:       incomeSavings.Add(residentSavings),
	}, nil
}

var (
	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)
)
