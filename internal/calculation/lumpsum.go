package calculation

import (
	"fmt"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
)

// OccasionalIncomeExemption is the special exemption on one-time
// (occasional) income; only half of the gain above it is taxed.
var OccasionalIncomeExemption = decimal.NewFromInt(500000)

// LumpSumTax returns the incremental income tax owed when profit is
// realized as occasional income on top of taxableIncome. The delta
// against the bracket table is authoritative: it captures the gain
// pushing the filer into a higher bracket, which applying the marginal
// rate of taxableIncome alone would miss. Profits at or below the
// exemption owe nothing; losses owe nothing.
func (t *IncomeTaxTable) LumpSumTax(profit, taxableIncome decimal.Decimal) (decimal.Decimal, error) {
	if taxableIncome.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: taxable income must not be negative, got %s", domain.ErrInvalidInput, taxableIncome)
	}

	taxableProfit := profit.Sub(OccasionalIncomeExemption)
	if taxableProfit.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}
	taxableProfit = taxableProfit.Div(two)

	withGain, err := t.IncomeTaxOwed(taxableIncome.Add(taxableProfit))
	if err != nil {
		return decimal.Zero, err
	}
	withoutGain, err := t.IncomeTaxOwed(taxableIncome)
	if err != nil {
		return decimal.Zero, err
	}
	return withGain.Sub(withoutGain), nil
}
