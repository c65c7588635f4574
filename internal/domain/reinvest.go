package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StatutoryCapitalGainsTaxRate is the combined rate on investment gains
// outside a tax-advantaged wrapper (income tax 15.315% + resident 5%).
var StatutoryCapitalGainsTaxRate = decimal.NewFromFloat(0.20315)

// ReinvestmentOption describes how funds withdrawn from the policy are
// subsequently deployed: the expected annual return and the
// capital-gains tax rate on the gains (zero for a NISA-style wrapper).
type ReinvestmentOption struct {
	AnnualReturnRate    decimal.Decimal `yaml:"annual_return_rate" json:"annual_return_rate"`
	CapitalGainsTaxRate decimal.Decimal `yaml:"capital_gains_tax_rate" json:"capital_gains_tax_rate"`
}

// CashReinvestment returns the hold-as-cash option: no growth, no tax.
func CashReinvestment() ReinvestmentOption {
	return ReinvestmentOption{AnnualReturnRate: decimal.Zero, CapitalGainsTaxRate: decimal.Zero}
}

// TaxableFund returns a taxable fund option at the given annual return,
// taxed at the statutory capital-gains rate.
func TaxableFund(annualReturnRate decimal.Decimal) ReinvestmentOption {
	return ReinvestmentOption{AnnualReturnRate: annualReturnRate, CapitalGainsTaxRate: StatutoryCapitalGainsTaxRate}
}

// Validate checks the option invariants.
func (r ReinvestmentOption) Validate() error {
	if r.AnnualReturnRate.IsNegative() {
		return fmt.Errorf("%w: reinvestment annual return rate must not be negative, got %s", ErrInvalidInput, r.AnnualReturnRate)
	}
	if r.CapitalGainsTaxRate.IsNegative() || r.CapitalGainsTaxRate.GreaterThan(one) {
		return fmt.Errorf("%w: capital gains tax rate must be in [0,1], got %s", ErrInvalidInput, r.CapitalGainsTaxRate)
	}
	return nil
}

// MonthlyReturnRate returns AnnualReturnRate / 12.
func (r ReinvestmentOption) MonthlyReturnRate() decimal.Decimal {
	return r.AnnualReturnRate.Div(twelve)
}
