package domain

import "github.com/shopspring/decimal"

// EvaluationResult is the projected outcome of one strategy evaluated
// against one plan for a given taxable income. All values are yen.
type EvaluationResult struct {
	StrategyLabel string       `json:"strategyLabel"`
	Kind          StrategyKind `json:"-"`

	TotalPaidIn              decimal.Decimal `json:"totalPaidIn"`
	GrossPolicyValue         decimal.Decimal `json:"grossPolicyValue"`
	SurrenderValue           decimal.Decimal `json:"surrenderValue"`
	ReinvestmentValue        decimal.Decimal `json:"reinvestmentValue"`
	TotalDeductionTaxSavings decimal.Decimal `json:"totalDeductionTaxSavings"`
	WithdrawalTax            decimal.Decimal `json:"withdrawalTax"`
	ReinvestmentTax          decimal.Decimal `json:"reinvestmentTax"`
	SwitchCost               decimal.Decimal `json:"switchCost"`
	NetBenefit               decimal.Decimal `json:"netBenefit"`

	// EffectiveAnnualReturn annualizes (netBenefit + totalPaidIn) /
	// totalPaidIn over the years the money was committed.
	EffectiveAnnualReturn decimal.Decimal `json:"effectiveAnnualReturn"`
}
