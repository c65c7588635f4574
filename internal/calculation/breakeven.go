package calculation

import (
	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
)

// YearlyValue is one row of the break-even projection.
type YearlyValue struct {
	Year          int             `json:"year"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	GrossValue    decimal.Decimal `json:"gross_value"`
	SurrenderNet  decimal.Decimal `json:"surrender_net"`
	TotalSavings  decimal.Decimal `json:"total_savings"`
	NetPosition   decimal.Decimal `json:"net_position"`
	AheadOfPaidIn bool            `json:"ahead_of_paid_in"`
}

// BreakevenResult reports the first year the holder comes out ahead.
type BreakevenResult struct {
	BreakevenYear int           `json:"breakeven_year"` // 0 = never within the term
	Yearly        []YearlyValue `json:"yearly"`
}

// BreakevenAnalysis walks the policy year by year and reports when the
// surrender value net of the early-termination penalty, plus the
// cumulative deduction tax savings, first covers the premiums paid in.
func (se *StrategyEvaluator) BreakevenAnalysis(plan domain.PolicyPlan, taxableIncome decimal.Decimal) (*BreakevenResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	annualSavings, err := se.annualDeductionSavings(plan.AnnualPremium(), taxableIncome)
	if err != nil {
		return nil, err
	}

	result := &BreakevenResult{Yearly: make([]YearlyValue, 0, plan.TermYears)}

	var balance PolicyBalance
	for year := 1; year <= plan.TermYears; year++ {
		for month := 1; month <= 12; month++ {
			balance = StepMonth(plan, balance)
		}
		surrenderNet := balance.Balance.Sub(SurrenderDeduction(balance.Balance, year))
		savings := annualSavings.Mul(decimal.NewFromInt(int64(year)))
		net := surrenderNet.Add(savings).Sub(balance.TotalPaid)

		row := YearlyValue{
			Year:          year,
			TotalPaid:     balance.TotalPaid,
			GrossValue:    balance.Balance,
			SurrenderNet:  surrenderNet,
			TotalSavings:  savings,
			NetPosition:   net,
			AheadOfPaidIn: !net.IsNegative(),
		}
		result.Yearly = append(result.Yearly, row)

		if result.BreakevenYear == 0 && row.AheadOfPaidIn {
			result.BreakevenYear = year
		}
	}

	se.Logger.Debugf("breakeven analysis over %d years: breakeven year %d", plan.TermYears, result.BreakevenYear)
	return result, nil
}
