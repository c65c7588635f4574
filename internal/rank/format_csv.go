package rank

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats a ranking as CSV
type CSVFormatter struct{}

// Format generates CSV output for a ranked strategy set
func (cf *CSVFormatter) Format(set *RankingSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Rank",
		"Kind",
		"Strategy",
		"Total Paid In",
		"Surrender Value",
		"Reinvestment Value",
		"Deduction Tax Savings",
		"Withdrawal Tax",
		"Reinvestment Tax",
		"Switch Cost",
		"Net Benefit",
		"Effective Annual Return",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range set.Results {
		row := []string{
			fmt.Sprintf("%d", r.Rank),
			r.Kind,
			r.Result.StrategyLabel,
			r.Result.TotalPaidIn.StringFixed(0),
			r.Result.SurrenderValue.StringFixed(0),
			r.Result.ReinvestmentValue.StringFixed(0),
			r.Result.TotalDeductionTaxSavings.StringFixed(0),
			r.Result.WithdrawalTax.StringFixed(0),
			r.Result.ReinvestmentTax.StringFixed(0),
			r.Result.SwitchCost.StringFixed(0),
			r.Result.NetBenefit.StringFixed(0),
			r.Result.EffectiveAnnualReturn.StringFixed(4),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}
