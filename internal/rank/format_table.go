package rank

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats a ranking as a console table
type TableFormatter struct{}

// Format generates a formatted table for a ranked strategy set
func (tf *TableFormatter) Format(set *RankingSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("WITHDRAWAL STRATEGY RANKING\n")
	sb.WriteString(strings.Repeat("=", 100) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly Premium: %s yen | Term: %d years | Annual Yield: %s\n",
		tf.formatYen(set.Plan.MonthlyPremium), set.Plan.TermYears, tf.formatPercent(set.Plan.AnnualYieldRate)))
	sb.WriteString(fmt.Sprintf("Taxable Income: %s yen\n", tf.formatYen(set.TaxableIncome)))
	sb.WriteString("\n")

	rankWidth := 4
	labelWidth := 48
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %-*s %*s %*s %*s\n",
		rankWidth, "Rank",
		labelWidth, "Strategy",
		numWidth, "Net Benefit",
		numWidth, "Total Tax",
		numWidth, "Eff. Return"))
	sb.WriteString(strings.Repeat("-", 100) + "\n")

	for _, r := range set.Results {
		totalTax := r.Result.WithdrawalTax.Add(r.Result.ReinvestmentTax)
		sb.WriteString(fmt.Sprintf("%-*d %-*s %*s %*s %*s\n",
			rankWidth, r.Rank,
			labelWidth, tf.truncate(r.Result.StrategyLabel, labelWidth),
			numWidth, tf.formatYen(r.Result.NetBenefit),
			numWidth, tf.formatYen(totalTax),
			numWidth, tf.formatPercent(r.Result.EffectiveAnnualReturn)))
	}

	sb.WriteString(strings.Repeat("=", 100) + "\n")

	if set.Recommendation != "" {
		sb.WriteString("\n" + set.Recommendation + "\n")
	}

	return sb.String()
}

// formatYen renders a yen amount with thousands separators
func (tf *TableFormatter) formatYen(d decimal.Decimal) string {
	s := d.StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// formatPercent renders a decimal fraction as a percentage
func (tf *TableFormatter) formatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
