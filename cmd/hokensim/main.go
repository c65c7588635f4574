package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/hokensim/hokensim/internal/calculation"
	"github.com/hokensim/hokensim/internal/config"
	"github.com/hokensim/hokensim/internal/domain"
	"github.com/hokensim/hokensim/internal/rank"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "hokensim %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "hokensim",
	Short: "Life insurance withdrawal strategy optimizer",
	Long:  "Ranks withdrawal strategies for savings-type life insurance policies under Japanese tax rules",
}

var rankCmd = &cobra.Command{
	Use:   "rank [input-file]",
	Short: "Rank withdrawal strategies from a YAML input file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		engine := rank.NewEngine()
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			engine.SetLogger(simpleCLILogger{})
		}

		set, err := engine.RankStrategies(cfg.ToPlan(), cfg.ToGrid(), cfg.TaxableIncome)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "table":
			fmt.Print((&rank.TableFormatter{}).Format(set))
		case "csv":
			out, err := (&rank.CSVFormatter{}).Format(set)
			if err != nil {
				return err
			}
			fmt.Print(out)
		case "json":
			out, err := (&rank.JSONFormatter{}).Format(set)
			if err != nil {
				return err
			}
			fmt.Print(out)
		default:
			return fmt.Errorf("unknown output format %q (want table, csv or json)", format)
		}
		return nil
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [input-file]",
	Short: "Evaluate a single strategy against the plan in the input file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		strategy, err := strategyFromFlags(cmd)
		if err != nil {
			return err
		}

		evaluator := calculation.NewStrategyEvaluator()
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			evaluator.SetLogger(simpleCLILogger{})
		}

		result, err := evaluator.Evaluate(cfg.ToPlan(), strategy, cfg.TaxableIncome)
		if err != nil {
			return err
		}

		fmt.Printf("Strategy:              %s\n", result.StrategyLabel)
		fmt.Printf("Total paid in:         %s yen\n", result.TotalPaidIn.StringFixed(0))
		fmt.Printf("Surrender value:       %s yen\n", result.SurrenderValue.StringFixed(0))
		fmt.Printf("Reinvestment value:    %s yen\n", result.ReinvestmentValue.StringFixed(0))
		fmt.Printf("Deduction tax savings: %s yen\n", result.TotalDeductionTaxSavings.StringFixed(0))
		fmt.Printf("Withdrawal tax:        %s yen\n", result.WithdrawalTax.StringFixed(0))
		fmt.Printf("Reinvestment tax:      %s yen\n", result.ReinvestmentTax.StringFixed(0))
		fmt.Printf("Switch cost:           %s yen\n", result.SwitchCost.StringFixed(0))
		fmt.Printf("Net benefit:           %s yen\n", result.NetBenefit.StringFixed(0))
		fmt.Printf("Effective return:      %s%%/year\n",
			result.EffectiveAnnualReturn.Mul(decimal.NewFromInt(100)).StringFixed(2))
		return nil
	},
}

// strategyFromFlags builds the strategy named by --strategy from the
// family-specific flags.
func strategyFromFlags(cmd *cobra.Command) (domain.Strategy, error) {
	family, _ := cmd.Flags().GetString("strategy")
	year, _ := cmd.Flags().GetInt("year")

	returnStr, _ := cmd.Flags().GetString("reinvest-return")
	reinvestReturn, err := decimal.NewFromString(returnStr)
	if err != nil {
		return nil, fmt.Errorf("invalid --reinvest-return %q: %w", returnStr, err)
	}
	cgtStr, _ := cmd.Flags().GetString("reinvest-cgt")
	reinvestCGT, err := decimal.NewFromString(cgtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid --reinvest-cgt %q: %w", cgtStr, err)
	}
	reinvestment := domain.ReinvestmentOption{
		AnnualReturnRate:    reinvestReturn,
		CapitalGainsTaxRate: reinvestCGT,
	}

	feeStr, _ := cmd.Flags().GetString("fee")
	fee, err := decimal.NewFromString(feeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid --fee %q: %w", feeStr, err)
	}

	switch family {
	case "continue":
		return domain.Continue{}, nil
	case "partial":
		interval, _ := cmd.Flags().GetInt("interval")
		ratioStr, _ := cmd.Flags().GetString("ratio")
		ratio, err := decimal.NewFromString(ratioStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --ratio %q: %w", ratioStr, err)
		}
		return domain.PartialWithdrawal{
			IntervalYears:     interval,
			WithdrawalRatio:   ratio,
			WithdrawalFeeRate: fee,
			Reinvestment:      reinvestment,
		}, nil
	case "full":
		return domain.FullWithdrawal{WithdrawalYear: year}, nil
	case "switch":
		continuePremiums, _ := cmd.Flags().GetBool("continue-premiums")
		return domain.Switch{
			SwitchYear:       year,
			FeeRate:          fee,
			NewFund:          reinvestment,
			ContinuePremiums: continuePremiums,
		}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want continue, partial, full or switch)", family)
	}
}

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [input-file]",
	Short: "Show the year the policy first beats the premiums paid in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		evaluator := calculation.NewStrategyEvaluator()
		result, err := evaluator.BreakevenAnalysis(cfg.ToPlan(), cfg.TaxableIncome)
		if err != nil {
			return err
		}

		fmt.Printf("%-5s %15s %15s %15s %15s\n", "Year", "Paid In", "Surrender Net", "Tax Savings", "Net Position")
		for _, row := range result.Yearly {
			marker := ""
			if row.Year == result.BreakevenYear {
				marker = "  <- break-even"
			}
			fmt.Printf("%-5d %15s %15s %15s %15s%s\n",
				row.Year,
				row.TotalPaid.StringFixed(0),
				row.SurrenderNet.StringFixed(0),
				row.TotalSavings.StringFixed(0),
				row.NetPosition.StringFixed(0),
				marker)
		}
		if result.BreakevenYear == 0 {
			fmt.Println("\nThe policy never breaks even within its term.")
		} else {
			fmt.Printf("\nBreak-even in year %d.\n", result.BreakevenYear)
		}
		return nil
	},
}

var reformCmd = &cobra.Command{
	Use:   "reform [input-file]",
	Short: "Quantify the deduction advantage of a grandfathered contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		startYear, _ := cmd.Flags().GetInt("start-year")
		reformYear, _ := cmd.Flags().GetInt("reform-year")

		evaluator := calculation.NewStrategyEvaluator()
		impact, err := evaluator.ReformImpactAnalysis(cfg.ToPlan(), cfg.TaxableIncome, startYear, reformYear)
		if err != nil {
			return err
		}

		fmt.Printf("Old-regime deduction:  %s yen (saves %s yen/year)\n",
			impact.OldDeduction.StringFixed(0), impact.OldAnnualSavings.StringFixed(0))
		fmt.Printf("Post-reform deduction: %s yen (saves %s yen/year)\n",
			impact.NewDeduction.StringFixed(0), impact.NewAnnualSavings.StringFixed(0))
		if impact.Grandfathered {
			fmt.Printf("Grandfathered: keeps %s yen/year, %s yen over the term.\n",
				impact.AnnualDifference.StringFixed(0), impact.TermDifference.StringFixed(0))
		} else {
			fmt.Println("Contract started after the reform; the post-reform schedule applies.")
		}
		return nil
	},
}

var deductionCmd = &cobra.Command{
	Use:   "deduction",
	Short: "Show the premium deduction and tax savings for one year",
	RunE: func(cmd *cobra.Command, args []string) error {
		premiumStr, _ := cmd.Flags().GetString("premium")
		incomeStr, _ := cmd.Flags().GetString("income")

		annualPremium, err := decimal.NewFromString(premiumStr)
		if err != nil {
			return fmt.Errorf("invalid --premium %q: %w", premiumStr, err)
		}
		income, err := decimal.NewFromString(incomeStr)
		if err != nil {
			return fmt.Errorf("invalid --income %q: %w", incomeStr, err)
		}

		tables := calculation.NewStrategyEvaluator()
		deduction, err := tables.Deductions.Deduction(annualPremium)
		if err != nil {
			return err
		}
		savings, err := tables.Taxes.SavingsFromDeduction(deduction, income)
		if err != nil {
			return err
		}

		fmt.Printf("Annual premium:       %s yen\n", annualPremium.StringFixed(0))
		fmt.Printf("Deduction:            %s yen\n", savings.Deduction.StringFixed(0))
		fmt.Printf("Income tax savings:   %s yen\n", savings.IncomeTaxSavings.StringFixed(0))
		fmt.Printf("Resident tax savings: %s yen\n", savings.ResidentTaxSavings.StringFixed(0))
		fmt.Printf("Total savings:        %s yen/year\n", savings.TotalSavings.StringFixed(0))
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file without running anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s is valid: %d strategies in the grid.\n", args[0], cfg.ToGrid().Size())
		return nil
	},
}

func init() {
	rankCmd.Flags().String("format", "table", "Output format: table, csv, or json")
	rankCmd.Flags().Bool("debug", false, "Enable debug logging")

	evaluateCmd.Flags().String("strategy", "continue", "Strategy family: continue, partial, full, or switch")
	evaluateCmd.Flags().Int("year", 0, "Withdrawal or switch year (full, switch)")
	evaluateCmd.Flags().Int("interval", 0, "Withdrawal interval in years (partial)")
	evaluateCmd.Flags().String("ratio", "0", "Withdrawal ratio in (0,1] (partial)")
	evaluateCmd.Flags().String("fee", "0.01", "Withdrawal or switch fee rate")
	evaluateCmd.Flags().String("reinvest-return", "0", "Annual return of the reinvestment vehicle")
	evaluateCmd.Flags().String("reinvest-cgt", "0.20315", "Capital gains tax rate on reinvestment gains")
	evaluateCmd.Flags().Bool("continue-premiums", true, "Keep paying premiums into the new fund (switch)")
	evaluateCmd.Flags().Bool("debug", false, "Enable debug logging")

	reformCmd.Flags().Int("start-year", 2010, "Year the contract was entered")
	reformCmd.Flags().Int("reform-year", 2012, "Year the deduction reform took effect")

	deductionCmd.Flags().String("premium", "", "Annual premium in yen")
	deductionCmd.Flags().String("income", "", "Taxable income in yen")
	deductionCmd.MarkFlagRequired("premium")
	deductionCmd.MarkFlagRequired("income")

	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(reformCmd)
	rootCmd.AddCommand(deductionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
