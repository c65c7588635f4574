// Package config loads and validates the YAML input file that drives a
// ranking run.
package config

import (
	"fmt"
	"os"

	"github.com/hokensim/hokensim/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Configuration is the top-level input file.
type Configuration struct {
	Plan          PlanConfig      `yaml:"plan"`
	TaxableIncome decimal.Decimal `yaml:"taxable_income"`
	Grid          GridConfig      `yaml:"grid"`
}

// PlanConfig mirrors domain.PolicyPlan with the fee fields optional;
// omitted fees fall back to the default schedule.
type PlanConfig struct {
	MonthlyPremium        decimal.Decimal  `yaml:"monthly_premium"`
	AnnualYieldRate       decimal.Decimal  `yaml:"annual_yield_rate"`
	TermYears             int              `yaml:"term_years"`
	SetupFeeRate          *decimal.Decimal `yaml:"setup_fee_rate"`
	BalanceFeeRateMonthly *decimal.Decimal `yaml:"balance_fee_rate_monthly"`
}

// GridConfig describes the strategy grid. Absent sections are not
// explored; include_continue defaults to true.
type GridConfig struct {
	IncludeContinue     *bool                    `yaml:"include_continue"`
	Partial             *PartialWithdrawalConfig `yaml:"partial_withdrawal"`
	FullWithdrawalYears []int                    `yaml:"full_withdrawal_years"`
	Switch              *SwitchConfig            `yaml:"switch"`
}

// PartialWithdrawalConfig enumerates the partial-withdrawal ranges.
type PartialWithdrawalConfig struct {
	IntervalYears     []int                `yaml:"interval_years"`
	WithdrawalRatios  []decimal.Decimal    `yaml:"withdrawal_ratios"`
	Reinvestments     []ReinvestmentConfig `yaml:"reinvestments"`
	WithdrawalFeeRate *decimal.Decimal     `yaml:"withdrawal_fee_rate"`
}

// ReinvestmentConfig is one reinvestment vehicle; the capital-gains
// rate defaults to the statutory rate when omitted.
type ReinvestmentConfig struct {
	AnnualReturnRate    decimal.Decimal  `yaml:"annual_return_rate"`
	CapitalGainsTaxRate *decimal.Decimal `yaml:"capital_gains_tax_rate"`
}

// SwitchConfig enumerates the switch ranges into a single target fund.
type SwitchConfig struct {
	SwitchYears      []int              `yaml:"switch_years"`
	FeeRates         []decimal.Decimal  `yaml:"fee_rates"`
	NewFund          ReinvestmentConfig `yaml:"new_fund"`
	ContinuePremiums *bool              `yaml:"continue_premiums"`
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	if err := config.ToPlan().Validate(); err != nil {
		return fmt.Errorf("plan validation failed: %w", err)
	}
	if config.TaxableIncome.IsNegative() {
		return fmt.Errorf("taxable income cannot be negative")
	}
	if err := config.ToGrid().Validate(); err != nil {
		return fmt.Errorf("grid validation failed: %w", err)
	}
	return nil
}

// ToPlan resolves the plan config into a domain plan with defaults
// applied.
func (c *Configuration) ToPlan() domain.PolicyPlan {
	plan := domain.PolicyPlan{
		MonthlyPremium:        c.Plan.MonthlyPremium,
		AnnualYieldRate:       c.Plan.AnnualYieldRate,
		TermYears:             c.Plan.TermYears,
		SetupFeeRate:          domain.DefaultSetupFeeRate,
		BalanceFeeRateMonthly: domain.DefaultBalanceFeeRateMonthly,
	}
	if c.Plan.SetupFeeRate != nil {
		plan.SetupFeeRate = *c.Plan.SetupFeeRate
	}
	if c.Plan.BalanceFeeRateMonthly != nil {
		plan.BalanceFeeRateMonthly = *c.Plan.BalanceFeeRateMonthly
	}
	return plan
}

// ToGrid resolves the grid config into a domain grid with defaults
// applied.
func (c *Configuration) ToGrid() domain.ParameterGrid {
	grid := domain.ParameterGrid{
		IncludeContinue:     true,
		FullWithdrawalYears: c.Grid.FullWithdrawalYears,
	}
	if c.Grid.IncludeContinue != nil {
		grid.IncludeContinue = *c.Grid.IncludeContinue
	}

	if p := c.Grid.Partial; p != nil {
		partial := &domain.PartialWithdrawalGrid{
			IntervalYears:     p.IntervalYears,
			WithdrawalRatios:  p.WithdrawalRatios,
			WithdrawalFeeRate: domain.DefaultWithdrawalFeeRate,
		}
		if p.WithdrawalFeeRate != nil {
			partial.WithdrawalFeeRate = *p.WithdrawalFeeRate
		}
		for _, r := range p.Reinvestments {
			partial.Reinvestments = append(partial.Reinvestments, r.toOption())
		}
		grid.Partial = partial
	}

	if s := c.Grid.Switch; s != nil {
		sw := &domain.SwitchGrid{
			SwitchYears:      s.SwitchYears,
			FeeRates:         s.FeeRates,
			NewFund:          s.NewFund.toOption(),
			ContinuePremiums: true,
		}
		if s.ContinuePremiums != nil {
			sw.ContinuePremiums = *s.ContinuePremiums
		}
		grid.Switch = sw
	}

	return grid
}

func (r ReinvestmentConfig) toOption() domain.ReinvestmentOption {
	opt := domain.ReinvestmentOption{
		AnnualReturnRate:    r.AnnualReturnRate,
		CapitalGainsTaxRate: domain.StatutoryCapitalGainsTaxRate,
	}
	if r.CapitalGainsTaxRate != nil {
		opt.CapitalGainsTaxRate = *r.CapitalGainsTaxRate
	}
	return opt
}
