package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finfreedom/fincalc/internal/calculation"
	"github.com/finfreedom/fincalc/internal/config"
	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/finfreedom/fincalc/internal/logging"
	"github.com/finfreedom/fincalc/internal/output"
)

// printComparison renders results to the command's stdout with the named formatter.
func printComparison(cmd *cobra.Command, results *domain.ScenarioComparison, format string) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q (available: %s)", output.ErrUnsupportedFormat, format, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(results)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func newEngine(debug bool) (*calculation.CalculationEngine, error) {
	engine := calculation.NewCalculationEngine()
	if debug {
		log, err := logging.NewWithOutput(os.Stderr, "debug", "text")
		if err != nil {
			return nil, err
		}
		engine.Debug = true
		engine.SetLogger(logging.NewEngineLogger(log))
	}
	return engine, nil
}

// runSingle projects one ad hoc scenario built from flags.
func runSingle(cmd *cobra.Command, scenario domain.Scenario, format string, debug bool) error {
	engine, err := newEngine(debug)
	if err != nil {
		return err
	}
	results, err := engine.RunScenarios(cmd.Context(), &domain.Configuration{Scenarios: []domain.Scenario{scenario}})
	if err != nil {
		return err
	}
	return printComparison(cmd, results, format)
}

func newBuyVsRentCommand() *cobra.Command {
	in := config.DefaultBuyVsRentInputs()
	var format string
	var debug bool

	cmd := &cobra.Command{
		Use:   "buy-vs-rent",
		Short: "Compare buying a home with renting and investing the difference",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.ValidateBuyVsRent(&in); err != nil {
				return err
			}
			return runSingle(cmd, domain.Scenario{Name: "Buy vs Rent", BuyVsRent: &in}, format, debug)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&in.HomePrice, "home-price", in.HomePrice, "purchase price")
	f.Float64Var(&in.DownPaymentPercent, "down-payment", in.DownPaymentPercent, "down payment, percent of price")
	f.Float64Var(&in.MortgageRatePercent, "mortgage-rate", in.MortgageRatePercent, "annual mortgage rate, percent")
	f.IntVar(&in.LoanTermYears, "loan-term", in.LoanTermYears, "loan term in years (15, 20 or 30)")
	f.Float64Var(&in.ClosingCostsBuyingPercent, "closing-buy", in.ClosingCostsBuyingPercent, "buying closing costs, percent of price")
	f.Float64Var(&in.ClosingCostsSellingPercent, "closing-sell", in.ClosingCostsSellingPercent, "selling costs, percent of final value")
	f.Float64Var(&in.PropertyTaxRatePercent, "property-tax", in.PropertyTaxRatePercent, "property tax, percent of assessed value")
	f.Float64Var(&in.PMIRatePercent, "pmi", in.PMIRatePercent, "PMI, percent of loan amount per year")
	f.Float64Var(&in.HomeInsuranceAnnual, "insurance", in.HomeInsuranceAnnual, "home insurance per year")
	f.Float64Var(&in.HOAFeesMonthly, "hoa", in.HOAFeesMonthly, "HOA fees per month")
	f.Float64Var(&in.MaintenanceRatePercent, "maintenance", in.MaintenanceRatePercent, "maintenance, percent of market value per year")
	f.Float64Var(&in.MonthlyRent, "rent", in.MonthlyRent, "starting monthly rent")
	f.Float64Var(&in.RentersInsuranceMonthly, "renters-insurance", in.RentersInsuranceMonthly, "renters insurance per month")
	f.Float64Var(&in.HomeAppreciationPercent, "appreciation", in.HomeAppreciationPercent, "home appreciation, percent per year")
	f.Float64Var(&in.RentIncreasePercent, "rent-increase", in.RentIncreasePercent, "rent increase, percent per year")
	f.Float64Var(&in.InvestmentReturnPercent, "investment-return", in.InvestmentReturnPercent, "investment return, percent per year")
	f.StringVarP(&format, "format", "f", "console", "output format")
	f.BoolVar(&debug, "debug", false, "log calculation details to stderr")
	return cmd
}

func newCompoundCommand() *cobra.Command {
	in := config.DefaultCompoundInterestInputs()
	var frequency, format string
	var debug bool

	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Project compound growth of a lump sum and monthly contributions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			freq, err := domain.ParseCompoundingFrequency(frequency)
			if err != nil {
				return err
			}
			in.CompoundingFrequency = freq
			if cmd.Flags().Changed("inflation") {
				in.IncludeInflation = true
			}
			if err := config.ValidateCompoundInterest(&in); err != nil {
				return err
			}
			return runSingle(cmd, domain.Scenario{Name: "Compound Interest", CompoundInterest: &in}, format, debug)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&in.InitialAmount, "initial", in.InitialAmount, "initial lump sum")
	f.Float64Var(&in.MonthlyContribution, "monthly", in.MonthlyContribution, "monthly contribution")
	f.Float64Var(&in.AnnualReturnPercent, "return", in.AnnualReturnPercent, "annual return, percent")
	f.IntVar(&in.Years, "years", in.Years, "years to project (1-100)")
	f.StringVar(&frequency, "frequency", string(in.CompoundingFrequency), "compounding frequency: monthly, quarterly or annually")
	f.BoolVar(&in.IncludeInflation, "real", in.IncludeInflation, "report inflation-adjusted values")
	f.Float64Var(&in.InflationRatePercent, "inflation", in.InflationRatePercent, "inflation, percent per year (implies --real)")
	f.StringVarP(&format, "format", "f", "console", "output format")
	f.BoolVar(&debug, "debug", false, "log calculation details to stderr")
	return cmd
}

func newRunCommand() *cobra.Command {
	var format, outDir string
	var debug bool

	cmd := &cobra.Command{
		Use:   "run <config.yaml>",
		Short: "Run every scenario in a YAML configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine(debug)
			if err != nil {
				return err
			}
			results, err := engine.RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if outDir == "" {
				return printComparison(cmd, results, format)
			}
			paths, err := output.GenerateReport(results, format, outDir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), "Report written:", p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, console-lite, csv, detailed-csv, json, html, all)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "write the report to a file in this directory instead of stdout")
	cmd.Flags().BoolVar(&debug, "debug", false, "log calculation details to stderr")
	return cmd
}

func newExampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example <path>",
		Short: "Write an example scenario configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(cfg, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", args[0])
			return nil
		},
	}
}
