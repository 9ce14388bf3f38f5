package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "feasibility",
		Short:        "Land-development financial feasibility calculator",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(evaluateCmd())
	rootCmd.AddCommand(compareCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func evaluateCmd() *cobra.Command {
	var (
		in     scenarioFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a single scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluate(cmd.OutOrStdout(), in.input(), asJSON)
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.name, "name", "", "scenario label")
	f.Float64Var(&in.landCost, "land-cost", 0, "raw land cost")
	f.Float64Var(&in.conversionCost, "conversion-cost", 0, "land-use conversion cost")
	f.Float64Var(&in.developmentCost, "dev-cost", 0, "development cost")
	f.Float64Var(&in.marketRate, "market-rate", 0, "selling price per sqft")
	f.Float64Var(&in.landAreaAcres, "acres", 0, "parcel area in acres (default 1)")
	f.IntVar(&in.plotSizeSqft, "plot-size", 0, "plot size in sqft (default 1200)")
	f.BoolVar(&asJSON, "json", false, "print the report as JSON")
	for _, name := range []string{"land-cost", "conversion-cost", "dev-cost", "market-rate"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func compareCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compare [scenarios.yaml]",
		Short: "Compare the scenarios listed in a YAML file and pick the best ROI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), cmd.OutOrStdout(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")
	return cmd
}
