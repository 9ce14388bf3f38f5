package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dolceboy103/layoutgpt-backend/internal/feasibility"
	"github.com/dolceboy103/layoutgpt-backend/internal/report"
)

type scenarioFlags struct {
	name            string
	landCost        float64
	conversionCost  float64
	developmentCost float64
	marketRate      float64
	landAreaAcres   float64
	plotSizeSqft    int
}

func (f scenarioFlags) input() feasibility.ScenarioInput {
	return feasibility.ScenarioInput{
		Name:            f.name,
		LandCost:        f.landCost,
		ConversionCost:  f.conversionCost,
		DevelopmentCost: f.developmentCost,
		MarketRate:      f.marketRate,
		LandAreaAcres:   f.landAreaAcres,
		PlotSizeSqft:    f.plotSizeSqft,
	}
}

// scenarioFile is the on-disk layout read by the compare command.
type scenarioFile struct {
	Scenarios []feasibility.ScenarioInput `yaml:"scenarios"`
}

func runEvaluate(w io.Writer, in feasibility.ScenarioInput, asJSON bool) error {
	result, err := feasibility.Default().Evaluate(in)
	if err != nil {
		return fmt.Errorf("evaluate scenario: %w", err)
	}
	if asJSON {
		return writeJSON(w, report.Build(result))
	}
	printResult(w, result)
	return nil
}

func runCompare(ctx context.Context, w io.Writer, path string, asJSON bool) error {
	scenarios, err := loadScenarios(path)
	if err != nil {
		return err
	}

	cmp, err := feasibility.Default().Compare(ctx, scenarios)
	if err != nil {
		return fmt.Errorf("compare scenarios: %w", err)
	}
	if asJSON {
		return writeJSON(w, report.BuildComparison(cmp))
	}
	printComparison(w, cmp)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func loadScenarios(path string) ([]feasibility.ScenarioInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scenario file %s: %w", path, err)
	}
	return file.Scenarios, nil
}
