package feasibility

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Outcome is the evaluation of one scenario inside a comparison.
// Exactly one of Result and Err is meaningful.
type Outcome struct {
	ID     string
	Name   string
	Input  ScenarioInput
	Result Result
	Err    error
}

// OK reports whether the scenario evaluated successfully.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Comparison holds every outcome of a batch in input order.
type Comparison struct {
	Outcomes []Outcome
	// BestIndex is the index of the highest-ROI outcome, or -1 if every scenario failed.
	BestIndex int
}

// Best returns the selected scenario, if any succeeded.
func (c Comparison) Best() (Outcome, bool) {
	if c.BestIndex < 0 || c.BestIndex >= len(c.Outcomes) {
		return Outcome{}, false
	}
	return c.Outcomes[c.BestIndex], true
}

// Failed returns the outcomes that did not evaluate.
func (c Comparison) Failed() []Outcome {
	var failed []Outcome
	for _, o := range c.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Compare evaluates each scenario independently and selects the one with the
// highest ROI. A failing scenario is reported in its outcome and never aborts
// the others. Ties go to the earliest scenario.
func (e *Engine) Compare(ctx context.Context, inputs []ScenarioInput) (Comparison, error) {
	if len(inputs) == 0 {
		return Comparison{}, ErrEmptyBatch
	}

	outcomes := make([]Outcome, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := e.Evaluate(in)
			name := scenarioName(in.Name, i)
			res.Name = name
			outcomes[i] = Outcome{
				ID:     scenarioID(i),
				Name:   name,
				Input:  in,
				Result: res,
				Err:    err,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Comparison{}, fmt.Errorf("compare scenarios: %w", err)
	}

	return Comparison{Outcomes: outcomes, BestIndex: selectBest(outcomes)}, nil
}

// selectBest runs after all evaluations so the tie-break follows input order.
func selectBest(outcomes []Outcome) int {
	best := -1
	for i, o := range outcomes {
		if !o.OK() {
			continue
		}
		if best < 0 || o.Result.Revenue.ROIPercent > outcomes[best].Result.Revenue.ROIPercent {
			best = i
		}
	}
	return best
}

func scenarioID(i int) string {
	return fmt.Sprintf("scenario_%d", i+1)
}

func scenarioName(name string, i int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("Scenario %d", i+1)
}
