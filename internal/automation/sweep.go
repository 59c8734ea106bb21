package automation

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/physics"
)

// ParameterSweep replays one scenario across evenly spaced values of a
// single parameter.
type ParameterSweep struct {
	Scenario  *Scenario
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from one sweep value
type SweepResult struct {
	ParamValue float64
	FinalState physics.PhaseState
	MaxEnergy  float64
	MinEnergy  float64
	PeakTheta  float64
	Collisions float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, cfg *config.Config, log *zap.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	if _, err := cfg.Params.Get(sweep.ParamName); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	values := floats.Span(make([]float64, sweep.NumSteps), sweep.ParamMin, sweep.ParamMax)

	for _, paramVal := range values {
		sc := *sweep.Scenario
		sc.Params = make(map[string]float64, len(sweep.Scenario.Params)+1)
		for k, v := range sweep.Scenario.Params {
			sc.Params[k] = v
		}
		sc.Params[sweep.ParamName] = paramVal

		res, err := Run(ctx, &sc, cfg, log)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sweep.ParamName, paramVal, err)
		}

		sr := SweepResult{
			ParamValue: paramVal,
			FinalState: res.Final.State,
			MaxEnergy:  math.Inf(-1),
			MinEnergy:  math.Inf(1),
			PeakTheta:  res.Metrics["peak_theta"],
			Collisions: res.Metrics["collisions"],
		}
		for _, s := range res.Samples {
			sr.MaxEnergy = math.Max(sr.MaxEnergy, s.Energy)
			sr.MinEnergy = math.Min(sr.MinEnergy, s.Energy)
		}
		results = append(results, sr)
	}

	return results, nil
}
