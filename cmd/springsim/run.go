package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/springsim/internal/automation"
	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/integrators"
	"github.com/san-kum/springsim/internal/physics"
	"github.com/san-kum/springsim/internal/storage"
)

var (
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func runHeadless(cmd *cobra.Command, args []string) error {
	return replay(cmd, automation.Headless("run"))
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Name == "" {
		sc.Name = "scenario"
	}
	return replay(cmd, sc)
}

func replay(cmd *cobra.Command, sc *automation.Scenario) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s...\n", sc.Name)
	start := time.Now()
	res, err := automation.Run(ctx, sc, cfg, log)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(metadataFor(cfg, sc, res), res.Samples)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", res.Frames)
	fmt.Printf("final: x=%.6f theta=%.6f\n", res.Final.State.X, res.Final.State.Theta)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, res.Metrics[name])
	}
	return nil
}

func metadataFor(cfg *config.Config, sc *automation.Scenario, res *automation.Result) storage.RunMetadata {
	params := cfg.Params
	for name, v := range res.Params {
		_ = params.SetParam(name, v)
	}
	dur, interval := sc.Duration, sc.FrameInterval
	if dur == 0 {
		dur = cfg.Run.Duration
	}
	if interval == 0 {
		interval = cfg.Run.FrameInterval
	}
	return storage.RunMetadata{
		Scenario:      sc.Name,
		Preset:        preset,
		Params:        params,
		FrameInterval: interval.Seconds(),
		Duration:      dur.Seconds(),
		Metrics:       res.Metrics,
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer log.Sync()

	sc := automation.Headless("sweep")
	if len(args) > 0 {
		if sc, err = automation.LoadScenario(args[0]); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Scenario:  sc,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}, cfg, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL_X\tFINAL_THETA\tMIN_E\tMAX_E\tPEAK_THETA\tCOLLISIONS\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.0f\n",
			r.ParamValue, r.FinalState.X, r.FinalState.Theta, r.MinEnergy, r.MaxEnergy, r.PeakTheta, r.Collisions)
	}
	return w.Flush()
}

// compareIntegrators steps the bare equations of motion from the same
// initial state with each integrator and reports how far energy drifts.
// Collisions are not applied.
func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	dt := cfg.Run.FrameInterval.Seconds()
	total := cfg.Run.Duration.Seconds()
	sys := &physics.SpringPendulum{Params: cfg.Params}
	x0 := physics.InitialState(cfg.Params, cfg.InitialTheta).Vector()

	fmt.Printf("comparing integrators (dt=%.4f, duration=%.1fs)\n\n", dt, total)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "integrator", "final_theta", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 54))

	for _, name := range names {
		integ, err := integrators.ByName(name)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		d, err := integrators.MeasureDrift(sys, integ, x0, dt, total)
		if err != nil && !errors.Is(err, dynamo.ErrUnstable) {
			return err
		}
		fmt.Printf("%-12s  %12.6f  %12.2e  %12.2f\n", name, d.Final[1], d.MaxDrift, float64(d.Elapsed.Microseconds())/1000)
	}
	return nil
}
