package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/springsim/internal/analysis"
	"github.com/san-kum/springsim/internal/export"
	"github.com/san-kum/springsim/internal/integrators"
	"github.com/san-kum/springsim/internal/physics"
	"github.com/san-kum/springsim/internal/storage"
)

const spectrumMaxHz = 5.0

var (
	columns      []string
	outDir       string
	withLyapunov bool
	withPhase    bool
)

func loadRun(runID string) (*storage.RunMetadata, []storage.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, samples, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tFRAMES\tPRESET")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.FrameInterval,
			run.Frames,
			run.Preset,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	for _, name := range columns {
		s, err := export.SeriesFromSamples(samples, name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(s.Y,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.Title),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	thetas := make([]float64, len(samples))
	xs := make([]float64, len(samples))
	thetaPrimes := make([]float64, len(samples))
	for i, s := range samples {
		thetas[i] = s.State.Theta
		xs[i] = s.State.X
		thetaPrimes[i] = s.State.ThetaPrime
	}

	for _, sig := range []struct {
		name string
		data []float64
	}{{"theta", thetas}, {"x", xs}} {
		spectrum, err := analysis.NewSpectrum(sig.data, meta.FrameInterval)
		if err != nil {
			return fmt.Errorf("%s: %w", sig.name, err)
		}
		graph := asciigraph.Plot(spectrum.Band(spectrumMaxHz),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s), 0-%.0f hz", sig.name, spectrumMaxHz)),
		)
		fmt.Println(graph)
		hz, _ := spectrum.Dominant()
		fmt.Printf("dominant frequency (%s): %.3f hz", sig.name, hz)
		if hz > 0 {
			fmt.Printf(", period %.3f s", 1/hz)
		}
		fmt.Printf("\n\n")
	}

	pendulumHz, springHz := physics.NaturalFrequencies(meta.Params)
	fmt.Printf("small-angle pendulum: %.3f hz\n", pendulumHz)
	fmt.Printf("spring: %.3f hz\n", springHz)

	if withLyapunov {
		rk4, err := integrators.ByName("rk4")
		if err != nil {
			return err
		}
		sys := &physics.SpringPendulum{Params: meta.Params}
		lambda := analysis.LyapunovExponent(sys, rk4, samples[0].State.Vector(), meta.FrameInterval, meta.Duration, 1e-8)
		fmt.Printf("\nlargest lyapunov exponent: %.4f /s\n", lambda)
	}

	if withPhase {
		portrait := analysis.NewPhasePortrait("theta", thetas, "theta'", thetaPrimes)
		fmt.Printf("\nphase portrait (theta vs theta'):\n")
		fmt.Print(portrait.ASCII(70, 20))
	}
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	paths, err := export.SaveRunPNGs(outDir, samples, columns)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("wrote %s\n", p)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, samples)
}
