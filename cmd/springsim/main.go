package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/gui"
	"github.com/san-kum/springsim/internal/logging"
	"github.com/san-kum/springsim/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string

	duration      float64
	frameInterval float64
	theta         float64
	overrides     map[string]string

	scene       string
	theme       string
	snapshotDir string
	fontPath    string
)

// main registers the commands and runs the terminal host when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "springsim",
		Short:         "interactive spring pendulum",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".springsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path")
	rootCmd.PersistentFlags().StringToStringVar(&overrides, "set", nil, "override parameters, e.g. --set k=5,ldc=0")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the pendulum in the terminal",
		RunE:  runTUI,
	}
	addTUIFlags(rootCmd)
	addTUIFlags(tuiCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the pendulum in a desktop window",
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&fontPath, "font", "", "TTF font for the panel")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record it",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addRunFlags(runCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "replay a YAML input scenario and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addRunFlags(scenarioCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "replay a scenario across values of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "k", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same initial state",
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&columns, "columns", []string{"theta", "x", "energy"}, "columns to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().BoolVar(&withLyapunov, "lyapunov", false, "estimate the largest Lyapunov exponent")
	analyzeCmd.Flags().BoolVar(&withPhase, "phase", false, "draw the theta phase portrait")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "plot run columns to PNG files",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringSliceVar(&columns, "columns", []string{"theta", "x", "energy"}, "columns to plot")
	exportPNGCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  showConfig,
	}
	configCmd.Flags().StringVar(&savePath, "save", "", "write the configuration to this file")

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, scenarioCmd, sweepCmd, compareCmd, listCmd, plotCmd,
		analyzeCmd, exportPNGCmd, exportCSVCmd, exportJSONCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func addTUIFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scene, "scene", tui.ScenePendulum, "scene to show (pendulum, orbit)")
	cmd.Flags().StringVar(&theme, "theme", "classic", "color theme")
	cmd.Flags().StringVar(&snapshotDir, "snapshots", ".", "directory for SVG snapshots")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	cmd.Flags().Float64Var(&frameInterval, "dt", 0.016, "frame interval in seconds")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultInitialTheta, "initial angle")
}

// loadConfig applies the preset, then the config file, then any flag the
// user set explicitly.
func loadConfig(cmd *cobra.Command, fallbackPreset string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := preset
	if name == "" {
		name = fallbackPreset
	}
	if name != "" {
		p, err := config.GetPreset(name)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Lookup("time") != nil && flags.Changed("time") {
		cfg.Run.Duration = seconds(duration)
	}
	if flags.Lookup("dt") != nil && flags.Changed("dt") {
		cfg.Run.FrameInterval = seconds(frameInterval)
	}
	if flags.Lookup("theta") != nil && flags.Changed("theta") {
		cfg.InitialTheta = theta
	}
	for name, raw := range overrides {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", name, err)
		}
		if err := cfg.Params.SetParam(name, v); err != nil {
			return nil, fmt.Errorf("--set %s: %w", name, err)
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "terminal")
	if err != nil {
		return err
	}
	log, err := logging.ForTerminal(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer log.Sync()

	return tui.Run(tui.Options{
		Config:      cfg,
		Scene:       scene,
		Theme:       theme,
		SnapshotDir: snapshotDir,
		Log:         log,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer log.Sync()

	return gui.Run(gui.Options{Config: cfg, Log: log, FontPath: fontPath})
}

var savePath string

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	if savePath != "" {
		if err := config.Save(savePath, cfg); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", savePath)
		return nil
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}

// newLogger is the logger for the batch commands, which print their
// results on stdout and their diagnostics on stderr.
func newLogger(cfg *config.Config) *zap.Logger {
	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return logging.Nop()
	}
	return log
}
