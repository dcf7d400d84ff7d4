package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	dataDir string
	verbose bool

	configFile string
	presetName string
	unitsName  string
	loadCase   string
	modelNames []string

	modulus, inertia, width, height, extreme, length float64
	force, axial, moment                             float64

	saveName string
	asJSON   bool
	plotW    = 70
	plotH    = 12
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))
}

// addBeamFlags registers the load-case overrides. Values are in the unit
// system of the config (or --units) and only apply when set.
func addBeamFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "load case file (yaml)")
	f.StringVar(&presetName, "preset", "", "start from a named preset")
	f.StringVar(&unitsName, "units", "si", "unit system: si | imperial")
	f.StringVar(&loadCase, "load-case", "force", "PRB-1R load case: force | combined | moment")
	f.StringSliceVar(&modelNames, "models", nil, "models to solve (default all)")
	f.Float64Var(&modulus, "e", 0, "elastic modulus")
	f.Float64Var(&inertia, "i", 0, "second moment of area (overrides width/height)")
	f.Float64Var(&width, "width", 0, "section width")
	f.Float64Var(&height, "height", 0, "section height")
	f.Float64Var(&extreme, "c", 0, "distance to extreme fiber")
	f.Float64Var(&length, "length", 0, "beam length")
	f.Float64Var(&force, "p", 0, "vertical tip force")
	f.Float64Var(&axial, "np", 0, "horizontal tip force")
	f.Float64Var(&moment, "m0", 0, "tip moment")
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:           "beamlab",
		Short:         "cantilever large-deflection lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", envOr("BEAMLAB_DATA", ".beamlab"), "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:     "solve",
		Aliases: []string{"compare"},
		Short:   "solve a load case with every selected model",
		Args:    cobra.NoArgs,
		RunE:    runSolve,
	}
	addBeamFlags(solveCmd)
	solveCmd.Flags().StringVar(&saveName, "save", "", "store the run under this name")
	solveCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	solveCmd.Flags().IntVar(&plotW, "width-chars", 70, "plot width")
	solveCmd.Flags().IntVar(&plotH, "height-chars", 12, "plot height")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "force-deflection curve over a range of one load",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addBeamFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "p", "load to vary: p | np | m0")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 11, "number of values")

	targetCmd := &cobra.Command{
		Use:   "target",
		Short: "find the tip force that gives a tip deflection",
		Args:  cobra.NoArgs,
		RunE:  runTarget,
	}
	addBeamFlags(targetCmd)
	targetCmd.Flags().Float64Var(&targetTip, "tip", 0, "target tip deflection")
	targetCmd.Flags().Float64Var(&targetMaxLoad, "max-load", 100, "largest tip force to consider")
	targetCmd.MarkFlagRequired("tip")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "solve every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "svg", "svg | png | xlsx | pdf | json | csv")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default <run_id>.<format>, - for stdout)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive explorer",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addBeamFlags(liveCmd)

	watchCmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "re-solve a load case file on every save",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the JSON API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", envOr("BEAMLAB_ADDR", ":8080"), "listen address")
	serveCmd.Flags().Float64Var(&serveRate, "rate", 5, "requests per second per client (0 disables)")
	serveCmd.Flags().IntVar(&serveBurst, "burst", 10, "burst size per client")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("beamlab %s\n", version)
		},
	}

	rootCmd.AddCommand(solveCmd, sweepCmd, targetCmd, scenarioCmd, presetsCmd, listCmd, showCmd, exportCmd, liveCmd, watchCmd, serveCmd, versionCmd)

	start := time.Now()
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err, "elapsed", time.Since(start))
		os.Exit(1)
	}
}
