package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/beamlab/internal/automation"
	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/config"
	"github.com/san-kum/beamlab/internal/export"
	"github.com/san-kum/beamlab/internal/metrics"
	"github.com/san-kum/beamlab/internal/optim"
	"github.com/san-kum/beamlab/internal/solver"
	"github.com/san-kum/beamlab/internal/storage"
	"github.com/san-kum/beamlab/internal/units"
	"github.com/san-kum/beamlab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	targetTip     float64
	targetMaxLoad float64
)

// loadConfig layers defaults, then --preset, then --config, then any
// explicitly set flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	var err error

	if presetName != "" {
		if cfg, err = config.GetPreset(presetName); err != nil {
			return nil, err
		}
	}
	if configFile != "" {
		if err := config.LoadOnto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	f := cmd.Flags()
	if f.Changed("units") {
		cfg.Units = unitsName
	}
	if f.Changed("load-case") {
		cfg.LoadCase = loadCase
	}
	if f.Changed("models") {
		cfg.Models = modelNames
	}
	overrides := []struct {
		flag string
		dst  *float64
		v    float64
	}{
		{"e", &cfg.Beam.E, modulus},
		{"i", &cfg.Beam.I, inertia},
		{"width", &cfg.Beam.Width, width},
		{"height", &cfg.Beam.Height, height},
		{"c", &cfg.Beam.C, extreme},
		{"length", &cfg.Beam.Length, length},
		{"p", &cfg.Loads.P, force},
		{"np", &cfg.Loads.NP, axial},
		{"m0", &cfg.Loads.M0, moment},
	}
	for _, o := range overrides {
		if f.Changed(o.flag) {
			*o.dst = o.v
		}
	}
	return cfg, nil
}

func printComparison(name string, sys units.System, lc beam.LoadCase, results []beam.Result) {
	fmt.Printf("%s  (%s, load case %s)\n\n", viz.Title.Render(name), sys, lc)
	fmt.Println(viz.SummaryTable(results, sys))
	if plot := viz.PlotShapes(results, sys, plotW, plotH); plot != "" {
		fmt.Println()
		fmt.Println(plot)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	res, err := cfg.Resolve()
	if err != nil {
		return err
	}

	results, err := solver.Compare(cmd.Context(), res.Params, res.Models, res.LoadCase)
	if err != nil {
		return err
	}

	if saveName != "" {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(saveName, res.Params, res.LoadCase, results)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved run: %s\n", runID)
	}

	if asJSON {
		return export.JSON(os.Stdout, export.Document{Name: res.Name, Params: res.Params, LoadCase: res.LoadCase, Results: results})
	}
	printComparison(res.Name, res.System, res.LoadCase, results)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	res, err := cfg.Resolve()
	if err != nil {
		return err
	}

	param := automation.SweepParam(strings.ToLower(sweepParam))
	toSI := res.System.Force
	if param == automation.SweepM0 {
		toSI = res.System.Moment
	}

	tracker := metrics.NewTracker(beam.Nonlinear)
	sw := &automation.Sweep{
		Base:     res.Params,
		Param:    param,
		Min:      toSI(sweepMin),
		Max:      toSI(sweepMax),
		Steps:    sweepSteps,
		Models:   res.Models,
		LoadCase: res.LoadCase,
		OnStep: func(_ float64, results []beam.Result) {
			tracker.Observe(results)
		},
	}
	points, err := automation.RunSweep(cmd.Context(), sw)
	if err != nil {
		return err
	}

	lu := res.System.LengthUnit()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{strings.ToUpper(string(param))}
	for _, m := range res.Models {
		header = append(header, fmt.Sprintf("%s TIP Y (%s)", strings.ToUpper(m.String()), lu))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, pt := range points {
		row := []string{fmt.Sprintf("%.4g", pt.Value/toSI(1))}
		for _, tip := range pt.Tips {
			row = append(row, fmt.Sprintf("%.5g", res.System.LengthFrom(tip.Y)))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	curves := make([][]float64, len(res.Models))
	for j := range res.Models {
		curves[j] = automation.Curve(points, j)
		for i := range curves[j] {
			curves[j][i] = res.System.LengthFrom(curves[j][i])
		}
	}
	fmt.Println()
	fmt.Println(asciigraph.PlotMany(curves,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Precision(4),
		asciigraph.Caption(fmt.Sprintf("tip y (%s) vs %s", lu, param)),
	))

	if scored := tracker.Models(); len(scored) > 0 {
		fmt.Println()
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WORST CASE VS ELASTICA\tTIP\tSHAPE RMS\tLENGTH")
		for _, m := range scored {
			v := tracker.Values(m)
			fmt.Fprintf(w, "%s\t%.2f%%\t%.2f%%\t%.2f%%\n", m.Style().Label,
				100*v["tip_error"], 100*v["shape_rms"], 100*v["length_drift"])
		}
		return w.Flush()
	}
	return nil
}

func runTarget(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	res, err := cfg.Resolve()
	if err != nil {
		return err
	}

	target := res.System.Length(targetTip)
	maxLoad := res.System.Force(targetMaxLoad)
	fu := "N"
	if res.System == units.Imperial {
		fu = "lbf"
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "MODEL\tP FOR TIP Y = %g %s\n", targetTip, res.System.LengthUnit())
	for _, m := range res.Models {
		load, err := optim.LoadForTip(cmd.Context(), res.Params, m, res.LoadCase, target, maxLoad)
		if errors.Is(err, optim.ErrUnreachable) {
			fmt.Fprintf(w, "%s\tunreachable\n", m.Style().Label)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.5g %s\n", m.Style().Label, load/res.System.Force(1), fu)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Description != "" {
		fmt.Println(viz.Subtle.Render(sc.Description))
	}

	steps, err := automation.RunScenario(cmd.Context(), sc)
	if err != nil {
		return err
	}
	for i, step := range steps {
		sys, _ := sc.Steps[i].System()
		fmt.Println(viz.Separator(70))
		printComparison(step.Name, sys, step.LoadCase, step.Results)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tUNITS\tLOAD CASE\tLENGTH\tP\tNP\tM0")
	for _, name := range config.ListPresets() {
		cfg, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\t%g\n",
			name, cfg.Units, cfg.LoadCase, cfg.Beam.Length, cfg.Loads.P, cfg.Loads.NP, cfg.Loads.M0)
	}
	return w.Flush()
}
