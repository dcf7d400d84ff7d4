package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/config"
	"github.com/san-kum/beamlab/internal/export"
	"github.com/san-kum/beamlab/internal/server"
	"github.com/san-kum/beamlab/internal/storage"
	"github.com/san-kum/beamlab/internal/units"
	"github.com/san-kum/beamlab/internal/viz"
	"github.com/san-kum/beamlab/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	exportFormat string
	exportOut    string

	serveAddr  string
	serveRate  float64
	serveBurst int
)

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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tLOAD CASE\tL (m)\tP (N)\tMODELS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4g\t%.4g\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.LoadCase,
			run.Params.L,
			run.Params.P,
			len(run.Models),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, results, err := st.Results(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("saved: %s\n\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	printComparison(meta.Name, units.SI, meta.LoadCase, results)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, results, err := st.Results(runID)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = runID + "." + exportFormat
	}

	switch exportFormat {
	case "png":
		if out == "-" {
			return fmt.Errorf("png export needs a file")
		}
		return export.PNG(results, meta.Name, out)
	case "xlsx":
		if out == "-" {
			return fmt.Errorf("xlsx export needs a file")
		}
		return export.XLSX(results, meta.Params, out)
	case "pdf":
		if out == "-" {
			return fmt.Errorf("pdf export needs a file")
		}
		return export.PDF(results, meta.Params, meta.Name, out)
	case "svg", "json", "csv":
	default:
		return fmt.Errorf("unknown format: %s", exportFormat)
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		file, err := os.Create(out)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	switch exportFormat {
	case "svg":
		_, err = io.WriteString(w, export.SVG(results, 800, 400))
	case "json":
		err = export.JSON(w, export.Document{Name: meta.Name, Params: meta.Params, LoadCase: meta.LoadCase, Results: results})
	case "csv":
		err = storage.WriteShapesCSV(csv.NewWriter(w), results)
	}
	if err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(os.Stderr, "exported: %s\n", out)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	res, err := cfg.Resolve()
	if err != nil {
		return err
	}

	explorer := viz.NewExplorer(res.Params, res.LoadCase, res.Models, res.System)
	_, err = tea.NewProgram(explorer, tea.WithAltScreen()).Run()
	return err
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(slog.Default())
	return w.Run(ctx, args[0], func(res *config.Resolved, results []beam.Result, err error) {
		// clear screen, cursor home
		fmt.Print("\033[2J\033[H")
		if err != nil {
			fmt.Println(viz.Warning.Render(err.Error()))
			return
		}
		printComparison(res.Name, res.System, res.LoadCase, results)
		fmt.Println(viz.KeyHint.Render("watching " + args[0] + ", ctrl+c to stop"))
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	srv := server.New(server.Options{
		Logger: slog.Default(),
		Store:  st,
		Rate:   rate.Limit(serveRate),
		Burst:  serveBurst,
	})
	return srv.ListenAndServe(ctx, serveAddr)
}
