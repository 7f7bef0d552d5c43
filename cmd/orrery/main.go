package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/gui"
	"github.com/san-kum/orrery/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	speed       float64
	paused      bool
	mode        string
	seed        int64
	fps         int
	texturesDir string
	catalogFile string
	workers     int
	infoSecs    float64
	verbosity   int
	metricsAddr string
	streamAddr  string
	streamRate  float64

	frames   int
	dt       float64
	theme    string
	outFile  string
	bodyName string
	canvasW  int
	canvasH  int
	labels   bool
	belts    bool

	snapFrames int
	snapDt     float64
	snapOut    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orrery",
		Short:         "animated solar system",
		Long:          "orrery animates the sun, planets, moon and belts. Without a subcommand it opens the terminal view.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".orrery", "data directory for recorded runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "speed multiplier (>= 0)")
	pf.BoolVar(&paused, "paused", false, "start paused")
	pf.StringVar(&mode, "mode", "follow", "initial view: follow or overview")
	pf.Int64Var(&seed, "seed", 0, "random seed for initial phases and belts (0 = time)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&texturesDir, "textures", "textures", "texture directory")
	pf.StringVar(&catalogFile, "catalog", "", "catalog file (yaml); built-in solar system when empty")
	pf.IntVar(&workers, "workers", config.DefaultWorkers, "texture decode workers")
	pf.Float64Var(&infoSecs, "info", config.DefaultInfoDuration, "info overlay duration in seconds")
	pf.IntVarP(&verbosity, "verbose", "v", 0, "log verbosity")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	rootCmd.Flags().StringVar(&theme, "theme", "", "color theme: "+fmt.Sprint(viz.ThemeNames()))

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the native window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run headless and stream frames to browsers over WebSocket",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&streamAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().Float64Var(&streamRate, "rate", config.DefaultStreamRate, "snapshots per second")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "advance the model headless with a fixed step and save every frame",
		Args:  cobra.NoArgs,
		RunE:  recordRun,
	}
	recordCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	recordCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "seconds per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot orbital phases of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&bodyName, "body", "", "plot only this body")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (stdout when empty)")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "print the body catalog",
		Args:  cobra.NoArgs,
		RunE:  showCatalog,
	}
	catalogCmd.Flags().BoolVar(&belts, "belts", false, "sample the belts and print their layout")
	catalogCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the catalog as yaml")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the scene to SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "orrery.svg", "output file")
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 0, "frames to advance first")
	snapshotCmd.Flags().Float64Var(&snapDt, "dt", 1.0/60, "seconds per frame")
	snapshotCmd.Flags().IntVar(&canvasW, "canvas-width", 0, "render the terminal view at this many columns instead of the orbit map")
	snapshotCmd.Flags().IntVar(&canvasH, "canvas-height", 40, "terminal view rows")
	snapshotCmd.Flags().BoolVar(&labels, "labels", true, "label bodies on the orbit map")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSPEED\tMODE\tPAUSED")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%s\t%v\n", name, p.Speed, p.Mode, p.Paused)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(guiCmd, serveCmd, recordCmd, listCmd, plotCmd, exportJSONCmd, catalogCmd, snapshotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	s.serveMetrics(ctx)

	return viz.Run(ctx, s.driver, s.state, viz.Options{
		FPS:    s.cfg.FPS,
		Theme:  theme,
		Logger: s.log,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	s.serveMetrics(ctx)

	return gui.Run(s.driver, s.state, gui.Options{
		Width:  s.cfg.Width,
		Height: s.cfg.Height,
		FPS:    s.cfg.FPS,
		Logger: s.log,
	})
}
