package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/viz"
)

// advance ticks the session n times with a fixed step.
func (s *session) advance(n int, step float64) {
	for i := 0; i < n; i++ {
		s.driver.Tick(s.state, step)
	}
}

func recordRun(cmd *cobra.Command, args []string) error {
	if frames <= 0 || dt <= 0 {
		return fmt.Errorf("frames and dt must be positive")
	}
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rec := storage.NewRecorder(s.driver.Scene())
	s.driver.AddObserver(rec)

	fmt.Printf("recording %d frames...\n", frames)
	start := time.Now()
	s.advance(frames, dt)
	elapsed := time.Since(start)

	name := s.cfg.CatalogFile
	if name == "" {
		name = "solar"
	}
	meta := storage.RunMetadata{
		Catalog: name,
		Seed:    s.seed,
		Dt:      dt,
		Frames:  frames,
		Speed:   s.state.Speed,
		Tuning:  s.driver.Tuning(),
	}
	runID, err := st.Save(meta, rec.Run())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", rec.Run().Len())
	return nil
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
	fmt.Fprintln(w, "ID\tCATALOG\tTIME\tFRAMES\tDT\tSPEED\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%g\t%d\n",
			run.ID,
			run.Catalog,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			run.Speed,
			run.Seed,
		)
	}
	return w.Flush()
}

// unwrap removes the 2π jumps so phases plot as straight lines.
func unwrap(angles []float64) []float64 {
	out := make([]float64, len(angles))
	offset := 0.0
	for i, a := range angles {
		if i > 0 {
			d := a - angles[i-1]
			if d > math.Pi {
				offset -= 2 * math.Pi
			} else if d < -math.Pi {
				offset += 2 * math.Pi
			}
		}
		out[i] = a + offset
	}
	return out
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	if run.Len() < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d  dt: %.4fs  speed: %g\n\n", run.Len(), meta.Dt, meta.Speed)

	bodies := run.Bodies
	if bodyName != "" {
		if run.Index(bodyName) < 0 {
			return fmt.Errorf("no body %q in run (have %v)", bodyName, run.Bodies)
		}
		bodies = []string{bodyName}
	}

	for _, name := range bodies {
		data := unwrap(run.Column(run.Index(name)))
		graph := asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption(name+" orbital phase (rad)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMEAN RATE\tSTDDEV")
	names := make([]string, 0, len(meta.Summary))
	for name := range meta.Summary {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r := meta.Summary[name]
		fmt.Fprintf(w, "%s\t%.6g\t%.3g\n", name, r.Mean, r.StdDev)
	}
	return w.Flush()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	if outFile != "" {
		if err := storage.ExportJSONFile(outFile, *meta, run); err != nil {
			return err
		}
		fmt.Printf("exported %s to %s\n", meta.ID, outFile)
		return nil
	}
	return storage.ExportJSON(os.Stdout, *meta, run)
}

func showCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := catalog.Save(outFile, cat); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHOST\tRADIUS\tDISTANCE\tYEAR\tDAY (h)\tTILT")
	fmt.Fprintf(w, "%s\t-\t%g\t0\t-\t%g\t-\n", cat.Star.Name, cat.Star.Radius, cat.Star.RotationPeriod)
	cat.Walk(func(b, parent *catalog.Body) {
		host := cat.Star.Name
		if parent != nil {
			host = parent.Name
		}
		tilt := "-"
		if b.AxialTilt != nil {
			tilt = fmt.Sprintf("%g°", *b.AxialTilt)
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%s\n",
			b.Name, host, b.Radius, b.Distance, b.OrbitalPeriod, b.RotationPeriod, tilt)
	})
	if err := w.Flush(); err != nil {
		return err
	}

	if !belts {
		return nil
	}
	return showBelts(cfg.SeedOrNow(), cat)
}

// showBelts builds the scene once and reports where the belt particles
// actually landed.
func showBelts(seed int64, cat *catalog.Catalog) error {
	sc, err := scene.Build(cat, scene.Options{Rand: rand.New(rand.NewSource(seed))})
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BELT\tPARTICLES\tMEAN R\tSTDDEV R\tMIN R\tMAX R\tHEIGHT SD")
	for _, b := range sc.Belts {
		n := sc.Graph.Node(b.Node)
		radii := make([]float64, len(n.Points))
		heights := make([]float64, len(n.Points))
		for i, p := range n.Points {
			radii[i] = math.Hypot(p.X, p.Z)
			heights[i] = p.Y
		}
		if len(radii) == 0 {
			fmt.Fprintf(w, "%s\t0\t-\t-\t-\t-\t-\n", b.Spec.Name)
			continue
		}
		mean, sd := stat.MeanStdDev(radii, nil)
		_, hsd := stat.MeanStdDev(heights, nil)
		lo, hi := radii[0], radii[0]
		for _, r := range radii {
			lo, hi = min(lo, r), max(hi, r)
		}
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.2f\n", b.Spec.Name, len(radii), mean, sd, lo, hi, hsd)
	}
	return w.Flush()
}

func snapshot(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.Close()
	s.advance(snapFrames, snapDt)

	f, err := os.Create(snapOut)
	if err != nil {
		return err
	}
	defer f.Close()

	if canvasW > 0 {
		c := viz.NewCanvas(canvasW, canvasH)
		s.driver.Resize(c.PixelWidth(), c.PixelHeight())
		s.driver.Tick(s.state, 0)
		viz.Draw(c, s.driver.Scene(), s.driver.Camera())
		err = export.CanvasToSVG(f, c, 4)
	} else {
		err = export.OrbitMap(f, s.driver.Scene(), export.OrbitMapOptions{Labels: labels})
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", snapOut)
	return nil
}
