package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/san-kum/mandelview/internal/analysis"
	"github.com/san-kum/mandelview/internal/automation"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/export"
	"github.com/san-kum/mandelview/internal/gui"
	"github.com/san-kum/mandelview/internal/mandel"
	"github.com/san-kum/mandelview/internal/server"
	"github.com/san-kum/mandelview/internal/storage"
	"github.com/san-kum/mandelview/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	width      int
	height     int
	iterations int
	workers    int
	banding    string
	cornerRe   float64
	cornerIm   float64
	sideLength float64
	// render
	name   string
	pngOut string
	// zoom
	frames  int
	delay   int
	command string
	gifOut  string
	// export-json
	jsonOut string
	// serve
	addr string
	// config init
	force bool
	// point
	orbitLen int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mandelview",
		Short: "mandelbrot set explorer",
		RunE:  runExplorer,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".mandelview", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start at a named preset")
	pf.IntVar(&width, "width", mandel.DefaultWidth, "image width")
	pf.IntVar(&height, "height", mandel.DefaultHeight, "image height")
	pf.IntVar(&iterations, "iterations", mandel.DefaultMaxIterations, "max iterations")
	pf.IntVar(&workers, "workers", 1, "render goroutines")
	pf.StringVar(&banding, "banding", mandel.BandingStepped.String(), "color banding (stepped, smooth)")
	pf.Float64Var(&cornerRe, "real", mandel.DefaultCornerReal, "top-left corner, real part")
	pf.Float64Var(&cornerIm, "imag", mandel.DefaultCornerImag, "top-left corner, imaginary part")
	pf.Float64Var(&sideLength, "side", mandel.DefaultSideLength, "side length of the window")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a viewport and save it",
		Args:  cobra.NoArgs,
		RunE:  renderImage,
	}
	renderCmd.Flags().StringVar(&name, "name", "render", "run name")
	renderCmd.Flags().StringVar(&pngOut, "out", "", "also write the PNG here")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved renders",
		RunE:  listRenders,
	}

	showCmd := &cobra.Command{
		Use:   "show [render_id]",
		Short: "print render metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRender,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [render_id]",
		Short: "export iteration counts to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [render_id]",
		Short: "export metadata and counts to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&jsonOut, "out", "", "output file (default stdout)")

	statsCmd := &cobra.Command{
		Use:   "stats [render_id]",
		Short: "iteration count statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  renderStats,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tREAL\tIMAG\tSIDE")
			for _, p := range config.ListPresets() {
				v, _ := config.GetPreset(p)
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\n", p, v.Corner.Re, v.Corner.Im, v.SideLength)
			}
			return w.Flush()
		},
	}

	zoomCmd := &cobra.Command{
		Use:   "zoom",
		Short: "record an animated GIF by repeating a command",
		Args:  cobra.NoArgs,
		RunE:  recordZoom,
	}
	zoomCmd.Flags().IntVar(&frames, "frames", 20, "number of steps")
	zoomCmd.Flags().IntVar(&delay, "delay", 8, "frame delay (1/100 s)")
	zoomCmd.Flags().StringVar(&command, "command", "zoom-in", "command applied between frames")
	zoomCmd.Flags().StringVar(&gifOut, "out", "zoom.gif", "output file")

	tourCmd := &cobra.Command{
		Use:   "tour [file]",
		Short: "run a scripted tour",
		Args:  cobra.ExactArgs(1),
		RunE:  runTour,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the websocket viewer",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, start, err := setup(cmd)
			if err != nil {
				return err
			}
			gui.Run(r, start)
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	pointCmd := &cobra.Command{
		Use:   "point [real] [imag]",
		Short: "show the escape count and orbit of a point",
		Args:  cobra.ExactArgs(2),
		RunE:  inspectPoint,
	}
	pointCmd.Flags().IntVar(&orbitLen, "orbit", 10, "orbit points to print")

	rootCmd.AddCommand(renderCmd, listCmd, showCmd, exportCSVCmd, exportJSONCmd, statsCmd, presetsCmd, zoomCmd, tourCmd, serveCmd, guiCmd, configCmd, pointCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the config file, then explicitly set flags, in that
// order. A preset replaces the start viewport but explicit corner flags
// still win.
func loadConfig(cmd *cobra.Command) (*config.Config, mandel.Viewport, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, mandel.Viewport{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("iterations") {
		cfg.MaxIterations = iterations
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("banding") {
		cfg.Banding = banding
	}

	start := cfg.Viewport()
	if preset != "" {
		v, ok := config.GetPreset(preset)
		if !ok {
			return nil, mandel.Viewport{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		start = v
	}
	if flags.Changed("real") {
		start.Corner.Re = cornerRe
	}
	if flags.Changed("imag") {
		start.Corner.Im = cornerIm
	}
	if flags.Changed("side") {
		start.SideLength = sideLength
	}
	if err := start.Validate(); err != nil {
		return nil, mandel.Viewport{}, err
	}
	return cfg, start, nil
}

func setup(cmd *cobra.Command) (*mandel.Renderer, mandel.Viewport, error) {
	cfg, start, err := loadConfig(cmd)
	if err != nil {
		return nil, mandel.Viewport{}, err
	}
	eng, err := cfg.Engine()
	if err != nil {
		return nil, mandel.Viewport{}, err
	}
	r, err := mandel.NewRenderer(eng)
	if err != nil {
		return nil, mandel.Viewport{}, err
	}
	return r, start, nil
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func runExplorer(cmd *cobra.Command, args []string) error {
	r, start, err := setup(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	return viz.RunExplorer(r, st, start)
}

func renderImage(cmd *cobra.Command, args []string) error {
	r, v, err := setup(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}

	cfg := r.Config()
	fmt.Printf("rendering %dx%d at %v...\n", cfg.Width, cfg.Height, v)
	start := time.Now()
	counts := r.Counts(v, cfg.Width, cfg.Height)
	grid := r.Colorize(counts)
	elapsed := time.Since(start)
	summary := analysis.Summarize(counts)

	id, err := st.Save(&storage.Render{
		Name:     name,
		Viewport: v,
		Config:   cfg,
		Counts:   counts,
		Grid:     grid,
		Elapsed:  elapsed,
		Stats:    summary.Map(),
	})
	if err != nil {
		return err
	}

	if pngOut != "" {
		if err := export.SavePNG(pngOut, grid); err != nil {
			return err
		}
		fmt.Printf("image: %s\n", pngOut)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("render id: %s\n", id)
	fmt.Printf("stored image: %s\n", st.ImagePath(id))
	fmt.Printf("in set: %.2f%%\n", summary.InSetFraction*100)
	return nil
}

func listRenders(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	renders, err := st.List()
	if err != nil {
		return err
	}

	if len(renders) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSIZE\tREAL\tIMAG\tSIDE\tMS")

	for _, m := range renders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%g\t%g\t%g\t%.0f\n",
			m.ID,
			m.Name,
			m.Timestamp.Format("2006-01-02 15:04:05"),
			m.Width, m.Height,
			m.Viewport.Real,
			m.Viewport.Imag,
			m.Viewport.Side,
			m.ElapsedMs,
		)
	}

	return w.Flush()
}

func showRender(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	counts, err := st.LoadCounts(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	row := make([]string, counts.Width)
	for y := 0; y < counts.Height; y++ {
		for x := 0; x < counts.Width; x++ {
			row[x] = strconv.Itoa(counts.At(x, y))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	counts, err := st.LoadCounts(args[0])
	if err != nil {
		return err
	}

	data := export.NewExportData(meta, counts)
	if jsonOut == "" {
		return export.WriteJSON(os.Stdout, data)
	}
	if err := export.ExportJSON(jsonOut, data); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", meta.ID, jsonOut)
	return nil
}

func renderStats(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	counts, err := st.LoadCounts(args[0])
	if err != nil {
		return err
	}

	s := analysis.Summarize(counts)
	fmt.Printf("render: %s\n", meta.ID)
	fmt.Printf("viewport: %v\n", meta.View())
	fmt.Printf("pixels: %d\n", s.Pixels)
	fmt.Printf("in set: %d (%.2f%%)\n", s.InSet, s.InSetFraction*100)
	if s.MinEscape >= 0 {
		fmt.Printf("escape: min %d  max %d  mean %.2f  stddev %.2f\n", s.MinEscape, s.MaxEscape, s.MeanEscape, s.StdDevEscape)
	}
	fmt.Printf("bands: %d\n\n", s.Bands)

	fmt.Println(analysis.PlotHistogram(analysis.Histogram(counts), 80, 12))
	return nil
}

func recordZoom(cmd *cobra.Command, args []string) error {
	c, err := mandel.ParseCommand(command)
	if err != nil {
		return err
	}
	r, v, err := setup(cmd)
	if err != nil {
		return err
	}

	cfg := r.Config()
	fmt.Printf("recording %d frames of %s at %dx%d...\n", frames+1, c, cfg.Width, cfg.Height)
	start := time.Now()
	anim, end := export.Record(r, v, c, frames, cfg.Width, cfg.Height, delay)
	if err := anim.Save(gifOut); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("final viewport: %v\n", end)
	fmt.Printf("saved to %s\n", gifOut)
	return nil
}

func runTour(cmd *cobra.Command, args []string) error {
	tour, err := automation.LoadTour(args[0])
	if err != nil {
		return err
	}
	r, _, err := setup(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("tour: %s (%d steps)\n", tour.Name, len(tour.Steps))
	results, err := automation.RunTour(ctx, tour, r, st, os.Stdout)
	if err != nil {
		return err
	}
	for _, f := range results {
		if f.SavedID != "" {
			fmt.Printf("saved: %s\n", f.SavedID)
		}
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	r, start, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return server.New(r, start).ListenAndServe(ctx, addr)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "mandelview.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	cfg, err := defaultConfigFor(preset)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// defaultConfigFor returns the default config, starting at the named preset
// when one is given.
func defaultConfigFor(name string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if name == "" {
		return cfg, nil
	}
	v, ok := config.GetPreset(name)
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	cfg.SetViewport(v)
	return cfg, nil
}

func inspectPoint(cmd *cobra.Command, args []string) error {
	re, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("real part: %w", err)
	}
	im, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("imaginary part: %w", err)
	}
	r, _, err := setup(cmd)
	if err != nil {
		return err
	}
	describePoint(os.Stdout, r.Evaluator(), mandel.NewComplex(re, im), orbitLen)
	return nil
}

// describePoint prints the escape count of c and the first n orbit points.
func describePoint(w io.Writer, e mandel.Evaluator, c mandel.Complex, n int) {
	fmt.Fprintf(w, "point: %v\n", c)
	fmt.Fprintf(w, "iterations: %d\n", e.Iterate(c))
	fmt.Fprintf(w, "in set: %v\n", e.InSet(c))

	orbit := e.Orbit(c)
	fmt.Fprintf(w, "orbit: %d points\n", len(orbit))
	for i, z := range orbit {
		if i >= n {
			fmt.Fprintf(w, "  ... %d more\n", len(orbit)-n)
			break
		}
		fmt.Fprintf(w, "  %3d  %v  |z|=%.6g\n", i+1, z, z.Modulus())
	}
}
