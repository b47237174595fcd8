package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/automation"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/export"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/optim"
	"github.com/san-kum/orbsim/internal/phys"
	"github.com/san-kum/orbsim/internal/scene"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/storage"
	"github.com/san-kum/orbsim/internal/viz"
)

var (
	dataDir  string
	dt       float64
	duration float64
	seed     int64
	g        float64
	workers  int
	sample   int
	// Scene parameters
	numBodies int
	spread    float64
	speed     float64
	minRadius float64
	maxRadius float64
	turbulent bool
	noPlanets bool
	// Config file
	configFile string
	// Preset name
	preset string
	// SVG export path limit
	svgBodies int
)

// main registers the orbsim commands and executes the root command. It
// exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "orbsim",
		Short: "gravitational n-body simulation with elastic collisions",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&sample, "sample", 1, "record every k-th snapshot")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live [name]",
		Short: "run simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

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

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

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

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export body trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgBodies, "max-bodies", 20, "paths to draw (0 = all)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search dt and g for minimal energy drift",
		RunE:  sweepParams,
	}
	sweepCmd.Flags().Float64Var(&duration, "time", 2.0, "duration per run")
	sweepCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	sweepCmd.Flags().IntVar(&numBodies, "bodies", 50, "number of small bodies")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run a scripted batch from a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step throughput",
		RunE:  benchStep,
	}
	benchCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "worker goroutines")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tDT\tDURATION\tG")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.4f\t%.1fs\t%.2f\n",
					name, p.Scene.Bodies, p.Dt, p.Duration, p.G)
			}
			return w.Flush()
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		benchCmd, sweepCmd, batchCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&g, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "worker goroutines")
	cmd.Flags().IntVar(&numBodies, "bodies", config.DefaultBodies, "number of small bodies")
	cmd.Flags().Float64Var(&spread, "spread", config.DefaultSpread, "spawn cube edge length")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "initial speed bound")
	cmd.Flags().Float64Var(&minRadius, "min-radius", config.DefaultMinRadius, "smallest body radius")
	cmd.Flags().Float64Var(&maxRadius, "max-radius", config.DefaultMaxRadius, "largest body radius")
	cmd.Flags().BoolVar(&turbulent, "turbulent", false, "perlin noise velocity field")
	cmd.Flags().BoolVar(&noPlanets, "no-planets", false, "omit the two planets")
}

// resolveConfig layers preset, config file, and CLI flags: flags the
// user actually set win over file values, which win over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("g") {
		cfg.G = g
	}
	if cmd.Flags().Changed("workers") || cfg.Workers == 0 {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("sample") {
		cfg.SampleEvery = sample
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("bodies") {
		cfg.Scene.Bodies = numBodies
	}
	if cmd.Flags().Changed("spread") {
		cfg.Scene.Spread = spread
	}
	if cmd.Flags().Changed("speed") {
		cfg.Scene.Speed = speed
	}
	if cmd.Flags().Changed("min-radius") {
		cfg.Scene.MinRadius = minRadius
	}
	if cmd.Flags().Changed("max-radius") {
		cfg.Scene.MaxRadius = maxRadius
	}
	if cmd.Flags().Changed("turbulent") {
		cfg.Scene.Turbulent = turbulent
	}
	if cmd.Flags().Changed("no-planets") {
		cfg.Scene.Planets = !noPlanets
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sceneName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if preset != "" {
		return preset
	}
	return "impact"
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	name := sceneName(args)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	reg, err := scene.Build(scene.Params{
		Bodies:    cfg.Scene.Bodies,
		Spread:    cfg.Scene.Spread,
		Speed:     cfg.Scene.Speed,
		MinRadius: cfg.Scene.MinRadius,
		MaxRadius: cfg.Scene.MaxRadius,
		Turbulent: cfg.Scene.Turbulent,
		Planets:   cfg.Scene.Planets,
	}, rng)
	if err != nil {
		return err
	}

	pipeline := phys.NewPipeline(cfg.G)
	pipeline.MinSeparation = cfg.MinSeparation

	simulator := sim.New(reg, pipeline)
	for _, m := range metrics.Default() {
		simulator.AddMetric(m)
	}

	simCfg := sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		Seed:          cfg.Seed,
		Workers:       cfg.Workers,
		SampleEvery:   cfg.SampleEvery,
		ValidateState: true,
	}

	fmt.Printf("running %s with %d bodies...\n", name, reg.Len())
	start := time.Now()

	result, err := simulator.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg.Dt, cfg.Duration, cfg.Seed, cfg.G, reg.Len(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("contacts: %d\n", result.TotalContacts)
	for _, stepErr := range result.Errors {
		fmt.Printf("warning: %v\n", stepErr)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	name := sceneName(args)

	rng := rand.New(rand.NewSource(cfg.Seed))
	reg, err := scene.Build(scene.Params{
		Bodies:    cfg.Scene.Bodies,
		Spread:    cfg.Scene.Spread,
		Speed:     cfg.Scene.Speed,
		MinRadius: cfg.Scene.MinRadius,
		MaxRadius: cfg.Scene.MaxRadius,
		Turbulent: cfg.Scene.Turbulent,
		Planets:   cfg.Scene.Planets,
	}, rng)
	if err != nil {
		return err
	}

	pipeline := phys.NewPipeline(cfg.G)
	pipeline.MinSeparation = cfg.MinSeparation
	pipeline.Workers = cfg.Workers

	m := viz.NewModel(name, reg, pipeline, cfg.Dt)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
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
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tBODIES\tCONTACTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Bodies,
			run.Contacts,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, contacts, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(states))

	span := times[len(times)-1]

	graph := asciigraph.Plot(meanSquaredSpeeds(states),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("mean squared speed, 0 to %.2fs", span)),
	)
	fmt.Println(graph)
	fmt.Println()

	contactData := make([]float64, len(contacts))
	for i, c := range contacts {
		contactData[i] = float64(c)
	}
	graph = asciigraph.Plot(contactData,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("contacts per sampled step, 0 to %.2fs", span)),
	)
	fmt.Println(graph)

	return nil
}

// meanSquaredSpeeds reduces each snapshot to the mean squared speed of
// its bodies, a mass-free stand-in for kinetic energy (the CSV does
// not record radii).
func meanSquaredSpeeds(states [][]float64) []float64 {
	speeds := make([]float64, len(states))
	for i, s := range states {
		n := len(s) / 6
		if n == 0 {
			continue
		}
		sum := 0.0
		for b := 0; b < n; b++ {
			vx, vy, vz := s[b*6+3], s[b*6+4], s[b*6+5]
			sum += vx*vx + vy*vy + vz*vz
		}
		speeds[i] = sum / float64(n)
	}
	return speeds
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) < 2 || len(states[0]) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	// First body's x position carries the dominant orbital signal in
	// the planet scenes.
	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][0]
	}

	ps := analysis.PowerSpectrum(analysis.Pad(data))

	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (px0)"),
	)
	fmt.Println(graph)
	fmt.Println()

	sampleDt := times[1] - times[0]
	freq, power := analysis.DominantFrequency(data, sampleDt)
	fmt.Printf("dominant frequency: %.3f hz (power %.3g)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, contacts, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "contacts"}
	for i := 0; i < len(states[0])/6; i++ {
		for _, c := range []string{"px", "py", "pz", "vx", "vy", "vz"} {
			header = append(header, fmt.Sprintf("%s%d", c, i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.Itoa(contacts[i]),
		}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, contacts, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{
		States:        states,
		Times:         times,
		ContactCounts: contacts,
		Metrics:       meta.Metrics,
	}

	return storage.ExportJSON(os.Stdout, meta, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, _, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	svg := export.TrajectoriesToSVG(states, 800, 600, svgBodies)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	fmt.Println(svg)
	return nil
}

func sweepParams(cmd *cobra.Command, args []string) error {
	gs := optim.NewGridSearch(
		[]string{"dt", "g"},
		[][]float64{
			{0.001, 0.005, 0.01, 0.05},
			{0.1, 0.5, 1.0},
		},
	)

	run := func(ctx context.Context, params map[string]float64) (map[string]float64, error) {
		rng := rand.New(rand.NewSource(seed))
		reg, err := scene.Build(scene.Params{
			Bodies:    numBodies,
			Spread:    config.DefaultSpread,
			Speed:     config.DefaultSpeed,
			MinRadius: config.DefaultMinRadius,
			MaxRadius: config.DefaultMaxRadius,
			Planets:   true,
		}, rng)
		if err != nil {
			return nil, err
		}

		pipeline := phys.NewPipeline(params["g"])

		simulator := sim.New(reg, pipeline)
		for _, m := range metrics.Default() {
			simulator.AddMetric(m)
		}

		result, err := simulator.Run(ctx, sim.Config{
			Dt:            params["dt"],
			Duration:      duration,
			Seed:          seed,
			SampleEvery:   100,
			ValidateState: true,
		})
		if err != nil {
			return nil, err
		}
		return result.Metrics, nil
	}

	fmt.Printf("sweeping dt and g (%d bodies, %.1fs each)...\n", numBodies, duration)
	start := time.Now()

	best, drift, err := gs.Search(context.Background(), run, "energy_drift")
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	if best == nil {
		return fmt.Errorf("no configuration completed")
	}
	fmt.Printf("best: dt=%.4f g=%.2f (energy drift %.3e)\n", best["dt"], best["g"], drift)

	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	batch, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("batch %s: %d runs\n", batch.Name, len(batch.Runs))
	ids, err := automation.RunBatch(context.Background(), batch, st)
	for _, id := range ids {
		fmt.Printf("  saved %s\n", id)
	}
	return err
}

func benchStep(cmd *cobra.Command, args []string) error {
	bodyCounts := []int{100, 500, 1000, 2000}
	steps := 50

	fmt.Printf("benchmarking pipeline step (%d workers)\n\n", workers)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tPAIRS\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range bodyCounts {
		rng := rand.New(rand.NewSource(42))
		reg, err := scene.Build(scene.Params{
			Bodies:    n,
			Spread:    config.DefaultSpread,
			Speed:     config.DefaultSpeed,
			MinRadius: config.DefaultMinRadius,
			MaxRadius: config.DefaultMaxRadius,
			Planets:   true,
		}, rng)
		if err != nil {
			return err
		}

		pipeline := phys.NewPipeline(config.DefaultG)
		pipeline.Workers = workers

		start := time.Now()
		for i := 0; i < steps; i++ {
			pipeline.Step(reg, config.DefaultDt)
		}
		elapsed := time.Since(start)

		stepsPerSec := float64(steps) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.1f\n",
			reg.Len(), reg.PairCount(), steps, elapsed.Round(time.Millisecond), stepsPerSec)
	}

	return w.Flush()
}
