package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/export"
	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/render"
	"github.com/san-kum/partsim/internal/sim"
	"github.com/san-kum/partsim/internal/storage"
	"github.com/san-kum/partsim/internal/viz"
)

func simConfig() sim.Config {
	return sim.Config{
		Dt:               runCfg.Dt,
		Duration:         runCfg.Duration,
		Seed:             runCfg.Seed,
		ValidateState:    true,
		StopWhenComplete: stopEarly,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	name := effectArg(args)
	effect, err := buildEffect(name, nil)
	if err != nil {
		return err
	}
	defer effect.Dispose()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(effect, logger)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s...\n", effect.Name)
	start := time.Now()
	cfg := simConfig()
	result, err := s.Run(ctx, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	for _, e := range result.Errors {
		logger.Warn("run error", "err", e)
	}

	runID, err := st.Save(effect.Name, cfg, result)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", runID, "dir", dataDir)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, result.Metrics[name])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	name := effectArg(args)
	if len(args) == 0 && configFile == "" {
		picked, err := pickEffect()
		if err != nil || picked == "" {
			return err
		}
		name = picked
	}

	srt, err := newSorter(runCfg.Sorter)
	if err != nil {
		return err
	}
	batch := render.NewBufferedBatch(srt)
	effect, err := buildEffect(name, batch)
	if err != nil {
		return err
	}
	defer effect.Dispose()
	for i, c := range effect.Controllers {
		c.SetSeed(runCfg.Seed + uint64(i))
	}

	cam := runCfg.Camera
	m, err := viz.NewModel(effect, batch, viz.Options{
		Dt:         runCfg.Dt,
		FPS:        runCfg.FPS,
		Camera:     viz.NewCamera(cam.EyeVec(), cam.TargetVec(), cam.FOV),
		RecordPath: recordPath,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func pickEffect() (string, error) {
	info := map[string]string{}
	for _, n := range catalog.EffectNames() {
		f, _ := catalog.Effect(n)
		info[n] = fmt.Sprintf("%d controller(s)", len(f.Controllers))
	}
	final, err := tea.NewProgram(viz.NewPicker(catalog.EffectNames(), info)).Run()
	if err != nil {
		return "", err
	}
	return final.(viz.Picker).Selected, nil
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
	fmt.Fprintln(w, "ID\tEFFECT\tTIME\tDURATION\tDT\tSTEPS\tPEAK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%.0f\n",
			run.ID[:8],
			run.Effect,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.Metrics["peak_alive"],
		)
	}

	return w.Flush()
}

func loadRun(prefix string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	runID, err := st.Resolve(prefix)
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	result, err := st.LoadResult(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, result, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(result.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("effect: %s\n", meta.Effect)
	fmt.Printf("samples: %d\n\n", len(result.Times))

	graph := asciigraph.Plot(result.AliveSeries(),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("alive particles"),
	)
	fmt.Println(graph)
	fmt.Println()

	if len(result.Controllers) < 2 {
		return nil
	}
	for i, name := range result.Controllers {
		data := make([]float64, len(result.Counts))
		for j, counts := range result.Counts {
			if i < len(counts) {
				data[j] = float64(counts[i])
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if svgFile != "" {
		chart := export.SeriesToSVG(result.Times, result.AliveSeries(), 800, 300, "#ff8c42")
		if err := os.WriteFile(svgFile, []byte(chart), 0644); err != nil {
			return err
		}
		logger.Info("chart written", "path", svgFile)
	}
	if outFile == "" {
		return storage.ExportJSON(os.Stdout, meta, result)
	}
	if err := storage.ExportJSONFile(outFile, meta, result); err != nil {
		return err
	}
	logger.Info("run exported", "id", meta.ID, "path", outFile)
	return nil
}

func snapshotEffect(cmd *cobra.Command, args []string) error {
	srt, err := newSorter(runCfg.Sorter)
	if err != nil {
		return err
	}
	batch := render.NewBufferedBatch(srt)
	effect, err := buildEffect(effectArg(args), batch)
	if err != nil {
		return err
	}
	defer effect.Dispose()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	result, err := sim.New(effect, logger).Run(ctx, simConfig())
	if err != nil {
		return err
	}

	cam := runCfg.Camera
	camera := viz.NewCamera(cam.EyeVec(), cam.TargetVec(), cam.FOV)
	canvas := viz.Snapshot(effect, batch, camera, canvasW, canvasH, showGrid)
	svg := export.CanvasToSVG(canvas, 4, viz.CurrentTheme.Background)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("snapshot written", "effect", effect.Name, "alive", effect.Alive(),
		"steps", result.StepsTaken, "path", outFile)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	builtin := map[string]bool{}
	for _, n := range config.ListPresets() {
		builtin[n] = true
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCE\tCONTROLLERS")
	for _, n := range catalog.EffectNames() {
		f, _ := catalog.Effect(n)
		source := "catalog"
		if builtin[n] {
			source = "preset"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", n, source, len(f.Controllers))
	}
	return w.Flush()
}

func describeEffect(cmd *cobra.Command, args []string) error {
	effect, err := buildEffect(args[0], nil)
	if err != nil {
		return err
	}
	defer effect.Dispose()

	f, err := config.Describe(effect)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(f)
}

func benchEffect(cmd *cobra.Command, args []string) error {
	base, err := buildEffect(args[0], nil)
	if err != nil {
		return err
	}
	defer base.Dispose()

	dts := []float64{1.0 / 30, 1.0 / 60, 1.0 / 120}

	fmt.Printf("benchmarking %s\n\n", base.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CASE\tDT\tSTEPS\tPEAK\tTIME\tSTEPS/SEC")

	for _, step := range dts {
		effect := base.Copy()
		peak := metrics.NewPeakAlive()
		s := sim.New(effect, logger)
		s.AddMetric(peak)

		start := time.Now()
		result, err := s.Run(context.Background(), sim.Config{Dt: step, Duration: duration, Seed: 42})
		elapsed := time.Since(start)
		effect.Dispose()
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "single\t%.4fs\t%d\t%.0f\t%v\t%.0f\n",
			step, result.StepsTaken, peak.Value(), elapsed, float64(result.StepsTaken)/elapsed.Seconds())
	}

	ens := sim.NewEnsemble(base, numRuns, 42, func() []sim.Metric { return []sim.Metric{metrics.NewPeakAlive()} })
	start := time.Now()
	results, err := ens.Run(context.Background(), sim.Config{Dt: 1.0 / 60, Duration: duration})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	steps, peak := 0, 0.0
	for _, r := range results {
		steps += r.StepsTaken
		peak = max(peak, r.Metrics["peak_alive"])
	}
	fmt.Fprintf(w, "ensemble x%d\t%.4fs\t%d\t%.0f\t%v\t%.0f\n",
		numRuns, 1.0/60, steps, peak, elapsed, float64(steps)/elapsed.Seconds())

	return w.Flush()
}
