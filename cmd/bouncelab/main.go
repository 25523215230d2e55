package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/bouncelab/internal/config"
	"github.com/san-kum/bouncelab/internal/pacer"
	"github.com/san-kum/bouncelab/internal/scene"
	"github.com/san-kum/bouncelab/internal/tui"
	"github.com/san-kum/bouncelab/internal/viz"
)

var (
	configFile string
	preset     string
	fps        int
	entities   int
	seed       int64
	shape      string
	yield      bool
	// bench
	benchSeconds int
	csvPath      string
	jsonPath     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bouncelab",
		Short: "fixed-timestep bouncing sprites in the terminal",
		RunE:  runDemo,
	}
	addSceneFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the interactive demo",
		RunE:  runDemo,
	}
	addSceneFlags(runCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the pacer headless and report frame costs",
		RunE:  runBench,
	}
	addSceneFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchSeconds, "seconds", 5, "benchmark duration")
	benchCmd.Flags().StringVar(&csvPath, "csv", "", "export interval samples to CSV")
	benchCmd.Flags().StringVar(&jsonPath, "json", "", "export interval samples to JSON")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFPS\tENTITIES\tSHAPE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, p.FPS, p.Entities, p.Shape)
			}
			return w.Flush()
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "bouncelab.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, benchCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scene preset name")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "target frame rate")
	cmd.Flags().IntVar(&entities, "entities", config.DefaultEntities, "number of entities")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().StringVar(&shape, "shape", "box", "entity shape: "+joinNames())
	cmd.Flags().BoolVar(&yield, "yield", false, "yield the pacer goroutine each spin")
}

func joinNames() string {
	out := ""
	for i, n := range viz.ShapeNames() {
		if i > 0 {
			out += "|"
		}
		out += n
	}
	return out
}

// buildConfig layers file, preset and explicitly set flags over the
// defaults, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("entities") {
		cfg.Entities = entities
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("shape") {
		cfg.Shape = shape
	}
	if flags.Changed("yield") {
		cfg.Yield = yield
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg, cfg.Validate()
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	return tui.Run(cfg)
}

// Headless bench: same scene and pacer as the demo, but the repaint callback
// only counts frames and the per-interval reports are collected as samples.
func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if benchSeconds <= 0 {
		return fmt.Errorf("seconds must be positive, got %d", benchSeconds)
	}

	bounds := scene.NewBounds(320, 200, cfg.MarginX, cfg.MarginY)
	scn := scene.New(bounds)
	scn.Spawn(scene.SpawnConfig{
		Count:    cfg.Entities,
		MinSpeed: cfg.MinSpeed,
		MaxSpeed: cfg.MaxSpeed,
		MinSize:  cfg.MinSize,
		MaxSize:  cfg.MaxSize,
	}, rand.New(rand.NewSource(cfg.Seed)))

	var (
		ticks   int
		samples []float64
		reports []string
	)
	p, err := pacer.New(pacer.Config{
		TargetFPS: cfg.FPS,
		Yield:     cfg.Yield,
		Status:    func(text string) { reports = append(reports, text) },
		Progress:  func(value, max int) { samples = append(samples, float64(value)) },
	},
		func() error { scn.Update(); return nil },
		func() error { ticks++; return nil })
	if err != nil {
		return err
	}

	timer := time.AfterFunc(time.Duration(benchSeconds)*time.Second, p.Stop)
	defer timer.Stop()

	start := time.Now()
	if err := p.Run(context.Background()); err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "target fps\t%d\n", cfg.FPS)
	fmt.Fprintf(w, "entities\t%d\n", cfg.Entities)
	fmt.Fprintf(w, "elapsed\t%s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "ticks drawn\t%d\n", ticks)
	fmt.Fprintf(w, "effective fps\t%.1f\n", float64(ticks)/elapsed.Seconds())
	fmt.Fprintf(w, "report intervals\t%d\n", len(samples))
	if len(reports) > 0 {
		fmt.Fprintf(w, "last report\t%s\n", reports[len(reports)-1])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(samples) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(samples,
			asciigraph.Height(10),
			asciigraph.Caption("avg frame cost (ms) per reporting interval")))
	}

	if csvPath != "" {
		if err := exportCSV(csvPath, samples); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvPath)
	}
	if jsonPath != "" {
		if err := exportJSON(jsonPath, cfg, ticks, elapsed, samples); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonPath)
	}
	return nil
}

func exportCSV(path string, samples []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"interval", "avg_frame_cost_ms"}); err != nil {
		return err
	}
	for i, v := range samples {
		if err := w.Write([]string{strconv.Itoa(i), strconv.FormatFloat(v, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

type benchReport struct {
	TargetFPS int       `json:"target_fps"`
	Entities  int       `json:"entities"`
	ElapsedMs int64     `json:"elapsed_ms"`
	Ticks     int       `json:"ticks"`
	Samples   []float64 `json:"avg_frame_cost_ms"`
}

func exportJSON(path string, cfg *config.Config, ticks int, elapsed time.Duration, samples []float64) error {
	data, err := json.MarshalIndent(benchReport{
		TargetFPS: cfg.FPS,
		Entities:  cfg.Entities,
		ElapsedMs: elapsed.Milliseconds(),
		Ticks:     ticks,
		Samples:   samples,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
