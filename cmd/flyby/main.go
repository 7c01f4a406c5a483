package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/mgeist/flyby/internal/catalog"
	"github.com/mgeist/flyby/internal/config"
	"github.com/mgeist/flyby/internal/ephem"
	"github.com/mgeist/flyby/internal/export"
	"github.com/mgeist/flyby/internal/kernel"
	"github.com/mgeist/flyby/internal/render"
	"github.com/mgeist/flyby/internal/scene"
	"github.com/mgeist/flyby/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	output     string
	title      string
	startStr   string
	endStr     string
	stepStr    string
	configFile string
	preset     string
	// Snapshot parameters
	frameIdx int
	svgW     int
	svgH     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flyby",
		Short: "Voyager 2 Neptune encounter animator",
		RunE:  renderAnimation,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "kernel directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset time window")
	rootCmd.PersistentFlags().StringVar(&startStr, "start", config.DefaultStart, "window start (RFC 3339)")
	rootCmd.PersistentFlags().StringVar(&endStr, "end", config.DefaultEnd, "window end (RFC 3339)")
	rootCmd.PersistentFlags().StringVar(&stepStr, "step", config.DefaultStep, "frame step")

	rootCmd.Flags().StringVar(&output, "output", config.DefaultOutput, "output html file")
	rootCmd.Flags().StringVar(&title, "title", config.DefaultTitle, "figure title")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "download missing kernel files",
		RunE:  fetchKernels,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "write the animation html document",
		RunE:  renderAnimation,
	}
	renderCmd.Flags().StringVar(&output, "output", config.DefaultOutput, "output html file")
	renderCmd.Flags().StringVar(&title, "title", config.DefaultTitle, "figure title")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot the approach range profile",
		RunE:  profileApproach,
	}

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "play the animation in the terminal",
		RunE:  previewAnimation,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "export a single frame as svg",
		RunE:  snapshotFrame,
	}
	snapshotCmd.Flags().StringVar(&output, "output", "flyby.svg", "output svg file")
	snapshotCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (default closest approach)")
	snapshotCmd.Flags().IntVar(&svgW, "width", 960, "svg width in pixels")
	snapshotCmd.Flags().IntVar(&svgH, "height", 720, "svg height in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list time window presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(fetchCmd, renderCmd, profileCmd, previewCmd, snapshotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges defaults, preset, config file and explicit flags, in
// that order of precedence from lowest to highest.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("output") {
		cfg.Output = output
	}
	if flags.Changed("title") {
		cfg.Title = title
	}
	if flags.Changed("start") {
		cfg.Window.Start = startStr
	}
	if flags.Changed("end") {
		cfg.Window.End = endStr
	}
	if flags.Changed("step") {
		cfg.Window.Step = stepStr
	}

	return cfg, nil
}

// buildScene runs the shared pipeline: ensure kernels, resolve the
// trajectory over the configured window and assemble the frames.
func buildScene(cmd *cobra.Command) (*scene.Scene, *ephem.Context, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	start, end, step, err := cfg.Timespan()
	if err != nil {
		return nil, nil, nil, err
	}

	statuses, err := kernel.New(cfg.DataDir).EnsureAll(cmd.Context())
	if err != nil {
		return nil, nil, nil, err
	}
	for _, st := range statuses {
		status := "present"
		if st.Fetched {
			status = "fetched"
		}
		fmt.Printf("kernel %s: %s\n", st.Name, status)
	}

	eph, err := ephem.Load(cfg.DataDir)
	if err != nil {
		return nil, nil, nil, err
	}

	times, err := ephem.Timeline(start, end, step)
	if err != nil {
		eph.Close()
		return nil, nil, nil, err
	}

	traj, err := eph.Trajectory(times)
	if err != nil {
		eph.Close()
		return nil, nil, nil, err
	}

	s, err := scene.Assemble(times, traj, eph.MeanRadius)
	if err != nil {
		eph.Close()
		return nil, nil, nil, err
	}

	return s, eph, cfg, nil
}

func fetchKernels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	statuses, err := kernel.New(cfg.DataDir).EnsureAll(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSTATUS")
	for _, st := range statuses {
		status := "present"
		if st.Fetched {
			status = "fetched"
		}
		fmt.Fprintf(w, "%s\t%s\n", st.Name, status)
	}
	return w.Flush()
}

func renderAnimation(cmd *cobra.Command, args []string) error {
	s, eph, cfg, err := buildScene(cmd)
	if err != nil {
		return err
	}
	defer eph.Close()

	fmt.Printf("assembled %d frames, %d bodies\n", len(s.Frames), len(s.Spheres))
	ranges := s.Ranges()
	min, max := ranges[0], ranges[0]
	for _, r := range ranges {
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
	}
	fmt.Printf("range to %s: %.0f to %.0f km\n", catalog.Neptune.Name, min, max)
	ca := s.ClosestApproach()
	fmt.Printf("closest approach: %s\n", ca.Label())
	if lt, err := eph.LightTime(ca.Time); err == nil {
		fmt.Printf("one-way light time to Earth: %s\n", lt.Round(time.Second))
	}

	fig := render.Build(s, cfg.Title)
	if err := render.WriteFile(cfg.Output, cfg.Title, fig); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", cfg.Output)
	return nil
}

func profileApproach(cmd *cobra.Command, args []string) error {
	s, eph, _, err := buildScene(cmd)
	if err != nil {
		return err
	}
	defer eph.Close()

	ca := s.ClosestApproach()
	fmt.Printf("%s range to %s\n", catalog.SpacecraftName, catalog.Neptune.Name)
	fmt.Printf("frames: %d\n", len(s.Frames))
	fmt.Printf("closest approach: %s (frame %d)\n\n", ca.Label(), ca.Index)

	graph := asciigraph.Plot(s.Ranges(),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("range to Neptune (km) vs frame"),
	)
	fmt.Println(graph)

	if lt, err := eph.LightTime(ca.Time); err == nil {
		fmt.Printf("\none-way light time to Earth at closest approach: %s\n", lt.Round(time.Second))
	}
	return nil
}

func previewAnimation(cmd *cobra.Command, args []string) error {
	s, eph, _, err := buildScene(cmd)
	if err != nil {
		return err
	}
	eph.Close()

	return viz.Run(s)
}

func snapshotFrame(cmd *cobra.Command, args []string) error {
	s, eph, _, err := buildScene(cmd)
	if err != nil {
		return err
	}
	eph.Close()

	frame := frameIdx
	if frame < 0 {
		frame = s.Closest
	}

	if err := export.WriteSceneSVG(output, s, frame, svgW, svgH); err != nil {
		return err
	}

	fmt.Printf("wrote %s (frame %d, %s)\n", output, frame, s.Frames[frame].Label())
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTART\tEND\tSTEP")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p.Window.Start, p.Window.End, p.Window.Step)
	}
	return w.Flush()
}
