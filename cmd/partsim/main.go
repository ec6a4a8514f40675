package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	catalogFile string
	configFile  string
	verbose     bool

	dt         float64
	duration   float64
	seed       uint64
	frameRate  int
	sorterName string
	recordPath string
	stopEarly  bool
	numRuns    int
	outFile    string
	svgFile    string
	canvasW    int
	canvasH    int
	showGrid   bool
)

// main registers the partsim commands and runs the root command. It exits
// with status 1 when the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "partsim",
		Short:         "particle effect simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "run data directory (default $PARTSIM_DATA_DIR or ./data)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "asset catalog file (yaml)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "run config file (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [effect|file]",
		Short: "run an effect headless and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "timestep in seconds")
	runCmd.Flags().Float64Var(&duration, "time", 5.0, "duration in seconds")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	runCmd.Flags().BoolVar(&stopEarly, "stop", false, "stop once the effect completes")

	liveCmd := &cobra.Command{
		Use:   "live [effect|file]",
		Short: "watch an effect in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "timestep in seconds")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	liveCmd.Flags().StringVar(&sorterName, "sorter", "distance", "depth sorter: distance or none")
	liveCmd.Flags().StringVar(&recordPath, "record", "particles.gif", "GIF path for recordings")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot live particle counts of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&svgFile, "svg", "", "also write the alive chart as SVG")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [effect|file]",
		Short: "simulate an effect and save its final frame as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshotEffect,
	}
	snapshotCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "timestep in seconds")
	snapshotCmd.Flags().Float64Var(&duration, "time", 5.0, "simulated seconds before the frame is taken")
	snapshotCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	snapshotCmd.Flags().StringVar(&sorterName, "sorter", "distance", "depth sorter: distance or none")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "snapshot.svg", "output SVG file")
	snapshotCmd.Flags().IntVar(&canvasW, "width", 80, "canvas width in cells")
	snapshotCmd.Flags().IntVar(&canvasH, "height", 30, "canvas height in cells")
	snapshotCmd.Flags().BoolVar(&showGrid, "grid", false, "draw the ground grid")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in and catalog effects",
		RunE:  listPresets,
	}

	describeCmd := &cobra.Command{
		Use:   "describe [effect|file]",
		Short: "print an effect as YAML after building it",
		Args:  cobra.ExactArgs(1),
		RunE:  describeEffect,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [effect|file]",
		Short: "benchmark an effect",
		Args:  cobra.ExactArgs(1),
		RunE:  benchEffect,
	}
	benchCmd.Flags().Float64Var(&duration, "time", 5.0, "simulated seconds per case")
	benchCmd.Flags().IntVar(&numRuns, "runs", 4, "parallel runs for the ensemble case")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd, describeCmd, benchCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
