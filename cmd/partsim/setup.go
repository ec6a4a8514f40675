package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/particles"
	"github.com/san-kum/partsim/internal/render"
	"github.com/san-kum/partsim/internal/sorter"
)

var (
	logger  *log.Logger
	runCfg  *config.Config
	catalog *config.Catalog
)

// setup reads the environment, the run config and the catalog, then applies
// flags the user set explicitly.
func setup(cmd *cobra.Command) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "partsim"})
	level, err := log.ParseLevel(env.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	log.SetDefault(logger)

	if dataDir == "" {
		dataDir = env.DataDir
	}

	runCfg = config.DefaultConfig()
	if configFile != "" {
		if runCfg, err = config.Load(configFile); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Debug("run config loaded", "path", configFile)
	}
	env.Apply(runCfg)

	flags := cmd.Flags()
	if flags.Changed("dt") {
		runCfg.Dt = dt
	}
	if flags.Changed("time") {
		runCfg.Duration = duration
	}
	if flags.Changed("seed") {
		runCfg.Seed = seed
	}
	if flags.Changed("fps") {
		runCfg.FPS = frameRate
	}
	if flags.Changed("sorter") {
		runCfg.Sorter = sorterName
	}
	if runCfg.Seed == 0 {
		runCfg.Seed = uint64(time.Now().UnixNano())
	}

	if catalogFile != "" {
		if catalog, err = config.LoadCatalog(catalogFile); err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		logger.Debug("catalog loaded", "path", catalogFile, "effects", len(catalog.EffectNames()))
	} else {
		catalog = config.DefaultCatalog()
	}
	return nil
}

// effectArg picks the effect named on the command line or, failing that, the
// run config's effect.
func effectArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return runCfg.Effect
}

// loadEffectFile resolves an argument that is either a YAML file path or the
// name of a catalog effect.
func loadEffectFile(arg string) (*config.EffectFile, error) {
	ext := strings.ToLower(filepath.Ext(arg))
	if ext == ".yaml" || ext == ".yml" {
		f, err := config.LoadEffect(arg)
		if err != nil {
			return nil, err
		}
		logger.Debug("effect loaded", "path", arg, "effect", f.Name)
		return f, nil
	}
	return catalog.Effect(arg)
}

// buildEffect builds and initializes an effect. batch may be nil for headless runs.
func buildEffect(arg string, batch render.Batch) (*particles.Effect, error) {
	f, err := loadEffectFile(arg)
	if err != nil {
		return nil, err
	}
	e, err := config.NewBuilder(catalog, batch, logger).Build(f)
	if err != nil {
		return nil, err
	}
	if err := e.Init(); err != nil {
		return nil, err
	}
	return e, nil
}

func newSorter(name string) (sorter.Sorter, error) {
	switch name {
	case "", "distance":
		return sorter.NewDistance(), nil
	case "none":
		return sorter.NewNone(), nil
	}
	return nil, fmt.Errorf("unknown sorter %q (available: distance, none)", name)
}
