// Package main is the entry point for the stitch tool, which
// reassembles per-worker tile output files from a domain-decomposed
// simulation into one global netCDF file per timestep.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/wxgrid/stitch/internal/config"
	"github.com/wxgrid/stitch/internal/ncio"
	"github.com/wxgrid/stitch/internal/quicklook"
	"github.com/wxgrid/stitch/internal/stitch"
)

func main() {
	if err := run(); err != nil {
		log.Printf("stitch: %v", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "stitch.yaml", "Path to configuration file")
	pattern := flag.String("pattern", "", "Glob for representative tile files (overrides config)")
	workers := flag.Int("workers", 0, "Loader pool size (overrides config)")
	outDir := flag.String("out", "", "Output directory (overrides config)")
	quicklookVar := flag.String("quicklook", "", "Variable to render as a PNG per timestep (overrides config)")
	dryRun := flag.Bool("dry-run", false, "List timestep groups without aggregating")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *pattern != "" {
		cfg.Input.Pattern = *pattern
	}
	if *workers > 0 {
		cfg.Input.Workers = *workers
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *quicklookVar != "" {
		cfg.Quicklook.Variable = *quicklookVar
	}

	log.Printf("Aggregating %q with %d workers", cfg.Input.Pattern, cfg.Input.Workers)

	pool := stitch.NewPool(cfg.Input.Workers)
	defer pool.Stop()

	agg, err := stitch.NewAggregator(stitch.AggregatorConfig{
		Pool:           pool,
		VerifyCoverage: cfg.Output.VerifyCoverage,
	})
	if err != nil {
		return err
	}

	driverCfg := stitch.DriverConfig{
		Pattern:   cfg.Input.Pattern,
		TileToken: cfg.Input.TileToken,
		OutputDir: cfg.Output.Dir,
		DryRun:    *dryRun,
	}
	if cfg.Quicklook.Variable != "" {
		qcfg := quicklook.Config{
			Variable: cfg.Quicklook.Variable,
			Colormap: cfg.Quicklook.Colormap,
		}
		driverCfg.AfterEmit = func(outPath string, global *ncio.Dataset) error {
			return quicklook.WritePNG(outPath+".png", global, qcfg)
		}
	}

	driver, err := stitch.NewDriver(driverCfg, agg)
	if err != nil {
		return err
	}
	return driver.Run()
}
