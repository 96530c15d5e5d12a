package stitch

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wxgrid/stitch/internal/ncio"
)

// DriverConfig contains configuration for the timestep driver.
type DriverConfig struct {
	// Pattern is a glob matching the representative (first-tile) file of
	// every timestep group. It must contain TileToken.
	Pattern string

	// TileToken is the sentinel substring that marks the tile index of
	// the representative file, e.g. "_001_". Substituting "*" for it
	// yields the group's glob; collapsing it to "_" yields the output
	// file name.
	TileToken string

	// OutputDir receives the aggregated files. Empty means next to the
	// inputs.
	OutputDir string

	// DryRun lists the discovered groups without aggregating.
	DryRun bool

	// AfterEmit, if set, runs after each output file is written. Used
	// for quicklook rendering. An error aborts the run.
	AfterEmit func(outPath string, global *ncio.Dataset) error
}

// Driver discovers timestep groups and aggregates them one at a time,
// in lexicographic filename order. Groups run strictly sequentially so
// peak memory stays at one global dataset plus one group's tile
// buffers; only the file loads inside a group are parallel.
type Driver struct {
	cfg DriverConfig
	agg *Aggregator
}

// NewDriver creates a driver running the given aggregator.
func NewDriver(cfg DriverConfig, agg *Aggregator) (*Driver, error) {
	if cfg.TileToken == "" {
		cfg.TileToken = "_001_"
	}
	if !strings.Contains(cfg.Pattern, cfg.TileToken) {
		return nil, fmt.Errorf("pattern %q does not contain the tile token %q", cfg.Pattern, cfg.TileToken)
	}
	return &Driver{cfg: cfg, agg: agg}, nil
}

// Run aggregates every discovered timestep group. The first failing
// group aborts the run; no partial output is written for it.
func (d *Driver) Run() error {
	firsts, err := filepath.Glob(d.cfg.Pattern)
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", d.cfg.Pattern, err)
	}
	if len(firsts) == 0 {
		return fmt.Errorf("no files match %q", d.cfg.Pattern)
	}
	sort.Strings(firsts)

	log.Printf("[Driver] %d timestep group(s) to aggregate", len(firsts))
	for _, first := range firsts {
		if err := d.runGroup(first); err != nil {
			return fmt.Errorf("group %s: %w", first, err)
		}
	}
	return nil
}

func (d *Driver) runGroup(first string) error {
	files, err := filepath.Glob(strings.Replace(first, d.cfg.TileToken, "*", 1))
	if err != nil {
		return err
	}
	sort.Strings(files)

	outPath := d.outputPath(first)
	if d.cfg.DryRun {
		log.Printf("[Driver] %s: %d tile(s) -> %s (dry run)", filepath.Base(first), len(files), outPath)
		return nil
	}

	log.Printf("[Driver] %s: aggregating %d tile(s)", filepath.Base(first), len(files))
	global, err := d.agg.Aggregate(files)
	if err != nil {
		return err
	}
	if err := ncio.WriteCDF(outPath, global); err != nil {
		return err
	}
	log.Printf("[Driver] wrote %s", outPath)

	if d.cfg.AfterEmit != nil {
		if err := d.cfg.AfterEmit(outPath, global); err != nil {
			return err
		}
	}
	return nil
}

// outputPath names the aggregated file after the representative tile
// file with the tile-index token collapsed to a single separator.
func (d *Driver) outputPath(first string) string {
	name := strings.Replace(filepath.Base(first), d.cfg.TileToken, "_", 1)
	dir := d.cfg.OutputDir
	if dir == "" {
		dir = filepath.Dir(first)
	}
	return filepath.Join(dir, name)
}
