package stitch

import (
	"fmt"
	"log"

	"github.com/wxgrid/stitch/internal/cache"
	"github.com/wxgrid/stitch/internal/grid"
	"github.com/wxgrid/stitch/internal/ncio"
)

// AggregatorConfig contains configuration for the aggregator.
type AggregatorConfig struct {
	Pool           *Pool // required; owned by the caller
	PlanCacheSize  int   // default 1024
	VerifyCoverage bool  // report global cells no tile interior claims
}

// Aggregator produces one fully populated global dataset per timestep
// group. It holds no per-group state; the plan cache persists across
// groups because worker layouts repeat every timestep.
type Aggregator struct {
	pool           *Pool
	plans          *cache.Cache[Plan]
	verifyCoverage bool
}

// NewAggregator creates an aggregator using the given loader pool.
func NewAggregator(cfg AggregatorConfig) (*Aggregator, error) {
	if cfg.Pool == nil {
		return nil, fmt.Errorf("aggregator requires a loader pool")
	}
	if cfg.PlanCacheSize <= 0 {
		cfg.PlanCacheSize = 1024
	}
	plans, err := cache.New[Plan](cfg.PlanCacheSize)
	if err != nil {
		return nil, err
	}
	return &Aggregator{
		pool:           cfg.Pool,
		plans:          plans,
		verifyCoverage: cfg.VerifyCoverage,
	}, nil
}

// Aggregate loads every tile file in the group in parallel, blocks
// until all are in memory, then builds the global template from the
// first tile and copies each tile's interior into it. Copy order does
// not matter: interiors are disjoint by the decomposition's covering
// invariant.
func (a *Aggregator) Aggregate(paths []string) (*ncio.Dataset, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no tile files in group", ErrIncompleteGroup)
	}
	tiles, err := a.pool.Load(paths)
	if err != nil {
		return nil, err
	}
	return a.AggregateTiles(tiles)
}

// AggregateTiles assembles already-loaded tiles. The first tile is the
// representative the template is built from.
func (a *Aggregator) AggregateTiles(tiles []*ncio.Dataset) (*ncio.Dataset, error) {
	if len(tiles) == 0 {
		return nil, fmt.Errorf("%w: no tiles to aggregate", ErrIncompleteGroup)
	}
	global, dom, err := a.buildTemplate(tiles[0])
	if err != nil {
		return nil, err
	}

	var cov *coverage
	if a.verifyCoverage {
		cov = newCoverage(dom)
	}

	for _, tile := range tiles {
		if err := a.copyTile(global, dom, tile, cov); err != nil {
			return nil, fmt.Errorf("tile %s: %w", tile.Path, err)
		}
	}

	if cov != nil {
		if n := cov.uncovered(); n > 0 {
			log.Printf("[Aggregator] %d of %d global cells not covered by any tile interior; they keep the zero fill",
				n, cov.total())
		}
	}
	return global, nil
}

func (a *Aggregator) copyTile(global *ncio.Dataset, dom grid.Extents, tile *ncio.Dataset, cov *coverage) error {
	mem, err := tile.Extents(grid.SectionMemory)
	if err != nil {
		return err
	}
	til, err := tile.Extents(grid.SectionTile)
	if err != nil {
		return err
	}
	x, y, z, err := grid.CopyRanges(til, mem, dom)
	if err != nil {
		return err
	}
	if cov != nil {
		cov.mark(x.Global, y.Global)
	}

	for _, name := range tile.Names {
		v := tile.Vars[name]
		gv, ok := global.Vars[name]
		if !ok {
			return fmt.Errorf("%w: variable %q not present in the representative tile",
				grid.ErrExtentMismatch, name)
		}
		plan, err := a.planFor(name, v.Dims)
		if err != nil {
			return err
		}
		dst, src := plan.Ranges(x, y, z, v.Data.Shape)
		if err := grid.CopyRegion(gv.Data, dst, v.Data, src); err != nil {
			return fmt.Errorf("variable %q: %w", name, err)
		}
	}
	return nil
}

func (a *Aggregator) planFor(name string, dims []string) (Plan, error) {
	key := planKey(name, dims)
	if p, ok := a.plans.Get(key); ok {
		return p, nil
	}
	p, err := PlanFor(dims)
	if err != nil {
		return Plan{}, err
	}
	a.plans.Add(key, p)
	return p, nil
}
