package stitch

import (
	"fmt"
	"sync"

	"github.com/wxgrid/stitch/internal/ncio"
)

// DefaultWorkers is the loader pool size when none is configured.
const DefaultWorkers = 10

// Pool is a bounded worker pool that parallelizes the I/O-bound load of
// tile files within one timestep group. It is created once at startup,
// shared across groups, and must be stopped by its owner on every exit
// path.
type Pool struct {
	queue    chan loadJob
	wg       sync.WaitGroup
	stopOnce sync.Once
}

type loadJob struct {
	path  string
	index int
	tiles []*ncio.Dataset
	errs  []error
	done  *sync.WaitGroup
}

// NewPool starts a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	p := &Pool{queue: make(chan loadJob)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.queue {
		ds, err := ncio.ReadTile(job.path)
		job.tiles[job.index] = ds
		job.errs[job.index] = err
		job.done.Done()
	}
}

// Load reads every file into memory and blocks until all loads finish.
// If any file fails, the whole group fails and no partial result is
// returned. Results keep the order of paths.
func (p *Pool) Load(paths []string) ([]*ncio.Dataset, error) {
	tiles := make([]*ncio.Dataset, len(paths))
	errs := make([]error, len(paths))
	var done sync.WaitGroup
	done.Add(len(paths))
	for i, path := range paths {
		p.queue <- loadJob{path: path, index: i, tiles: tiles, errs: errs, done: &done}
	}
	done.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrIncompleteGroup, paths[i], err)
		}
	}
	return tiles, nil
}

// Stop shuts the pool down and waits for its workers to exit. Safe to
// call more than once.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.queue)
		p.wg.Wait()
	})
}
