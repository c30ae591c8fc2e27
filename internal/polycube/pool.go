package polycube

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/2767mr/polycubes/internal/arena"
	"github.com/2767mr/polycubes/internal/async"
)

type jobKind int

const (
	jobExpand jobKind = iota
	jobShutdown
)

type job struct {
	kind   jobKind
	id     int
	shape  *Rooted
	target int
}

type result struct {
	job   int
	count uint64
	err   error
}

// Config holds the pool settings applied by Options.
type Config struct {
	Cutoff     int
	QueueBound int
	Logger     *zap.SugaredLogger
	Sink       FoundFunc
}

func DefaultConfig() Config {
	return Config{
		Cutoff: DefaultCutoff,
		Logger: zap.NewNop().Sugar(),
	}
}

func (c Config) Validate() error {
	if c.Cutoff < minCutoff {
		return fmt.Errorf("%w: got %d", ErrInvalidCutoff, c.Cutoff)
	}
	return nil
}

type Option func(*Config)

// WithCutoff sets the shape size at which serial growth stops and jobs are handed out.
func WithCutoff(m int) Option {
	return func(c *Config) { c.Cutoff = m }
}

// WithQueueBound limits how many jobs may wait in the job queue.
func WithQueueBound(b int) Option {
	return func(c *Config) { c.QueueBound = b }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithSink receives every canonical shape found. It is called from worker
// goroutines and must be safe for concurrent use.
func WithSink(sink FoundFunc) Option {
	return func(c *Config) { c.Sink = sink }
}

// Pool counts polycubes with a fixed set of worker goroutines. Each worker owns
// its own arena; the job and result queues are the only shared state.
type Pool struct {
	config  Config
	log     *zap.SugaredLogger
	workers int

	jobs    *async.Queue[job]
	results *async.Queue[result]
	wg      sync.WaitGroup

	// serialises Count calls and guards the dispatcher arena
	dispatchMu sync.Mutex
	arena      *arena.Arena[Rooted]

	shutdown sync.Once
	closed   bool
}

func NewPool(workers int, opts ...Option) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoWorkers, workers)
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		config:  cfg,
		log:     cfg.Logger,
		workers: workers,
		jobs:    async.NewQueue[job](cfg.QueueBound),
		results: async.NewQueue[result](0),
		arena:   NewArena(),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			p.work(id)
		}(i)
	}

	p.log.Debugw("pool started", "workers", workers, "cutoff", cfg.Cutoff)
	return p, nil
}

func (p *Pool) Workers() int {
	return p.workers
}

func (p *Pool) work(id int) {
	a := NewArena()
	for {
		j := p.jobs.Dequeue()
		switch j.kind {
		case jobExpand:
			p.log.Debugw("expanding", "worker", id, "job", j.id)
			count, err := ExpandFrom(a, j.target, j.target, j.shape, p.config.Sink, nil)
			if err != nil {
				err = fmt.Errorf("job %d: %w", j.id, err)
			}
			p.results.Enqueue(result{job: j.id, count: count, err: err})
		case jobShutdown:
			p.log.Debugw("worker stopping", "worker", id)
			return
		}
	}
}

// Count returns the number of polycubes of size n up to rotation.
func (p *Pool) Count(n int) (uint64, error) {
	p.dispatchMu.Lock()
	defer p.dispatchMu.Unlock()

	if p.closed {
		return 0, ErrPoolClosed
	}
	if n < 1 {
		return 0, nil
	}
	if n > MaxCubes {
		return 0, fmt.Errorf("%w: %d > %d", ErrTooManyCubes, n, MaxCubes)
	}

	if n <= p.config.Cutoff {
		count, err := Enumerate(p.arena, n, n, p.config.Sink, nil)
		if err != nil {
			return 0, err
		}
		p.log.Infow("counted serially", "n", n, "count", count)
		return count, nil
	}

	issued := 0
	count, err := Enumerate(p.arena, n, p.config.Cutoff, p.config.Sink, func(r *Rooted) {
		p.jobs.Enqueue(job{kind: jobExpand, id: issued, shape: r.Clone(), target: n})
		issued++
	})
	if err != nil {
		err = fmt.Errorf("pre-pass to size %d: %w", p.config.Cutoff, err)
	}
	p.log.Debugw("jobs issued", "n", n, "jobs", issued)

	// Every issued job answers exactly once, so drain them all even after a failure.
	for i := 0; i < issued; i++ {
		r := p.results.Dequeue()
		count += r.count
		err = multierr.Append(err, r.err)
	}
	if err != nil {
		return 0, err
	}

	p.log.Infow("counted", "n", n, "count", count, "jobs", issued, "workers", p.workers)
	return count, nil
}

// Shutdown stops every worker and waits for them to exit. It is safe to call more
// than once.
func (p *Pool) Shutdown() {
	p.shutdown.Do(func() {
		p.dispatchMu.Lock()
		p.closed = true
		p.dispatchMu.Unlock()

		for i := 0; i < p.workers; i++ {
			p.jobs.Enqueue(job{kind: jobShutdown})
		}
		p.wg.Wait()
		p.log.Debugw("pool stopped", "workers", p.workers)
	})
}
