// Package bench times hash table inserts under generated string sets.
package bench

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lth/hashflood/internal/attacks"
	"github.com/lth/hashflood/internal/hashmodel"
	"github.com/lth/hashflood/internal/table"
)

// Case is one cell of the benchmark grid.
type Case struct {
	Collider   string
	Count      int
	Iterations int

	// Model hashes the table. When nil the collider's own model is used,
	// or DJBX31A for colliders without one.
	Model hashmodel.Model

	// Strings replaces generation; Collider then only labels the case.
	Strings []string
}

type Result struct {
	Collider   string
	Model      string
	Count      int
	Length     int
	Iterations int
	Min        time.Duration
	Mean       time.Duration
	Max        time.Duration

	// Comparisons counts chain entries visited while filling one table. Every
	// iteration inserts the same set, so it is equal across iterations.
	Comparisons          uint64
	ComparisonsPerInsert float64
	MaxChain             int

	Duration time.Duration
}

type Progress struct {
	Completed   uint64
	Total       uint64
	ElapsedTime time.Duration
}

type sample struct {
	elapsed     time.Duration
	comparisons uint64
	maxChain    int
}

type Runner struct {
	workers    int
	logger     *logrus.Entry
	opts       []attacks.Option
	completed  uint64
	total      uint64
	startTime  time.Time
	progressCb func(Progress)
}

// New returns a runner filling tables on workers goroutines. opts are
// passed to attacks.Resolve for every case.
func New(workers int, logger *logrus.Entry, opts ...attacks.Option) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{
		workers: workers,
		logger:  logger,
		opts:    opts,
	}
}

func (r *Runner) SetProgressCallback(cb func(Progress)) {
	r.progressCb = cb
}

func (r *Runner) Workers() int {
	return r.workers
}

func (r *Runner) reportProgress() {
	if r.progressCb == nil {
		return
	}

	r.progressCb(Progress{
		Completed:   atomic.LoadUint64(&r.completed),
		Total:       atomic.LoadUint64(&r.total),
		ElapsedTime: time.Since(r.startTime),
	})
}

// Run generates the case's strings once and fills a fresh table with them
// Iterations times, spread over the runner's workers.
func (r *Runner) Run(ctx context.Context, c Case) (Result, error) {
	r.startTime = time.Now()
	atomic.StoreUint64(&r.completed, 0)

	iterations := c.Iterations
	if iterations < 1 {
		iterations = 1
	}
	atomic.StoreUint64(&r.total, uint64(iterations))

	strings, model, err := r.prepare(c)
	if err != nil {
		return Result{}, err
	}

	logger := r.logger.WithFields(logrus.Fields{
		"collider": c.Collider,
		"count":    len(strings),
		"model":    model.Name(),
	})
	logger.Debug("benchmark case starting")

	duration := insertDuration(c.Collider, len(strings))
	comparisons := comparisonsTotal(c.Collider, len(strings))

	tasks := make(chan int, iterations)
	for i := 0; i < iterations; i++ {
		tasks <- i
	}
	close(tasks)

	samples := make(chan sample, iterations)
	var wg sync.WaitGroup

	for w := 0; w < min(r.workers, iterations); w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-tasks:
					if !ok {
						return
					}

					s := fill(model, strings)
					duration.Update(s.elapsed.Seconds())
					comparisons.Add(int(s.comparisons))
					samples <- s

					logger.WithFields(logrus.Fields{
						"worker":    worker,
						"iteration": i,
						"elapsed":   s.elapsed,
					}).Debug("table filled")

					atomic.AddUint64(&r.completed, 1)
					r.reportProgress()
				}
			}
		}(w)
	}

	wg.Wait()
	close(samples)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	result := Result{
		Collider:   c.Collider,
		Model:      model.Name(),
		Count:      len(strings),
		Iterations: iterations,
		Duration:   time.Since(r.startTime),
	}
	if len(strings) > 0 {
		result.Length = len(strings[0])
	}

	var total time.Duration
	for s := range samples {
		if result.Min == 0 || s.elapsed < result.Min {
			result.Min = s.elapsed
		}
		result.Max = max(result.Max, s.elapsed)
		total += s.elapsed
		result.Comparisons = s.comparisons
		result.MaxChain = s.maxChain
	}
	result.Mean = total / time.Duration(iterations)
	if result.Count > 0 {
		result.ComparisonsPerInsert = float64(result.Comparisons) / float64(result.Count)
	}

	logger.WithField("mean", result.Mean).Info("benchmark case done")
	return result, nil
}

func (r *Runner) prepare(c Case) ([]string, hashmodel.Model, error) {
	strings, model := c.Strings, c.Model

	if strings == nil {
		collider, err := attacks.Resolve(c.Collider, r.opts...)
		if err != nil {
			return nil, nil, err
		}
		if strings, err = collider.Generate(c.Count); err != nil {
			return nil, nil, errors.Wrapf(err, "generate %s", c.Collider)
		}
		if t, ok := collider.(attacks.Targeted); ok && model == nil {
			model = t.Model()
		}
	}

	if model == nil {
		model = hashmodel.DJBX31A{}
	}
	return strings, model, nil
}

func fill(model hashmodel.Model, strings []string) sample {
	start := time.Now()
	t := table.New(model, 0)
	for _, s := range strings {
		t.Put(s, s)
	}
	return sample{
		elapsed:     time.Since(start),
		comparisons: t.Comparisons(),
		maxChain:    t.MaxChain(),
	}
}

func insertDuration(collider string, count int) *metrics.Histogram {
	return metrics.GetOrCreateHistogram(fmt.Sprintf(`hashflood_insert_duration_seconds{collider=%q,count="%d"}`, collider, count))
}

func comparisonsTotal(collider string, count int) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`hashflood_key_comparisons_total{collider=%q,count="%d"}`, collider, count))
}
