package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	clientErrors    uint64
	totalDurationMs uint64

	mu   sync.Mutex
	jobs map[string]*jobStats
}

type jobStats struct {
	Runs       uint64 `json:"runs"`
	Failures   uint64 `json:"failures"`
	DurationMs uint64 `json:"durationMs"`
}

func New() *Collector {
	return &Collector{jobs: map[string]*jobStats{}}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.errorRequests, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordJob counts one run of a named batch step.
func (c *Collector) RecordJob(name string, failed bool, duration time.Duration) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	stats, ok := c.jobs[name]
	if !ok {
		stats = &jobStats{}
		c.jobs[name] = stats
	}
	stats.Runs++
	if failed {
		stats.Failures++
	}
	stats.DurationMs += uint64(duration.Milliseconds())
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	clientErrs := atomic.LoadUint64(&c.clientErrors)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	jobs := make(map[string]jobStats, len(c.jobs))
	for name, stats := range c.jobs {
		jobs[name] = *stats
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":     total,
		"errorsTotal":       errs,
		"clientErrorsTotal": clientErrs,
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"jobs":              jobs,
	}
}
