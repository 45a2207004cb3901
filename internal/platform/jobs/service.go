package jobs

import (
	"context"
	"time"

	"workforce/internal/platform/logger"
	"workforce/internal/platform/metrics"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

type Step struct {
	Name string
	Run  func(context.Context) (any, error)
}

type Result struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration"`
	Details  any           `json:"details,omitempty"`
	Err      error         `json:"-"`
}

// Runner executes batch steps one after another. A failing step is logged and
// recorded; later steps still run.
type Runner struct {
	log     *logger.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

func New(log *logger.Logger, collector *metrics.Collector) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{log: log, metrics: collector, now: time.Now}
}

func (r *Runner) Run(ctx context.Context, steps ...Step) []Result {
	results := make([]Result, 0, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Name: step.Name, Status: StatusSkipped, Err: err})
			continue
		}
		results = append(results, r.runStep(ctx, step))
	}
	return results
}

func (r *Runner) runStep(ctx context.Context, step Step) Result {
	start := r.now()
	details, err := step.Run(ctx)
	result := Result{Name: step.Name, Status: StatusCompleted, Duration: r.now().Sub(start), Details: details, Err: err}
	if err != nil {
		result.Status = StatusFailed
		r.log.Warn("job step failed", "step", step.Name, "durationMs", result.Duration.Milliseconds(), "err", err)
	} else {
		r.log.Info("job step completed", "step", step.Name, "durationMs", result.Duration.Milliseconds())
	}
	r.metrics.RecordJob(step.Name, err != nil, result.Duration)
	return result
}

// Failed returns the results whose step did not complete.
func Failed(results []Result) []Result {
	var out []Result
	for _, res := range results {
		if res.Status != StatusCompleted {
			out = append(out, res)
		}
	}
	return out
}
