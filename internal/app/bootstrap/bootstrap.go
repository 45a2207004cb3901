package bootstrap

import (
	"context"
	"fmt"

	"workforce/internal/domain/analytics"
	"workforce/internal/domain/records"
	"workforce/internal/domain/reports"
	"workforce/internal/platform/config"
	"workforce/internal/platform/db"
	"workforce/internal/platform/jobs"
	"workforce/internal/platform/logger"
	"workforce/internal/platform/metrics"
	"workforce/internal/render/charts"
)

// Runtime holds the services shared by the CLI and the HTTP server.
type Runtime struct {
	Config     config.Config
	Log        *logger.Logger
	DB         *db.Handle
	Metrics    *metrics.Collector
	Aggregator *analytics.Aggregator
	Builder    *reports.Builder
	Charts     *charts.Renderer
	Jobs       *jobs.Runner
}

// Open connects to the configured backend and wires the services around it.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (*Runtime, error) {
	handle, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rt, err := FromHandle(cfg, log, handle)
	if err != nil {
		handle.Close()
		return nil, err
	}
	return rt, nil
}

func FromHandle(cfg config.Config, log *logger.Logger, handle *db.Handle) (*Runtime, error) {
	if log == nil {
		log = logger.Nop()
	}
	budgets, err := config.LoadBudgets(cfg.BudgetFile)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	renderer, err := charts.NewRenderer(cfg.ChartFont)
	if err != nil {
		return nil, fmt.Errorf("load chart font: %w", err)
	}

	collector := metrics.New()
	agg := analytics.New(handle.Store, analytics.WithLogger(log.With("component", "aggregator")))
	builder := reports.NewBuilder(handle.Store, agg, reports.Options{
		Budgets:         budgets,
		AttendanceLimit: cfg.ReportAttendanceLimit,
	})
	return &Runtime{
		Config:     cfg,
		Log:        log,
		DB:         handle,
		Metrics:    collector,
		Aggregator: agg,
		Builder:    builder,
		Charts:     renderer,
		Jobs:       jobs.New(log.With("component", "jobs"), collector),
	}, nil
}

// EnsureSeeded fills an empty store with count sample employees. It reports
// whether sample data was generated.
func (rt *Runtime) EnsureSeeded(ctx context.Context, count int) (bool, error) {
	if count <= 0 {
		return false, nil
	}
	existing, err := rt.DB.Store.ListEmployees(ctx, records.EmployeeFilter{})
	if err != nil {
		return false, fmt.Errorf("count employees: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}
	if _, err := rt.seed(ctx, count); err != nil {
		return false, err
	}
	return true, nil
}

// Regenerate clears the store and generates count new sample employees.
func (rt *Runtime) Regenerate(ctx context.Context, count int) (db.SeedResult, error) {
	if err := rt.DB.Reset(ctx); err != nil {
		return db.SeedResult{}, fmt.Errorf("clear records: %w", err)
	}
	return rt.seed(ctx, count)
}

func (rt *Runtime) seed(ctx context.Context, count int) (db.SeedResult, error) {
	result, err := db.Seed(ctx, rt.DB.Store, rt.Log, db.SeedOptions{
		Employees:      count,
		AttendanceDays: rt.Config.SeedAttendanceDays,
	})
	if err != nil {
		return result, fmt.Errorf("seed sample data: %w", err)
	}
	return result, nil
}

func (rt *Runtime) Close() {
	rt.DB.Close()
	rt.Log.Sync()
}
