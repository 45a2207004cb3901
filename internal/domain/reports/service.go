package reports

import (
	"context"
	"sort"
	"time"

	"workforce/internal/domain/analytics"
	"workforce/internal/domain/records"
)

const (
	DefaultAttendanceLimit = 30
	DefaultTopPerformers   = 10
)

type Options struct {
	// Budgets holds per-department salary ceilings; nil means none.
	Budgets map[string]float64
	// AttendanceLimit caps the attendance rows in an employee report.
	AttendanceLimit int
	TopPerformers   int
}

// Builder composes aggregator outputs into report objects.
type Builder struct {
	store records.Reader
	agg   *analytics.Aggregator
	opts  Options
}

func NewBuilder(store records.Reader, agg *analytics.Aggregator, opts Options) *Builder {
	if opts.AttendanceLimit <= 0 {
		opts.AttendanceLimit = DefaultAttendanceLimit
	}
	if opts.TopPerformers <= 0 {
		opts.TopPerformers = DefaultTopPerformers
	}
	return &Builder{store: store, agg: agg, opts: opts}
}

func (b *Builder) Aggregator() *analytics.Aggregator {
	return b.agg
}

func (b *Builder) Budgets() map[string]float64 {
	return b.opts.Budgets
}

type EmployeeReport struct {
	GeneratedAt      time.Time                   `json:"generatedAt"`
	Employee         records.Employee            `json:"employee"`
	Performance      analytics.PerformanceTrend  `json:"performance"`
	Reviews          []records.PerformanceReview `json:"reviews"`
	RecentAttendance []records.AttendanceRecord  `json:"recentAttendance"`
	Attendance       analytics.AttendanceStats   `json:"attendance"`
}

// EmployeeReport builds the report for one employee. When id does not
// resolve it returns a nil report and an error wrapping records.ErrNotFound.
func (b *Builder) EmployeeReport(ctx context.Context, id int64) (*EmployeeReport, error) {
	emp, err := b.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	trend, err := b.agg.PerformanceTrend(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := b.store.ListReviews(ctx, records.ReviewFilter{EmployeeID: id})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].ReviewDate.After(reviews[j].ReviewDate) })

	rows, stats, err := b.agg.RecentAttendance(ctx, id, b.opts.AttendanceLimit)
	if err != nil {
		return nil, err
	}

	if reviews == nil {
		reviews = []records.PerformanceReview{}
	}
	if rows == nil {
		rows = []records.AttendanceRecord{}
	}
	return &EmployeeReport{
		GeneratedAt:      b.agg.Now().UTC(),
		Employee:         emp,
		Performance:      trend,
		Reviews:          reviews,
		RecentAttendance: rows,
		Attendance:       stats,
	}, nil
}

type OrganizationReport struct {
	GeneratedAt      time.Time                     `json:"generatedAt"`
	Departments      []analytics.DepartmentStat    `json:"departments"`
	Salaries         analytics.SalaryAnalysis      `json:"salaries"`
	Budget           analytics.BudgetAnalysis      `json:"budget"`
	PerformanceTrend analytics.PerformanceTrend    `json:"performanceTrend"`
	Performance      analytics.PerformanceAnalysis `json:"performance"`
	Attendance       analytics.AttendanceSummary   `json:"attendance"`
	Hiring           []analytics.HiringPoint       `json:"hiring"`
	Tenure           analytics.TenureAnalysis      `json:"tenure"`
	Warnings         []analytics.Warning           `json:"warnings"`
}

// OrganizationReport runs every aggregation and gathers the warnings they
// raised. Rows skipped by more than one aggregation are reported once.
func (b *Builder) OrganizationReport(ctx context.Context) (*OrganizationReport, error) {
	var (
		report = &OrganizationReport{GeneratedAt: b.agg.Now().UTC()}
		err    error
	)
	if report.Departments, err = b.agg.DepartmentStats(ctx); err != nil {
		return nil, err
	}
	if report.Salaries, err = b.agg.SalaryAnalysis(ctx); err != nil {
		return nil, err
	}
	if report.Budget, err = b.agg.BudgetAnalysis(ctx, b.opts.Budgets); err != nil {
		return nil, err
	}
	if report.PerformanceTrend, err = b.agg.PerformanceTrend(ctx, 0); err != nil {
		return nil, err
	}
	if report.Performance, err = b.agg.PerformanceAnalysis(ctx, b.opts.TopPerformers); err != nil {
		return nil, err
	}
	if report.Attendance, err = b.agg.AttendanceSummary(ctx, nil, nil); err != nil {
		return nil, err
	}
	if report.Hiring, err = b.agg.HiringTrends(ctx); err != nil {
		return nil, err
	}
	if report.Tenure, err = b.agg.Tenure(ctx); err != nil {
		return nil, err
	}
	report.Warnings = mergeWarnings(report.PerformanceTrend.Warnings, report.Performance.Warnings, report.Attendance.Warnings)
	return report, nil
}

func mergeWarnings(groups ...[]analytics.Warning) []analytics.Warning {
	type key struct {
		entity string
		id     int64
	}
	seen := map[key]bool{}
	out := []analytics.Warning{}
	for _, group := range groups {
		for _, w := range group {
			k := key{w.Entity, w.ID}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, w)
		}
	}
	return out
}
