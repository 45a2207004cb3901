package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/fogleman/gg"

	"workforce/internal/domain/analytics"
	"workforce/internal/domain/reports"
)

// ErrNoData is returned when a chart has nothing to plot.
var ErrNoData = errors.New("no data to chart")

var ErrUnknownChart = errors.New("unknown chart")

const (
	width  = 1000
	height = 640
)

// Names lists the charts Render knows, in rendering order.
var Names = []string{
	"departments",
	"salary-distribution",
	"average-salary",
	"performance-trends",
	"performance-distribution",
	"hiring-trends",
	"budget",
	"dashboard",
}

// Render writes the named chart for report as PNG.
func (r *Renderer) Render(name string, report *reports.OrganizationReport, w io.Writer) error {
	switch name {
	case "departments":
		return r.DepartmentDistribution(w, report.Departments)
	case "salary-distribution":
		return r.SalaryDistribution(w, report.Salaries)
	case "average-salary":
		return r.AverageSalary(w, report.Salaries)
	case "performance-trends":
		return r.PerformanceTrends(w, report.Performance.Monthly)
	case "performance-distribution":
		return r.PerformanceDistribution(w, report.Performance)
	case "hiring-trends":
		return r.HiringTrends(w, report.Hiring)
	case "budget":
		return r.BudgetShare(w, report.Budget)
	case "dashboard":
		return r.Dashboard(w, report)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}
}

// RenderAll writes every chart to dir as <name>.png and returns the paths
// written. Charts without data are skipped.
func (r *Renderer) RenderAll(dir string, report *reports.OrganizationReport) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var written []string
	for _, name := range Names {
		path := filepath.Join(dir, name+".png")
		f, err := os.Create(path)
		if err != nil {
			return written, err
		}
		err = r.Render(name, report, f)
		closeErr := f.Close()
		if errors.Is(err, ErrNoData) {
			_ = os.Remove(path)
			continue
		}
		if err != nil {
			return written, fmt.Errorf("render %s: %w", name, err)
		}
		if closeErr != nil {
			return written, closeErr
		}
		written = append(written, path)
	}
	return written, nil
}

func (r *Renderer) single(w io.Writer, draw func(p panel) error) error {
	dc := r.canvas(width, height)
	if err := draw(r.panel(dc, 0, 0, width, height)); err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func (r *Renderer) DepartmentDistribution(w io.Writer, stats []analytics.DepartmentStat) error {
	return r.single(w, func(p panel) error {
		if len(stats) == 0 {
			return ErrNoData
		}
		p.title("Employee Distribution by Department")
		drawDepartmentCounts(p, stats)
		return nil
	})
}

func drawDepartmentCounts(p panel, stats []analytics.DepartmentStat) {
	labels := make([]string, len(stats))
	values := make([]float64, len(stats))
	for i, s := range stats {
		labels[i] = s.Department
		values[i] = float64(s.Count)
	}
	p.bars(labels, values, count)
}

func (r *Renderer) SalaryDistribution(w io.Writer, salaries analytics.SalaryAnalysis) error {
	return r.single(w, func(p panel) error {
		if len(salaries.Salaries) == 0 {
			return ErrNoData
		}
		p.title("Overall Salary Distribution")
		p.histogram(salaries.Salaries, 20, money, salaries.Overall.Mean)
		return nil
	})
}

func (r *Renderer) AverageSalary(w io.Writer, salaries analytics.SalaryAnalysis) error {
	return r.single(w, func(p panel) error {
		if len(salaries.ByDepartment) == 0 {
			return ErrNoData
		}
		p.title("Average Salary by Department")
		groups := append([]analytics.SalaryGroup(nil), salaries.ByDepartment...)
		sort.Slice(groups, func(i, j int) bool { return groups[i].Mean > groups[j].Mean })
		labels := make([]string, len(groups))
		values := make([]float64, len(groups))
		for i, g := range groups {
			labels[i] = g.Name
			values[i] = g.Mean
		}
		p.hbars(labels, values, niceMax(values), money)
		return nil
	})
}

func (r *Renderer) PerformanceTrends(w io.Writer, monthly []analytics.MonthlyScore) error {
	return r.single(w, func(p panel) error {
		if len(monthly) == 0 {
			return ErrNoData
		}
		p.title("Average Performance by Month")
		months, data := monthlySeries(monthly)
		p.lines(months, data, 1, 5, score)
		return nil
	})
}

// monthlySeries pivots per-department monthly scores into one series per
// department over the union of months.
func monthlySeries(monthly []analytics.MonthlyScore) ([]string, []series) {
	monthIndex := map[string]int{}
	var months []string
	byDept := map[string]map[string]float64{}
	for _, m := range monthly {
		if _, ok := monthIndex[m.Month]; !ok {
			monthIndex[m.Month] = len(months)
			months = append(months, m.Month)
		}
		if byDept[m.Department] == nil {
			byDept[m.Department] = map[string]float64{}
		}
		byDept[m.Department][m.Month] = m.AvgScore
	}
	sort.Strings(months)

	depts := make([]string, 0, len(byDept))
	for d := range byDept {
		depts = append(depts, d)
	}
	sort.Strings(depts)

	out := make([]series, 0, len(depts))
	for _, d := range depts {
		values := make([]float64, len(months))
		for i, month := range months {
			v, ok := byDept[d][month]
			if !ok {
				v = math.NaN()
			}
			values[i] = v
		}
		out = append(out, series{name: d, values: values})
	}
	return months, out
}

func (r *Renderer) PerformanceDistribution(w io.Writer, perf analytics.PerformanceAnalysis) error {
	return r.single(w, func(p panel) error {
		if len(perf.Scores) == 0 {
			return ErrNoData
		}
		p.title("Performance Score Distribution")
		mean := 0.0
		for _, s := range perf.Scores {
			mean += s
		}
		p.histogram(perf.Scores, 20, score, mean/float64(len(perf.Scores)))
		return nil
	})
}

func (r *Renderer) HiringTrends(w io.Writer, hiring []analytics.HiringPoint) error {
	return r.single(w, func(p panel) error {
		if len(hiring) == 0 {
			return ErrNoData
		}
		p.title("Hiring Trends by Department")
		periods, data := hiringSeries(hiring)
		max := 0.0
		for _, s := range data {
			for _, v := range s.values {
				max = math.Max(max, v)
			}
		}
		p.lines(periods, data, 0, niceMax([]float64{max}), count)
		return nil
	})
}

func hiringSeries(hiring []analytics.HiringPoint) ([]string, []series) {
	periodSet := map[string]bool{}
	byDept := map[string]map[string]float64{}
	for _, h := range hiring {
		period := h.Period()
		periodSet[period] = true
		if byDept[h.Department] == nil {
			byDept[h.Department] = map[string]float64{}
		}
		byDept[h.Department][period] += float64(h.Hires)
	}
	periods := make([]string, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	depts := make([]string, 0, len(byDept))
	for d := range byDept {
		depts = append(depts, d)
	}
	sort.Strings(depts)

	out := make([]series, 0, len(depts))
	for _, d := range depts {
		values := make([]float64, len(periods))
		for i, period := range periods {
			values[i] = byDept[d][period]
		}
		out = append(out, series{name: d, values: values})
	}
	return periods, out
}

func (r *Renderer) BudgetShare(w io.Writer, budget analytics.BudgetAnalysis) error {
	return r.single(w, func(p panel) error {
		if len(budget.Departments) == 0 || budget.TotalSalary <= 0 {
			return ErrNoData
		}
		p.title("Salary Budget Distribution")
		drawBudget(p, budget)
		return nil
	})
}

func drawBudget(p panel, budget analytics.BudgetAnalysis) {
	labels := make([]string, len(budget.Departments))
	values := make([]float64, len(budget.Departments))
	for i, d := range budget.Departments {
		labels[i] = d.Department
		if d.OverCeiling {
			labels[i] += " (!)"
		}
		values[i] = d.TotalSalary
	}
	p.pie(labels, values)
}

// Dashboard combines six panels on a 2x3 grid.
func (r *Renderer) Dashboard(w io.Writer, report *reports.OrganizationReport) error {
	if len(report.Departments) == 0 {
		return ErrNoData
	}
	const cols, rows = 3, 2
	dw, dh := 1500, 900
	dc := r.canvas(dw, dh)
	cw, ch := float64(dw)/cols, float64(dh)/rows
	cell := func(i int) panel {
		return r.panel(dc, cw*float64(i%cols), ch*float64(i/cols), cw, ch)
	}

	p := cell(0)
	p.title("Employee Count by Department")
	drawDepartmentCounts(p, report.Departments)

	p = cell(1)
	p.title("Salary Distribution")
	if len(report.Salaries.Salaries) > 0 {
		p.histogram(report.Salaries.Salaries, 15, money, report.Salaries.Overall.Mean)
	} else {
		p.message("no salary data")
	}

	p = cell(2)
	p.title("Average Performance by Department")
	if len(report.Performance.ByDepartment) > 0 {
		labels := make([]string, len(report.Performance.ByDepartment))
		values := make([]float64, len(report.Performance.ByDepartment))
		for i, d := range report.Performance.ByDepartment {
			labels[i] = d.Department
			values[i] = d.AvgScore
		}
		p.bars(labels, values, score)
	} else {
		p.message("no reviews")
	}

	p = cell(3)
	p.title("Salary Budget Distribution")
	if report.Budget.TotalSalary > 0 {
		drawBudget(p, report.Budget)
	} else {
		p.message("no budget data")
	}

	p = cell(4)
	p.title("Top 5 Performers")
	if top := report.Performance.TopPerformers; len(top) > 0 {
		if len(top) > 5 {
			top = top[:5]
		}
		labels := make([]string, len(top))
		values := make([]float64, len(top))
		for i, t := range top {
			labels[i] = t.Name
			values[i] = t.AvgScore
		}
		p.hbars(labels, values, 5, score)
	} else {
		p.message("fewer than two reviews per employee")
	}

	p = cell(5)
	p.title("Employee Tenure Distribution")
	if len(report.Tenure.Employees) > 0 {
		years := make([]float64, len(report.Tenure.Employees))
		for i, e := range report.Tenure.Employees {
			years[i] = e.YearsEmployed
		}
		p.histogram(years, 10, func(v float64) string { return fmt.Sprintf("%.1fy", v) }, report.Tenure.AverageYears)
	} else {
		p.message("no tenure data")
	}

	drawGrid(dc, cols, rows, cw, ch)
	return dc.EncodePNG(w)
}

func drawGrid(dc *gg.Context, cols, rows int, cw, ch float64) {
	dc.SetHexColor("#DDDDDD")
	dc.SetLineWidth(1)
	for c := 1; c < cols; c++ {
		dc.DrawLine(cw*float64(c), 0, cw*float64(c), ch*float64(rows))
	}
	for r := 1; r < rows; r++ {
		dc.DrawLine(0, ch*float64(r), cw*float64(cols), ch*float64(r))
	}
	dc.Stroke()
}
