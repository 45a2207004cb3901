package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"workforce/internal/app/bootstrap"
	"workforce/internal/domain/records"
	"workforce/internal/platform/jobs"
	"workforce/internal/render/charts"
	"workforce/internal/render/console"
	"workforce/internal/render/pdf"
)

const attendanceWindowDays = 30

type CLI struct {
	rt        *bootstrap.Runtime
	in        *bufio.Scanner
	out       io.Writer
	outputDir string
	seedCount int
	now       func() time.Time
}

type Options struct {
	OutputDir     string
	SeedEmployees int
}

func New(rt *bootstrap.Runtime, in io.Reader, out io.Writer, opts Options) *CLI {
	if opts.OutputDir == "" {
		opts.OutputDir = rt.Config.OutputDir
	}
	return &CLI{
		rt:        rt,
		in:        bufio.NewScanner(in),
		out:       out,
		outputDir: opts.OutputDir,
		seedCount: opts.SeedEmployees,
		now:       time.Now,
	}
}

// Prepare generates sample data when the store holds no employees.
func (c *CLI) Prepare(ctx context.Context) error {
	seeded, err := c.rt.EnsureSeeded(ctx, c.seedCount)
	if err != nil {
		return err
	}
	if seeded {
		fmt.Fprintf(c.out, "No employee data found. Generated %d sample employees.\n", c.seedCount)
	}
	return nil
}

func (c *CLI) Departments(ctx context.Context) error {
	stats, err := c.rt.Aggregator.DepartmentStats(ctx)
	if err != nil {
		return err
	}
	return console.Departments(c.out, stats)
}

func (c *CLI) Salaries(ctx context.Context) error {
	salaries, err := c.rt.Aggregator.SalaryAnalysis(ctx)
	if err != nil {
		return err
	}
	return console.Salaries(c.out, salaries)
}

func (c *CLI) Performance(ctx context.Context) error {
	perf, err := c.rt.Aggregator.PerformanceAnalysis(ctx, 5)
	if err != nil {
		return err
	}
	return console.Performance(c.out, perf)
}

func (c *CLI) Attendance(ctx context.Context) error {
	to := records.DateOnly(c.now())
	from := to.AddDate(0, 0, -attendanceWindowDays)
	summary, err := c.rt.Aggregator.AttendanceSummary(ctx, &from, &to)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "\nAttendance from %s to %s\n", from.Format(time.DateOnly), to.Format(time.DateOnly))
	return console.Attendance(c.out, summary, 10)
}

func (c *CLI) Budget(ctx context.Context) error {
	budget, err := c.rt.Aggregator.BudgetAnalysis(ctx, c.rt.Builder.Budgets())
	if err != nil {
		return err
	}
	return console.Budget(c.out, budget)
}

// EmployeeReport prints the report for id; zero selects the first employee.
func (c *CLI) EmployeeReport(ctx context.Context, id int64) error {
	if id == 0 {
		first, err := c.firstEmployee(ctx)
		if err != nil {
			return err
		}
		if first == 0 {
			fmt.Fprintln(c.out, "No employees found.")
			return nil
		}
		id = first
	}
	report, err := c.rt.Builder.EmployeeReport(ctx, id)
	if errors.Is(err, records.ErrNotFound) {
		fmt.Fprintf(c.out, "Employee %d not found.\n", id)
		return nil
	}
	if err != nil {
		return err
	}
	return console.EmployeeReport(c.out, report)
}

func (c *CLI) firstEmployee(ctx context.Context) (int64, error) {
	employees, err := c.rt.DB.Store.ListEmployees(ctx, records.EmployeeFilter{})
	if err != nil {
		return 0, err
	}
	if len(employees) == 0 {
		return 0, nil
	}
	return employees[0].ID, nil
}

// Charts renders every chart with data into <output>/charts.
func (c *CLI) Charts(ctx context.Context) ([]string, error) {
	report, err := c.rt.Builder.OrganizationReport(ctx)
	if err != nil {
		return nil, err
	}
	paths, err := c.rt.Charts.RenderAll(filepath.Join(c.outputDir, "charts"), report)
	for _, path := range paths {
		fmt.Fprintf(c.out, "  wrote %s\n", path)
	}
	return paths, err
}

func (c *CLI) CompleteAnalysis(ctx context.Context) error {
	fmt.Fprintln(c.out, "\nWORKFORCE COMPREHENSIVE ANALYSIS")
	report, err := c.rt.Builder.OrganizationReport(ctx)
	if err != nil {
		return err
	}
	if err := console.Organization(c.out, report); err != nil {
		return err
	}
	if err := console.Warnings(c.out, report.Warnings); err != nil {
		return err
	}
	return c.EmployeeReport(ctx, 0)
}

func (c *CLI) Regenerate(ctx context.Context) error {
	fmt.Fprintln(c.out, "Regenerating sample data...")
	result, err := c.rt.Regenerate(ctx, c.seedCount)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Generated %d employees, %d reviews and %d attendance records.\n",
		result.EmployeesCreated, result.ReviewsCreated, result.AttendanceCreated)
	return nil
}

// PDFs writes the organization report and one report per active employee.
func (c *CLI) PDFs(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return nil, err
	}
	report, err := c.rt.Builder.OrganizationReport(ctx)
	if err != nil {
		return nil, err
	}
	var dashboard bytes.Buffer
	if err := c.rt.Charts.Dashboard(&dashboard, report); err != nil {
		if !errors.Is(err, charts.ErrNoData) {
			return nil, err
		}
		dashboard.Reset()
	}

	var written []string
	orgPath := filepath.Join(c.outputDir, "organization_report.pdf")
	if err := pdf.WriteFile(orgPath, func(w io.Writer) error {
		return pdf.OrganizationReport(w, report, dashboard.Bytes())
	}); err != nil {
		return written, err
	}
	written = append(written, orgPath)

	employees, err := c.rt.DB.Store.ListEmployees(ctx, records.EmployeeFilter{ActiveOnly: true})
	if err != nil {
		return written, err
	}
	dir := filepath.Join(c.outputDir, "employees")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return written, err
	}
	for _, emp := range employees {
		empReport, err := c.rt.Builder.EmployeeReport(ctx, emp.ID)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, fmt.Sprintf("employee_%d.pdf", emp.ID))
		if err := pdf.WriteFile(path, func(w io.Writer) error {
			return pdf.EmployeeReport(w, empReport)
		}); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// Batch prints the complete analysis and writes every chart and PDF. Each
// stage runs as a job step so one failure does not stop the rest.
func (c *CLI) Batch(ctx context.Context) []jobs.Result {
	results := c.rt.Jobs.Run(ctx,
		jobs.Step{Name: "analysis", Run: func(ctx context.Context) (any, error) {
			return nil, c.CompleteAnalysis(ctx)
		}},
		jobs.Step{Name: "charts", Run: func(ctx context.Context) (any, error) {
			fmt.Fprintln(c.out, "\nRendering charts...")
			paths, err := c.Charts(ctx)
			return len(paths), err
		}},
		jobs.Step{Name: "pdf", Run: func(ctx context.Context) (any, error) {
			fmt.Fprintln(c.out, "\nWriting PDF reports...")
			paths, err := c.PDFs(ctx)
			return len(paths), err
		}},
	)

	fmt.Fprintln(c.out, "\nBatch summary:")
	for _, res := range results {
		line := fmt.Sprintf("  %-10s %-10s %s", res.Name, res.Status, res.Duration.Round(time.Millisecond))
		if res.Err != nil {
			line += "  " + res.Err.Error()
		}
		fmt.Fprintln(c.out, line)
	}
	return results
}

const menu = `
==================================================
WORKFORCE - MAIN MENU
==================================================
1. View Department Analysis
2. View Salary Analysis
3. View Performance Analysis
4. View Attendance Analysis
5. View Budget Analysis
6. Generate Employee Report
7. Generate Charts
8. Run Complete Analysis
9. Generate New Sample Data
0. Exit
--------------------------------------------------`

// Menu runs the interactive loop until the user exits or input ends.
func (c *CLI) Menu(ctx context.Context) error {
	for {
		fmt.Fprintln(c.out, menu)
		choice, ok := c.prompt("Enter your choice (0-9): ")
		if !ok || choice == "0" {
			fmt.Fprintln(c.out, "Exiting. Goodbye!")
			return c.in.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch choice {
		case "1":
			err = c.Departments(ctx)
		case "2":
			err = c.Salaries(ctx)
		case "3":
			err = c.Performance(ctx)
		case "4":
			err = c.Attendance(ctx)
		case "5":
			err = c.Budget(ctx)
		case "6":
			raw, _ := c.prompt("Enter employee ID (or press Enter for sample): ")
			id, parseErr := strconv.ParseInt(raw, 10, 64)
			if parseErr != nil || id <= 0 {
				id = 0
			}
			err = c.EmployeeReport(ctx, id)
		case "7":
			_, err = c.Charts(ctx)
		case "8":
			err = c.CompleteAnalysis(ctx)
		case "9":
			err = c.Regenerate(ctx)
		default:
			fmt.Fprintln(c.out, "Invalid choice. Please try again.")
		}
		if err != nil {
			c.rt.Log.Error("menu action failed", "choice", choice, "err", err)
			fmt.Fprintf(c.out, "An error occurred: %v\n", err)
		}
	}
}

func (c *CLI) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
