package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"workforce/internal/domain/analytics"
	"workforce/internal/domain/reports"
)

const dateLayout = "2006-01-02"

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func table(w io.Writer, header []string, rows [][]string) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.AppendBulk(rows)
	tw.Render()
}

func Departments(w io.Writer, stats []analytics.DepartmentStat) error {
	heading(w, "Department Analysis")
	if len(stats) == 0 {
		fmt.Fprintln(w, "No department data available.")
		return nil
	}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{s.Department, strconv.Itoa(s.Count), fmt.Sprintf("$%.2f", s.AvgSalary), fmt.Sprintf("$%.2f", s.MinSalary), fmt.Sprintf("$%.2f", s.MaxSalary)})
	}
	table(w, []string{"Department", "Employees", "Avg Salary", "Min Salary", "Max Salary"}, rows)
	return nil
}

func Salaries(w io.Writer, s analytics.SalaryAnalysis) error {
	heading(w, "Salary Analysis")
	fmt.Fprintf(w, "Overall average: $%.2f\nOverall median:  $%.2f\nStd deviation:   $%.2f\n\n", s.Overall.Mean, s.Overall.Median, s.Overall.StdDev)
	if len(s.ByDepartment) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(s.ByDepartment))
	for _, g := range s.ByDepartment {
		rows = append(rows, []string{g.Name, strconv.Itoa(g.Count), fmt.Sprintf("$%.2f", g.Mean), fmt.Sprintf("$%.2f", g.Median), fmt.Sprintf("$%.2f", g.StdDev)})
	}
	table(w, []string{"Department", "Employees", "Mean", "Median", "Std Dev"}, rows)
	fmt.Fprintln(w)
	rows = rows[:0]
	for _, g := range s.ByPosition {
		rows = append(rows, []string{g.Name, strconv.Itoa(g.Count), fmt.Sprintf("$%.2f", g.Mean), fmt.Sprintf("$%.2f", g.Median)})
	}
	table(w, []string{"Position", "Employees", "Mean", "Median"}, rows)
	return nil
}

func Performance(w io.Writer, perf analytics.PerformanceAnalysis) error {
	heading(w, "Performance Analysis")
	if len(perf.ByDepartment) == 0 {
		fmt.Fprintln(w, "No performance data available.")
		return nil
	}
	rows := make([][]string, 0, len(perf.ByDepartment))
	for _, d := range perf.ByDepartment {
		rows = append(rows, []string{d.Department, fmt.Sprintf("%.2f", d.AvgScore), fmt.Sprintf("%.1f", d.MinScore), fmt.Sprintf("%.1f", d.MaxScore), strconv.Itoa(d.EmployeeCount), strconv.Itoa(d.ReviewCount)})
	}
	table(w, []string{"Department", "Avg Score", "Min", "Max", "Employees", "Reviews"}, rows)

	groups := perf.ByGroup
	if len(groups) > 10 {
		groups = groups[:10]
	}
	rows = rows[:0]
	for _, g := range groups {
		rows = append(rows, []string{g.Department, g.Position, fmt.Sprintf("%.2f", g.AvgScore), strconv.Itoa(g.ReviewCount), fmt.Sprintf("%.1f", g.AvgGoalsMet)})
	}
	fmt.Fprintln(w)
	table(w, []string{"Department", "Position", "Avg Score", "Reviews", "Goals Met"}, rows)

	fmt.Fprintln(w, "\nTop performers (at least two reviews):")
	if len(perf.TopPerformers) == 0 {
		fmt.Fprintln(w, "  none yet")
	} else {
		rows = rows[:0]
		for i, p := range perf.TopPerformers {
			rows = append(rows, []string{strconv.Itoa(i+1), p.Name, p.Department, fmt.Sprintf("%.2f", p.AvgScore), strconv.Itoa(p.ReviewCount)})
		}
		table(w, []string{"#", "Name", "Department", "Avg Score", "Reviews"}, rows)
	}
	return Warnings(w, perf.Warnings)
}

func Attendance(w io.Writer, summary analytics.AttendanceSummary, limit int) error {
	heading(w, "Attendance Analysis")
	org := summary.Organization
	if !org.HasData {
		fmt.Fprintln(w, "No attendance data available.")
		return Warnings(w, summary.Warnings)
	}
	fmt.Fprintf(w, "Organization attendance rate: %.1f%% over %d recorded days\n\n", org.Rate*100, org.TotalDays)
	employees := summary.Employees
	if limit > 0 && len(employees) > limit {
		employees = employees[:limit]
	}
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{e.Name, e.Department, fmt.Sprintf("%.2f", e.AvgHours), fmt.Sprintf("%.1f", e.TotalOvertime), fmt.Sprintf("%.1f%%", e.Rate*100)})
	}
	table(w, []string{"Employee", "Department", "Avg Hours", "Overtime", "Attendance Rate"}, rows)
	return Warnings(w, summary.Warnings)
}

func Budget(w io.Writer, budget analytics.BudgetAnalysis) error {
	heading(w, "Budget Analysis")
	if len(budget.Departments) == 0 {
		fmt.Fprintln(w, "No budget data available.")
		return nil
	}
	rows := make([][]string, 0, len(budget.Departments))
	for _, d := range budget.Departments {
		ceiling := "-"
		if d.Ceiling != nil {
			ceiling = fmt.Sprintf("$%.0f", *d.Ceiling)
		}
		flag := ""
		if d.OverCeiling {
			flag = "OVER"
		}
		rows = append(rows, []string{d.Department, strconv.Itoa(d.EmployeeCount), fmt.Sprintf("$%.2f", d.TotalSalary), fmt.Sprintf("%.1f%%", d.Share*100), ceiling, flag})
	}
	table(w, []string{"Department", "Employees", "Total Budget", "Share", "Ceiling", ""}, rows)
	fmt.Fprintf(w, "\nTotal salary budget: $%.2f\n", budget.TotalSalary)
	if len(budget.OverCeiling) > 0 {
		fmt.Fprintf(w, "Over ceiling: %s\n", strings.Join(budget.OverCeiling, ", "))
	}
	return nil
}

func EmployeeReport(w io.Writer, report *reports.EmployeeReport) error {
	emp := report.Employee
	heading(w, "Employee Report: "+emp.FullName())
	fmt.Fprintf(w, "ID:          %d\nEmail:       %s\nDepartment:  %s\nPosition:    %s\nSalary:      $%.2f\nHire date:   %s\nStatus:      %s\n",
		emp.ID, emp.Email, emp.Department, emp.Position, emp.Salary, emp.HireDate.Format(dateLayout), emp.Status)

	perf := report.Performance
	if perf.ReviewCount > 0 {
		fmt.Fprintf(w, "\nAverage performance: %.2f over %d reviews (latest %.1f on %s)\n",
			perf.AverageScore, perf.ReviewCount, perf.Latest.Score, perf.Latest.Date.Format(dateLayout))
	} else {
		fmt.Fprintln(w, "\nNo performance reviews.")
	}
	recent := report.Reviews
	if len(recent) > 3 {
		recent = recent[:3]
	}
	for _, review := range recent {
		fmt.Fprintf(w, "  - %s: score %.1f, goals met %d\n", review.ReviewDate.Format(dateLayout), review.Score, review.GoalsMet)
	}

	att := report.Attendance
	if att.HasData {
		fmt.Fprintf(w, "Attendance rate: %.1f%% (last %d records), avg hours %.2f, overtime %.1f\n",
			att.Rate*100, att.TotalDays, att.AvgHours, att.TotalOvertime)
	} else {
		fmt.Fprintln(w, "No attendance records.")
	}
	return nil
}

// Organization prints every section of the organization report.
func Organization(w io.Writer, report *reports.OrganizationReport) error {
	steps := []func() error{
		func() error { return Departments(w, report.Departments) },
		func() error { return Salaries(w, report.Salaries) },
		func() error { return Performance(w, report.Performance) },
		func() error { return Attendance(w, report.Attendance, 10) },
		func() error { return Budget(w, report.Budget) },
		func() error { return Tenure(w, report.Tenure, 10) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "\nReport generated %s with %d warning(s).\n", report.GeneratedAt.Format("2006-01-02 15:04:05"), len(report.Warnings))
	return nil
}

func Tenure(w io.Writer, tenure analytics.TenureAnalysis, limit int) error {
	heading(w, "Tenure")
	if len(tenure.Employees) == 0 {
		fmt.Fprintln(w, "No active employees.")
		return nil
	}
	fmt.Fprintf(w, "Average tenure: %.1f years as of %s\n\n", tenure.AverageYears, tenure.AsOf.Format(dateLayout))
	employees := tenure.Employees
	if limit > 0 && len(employees) > limit {
		employees = employees[:limit]
	}
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{e.Name, e.Department, e.HireDate.Format(dateLayout), strconv.Itoa(e.DaysEmployed), fmt.Sprintf("%.1f", e.YearsEmployed)})
	}
	table(w, []string{"Employee", "Department", "Hired", "Days", "Years"}, rows)
	return nil
}

func Warnings(w io.Writer, warnings []analytics.Warning) error {
	if len(warnings) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\n%d row(s) skipped:\n", len(warnings))
	for _, warning := range warnings {
		fmt.Fprintf(w, "  - %s\n", warning.String())
	}
	return nil
}
