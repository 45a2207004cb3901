package reports

import (
	"time"

	"workforce/internal/domain/analytics"
)

const dateLayout = "2006-01-02"

// Metrics flattens the report into key/value data for renderers and export.
// Figures that have no data are nil rather than zero.
func (r *EmployeeReport) Metrics() map[string]any {
	emp := r.Employee
	metrics := map[string]any{
		"generatedAt": r.GeneratedAt.Format(time.RFC3339),
		"employee": map[string]any{
			"id":         emp.ID,
			"name":       emp.FullName(),
			"email":      emp.Email,
			"department": emp.Department,
			"position":   emp.Position,
			"salary":     emp.Salary,
			"hireDate":   emp.HireDate.Format(dateLayout),
			"status":     emp.Status,
		},
		"totalReviews":     r.Performance.ReviewCount,
		"avgPerformance":   nil,
		"latestScore":      nil,
		"performanceTrend": trendSeries(r.Performance.Points),
		"attendanceDays":   r.Attendance.TotalDays,
		"attendanceRate":   nil,
		"avgHoursWorked":   nil,
		"totalOvertime":    r.Attendance.TotalOvertime,
	}
	if r.Performance.ReviewCount > 0 {
		metrics["avgPerformance"] = r.Performance.AverageScore
		metrics["latestScore"] = r.Performance.Latest.Score
	}
	if r.Attendance.HasData {
		metrics["attendanceRate"] = r.Attendance.Rate
		metrics["avgHoursWorked"] = r.Attendance.AvgHours
	}
	return metrics
}

func (r *OrganizationReport) Metrics() map[string]any {
	departments := make([]map[string]any, 0, len(r.Departments))
	for _, d := range r.Departments {
		departments = append(departments, map[string]any{
			"department": d.Department,
			"count":      d.Count,
			"avgSalary":  d.AvgSalary,
			"minSalary":  d.MinSalary,
			"maxSalary":  d.MaxSalary,
		})
	}
	top := make([]map[string]any, 0, len(r.Performance.TopPerformers))
	for _, p := range r.Performance.TopPerformers {
		top = append(top, map[string]any{
			"employeeId": p.EmployeeID,
			"name":       p.Name,
			"department": p.Department,
			"avgScore":   p.AvgScore,
			"reviews":    p.ReviewCount,
		})
	}

	metrics := map[string]any{
		"generatedAt":       r.GeneratedAt.Format(time.RFC3339),
		"employeeCount":     r.Salaries.Overall.Count,
		"departmentCount":   len(r.Departments),
		"departments":       departments,
		"totalPayroll":      r.Budget.TotalSalary,
		"avgSalary":         r.Salaries.Overall.Mean,
		"medianSalary":      r.Salaries.Overall.Median,
		"salaryStdDev":      r.Salaries.Overall.StdDev,
		"budgetOverCeiling": r.Budget.OverCeiling,
		"reviewCount":       r.PerformanceTrend.ReviewCount,
		"avgPerformance":    nil,
		"performanceTrend":  trendSeries(r.PerformanceTrend.Points),
		"topPerformers":     top,
		"attendanceRate":    nil,
		"avgHoursWorked":    nil,
		"totalOvertime":     r.Attendance.Organization.TotalOvertime,
		"avgTenureYears":    r.Tenure.AverageYears,
		"totalHires":        totalHires(r.Hiring),
		"warningCount":      len(r.Warnings),
	}
	if r.PerformanceTrend.ReviewCount > 0 {
		metrics["avgPerformance"] = r.PerformanceTrend.AverageScore
	}
	if r.Attendance.Organization.HasData {
		metrics["attendanceRate"] = r.Attendance.Organization.Rate
		metrics["avgHoursWorked"] = r.Attendance.Organization.AvgHours
	}
	return metrics
}

func trendSeries(points []analytics.TrendPoint) []map[string]any {
	out := make([]map[string]any, 0, len(points))
	for _, p := range points {
		out = append(out, map[string]any{"date": p.Date.Format(dateLayout), "score": p.Score})
	}
	return out
}

func totalHires(points []analytics.HiringPoint) int {
	n := 0
	for _, p := range points {
		n += p.Hires
	}
	return n
}
