package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"workforce/internal/domain/reports"
)

const dateLayout = "2006-01-02"

func newDocument(title string, generated string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+generated)
	pdf.Ln(10)
	return pdf
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func line(pdf *gofpdf.Fpdf, format string, args ...any) {
	pdf.Cell(0, 6, fmt.Sprintf(format, args...))
	pdf.Ln(6)
}

// table draws a header row and body rows with the given column widths in mm.
func table(pdf *gofpdf.Fpdf, widths []float64, header []string, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			align := "L"
			if i > 0 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func optional(ok bool, format string, v float64) string {
	if !ok {
		return "no data"
	}
	return fmt.Sprintf(format, v)
}

// EmployeeReport writes a one-employee report as PDF.
func EmployeeReport(w io.Writer, report *reports.EmployeeReport) error {
	emp := report.Employee
	pdf := newDocument("Employee Report: "+emp.FullName(), report.GeneratedAt.Format("2006-01-02 15:04 MST"))

	section(pdf, "Employee")
	line(pdf, "ID: %d", emp.ID)
	line(pdf, "Email: %s", emp.Email)
	line(pdf, "Department: %s", emp.Department)
	line(pdf, "Position: %s", emp.Position)
	line(pdf, "Salary: $%.2f", emp.Salary)
	line(pdf, "Hire date: %s", emp.HireDate.Format(dateLayout))
	line(pdf, "Status: %s", emp.Status)

	perf := report.Performance
	section(pdf, "Performance")
	line(pdf, "Reviews: %d", perf.ReviewCount)
	line(pdf, "Average score: %s", optional(perf.ReviewCount > 0, "%.2f", perf.AverageScore))
	if len(report.Reviews) > 0 {
		rows := make([][]string, 0, len(report.Reviews))
		for _, r := range report.Reviews {
			rows = append(rows, []string{r.ReviewDate.Format(dateLayout), fmt.Sprintf("%.1f", r.Score), fmt.Sprintf("%d", r.GoalsMet)})
		}
		table(pdf, []float64{40, 30, 30}, []string{"Date", "Score", "Goals met"}, rows)
	}

	att := report.Attendance
	section(pdf, fmt.Sprintf("Attendance (last %d records)", len(report.RecentAttendance)))
	line(pdf, "Attendance rate: %s", optional(att.HasData, "%.1f%%", att.Rate*100))
	line(pdf, "Average hours: %s", optional(att.HasData, "%.2f", att.AvgHours))
	line(pdf, "Total overtime: %.2f", att.TotalOvertime)

	return pdf.Output(w)
}

// OrganizationReport writes the organization report as PDF. A non-nil
// dashboard PNG is placed on its own page.
func OrganizationReport(w io.Writer, report *reports.OrganizationReport, dashboard []byte) error {
	pdf := newDocument("Organization Report", report.GeneratedAt.Format("2006-01-02 15:04 MST"))

	section(pdf, "Salaries")
	overall := report.Salaries.Overall
	line(pdf, "Active employees: %d", overall.Count)
	line(pdf, "Mean $%.2f, median $%.2f, std dev $%.2f", overall.Mean, overall.Median, overall.StdDev)

	section(pdf, "Departments")
	var rows [][]string
	for _, d := range report.Budget.Departments {
		ceiling := "-"
		if d.Ceiling != nil {
			ceiling = fmt.Sprintf("%.0f", *d.Ceiling)
			if d.OverCeiling {
				ceiling += " OVER"
			}
		}
		rows = append(rows, []string{
			d.Department,
			fmt.Sprintf("%d", d.EmployeeCount),
			fmt.Sprintf("%.0f", d.AvgSalary),
			fmt.Sprintf("%.0f", d.TotalSalary),
			fmt.Sprintf("%.1f%%", d.Share*100),
			ceiling,
		})
	}
	table(pdf, []float64{38, 20, 30, 34, 22, 36}, []string{"Department", "Count", "Avg salary", "Total", "Share", "Ceiling"}, rows)

	section(pdf, "Performance")
	line(pdf, "Reviews: %d, average score %s", report.PerformanceTrend.ReviewCount,
		optional(report.PerformanceTrend.ReviewCount > 0, "%.2f", report.PerformanceTrend.AverageScore))
	rows = rows[:0]
	for _, p := range report.Performance.TopPerformers {
		rows = append(rows, []string{p.Name, p.Department, fmt.Sprintf("%.2f", p.AvgScore), fmt.Sprintf("%d", p.ReviewCount)})
	}
	if len(rows) > 0 {
		table(pdf, []float64{50, 40, 30, 25}, []string{"Top performer", "Department", "Avg score", "Reviews"}, rows)
	}

	section(pdf, "Attendance")
	org := report.Attendance.Organization
	line(pdf, "Attendance rate: %s", optional(org.HasData, "%.1f%%", org.Rate*100))
	line(pdf, "Average hours: %s", optional(org.HasData, "%.2f", org.AvgHours))
	line(pdf, "Total overtime: %.1f", org.TotalOvertime)

	section(pdf, "Tenure")
	line(pdf, "Average tenure: %.1f years", report.Tenure.AverageYears)

	if len(report.Warnings) > 0 {
		section(pdf, fmt.Sprintf("Warnings (%d)", len(report.Warnings)))
		for _, warning := range report.Warnings {
			line(pdf, "%s", warning.String())
		}
	}

	if len(dashboard) > 0 {
		pdf.AddPageFormat("L", gofpdf.SizeType{Wd: 210, Ht: 297})
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader("dashboard", opts, bytes.NewReader(dashboard))
		pdf.ImageOptions("dashboard", 10, 10, 277, 0, false, opts, 0, "")
	}

	return pdf.Output(w)
}

// WriteFile renders into path, creating the directory when needed.
func WriteFile(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
