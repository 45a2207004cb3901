package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"workforce/internal/domain/analytics"
	"workforce/internal/domain/records"
)

func seedStore(t *testing.T) (*records.MemoryStore, int64) {
	t.Helper()
	ctx := context.Background()
	store := records.NewMemoryStore()
	id, err := store.CreateEmployee(ctx, records.Employee{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Department: "Engineering", Position: "Tech Lead", Salary: 70000,
		HireDate: time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if _, err := store.CreateEmployee(ctx, records.Employee{
		FirstName: "Alan", LastName: "Turing", Email: "alan@example.com",
		Department: "Engineering", Position: "Software Engineer", Salary: 90000,
		HireDate: time.Date(2022, time.July, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	for i, score := range []float64{3.0, 4.5} {
		if _, err := store.CreateReview(ctx, records.PerformanceReview{
			EmployeeID: id, ReviewDate: time.Date(2024, time.Month(3+i*6), 1, 0, 0, 0, 0, time.UTC), Score: score, GoalsMet: 6,
		}); err != nil {
			t.Fatalf("create review: %v", err)
		}
	}
	statuses := []string{records.AttendancePresent, records.AttendancePresent, records.AttendanceAbsent}
	for i, status := range statuses {
		if _, err := store.UpsertAttendance(ctx, records.AttendanceRecord{
			EmployeeID: id, Date: time.Date(2024, time.October, 7+i, 0, 0, 0, 0, time.UTC), Status: status, HoursWorked: 8,
		}); err != nil {
			t.Fatalf("upsert attendance: %v", err)
		}
	}
	return store, id
}

func newBuilder(store *records.MemoryStore, opts Options) *Builder {
	clock := func() time.Time { return time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC) }
	return NewBuilder(store, analytics.New(store, analytics.WithClock(clock)), opts)
}

func TestEmployeeReport(t *testing.T) {
	store, id := seedStore(t)
	report, err := newBuilder(store, Options{}).EmployeeReport(context.Background(), id)
	if err != nil {
		t.Fatalf("employee report: %v", err)
	}
	if report.Employee.ID != id || report.Performance.ReviewCount != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Reviews[0].Score != 4.5 {
		t.Fatalf("reviews should be newest first: %+v", report.Reviews)
	}

	metrics := report.Metrics()
	if metrics["avgPerformance"].(float64) != 3.75 {
		t.Fatalf("unexpected average performance: %v", metrics["avgPerformance"])
	}
	if metrics["latestScore"].(float64) != 4.5 {
		t.Fatalf("unexpected latest score: %v", metrics["latestScore"])
	}
	rate := metrics["attendanceRate"].(float64)
	if rate < 0.666 || rate > 0.667 {
		t.Fatalf("expected attendance rate 2/3, got %v", rate)
	}
	if metrics["employee"].(map[string]any)["name"] != "Ada Lovelace" {
		t.Fatalf("unexpected employee metrics: %+v", metrics["employee"])
	}
}

func TestEmployeeReportAttendanceLimit(t *testing.T) {
	store, id := seedStore(t)
	report, err := newBuilder(store, Options{AttendanceLimit: 1}).EmployeeReport(context.Background(), id)
	if err != nil {
		t.Fatalf("employee report: %v", err)
	}
	if len(report.RecentAttendance) != 1 || report.RecentAttendance[0].Status != records.AttendanceAbsent {
		t.Fatalf("expected the latest row only, got %+v", report.RecentAttendance)
	}
	if report.Attendance.Rate != 0 || !report.Attendance.HasData {
		t.Fatalf("unexpected limited stats: %+v", report.Attendance)
	}
}

func TestEmployeeReportWithoutData(t *testing.T) {
	store, _ := seedStore(t)
	employees, _ := store.ListEmployees(context.Background(), records.EmployeeFilter{})
	report, err := newBuilder(store, Options{}).EmployeeReport(context.Background(), employees[1].ID)
	if err != nil {
		t.Fatalf("employee report: %v", err)
	}
	metrics := report.Metrics()
	if metrics["avgPerformance"] != nil || metrics["attendanceRate"] != nil {
		t.Fatalf("metrics without data should be nil: %+v", metrics)
	}
	if metrics["totalReviews"].(int) != 0 {
		t.Fatalf("unexpected review count: %v", metrics["totalReviews"])
	}
}

func TestEmployeeReportNotFound(t *testing.T) {
	store, _ := seedStore(t)
	report, err := newBuilder(store, Options{}).EmployeeReport(context.Background(), 404)
	if !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if report != nil {
		t.Fatalf("expected no report, got %+v", report)
	}
}

func TestOrganizationReport(t *testing.T) {
	store, _ := seedStore(t)
	store.PutReview(records.PerformanceReview{EmployeeID: 500, ReviewDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), Score: 2})

	report, err := newBuilder(store, Options{Budgets: map[string]float64{"Engineering": 100000}}).OrganizationReport(context.Background())
	if err != nil {
		t.Fatalf("organization report: %v", err)
	}
	if len(report.Departments) != 1 || report.Departments[0].AvgSalary != 80000 {
		t.Fatalf("unexpected departments: %+v", report.Departments)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Kind != analytics.KindDataInconsistency {
		t.Fatalf("expected one merged warning, got %+v", report.Warnings)
	}
	if !report.GeneratedAt.Equal(time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %v", report.GeneratedAt)
	}

	metrics := report.Metrics()
	if metrics["employeeCount"].(int) != 2 || metrics["totalPayroll"].(float64) != 160000 {
		t.Fatalf("unexpected headcount metrics: %+v", metrics)
	}
	if over := metrics["budgetOverCeiling"].([]string); len(over) != 1 || over[0] != "Engineering" {
		t.Fatalf("expected Engineering over ceiling, got %v", over)
	}
	if metrics["warningCount"].(int) != 1 || metrics["totalHires"].(int) != 2 {
		t.Fatalf("unexpected counters: %+v", metrics)
	}
	if metrics["attendanceRate"] == nil {
		t.Fatal("attendance rate should be present")
	}
}

func TestOrganizationReportEmptyStore(t *testing.T) {
	report, err := newBuilder(records.NewMemoryStore(), Options{}).OrganizationReport(context.Background())
	if err != nil {
		t.Fatalf("organization report: %v", err)
	}
	metrics := report.Metrics()
	if metrics["employeeCount"].(int) != 0 || metrics["avgPerformance"] != nil || metrics["attendanceRate"] != nil {
		t.Fatalf("unexpected metrics for an empty store: %+v", metrics)
	}
}
