package records

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreEmployeeLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	emp := validEmployee()
	emp.Status = ""
	id, err := store.CreateEmployee(ctx, emp)
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}

	got, err := store.GetEmployee(ctx, id)
	if err != nil {
		t.Fatalf("get employee: %v", err)
	}
	if got.Status != EmployeeStatusActive {
		t.Fatalf("expected default status Active, got %q", got.Status)
	}

	dup := validEmployee()
	dup.Email = "ADA@example.com"
	if _, err := store.CreateEmployee(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}

	got.Salary = 130000
	if err := store.UpdateEmployee(ctx, got); err != nil {
		t.Fatalf("update employee: %v", err)
	}
	if err := store.SetEmployeeStatus(ctx, id, EmployeeStatusInactive); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := store.ListEmployees(ctx, EmployeeFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active employees, got %d", len(active))
	}
	all, _ := store.ListEmployees(ctx, EmployeeFilter{})
	if len(all) != 1 || all[0].Salary != 130000 {
		t.Fatalf("employee should be kept after deactivation: %+v", all)
	}

	if _, err := store.GetEmployee(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.SetEmployeeStatus(ctx, 999, EmployeeStatusTerminated); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStoreReviewsRequireEmployee(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	day := time.Date(2024, time.May, 5, 13, 0, 0, 0, time.UTC)

	if _, err := store.CreateReview(ctx, PerformanceReview{EmployeeID: 42, ReviewDate: day, Score: 3}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for dangling reference, got %v", err)
	}

	id, _ := store.CreateEmployee(ctx, validEmployee())
	later := day.AddDate(0, 2, 0)
	if _, err := store.CreateReview(ctx, PerformanceReview{EmployeeID: id, ReviewDate: later, Score: 4}); err != nil {
		t.Fatalf("create review: %v", err)
	}
	if _, err := store.CreateReview(ctx, PerformanceReview{EmployeeID: id, ReviewDate: day, Score: 3}); err != nil {
		t.Fatalf("create review: %v", err)
	}

	reviews, err := store.ListReviews(ctx, ReviewFilter{EmployeeID: id})
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(reviews) != 2 || !reviews[0].ReviewDate.Before(reviews[1].ReviewDate) {
		t.Fatalf("reviews should be ordered by date: %+v", reviews)
	}
	if reviews[0].ReviewDate.Hour() != 0 {
		t.Fatalf("review date should be truncated to the day, got %v", reviews[0].ReviewDate)
	}
}

func TestMemoryStoreAttendanceUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	id, _ := store.CreateEmployee(ctx, validEmployee())
	day := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)

	first, err := store.UpsertAttendance(ctx, AttendanceRecord{EmployeeID: id, Date: day, HoursWorked: 8, Status: AttendancePresent})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := store.UpsertAttendance(ctx, AttendanceRecord{EmployeeID: id, Date: day.Add(3 * time.Hour), HoursWorked: 4, Status: AttendanceHalfDay})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first != second {
		t.Fatalf("same-day record should be replaced, got ids %d and %d", first, second)
	}

	from := day
	records, _ := store.ListAttendance(ctx, AttendanceFilter{EmployeeID: id, From: &from})
	if len(records) != 1 || records[0].Status != AttendanceHalfDay {
		t.Fatalf("unexpected records: %+v", records)
	}

	before := day.AddDate(0, 0, -1)
	records, _ = store.ListAttendance(ctx, AttendanceFilter{To: &before})
	if len(records) != 0 {
		t.Fatalf("range filter should exclude later days, got %+v", records)
	}
}
