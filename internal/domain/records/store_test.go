package records_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"workforce/internal/domain/records"
	"workforce/internal/platform/db"
)

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)
	store := records.NewStore(tx)

	email := "pg-" + time.Now().Format("150405.000000") + "@example.com"
	id, err := store.CreateEmployee(ctx, sampleEmployee(email))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := store.GetEmployee(ctx, id)
	if err != nil || got.Salary != 95000 {
		t.Fatalf("unexpected employee %+v %v", got, err)
	}

	day := time.Date(2024, time.October, 7, 0, 0, 0, 0, time.UTC)
	first, err := store.UpsertAttendance(ctx, records.AttendanceRecord{EmployeeID: id, Date: day, HoursWorked: 8, Status: records.AttendancePresent})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := store.UpsertAttendance(ctx, records.AttendanceRecord{EmployeeID: id, Date: day, HoursWorked: 4, Status: records.AttendanceHalfDay})
	if err != nil || first != second {
		t.Fatalf("expected upsert to keep row %d, got %d %v", first, second, err)
	}

	if _, err := store.GetEmployee(ctx, -1); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
