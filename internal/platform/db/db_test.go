package db

import (
	"context"
	"testing"

	"workforce/internal/domain/records"
	"workforce/internal/platform/config"
)

func TestOpenSQLiteMigratesIdempotently(t *testing.T) {
	ctx := context.Background()
	conn, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := MigrateSQLite(ctx, conn); err != nil {
			t.Fatalf("migrate run %d: %v", i, err)
		}
	}

	var count int
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one applied migration, got %d", count)
	}
}

func TestOpenMemoryBackend(t *testing.T) {
	h, err := Open(context.Background(), config.Config{DatabaseURL: "memory:"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.Close()
	if h.Backend != config.BackendMemory || h.Store == nil {
		t.Fatalf("unexpected handle: %+v", h)
	}
	if err := h.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), config.Config{DatabaseURL: "mysql://root@localhost/db"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestResetClearsRecords(t *testing.T) {
	for _, url := range []string{"sqlite::memory:", "memory:"} {
		t.Run(url, func(t *testing.T) {
			ctx := context.Background()
			h, err := Open(ctx, config.Config{DatabaseURL: url, RunMigrations: true})
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer h.Close()

			if _, err := Seed(ctx, h.Store, nil, SeedOptions{Employees: 3, AttendanceDays: 5, Seed: 7}); err != nil {
				t.Fatalf("seed: %v", err)
			}
			if err := h.Reset(ctx); err != nil {
				t.Fatalf("reset: %v", err)
			}
			employees, err := h.Store.ListEmployees(ctx, records.EmployeeFilter{})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			attendance, err := h.Store.ListAttendance(ctx, records.AttendanceFilter{})
			if err != nil {
				t.Fatalf("list attendance: %v", err)
			}
			if len(employees) != 0 || len(attendance) != 0 {
				t.Fatalf("expected empty store, got %d employees %d attendance rows", len(employees), len(attendance))
			}
		})
	}
}
