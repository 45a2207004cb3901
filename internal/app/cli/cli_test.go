package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"workforce/internal/app/bootstrap"
	"workforce/internal/platform/config"
	"workforce/internal/platform/jobs"
)

func newCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	cfg := config.Config{DatabaseURL: "memory:", SeedAttendanceDays: 30, ReportAttendanceLimit: 30}
	rt, err := bootstrap.Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(rt.Close)
	var out bytes.Buffer
	c := New(rt, strings.NewReader(input), &out, Options{OutputDir: t.TempDir(), SeedEmployees: 8})
	if err := c.Prepare(context.Background()); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	return c, &out
}

func TestPrepareSeedsEmptyStore(t *testing.T) {
	_, out := newCLI(t, "")
	if !strings.Contains(out.String(), "Generated 8 sample employees") {
		t.Fatalf("expected seeding message, got %q", out.String())
	}
}

func TestMenuRunsChoicesUntilExit(t *testing.T) {
	c, out := newCLI(t, "1\n2\n3\n4\n5\n6\n\n6\n999999\n42\n0\n")
	if err := c.Menu(context.Background()); err != nil {
		t.Fatalf("menu: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Department Analysis",
		"Salary Analysis",
		"Performance Analysis",
		"Attendance from",
		"Budget Analysis",
		"Employee Report:",
		"Employee 999999 not found.",
		"Invalid choice.",
		"Goodbye!",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestMenuStopsAtEndOfInput(t *testing.T) {
	c, _ := newCLI(t, "1\n")
	if err := c.Menu(context.Background()); err != nil {
		t.Fatalf("menu: %v", err)
	}
}

func TestBatchWritesChartsAndPDFs(t *testing.T) {
	c, out := newCLI(t, "")
	results := c.Batch(context.Background())
	if failed := jobs.Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failed steps: %+v", failed)
	}

	for _, path := range []string{
		filepath.Join(c.outputDir, "charts", "dashboard.png"),
		filepath.Join(c.outputDir, "charts", "departments.png"),
		filepath.Join(c.outputDir, "organization_report.pdf"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s: %v", path, err)
		}
	}
	entries, err := os.ReadDir(filepath.Join(c.outputDir, "employees"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected employee PDFs, got %d (%v)", len(entries), err)
	}
	if !strings.Contains(out.String(), "Batch summary:") {
		t.Fatal("expected batch summary")
	}
}

func TestRegenerateReplacesData(t *testing.T) {
	c, out := newCLI(t, "")
	if err := c.Regenerate(context.Background()); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if !strings.Contains(out.String(), "Generated 8 employees") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
