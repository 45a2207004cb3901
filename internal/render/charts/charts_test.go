package charts

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"workforce/internal/domain/analytics"
	"workforce/internal/domain/records"
	"workforce/internal/domain/reports"
	"workforce/internal/platform/db"
)

func sampleReport(t *testing.T) *reports.OrganizationReport {
	t.Helper()
	ctx := context.Background()
	store := records.NewMemoryStore()
	now := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	if _, err := db.Seed(ctx, store, nil, db.SeedOptions{Employees: 20, AttendanceDays: 10, Seed: 3, Now: now}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	agg := analytics.New(store, analytics.WithClock(func() time.Time { return now }))
	report, err := reports.NewBuilder(store, agg, reports.Options{}).OrganizationReport(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	return report
}

func TestRenderEveryChart(t *testing.T) {
	report := sampleReport(t)
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := r.Render(name, report, &buf); err != nil {
				t.Fatalf("render: %v", err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatalf("output is not a PNG: %v", err)
			}
			if img.Bounds().Dx() == 0 {
				t.Fatal("empty image")
			}
		})
	}
}

func TestRenderWithoutData(t *testing.T) {
	r, _ := NewRenderer("")
	empty := &reports.OrganizationReport{}
	var buf bytes.Buffer
	if err := r.Render("departments", empty, &buf); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if err := r.Render("pie-of-the-day", empty, &buf); !errors.Is(err, ErrUnknownChart) {
		t.Fatalf("expected ErrUnknownChart, got %v", err)
	}
}

func TestRenderAllWritesFiles(t *testing.T) {
	report := sampleReport(t)
	r, _ := NewRenderer("")
	dir := t.TempDir()
	paths, err := r.RenderAll(dir, report)
	if err != nil {
		t.Fatalf("render all: %v", err)
	}
	if len(paths) != len(Names) {
		t.Fatalf("expected %d charts, got %v", len(Names), paths)
	}
	if _, err := os.Stat(filepath.Join(dir, "dashboard.png")); err != nil {
		t.Fatalf("dashboard missing: %v", err)
	}
}

func TestNewRendererRejectsBadFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewRenderer(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMonthlySeriesLeavesGaps(t *testing.T) {
	months, data := monthlySeries([]analytics.MonthlyScore{
		{Month: "2024-02", Department: "Sales", AvgScore: 3},
		{Month: "2024-01", Department: "Engineering", AvgScore: 4},
	})
	if len(months) != 2 || months[0] != "2024-01" {
		t.Fatalf("unexpected months: %v", months)
	}
	if data[0].name != "Engineering" || !math.IsNaN(data[0].values[1]) || data[1].values[1] != 3 {
		t.Fatalf("unexpected series: %+v", data)
	}
}

func TestNiceMax(t *testing.T) {
	tests := []struct {
		in   []float64
		want float64
	}{
		{nil, 1},
		{[]float64{9}, 10},
		{[]float64{12}, 20},
		{[]float64{180000}, 200000},
		{[]float64{4.6}, 5},
	}
	for _, tc := range tests {
		if got := niceMax(tc.in); got != tc.want {
			t.Fatalf("niceMax(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
