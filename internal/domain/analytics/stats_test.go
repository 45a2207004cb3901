package analytics

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"workforce/internal/domain/records"
)

func TestStatsHelpers(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		mean   float64
		median float64
		stdDev float64
	}{
		{name: "empty"},
		{name: "single", values: []float64{42}, mean: 42, median: 42},
		{name: "odd", values: []float64{3, 1, 2}, mean: 2, median: 2, stdDev: 1},
		{name: "even", values: []float64{4, 1, 3, 2}, mean: 2.5, median: 2.5, stdDev: 1.2909944},
		{name: "repeated cents", values: []float64{30000.15, 30000.15, 30000.15}, mean: 30000.15, median: 30000.15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mean(tc.values); got != tc.mean {
				t.Fatalf("mean = %v, want %v", got, tc.mean)
			}
			if got := median(tc.values); got != tc.median {
				t.Fatalf("median = %v, want %v", got, tc.median)
			}
			if got := stdDev(tc.values); math.Abs(got-tc.stdDev) > 1e-6 {
				t.Fatalf("stdDev = %v, want %v", got, tc.stdDev)
			}
		})
	}
}

func TestAverageSalaryStaysWithinMinMax(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	groups := [][]float64{
		{0.05, 0.05, 0.05},
		{30000.04, 30000.04, 30000.04},
		{30000.15, 30000.15, 30000.15},
	}
	for range 150 {
		size := 1 + rng.IntN(6)
		cents := 1 + rng.IntN(20_000_000)
		group := make([]float64, size)
		for i := range group {
			if rng.IntN(2) == 0 {
				group[i] = float64(cents) / 100
			} else {
				group[i] = float64(1+rng.IntN(20_000_000)) / 100
			}
		}
		groups = append(groups, group)
	}

	ctx := context.Background()
	for gi, salaries := range groups {
		store := records.NewMemoryStore()
		for i, salary := range salaries {
			addEmployee(t, store, fmt.Sprintf("g%d-e%d", gi, i), "Engineering", "Software Engineer", salary, day(2022, 1, 3))
		}
		agg := New(store)

		stats, err := agg.DepartmentStats(ctx)
		if err != nil || len(stats) != 1 {
			t.Fatalf("group %d: department stats %+v, err %v", gi, stats, err)
		}
		if s := stats[0]; s.AvgSalary < s.MinSalary || s.AvgSalary > s.MaxSalary {
			t.Fatalf("group %d %v: avg %v outside [%v, %v]", gi, salaries, s.AvgSalary, s.MinSalary, s.MaxSalary)
		}

		analysis, err := agg.SalaryAnalysis(ctx)
		if err != nil {
			t.Fatalf("group %d: salary analysis: %v", gi, err)
		}
		for _, s := range append([]SalarySummary{analysis.Overall}, analysis.ByDepartment[0].SalarySummary) {
			if s.Mean < s.Min || s.Mean > s.Max || s.Median < s.Min || s.Median > s.Max {
				t.Fatalf("group %d %v: summary outside range %+v", gi, salaries, s)
			}
		}

		budget, err := agg.BudgetAnalysis(ctx, nil)
		if err != nil || len(budget.Departments) != 1 {
			t.Fatalf("group %d: budget %+v, err %v", gi, budget, err)
		}
		if b := budget.Departments[0]; b.AvgSalary < b.MinSalary || b.AvgSalary > b.MaxSalary {
			t.Fatalf("group %d %v: budget avg %v outside [%v, %v]", gi, salaries, b.AvgSalary, b.MinSalary, b.MaxSalary)
		}
	}
}
