package analytics

import (
	"context"
	"sort"

	"workforce/internal/domain/records"
)

type DepartmentStat struct {
	Department string  `json:"department"`
	Count      int     `json:"count"`
	AvgSalary  float64 `json:"avgSalary"`
	MinSalary  float64 `json:"minSalary"`
	MaxSalary  float64 `json:"maxSalary"`
}

// DepartmentStats groups in-scope employees by department, largest first.
func (a *Aggregator) DepartmentStats(ctx context.Context) ([]DepartmentStat, error) {
	employees, err := a.employees(ctx)
	if err != nil {
		return nil, err
	}
	groups := groupSalaries(employees, departmentOf)

	out := make([]DepartmentStat, 0, len(groups))
	for dept, salaries := range groups {
		lo, hi := minMax(salaries)
		out = append(out, DepartmentStat{
			Department: dept,
			Count:      len(salaries),
			AvgSalary:  mean(salaries),
			MinSalary:  lo,
			MaxSalary:  hi,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Department < out[j].Department
	})
	return out, nil
}

type SalarySummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

type SalaryGroup struct {
	Name string `json:"name"`
	SalarySummary
}

type SalaryAnalysis struct {
	Overall      SalarySummary `json:"overall"`
	ByDepartment []SalaryGroup `json:"byDepartment"`
	ByPosition   []SalaryGroup `json:"byPosition"`
	// Salaries holds every in-scope salary, for distribution charts.
	Salaries []float64 `json:"-"`
}

func summarizeSalaries(values []float64) SalarySummary {
	lo, hi := minMax(values)
	return SalarySummary{
		Count:  len(values),
		Mean:   mean(values),
		Median: median(values),
		StdDev: stdDev(values),
		Min:    lo,
		Max:    hi,
	}
}

// SalaryAnalysis summarizes in-scope salaries overall, per department and per
// position. With no employees every figure is zero.
func (a *Aggregator) SalaryAnalysis(ctx context.Context) (SalaryAnalysis, error) {
	employees, err := a.employees(ctx)
	if err != nil {
		return SalaryAnalysis{}, err
	}
	salaries := make([]float64, 0, len(employees))
	for _, emp := range employees {
		salaries = append(salaries, emp.Salary)
	}
	return SalaryAnalysis{
		Overall:      summarizeSalaries(salaries),
		ByDepartment: salaryGroups(groupSalaries(employees, departmentOf)),
		ByPosition:   salaryGroups(groupSalaries(employees, func(e records.Employee) string { return e.Position })),
		Salaries:     salaries,
	}, nil
}

func groupSalaries(employees []records.Employee, key func(records.Employee) string) map[string][]float64 {
	groups := map[string][]float64{}
	for _, emp := range employees {
		k := key(emp)
		groups[k] = append(groups[k], emp.Salary)
	}
	return groups
}

func salaryGroups(groups map[string][]float64) []SalaryGroup {
	out := make([]SalaryGroup, 0, len(groups))
	for name, values := range groups {
		out = append(out, SalaryGroup{Name: name, SalarySummary: summarizeSalaries(values)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func departmentOf(e records.Employee) string { return e.Department }
