package analytics

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/floats"
)

type DepartmentBudget struct {
	Department    string   `json:"department"`
	EmployeeCount int      `json:"employeeCount"`
	TotalSalary   float64  `json:"totalSalary"`
	AvgSalary     float64  `json:"avgSalary"`
	MinSalary     float64  `json:"minSalary"`
	MaxSalary     float64  `json:"maxSalary"`
	Share         float64  `json:"share"`
	Ceiling       *float64 `json:"ceiling,omitempty"`
	OverCeiling   bool     `json:"overCeiling"`
}

type BudgetAnalysis struct {
	Departments []DepartmentBudget `json:"departments"`
	TotalSalary float64            `json:"totalSalary"`
	OverCeiling []string           `json:"overCeiling"`
}

// BudgetAnalysis sums salaries per department and compares each sum with the
// matching ceiling, if one is given. Ceilings for departments without
// employees are ignored.
func (a *Aggregator) BudgetAnalysis(ctx context.Context, ceilings map[string]float64) (BudgetAnalysis, error) {
	employees, err := a.employees(ctx)
	if err != nil {
		return BudgetAnalysis{}, err
	}

	result := BudgetAnalysis{OverCeiling: []string{}}
	for _, emp := range employees {
		result.TotalSalary += emp.Salary
	}

	for dept, salaries := range groupSalaries(employees, departmentOf) {
		total := floats.Sum(salaries)
		lo, hi := minMax(salaries)
		budget := DepartmentBudget{
			Department:    dept,
			EmployeeCount: len(salaries),
			TotalSalary:   total,
			AvgSalary:     mean(salaries),
			MinSalary:     lo,
			MaxSalary:     hi,
		}
		if result.TotalSalary > 0 {
			budget.Share = total / result.TotalSalary
		}
		if ceiling, ok := ceilings[dept]; ok {
			c := ceiling
			budget.Ceiling = &c
			budget.OverCeiling = total > ceiling
		}
		result.Departments = append(result.Departments, budget)
	}

	sort.Slice(result.Departments, func(i, j int) bool {
		if result.Departments[i].TotalSalary != result.Departments[j].TotalSalary {
			return result.Departments[i].TotalSalary > result.Departments[j].TotalSalary
		}
		return result.Departments[i].Department < result.Departments[j].Department
	})
	for _, d := range result.Departments {
		if d.OverCeiling {
			result.OverCeiling = append(result.OverCeiling, d.Department)
		}
	}
	return result, nil
}
