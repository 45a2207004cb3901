package analytics

import (
	"context"
	"sort"
	"time"

	"workforce/internal/domain/records"
)

type HiringPoint struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Department string `json:"department"`
	Hires      int    `json:"hires"`
}

// Period is the year-month label of the point.
func (p HiringPoint) Period() string {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// HiringTrends counts hires per month and department over every employee,
// whatever their status, newest month first.
func (a *Aggregator) HiringTrends(ctx context.Context) ([]HiringPoint, error) {
	employees, err := a.store.ListEmployees(ctx, records.EmployeeFilter{})
	if err != nil {
		return nil, err
	}
	type key struct {
		year, month int
		department  string
	}
	counts := map[key]int{}
	for _, emp := range employees {
		counts[key{emp.HireDate.Year(), int(emp.HireDate.Month()), emp.Department}]++
	}

	out := make([]HiringPoint, 0, len(counts))
	for k, n := range counts {
		out = append(out, HiringPoint{Year: k.year, Month: k.month, Department: k.department, Hires: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].Department < out[j].Department
	})
	return out, nil
}

type TenureEntry struct {
	EmployeeID    int64     `json:"employeeId"`
	Name          string    `json:"name"`
	Department    string    `json:"department"`
	Position      string    `json:"position"`
	HireDate      time.Time `json:"hireDate"`
	DaysEmployed  int       `json:"daysEmployed"`
	YearsEmployed float64   `json:"yearsEmployed"`
}

type TenureAnalysis struct {
	AsOf         time.Time     `json:"asOf"`
	Employees    []TenureEntry `json:"employees"`
	AverageYears float64       `json:"averageYears"`
}

// Tenure measures how long each in-scope employee has been employed as of
// the aggregator's clock, longest first. Future hire dates count as zero.
func (a *Aggregator) Tenure(ctx context.Context) (TenureAnalysis, error) {
	employees, err := a.employees(ctx)
	if err != nil {
		return TenureAnalysis{}, err
	}
	asOf := records.DateOnly(a.now())
	result := TenureAnalysis{AsOf: asOf, Employees: make([]TenureEntry, 0, len(employees))}
	years := make([]float64, 0, len(employees))
	for _, emp := range employees {
		days := int(asOf.Sub(records.DateOnly(emp.HireDate)).Hours() / 24)
		if days < 0 {
			days = 0
		}
		entry := TenureEntry{
			EmployeeID:    emp.ID,
			Name:          emp.FullName(),
			Department:    emp.Department,
			Position:      emp.Position,
			HireDate:      emp.HireDate,
			DaysEmployed:  days,
			YearsEmployed: round(float64(days)/365.25, 1),
		}
		result.Employees = append(result.Employees, entry)
		years = append(years, float64(days)/365.25)
	}
	sort.Slice(result.Employees, func(i, j int) bool {
		if result.Employees[i].DaysEmployed != result.Employees[j].DaysEmployed {
			return result.Employees[i].DaysEmployed > result.Employees[j].DaysEmployed
		}
		return result.Employees[i].EmployeeID < result.Employees[j].EmployeeID
	})
	result.AverageYears = round(mean(years), 1)
	return result, nil
}
