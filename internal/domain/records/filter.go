package records

import "time"

type EmployeeFilter struct {
	Status     string
	Department string
	ActiveOnly bool
}

func (f EmployeeFilter) Match(emp Employee) bool {
	if f.ActiveOnly && emp.Status != EmployeeStatusActive {
		return false
	}
	if f.Status != "" && emp.Status != f.Status {
		return false
	}
	if f.Department != "" && emp.Department != f.Department {
		return false
	}
	return true
}

// ReviewFilter selects reviews; zero fields match everything. From and To are inclusive.
type ReviewFilter struct {
	EmployeeID int64
	From       *time.Time
	To         *time.Time
}

func (f ReviewFilter) Match(review PerformanceReview) bool {
	if f.EmployeeID != 0 && review.EmployeeID != f.EmployeeID {
		return false
	}
	return inRange(review.ReviewDate, f.From, f.To)
}

type AttendanceFilter struct {
	EmployeeID int64
	From       *time.Time
	To         *time.Time
}

func (f AttendanceFilter) Match(record AttendanceRecord) bool {
	if f.EmployeeID != 0 && record.EmployeeID != f.EmployeeID {
		return false
	}
	return inRange(record.Date, f.From, f.To)
}

func inRange(day time.Time, from, to *time.Time) bool {
	day = DateOnly(day)
	if from != nil && !from.IsZero() && day.Before(DateOnly(*from)) {
		return false
	}
	if to != nil && !to.IsZero() && day.After(DateOnly(*to)) {
		return false
	}
	return true
}
