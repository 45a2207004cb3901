package records

import (
	"strings"
	"time"
)

type Employee struct {
	ID         int64      `json:"id"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Salary     float64    `json:"salary"`
	HireDate   time.Time  `json:"hireDate"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
	Phone      string     `json:"phone"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

type PerformanceReview struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	ReviewDate time.Time `json:"reviewDate"`
	Score      float64   `json:"score"`
	GoalsMet   int       `json:"goalsMet"`
	Comments   string    `json:"comments"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MetGoals reports the goals-met flag of the review.
func (r PerformanceReview) MetGoals() bool {
	return r.GoalsMet > 0
}

type AttendanceRecord struct {
	ID            int64     `json:"id"`
	EmployeeID    int64     `json:"employeeId"`
	Date          time.Time `json:"date"`
	HoursWorked   float64   `json:"hoursWorked"`
	OvertimeHours float64   `json:"overtimeHours"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
