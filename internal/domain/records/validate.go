package records

import (
	"math"
	"strings"
)

type validator struct {
	entity string
	issues []ValidationIssue
}

func newValidator(entity string) *validator {
	return &validator{entity: entity}
}

func (v *validator) add(field, reason string) {
	v.issues = append(v.issues, ValidationIssue{Field: field, Reason: reason})
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
}

func (v *validator) oneOf(field, value string, allowed []string) {
	for _, candidate := range allowed {
		if value == candidate {
			return
		}
	}
	v.add(field, "must be one of "+strings.Join(allowed, ", "))
}

func (v *validator) finite(field string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		v.add(field, "must be a finite number")
		return false
	}
	return true
}

func (v *validator) err() error {
	if len(v.issues) == 0 {
		return nil
	}
	return &ValidationError{Entity: v.entity, Issues: v.issues}
}

func ValidateEmployee(emp Employee) error {
	v := newValidator("employee")
	v.required("firstName", emp.FirstName)
	v.required("lastName", emp.LastName)
	v.required("email", emp.Email)
	if emp.Email != "" && !strings.Contains(emp.Email, "@") {
		v.add("email", "must be a valid email address")
	}
	v.required("department", emp.Department)
	v.required("position", emp.Position)
	if v.finite("salary", emp.Salary) && emp.Salary <= 0 {
		v.add("salary", "must be greater than zero")
	}
	if emp.HireDate.IsZero() {
		v.add("hireDate", "is required")
	}
	if emp.BirthDate != nil && !emp.HireDate.IsZero() && emp.BirthDate.After(emp.HireDate) {
		v.add("birthDate", "must be before hireDate")
	}
	v.oneOf("status", emp.Status, EmployeeStatuses)
	return v.err()
}

func ValidateReview(review PerformanceReview) error {
	v := newValidator("performance review")
	if review.EmployeeID <= 0 {
		v.add("employeeId", "is required")
	}
	if review.ReviewDate.IsZero() {
		v.add("reviewDate", "is required")
	}
	if v.finite("score", review.Score) && (review.Score < MinScore || review.Score > MaxScore) {
		v.add("score", "must be between 1.0 and 5.0")
	}
	if review.GoalsMet < 0 {
		v.add("goalsMet", "must not be negative")
	}
	return v.err()
}

func ValidateAttendance(record AttendanceRecord) error {
	v := newValidator("attendance record")
	if record.EmployeeID <= 0 {
		v.add("employeeId", "is required")
	}
	if record.Date.IsZero() {
		v.add("date", "is required")
	}
	if v.finite("hoursWorked", record.HoursWorked) && (record.HoursWorked < 0 || record.HoursWorked > MaxDailyHours) {
		v.add("hoursWorked", "must be between 0 and 24")
	}
	if v.finite("overtimeHours", record.OvertimeHours) && record.OvertimeHours < 0 {
		v.add("overtimeHours", "must not be negative")
	}
	v.oneOf("status", record.Status, AttendanceStatuses)
	return v.err()
}
