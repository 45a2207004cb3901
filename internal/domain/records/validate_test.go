package records

import (
	"errors"
	"math"
	"testing"
	"time"
)

func validEmployee() Employee {
	return Employee{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Department: "Engineering",
		Position:   "Tech Lead",
		Salary:     120000,
		HireDate:   time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:     EmployeeStatusActive,
	}
}

func TestValidateEmployee(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Employee)
		wantField string
	}{
		{name: "valid"},
		{name: "zero salary", mutate: func(e *Employee) { e.Salary = 0 }, wantField: "salary"},
		{name: "negative salary", mutate: func(e *Employee) { e.Salary = -10 }, wantField: "salary"},
		{name: "nan salary", mutate: func(e *Employee) { e.Salary = math.NaN() }, wantField: "salary"},
		{name: "bad email", mutate: func(e *Employee) { e.Email = "nobody" }, wantField: "email"},
		{name: "missing department", mutate: func(e *Employee) { e.Department = " " }, wantField: "department"},
		{name: "unknown status", mutate: func(e *Employee) { e.Status = "Retired" }, wantField: "status"},
		{name: "missing hire date", mutate: func(e *Employee) { e.HireDate = time.Time{} }, wantField: "hireDate"},
		{
			name: "birth after hire",
			mutate: func(e *Employee) {
				birth := e.HireDate.AddDate(1, 0, 0)
				e.BirthDate = &birth
			},
			wantField: "birthDate",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			emp := validEmployee()
			if tc.mutate != nil {
				tc.mutate(&emp)
			}
			err := ValidateEmployee(emp)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			verr, ok := IsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !hasIssue(verr, tc.wantField) {
				t.Fatalf("expected issue for %s, got %+v", tc.wantField, verr.Issues)
			}
		})
	}
}

func TestValidateReviewScoreBounds(t *testing.T) {
	day := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	for _, score := range []float64{1.0, 3.3, 5.0} {
		if err := ValidateReview(PerformanceReview{EmployeeID: 1, ReviewDate: day, Score: score}); err != nil {
			t.Fatalf("score %v should be valid: %v", score, err)
		}
	}
	for _, score := range []float64{0.99, 5.01, 0} {
		err := ValidateReview(PerformanceReview{EmployeeID: 1, ReviewDate: day, Score: score})
		verr, ok := IsValidation(err)
		if !ok || !hasIssue(verr, "score") {
			t.Fatalf("score %v should be rejected, got %v", score, err)
		}
	}
}

func TestValidateAttendance(t *testing.T) {
	day := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	valid := AttendanceRecord{EmployeeID: 1, Date: day, HoursWorked: 8, Status: AttendancePresent}
	if err := ValidateAttendance(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tooLong := valid
	tooLong.HoursWorked = 25
	if verr, ok := IsValidation(ValidateAttendance(tooLong)); !ok || !hasIssue(verr, "hoursWorked") {
		t.Fatal("expected hoursWorked issue")
	}

	negativeOvertime := valid
	negativeOvertime.OvertimeHours = -1
	if verr, ok := IsValidation(ValidateAttendance(negativeOvertime)); !ok || !hasIssue(verr, "overtimeHours") {
		t.Fatal("expected overtimeHours issue")
	}

	badStatus := valid
	badStatus.Status = "Sick"
	if verr, ok := IsValidation(ValidateAttendance(badStatus)); !ok || !hasIssue(verr, "status") {
		t.Fatal("expected status issue")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidateReview(PerformanceReview{})
	if err == nil {
		t.Fatal("expected error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Entity != "performance review" || len(verr.Issues) < 3 {
		t.Fatalf("unexpected validation error: %+v", verr)
	}
}

func hasIssue(verr *ValidationError, field string) bool {
	for _, issue := range verr.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}
