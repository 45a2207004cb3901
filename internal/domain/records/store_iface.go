package records

import "context"

// Reader is the read side of the record store consumed by analytics and reports.
type Reader interface {
	GetEmployee(ctx context.Context, id int64) (Employee, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	GetReview(ctx context.Context, id int64) (PerformanceReview, error)
	ListReviews(ctx context.Context, filter ReviewFilter) ([]PerformanceReview, error)
	GetAttendance(ctx context.Context, id int64) (AttendanceRecord, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecord, error)
}

type Writer interface {
	CreateEmployee(ctx context.Context, emp Employee) (int64, error)
	UpdateEmployee(ctx context.Context, emp Employee) error
	SetEmployeeStatus(ctx context.Context, id int64, status string) error
	CreateReview(ctx context.Context, review PerformanceReview) (int64, error)
	UpsertAttendance(ctx context.Context, record AttendanceRecord) (int64, error)
}

type StoreAPI interface {
	Reader
	Writer
}
