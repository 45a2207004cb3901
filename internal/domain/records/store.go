package records

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"workforce/internal/platform/querier"
)

// Store is the PostgreSQL record store.
type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id, first_name, last_name, email, department, position,
    salary::float8, hire_date, birth_date, COALESCE(phone, ''), status,
    created_at, updated_at
`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Department, &emp.Position,
		&emp.Salary, &emp.HireDate, &emp.BirthDate, &emp.Phone, &emp.Status,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id))
	if err != nil {
		return Employee{}, mapPgError("employee", id, err)
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	query := "SELECT " + employeeColumns + " FROM employees WHERE 1=1"
	var args []any
	if filter.ActiveOnly {
		args = append(args, EmployeeStatusActive)
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		query += " AND department = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (int64, error) {
	emp = normalizeEmployee(emp)
	if err := ValidateEmployee(emp); err != nil {
		return 0, err
	}
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, department, position, salary,
      hire_date, birth_date, phone, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, emp.FirstName, emp.LastName, emp.Email, emp.Department, emp.Position, emp.Salary,
		emp.HireDate, emp.BirthDate, emp.Phone, emp.Status).Scan(&id)
	if err != nil {
		return 0, mapPgError("employee", 0, err)
	}
	return id, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	emp = normalizeEmployee(emp)
	if err := ValidateEmployee(emp); err != nil {
		return err
	}
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        email = $3,
        department = $4,
        position = $5,
        salary = $6,
        hire_date = $7,
        birth_date = $8,
        phone = $9,
        status = $10,
        updated_at = now()
    WHERE id = $11
  `, emp.FirstName, emp.LastName, emp.Email, emp.Department, emp.Position, emp.Salary,
		emp.HireDate, emp.BirthDate, emp.Phone, emp.Status, emp.ID)
	if err != nil {
		return mapPgError("employee", emp.ID, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("employee %d: %w", emp.ID, ErrNotFound)
	}
	return nil
}

func (s *Store) SetEmployeeStatus(ctx context.Context, id int64, status string) error {
	v := newValidator("employee")
	v.oneOf("status", status, EmployeeStatuses)
	if err := v.err(); err != nil {
		return err
	}
	cmd, err := s.DB.Exec(ctx, "UPDATE employees SET status = $1, updated_at = now() WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) GetReview(ctx context.Context, id int64) (PerformanceReview, error) {
	var review PerformanceReview
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, review_date, score::float8, goals_met, COALESCE(comments, ''), created_at
    FROM performance_reviews
    WHERE id = $1
  `, id).Scan(&review.ID, &review.EmployeeID, &review.ReviewDate, &review.Score, &review.GoalsMet, &review.Comments, &review.CreatedAt)
	if err != nil {
		return PerformanceReview{}, mapPgError("performance review", id, err)
	}
	return review, nil
}

func (s *Store) ListReviews(ctx context.Context, filter ReviewFilter) ([]PerformanceReview, error) {
	query, args := buildRangeQuery(`
    SELECT id, employee_id, review_date, score::float8, goals_met, COALESCE(comments, ''), created_at
    FROM performance_reviews
    WHERE 1=1
  `, "review_date", filter.EmployeeID, filter.From, filter.To)
	query += " ORDER BY review_date, id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PerformanceReview
	for rows.Next() {
		var review PerformanceReview
		if err := rows.Scan(&review.ID, &review.EmployeeID, &review.ReviewDate, &review.Score, &review.GoalsMet, &review.Comments, &review.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, review)
	}
	return out, rows.Err()
}

func (s *Store) CreateReview(ctx context.Context, review PerformanceReview) (int64, error) {
	review.ReviewDate = DateOnly(review.ReviewDate)
	if err := ValidateReview(review); err != nil {
		return 0, err
	}
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO performance_reviews (employee_id, review_date, score, goals_met, comments)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, review.EmployeeID, review.ReviewDate, review.Score, review.GoalsMet, review.Comments).Scan(&id)
	if err != nil {
		return 0, mapPgError("employee", review.EmployeeID, err)
	}
	return id, nil
}

func (s *Store) GetAttendance(ctx context.Context, id int64) (AttendanceRecord, error) {
	var record AttendanceRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, date, hours_worked::float8, overtime_hours::float8, status, created_at
    FROM attendance_records
    WHERE id = $1
  `, id).Scan(&record.ID, &record.EmployeeID, &record.Date, &record.HoursWorked, &record.OvertimeHours, &record.Status, &record.CreatedAt)
	if err != nil {
		return AttendanceRecord{}, mapPgError("attendance record", id, err)
	}
	return record, nil
}

func (s *Store) ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecord, error) {
	query, args := buildRangeQuery(`
    SELECT id, employee_id, date, hours_worked::float8, overtime_hours::float8, status, created_at
    FROM attendance_records
    WHERE 1=1
  `, "date", filter.EmployeeID, filter.From, filter.To)
	query += " ORDER BY date, employee_id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AttendanceRecord
	for rows.Next() {
		var record AttendanceRecord
		if err := rows.Scan(&record.ID, &record.EmployeeID, &record.Date, &record.HoursWorked, &record.OvertimeHours, &record.Status, &record.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (s *Store) UpsertAttendance(ctx context.Context, record AttendanceRecord) (int64, error) {
	record.Date = DateOnly(record.Date)
	if err := ValidateAttendance(record); err != nil {
		return 0, err
	}
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_records (employee_id, date, hours_worked, overtime_hours, status)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (employee_id, date) DO UPDATE
    SET hours_worked = EXCLUDED.hours_worked,
        overtime_hours = EXCLUDED.overtime_hours,
        status = EXCLUDED.status
    RETURNING id
  `, record.EmployeeID, record.Date, record.HoursWorked, record.OvertimeHours, record.Status).Scan(&id)
	if err != nil {
		return 0, mapPgError("employee", record.EmployeeID, err)
	}
	return id, nil
}

func buildRangeQuery(base, dateColumn string, employeeID int64, from, to *time.Time) (string, []any) {
	query := base
	var args []any
	if employeeID != 0 {
		args = append(args, employeeID)
		query += " AND employee_id = $" + strconv.Itoa(len(args))
	}
	if from != nil && !from.IsZero() {
		args = append(args, DateOnly(*from))
		query += " AND " + dateColumn + " >= $" + strconv.Itoa(len(args))
	}
	if to != nil && !to.IsZero() {
		args = append(args, DateOnly(*to))
		query += " AND " + dateColumn + " <= $" + strconv.Itoa(len(args))
	}
	return query, args
}

func normalizeEmployee(emp Employee) Employee {
	if emp.Status == "" {
		emp.Status = EmployeeStatusActive
	}
	emp.HireDate = DateOnly(emp.HireDate)
	if emp.BirthDate != nil {
		birth := DateOnly(*emp.BirthDate)
		emp.BirthDate = &birth
	}
	return emp
}

func mapPgError(entity string, id int64, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", entity, ErrConflict)
		case "23503":
			return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
		}
	}
	return err
}
