package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

const (
	sqliteDateLayout = "2006-01-02"
	sqliteTimeLayout = time.RFC3339
)

// SQLiteStore is the record store for a local single-file database.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

const sqliteEmployeeColumns = `id, first_name, last_name, email, department, position, salary,
  hire_date, birth_date, phone, status, created_at, updated_at`

func scanSQLiteEmployee(row rowScanner) (Employee, error) {
	var emp Employee
	var hireDate, createdAt, updatedAt string
	var birthDate sql.NullString
	if err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Department, &emp.Position,
		&emp.Salary, &hireDate, &birthDate, &emp.Phone, &emp.Status, &createdAt, &updatedAt); err != nil {
		return Employee{}, err
	}
	emp.HireDate = parseSQLiteDate(hireDate)
	if birthDate.Valid && birthDate.String != "" {
		birth := parseSQLiteDate(birthDate.String)
		emp.BirthDate = &birth
	}
	emp.CreatedAt = parseSQLiteTime(createdAt)
	emp.UpdatedAt = parseSQLiteTime(updatedAt)
	return emp, nil
}

func (s *SQLiteStore) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+sqliteEmployeeColumns+" FROM employees WHERE id = ?", id)
	emp, err := scanSQLiteEmployee(row)
	if err != nil {
		return Employee{}, mapSQLiteError("employee", id, err)
	}
	return emp, nil
}

func (s *SQLiteStore) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	query := "SELECT " + sqliteEmployeeColumns + " FROM employees WHERE 1=1"
	var args []any
	if filter.ActiveOnly {
		query += " AND status = ?"
		args = append(args, EmployeeStatusActive)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Department != "" {
		query += " AND department = ?"
		args = append(args, filter.Department)
	}
	query += " ORDER BY id"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanSQLiteEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CreateEmployee(ctx context.Context, emp Employee) (int64, error) {
	emp = normalizeEmployee(emp)
	if err := ValidateEmployee(emp); err != nil {
		return 0, err
	}
	now := time.Now().UTC().Format(sqliteTimeLayout)
	res, err := s.DB.ExecContext(ctx, `
    INSERT INTO employees (first_name, last_name, email, department, position, salary,
      hire_date, birth_date, phone, status, created_at, updated_at)
    VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
  `, emp.FirstName, emp.LastName, emp.Email, emp.Department, emp.Position, emp.Salary,
		emp.HireDate.Format(sqliteDateLayout), formatSQLiteDatePtr(emp.BirthDate), emp.Phone, emp.Status, now, now)
	if err != nil {
		return 0, mapSQLiteError("employee", 0, err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) UpdateEmployee(ctx context.Context, emp Employee) error {
	emp = normalizeEmployee(emp)
	if err := ValidateEmployee(emp); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, `
    UPDATE employees
    SET first_name = ?, last_name = ?, email = ?, department = ?, position = ?, salary = ?,
        hire_date = ?, birth_date = ?, phone = ?, status = ?, updated_at = ?
    WHERE id = ?
  `, emp.FirstName, emp.LastName, emp.Email, emp.Department, emp.Position, emp.Salary,
		emp.HireDate.Format(sqliteDateLayout), formatSQLiteDatePtr(emp.BirthDate), emp.Phone, emp.Status,
		time.Now().UTC().Format(sqliteTimeLayout), emp.ID)
	if err != nil {
		return mapSQLiteError("employee", emp.ID, err)
	}
	return requireAffected(res, "employee", emp.ID)
}

func (s *SQLiteStore) SetEmployeeStatus(ctx context.Context, id int64, status string) error {
	v := newValidator("employee")
	v.oneOf("status", status, EmployeeStatuses)
	if err := v.err(); err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, "UPDATE employees SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now().UTC().Format(sqliteTimeLayout), id)
	if err != nil {
		return err
	}
	return requireAffected(res, "employee", id)
}

func scanSQLiteReview(row rowScanner) (PerformanceReview, error) {
	var review PerformanceReview
	var reviewDate, createdAt string
	if err := row.Scan(&review.ID, &review.EmployeeID, &reviewDate, &review.Score, &review.GoalsMet, &review.Comments, &createdAt); err != nil {
		return PerformanceReview{}, err
	}
	review.ReviewDate = parseSQLiteDate(reviewDate)
	review.CreatedAt = parseSQLiteTime(createdAt)
	return review, nil
}

func (s *SQLiteStore) GetReview(ctx context.Context, id int64) (PerformanceReview, error) {
	row := s.DB.QueryRowContext(ctx, `
    SELECT id, employee_id, review_date, score, goals_met, comments, created_at
    FROM performance_reviews WHERE id = ?
  `, id)
	review, err := scanSQLiteReview(row)
	if err != nil {
		return PerformanceReview{}, mapSQLiteError("performance review", id, err)
	}
	return review, nil
}

func (s *SQLiteStore) ListReviews(ctx context.Context, filter ReviewFilter) ([]PerformanceReview, error) {
	query, args := buildSQLiteRangeQuery(`
    SELECT id, employee_id, review_date, score, goals_met, comments, created_at
    FROM performance_reviews WHERE 1=1
  `, "review_date", filter.EmployeeID, filter.From, filter.To)
	query += " ORDER BY review_date, id"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PerformanceReview
	for rows.Next() {
		review, err := scanSQLiteReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, review)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CreateReview(ctx context.Context, review PerformanceReview) (int64, error) {
	review.ReviewDate = DateOnly(review.ReviewDate)
	if err := ValidateReview(review); err != nil {
		return 0, err
	}
	res, err := s.DB.ExecContext(ctx, `
    INSERT INTO performance_reviews (employee_id, review_date, score, goals_met, comments, created_at)
    VALUES (?,?,?,?,?,?)
  `, review.EmployeeID, review.ReviewDate.Format(sqliteDateLayout), review.Score, review.GoalsMet, review.Comments,
		time.Now().UTC().Format(sqliteTimeLayout))
	if err != nil {
		return 0, mapSQLiteError("employee", review.EmployeeID, err)
	}
	return res.LastInsertId()
}

func scanSQLiteAttendance(row rowScanner) (AttendanceRecord, error) {
	var record AttendanceRecord
	var day, createdAt string
	if err := row.Scan(&record.ID, &record.EmployeeID, &day, &record.HoursWorked, &record.OvertimeHours, &record.Status, &createdAt); err != nil {
		return AttendanceRecord{}, err
	}
	record.Date = parseSQLiteDate(day)
	record.CreatedAt = parseSQLiteTime(createdAt)
	return record, nil
}

func (s *SQLiteStore) GetAttendance(ctx context.Context, id int64) (AttendanceRecord, error) {
	row := s.DB.QueryRowContext(ctx, `
    SELECT id, employee_id, date, hours_worked, overtime_hours, status, created_at
    FROM attendance_records WHERE id = ?
  `, id)
	record, err := scanSQLiteAttendance(row)
	if err != nil {
		return AttendanceRecord{}, mapSQLiteError("attendance record", id, err)
	}
	return record, nil
}

func (s *SQLiteStore) ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecord, error) {
	query, args := buildSQLiteRangeQuery(`
    SELECT id, employee_id, date, hours_worked, overtime_hours, status, created_at
    FROM attendance_records WHERE 1=1
  `, "date", filter.EmployeeID, filter.From, filter.To)
	query += " ORDER BY date, employee_id"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AttendanceRecord
	for rows.Next() {
		record, err := scanSQLiteAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpsertAttendance(ctx context.Context, record AttendanceRecord) (int64, error) {
	record.Date = DateOnly(record.Date)
	if err := ValidateAttendance(record); err != nil {
		return 0, err
	}
	var id int64
	err := s.DB.QueryRowContext(ctx, `
    INSERT INTO attendance_records (employee_id, date, hours_worked, overtime_hours, status, created_at)
    VALUES (?,?,?,?,?,?)
    ON CONFLICT (employee_id, date) DO UPDATE
    SET hours_worked = excluded.hours_worked,
        overtime_hours = excluded.overtime_hours,
        status = excluded.status
    RETURNING id
  `, record.EmployeeID, record.Date.Format(sqliteDateLayout), record.HoursWorked, record.OvertimeHours, record.Status,
		time.Now().UTC().Format(sqliteTimeLayout)).Scan(&id)
	if err != nil {
		return 0, mapSQLiteError("employee", record.EmployeeID, err)
	}
	return id, nil
}

func buildSQLiteRangeQuery(base, dateColumn string, employeeID int64, from, to *time.Time) (string, []any) {
	var b strings.Builder
	b.WriteString(base)
	var args []any
	if employeeID != 0 {
		b.WriteString(" AND employee_id = ?")
		args = append(args, employeeID)
	}
	if from != nil && !from.IsZero() {
		b.WriteString(" AND " + dateColumn + " >= ?")
		args = append(args, DateOnly(*from).Format(sqliteDateLayout))
	}
	if to != nil && !to.IsZero() {
		b.WriteString(" AND " + dateColumn + " <= ?")
		args = append(args, DateOnly(*to).Format(sqliteDateLayout))
	}
	return b.String(), args
}

func requireAffected(res sql.Result, entity string, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return nil
}

func formatSQLiteDatePtr(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.Format(sqliteDateLayout)
}

func parseSQLiteDate(value string) time.Time {
	if len(value) > len(sqliteDateLayout) {
		value = value[:len(sqliteDateLayout)]
	}
	parsed, err := time.Parse(sqliteDateLayout, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func parseSQLiteTime(value string) time.Time {
	parsed, err := time.Parse(sqliteTimeLayout, value)
	if err != nil {
		return parseSQLiteDate(value)
	}
	return parsed
}

func mapSQLiteError(entity string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			return fmt.Errorf("%s: %w", entity, ErrConflict)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
		}
	}
	return err
}
