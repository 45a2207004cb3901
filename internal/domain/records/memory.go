package records

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory. It enforces the same invariants
// as the SQL stores and backs tests and the demo mode of the CLI.
type MemoryStore struct {
	mu         sync.RWMutex
	nextID     int64
	employees  map[int64]Employee
	reviews    map[int64]PerformanceReview
	attendance map[int64]AttendanceRecord
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees:  map[int64]Employee{},
		reviews:    map[int64]PerformanceReview{},
		attendance: map[int64]AttendanceRecord{},
		now:        time.Now,
	}
}

func (s *MemoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *MemoryStore) GetEmployee(_ context.Context, id int64) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	emp, ok := s.employees[id]
	if !ok {
		return Employee{}, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	return emp, nil
}

func (s *MemoryStore) ListEmployees(_ context.Context, filter EmployeeFilter) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Employee
	for _, emp := range s.employees {
		if filter.Match(emp) {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateEmployee(_ context.Context, emp Employee) (int64, error) {
	emp = normalizeEmployee(emp)
	if err := ValidateEmployee(emp); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(emp.Email, 0) {
		return 0, fmt.Errorf("employee: %w", ErrConflict)
	}
	emp.ID = s.id()
	emp.CreatedAt = s.now().UTC()
	emp.UpdatedAt = emp.CreatedAt
	s.employees[emp.ID] = emp
	return emp.ID, nil
}

func (s *MemoryStore) UpdateEmployee(_ context.Context, emp Employee) error {
	emp = normalizeEmployee(emp)
	if err := ValidateEmployee(emp); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.employees[emp.ID]
	if !ok {
		return fmt.Errorf("employee %d: %w", emp.ID, ErrNotFound)
	}
	if s.emailTaken(emp.Email, emp.ID) {
		return fmt.Errorf("employee: %w", ErrConflict)
	}
	emp.CreatedAt = current.CreatedAt
	emp.UpdatedAt = s.now().UTC()
	s.employees[emp.ID] = emp
	return nil
}

func (s *MemoryStore) SetEmployeeStatus(_ context.Context, id int64, status string) error {
	v := newValidator("employee")
	v.oneOf("status", status, EmployeeStatuses)
	if err := v.err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	emp, ok := s.employees[id]
	if !ok {
		return fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	emp.Status = status
	emp.UpdatedAt = s.now().UTC()
	s.employees[id] = emp
	return nil
}

func (s *MemoryStore) GetReview(_ context.Context, id int64) (PerformanceReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	review, ok := s.reviews[id]
	if !ok {
		return PerformanceReview{}, fmt.Errorf("performance review %d: %w", id, ErrNotFound)
	}
	return review, nil
}

func (s *MemoryStore) ListReviews(_ context.Context, filter ReviewFilter) ([]PerformanceReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []PerformanceReview
	for _, review := range s.reviews {
		if filter.Match(review) {
			out = append(out, review)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReviewDate.Equal(out[j].ReviewDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].ReviewDate.Before(out[j].ReviewDate)
	})
	return out, nil
}

func (s *MemoryStore) CreateReview(_ context.Context, review PerformanceReview) (int64, error) {
	review.ReviewDate = DateOnly(review.ReviewDate)
	if err := ValidateReview(review); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[review.EmployeeID]; !ok {
		return 0, fmt.Errorf("employee %d: %w", review.EmployeeID, ErrNotFound)
	}
	review.ID = s.id()
	review.CreatedAt = s.now().UTC()
	s.reviews[review.ID] = review
	return review.ID, nil
}

func (s *MemoryStore) GetAttendance(_ context.Context, id int64) (AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.attendance[id]
	if !ok {
		return AttendanceRecord{}, fmt.Errorf("attendance record %d: %w", id, ErrNotFound)
	}
	return record, nil
}

func (s *MemoryStore) ListAttendance(_ context.Context, filter AttendanceFilter) ([]AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []AttendanceRecord
	for _, record := range s.attendance {
		if filter.Match(record) {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *MemoryStore) UpsertAttendance(_ context.Context, record AttendanceRecord) (int64, error) {
	record.Date = DateOnly(record.Date)
	if err := ValidateAttendance(record); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[record.EmployeeID]; !ok {
		return 0, fmt.Errorf("employee %d: %w", record.EmployeeID, ErrNotFound)
	}
	for id, existing := range s.attendance {
		if existing.EmployeeID == record.EmployeeID && existing.Date.Equal(record.Date) {
			record.ID = id
			record.CreatedAt = existing.CreatedAt
			s.attendance[id] = record
			return id, nil
		}
	}
	record.ID = s.id()
	record.CreatedAt = s.now().UTC()
	s.attendance[record.ID] = record
	return record.ID, nil
}

// PutReview stores a review without checking the employee reference. It lets
// tests and imports reproduce the inconsistent data a shared database may hold.
func (s *MemoryStore) PutReview(review PerformanceReview) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	review.ID = s.id()
	review.ReviewDate = DateOnly(review.ReviewDate)
	s.reviews[review.ID] = review
	return review.ID
}

// PutAttendance is the attendance counterpart of PutReview.
func (s *MemoryStore) PutAttendance(record AttendanceRecord) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.id()
	record.Date = DateOnly(record.Date)
	s.attendance[record.ID] = record
	return record.ID
}

func (s *MemoryStore) emailTaken(email string, exceptID int64) bool {
	for id, emp := range s.employees {
		if id != exceptID && strings.EqualFold(emp.Email, email) {
			return true
		}
	}
	return false
}

// Reset drops every record and restarts identifiers.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = 0
	s.employees = map[int64]Employee{}
	s.reviews = map[int64]PerformanceReview{}
	s.attendance = map[int64]AttendanceRecord{}
}
