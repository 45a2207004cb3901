package db

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"workforce/internal/domain/records"
	"workforce/internal/platform/logger"
)

var positionsByDepartment = map[string][]string{
	"Engineering": {"Software Engineer", "Senior Engineer", "Tech Lead", "Engineering Manager", "DevOps Engineer", "QA Engineer"},
	"Sales":       {"Sales Rep", "Senior Sales Rep", "Sales Manager", "VP Sales", "Account Manager", "Business Development"},
	"Marketing":   {"Marketing Specialist", "Marketing Manager", "Content Creator", "CMO", "SEO Specialist", "Brand Manager"},
	"HR":          {"HR Specialist", "HR Manager", "Recruiter", "CHRO", "Training Coordinator", "Compensation Analyst"},
	"Finance":     {"Accountant", "Financial Analyst", "Finance Manager", "CFO", "Auditor", "Budget Analyst"},
	"Operations":  {"Operations Specialist", "Operations Manager", "Logistics Coordinator", "COO", "Project Manager", "Supply Chain Manager"},
}

var firstNames = []string{
	"John", "Jane", "Mike", "Sarah", "David", "Lisa", "Chris", "Emily", "Robert", "Jessica",
	"Michael", "Ashley", "James", "Amanda", "Daniel", "Jennifer", "William", "Elizabeth",
	"Richard", "Linda", "Thomas", "Patricia", "Charles", "Barbara", "Joseph", "Susan",
	"Christopher", "Karen", "Matthew", "Nancy", "Anthony", "Betty", "Mark", "Helen", "Donald", "Sandra",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez",
	"Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor",
	"Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White", "Harris", "Sanchez",
	"Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
}

var reviewComments = [][]string{
	{
		"Below expectations, requires significant improvement",
		"Performance issues need immediate attention",
		"Not meeting role requirements, improvement plan needed",
	},
	{
		"Adequate performance, some areas need improvement",
		"Meeting basic requirements but could do better",
		"Shows potential but needs more focus",
	},
	{
		"Good performance, meets most expectations",
		"Solid contributor with room for growth",
		"Reliable employee with consistent output",
	},
	{
		"Exceptional performance, consistently exceeds expectations",
		"Outstanding contributor, demonstrates leadership qualities",
		"Excellent work quality and strong team collaboration",
	},
}

type SeedOptions struct {
	Employees      int
	AttendanceDays int
	// Seed makes a run reproducible; zero picks a time-based seed.
	Seed uint64
	Now  time.Time
}

type SeedResult struct {
	EmployeesCreated  int
	ReviewsCreated    int
	AttendanceCreated int
	EmployeeIDs       []int64
}

// Seeder fills a record store with plausible sample data.
type Seeder struct {
	store records.Writer
	log   *logger.Logger
	rng   *rand.Rand
	now   time.Time
}

func NewSeeder(store records.Writer, log *logger.Logger, opts SeedOptions) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	return &Seeder{
		store: store,
		log:   log,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:   now.UTC(),
	}
}

// Seed generates employees, one to four reviews for each and weekday
// attendance going back opts.AttendanceDays days.
func Seed(ctx context.Context, store records.Writer, log *logger.Logger, opts SeedOptions) (SeedResult, error) {
	s := NewSeeder(store, log, opts)
	s.log.Info("generating sample data", "employees", opts.Employees, "attendanceDays", opts.AttendanceDays)

	ids, err := s.Employees(ctx, opts.Employees)
	if err != nil {
		return SeedResult{}, err
	}
	reviews, err := s.Reviews(ctx, ids)
	if err != nil {
		return SeedResult{}, err
	}
	attendance, err := s.Attendance(ctx, ids, opts.AttendanceDays)
	if err != nil {
		return SeedResult{}, err
	}

	s.log.Info("sample data generated", "employees", len(ids), "reviews", reviews, "attendance", attendance)
	return SeedResult{
		EmployeesCreated:  len(ids),
		ReviewsCreated:    reviews,
		AttendanceCreated: attendance,
		EmployeeIDs:       ids,
	}, nil
}

func (s *Seeder) Employees(ctx context.Context, count int) ([]int64, error) {
	batch := s.rng.IntN(1_000_000)
	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		first := pick(s.rng, firstNames)
		last := pick(s.rng, lastNames)
		dept := pick(s.rng, records.Departments)
		position := pick(s.rng, positionsByDepartment[dept])
		minSalary, maxSalary := salaryRange(position)
		birth := s.birthDate()

		emp := records.Employee{
			FirstName:  first,
			LastName:   last,
			Email:      fmt.Sprintf("%s.%s%d.%d@company.com", strings.ToLower(first), strings.ToLower(last), batch, i),
			Department: dept,
			Position:   position,
			Salary:     float64(minSalary + s.rng.IntN(maxSalary-minSalary+1)),
			HireDate:   s.dateBetween(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
			BirthDate:  &birth,
			Phone:      fmt.Sprintf("(%d) %d-%d", 200+s.rng.IntN(800), 200+s.rng.IntN(800), 1000+s.rng.IntN(9000)),
			Status:     records.EmployeeStatusActive,
		}
		id, err := s.store.CreateEmployee(ctx, emp)
		if errors.Is(err, records.ErrConflict) {
			s.log.Warn("skipping duplicate employee", "index", i)
			continue
		}
		if err != nil {
			return ids, fmt.Errorf("seed employee: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Seeder) Reviews(ctx context.Context, employeeIDs []int64) (int, error) {
	created := 0
	for _, id := range employeeIDs {
		n := 1 + s.rng.IntN(4)
		for i := 0; i < n; i++ {
			score := math.Round(clamp(3.5+0.8*s.rng.NormFloat64(), records.MinScore, records.MaxScore)*10) / 10
			review := records.PerformanceReview{
				EmployeeID: id,
				ReviewDate: s.dateBetween(s.now.AddDate(0, 0, -730), s.now),
				Score:      score,
				GoalsMet:   s.goalsFor(score),
				Comments:   s.commentFor(score),
			}
			if _, err := s.store.CreateReview(ctx, review); err != nil {
				return created, fmt.Errorf("seed review: %w", err)
			}
			created++
		}
	}
	return created, nil
}

func (s *Seeder) Attendance(ctx context.Context, employeeIDs []int64, daysBack int) (int, error) {
	end := records.DateOnly(s.now)
	start := end.AddDate(0, 0, -daysBack)
	created := 0
	for _, id := range employeeIDs {
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				continue
			}
			record := s.attendanceFor(id, day)
			if _, err := s.store.UpsertAttendance(ctx, record); err != nil {
				return created, fmt.Errorf("seed attendance: %w", err)
			}
			created++
		}
	}
	return created, nil
}

func (s *Seeder) attendanceFor(employeeID int64, day time.Time) records.AttendanceRecord {
	record := records.AttendanceRecord{EmployeeID: employeeID, Date: day}
	if s.rng.Float64() < 0.95 {
		record.Status = records.AttendancePresent
		record.HoursWorked = round2(7.5 + 1.5*s.rng.Float64())
		if s.rng.Float64() < 0.2 {
			record.OvertimeHours = round2(0.5 + 2.5*s.rng.Float64())
		}
		return record
	}

	switch roll := s.rng.Float64(); {
	case roll < 0.6:
		record.Status = records.AttendanceAbsent
	case roll < 0.9:
		record.Status = records.AttendanceLate
		record.HoursWorked = round2(6 + 2*s.rng.Float64())
	default:
		record.Status = records.AttendanceHalfDay
		record.HoursWorked = 4
	}
	return record
}

func (s *Seeder) goalsFor(score float64) int {
	switch {
	case score >= 4.0:
		return 7 + s.rng.IntN(4)
	case score >= 3.0:
		return 4 + s.rng.IntN(5)
	default:
		return 1 + s.rng.IntN(5)
	}
}

func (s *Seeder) commentFor(score float64) string {
	band := 0
	switch {
	case score >= 4.5:
		band = 3
	case score >= 3.5:
		band = 2
	case score >= 2.5:
		band = 1
	}
	return pick(s.rng, reviewComments[band])
}

func (s *Seeder) birthDate() time.Time {
	year := s.now.Year() - 65 + s.rng.IntN(44)
	return time.Date(year, time.Month(1+s.rng.IntN(12)), 1+s.rng.IntN(28), 0, 0, 0, 0, time.UTC)
}

func (s *Seeder) dateBetween(from, to time.Time) time.Time {
	days := int(to.Sub(from).Hours() / 24)
	if days <= 0 {
		return records.DateOnly(from)
	}
	return records.DateOnly(from.AddDate(0, 0, s.rng.IntN(days+1)))
}

// salaryRange follows the seniority implied by the title.
func salaryRange(position string) (int, int) {
	for _, exec := range []string{"VP", "CMO", "CHRO", "CFO", "COO"} {
		if strings.Contains(position, exec) {
			return 150000, 250000
		}
	}
	switch {
	case strings.Contains(position, "Manager"), strings.Contains(position, "Lead"):
		return 90000, 140000
	case strings.Contains(position, "Senior"):
		return 75000, 110000
	case strings.Contains(position, "Analyst"), strings.Contains(position, "Specialist"), strings.Contains(position, "Coordinator"):
		return 50000, 80000
	default:
		return 45000, 75000
	}
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
