package analytics

import (
	"context"
	"sort"
	"time"

	"workforce/internal/domain/records"
)

const (
	reviewEntity        = "performance review"
	defaultTopPerformer = 10
	// minReviewsToRank keeps one lucky review from topping the ranking.
	minReviewsToRank = 2
)

type TrendPoint struct {
	Date       time.Time `json:"date"`
	Score      float64   `json:"score"`
	EmployeeID int64     `json:"employeeId"`
}

type PerformanceTrend struct {
	// EmployeeID is zero for the organization-wide trend.
	EmployeeID   int64        `json:"employeeId"`
	Points       []TrendPoint `json:"points"`
	ReviewCount  int          `json:"reviewCount"`
	AverageScore float64      `json:"averageScore"`
	Latest       *TrendPoint  `json:"latest,omitempty"`
	Warnings     []Warning    `json:"warnings"`
}

// PerformanceTrend returns review scores in date order for one employee, or
// for every in-scope employee when employeeID is zero. An unknown employee
// fails with records.ErrNotFound; no reviews yield an empty trend.
func (a *Aggregator) PerformanceTrend(ctx context.Context, employeeID int64) (PerformanceTrend, error) {
	trend := PerformanceTrend{EmployeeID: employeeID, Points: []TrendPoint{}, Warnings: []Warning{}}

	if employeeID != 0 {
		if _, err := a.store.GetEmployee(ctx, employeeID); err != nil {
			return PerformanceTrend{}, err
		}
		reviews, err := a.store.ListReviews(ctx, records.ReviewFilter{EmployeeID: employeeID})
		if err != nil {
			return PerformanceTrend{}, err
		}
		for _, review := range reviews {
			trend.Points = append(trend.Points, TrendPoint{Date: review.ReviewDate, Score: review.Score, EmployeeID: review.EmployeeID})
		}
		return finishTrend(trend), nil
	}

	r, err := a.roster(ctx)
	if err != nil {
		return PerformanceTrend{}, err
	}
	reviews, err := a.store.ListReviews(ctx, records.ReviewFilter{})
	if err != nil {
		return PerformanceTrend{}, err
	}
	var warnings Warnings
	for _, review := range reviews {
		if _, ok := a.resolve(r, reviewEntity, review.ID, review.EmployeeID, &warnings); !ok {
			continue
		}
		trend.Points = append(trend.Points, TrendPoint{Date: review.ReviewDate, Score: review.Score, EmployeeID: review.EmployeeID})
	}
	trend.Warnings = append(trend.Warnings, warnings...)
	return finishTrend(trend), nil
}

func finishTrend(trend PerformanceTrend) PerformanceTrend {
	sort.SliceStable(trend.Points, func(i, j int) bool { return trend.Points[i].Date.Before(trend.Points[j].Date) })
	trend.ReviewCount = len(trend.Points)
	if trend.ReviewCount == 0 {
		return trend
	}
	scores := make([]float64, 0, len(trend.Points))
	for _, p := range trend.Points {
		scores = append(scores, p.Score)
	}
	trend.AverageScore = mean(scores)
	latest := trend.Points[len(trend.Points)-1]
	trend.Latest = &latest
	return trend
}

type PerformanceGroup struct {
	Department  string  `json:"department"`
	Position    string  `json:"position"`
	AvgScore    float64 `json:"avgScore"`
	ReviewCount int     `json:"reviewCount"`
	AvgGoalsMet float64 `json:"avgGoalsMet"`
}

type DepartmentPerformance struct {
	Department    string  `json:"department"`
	AvgScore      float64 `json:"avgScore"`
	MinScore      float64 `json:"minScore"`
	MaxScore      float64 `json:"maxScore"`
	EmployeeCount int     `json:"employeeCount"`
	ReviewCount   int     `json:"reviewCount"`
}

type MonthlyScore struct {
	Month      string  `json:"month"`
	Department string  `json:"department"`
	AvgScore   float64 `json:"avgScore"`
	Reviews    int     `json:"reviews"`
}

type TopPerformer struct {
	EmployeeID  int64   `json:"employeeId"`
	Name        string  `json:"name"`
	Department  string  `json:"department"`
	Position    string  `json:"position"`
	AvgScore    float64 `json:"avgScore"`
	ReviewCount int     `json:"reviewCount"`
}

type PerformanceAnalysis struct {
	ByGroup       []PerformanceGroup      `json:"byGroup"`
	ByDepartment  []DepartmentPerformance `json:"byDepartment"`
	Monthly       []MonthlyScore          `json:"monthly"`
	TopPerformers []TopPerformer          `json:"topPerformers"`
	Scores        []float64               `json:"-"`
	Warnings      []Warning               `json:"warnings"`
}

type scoreBucket struct {
	scores    []float64
	goals     int
	employees map[int64]struct{}
}

func (b *scoreBucket) add(review records.PerformanceReview) {
	if b.employees == nil {
		b.employees = map[int64]struct{}{}
	}
	b.scores = append(b.scores, review.Score)
	b.goals += review.GoalsMet
	b.employees[review.EmployeeID] = struct{}{}
}

type groupKey struct{ department, position string }
type monthKey struct{ month, department string }

// PerformanceAnalysis breaks in-scope reviews down by department and position,
// by department alone and by month, and ranks the top performers. topN <= 0
// ranks ten.
func (a *Aggregator) PerformanceAnalysis(ctx context.Context, topN int) (PerformanceAnalysis, error) {
	if topN <= 0 {
		topN = defaultTopPerformer
	}
	r, err := a.roster(ctx)
	if err != nil {
		return PerformanceAnalysis{}, err
	}
	reviews, err := a.store.ListReviews(ctx, records.ReviewFilter{})
	if err != nil {
		return PerformanceAnalysis{}, err
	}

	var warnings Warnings
	groups := map[groupKey]*scoreBucket{}
	departments := map[string]*scoreBucket{}
	months := map[monthKey]*scoreBucket{}
	perEmployee := map[int64]*scoreBucket{}
	result := PerformanceAnalysis{}

	for _, review := range reviews {
		emp, ok := a.resolve(r, reviewEntity, review.ID, review.EmployeeID, &warnings)
		if !ok {
			continue
		}
		result.Scores = append(result.Scores, review.Score)
		bucketFor(groups, groupKey{emp.Department, emp.Position}).add(review)
		bucketFor(departments, emp.Department).add(review)
		bucketFor(months, monthKey{review.ReviewDate.Format("2006-01"), emp.Department}).add(review)
		bucketFor(perEmployee, emp.ID).add(review)
	}

	for key, b := range groups {
		result.ByGroup = append(result.ByGroup, PerformanceGroup{
			Department:  key.department,
			Position:    key.position,
			AvgScore:    mean(b.scores),
			ReviewCount: len(b.scores),
			AvgGoalsMet: float64(b.goals) / float64(len(b.scores)),
		})
	}
	sort.Slice(result.ByGroup, func(i, j int) bool {
		gi, gj := result.ByGroup[i], result.ByGroup[j]
		if gi.AvgScore != gj.AvgScore {
			return gi.AvgScore > gj.AvgScore
		}
		if gi.Department != gj.Department {
			return gi.Department < gj.Department
		}
		return gi.Position < gj.Position
	})

	for dept, b := range departments {
		lo, hi := minMax(b.scores)
		result.ByDepartment = append(result.ByDepartment, DepartmentPerformance{
			Department:    dept,
			AvgScore:      mean(b.scores),
			MinScore:      lo,
			MaxScore:      hi,
			EmployeeCount: len(b.employees),
			ReviewCount:   len(b.scores),
		})
	}
	sort.Slice(result.ByDepartment, func(i, j int) bool {
		di, dj := result.ByDepartment[i], result.ByDepartment[j]
		if di.AvgScore != dj.AvgScore {
			return di.AvgScore > dj.AvgScore
		}
		return di.Department < dj.Department
	})

	for key, b := range months {
		result.Monthly = append(result.Monthly, MonthlyScore{
			Month:      key.month,
			Department: key.department,
			AvgScore:   mean(b.scores),
			Reviews:    len(b.scores),
		})
	}
	sort.Slice(result.Monthly, func(i, j int) bool {
		mi, mj := result.Monthly[i], result.Monthly[j]
		if mi.Month != mj.Month {
			return mi.Month < mj.Month
		}
		return mi.Department < mj.Department
	})

	result.TopPerformers = topPerformers(r, perEmployee, topN)
	result.Warnings = append([]Warning{}, warnings...)
	return result, nil
}

func topPerformers(r roster, perEmployee map[int64]*scoreBucket, limit int) []TopPerformer {
	out := []TopPerformer{}
	for id, b := range perEmployee {
		if len(b.scores) < minReviewsToRank {
			continue
		}
		emp := r.all[id]
		out = append(out, TopPerformer{
			EmployeeID:  id,
			Name:        emp.FullName(),
			Department:  emp.Department,
			Position:    emp.Position,
			AvgScore:    mean(b.scores),
			ReviewCount: len(b.scores),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgScore != out[j].AvgScore {
			return out[i].AvgScore > out[j].AvgScore
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func bucketFor[K comparable](m map[K]*scoreBucket, key K) *scoreBucket {
	b, ok := m[key]
	if !ok {
		b = &scoreBucket{}
		m[key] = b
	}
	return b
}
