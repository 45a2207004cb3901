package analytics

import (
	"context"
	"sort"
	"time"

	"workforce/internal/domain/records"
)

const attendanceEntity = "attendance record"

// AttendanceStats summarizes a set of attendance rows. HasData is false when
// the set is empty; the other figures are then zero and carry no meaning.
type AttendanceStats struct {
	HasData       bool    `json:"hasData"`
	TotalDays     int     `json:"totalDays"`
	PresentDays   int     `json:"presentDays"`
	Rate          float64 `json:"rate"`
	AvgHours      float64 `json:"avgHours"`
	TotalOvertime float64 `json:"totalOvertime"`
}

// SummarizeAttendance computes the attendance rate as present days over
// recorded days.
func SummarizeAttendance(rows []records.AttendanceRecord) AttendanceStats {
	if len(rows) == 0 {
		return AttendanceStats{}
	}
	stats := AttendanceStats{HasData: true, TotalDays: len(rows)}
	hours := 0.0
	for _, row := range rows {
		if row.Status == records.AttendancePresent {
			stats.PresentDays++
		}
		hours += row.HoursWorked
		stats.TotalOvertime += row.OvertimeHours
	}
	stats.Rate = float64(stats.PresentDays) / float64(stats.TotalDays)
	stats.AvgHours = hours / float64(stats.TotalDays)
	return stats
}

type EmployeeAttendance struct {
	EmployeeID int64  `json:"employeeId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	AttendanceStats
}

type AttendanceSummary struct {
	From         *time.Time           `json:"from,omitempty"`
	To           *time.Time           `json:"to,omitempty"`
	Organization AttendanceStats      `json:"organization"`
	Employees    []EmployeeAttendance `json:"employees"`
	Warnings     []Warning            `json:"warnings"`
}

// AttendanceSummary summarizes attendance per in-scope employee and for the
// organization, optionally within [from, to]. Employees without rows in the
// range are left out.
func (a *Aggregator) AttendanceSummary(ctx context.Context, from, to *time.Time) (AttendanceSummary, error) {
	r, err := a.roster(ctx)
	if err != nil {
		return AttendanceSummary{}, err
	}
	rows, err := a.store.ListAttendance(ctx, records.AttendanceFilter{From: from, To: to})
	if err != nil {
		return AttendanceSummary{}, err
	}

	var warnings Warnings
	var kept []records.AttendanceRecord
	perEmployee := map[int64][]records.AttendanceRecord{}
	for _, row := range rows {
		if _, ok := a.resolve(r, attendanceEntity, row.ID, row.EmployeeID, &warnings); !ok {
			continue
		}
		kept = append(kept, row)
		perEmployee[row.EmployeeID] = append(perEmployee[row.EmployeeID], row)
	}

	summary := AttendanceSummary{
		From:         from,
		To:           to,
		Organization: SummarizeAttendance(kept),
		Employees:    make([]EmployeeAttendance, 0, len(perEmployee)),
		Warnings:     append([]Warning{}, warnings...),
	}
	for id, empRows := range perEmployee {
		emp := r.all[id]
		summary.Employees = append(summary.Employees, EmployeeAttendance{
			EmployeeID:      id,
			Name:            emp.FullName(),
			Department:      emp.Department,
			AttendanceStats: SummarizeAttendance(empRows),
		})
	}
	sort.Slice(summary.Employees, func(i, j int) bool {
		ei, ej := summary.Employees[i], summary.Employees[j]
		if ei.AvgHours != ej.AvgHours {
			return ei.AvgHours > ej.AvgHours
		}
		return ei.EmployeeID < ej.EmployeeID
	})
	return summary, nil
}

// RecentAttendance returns the latest limit rows for one employee, oldest
// first, with their summary. limit <= 0 means every row.
func (a *Aggregator) RecentAttendance(ctx context.Context, employeeID int64, limit int) ([]records.AttendanceRecord, AttendanceStats, error) {
	if _, err := a.store.GetEmployee(ctx, employeeID); err != nil {
		return nil, AttendanceStats{}, err
	}
	rows, err := a.store.ListAttendance(ctx, records.AttendanceFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, AttendanceStats{}, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	return rows, SummarizeAttendance(rows), nil
}
