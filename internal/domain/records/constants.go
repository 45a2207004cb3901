package records

const (
	EmployeeStatusActive     = "Active"
	EmployeeStatusInactive   = "Inactive"
	EmployeeStatusTerminated = "Terminated"

	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLate    = "Late"
	AttendanceHalfDay = "Half Day"

	MinScore = 1.0
	MaxScore = 5.0

	MaxDailyHours = 24.0
)

var EmployeeStatuses = []string{
	EmployeeStatusActive,
	EmployeeStatusInactive,
	EmployeeStatusTerminated,
}

var AttendanceStatuses = []string{
	AttendancePresent,
	AttendanceAbsent,
	AttendanceLate,
	AttendanceHalfDay,
}

var Departments = []string{
	"Engineering",
	"Sales",
	"Marketing",
	"HR",
	"Finance",
	"Operations",
}
