package attendance

import (
	"time"

	"github.com/emsportal/ems/internal/domain/employee"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusHalfDay Status = "Half Day"
	StatusAbsent  Status = "Absent"
)

func Statuses() []Status {
	return []Status{StatusPresent, StatusLate, StatusHalfDay, StatusAbsent}
}

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay || s == StatusAbsent
}

// NoTime marks a missing check-in or check-out.
const NoTime = "--"

// Record is one working day of one employee. Records live in memory only.
type Record struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Status    Status  `json:"status"`
	CheckIn   string  `json:"checkIn"`  // HH:MM or NoTime
	CheckOut  string  `json:"checkOut"` // HH:MM or NoTime
	WorkHours float64 `json:"workHours"`
	Notes     string  `json:"notes"`
}

// EmployeeAttendance groups an employee's records with the derived rate.
type EmployeeAttendance struct {
	EmployeeID     string   `json:"id"`
	EmployeeCode   string   `json:"employeeId"`
	Name           string   `json:"name"`
	Department     string   `json:"department"`
	Position       string   `json:"position"`
	Records        []Record `json:"attendanceRecords"`
	AttendanceRate float64  `json:"attendanceRate"`
}

// Patch is a manual correction of one record. Nil fields are left unchanged.
type Patch struct {
	Status   *Status
	CheckIn  *string
	CheckOut *string
	Notes    *string
}

// MonthlyStats are the totals shown above the attendance table.
type MonthlyStats struct {
	TotalRecords int `json:"totalRecords"`
	Present      int `json:"present"`
	Absent       int `json:"absent"`
	Late         int `json:"late"`
}

// Provider produces attendance history for employees.
type Provider interface {
	Generate(emp employee.EmployeeResponse, now time.Time) []Record
}
