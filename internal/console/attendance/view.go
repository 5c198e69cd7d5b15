// Package attendance implements the attendance screen of the console.
// Records are held in memory and never sent to the server.
package attendance

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/emsportal/ems/internal/console"
	"github.com/emsportal/ems/internal/domain/attendance"
	"github.com/emsportal/ems/internal/domain/employee"
)

const timeLayout = "15:04"

// EmployeeLister loads the roster the attendance is generated for.
type EmployeeLister interface {
	ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error)
}

type View struct {
	api       EmployeeLister
	provider  attendance.Provider
	now       func() time.Time
	employees []attendance.EmployeeAttendance
	banner    console.Banner
}

func NewView(api EmployeeLister, provider attendance.Provider) *View {
	return &View{api: api, provider: provider, now: time.Now}
}

// Refresh loads the roster and regenerates every employee's records.
func (v *View) Refresh(ctx context.Context) error {
	v.banner.Clear()
	list, err := v.api.ListEmployees(ctx)
	if err != nil {
		v.banner.Set("Error loading employees", err)
		slog.Error("Error loading employees", "error", err)
		return err
	}

	now := v.now()
	out := make([]attendance.EmployeeAttendance, 0, len(list))
	for _, emp := range list {
		records := v.provider.Generate(emp, now)
		out = append(out, attendance.EmployeeAttendance{
			EmployeeID:     emp.ID,
			EmployeeCode:   emp.EmployeeCode,
			Name:           emp.Name,
			Department:     emp.Department,
			Position:       emp.Position,
			Records:        records,
			AttendanceRate: Rate(records),
		})
	}
	v.employees = out
	return nil
}

func (v *View) Employees() []attendance.EmployeeAttendance {
	return v.employees
}

func (v *View) Banner() string {
	return v.banner.String()
}

// CurrentMonth is the default month filter, as YYYY-MM.
func (v *View) CurrentMonth() string {
	return v.now().Format("2006-01")
}

// Filter matches text against name, code and department and keeps only the
// records whose date falls in month (YYYY-MM). Empty arguments match everything.
func (v *View) Filter(text, month string) []attendance.EmployeeAttendance {
	text = strings.ToLower(text)
	out := make([]attendance.EmployeeAttendance, 0, len(v.employees))
	for _, emp := range v.employees {
		if !strings.Contains(strings.ToLower(emp.Name), text) &&
			!strings.Contains(strings.ToLower(emp.EmployeeCode), text) &&
			!strings.Contains(strings.ToLower(emp.Department), text) {
			continue
		}
		filtered := emp
		filtered.Records = inMonth(emp.Records, month)
		out = append(out, filtered)
	}
	return out
}

// MonthlyStats totals the records of every employee in month.
func (v *View) MonthlyStats(month string) attendance.MonthlyStats {
	var stats attendance.MonthlyStats
	for _, emp := range v.employees {
		for _, rec := range inMonth(emp.Records, month) {
			stats.TotalRecords++
			switch rec.Status {
			case attendance.StatusPresent:
				stats.Present++
			case attendance.StatusAbsent:
				stats.Absent++
			case attendance.StatusLate:
				stats.Late++
			}
		}
	}
	return stats
}

// Edit applies a manual correction and recomputes the employee's rate.
func (v *View) Edit(employeeID, recordID string, patch attendance.Patch) (attendance.Record, error) {
	for i := range v.employees {
		emp := &v.employees[i]
		if emp.EmployeeID != employeeID && emp.EmployeeCode != employeeID {
			continue
		}
		for j := range emp.Records {
			if emp.Records[j].ID != recordID {
				continue
			}
			rec, err := apply(emp.Records[j], patch)
			if err != nil {
				return attendance.Record{}, err
			}
			emp.Records[j] = rec
			emp.AttendanceRate = Rate(emp.Records)
			return rec, nil
		}
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return attendance.Record{}, attendance.ErrEmployeeNotFound
}

func apply(rec attendance.Record, patch attendance.Patch) (attendance.Record, error) {
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return attendance.Record{}, attendance.ErrInvalidStatus
		}
		rec.Status = *patch.Status
	}
	if patch.CheckIn != nil {
		rec.CheckIn = orNoTime(*patch.CheckIn)
	}
	if patch.CheckOut != nil {
		rec.CheckOut = orNoTime(*patch.CheckOut)
	}
	if patch.Notes != nil {
		rec.Notes = *patch.Notes
	}

	hours, err := WorkHours(rec.CheckIn, rec.CheckOut)
	if err != nil {
		return attendance.Record{}, err
	}
	rec.WorkHours = hours
	return rec, nil
}

func orNoTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return attendance.NoTime
	}
	return s
}

// WorkHours is the time between check-in and check-out in hours, rounded to
// one decimal and never negative. It is 0 when either time is missing.
func WorkHours(checkIn, checkOut string) (float64, error) {
	if checkIn == attendance.NoTime || checkOut == attendance.NoTime {
		return 0, nil
	}
	in, err := time.Parse(timeLayout, checkIn)
	if err != nil {
		return 0, attendance.ErrInvalidTime
	}
	out, err := time.Parse(timeLayout, checkOut)
	if err != nil {
		return 0, attendance.ErrInvalidTime
	}
	hours := math.Max(0, out.Sub(in).Hours())
	return round1(hours), nil
}

// Rate is the share of records that are Present, Late or Half Day, as a
// percentage with one decimal. It is 0 when there are no records.
func Rate(records []attendance.Record) float64 {
	if len(records) == 0 {
		return 0
	}
	attended := 0
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent, attendance.StatusLate, attendance.StatusHalfDay:
			attended++
		}
	}
	return round1(float64(attended) / float64(len(records)) * 100)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func inMonth(records []attendance.Record, month string) []attendance.Record {
	out := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		if strings.HasPrefix(r.Date, month) {
			out = append(out, r)
		}
	}
	return out
}
