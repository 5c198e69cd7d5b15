package attendance

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/emsportal/ems/internal/domain/attendance"
	"github.com/emsportal/ems/internal/domain/employee"
)

const (
	absentBelow  = 0.05
	lateBelow    = 0.10
	halfDayBelow = 0.15

	medicalNote = "Medical appointment"
)

// SyntheticProvider fabricates attendance for the current month. It stands
// in until a real time-keeping source exists.
type SyntheticProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSyntheticProvider(rng *rand.Rand) *SyntheticProvider {
	return &SyntheticProvider{rng: rng}
}

// Generate returns one record per weekday from the 1st of now's month through now.
func (p *SyntheticProvider) Generate(emp employee.EmployeeResponse, now time.Time) []attendance.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generateWith(emp, now, p.rng.Float64)
}

func (p *SyntheticProvider) generateWith(emp employee.EmployeeResponse, now time.Time, draw func() float64) []attendance.Record {
	year, month, today := now.Date()
	var records []attendance.Record
	for day := 1; day <= today; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		records = append(records, Day(emp.EmployeeCode, date, draw()))
	}
	return records
}

// Day builds the record for one date from a draw in [0,1).
func Day(code string, date time.Time, draw float64) attendance.Record {
	rec := attendance.Record{
		ID:        fmt.Sprintf("att_%s_%d", code, date.Day()),
		Date:      date.Format("2006-01-02"),
		Status:    attendance.StatusPresent,
		CheckIn:   "09:00",
		CheckOut:  "18:00",
		WorkHours: 8,
	}

	switch {
	case draw < absentBelow:
		rec.Status = attendance.StatusAbsent
		rec.CheckIn, rec.CheckOut = attendance.NoTime, attendance.NoTime
		rec.WorkHours = 0
	case draw < lateBelow:
		rec.Status = attendance.StatusLate
		rec.CheckIn = "09:30"
		rec.WorkHours = 7.5
	case draw < halfDayBelow:
		rec.Status = attendance.StatusHalfDay
		rec.CheckOut = "13:00"
		rec.WorkHours = 4
	}

	if draw < lateBelow {
		rec.Notes = medicalNote
	}
	return rec
}

var _ attendance.Provider = (*SyntheticProvider)(nil)
