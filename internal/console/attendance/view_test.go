package attendance

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/emsportal/ems/internal/domain/attendance"
	"github.com/emsportal/ems/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	employees []employee.EmployeeResponse
	err       error
}

func (f *fakeLister) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.employees, f.err
}

// fixedProvider marks every weekday Present.
type fixedProvider struct{}

func (fixedProvider) Generate(emp employee.EmployeeResponse, now time.Time) []attendance.Record {
	return NewSyntheticProvider(rand.New(rand.NewPCG(1, 2))).generateWith(emp, now, func() float64 { return 0.5 })
}

func newView(t *testing.T, now time.Time) *View {
	t.Helper()
	v := NewView(&fakeLister{employees: []employee.EmployeeResponse{
		{ID: "1", EmployeeCode: "EMP001", Name: "Ann Lee", Department: "Engineering"},
		{ID: "2", EmployeeCode: "EMP002", Name: "Bob Stone", Department: "Sales"},
	}}, fixedProvider{})
	v.now = func() time.Time { return now }
	require.NoError(t, v.Refresh(context.Background()))
	return v
}

func TestGenerate_WeekdaysThroughToday(t *testing.T) {
	// 2024-05-01 is a Wednesday; the 1st through 10th hold 8 weekdays.
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	p := NewSyntheticProvider(rand.New(rand.NewPCG(7, 7)))

	records := p.Generate(employee.EmployeeResponse{EmployeeCode: "EMP001"}, now)
	require.Len(t, records, 8)
	assert.Equal(t, "att_EMP001_1", records[0].ID)
	assert.Equal(t, "2024-05-01", records[0].Date)
	assert.Equal(t, "2024-05-10", records[7].Date)
	for _, r := range records {
		assert.True(t, r.Status.Valid())
	}
}

func TestGenerate_SeededIsReproducible(t *testing.T) {
	now := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	emp := employee.EmployeeResponse{EmployeeCode: "EMP001"}

	a := NewSyntheticProvider(rand.New(rand.NewPCG(42, 1))).Generate(emp, now)
	b := NewSyntheticProvider(rand.New(rand.NewPCG(42, 1))).Generate(emp, now)
	assert.Equal(t, a, b)
	assert.Len(t, a, 23)
}

func TestDay_Thresholds(t *testing.T) {
	date := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		draw     float64
		status   attendance.Status
		checkIn  string
		checkOut string
		hours    float64
		notes    string
	}{
		{0.01, attendance.StatusAbsent, "--", "--", 0, "Medical appointment"},
		{0.07, attendance.StatusLate, "09:30", "18:00", 7.5, "Medical appointment"},
		{0.12, attendance.StatusHalfDay, "09:00", "13:00", 4, ""},
		{0.50, attendance.StatusPresent, "09:00", "18:00", 8, ""},
	}
	for _, tt := range tests {
		rec := Day("EMP009", date, tt.draw)
		assert.Equal(t, "att_EMP009_6", rec.ID)
		assert.Equal(t, tt.status, rec.Status)
		assert.Equal(t, tt.checkIn, rec.CheckIn)
		assert.Equal(t, tt.checkOut, rec.CheckOut)
		assert.Equal(t, tt.hours, rec.WorkHours)
		assert.Equal(t, tt.notes, rec.Notes)
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, Rate(nil))

	records := []attendance.Record{
		{Status: attendance.StatusPresent},
		{Status: attendance.StatusLate},
		{Status: attendance.StatusAbsent},
	}
	assert.Equal(t, 66.7, Rate(records))

	records = append(records, attendance.Record{Status: attendance.StatusHalfDay})
	assert.Equal(t, 75.0, Rate(records))
}

func TestWorkHours(t *testing.T) {
	h, err := WorkHours("09:00", "17:30")
	require.NoError(t, err)
	assert.Equal(t, 8.5, h)

	h, err = WorkHours("18:00", "09:00")
	require.NoError(t, err)
	assert.Equal(t, 0.0, h)

	h, err = WorkHours("09:00", "--")
	require.NoError(t, err)
	assert.Equal(t, 0.0, h)

	h, err = WorkHours("09:10", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 0.8, h)

	_, err = WorkHours("9am", "17:00")
	assert.True(t, errors.Is(err, attendance.ErrInvalidTime))
}

func TestEdit_RecomputesHoursAndRate(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	v := newView(t, now)

	emp := v.Employees()[0]
	require.Equal(t, 100.0, emp.AttendanceRate)

	checkOut := "17:30"
	rec, err := v.Edit("1", "att_EMP001_1", attendance.Patch{CheckOut: &checkOut})
	require.NoError(t, err)
	assert.Equal(t, 8.5, rec.WorkHours)

	absent := attendance.StatusAbsent
	blank := ""
	rec, err = v.Edit("EMP001", "att_EMP001_2", attendance.Patch{Status: &absent, CheckIn: &blank, CheckOut: &blank})
	require.NoError(t, err)
	assert.Equal(t, "--", rec.CheckIn)
	assert.Equal(t, "--", rec.CheckOut)
	assert.Equal(t, 0.0, rec.WorkHours)

	assert.Equal(t, 87.5, v.Employees()[0].AttendanceRate)
	assert.Equal(t, 100.0, v.Employees()[1].AttendanceRate)
}

func TestEdit_Errors(t *testing.T) {
	v := newView(t, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))

	_, err := v.Edit("nope", "att_EMP001_1", attendance.Patch{})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotFound)

	_, err = v.Edit("1", "att_EMP001_4", attendance.Patch{})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	bad := attendance.Status("Sick")
	_, err = v.Edit("1", "att_EMP001_1", attendance.Patch{Status: &bad})
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)
}

func TestFilterAndMonthlyStats(t *testing.T) {
	v := newView(t, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-05", v.CurrentMonth())

	sales := v.Filter("sales", "")
	require.Len(t, sales, 1)
	assert.Equal(t, "EMP002", sales[0].EmployeeCode)

	all := v.Filter("", "2024-04")
	require.Len(t, all, 2)
	assert.Empty(t, all[0].Records)

	late := attendance.StatusLate
	_, err := v.Edit("2", "att_EMP002_3", attendance.Patch{Status: &late})
	require.NoError(t, err)

	stats := v.MonthlyStats("2024-05")
	assert.Equal(t, attendance.MonthlyStats{TotalRecords: 16, Present: 15, Absent: 0, Late: 1}, stats)
	assert.Equal(t, attendance.MonthlyStats{}, v.MonthlyStats("2024-04"))
}

func TestRefresh_Failure(t *testing.T) {
	v := NewView(&fakeLister{err: errors.New("boom")}, fixedProvider{})
	require.Error(t, v.Refresh(context.Background()))
	assert.Equal(t, "Error loading employees: boom", v.Banner())
}
