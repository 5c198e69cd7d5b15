package dashboard

import (
	"sort"
	"time"

	"github.com/emsportal/ems/internal/domain/dashboard"
	"github.com/emsportal/ems/internal/domain/employee"
)

// Palette colors department buckets in first-seen order, cycling.
var Palette = []string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#06B6D4", "#F97316", "#84CC16"}

const (
	Unassigned   = "Unassigned"
	NotSpecified = "Not Specified"

	RecentLimit = 5
)

// Summarize computes the overview aggregates from a fetched roster.
func Summarize(emps []employee.EmployeeResponse, now time.Time) dashboard.Summary {
	return dashboard.Summary{
		TotalEmployees:    len(emps),
		NewHiresThisMonth: NewHiresThisMonth(emps, now),
		Departments:       Departments(emps),
		RecentEmployees:   Recent(emps, RecentLimit),
	}
}

// Departments counts employees per department. An empty department counts as Unassigned.
func Departments(emps []employee.EmployeeResponse) []dashboard.DepartmentBucket {
	index := map[string]int{}
	var buckets []dashboard.DepartmentBucket
	for _, emp := range emps {
		name := emp.Department
		if name == "" {
			name = Unassigned
		}
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, dashboard.DepartmentBucket{Name: name, Color: Palette[i%len(Palette)]})
		}
		buckets[i].Value++
	}
	return buckets
}

// Recent returns the n newest employees. Records are ordered by createdAt
// when both carry one, otherwise by identifier, newest first.
func Recent(emps []employee.EmployeeResponse, n int) []dashboard.RecentEmployee {
	sorted := append([]employee.EmployeeResponse(nil), emps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		ta, okA := parseCreatedAt(a.CreatedAt)
		tb, okB := parseCreatedAt(b.CreatedAt)
		if okA && okB {
			return ta.After(tb)
		}
		return a.ID > b.ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]dashboard.RecentEmployee, len(sorted))
	for i, emp := range sorted {
		out[i] = dashboard.RecentEmployee{
			ID:         emp.EmployeeCode,
			Name:       emp.Name,
			Position:   orDefault(emp.Position, NotSpecified),
			Department: orDefault(emp.Department, Unassigned),
			Status:     orDefault(emp.Status, string(employee.StatusActive)),
		}
	}
	return out
}

// NewHiresThisMonth counts employees created in now's calendar month.
func NewHiresThisMonth(emps []employee.EmployeeResponse, now time.Time) int {
	year, month, _ := now.Date()
	count := 0
	for _, emp := range emps {
		t, ok := parseCreatedAt(emp.CreatedAt)
		if !ok {
			continue
		}
		y, m, _ := t.In(now.Location()).Date()
		if y == year && m == month {
			count++
		}
	}
	return count
}

func parseCreatedAt(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
