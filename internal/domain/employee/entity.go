package employee

import (
	"time"

	"github.com/emsportal/ems/internal/pkg/sequence"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	EmployeeCode string
	Name         string
	Email        string
	Phone        string
	Department   Department
	Position     string
	Manager      string
	Status       Status
	Salary       decimal.Decimal
	JoinDate     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Department string

const (
	DepartmentEngineering Department = "Engineering"
	DepartmentMarketing   Department = "Marketing"
	DepartmentFinance     Department = "Finance"
	DepartmentHR          Department = "HR"
	DepartmentSales       Department = "Sales"
)

// Departments lists the selectable departments in display order.
func Departments() []Department {
	return []Department{DepartmentEngineering, DepartmentMarketing, DepartmentFinance, DepartmentHR, DepartmentSales}
}

func (d Department) Valid() bool {
	for _, known := range Departments() {
		if d == known {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusOnLeave  Status = "On Leave"
)

func Statuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusOnLeave}
}

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusOnLeave
}

const (
	CodePrefix = "EMP"
	CodeWidth  = 3
)

// NextCode returns the code a new employee gets when none was supplied.
func NextCode(codes []string) string {
	return sequence.Next(CodePrefix, CodeWidth, codes)
}
