package payroll

import (
	"time"

	"github.com/emsportal/ems/internal/pkg/sequence"
)

// Status is an ordered label with no enforced transitions.
type Status string

const (
	StatusDraft      Status = "Draft"
	StatusCalculated Status = "Calculated"
	StatusApproved   Status = "Approved"
	StatusProcessed  Status = "Processed"
	StatusPaid       Status = "Paid"
)

func Statuses() []Status {
	return []Status{StatusDraft, StatusCalculated, StatusApproved, StatusProcessed, StatusPaid}
}

func (s Status) Valid() bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Record is one pay-period entry for one employee. Employee fields are
// denormalized copies taken when the record was written.
type Record struct {
	ID             string
	PayrollCode    string
	EmployeeCode   string
	EmployeeName   string
	Department     string
	PayPeriodStart *time.Time
	PayPeriodEnd   *time.Time
	PayDate        *time.Time
	Status         Status
	Amounts
	Totals
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	CodePrefix = "PR"
	CodeWidth  = 4
)

func NextCode(codes []string) string {
	return sequence.Next(CodePrefix, CodeWidth, codes)
}
