package payroll

import (
	"time"

	"github.com/emsportal/ems/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// RecordRequest is the body of POST /api/payroll and PUT /api/payroll/{id}.
// Derived totals may be present on the wire but are ignored.
type RecordRequest struct {
	PayrollCode     string          `json:"payrollId"`
	EmployeeCode    string          `json:"employeeId"`
	EmployeeName    string          `json:"employeeName"`
	Department      string          `json:"department"`
	PayPeriodStart  string          `json:"payPeriodStart"`
	PayPeriodEnd    string          `json:"payPeriodEnd"`
	BaseSalary      decimal.Decimal `json:"baseSalary"`
	Overtime        decimal.Decimal `json:"overtime"`
	Bonus           decimal.Decimal `json:"bonus"`
	TaxWithholding  decimal.Decimal `json:"taxWithholding"`
	HealthInsurance decimal.Decimal `json:"healthInsurance"`
	Retirement401k  decimal.Decimal `json:"retirement401k"`
	GrossPay        decimal.Decimal `json:"grossPay"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetPay          decimal.Decimal `json:"netPay"`
	Status          string          `json:"status"`
	PayDate         string          `json:"payDate"`
}

func (r *RecordRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("employeeId", r.EmployeeCode)
	errs.Required("employeeName", r.EmployeeName)

	if r.Status != "" && !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of Draft, Calculated, Approved, Processed, Paid"})
	}

	dates := []struct {
		field string
		value string
	}{
		{"payPeriodStart", r.PayPeriodStart},
		{"payPeriodEnd", r.PayPeriodEnd},
		{"payDate", r.PayDate},
	}
	for _, d := range dates {
		if validator.IsEmpty(d.value) {
			continue
		}
		if _, ok := validator.ParseDay(d.value); !ok {
			errs = append(errs, validator.ValidationError{Field: d.field, Message: d.field + " must be YYYY-MM-DD or an ISO8601 timestamp"})
		}
	}

	return errs.OrNil()
}

func (r *RecordRequest) Amounts() Amounts {
	return Amounts{
		BaseSalary:      r.BaseSalary,
		Overtime:        r.Overtime,
		Bonus:           r.Bonus,
		TaxWithholding:  r.TaxWithholding,
		HealthInsurance: r.HealthInsurance,
		Retirement401k:  r.Retirement401k,
	}
}

// ToRecord maps a validated request onto a record with totals recomputed.
func (r *RecordRequest) ToRecord() Record {
	status := Status(r.Status)
	if status == "" {
		status = StatusDraft
	}
	amounts := r.Amounts()
	return Record{
		PayrollCode:    r.PayrollCode,
		EmployeeCode:   r.EmployeeCode,
		EmployeeName:   r.EmployeeName,
		Department:     r.Department,
		PayPeriodStart: parseOptionalDay(r.PayPeriodStart),
		PayPeriodEnd:   parseOptionalDay(r.PayPeriodEnd),
		PayDate:        parseOptionalDay(r.PayDate),
		Status:         status,
		Amounts:        amounts,
		Totals:         Compute(amounts),
	}
}

func parseOptionalDay(s string) *time.Time {
	if d, ok := validator.ParseDay(s); ok {
		return &d
	}
	return nil
}

// RecordResponse is the wire shape of a payroll record.
type RecordResponse struct {
	ID              string          `json:"id"`
	PayrollCode     string          `json:"payrollId"`
	EmployeeCode    string          `json:"employeeId"`
	EmployeeName    string          `json:"employeeName"`
	Department      string          `json:"department"`
	PayPeriodStart  string          `json:"payPeriodStart"`
	PayPeriodEnd    string          `json:"payPeriodEnd"`
	BaseSalary      decimal.Decimal `json:"baseSalary"`
	Overtime        decimal.Decimal `json:"overtime"`
	Bonus           decimal.Decimal `json:"bonus"`
	TaxWithholding  decimal.Decimal `json:"taxWithholding"`
	HealthInsurance decimal.Decimal `json:"healthInsurance"`
	Retirement401k  decimal.Decimal `json:"retirement401k"`
	GrossPay        decimal.Decimal `json:"grossPay"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetPay          decimal.Decimal `json:"netPay"`
	Status          string          `json:"status"`
	PayDate         string          `json:"payDate"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:              r.ID,
		PayrollCode:     r.PayrollCode,
		EmployeeCode:    r.EmployeeCode,
		EmployeeName:    r.EmployeeName,
		Department:      r.Department,
		PayPeriodStart:  formatDay(r.PayPeriodStart),
		PayPeriodEnd:    formatDay(r.PayPeriodEnd),
		BaseSalary:      r.BaseSalary,
		Overtime:        r.Overtime,
		Bonus:           r.Bonus,
		TaxWithholding:  r.TaxWithholding,
		HealthInsurance: r.HealthInsurance,
		Retirement401k:  r.Retirement401k,
		GrossPay:        r.GrossPay,
		TotalDeductions: r.TotalDeductions,
		NetPay:          r.NetPay,
		Status:          string(r.Status),
		PayDate:         formatDay(r.PayDate),
	}
}

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
