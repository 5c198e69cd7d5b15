package payroll

import (
	"fmt"
	"strings"

	"github.com/emsportal/ems/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Form field names, matching the JSON names of payroll records.
const (
	FieldPayrollID       = "payrollId"
	FieldEmployeeID      = "employeeId"
	FieldEmployeeName    = "employeeName"
	FieldDepartment      = "department"
	FieldPayPeriodStart  = "payPeriodStart"
	FieldPayPeriodEnd    = "payPeriodEnd"
	FieldBaseSalary      = "baseSalary"
	FieldOvertime        = "overtime"
	FieldBonus           = "bonus"
	FieldTaxWithholding  = "taxWithholding"
	FieldHealthInsurance = "healthInsurance"
	FieldRetirement401k  = "retirement401k"
	FieldStatus          = "status"
	FieldPayDate         = "payDate"
)

// Form is the add/edit payroll form. Amounts are kept as typed; the three
// totals are display strings recomputed whenever an amount changes.
type Form struct {
	PayrollID       string
	EmployeeID      string
	EmployeeName    string
	Department      string
	PayPeriodStart  string
	PayPeriodEnd    string
	BaseSalary      string
	Overtime        string
	Bonus           string
	TaxWithholding  string
	HealthInsurance string
	Retirement401k  string
	Status          string
	PayDate         string

	GrossPay        string
	TotalDeductions string
	NetPay          string
}

func NewForm() Form {
	return Form{Status: string(payroll.StatusDraft)}
}

// FormFrom loads a stored record into the edit form.
func FormFrom(r payroll.RecordResponse) Form {
	return Form{
		PayrollID:       r.PayrollCode,
		EmployeeID:      r.EmployeeCode,
		EmployeeName:    r.EmployeeName,
		Department:      r.Department,
		PayPeriodStart:  r.PayPeriodStart,
		PayPeriodEnd:    r.PayPeriodEnd,
		BaseSalary:      r.BaseSalary.String(),
		Overtime:        r.Overtime.String(),
		Bonus:           r.Bonus.String(),
		TaxWithholding:  r.TaxWithholding.String(),
		HealthInsurance: r.HealthInsurance.String(),
		Retirement401k:  r.Retirement401k.String(),
		Status:          r.Status,
		PayDate:         r.PayDate,
		GrossPay:        r.GrossPay.StringFixed(2),
		TotalDeductions: r.TotalDeductions.StringFixed(2),
		NetPay:          r.NetPay.StringFixed(2),
	}
}

// Set updates one field by name and recomputes the totals when an amount changed.
func (f *Form) Set(field, value string) error {
	amount := true
	switch field {
	case FieldBaseSalary:
		f.BaseSalary = value
	case FieldOvertime:
		f.Overtime = value
	case FieldBonus:
		f.Bonus = value
	case FieldTaxWithholding:
		f.TaxWithholding = value
	case FieldHealthInsurance:
		f.HealthInsurance = value
	case FieldRetirement401k:
		f.Retirement401k = value
	default:
		amount = false
	}
	if amount {
		f.Recompute()
		return nil
	}

	switch field {
	case FieldPayrollID:
		f.PayrollID = value
	case FieldEmployeeID:
		f.EmployeeID = value
	case FieldEmployeeName:
		f.EmployeeName = value
	case FieldDepartment:
		f.Department = value
	case FieldPayPeriodStart:
		f.PayPeriodStart = value
	case FieldPayPeriodEnd:
		f.PayPeriodEnd = value
	case FieldStatus:
		f.Status = value
	case FieldPayDate:
		f.PayDate = value
	default:
		return fmt.Errorf("unknown payroll field %q", field)
	}
	return nil
}

// Recompute refreshes the totals from the current amounts.
func (f *Form) Recompute() {
	t := payroll.Compute(f.amounts())
	f.GrossPay = t.GrossPay.StringFixed(2)
	f.TotalDeductions = t.TotalDeductions.StringFixed(2)
	f.NetPay = t.NetPay.StringFixed(2)
}

func (f *Form) amounts() payroll.Amounts {
	return payroll.Amounts{
		BaseSalary:      parseAmount(f.BaseSalary),
		Overtime:        parseAmount(f.Overtime),
		Bonus:           parseAmount(f.Bonus),
		TaxWithholding:  parseAmount(f.TaxWithholding),
		HealthInsurance: parseAmount(f.HealthInsurance),
		Retirement401k:  parseAmount(f.Retirement401k),
	}
}

// parseAmount reads a form amount; blank or unparseable text counts as 0.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (f *Form) request() payroll.RecordRequest {
	f.Recompute()
	a := f.amounts()
	return payroll.RecordRequest{
		PayrollCode:     f.PayrollID,
		EmployeeCode:    f.EmployeeID,
		EmployeeName:    f.EmployeeName,
		Department:      f.Department,
		PayPeriodStart:  f.PayPeriodStart,
		PayPeriodEnd:    f.PayPeriodEnd,
		BaseSalary:      a.BaseSalary,
		Overtime:        a.Overtime,
		Bonus:           a.Bonus,
		TaxWithholding:  a.TaxWithholding,
		HealthInsurance: a.HealthInsurance,
		Retirement401k:  a.Retirement401k,
		GrossPay:        parseAmount(f.GrossPay),
		TotalDeductions: parseAmount(f.TotalDeductions),
		NetPay:          parseAmount(f.NetPay),
		Status:          f.Status,
		PayDate:         f.PayDate,
	}
}
