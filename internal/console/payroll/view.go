// Package payroll implements the payroll screen of the console.
package payroll

import (
	"context"
	"log/slog"
	"strings"

	"github.com/emsportal/ems/internal/client"
	"github.com/emsportal/ems/internal/console"
	"github.com/emsportal/ems/internal/domain/payroll"
	"github.com/emsportal/ems/internal/pkg/storage"
)

const (
	AllStatus = "All Status"

	ExportFile = "payroll-records.csv"
)

var csvHeader = []string{
	"Payroll ID", "Employee ID", "Employee Name", "Department", "Period Start", "Period End",
	"Base Salary", "Overtime", "Bonus", "Tax Withholding", "Health Insurance", "401k",
	"Gross Pay", "Total Deductions", "Net Pay", "Status", "Pay Date",
}

// API is the subset of the EMS client used by the payroll screen.
type API interface {
	ListPayroll(ctx context.Context) ([]payroll.RecordResponse, error)
	CreatePayroll(ctx context.Context, req payroll.RecordRequest) (payroll.RecordResponse, error)
	UpdatePayroll(ctx context.Context, id string, req payroll.RecordRequest) (payroll.RecordResponse, error)
	DeletePayroll(ctx context.Context, id string) error
}

type Filter struct {
	Text   string
	Status string
}

type View struct {
	api     API
	files   storage.FileStorage
	records []payroll.RecordResponse
	banner  console.Banner
}

func NewView(api API, files storage.FileStorage) *View {
	return &View{api: api, files: files}
}

func (v *View) Refresh(ctx context.Context) error {
	v.banner.Clear()
	list, err := v.api.ListPayroll(ctx)
	if err != nil {
		v.fail("Error loading payroll records", err)
		return err
	}
	v.records = list
	return nil
}

func (v *View) Records() []payroll.RecordResponse {
	return v.records
}

func (v *View) Banner() string {
	return v.banner.String()
}

func (v *View) Find(id string) (payroll.RecordResponse, bool) {
	for _, r := range v.records {
		if r.ID == id || r.PayrollCode == id {
			return r, true
		}
	}
	return payroll.RecordResponse{}, false
}

func (v *View) List(f Filter) []payroll.RecordResponse {
	text := strings.ToLower(f.Text)
	out := make([]payroll.RecordResponse, 0, len(v.records))
	for _, r := range v.records {
		matchesText := strings.Contains(strings.ToLower(r.EmployeeName), text) ||
			strings.Contains(strings.ToLower(r.EmployeeCode), text) ||
			strings.Contains(strings.ToLower(r.PayrollCode), text)
		if matchesText && console.Matches(r.Status, f.Status, AllStatus) {
			out = append(out, r)
		}
	}
	return out
}

func (v *View) NextCode() string {
	codes := make([]string, len(v.records))
	for i, r := range v.records {
		codes[i] = r.PayrollCode
	}
	return payroll.NextCode(codes)
}

func (v *View) Create(ctx context.Context, form Form) (payroll.RecordResponse, error) {
	v.banner.Clear()
	if err := checkRequired(form); err != nil {
		return payroll.RecordResponse{}, err
	}
	if strings.TrimSpace(form.PayrollID) == "" {
		form.PayrollID = v.NextCode()
	}

	created, err := v.api.CreatePayroll(ctx, form.request())
	if err != nil {
		v.fail("Error adding payroll", err)
		return payroll.RecordResponse{}, err
	}
	return created, v.Refresh(ctx)
}

func (v *View) Update(ctx context.Context, id string, form Form) (payroll.RecordResponse, error) {
	v.banner.Clear()
	if err := checkRequired(form); err != nil {
		return payroll.RecordResponse{}, err
	}
	if strings.TrimSpace(form.PayrollID) == "" {
		form.PayrollID = v.NextCode()
	}

	updated, err := v.api.UpdatePayroll(ctx, id, form.request())
	if err != nil {
		v.fail("Error updating payroll", err)
		return payroll.RecordResponse{}, err
	}
	return updated, v.Refresh(ctx)
}

func (v *View) Delete(ctx context.Context, id string, confirm console.Confirmer) (bool, error) {
	if !confirm.Confirm("Delete this payroll record?") {
		return false, nil
	}
	v.banner.Clear()
	if err := v.api.DeletePayroll(ctx, id); err != nil {
		v.fail("Error deleting payroll", err)
		return false, err
	}
	return true, v.Refresh(ctx)
}

// CSV renders every loaded record, unfiltered.
func (v *View) CSV() string {
	rows := make([][]string, 0, len(v.records)+1)
	rows = append(rows, csvHeader)
	for _, r := range v.records {
		rows = append(rows, []string{
			r.PayrollCode, r.EmployeeCode, r.EmployeeName, r.Department, r.PayPeriodStart, r.PayPeriodEnd,
			r.BaseSalary.String(), r.Overtime.String(), r.Bonus.String(),
			r.TaxWithholding.String(), r.HealthInsurance.String(), r.Retirement401k.String(),
			r.GrossPay.String(), r.TotalDeductions.String(), r.NetPay.String(),
			r.Status, r.PayDate,
		})
	}
	return console.JoinCSV(rows)
}

func (v *View) ExportCSV(ctx context.Context) (string, error) {
	return v.files.Save(ctx, strings.NewReader(v.CSV()), ExportFile)
}

func (v *View) fail(prefix string, err error) {
	v.banner.Set(prefix, err)
	slog.Error(prefix, "error", err)
}

func checkRequired(form Form) error {
	details := map[string]string{}
	if strings.TrimSpace(form.EmployeeID) == "" {
		details[FieldEmployeeID] = "employeeId is required"
	}
	if strings.TrimSpace(form.EmployeeName) == "" {
		details[FieldEmployeeName] = "employeeName is required"
	}
	if strings.TrimSpace(form.BaseSalary) == "" {
		details[FieldBaseSalary] = "baseSalary is required"
	}
	if len(details) > 0 {
		return client.ValidationError("Please fill required fields", details)
	}
	return nil
}
