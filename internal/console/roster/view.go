// Package roster implements the employee roster screen of the console.
package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/emsportal/ems/internal/client"
	"github.com/emsportal/ems/internal/console"
	"github.com/emsportal/ems/internal/domain/employee"
	"github.com/emsportal/ems/internal/pkg/storage"
	"github.com/shopspring/decimal"
)

const (
	AllDepartments = "All Departments"
	AllStatus      = "All Status"

	ExportFile = "employees.csv"
)

var csvHeader = []string{"Employee ID", "Name", "Email", "Department", "Position", "Status", "Salary", "Join Date", "Phone", "Manager"}

// API is the subset of the EMS client used by the roster.
type API interface {
	ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, id string, req employee.EmployeeRequest) (employee.EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
}

type Filter struct {
	Text       string
	Department string
	Status     string
}

// Form is the add/edit form. Salary is kept as typed.
type Form struct {
	EmployeeCode string
	Name         string
	Email        string
	Department   string
	Position     string
	Status       string
	Salary       string
	JoinDate     string
	Phone        string
	Manager      string
}

// FormFrom loads an existing record into the edit form.
func FormFrom(emp employee.EmployeeResponse) Form {
	return Form{
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
		Email:        emp.Email,
		Department:   emp.Department,
		Position:     emp.Position,
		Status:       emp.Status,
		Salary:       emp.Salary.String(),
		JoinDate:     emp.JoinDate,
		Phone:        emp.Phone,
		Manager:      emp.Manager,
	}
}

type View struct {
	api       API
	files     storage.FileStorage
	employees []employee.EmployeeResponse
	banner    console.Banner
}

func NewView(api API, files storage.FileStorage) *View {
	return &View{api: api, files: files}
}

// Refresh re-fetches the full roster. The previous list is kept on failure.
func (v *View) Refresh(ctx context.Context) error {
	v.banner.Clear()
	list, err := v.api.ListEmployees(ctx)
	if err != nil {
		v.fail("Error loading employees", err)
		return err
	}
	v.employees = list
	return nil
}

func (v *View) Employees() []employee.EmployeeResponse {
	return v.employees
}

func (v *View) Banner() string {
	return v.banner.String()
}

// Find returns the loaded employee with the given server id or employee code.
func (v *View) Find(id string) (employee.EmployeeResponse, bool) {
	for _, emp := range v.employees {
		if emp.ID == id || emp.EmployeeCode == id {
			return emp, true
		}
	}
	return employee.EmployeeResponse{}, false
}

// List applies f to the loaded roster.
func (v *View) List(f Filter) []employee.EmployeeResponse {
	text := strings.ToLower(f.Text)
	out := make([]employee.EmployeeResponse, 0, len(v.employees))
	for _, emp := range v.employees {
		matchesText := strings.Contains(strings.ToLower(emp.Name), text) ||
			strings.Contains(strings.ToLower(emp.Email), text) ||
			strings.Contains(strings.ToLower(emp.EmployeeCode), text)
		if !matchesText {
			continue
		}
		if !console.Matches(emp.Department, f.Department, AllDepartments) {
			continue
		}
		if !console.Matches(emp.Status, f.Status, AllStatus) {
			continue
		}
		out = append(out, emp)
	}
	return out
}

// NextCode is the code assigned to a new employee submitted without one.
func (v *View) NextCode() string {
	codes := make([]string, len(v.employees))
	for i, emp := range v.employees {
		codes[i] = emp.EmployeeCode
	}
	return employee.NextCode(codes)
}

func (v *View) Create(ctx context.Context, form Form) (employee.EmployeeResponse, error) {
	v.banner.Clear()
	req, err := toRequest(form)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if strings.TrimSpace(req.EmployeeCode) == "" {
		req.EmployeeCode = v.NextCode()
	}

	created, err := v.api.CreateEmployee(ctx, req)
	if err != nil {
		v.fail("Error adding employee", err)
		return employee.EmployeeResponse{}, err
	}
	return created, v.Refresh(ctx)
}

// Update saves the edit form for the record with server id. The employee
// code of the loaded record is sent unchanged.
func (v *View) Update(ctx context.Context, id string, form Form) (employee.EmployeeResponse, error) {
	v.banner.Clear()
	if current, ok := v.Find(id); ok {
		form.EmployeeCode = current.EmployeeCode
	}
	req, err := toRequest(form)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := v.api.UpdateEmployee(ctx, id, req)
	if err != nil {
		v.fail("Error updating employee", err)
		return employee.EmployeeResponse{}, err
	}
	return updated, v.Refresh(ctx)
}

// Delete removes the record after confirmation. It reports whether the
// deletion went ahead.
func (v *View) Delete(ctx context.Context, id string, confirm console.Confirmer) (bool, error) {
	if !confirm.Confirm("Are you sure you want to delete this employee?") {
		return false, nil
	}
	v.banner.Clear()
	if err := v.api.DeleteEmployee(ctx, id); err != nil {
		v.fail("Error deleting employee", err)
		return false, err
	}
	return true, v.Refresh(ctx)
}

// CSV renders the loaded, unfiltered roster.
func (v *View) CSV() string {
	rows := make([][]string, 0, len(v.employees)+1)
	rows = append(rows, csvHeader)
	for _, emp := range v.employees {
		rows = append(rows, []string{
			emp.EmployeeCode, emp.Name, emp.Email, emp.Department, emp.Position,
			emp.Status, emp.Salary.String(), emp.JoinDate, emp.Phone, emp.Manager,
		})
	}
	return console.JoinCSV(rows)
}

// ExportCSV writes the roster to employees.csv and returns where it landed.
func (v *View) ExportCSV(ctx context.Context) (string, error) {
	return v.files.Save(ctx, strings.NewReader(v.CSV()), ExportFile)
}

func (v *View) fail(prefix string, err error) {
	v.banner.Set(prefix, err)
	slog.Error(prefix, "error", err)
}

func toRequest(form Form) (employee.EmployeeRequest, error) {
	details := map[string]string{}
	required := []struct{ field, value string }{
		{"name", form.Name},
		{"email", form.Email},
		{"department", form.Department},
		{"position", form.Position},
		{"salary", form.Salary},
		{"joinDate", form.JoinDate},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			details[r.field] = r.field + " is required"
		}
	}
	if len(details) > 0 {
		return employee.EmployeeRequest{}, client.ValidationError("Please fill in all required fields", details)
	}

	salary, err := ParseSalary(form.Salary)
	if err != nil {
		return employee.EmployeeRequest{}, client.ValidationError("Invalid salary", map[string]string{"salary": err.Error()})
	}

	return employee.EmployeeRequest{
		EmployeeCode: form.EmployeeCode,
		Name:         form.Name,
		Email:        form.Email,
		Department:   form.Department,
		Position:     form.Position,
		Status:       form.Status,
		Salary:       salary,
		JoinDate:     form.JoinDate,
		Phone:        form.Phone,
		Manager:      form.Manager,
	}, nil
}

// ParseSalary parses salary text after stripping "$" and ",".
func ParseSalary(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	return d, nil
}
