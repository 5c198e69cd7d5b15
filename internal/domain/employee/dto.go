package employee

import (
	"time"

	"github.com/emsportal/ems/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// EmployeeRequest is the body of POST /api/employees and PUT /api/employees/{id}.
type EmployeeRequest struct {
	EmployeeCode string          `json:"employeeId"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Department   string          `json:"department"`
	Position     string          `json:"position"`
	Status       string          `json:"status"`
	Salary       decimal.Decimal `json:"salary"`
	JoinDate     string          `json:"joinDate"`
	Phone        string          `json:"phone"`
	Manager      string          `json:"manager"`
}

func (r *EmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("name", r.Name)
	errs.Required("email", r.Email)
	errs.Required("department", r.Department)
	errs.Required("position", r.Position)
	errs.Required("joinDate", r.JoinDate)

	if !validator.IsEmpty(r.Email) && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if !validator.IsEmpty(r.Department) && !Department(r.Department).Valid() {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department must be one of Engineering, Marketing, Finance, HR, Sales"})
	}
	if r.Status != "" && !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be Active, Inactive or On Leave"})
	}
	if r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must be non-negative"})
	}
	if !validator.IsEmpty(r.JoinDate) {
		if _, ok := validator.ParseDay(r.JoinDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "joinDate", Message: "joinDate must be YYYY-MM-DD or an ISO8601 timestamp"})
		}
	}

	return errs.OrNil()
}

// ToEmployee maps a validated request onto an entity. ID and timestamps are left to the caller.
func (r *EmployeeRequest) ToEmployee() Employee {
	status := Status(r.Status)
	if status == "" {
		status = StatusActive
	}

	var joinDate *time.Time
	if d, ok := validator.ParseDay(r.JoinDate); ok {
		joinDate = &d
	}

	return Employee{
		EmployeeCode: r.EmployeeCode,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Department:   Department(r.Department),
		Position:     r.Position,
		Manager:      r.Manager,
		Status:       status,
		Salary:       r.Salary,
		JoinDate:     joinDate,
	}
}

// EmployeeResponse is the wire shape of an employee record.
type EmployeeResponse struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employeeId"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Department   string          `json:"department"`
	Position     string          `json:"position"`
	Status       string          `json:"status"`
	Salary       decimal.Decimal `json:"salary"`
	JoinDate     string          `json:"joinDate,omitempty"`
	Phone        string          `json:"phone"`
	Manager      string          `json:"manager"`
	CreatedAt    string          `json:"createdAt,omitempty"`
}

func NewEmployeeResponse(emp Employee) EmployeeResponse {
	var joinDate string
	if emp.JoinDate != nil {
		joinDate = emp.JoinDate.Format("2006-01-02")
	}
	var createdAt string
	if !emp.CreatedAt.IsZero() {
		createdAt = emp.CreatedAt.UTC().Format(time.RFC3339)
	}

	return EmployeeResponse{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
		Email:        emp.Email,
		Department:   string(emp.Department),
		Position:     emp.Position,
		Status:       string(emp.Status),
		Salary:       emp.Salary,
		JoinDate:     joinDate,
		Phone:        emp.Phone,
		Manager:      emp.Manager,
		CreatedAt:    createdAt,
	}
}
