package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees returns the whole roster; filtering happens client-side
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee creates a new employee, generating the employee code when blank
	CreateEmployee(ctx context.Context, req EmployeeRequest) (EmployeeResponse, error)

	UpdateEmployee(ctx context.Context, id string, req EmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee hard deletes an employee
	DeleteEmployee(ctx context.Context, id string) error
}
