package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/emsportal/ems/internal/domain/employee"
	"github.com/emsportal/ems/internal/pkg/validator"
	"github.com/emsportal/ems/internal/repository/postgresql"
	"github.com/google/uuid"
)

type EmployeeServiceImpl struct {
	tx           postgresql.Transactor
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(tx postgresql.Transactor, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}
	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := req.ToEmployee()
	newEmployee.EmployeeCode = strings.TrimSpace(newEmployee.EmployeeCode)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee id: %w", err)
	}
	newEmployee.ID = id.String()

	var created employee.Employee
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if newEmployee.EmployeeCode == "" {
			codes, err := s.employeeRepo.ListCodes(ctx)
			if err != nil {
				return err
			}
			newEmployee.EmployeeCode = employee.NextCode(codes)
		} else {
			exists, err := s.employeeRepo.ExistsByCode(ctx, newEmployee.EmployeeCode, nil)
			if err != nil {
				return err
			}
			if exists {
				return employee.ErrEmployeeCodeExists
			}
		}

		created, err = s.employeeRepo.Create(ctx, newEmployee)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "employee_code", created.EmployeeCode)
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id string, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		changes := req.ToEmployee()
		changes.ID = existing.ID
		changes.CreatedAt = existing.CreatedAt
		changes.EmployeeCode = strings.TrimSpace(changes.EmployeeCode)

		switch {
		case changes.EmployeeCode == "":
			changes.EmployeeCode = existing.EmployeeCode
		case changes.EmployeeCode != existing.EmployeeCode:
			exists, err := s.employeeRepo.ExistsByCode(ctx, changes.EmployeeCode, &existing.ID)
			if err != nil {
				return err
			}
			if exists {
				return employee.ErrEmployeeCodeExists
			}
		}

		updated, err = s.employeeRepo.Update(ctx, changes)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return employee.ErrEmployeeNotFound
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Employee deleted", "employee_id", id)
	return nil
}
