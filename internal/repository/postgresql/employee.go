package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/emsportal/ems/internal/domain/employee"
	"github.com/emsportal/ems/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `
	id, employee_code, name, email, phone, department, position, manager,
	status, salary, join_date, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.Name, &emp.Email, &emp.Phone, &emp.Department,
		&emp.Position, &emp.Manager, &emp.Status, &emp.Salary, &emp.JoinDate,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT`+employeeColumns+` FROM employees ORDER BY created_at, employee_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, `SELECT`+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return emp, nil
}

// ListCodes implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListCodes(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT employee_code FROM employees`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee codes: %w", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect employee codes: %w", err)
	}
	return codes, nil
}

// ExistsByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByCode(ctx context.Context, employeeCode string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_code = $1 AND ($2::uuid IS NULL OR id <> $2::uuid))`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeCode, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee code %s: %w", employeeCode, err)
	}
	return exists, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, employee_code, name, email, phone, department, position, manager, status, salary, join_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.EmployeeCode, newEmployee.Name, newEmployee.Email, newEmployee.Phone,
		newEmployee.Department, newEmployee.Position, newEmployee.Manager, newEmployee.Status,
		newEmployee.Salary, newEmployee.JoinDate,
	))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET employee_code = $2, name = $3, email = $4, phone = $5, department = $6, position = $7,
			manager = $8, status = $9, salary = $10, join_date = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING` + employeeColumns

	emp, err := scanEmployee(q.QueryRow(ctx, query,
		updated.ID, updated.EmployeeCode, updated.Name, updated.Email, updated.Phone,
		updated.Department, updated.Position, updated.Manager, updated.Status,
		updated.Salary, updated.JoinDate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", updated.ID, err)
	}
	return emp, nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
