package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/emsportal/ems/internal/domain/payroll"
	"github.com/emsportal/ems/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const payrollColumns = `
	id, payroll_code, employee_code, employee_name, department, pay_period_start, pay_period_end,
	base_salary, overtime, bonus, tax_withholding, health_insurance, retirement_401k,
	gross_pay, total_deductions, net_pay, status, pay_date, created_at, updated_at`

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

func scanPayrollRecord(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	err := row.Scan(
		&rec.ID, &rec.PayrollCode, &rec.EmployeeCode, &rec.EmployeeName, &rec.Department,
		&rec.PayPeriodStart, &rec.PayPeriodEnd,
		&rec.BaseSalary, &rec.Overtime, &rec.Bonus, &rec.TaxWithholding, &rec.HealthInsurance, &rec.Retirement401k,
		&rec.GrossPay, &rec.TotalDeductions, &rec.NetPay, &rec.Status, &rec.PayDate,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func payrollArgs(rec payroll.Record) []interface{} {
	return []interface{}{
		rec.ID, rec.PayrollCode, rec.EmployeeCode, rec.EmployeeName, rec.Department,
		rec.PayPeriodStart, rec.PayPeriodEnd,
		rec.BaseSalary, rec.Overtime, rec.Bonus, rec.TaxWithholding, rec.HealthInsurance, rec.Retirement401k,
		rec.GrossPay, rec.TotalDeductions, rec.NetPay, rec.Status, rec.PayDate,
	}
}

// List implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) List(ctx context.Context) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT`+payrollColumns+` FROM payroll_records ORDER BY created_at, payroll_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.Record, 0)
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}
	return records, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, `SELECT`+payrollColumns+` FROM payroll_records WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record with id %s: %w", id, err)
	}
	return rec, nil
}

// ListCodes implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListCodes(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT payroll_code FROM payroll_records`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll codes: %w", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect payroll codes: %w", err)
	}
	return codes, nil
}

// ExistsByCode implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ExistsByCode(ctx context.Context, payrollCode string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM payroll_records WHERE payroll_code = $1 AND ($2::uuid IS NULL OR id <> $2::uuid))`

	var exists bool
	if err := q.QueryRow(ctx, query, payrollCode, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payroll code %s: %w", payrollCode, err)
	}
	return exists, nil
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Create(ctx context.Context, rec payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, payroll_code, employee_code, employee_name, department, pay_period_start, pay_period_end,
			base_salary, overtime, bonus, tax_withholding, health_insurance, retirement_401k,
			gross_pay, total_deductions, net_pay, status, pay_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING` + payrollColumns

	created, err := scanPayrollRecord(q.QueryRow(ctx, query, payrollArgs(rec)...))
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}
	return created, nil
}

// Update implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Update(ctx context.Context, rec payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET payroll_code = $2, employee_code = $3, employee_name = $4, department = $5,
			pay_period_start = $6, pay_period_end = $7,
			base_salary = $8, overtime = $9, bonus = $10, tax_withholding = $11,
			health_insurance = $12, retirement_401k = $13,
			gross_pay = $14, total_deductions = $15, net_pay = $16, status = $17, pay_date = $18,
			updated_at = NOW()
		WHERE id = $1
		RETURNING` + payrollColumns

	updated, err := scanPayrollRecord(q.QueryRow(ctx, query, payrollArgs(rec)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to update payroll record with id %s: %w", rec.ID, err)
	}
	return updated, nil
}

// Delete implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}
