package payroll

import "errors"

var (
	ErrPayrollRecordNotFound = errors.New("payroll record not found")
	ErrPayrollCodeExists     = errors.New("payroll code already exists")
	ErrInvalidPeriod         = errors.New("pay period end is before pay period start")
)
