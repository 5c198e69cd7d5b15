package payroll

import "github.com/shopspring/decimal"

// Amounts are the user-entered inputs of a payroll record.
type Amounts struct {
	BaseSalary      decimal.Decimal
	Overtime        decimal.Decimal
	Bonus           decimal.Decimal
	TaxWithholding  decimal.Decimal
	HealthInsurance decimal.Decimal
	Retirement401k  decimal.Decimal
}

// Totals are derived from Amounts and never accepted from callers.
type Totals struct {
	GrossPay        decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
}

// Compute derives gross, deductions and net pay, each rounded to cents.
func Compute(a Amounts) Totals {
	gross := a.BaseSalary.Add(a.Overtime).Add(a.Bonus)
	deductions := a.TaxWithholding.Add(a.HealthInsurance).Add(a.Retirement401k)
	return Totals{
		GrossPay:        gross.Round(2),
		TotalDeductions: deductions.Round(2),
		NetPay:          gross.Sub(deductions).Round(2),
	}
}
