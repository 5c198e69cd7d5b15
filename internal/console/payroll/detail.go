package payroll

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/emsportal/ems/internal/domain/payroll"
)

// Detail writes the read-only detail of a stored record. Totals are shown as
// stored, never recomputed.
func Detail(w io.Writer, r payroll.RecordResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Payroll ID", r.PayrollCode},
		{"Employee", fmt.Sprintf("%s (%s)", r.EmployeeName, r.EmployeeCode)},
		{"Department", r.Department},
		{"Pay Period", r.PayPeriodStart + " to " + r.PayPeriodEnd},
		{"Base Salary", money(r.BaseSalary.StringFixed(2))},
		{"Overtime", money(r.Overtime.StringFixed(2))},
		{"Bonus", money(r.Bonus.StringFixed(2))},
		{"Gross Pay", money(r.GrossPay.StringFixed(2))},
		{"Tax Withholding", money(r.TaxWithholding.StringFixed(2))},
		{"Health Insurance", money(r.HealthInsurance.StringFixed(2))},
		{"401k", money(r.Retirement401k.StringFixed(2))},
		{"Total Deductions", money(r.TotalDeductions.StringFixed(2))},
		{"Net Pay", money(r.NetPay.StringFixed(2))},
		{"Status", r.Status},
		{"Pay Date", r.PayDate},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func money(s string) string {
	return "$" + s
}
