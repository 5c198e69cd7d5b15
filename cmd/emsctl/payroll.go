package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/emsportal/ems/internal/console/payroll"
	domainPayroll "github.com/emsportal/ems/internal/domain/payroll"
	"github.com/spf13/cobra"
)

// payrollFields maps flag names to form fields. Flags are applied through
// Form.Set so the totals follow every amount change.
var payrollFields = []struct {
	flag  string
	field string
	usage string
}{
	{"payroll-id", payroll.FieldPayrollID, "Payroll code; generated when blank"},
	{"employee-id", payroll.FieldEmployeeID, "Employee code"},
	{"employee-name", payroll.FieldEmployeeName, "Employee name"},
	{"department", payroll.FieldDepartment, "Department"},
	{"period-start", payroll.FieldPayPeriodStart, "Pay period start, YYYY-MM-DD"},
	{"period-end", payroll.FieldPayPeriodEnd, "Pay period end, YYYY-MM-DD"},
	{"base-salary", payroll.FieldBaseSalary, "Base salary"},
	{"overtime", payroll.FieldOvertime, "Overtime pay"},
	{"bonus", payroll.FieldBonus, "Bonus"},
	{"tax", payroll.FieldTaxWithholding, "Tax withholding"},
	{"health", payroll.FieldHealthInsurance, "Health insurance"},
	{"retirement", payroll.FieldRetirement401k, "401k contribution"},
	{"status", payroll.FieldStatus, "Draft, Calculated, Approved, Processed or Paid"},
	{"pay-date", payroll.FieldPayDate, "Pay date, YYYY-MM-DD"},
}

func newPayrollCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Manage payroll records",
	}
	cmd.AddCommand(
		newPayrollListCmd(a),
		newPayrollFormCmd(a, false),
		newPayrollFormCmd(a, true),
		newPayrollViewCmd(a),
		newPayrollDeleteCmd(a),
		newPayrollExportCmd(a),
	)
	return cmd
}

func loadPayroll(cmd *cobra.Command, a *app) (*payroll.View, error) {
	view := payroll.NewView(a.api, a.files)
	if err := view.Refresh(cmd.Context()); err != nil {
		return nil, err
	}
	return view, nil
}

func newPayrollListCmd(a *app) *cobra.Command {
	var filter payroll.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payroll records",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadPayroll(cmd, a)
			if err != nil {
				return err
			}
			list := view.List(filter)
			fmt.Fprintf(a.out, "Payroll Records (%d records)\n", len(list))
			if len(list) == 0 {
				fmt.Fprintln(a.out, "No payroll records found")
				return nil
			}
			return printPayroll(a.out, list)
		},
	}

	cmd.Flags().StringVar(&filter.Text, "search", "", "Match employee name, employee ID or payroll ID")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Status, or \"All Status\"")
	return cmd
}

func printPayroll(w io.Writer, list []domainPayroll.RecordResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPAYROLL ID\tEMPLOYEE\tPERIOD\tGROSS\tDEDUCTIONS\tNET\tSTATUS")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s (%s)\t%s - %s\t%s\t%s\t%s\t%s\n",
			r.ID, r.PayrollCode, r.EmployeeName, r.EmployeeCode, r.PayPeriodStart, r.PayPeriodEnd,
			money(r.GrossPay), money(r.TotalDeductions), money(r.NetPay), r.Status)
	}
	return tw.Flush()
}

// newPayrollFormCmd builds "add", or "edit" when edit is set.
func newPayrollFormCmd(a *app, edit bool) *cobra.Command {
	values := make([]string, len(payrollFields))

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a payroll record",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadPayroll(cmd, a)
			if err != nil {
				return err
			}

			form := payroll.NewForm()
			var id string
			if edit {
				current, ok := view.Find(args[0])
				if !ok {
					return fmt.Errorf("payroll record %q not found", args[0])
				}
				form = payroll.FormFrom(current)
				id = current.ID
			}

			for i, pf := range payrollFields {
				if !edit || cmd.Flags().Changed(pf.flag) {
					if err := form.Set(pf.field, values[i]); err != nil {
						return err
					}
				}
			}
			if !edit && form.Status == "" {
				form.Status = string(domainPayroll.StatusDraft)
			}

			var saved domainPayroll.RecordResponse
			if edit {
				saved, err = view.Update(cmd.Context(), id, form)
			} else {
				saved, err = view.Create(cmd.Context(), form)
			}
			if err != nil {
				return err
			}

			verb := "added"
			if edit {
				verb = "updated"
			}
			fmt.Fprintf(a.out, "Payroll record %s %s successfully\n", saved.PayrollCode, verb)
			return nil
		},
	}

	if edit {
		cmd.Use = "edit <id|payroll-id>"
		cmd.Short = "Edit a payroll record; only the given flags change"
		cmd.Args = cobra.ExactArgs(1)
	}

	for i, pf := range payrollFields {
		cmd.Flags().StringVar(&values[i], pf.flag, "", pf.usage)
	}
	return cmd
}

func newPayrollViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view <id|payroll-id>",
		Short: "Show one payroll record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadPayroll(cmd, a)
			if err != nil {
				return err
			}
			rec, ok := view.Find(args[0])
			if !ok {
				if rec, err = a.api.GetPayroll(cmd.Context(), args[0]); err != nil {
					return err
				}
			}
			return payroll.Detail(a.out, rec)
		},
	}
}

func newPayrollDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id|payroll-id>",
		Short: "Delete a payroll record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadPayroll(cmd, a)
			if err != nil {
				return err
			}
			rec, ok := view.Find(args[0])
			if !ok {
				return fmt.Errorf("payroll record %q not found", args[0])
			}
			deleted, err := view.Delete(cmd.Context(), rec.ID, confirmer(a, yes))
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintf(a.out, "Payroll record %s deleted\n", rec.PayrollCode)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newPayrollExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export every payroll record to payroll-records.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadPayroll(cmd, a)
			if err != nil {
				return err
			}
			path, err := view.ExportCSV(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Exported %d records to %s\n", len(view.Records()), path)
			return nil
		},
	}
}
