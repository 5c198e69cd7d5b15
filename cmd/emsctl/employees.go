package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/emsportal/ems/internal/console/roster"
	"github.com/emsportal/ems/internal/domain/employee"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newEmployeesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employee", "emp"},
		Short:   "Manage the employee roster",
	}
	cmd.AddCommand(
		newEmployeesListCmd(a),
		newEmployeesAddCmd(a),
		newEmployeesEditCmd(a),
		newEmployeesDeleteCmd(a),
		newEmployeesExportCmd(a),
	)
	return cmd
}

// loadRoster builds the roster view and fetches the current list.
func loadRoster(cmd *cobra.Command, a *app) (*roster.View, error) {
	view := roster.NewView(a.api, a.files)
	if err := view.Refresh(cmd.Context()); err != nil {
		return nil, err
	}
	return view, nil
}

func newEmployeesListCmd(a *app) *cobra.Command {
	var filter roster.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadRoster(cmd, a)
			if err != nil {
				return err
			}
			list := view.List(filter)
			fmt.Fprintf(a.out, "Employee List (%d employees)\n", len(list))
			if len(list) == 0 {
				fmt.Fprintln(a.out, "No employees found")
				return nil
			}
			return printEmployees(a.out, list)
		},
	}

	cmd.Flags().StringVar(&filter.Text, "search", "", "Match name, email or employee ID")
	cmd.Flags().StringVar(&filter.Department, "department", "", "Department, or \"All Departments\"")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Status, or \"All Status\"")
	return cmd
}

func printEmployees(w io.Writer, list []employee.EmployeeResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMPLOYEE ID\tNAME\tEMAIL\tDEPARTMENT\tPOSITION\tSTATUS\tSALARY\tJOIN DATE")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.EmployeeCode, e.Name, e.Email, e.Department, e.Position, e.Status, money(e.Salary), e.JoinDate)
	}
	return tw.Flush()
}

// bindEmployeeForm registers one flag per form field.
func bindEmployeeForm(f *pflag.FlagSet, form *roster.Form) {
	f.StringVar(&form.EmployeeCode, "employee-id", "", "Employee code; generated when blank")
	f.StringVar(&form.Name, "name", "", "Full name")
	f.StringVar(&form.Email, "email", "", "Email address")
	f.StringVar(&form.Department, "department", "", "Engineering, Marketing, Finance, HR or Sales")
	f.StringVar(&form.Position, "position", "", "Job title")
	f.StringVar(&form.Status, "status", string(employee.StatusActive), "Active, Inactive or On Leave")
	f.StringVar(&form.Salary, "salary", "", "Annual salary, e.g. $75,000")
	f.StringVar(&form.JoinDate, "join-date", "", "Join date, YYYY-MM-DD")
	f.StringVar(&form.Phone, "phone", "", "Phone number")
	f.StringVar(&form.Manager, "manager", "", "Manager name")
}

func newEmployeesAddCmd(a *app) *cobra.Command {
	var form roster.Form

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadRoster(cmd, a)
			if err != nil {
				return err
			}
			created, err := view.Create(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Employee %s added successfully\n", created.EmployeeCode)
			return nil
		},
	}
	bindEmployeeForm(cmd.Flags(), &form)
	return cmd
}

func newEmployeesEditCmd(a *app) *cobra.Command {
	var changes roster.Form

	cmd := &cobra.Command{
		Use:   "edit <id|employee-id>",
		Short: "Edit an employee; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadRoster(cmd, a)
			if err != nil {
				return err
			}
			current, ok := view.Find(args[0])
			if !ok {
				return fmt.Errorf("employee %q not found", args[0])
			}

			form := roster.FormFrom(current)
			f := cmd.Flags()
			overrides := []struct {
				flag string
				dst  *string
				src  string
			}{
				{"name", &form.Name, changes.Name},
				{"email", &form.Email, changes.Email},
				{"department", &form.Department, changes.Department},
				{"position", &form.Position, changes.Position},
				{"status", &form.Status, changes.Status},
				{"salary", &form.Salary, changes.Salary},
				{"join-date", &form.JoinDate, changes.JoinDate},
				{"phone", &form.Phone, changes.Phone},
				{"manager", &form.Manager, changes.Manager},
			}
			for _, o := range overrides {
				if f.Changed(o.flag) {
					*o.dst = o.src
				}
			}

			updated, err := view.Update(cmd.Context(), current.ID, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Employee %s updated successfully\n", updated.EmployeeCode)
			return nil
		},
	}
	bindEmployeeForm(cmd.Flags(), &changes)
	_ = cmd.Flags().MarkHidden("employee-id")
	return cmd
}

func newEmployeesDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id|employee-id>",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadRoster(cmd, a)
			if err != nil {
				return err
			}
			current, ok := view.Find(args[0])
			if !ok {
				return fmt.Errorf("employee %q not found", args[0])
			}

			deleted, err := view.Delete(cmd.Context(), current.ID, confirmer(a, yes))
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintf(a.out, "Employee %s deleted\n", current.EmployeeCode)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newEmployeesExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the full roster to employees.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadRoster(cmd, a)
			if err != nil {
				return err
			}
			path, err := view.ExportCSV(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Exported %d employees to %s\n", len(view.Employees()), path)
			return nil
		},
	}
}
