package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	consoleAttendance "github.com/emsportal/ems/internal/console/attendance"
	"github.com/emsportal/ems/internal/domain/attendance"
	"github.com/spf13/cobra"
)

func newAttendanceCmd(a *app) *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Review generated attendance for the current month",
		Long: "Attendance is generated per employee for the weekdays of the current month.\n" +
			"Records live only for the duration of the command; pass --seed to reproduce a run.",
	}
	cmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for the generator (0 = time based)")

	load := func(cmd *cobra.Command) (*consoleAttendance.View, error) {
		s := seed
		if s == 0 {
			s = uint64(time.Now().UnixNano())
		}
		provider := consoleAttendance.NewSyntheticProvider(rand.New(rand.NewPCG(s, s>>1)))
		view := consoleAttendance.NewView(a.api, provider)
		if err := view.Refresh(cmd.Context()); err != nil {
			return nil, err
		}
		return view, nil
	}

	cmd.AddCommand(newAttendanceListCmd(a, load), newAttendanceEditCmd(a, load))
	return cmd
}

type attendanceLoader func(cmd *cobra.Command) (*consoleAttendance.View, error)

func newAttendanceListCmd(a *app, load attendanceLoader) *cobra.Command {
	var (
		search  string
		month   string
		records bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show attendance rates and monthly totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := load(cmd)
			if err != nil {
				return err
			}
			if month == "" {
				month = view.CurrentMonth()
			}

			stats := view.MonthlyStats(month)
			fmt.Fprintf(a.out, "%s: %d records, %d present, %d absent, %d late\n\n",
				month, stats.TotalRecords, stats.Present, stats.Absent, stats.Late)

			return printAttendance(a.out, view.Filter(search, month), records)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Match name, employee ID or department")
	cmd.Flags().StringVar(&month, "month", "", "Month to show, YYYY-MM (default current)")
	cmd.Flags().BoolVar(&records, "records", false, "Print every daily record")
	return cmd
}

func printAttendance(w io.Writer, list []attendance.EmployeeAttendance, withRecords bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EMPLOYEE ID\tNAME\tDEPARTMENT\tRATE")
	for _, emp := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f%%\n", emp.EmployeeCode, emp.Name, emp.Department, emp.AttendanceRate)
		if !withRecords {
			continue
		}
		for _, r := range emp.Records {
			fmt.Fprintf(tw, "  %s\t%s\t%s - %s\t%.1fh %s\n", r.ID, r.Date, r.CheckIn, r.CheckOut, r.WorkHours, r.Status)
		}
	}
	return tw.Flush()
}

func newAttendanceEditCmd(a *app, load attendanceLoader) *cobra.Command {
	var status, checkIn, checkOut, notes string

	cmd := &cobra.Command{
		Use:   "edit <employee> <record-id>",
		Short: "Correct one record and show the recomputed rate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := load(cmd)
			if err != nil {
				return err
			}

			var patch attendance.Patch
			f := cmd.Flags()
			if f.Changed("status") {
				s := attendance.Status(status)
				patch.Status = &s
			}
			if f.Changed("check-in") {
				patch.CheckIn = &checkIn
			}
			if f.Changed("check-out") {
				patch.CheckOut = &checkOut
			}
			if f.Changed("notes") {
				patch.Notes = &notes
			}

			rec, err := view.Edit(args[0], args[1], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s %s %s-%s %.1fh %s\n", rec.ID, rec.Date, rec.CheckIn, rec.CheckOut, rec.WorkHours, rec.Status)
			for _, emp := range view.Employees() {
				if emp.EmployeeID == args[0] || emp.EmployeeCode == args[0] {
					fmt.Fprintf(a.out, "Attendance rate for %s: %.1f%%\n", emp.Name, emp.AttendanceRate)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Present, Late, Half Day or Absent")
	cmd.Flags().StringVar(&checkIn, "check-in", "", "Check-in HH:MM; empty clears it")
	cmd.Flags().StringVar(&checkOut, "check-out", "", "Check-out HH:MM; empty clears it")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	return cmd
}
