package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/emsportal/ems/internal/console/dashboard"
	domainDashboard "github.com/emsportal/ems/internal/domain/dashboard"
	"github.com/spf13/cobra"
)

func newDashboardCmd(a *app) *cobra.Command {
	var (
		watch bool
		open  string
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the overview: headcount, departments and recent hires",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := dashboard.NewShell(a.api, a.session, a.cfg.RefreshInterval)
			ctx := cmd.Context()

			if open != "" {
				if err := shell.Navigate(domainDashboard.Destination(open)); err != nil {
					return err
				}
			}

			if !watch {
				if err := shell.Refresh(ctx); err != nil {
					return err
				}
				return printSummary(a.out, shell.Summary(), shell.Current(), nil)
			}

			shell.Start(ctx)
			defer shell.Stop()

			ticker := time.NewTicker(a.cfg.RefreshInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := printSummary(a.out, shell.Summary(), shell.Current(), shell.LastError()); err != nil {
						return err
					}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep refreshing until interrupted")
	cmd.Flags().StringVar(&open, "open", "", "Section to open: overview, employees, attendance or payroll")
	return cmd
}

func printSummary(w io.Writer, s domainDashboard.Summary, current domainDashboard.Destination, lastErr error) error {
	fmt.Fprintf(w, "Total employees: %d\n", s.TotalEmployees)
	fmt.Fprintf(w, "New hires this month: %d\n", s.NewHiresThisMonth)
	if lastErr != nil {
		fmt.Fprintf(w, "Last refresh failed: %v\n", lastErr)
	}

	fmt.Fprintln(w, "\nDepartments")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, d := range s.Departments {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", d.Name, d.Value, d.Color)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nRecent employees")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range s.RecentEmployees {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Position, r.Department, r.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprint(w, "\nNavigate:")
	for _, d := range domainDashboard.Destinations() {
		if d == current {
			fmt.Fprintf(w, " [%s]", d)
			continue
		}
		fmt.Fprintf(w, " %s", d)
	}
	fmt.Fprintln(w, " | logout")

	if current != domainDashboard.DestinationOverview {
		fmt.Fprintf(w, "Run: emsctl %s list\n", current)
	}
	return nil
}
