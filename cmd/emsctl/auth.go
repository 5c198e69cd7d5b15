package main

import (
	"fmt"

	"github.com/emsportal/ems/internal/console/auth"
	"github.com/emsportal/ems/internal/console/dashboard"
	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var (
		email        string
		password     string
		showPassword bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := auth.NewView(a.api, a.session)
			view.ShowPassword = showPassword

			var err error
			if email == "" {
				if email, err = a.prompt.Line("Email"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompt.Secret("Password", view.ShowPassword); err != nil {
					return err
				}
			}

			res, err := view.SubmitLogin(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, res.Message)
			fmt.Fprintf(a.out, "Redirecting to %s\n", res.Destination)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	cmd.Flags().BoolVar(&showPassword, "show-password", false, "Echo the password while typing")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var (
		form         auth.Form
		showPassword bool
		showConfirm  bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a company and its administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := auth.NewView(a.api, a.session)
			view.ToggleMode()
			view.ShowPassword = showPassword
			view.ShowConfirm = showConfirm

			var err error
			if form.AdminPassword == "" {
				if form.AdminPassword, err = a.prompt.Secret("Admin password", view.ShowPassword); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("confirm-password") {
				if form.ConfirmPassword, err = a.prompt.Secret("Confirm password", view.ShowConfirm); err != nil {
					return err
				}
			}

			msg, err := view.SubmitRegistration(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, msg)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.CompanyName, "company-name", "", "Company name")
	f.StringVar(&form.CompanyEmail, "company-email", "", "Company email")
	f.StringVar(&form.CompanyPhone, "company-phone", "", "Company phone")
	f.StringVar(&form.CompanyAddress, "company-address", "", "Company address")
	f.StringVar(&form.CompanyWebsite, "company-website", "", "Company website")
	f.StringVar(&form.IndustryType, "industry", "", "Industry type")
	f.StringVar(&form.CompanySize, "company-size", "", "Company size, e.g. 11-50")
	f.StringVar(&form.RegistrationNumber, "registration-number", "", "Company registration number")
	f.StringVar(&form.EstablishedYear, "established-year", "", "Year the company was established")
	f.StringVar(&form.AdminFirstName, "first-name", "", "Administrator first name")
	f.StringVar(&form.AdminLastName, "last-name", "", "Administrator last name")
	f.StringVar(&form.AdminEmail, "email", "", "Administrator email")
	f.StringVar(&form.AdminPhone, "phone", "", "Administrator phone")
	f.StringVar(&form.AdminPassword, "password", "", "Administrator password (prompted when omitted)")
	f.StringVar(&form.ConfirmPassword, "confirm-password", "", "Password confirmation (prompted when omitted)")
	f.BoolVar(&showPassword, "show-password", false, "Echo the password while typing")
	f.BoolVar(&showConfirm, "show-confirm", false, "Echo the confirmation while typing")

	for _, name := range []string{"company-name", "first-name", "last-name", "email"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := dashboard.NewShell(a.api, a.session, a.cfg.RefreshInterval)
			if err := shell.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}
