package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/emsportal/ems/internal/client"
	"github.com/emsportal/ems/internal/config"
	"github.com/emsportal/ems/internal/console"
	"github.com/emsportal/ems/internal/console/session"
	"github.com/emsportal/ems/internal/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs. It is built once in the root
// command's PersistentPreRunE.
type app struct {
	cfg     *config.ConsoleConfig
	session *session.Session
	api     *client.Client
	files   *storage.LocalStorage
	prompt  *prompter
	out     io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "emsctl",
		Short:         "Employee Management System console",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.SetVersionTemplate("emsctl {{.Version}}\n")

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newDashboardCmd(a),
		newEmployeesCmd(a),
		newPayrollCmd(a),
		newAttendanceCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadConsole()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	sess, err := session.Open(session.NewFileStore(cfg.SessionFile))
	if err != nil {
		return err
	}

	files, err := storage.NewLocalStorage(cfg.ExportDir)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.session = sess
	a.api = client.New(cfg.APIURL, cfg.HTTPTimeout, sess)
	a.files = files
	a.out = cmd.OutOrStdout()
	a.prompt = newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	return nil
}

// describe renders an error for the operator, including field details.
func describe(err error) string {
	e, ok := client.AsError(err)
	if !ok {
		return "Error: " + err.Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error (%s): %s", e.Kind, e.Message)
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  %s: %s", k, e.Details[k])
	}
	return b.String()
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// confirmer skips the prompt when the operator passed --yes.
func confirmer(a *app, yes bool) console.Confirmer {
	if yes {
		return console.ConfirmFunc(func(string) bool { return true })
	}
	return a.prompt
}
