package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, status int, body interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Login successful",
			"data":    map[string]interface{}{"accessToken": "tok", "tokenType": "Bearer", "role": "admin"},
		})
	})
	mux.HandleFunc("/api/employees", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			write(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"error":   map[string]interface{}{"code": "UNAUTHORIZED", "message": "Unauthorized"},
			})
			return
		}
		write(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": []map[string]interface{}{
				{"id": "1", "employeeId": "EMP001", "name": "Ann Lee", "email": "ann@acme.io", "department": "Engineering", "position": "Dev", "status": "Active", "salary": 90000, "joinDate": "2024-01-15"},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginListExportLogout(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	srv := fakeBackend(t)
	t.Setenv("EMS_API_URL", srv.URL)
	t.Setenv("EMS_SESSION_FILE", filepath.Join(dir, "session.json"))
	t.Setenv("EMS_EXPORT_DIR", filepath.Join(dir, "exports"))

	out, err := runCLI(t, "login", "--email", "admin@acme.io", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Login successful")
	assert.Contains(t, out, "/admin-dashboard")

	out, err = runCLI(t, "employees", "list", "--department", "All Departments")
	require.NoError(t, err)
	assert.Contains(t, out, "Employee List (1 employees)")
	assert.Contains(t, out, "EMP001")

	out, err = runCLI(t, "employees", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 employees")
	raw, err := os.ReadFile(filepath.Join(dir, "exports", "employees.csv"))
	require.NoError(t, err)
	assert.Equal(t, 2, len(strings.Split(string(raw), "\n")))

	_, err = runCLI(t, "logout")
	require.NoError(t, err)

	_, err = runCLI(t, "employees", "list")
	require.Error(t, err)
	assert.Contains(t, describe(err), "Error (validation)")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("EMS_API_URL", "http://127.0.0.1:1")
	t.Setenv("EMS_SESSION_FILE", filepath.Join(dir, "session.json"))

	_, err := runCLI(t, "register",
		"--company-name", "Acme", "--first-name", "Ann", "--last-name", "Lee", "--email", "ann@acme.io",
		"--password", "secret", "--confirm-password", "secret ")
	require.Error(t, err)
	assert.Contains(t, describe(err), "Passwords do not match!")
}

func TestDashboardOpenSection(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	srv := fakeBackend(t)
	t.Setenv("EMS_API_URL", srv.URL)
	t.Setenv("EMS_SESSION_FILE", filepath.Join(dir, "session.json"))

	_, err := runCLI(t, "login", "--email", "admin@acme.io", "--password", "pw")
	require.NoError(t, err)

	out, err := runCLI(t, "dashboard", "--open", "payroll")
	require.NoError(t, err)
	assert.Contains(t, out, "Total employees: 1")
	assert.Contains(t, out, "[payroll]")
	assert.Contains(t, out, "Run: emsctl payroll list")

	_, err = runCLI(t, "dashboard", "--open", "reports")
	assert.EqualError(t, err, `unknown destination "reports"`)
}
