package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emsportal/ems/internal/domain/auth"
	"github.com/emsportal/ems/internal/domain/employee"
	"github.com/emsportal/ems/internal/domain/payroll"
	"github.com/emsportal/ems/internal/domain/user"
	"github.com/emsportal/ems/internal/pkg/jwt"
	"github.com/emsportal/ems/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct{}

func (fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if req.Email == "taken@acme.io" {
		return auth.RegisterResponse{}, user.ErrUserEmailExists
	}
	return auth.RegisterResponse{UserID: "u1", Email: req.Email, Role: "admin"}, nil
}

func (fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if req.Password != "password123" {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	return auth.LoginResponse{AccessToken: "tok", TokenType: "Bearer", Email: req.Email, Role: "admin"}, nil
}

type fakeEmployeeService struct {
	created []employee.EmployeeRequest
}

func (f *fakeEmployeeService) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return []employee.EmployeeResponse{{ID: "e1", EmployeeCode: "EMP001", Name: "Ann", Salary: decimal.NewFromInt(85000)}}, nil
}

func (f *fakeEmployeeService) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if id != "e1" {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	return employee.EmployeeResponse{ID: "e1", EmployeeCode: "EMP001"}, nil
}

func (f *fakeEmployeeService) CreateEmployee(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	f.created = append(f.created, req)
	return employee.EmployeeResponse{ID: "e2", EmployeeCode: "EMP002", Name: req.Name}, nil
}

func (f *fakeEmployeeService) UpdateEmployee(ctx context.Context, id string, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
}

func (f *fakeEmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	return nil
}

type fakePayrollService struct{}

func (fakePayrollService) ListRecords(ctx context.Context) ([]payroll.RecordResponse, error) {
	return []payroll.RecordResponse{}, nil
}

func (fakePayrollService) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	return payroll.RecordResponse{}, payroll.ErrPayrollRecordNotFound
}

func (fakePayrollService) CreateRecord(ctx context.Context, req payroll.RecordRequest) (payroll.RecordResponse, error) {
	rec := req.ToRecord()
	return payroll.NewRecordResponse(rec), nil
}

func (fakePayrollService) UpdateRecord(ctx context.Context, id string, req payroll.RecordRequest) (payroll.RecordResponse, error) {
	return payroll.RecordResponse{}, validator.ValidationErrors{{Field: "employeeId", Message: "employeeId is required"}}
}

func (fakePayrollService) DeleteRecord(ctx context.Context, id string) error {
	return nil
}

type testServer struct {
	handler    http.Handler
	jwtService jwt.Service
	employees  *fakeEmployeeService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtService, err := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	require.NoError(t, err)

	employees := &fakeEmployeeService{}
	router := NewRouter(
		RouterConfig{AllowedOrigins: []string{"*"}, Env: "test", Version: "test", LogLevel: slog.LevelError, AuthRateLimit: 600, AuthRateBurst: 100},
		jwtService,
		NewAuthHandler(fakeAuthService{}),
		NewEmployeeHandler(employees),
		NewPayrollHandler(fakePayrollService{}),
	)
	return &testServer{handler: router, jwtService: jwtService, employees: employees}
}

func (s *testServer) token(t *testing.T, role user.Role) string {
	t.Helper()
	tok, _, err := s.jwtService.GenerateAccessToken("u1", "someone@acme.io", role)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(t, http.MethodPost, "/api/auth/login", "", auth.LoginRequest{Email: "admin@acme.io", Password: "password123"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "tok", data["accessToken"])
	assert.Equal(t, "admin", data["role"])

	w, resp = s.do(t, http.MethodPost, "/api/auth/login", "", auth.LoginRequest{Email: "admin@acme.io", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", resp["error"].(map[string]interface{})["code"])

	w, resp = s.do(t, http.MethodPost, "/api/auth/register", "", auth.RegisterRequest{Email: "new@acme.io"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully", resp["message"])

	w, resp = s.do(t, http.MethodPost, "/api/auth/register", "", auth.RegisterRequest{Email: "taken@acme.io"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestAuthRoutes_InvalidJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("invalid json")))
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/api/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := s.do(t, http.MethodGet, "/api/employees", s.token(t, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := resp["data"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "EMP001", list[0].(map[string]interface{})["employeeId"])
}

func TestEmployeeRoutes_MutationsRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	body := employee.EmployeeRequest{Name: "Bob", Email: "bob@acme.io", Department: "Sales", Position: "Rep", JoinDate: "2024-02-01"}

	w, _ := s.do(t, http.MethodPost, "/api/employees", s.token(t, user.RoleEmployee), body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, s.employees.created)

	w, resp := s.do(t, http.MethodPost, "/api/employees", s.token(t, user.RoleAdmin), body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "EMP002", resp["data"].(map[string]interface{})["employeeId"])
	assert.Len(t, s.employees.created, 1)
}

func TestEmployeeRoutes_ErrorMapping(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, user.RoleAdmin)

	w, _ := s.do(t, http.MethodGet, "/api/employees/missing", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp := s.do(t, http.MethodPost, "/api/employees", admin, employee.EmployeeRequest{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := resp["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Equal(t, "name is required", details["name"])

	w, _ = s.do(t, http.MethodPut, "/api/employees/e1", admin, employee.EmployeeRequest{})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp = s.do(t, http.MethodDelete, "/api/employees/e1", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
}

func TestPayrollRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, user.RoleAdmin)

	w, resp := s.do(t, http.MethodPost, "/api/payroll", admin, map[string]interface{}{
		"employeeId":   "EMP001",
		"employeeName": "Ann",
		"baseSalary":   5000,
		"bonus":        "100",
		"netPay":       1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "5100", data["netPay"])
	assert.Equal(t, "Draft", data["status"])

	w, _ = s.do(t, http.MethodGet, "/api/payroll/x", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodPut, "/api/payroll/x", admin, map[string]interface{}{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = s.do(t, http.MethodDelete, "/api/payroll/x", s.token(t, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
