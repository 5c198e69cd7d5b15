// Package client talks to the EMS REST API on behalf of the console.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/emsportal/ems/internal/domain/auth"
	"github.com/emsportal/ems/internal/domain/employee"
	"github.com/emsportal/ems/internal/domain/payroll"
	"github.com/emsportal/ems/internal/handler/http/response"
	"golang.org/x/oauth2"
)

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
}

type Client struct {
	baseURL string
	public  *http.Client
	authed  *http.Client
}

// New returns a client for baseURL. Requests to protected endpoints carry a
// bearer token drawn from tokens on every call.
func New(baseURL string, timeout time.Duration, tokens oauth2.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		public:  &http.Client{Timeout: timeout},
		authed: &http.Client{
			Timeout:   timeout,
			Transport: &oauth2.Transport{Source: tokens, Base: http.DefaultTransport},
		},
	}
}

// Login posts credentials and returns the server message with the token payload.
func (c *Client) Login(ctx context.Context, req auth.LoginRequest) (string, auth.LoginResponse, error) {
	var resp auth.LoginResponse
	msg, err := c.do(ctx, c.public, http.MethodPost, "/api/auth/login", req, &resp)
	return msg, resp, err
}

// Register submits a company registration and returns the server confirmation.
func (c *Client) Register(ctx context.Context, req auth.RegisterRequest) (string, error) {
	return c.do(ctx, c.public, http.MethodPost, "/api/auth/register", req, nil)
}

func (c *Client) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	var list []employee.EmployeeResponse
	_, err := c.do(ctx, c.authed, http.MethodGet, "/api/employees", nil, &list)
	return list, err
}

func (c *Client) CreateEmployee(ctx context.Context, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	var emp employee.EmployeeResponse
	_, err := c.do(ctx, c.authed, http.MethodPost, "/api/employees", req, &emp)
	return emp, err
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, req employee.EmployeeRequest) (employee.EmployeeResponse, error) {
	var emp employee.EmployeeResponse
	_, err := c.do(ctx, c.authed, http.MethodPut, "/api/employees/"+url.PathEscape(id), req, &emp)
	return emp, err
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	_, err := c.do(ctx, c.authed, http.MethodDelete, "/api/employees/"+url.PathEscape(id), nil, nil)
	return err
}

func (c *Client) ListPayroll(ctx context.Context) ([]payroll.RecordResponse, error) {
	var list []payroll.RecordResponse
	_, err := c.do(ctx, c.authed, http.MethodGet, "/api/payroll", nil, &list)
	return list, err
}

func (c *Client) GetPayroll(ctx context.Context, id string) (payroll.RecordResponse, error) {
	var rec payroll.RecordResponse
	_, err := c.do(ctx, c.authed, http.MethodGet, "/api/payroll/"+url.PathEscape(id), nil, &rec)
	return rec, err
}

func (c *Client) CreatePayroll(ctx context.Context, req payroll.RecordRequest) (payroll.RecordResponse, error) {
	var rec payroll.RecordResponse
	_, err := c.do(ctx, c.authed, http.MethodPost, "/api/payroll", req, &rec)
	return rec, err
}

func (c *Client) UpdatePayroll(ctx context.Context, id string, req payroll.RecordRequest) (payroll.RecordResponse, error) {
	var rec payroll.RecordResponse
	_, err := c.do(ctx, c.authed, http.MethodPut, "/api/payroll/"+url.PathEscape(id), req, &rec)
	return rec, err
}

func (c *Client) DeletePayroll(ctx context.Context, id string) error {
	_, err := c.do(ctx, c.authed, http.MethodDelete, "/api/payroll/"+url.PathEscape(id), nil, nil)
	return err
}

// do sends one request and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, body, out interface{}) (string, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return "", &Error{Kind: KindUnknown, Message: "failed to encode request", Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", &Error{Kind: KindUnknown, Message: "failed to build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return "", &Error{Kind: KindValidation, StatusCode: http.StatusUnauthorized, Code: response.CodeUnauthorized, Message: "not logged in, run `emsctl login` first", Err: err}
		}
		return "", &Error{Kind: KindNetwork, Message: "unable to reach the server", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindNetwork, StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 500 {
		e := &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: "server error"}
		if decodeErr == nil && env.Error != nil {
			e.Code, e.Message = env.Error.Code, env.Error.Message
		}
		return "", e
	}

	if decodeErr != nil {
		return "", &Error{Kind: KindUnknown, StatusCode: resp.StatusCode, Message: "unexpected response from server", Err: decodeErr}
	}

	if resp.StatusCode >= 400 {
		if env.Error == nil {
			return "", &Error{Kind: KindUnknown, StatusCode: resp.StatusCode, Message: fmt.Sprintf("request failed with status %d", resp.StatusCode)}
		}
		return "", &Error{
			Kind:       KindValidation,
			StatusCode: resp.StatusCode,
			Code:       env.Error.Code,
			Message:    env.Error.Message,
			Details:    env.Error.Details,
		}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", &Error{Kind: KindUnknown, StatusCode: resp.StatusCode, Message: "unexpected response payload", Err: err}
		}
	}
	return env.Message, nil
}
