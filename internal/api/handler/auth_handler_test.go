package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/skyrise-games/airport-tycoon/internal/core/domain"
)

type fakeAuthService struct {
	registerErr error
	loginErr    error
}

func (s *fakeAuthService) Register(_ context.Context, username, _, email string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: "user-1", Username: username, Email: email, Role: domain.RoleUser}, nil
}

func (s *fakeAuthService) Login(_ context.Context, username, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "a.b.c", &domain.User{ID: "user-1", Username: username}, nil
}

func newAuthContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})
	c, rec := newAuthContext(t, `{"username":"alice","password":"hunter22","email":"alice@example.com"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status: want 201, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User == nil || resp.User.Username != "alice" {
		t.Errorf("response user wrong: %+v", resp.User)
	}
	if resp.Token != "" {
		t.Error("registration must not issue a token")
	}
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})
	c, _ := newAuthContext(t, `{"username":`)

	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("want 400 for malformed body, got %v", err)
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})
	cases := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"al","password":"hunter22","email":"alice@example.com"}`},
		{"short password", `{"username":"alice","password":"abc","email":"alice@example.com"}`},
		{"bad email", `{"username":"alice","password":"hunter22","email":"not-an-email"}`},
		{"missing fields", `{}`},
	}
	for _, tc := range cases {
		c, _ := newAuthContext(t, tc.body)
		err := h.Register(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: want 422, got %v", tc.name, err)
		}
	}
}

func TestAuthHandler_Register_ServiceErrorPassesThrough(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{registerErr: domain.ErrUserExists})
	c, _ := newAuthContext(t, `{"username":"alice","password":"hunter22","email":"alice@example.com"}`)

	// The central error handler maps domain errors; the handler itself must
	// return them untouched.
	if err := h.Register(c); err != domain.ErrUserExists {
		t.Errorf("want raw ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})
	c, rec := newAuthContext(t, `{"username":"alice","password":"hunter22"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status: want 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "a.b.c" {
		t.Errorf("token: got %q", resp.Token)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})
	c, _ := newAuthContext(t, `{"username":"alice"}`)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Errorf("want 422, got %v", err)
	}
}

func TestAuthHandler_Login_ServiceErrorPassesThrough(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{loginErr: domain.ErrInvalidCredentials})
	c, _ := newAuthContext(t, `{"username":"alice","password":"wrong"}`)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Errorf("want raw ErrInvalidCredentials, got %v", err)
	}
}
