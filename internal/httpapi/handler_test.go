package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carremote/auth-service/internal/auth"
	"carremote/auth-service/internal/models"
	"carremote/auth-service/internal/token"

	"github.com/golang-jwt/jwt/v5"
)

type fakeAuth struct {
	registerFn func(ctx context.Context, email, password string) (models.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (models.User, string, error)
	verifyFn   func(raw string) (token.Claims, error)
}

func (f fakeAuth) Register(ctx context.Context, email, password string) (models.User, string, error) {
	if f.registerFn == nil {
		return models.User{}, "", nil
	}
	return f.registerFn(ctx, email, password)
}

func (f fakeAuth) Login(ctx context.Context, email, password string) (models.User, string, error) {
	if f.loginFn == nil {
		return models.User{}, "", nil
	}
	return f.loginFn(ctx, email, password)
}

func (f fakeAuth) VerifyToken(raw string) (token.Claims, error) {
	if f.verifyFn == nil {
		return token.Claims{}, token.ErrInvalidToken
	}
	return f.verifyFn(raw)
}

func postCredentials(t *testing.T, svc AuthService, path, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	resp := httptest.NewRecorder()
	NewHandler(svc).Routes().ServeHTTP(resp, req)
	return resp
}

func TestSignupSuccess(t *testing.T) {
	svc := fakeAuth{
		registerFn: func(ctx context.Context, email, password string) (models.User, string, error) {
			return models.User{UserID: "user-1", Email: email}, "signed-token", nil
		},
	}

	resp := postCredentials(t, svc, "/api/auth/signup", "driver@example.com", "secret")
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var payload authResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Token != "signed-token" {
		t.Fatalf("expected token in response, got %q", payload.Token)
	}
	if payload.User.UserID != "user-1" {
		t.Fatalf("expected user id in response, got %q", payload.User.UserID)
	}
}

func TestSignupAlreadyExists(t *testing.T) {
	svc := fakeAuth{
		registerFn: func(ctx context.Context, email, password string) (models.User, string, error) {
			return models.User{}, "", auth.ErrAlreadyExists
		},
	}

	resp := postCredentials(t, svc, "/api/auth/signup", "driver@example.com", "secret")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var payload errorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "already_exists" {
		t.Fatalf("expected code already_exists, got %q", payload.Error.Code)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc := fakeAuth{
		loginFn: func(ctx context.Context, email, password string) (models.User, string, error) {
			return models.User{UserID: "user-1", Email: email}, "signed-token", nil
		},
	}

	resp := postCredentials(t, svc, "/api/auth/login", "driver@example.com", "secret")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := fakeAuth{
		loginFn: func(ctx context.Context, email, password string) (models.User, string, error) {
			return models.User{}, "", auth.ErrInvalidCredentials
		},
	}

	resp := postCredentials(t, svc, "/api/auth/login", "driver@example.com", "wrong")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}

	var payload errorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "invalid_credentials" {
		t.Fatalf("expected code invalid_credentials, got %q", payload.Error.Code)
	}
}

func TestLoginStoreUnavailable(t *testing.T) {
	svc := fakeAuth{
		loginFn: func(ctx context.Context, email, password string) (models.User, string, error) {
			return models.User{}, "", auth.ErrUnavailable
		},
	}

	resp := postCredentials(t, svc, "/api/auth/login", "driver@example.com", "secret")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

func TestSignupInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader([]byte("{")))
	resp := httptest.NewRecorder()

	NewHandler(fakeAuth{}).Routes().ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestSignupMissingFields(t *testing.T) {
	resp := postCredentials(t, fakeAuth{}, "/api/auth/signup", "", "secret")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestSignupMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/signup", nil)
	resp := httptest.NewRecorder()

	NewHandler(fakeAuth{}).Routes().ServeHTTP(resp, req)
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", resp.Code)
	}
}

func TestMeUnauthorized(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp := httptest.NewRecorder()

	NewHandler(fakeAuth{}).Routes().ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestMeSuccess(t *testing.T) {
	expires := time.Now().UTC().Add(time.Hour)
	svc := fakeAuth{
		verifyFn: func(raw string) (token.Claims, error) {
			return token.Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "user-1",
					ExpiresAt: jwt.NewNumericDate(expires),
				},
				Email: "driver@example.com",
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer signed-token")
	resp := httptest.NewRecorder()

	NewHandler(svc).Routes().ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload meResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.User.UserID != "user-1" || payload.User.Email != "driver@example.com" {
		t.Fatalf("unexpected user payload: %+v", payload.User)
	}
}

func TestMeExpiredToken(t *testing.T) {
	svc := fakeAuth{
		verifyFn: func(raw string) (token.Claims, error) {
			return token.Claims{}, token.ErrExpiredToken
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	resp := httptest.NewRecorder()

	NewHandler(svc).Routes().ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}
