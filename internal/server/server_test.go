package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finflow/internal/config"
	"finflow/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	require.NoError(t, err)

	return &config.Config{
		Server: config.ServerConfig{
			Port:             "0",
			Environment:      "testing",
			ReadTimeout:      5 * time.Second,
			WriteTimeout:     5 * time.Second,
			CORSAllowOrigins: []string{"*"},
		},
		JWT: config.JWTConfig{
			AccessTokenDuration:  time.Hour,
			RefreshTokenDuration: 24 * time.Hour,
			PrivateKey:           privateKey,
			PublicKey:            publicKey,
			Issuer:               "test-issuer",
		},
		Security: config.SecurityConfig{
			BCryptCost:         4,
			RateLimitPerSecond: 100,
			MaxFailedAttempts:  3,
			PasswordMinLength:  8,
		},
		Mail: config.MailConfig{
			Host:        "localhost",
			Port:        587,
			From:        "alerts@finflow.local",
			SendTimeout: time.Second,
		},
		Alerts: config.AlertConfig{
			DefaultSubject: "Budget Alert: you've exceeded your monthly budget",
			Enabled:        true,
		},
	}
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db := database.SetupTestDB(t)
	t.Cleanup(func() { database.CleanupTestDB(t, db) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(testConfig(t), db.DB, logger)
	return srv.Echo()
}

func TestServer_HealthRoute(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestServer_MetricsRoute(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_ProtectedRoutesRequireAuth(t *testing.T) {
	e := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/entries"},
		{http.MethodGet, "/api/v1/entries/stats"},
		{http.MethodGet, "/api/v1/budget/current"},
		{http.MethodGet, "/api/v1/email-alerts"},
		{http.MethodGet, "/api/v1/expense-summary/2026-01-01/2026-12-31"},
	}

	for _, tc := range paths {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "AUTH_002")
		})
	}
}

func TestServer_RegisterAndLoginFlow(t *testing.T) {
	e := newTestServer(t)

	registerBody := `{"username":"janedoe","email":"jane@example.com","password":"secret-password","role":"personal"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(registerBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	loginBody := `{"email":"jane@example.com","password":"secret-password"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(loginBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "accessToken")
	assert.Contains(t, rec.Body.String(), "refreshToken")
}

func TestServer_UnknownRoute(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "trace_id")
}
