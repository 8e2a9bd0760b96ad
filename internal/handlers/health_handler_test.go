package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finflow/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck_Healthy(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHealthCheckHandler(db.DB)
	err := handler.HealthCheck(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	db := database.SetupTestDB(t)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHealthCheckHandler(db.DB)
	err = handler.HealthCheck(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var errorResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errorResp))
	assert.Equal(t, "SYSTEM_003", errorResp.Error.Code)
}
