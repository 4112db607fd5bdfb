package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/metrics"
	th "github.com/pageza/recipebook/backend/internal/testhelpers"
)

func testConfig() *config.Config {
	return &config.Config{ServerHost: "127.0.0.1", ServerPort: "0"}
}

func TestHealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := th.SetupSQLiteDatabase(t)
	reg := prometheus.NewRegistry()
	metrics.NewPrometheus(reg, logger.NewNoopLogger()).RecipeCreated()

	srv := New(testConfig(), db, gin.New(), reg, logger.NewNoopLogger())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "recipe_created_total 1"))
}

func TestHealthReportsDatabaseFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := th.SetupSQLiteDatabase(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	srv := New(testConfig(), db, gin.New(), nil, logger.NewNoopLogger())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStartAndShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(testConfig(), th.SetupSQLiteDatabase(t), gin.New(), nil, logger.NewNoopLogger())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	// Give the listener a moment before shutting down.
	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
