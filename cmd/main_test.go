package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpNeedsNoConfiguration(t *testing.T) {
	t.Setenv("SHOP_DATABASE_DSN", "")

	root := newCLI().Root()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "seed")
	assert.Contains(t, out.String(), "--port")
}

func TestSeedReportsUnreachableDatabase(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{DSN: "host=127.0.0.1 port=1 user=shop dbname=shop sslmode=disable connect_timeout=1"},
		Logging:  config.LoggingConfig{Level: "error", Format: "json", SlowQueryThreshold: time.Second},
	}

	err := seed(context.Background(), cfg, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialise database")
}

func TestRouterServesHealthAndMetrics(t *testing.T) {
	router := newRouter(zerolog.Nop(), nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
