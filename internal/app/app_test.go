package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tejas544/gully-scorer/internal/config"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:                   config.EnvDev,
		ServiceName:              "gully-scorer-api",
		HTTPAddr:                 ":0",
		ReadTimeout:              time.Second,
		WriteTimeout:             time.Second,
		StoreDriver:              config.StoreMemory,
		SeedDemo:                 true,
		CacheEnabled:             true,
		CacheTTL:                 time.Minute,
		RateLimitRPS:             100,
		RateLimitBurst:           100,
		StoreCircuitEnabled:      true,
		StoreCircuitFailureCount: 5,
		StoreCircuitOpenTimeout:  time.Second,
		StoreCircuitHalfOpenReq:  1,
		ProgressionWorkers:       2,
		EventBuffer:              8,
		EventMaxRetries:          1,
		MetricsEnabled:           true,
	}
}

func TestNew_SeedsDemoSeasonAndServesMetrics(t *testing.T) {
	t.Parallel()

	application, err := New(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.bus.Close() })

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gully Premier League")

	rec = httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "go_goroutines"), "expected go collector output")
}

func TestNew_DemoSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MetricsEnabled = false

	application, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.bus.Close() })

	seasons := application.seasons
	require.NoError(t, seedDemo(context.Background(), seasons, logging.NewNop()))

	list, err := seasons.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.HTTPAddr = ""
	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.ProgressionSweepInterval = 10 * time.Millisecond

	application, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx, time.Second) }()

	<-application.bus.Running()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
