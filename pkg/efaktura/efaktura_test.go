package efaktura_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efaktura/internal/config"
	"github.com/rezonia/efaktura/internal/logger"
	"github.com/rezonia/efaktura/pkg/efaktura"
)

type fakeAPI struct {
	*httptest.Server
	vatCalls atomic.Int32
	apiKey   atomic.Value
}

func newFakeAPI(t *testing.T) *fakeAPI {
	api := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/publicApi/getEfakturaVersion", func(w http.ResponseWriter, r *http.Request) {
		api.apiKey.Store(r.Header.Get("ApiKey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version": "3.10.0", "releaseDate": "2024-01-15T00:00:00Z"}`))
	})
	mux.HandleFunc("/api/publicApi/sales-invoice/getValueAddedTaxExemptionReasonList", func(w http.ResponseWriter, r *http.Request) {
		api.vatCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"key": "PDV-RS-24-1-1", "law": "Zakon o PDV"}]`))
	})
	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.APIKey = "test-key"
	cfg.Environment = config.EnvironmentDemo
	cfg.URLs.Demo = baseURL
	cfg.HTTP.RetryTimes = 1
	cfg.HTTP.RetrySleep = 0
	return cfg
}

func TestNew_RequiresAPIKey(t *testing.T) {
	cfg := testConfig(t, "http://localhost")
	cfg.APIKey = ""

	_, err := efaktura.New(cfg)
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestNew_WiresServices(t *testing.T) {
	api := newFakeAPI(t)
	client, err := efaktura.New(testConfig(t, api.URL))
	require.NoError(t, err)
	defer client.Close()

	require.NotNil(t, client.Sales)
	require.NotNil(t, client.Purchase)
	require.NotNil(t, client.Public)
	assert.True(t, client.IsDemo())
	assert.False(t, client.IsProduction())
	assert.Equal(t, api.URL, client.BaseURL())

	v, err := client.Public.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3.10.0", *v.Version)
	assert.Equal(t, "test-key", api.apiKey.Load())
}

func TestNew_SharedCacheClearedFromPublic(t *testing.T) {
	api := newFakeAPI(t)
	client, err := efaktura.New(testConfig(t, api.URL))
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		reasons, err := client.Sales.VatExemptionReasons(ctx)
		require.NoError(t, err)
		require.Len(t, reasons, 1)
	}
	assert.Equal(t, int32(1), api.vatCalls.Load())

	require.NoError(t, client.Public.ClearCache(ctx))
	_, err = client.Sales.VatExemptionReasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.vatCalls.Load())
}

func TestNew_CacheDisabled(t *testing.T) {
	api := newFakeAPI(t)
	cfg := testConfig(t, api.URL)
	cfg.Cache.Enabled = false

	client, err := efaktura.New(cfg)
	require.NoError(t, err)
	defer client.Close()

	for i := 0; i < 2; i++ {
		_, err := client.Sales.VatExemptionReasons(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), api.vatCalls.Load())
}

func TestNew_SQLiteCacheSurvivesRestart(t *testing.T) {
	api := newFakeAPI(t)
	cfg := testConfig(t, api.URL)
	cfg.Cache.Driver = config.CacheDriverSQLite
	cfg.Cache.Path = filepath.Join(t.TempDir(), "cache.db")
	cfg.Cache.VatExemptionsTTL = time.Hour

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		client, err := efaktura.New(cfg)
		require.NoError(t, err)
		_, err = client.Sales.VatExemptionReasons(ctx)
		require.NoError(t, err)
		require.NoError(t, client.Close())
	}
	assert.Equal(t, int32(1), api.vatCalls.Load())
}

func TestNew_UnknownCacheDriver(t *testing.T) {
	cfg := testConfig(t, "http://localhost")
	cfg.Cache.Driver = "redis"

	_, err := efaktura.New(cfg)
	assert.Error(t, err)
}

func TestErrorHelpers(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client, err := efaktura.New(testConfig(t, srv.URL))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Sales.Get(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, efaktura.IsNotFound(err))
	code, ok := efaktura.StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestNew_RequestLoggingAtDefaultLevel(t *testing.T) {
	tests := []struct {
		name    string
		enabled string
		want    bool
	}{
		{"enabled", "true", true},
		{"disabled", "false", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t)
			path := filepath.Join(t.TempDir(), "efaktura.log")
			t.Setenv("EFAKTURA_LOGGING_ENABLED", tt.enabled)
			t.Setenv("EFAKTURA_LOG_CHANNEL", path)
			t.Setenv("EFAKTURA_LOG_FORMAT", "json")

			cfg := testConfig(t, api.URL)
			require.Equal(t, "info", cfg.Logging.Level)

			prev := zlog.Logger
			t.Cleanup(func() { zlog.Logger = prev })
			l, err := logger.Setup(cfg.LoggerConfig())
			require.NoError(t, err)

			client, err := efaktura.New(cfg, efaktura.WithLogger(l))
			require.NoError(t, err)
			defer client.Close()

			_, err = client.Public.Version(context.Background())
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			if tt.want {
				assert.Contains(t, string(data), "eFaktura API Request")
				assert.Contains(t, string(data), "eFaktura API Response")
			} else {
				assert.NotContains(t, string(data), "eFaktura API")
			}
		})
	}
}
