package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cyklop/vb-liga-manager-sub000/internal/config"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/logging"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/resilience"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                   config.EnvDev,
		HTTPAddr:                 ":0",
		ReadTimeout:              time.Second,
		WriteTimeout:             time.Second,
		StorageDriver:            config.StorageMemory,
		CacheEnabled:             true,
		CacheTTL:                 time.Minute,
		CORSAllowedOrigins:       []string{"*"},
		ResultImportWorkers:      2,
		StandingsOverviewWorkers: 2,
	}
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	}()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/standings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewHTTPServer_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := "leagues:\n  - id: stadtliga\n    name: Stadtliga\n    teams:\n      - id: a\n        name: A\n      - id: b\n        name: B\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	cfg := memoryConfig()
	cfg.SeedFile = path
	srv, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	defer func() { _ = cleanup() }()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues/stadtliga/teams", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewHTTPServer_MissingSeedFile(t *testing.T) {
	cfg := memoryConfig()
	cfg.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for missing seed file")
	}
}

func TestNewHTTPServer_EmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestDBCircuitBreaker(t *testing.T) {
	cfg := memoryConfig()
	if got := dbCircuitBreaker(cfg, logging.NewNop()); got != nil {
		t.Fatalf("expected nil breaker when disabled")
	}

	cfg.DBCircuitEnabled = true
	cfg.DBCircuitFailureCount = 3
	breaker := dbCircuitBreaker(cfg, logging.NewNop())
	if breaker == nil {
		t.Fatalf("expected breaker when enabled")
	}
	if state := breaker.State(); state != resilience.CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", state)
	}
}
