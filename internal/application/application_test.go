package application

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/boxfit/internal/config"
)

func TestNewInitializesDependencies(t *testing.T) {
	cfg := baseTestConfig(t, ":8085")
	logger := zaptest.NewLogger(t)

	app, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	boxes, err := app.store.GetBoxes()
	if err != nil {
		t.Fatalf("GetBoxes returned error: %v", err)
	}
	if len(boxes) != 2 || boxes[0].Name != "Small" {
		t.Fatalf("unexpected catalog %+v", boxes)
	}
	if app.server == nil || app.router == nil || app.handler == nil || app.matcher == nil {
		t.Fatalf("expected server, router, handler, and matcher to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
}

func TestHandlerServesAPI(t *testing.T) {
	app, err := New(baseTestConfig(t, ":0"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig(t, "9090")
	handler := http.NewServeMux()

	server := NewServer(cfg, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != cfg.ReadHeaderTimeout ||
		server.WriteTimeout != cfg.WriteTimeout ||
		server.IdleTimeout != cfg.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestNewReturnsErrorForMissingCatalog(t *testing.T) {
	cfg := baseTestConfig(t, ":0")
	cfg.BoxFile = filepath.Join(t.TempDir(), "missing.tsv")

	if _, err := New(cfg, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error for missing catalog")
	}
}

func TestNewWithBoxesRejectsEmptyCatalog(t *testing.T) {
	if _, err := NewWithBoxes(baseTestConfig(t, ":0"), nil, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
}

func baseTestConfig(t *testing.T, port string) config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "boxes.tsv")
	data := "Small\t10x10x10\t-\nLarge\t40x30x20\t38x28x19\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	return config.Config{
		BoxFile:              path,
		Results:              5,
		Port:                 port,
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}
