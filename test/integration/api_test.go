package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/boxfit/internal/application"
	"github.com/eugenenazirov/boxfit/internal/config"
)

const catalogFile = "# name\touter\tinner\n" +
	"Mailer\t30x20x5\t29x19x4\n" +
	"Shoebox\t35x20x12\t33x18x11\n" +
	"Moving\t60x40x40\t58x38x38\n"

func newHandler(t *testing.T) http.Handler {
	t.Helper()

	path := filepath.Join(t.TempDir(), "boxes.tsv")
	if err := os.WriteFile(path, []byte(catalogFile), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	app, err := application.New(config.Config{BoxFile: path, Results: 5, Port: ":0"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("application.New returned error: %v", err)
	}
	return app.Handler()
}

func performRequest(t *testing.T, handler http.Handler, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIntegrationFlow(t *testing.T) {
	handler := newHandler(t)
	jsonHeaders := map[string]string{"Content-Type": "application/json"}

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	// a 28x18x10 object fits inside the shoebox and the moving box, smallest first
	body, _ := json.Marshal(map[string]any{"length": 28, "width": 18, "height": 10})
	rec = performRequest(t, handler, http.MethodPost, "/api/match", body, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from match, got %d", rec.Code)
	}

	var response struct {
		Matches []struct {
			Name string `json:"name"`
		} `json:"matches"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response.Matches) != 2 || response.Matches[0].Name != "Shoebox" || response.Matches[1].Name != "Moving" {
		t.Fatalf("unexpected matches %+v", response.Matches)
	}

	update, _ := json.Marshal(map[string]any{
		"boxes": []map[string]string{{"name": "Crate", "outer": "100x100x100", "inner": "95x95x95"}},
	})
	rec = performRequest(t, handler, http.MethodPut, "/api/boxes", update, jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from catalog update, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodPost, "/api/match", body, jsonHeaders)
	response.Matches = nil
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response.Matches) != 1 || response.Matches[0].Name != "Crate" {
		t.Fatalf("expected the replaced catalog to be used, got %+v", response.Matches)
	}
}
