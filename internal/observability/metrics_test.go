package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
)

func TestMetrics_Disabled(t *testing.T) {
	m := NewMetrics(&config.ObservabilityConfig{MetricsEnabled: false}, zap.NewNop())

	// Record methods must be safe no-ops.
	m.RecordHTTPRequest(http.MethodGet, "/api/v1/courses", 200, 10*time.Millisecond)
	m.RecordCacheHit("redis")
	m.RecordCacheMiss("redis")
	m.RecordOutboxEffect("mail.activation", "completed")
	m.SetWSClients(3)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("disabled handler status = %d, want 404", w.Code)
	}
}

func TestMetrics_RecordsAndServes(t *testing.T) {
	m := NewMetrics(&config.ObservabilityConfig{MetricsEnabled: true}, zap.NewNop())

	m.RecordHTTPRequest(http.MethodGet, "/api/v1/courses", 200, 10*time.Millisecond)
	m.RecordCacheHit("redis")
	m.RecordCacheMiss("redis")
	m.RecordOutboxEffect("mail.activation", "completed")
	m.SetWSClients(2)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("handler status = %d", w.Code)
	}

	body := w.Body.String()
	for _, metric := range []string{
		"http_requests_total",
		"http_request_duration_seconds",
		"cache_hits_total",
		"cache_misses_total",
		"outbox_effects_total",
		"ws_connected_clients",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("scrape output missing %q", metric)
		}
	}
	if !strings.Contains(body, `ws_connected_clients 2`) {
		t.Error("gauge value not exported")
	}
}
