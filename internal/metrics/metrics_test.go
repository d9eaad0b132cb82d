package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_AuthEvent(t *testing.T) {
	m := New()
	m.AuthEvent("login", "success")
	m.AuthEvent("login", "success")
	m.AuthEvent("login", "unauthorized")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthEvents().WithLabelValues("login", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthEvents().WithLabelValues("login", "unauthorized")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.AuthEvent("register", "conflict")
	m.ObserveRequest(http.MethodPost, "/api/auth/register", http.StatusConflict, 20*time.Millisecond)
	m.AuditDropped()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `bookmylook_auth_events_total{flow="register",outcome="conflict"} 1`)
	assert.Contains(t, body, "bookmylook_auth_http_request_duration_seconds")
	assert.Contains(t, body, "bookmylook_auth_audit_events_dropped_total 1")
}
