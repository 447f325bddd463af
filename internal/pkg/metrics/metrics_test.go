package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodbot/internal/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New(func() int { return 3 })
	m.ObserveIntent("order.add", "ok")
	m.ObserveIntent("order.add", "ok")
	m.ObserveFinalize("ok", 120*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `foodbot_intents_total{intent="order.add",outcome="ok"} 2`)
	assert.Contains(t, text, `foodbot_order_finalize_duration_seconds_count{outcome="ok"} 1`)
	assert.Contains(t, text, "foodbot_active_carts 3")
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New(nil)
		metrics.New(nil)
	})
}
