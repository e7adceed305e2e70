package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/internal/domain"
	"procurement/internal/domain/acquisition"
)

func TestMetrics_ObserveSave(t *testing.T) {
	m := New()

	m.ObserveSave(nil)
	m.ObserveSave(nil)
	m.ObserveSave(errors.New("disk full"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.saves.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.saves.WithLabelValues("error")))
	assert.Greater(t, testutil.ToFloat64(m.lastSaveFailure), 0.0)
}

func TestMetrics_RegisterHooks(t *testing.T) {
	m := New()
	hooks := domain.NewHookRegistry[*acquisition.Acquisition]()
	m.RegisterHooks(hooks)

	ctx := context.Background()
	require.NoError(t, hooks.Run(ctx, domain.AfterCreate, &acquisition.Acquisition{ID: 1}))
	require.NoError(t, hooks.Run(ctx, domain.AfterStatusChange, &acquisition.Acquisition{ID: 1}))
	require.NoError(t, hooks.Run(ctx, domain.AfterStatusChange, &acquisition.Acquisition{ID: 1}))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("after_create")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.mutations.WithLabelValues("after_status_change")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/api/acquisitions", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `procurement_http_requests_total{method="GET",route="/api/acquisitions",status="200"} 1`)
	assert.Contains(t, body, `route="unmatched"`)
}
