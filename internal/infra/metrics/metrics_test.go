package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	first := New()
	second := New()

	first.IncResolution("current")

	assert.InDelta(t, 1, testutil.ToFloat64(first.Resolutions.WithLabelValues("current")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(second.Resolutions.WithLabelValues("current")), 0)
}

func TestObserveStoreOp(t *testing.T) {
	m := New()

	m.ObserveStoreOp("memory", "get", 0.2, false)
	m.ObserveStoreOp("memory", "set", 1.5, true)

	assert.InDelta(t, 0, testutil.ToFloat64(m.StoreErrors.WithLabelValues("memory", "get")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.StoreErrors.WithLabelValues("memory", "set")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.StoreOpDuration))
}

func TestHandler(t *testing.T) {
	m := New()
	m.IncSubmission("saved")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `addrcard_address_submissions_total{outcome="saved"} 1`)
}
