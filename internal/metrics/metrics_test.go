package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_Counters(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.LeadAdded("Hot", "Manual")
	r.LeadAdded("Hot", "Manual")
	r.LeadAdded("Cold", "Import")
	r.MessageSent("email")
	r.ProfileGenerated(true, 85)
	r.RequestServed(http.MethodGet, "/api/v1/health", http.StatusOK)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.leadsAdded.WithLabelValues("Hot", "Manual")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.leadsAdded.WithLabelValues("Cold", "Import")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.messagesSent.WithLabelValues("email")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.profilesGenerated.WithLabelValues("leads")))
	assert.Equal(t, float64(85), testutil.ToFloat64(r.icpConfidence))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "/api/v1/health", "200")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.LeadAdded("Hot", "Manual")
		r.MessageSent("phone")
		r.ProfileGenerated(false, 75)
		r.RequestServed("GET", "/", 200)
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecorder_Handler(t *testing.T) {
	r := New(prometheus.NewRegistry())
	r.MessageSent("linkedin")

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `icp_outreach_messages_total{channel="linkedin"} 1`))
}
