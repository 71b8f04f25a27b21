package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "icp"

// Recorder holds the service metrics. A nil *Recorder records nothing.
type Recorder struct {
	leadsAdded        *prometheus.CounterVec
	profilesGenerated *prometheus.CounterVec
	messagesSent      *prometheus.CounterVec
	icpConfidence     prometheus.Gauge
	httpRequests      *prometheus.CounterVec
	gatherer          prometheus.Gatherer
}

// New registers the collectors on reg. Passing a fresh prometheus.NewRegistry()
// keeps tests independent of the default registry.
func New(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		leadsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_added_total",
			Help:      "Leads added to workspaces by tier and source",
		}, []string{"tier", "source"}),
		profilesGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profiles_generated_total",
			Help:      "ICP profiles generated, split by whether leads were available",
		}, []string{"basis"}),
		messagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outreach_messages_total",
			Help:      "Outreach messages tracked by channel",
		}, []string{"channel"}),
		icpConfidence: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "profile_confidence",
			Help:      "Confidence of the most recently generated ICP profile",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		gatherer: reg,
	}
	reg.MustRegister(r.leadsAdded, r.profilesGenerated, r.messagesSent, r.icpConfidence, r.httpRequests)
	return r
}

// LeadAdded counts one stored lead
func (r *Recorder) LeadAdded(tier, source string) {
	if r == nil {
		return
	}
	r.leadsAdded.WithLabelValues(tier, source).Inc()
}

// ProfileGenerated counts a profile and records its confidence
func (r *Recorder) ProfileGenerated(fromLeads bool, confidence int) {
	if r == nil {
		return
	}
	basis := "fallback"
	if fromLeads {
		basis = "leads"
	}
	r.profilesGenerated.WithLabelValues(basis).Inc()
	r.icpConfidence.Set(float64(confidence))
}

// MessageSent counts one outreach message
func (r *Recorder) MessageSent(channel string) {
	if r == nil {
		return
	}
	r.messagesSent.WithLabelValues(channel).Inc()
}

// RequestServed counts one HTTP request
func (r *Recorder) RequestServed(method, route string, status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
