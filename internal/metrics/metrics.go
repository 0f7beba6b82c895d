// Package metrics exposes Prometheus counters for the share pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SharesReceived counts share-target ingestions by outcome
	// (pending, error).
	SharesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homelabpwa_shares_received_total",
			Help: "Total share-target ingestions by outcome",
		},
		[]string{"outcome"},
	)

	// Forwards counts catalog forward attempts by result code
	// (success, CONFIG_ERROR, FETCH_ERROR, HTTP_<status>, ...).
	Forwards = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homelabpwa_forwards_total",
			Help: "Total upstream catalog forward attempts by result code",
		},
		[]string{"code"},
	)

	// AuthChecks counts edge-gate session verifications by result
	// (authorized, rejected, unavailable).
	AuthChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homelabpwa_auth_checks_total",
			Help: "Total edge-gate session verifications by result",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry.
// Must be called once at startup.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(SharesReceived, Forwards, AuthChecks)
	})
}

// RecordForward records a forward attempt outcome; success is recorded under
// the code "success" so the closed error set stays intact in the label space.
func RecordForward(success bool, code string) {
	if success {
		Forwards.WithLabelValues("success").Inc()
		return
	}
	Forwards.WithLabelValues(code).Inc()
}
