package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments the session service. A nil *Metrics is valid and
// records nothing, so wiring stays optional.
type Metrics struct {
	created  prometheus.Counter
	revoked  prometheus.Counter
	purged   prometheus.Counter
	rejected *prometheus.CounterVec
}

// NewMetrics registers session metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		created: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gatekey",
			Subsystem: "session",
			Name:      "created_total",
			Help:      "Sessions issued.",
		}),
		revoked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gatekey",
			Subsystem: "session",
			Name:      "revoked_total",
			Help:      "Sessions deleted individually.",
		}),
		purged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gatekey",
			Subsystem: "session",
			Name:      "purged_total",
			Help:      "Sessions removed by per-user purges.",
		}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gatekey",
			Subsystem: "session",
			Name:      "token_rejected_total",
			Help:      "Token validations that did not yield a session.",
		}, []string{"reason"}),
	}
}

func (m *Metrics) sessionCreated() {
	if m != nil {
		m.created.Inc()
	}
}

func (m *Metrics) sessionRevoked() {
	if m != nil {
		m.revoked.Inc()
	}
}

func (m *Metrics) sessionsPurged(n int64) {
	if m != nil && n > 0 {
		m.purged.Add(float64(n))
	}
}

func (m *Metrics) tokenRejected(reason string) {
	if m != nil {
		m.rejected.WithLabelValues(reason).Inc()
	}
}
