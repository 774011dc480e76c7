package attendance

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"attendsync/internal/apperr"
)

// Metrics provides observability for attendance admission.
type Metrics struct {
	// Admission outcomes: admitted or the failure kind.
	Admissions *prometheus.CounterVec

	AdmitLatency prometheus.Histogram
}

// NewMetrics registers admission metrics on reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Admissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "attendsync_admissions_total",
			Help: "Attendance admission attempts by outcome",
		}, []string{"outcome"}),

		AdmitLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "attendsync_admission_duration_seconds",
			Help:    "Duration of attendance admission including storage round trips",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) observeAdmission(err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "admitted"
	if err != nil {
		outcome = string(apperr.KindOf(err))
	}
	m.Admissions.WithLabelValues(outcome).Inc()
	m.AdmitLatency.Observe(d.Seconds())
}
