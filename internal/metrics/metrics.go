package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Outcome label values for Resolutions.
const (
	OutcomeSuccess          = "success"
	OutcomeProviderRejected = "provider_rejected"
	OutcomeTransportError   = "transport_error"
	OutcomeInvalidAddress   = "invalid_address"
)

type Metrics struct {
	Resolutions    *prometheus.CounterVec
	APIErrors      prometheus.Counter
	RequestSeconds *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Resolutions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geocoding_resolutions_total",
			Help: "Total number of address resolutions by outcome.",
		}, []string{"outcome"}),
		APIErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}

// Snapshot gathers reg into flat "name{label=value,...}" keys. Counters and gauges
// report their value, histograms their sample count.
func Snapshot(reg prometheus.Gatherer) (map[string]float64, error) {
	families, err := reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	snapshot := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			key := family.GetName()
			if labels := metric.GetLabel(); len(labels) > 0 {
				pairs := make([]string, 0, len(labels))
				for _, label := range labels {
					pairs = append(pairs, label.GetName()+"="+label.GetValue())
				}
				key += "{" + strings.Join(pairs, ",") + "}"
			}

			switch family.GetType() {
			case dto.MetricType_COUNTER:
				snapshot[key] = metric.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				snapshot[key] = metric.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				snapshot[key] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}

	return snapshot, nil
}
