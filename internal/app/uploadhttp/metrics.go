package uploadhttp

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "upload_demo"

// metrics — счётчики загрузок по варианту эндпоинта и коду ответа.
type metrics struct {
	uploads *prometheus.CounterVec
	bytes   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "uploads_total",
			Help:      "Total number of upload requests by endpoint and response status.",
		}, []string{"endpoint", "status"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "uploaded_bytes_total",
			Help:      "Total number of bytes written by successful uploads.",
		}, []string{"endpoint"}),
	}

	for _, c := range []prometheus.Collector{m.uploads, m.bytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *metrics) observe(endpoint string, status int, written int64) {
	m.uploads.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	if status < 300 && written > 0 {
		m.bytes.WithLabelValues(endpoint).Add(float64(written))
	}
}
