package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fipify"

// Metrics owns a private registry and the service's collectors.
// It satisfies report.Observer, so report outcomes are counted where they happen.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	reports         *prometheus.CounterVec
	reportPages     prometheus.Histogram
	reportBytes     prometheus.Histogram
	reportDuration  prometheus.Histogram
}

// New creates a registry with Go and process collectors plus the service metrics
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests handled, by transport, method and result code.",
		}, []string{"transport", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request latency, by transport and method.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"transport", "method"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "outcomes_total",
			Help:      "Report generation attempts, by outcome and failing stage.",
		}, []string{"outcome", "stage"}),
		reportPages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "pages",
			Help:      "Pages per produced report.",
			Buckets:   []float64{1, 2, 3, 4, 5, 8},
		}),
		reportBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "size_bytes",
			Help:      "Size of produced report documents.",
			Buckets:   prometheus.ExponentialBuckets(4096, 2, 10),
		}),
		reportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "duration_seconds",
			Help:      "Time to generate, compose and render one report.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.reports,
		m.reportPages,
		m.reportBytes,
		m.reportDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished request
func (m *Metrics) ObserveRequest(transport, method, code string, elapsed time.Duration) {
	m.requests.WithLabelValues(transport, method, code).Inc()
	m.requestDuration.WithLabelValues(transport, method).Observe(elapsed.Seconds())
}

// ObserveHTTPStatus is ObserveRequest for numeric HTTP status codes
func (m *Metrics) ObserveHTTPStatus(route string, status int, elapsed time.Duration) {
	m.ObserveRequest("http", route, strconv.Itoa(status), elapsed)
}

// ReportProduced records a successful report
func (m *Metrics) ReportProduced(pages int, size int, elapsed time.Duration) {
	m.reports.WithLabelValues("produced", "").Inc()
	m.reportPages.Observe(float64(pages))
	m.reportBytes.Observe(float64(size))
	m.reportDuration.Observe(elapsed.Seconds())
}

// ReportFailed records a report that failed at stage
func (m *Metrics) ReportFailed(stage string) {
	m.reports.WithLabelValues("failed", stage).Inc()
}
