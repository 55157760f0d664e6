package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "exarch"

// PrometheusRecorder implements Recorder using Prometheus collectors.
type PrometheusRecorder struct {
	connections        *prom.CounterVec
	activeConnections  prom.Gauge
	connectionDuration *prom.HistogramVec
	responses          *prom.CounterVec
	responseBytes      prom.Counter
	conversions        *prom.CounterVec
	conversionDuration prom.Histogram
}

// NewPrometheusRecorder creates the collectors and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		connections: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Closed connections by outcome",
		}, []string{"outcome"}),
		activeConnections: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Connections currently being handled",
		}),
		connectionDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "connection_duration_seconds",
			Help:      "Time from accept to close",
			Buckets:   prom.DefBuckets,
		}, []string{"outcome"}),
		responses: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "responses_total",
			Help:      "Responses by Gemini status code",
		}, []string{"status"}),
		responseBytes: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "response_bytes_total",
			Help:      "Bytes written to clients, headers included",
		}),
		conversions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Markdown to Gemtext conversions by result",
		}, []string{"result"}),
		conversionDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Duration of Markdown to Gemtext conversions",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	reg.MustRegister(
		pr.connections,
		pr.activeConnections,
		pr.connectionDuration,
		pr.responses,
		pr.responseBytes,
		pr.conversions,
		pr.conversionDuration,
	)
	return pr
}

func (p *PrometheusRecorder) ConnectionOpened() {
	p.activeConnections.Inc()
}

func (p *PrometheusRecorder) ConnectionClosed(outcome Outcome, d time.Duration) {
	p.activeConnections.Dec()
	p.connections.WithLabelValues(string(outcome)).Inc()
	p.connectionDuration.WithLabelValues(string(outcome)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveResponse(status int, bytes int) {
	p.responses.WithLabelValues(strconv.Itoa(status)).Inc()
	p.responseBytes.Add(float64(bytes))
}

func (p *PrometheusRecorder) ObserveConversion(d time.Duration, success bool) {
	result := "failed"
	if success {
		result = "success"
	}
	p.conversions.WithLabelValues(result).Inc()
	p.conversionDuration.Observe(d.Seconds())
}
