package metrics

import "github.com/prometheus/client_golang/prometheus"

// GatewayMetrics exposes counters/histograms for remote resource calls.
type GatewayMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	m := &GatewayMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicops",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total remote resource gateway calls",
		}, []string{"op", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinicops",
			Subsystem: "gateway",
			Name:      "request_latency_seconds",
			Help:      "Latency of remote resource gateway calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency)
	return m
}

func (m *GatewayMetrics) ObserveRequest(op, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(op, status).Inc()
	m.requestLatency.WithLabelValues(op).Observe(seconds)
}

// ChatMetrics exposes counters for conversation turns.
type ChatMetrics struct {
	turnsTotal *prometheus.CounterVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicops",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Total chat turns sent, by outcome",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal)
	return m
}

func (m *ChatMetrics) ObserveTurn(status string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(status).Inc()
}
