package metrics

import (
	"context"
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/gitcite/pkg/observability"
)

const namespace = "gitcite"

// PrometheusRecorder records citation pipeline and HTTP events.
type PrometheusRecorder struct {
	once            sync.Once
	parses          *prom.CounterVec
	fetchDuration   *prom.HistogramVec
	fetches         *prom.CounterVec
	inflightFetches prom.Gauge
	citations       *prom.CounterVec
	upstream        *prom.CounterVec
	upstreamLatency *prom.HistogramVec
	requests        *prom.CounterVec
	requestLatency  *prom.HistogramVec
}

var (
	_ observability.CitationHooks = (*PrometheusRecorder)(nil)
	_ observability.HTTPHooks     = (*PrometheusRecorder)(nil)
)

// NewPrometheusRecorder constructs and registers the metrics on reg.
// If reg is nil, a fresh registry is used.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.parses = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "parses_total",
			Help:      "Reference parse attempts by host and result",
		}, []string{"host", "result"})
		pr.fetchDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of repository fetches",
			Buckets:   prom.DefBuckets,
		}, []string{"host", "result"})
		pr.fetches = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Repository fetches by host, result and tag presence",
		}, []string{"host", "result", "tagged"})
		pr.inflightFetches = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "fetches_inflight",
			Help:      "Repository fetches currently running",
		})
		pr.citations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "citations_total",
			Help:      "Citations rendered by host",
		}, []string{"host"})
		pr.upstream = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Outgoing host API requests by host and status",
		}, []string{"host", "status"})
		pr.upstreamLatency = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of outgoing host API requests",
			Buckets:   prom.DefBuckets,
		}, []string{"host"})
		pr.requests = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Inbound API requests by route and status",
		}, []string{"route", "status"})
		pr.requestLatency = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of inbound API requests",
			Buckets:   prom.DefBuckets,
		}, []string{"route"})
		reg.MustRegister(pr.parses, pr.fetchDuration, pr.fetches, pr.inflightFetches, pr.citations,
			pr.upstream, pr.upstreamLatency, pr.requests, pr.requestLatency)
	})
	return pr
}

func result(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}

func (p *PrometheusRecorder) OnParse(_ context.Context, host string, err error) {
	if p == nil || p.parses == nil {
		return
	}
	if host == "" {
		host = "unknown"
	}
	p.parses.WithLabelValues(host, result(err)).Inc()
}

func (p *PrometheusRecorder) OnFetchStart(context.Context, string, string) {
	if p == nil || p.inflightFetches == nil {
		return
	}
	p.inflightFetches.Inc()
}

func (p *PrometheusRecorder) OnFetchComplete(_ context.Context, host, _ string, hasTag bool, d time.Duration, err error) {
	if p == nil || p.fetches == nil {
		return
	}
	p.inflightFetches.Dec()
	res := result(err)
	p.fetchDuration.WithLabelValues(host, res).Observe(d.Seconds())
	p.fetches.WithLabelValues(host, res, strconv.FormatBool(hasTag)).Inc()
}

func (p *PrometheusRecorder) OnFormat(_ context.Context, host, _ string) {
	if p == nil || p.citations == nil {
		return
	}
	p.citations.WithLabelValues(host).Inc()
}

func (p *PrometheusRecorder) OnRequest(context.Context, string, string, string) {}

func (p *PrometheusRecorder) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	if p == nil || p.upstream == nil {
		return
	}
	p.upstream.WithLabelValues(host, strconv.Itoa(status)).Inc()
	p.upstreamLatency.WithLabelValues(host).Observe(d.Seconds())
}

func (p *PrometheusRecorder) OnError(_ context.Context, _, host, _ string, _ error) {
	if p == nil || p.upstream == nil {
		return
	}
	p.upstream.WithLabelValues(host, "error").Inc()
}

// ObserveRequest records an inbound API request. route is the chi route
// pattern, not the raw path.
func (p *PrometheusRecorder) ObserveRequest(route string, status int, d time.Duration) {
	if p == nil || p.requests == nil {
		return
	}
	p.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	p.requestLatency.WithLabelValues(route).Observe(d.Seconds())
}
