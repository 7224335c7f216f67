package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "redirectgen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	resolutions *prom.CounterVec
	malformed   prom.Counter
	pageResults *prom.CounterVec
	runDuration prom.Histogram
	redirects   prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		resolutions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "target_resolutions_total",
			Help:      "Resolved redirect targets by resolution branch",
		}, []string{"branch"}),
		malformed: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_targets_total",
			Help:      "Redirect targets that failed URI parsing",
		}),
		pageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_results_total",
			Help:      "Redirect page outcomes",
		}, []string{"result"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a full generation run",
			Buckets:   prom.DefBuckets,
		}),
		redirects: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "redirects",
			Help:      "Redirect pages written by the last run",
		}),
	}
	reg.MustRegister(pr.resolutions, pr.malformed, pr.pageResults, pr.runDuration, pr.redirects)
	return pr
}

func (p *PrometheusRecorder) IncResolution(branch string) {
	if p == nil {
		return
	}
	p.resolutions.WithLabelValues(branch).Inc()
}

func (p *PrometheusRecorder) IncMalformedTarget() {
	if p == nil {
		return
	}
	p.malformed.Inc()
}

func (p *PrometheusRecorder) IncPageResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.pageResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetRedirects(n int) {
	if p == nil {
		return
	}
	p.redirects.Set(float64(n))
}
