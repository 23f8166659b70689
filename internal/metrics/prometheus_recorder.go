package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "booknav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg                *prom.Registry
	stageDuration      *prom.HistogramVec
	buildDuration      prom.Histogram
	stageResults       *prom.CounterVec
	buildOutcome       *prom.CounterVec
	validationFailures *prom.CounterVec
	flattenedGroups    prom.Counter
	pagesRendered      prom.Gauge
	pagesOrphaned      prom.Gauge
	lastSuccess        prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg,
// creating a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.validationFailures = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Rejected configurations by error kind",
	}, []string{"kind"})
	pr.flattenedGroups = prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "flattened_groups_total",
		Help:      "Groups spliced into their parent by the flatten depth policy",
	})
	pr.pagesRendered = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "pages_rendered",
		Help:      "Page models written by the last build",
	})
	pr.pagesOrphaned = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "pages_orphaned",
		Help:      "Content pages not linked from the sidebar in the last build",
	})
	pr.lastSuccess = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful build",
	})
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.validationFailures, pr.flattenedGroups, pr.pagesRendered, pr.pagesOrphaned, pr.lastSuccess)
	return pr
}

// Registry exposes the registry the recorder writes to.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	if p == nil {
		return nil
	}
	return p.reg
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
	if outcome == BuildOutcomeSuccess || outcome == BuildOutcomeWarning {
		p.lastSuccess.SetToCurrentTime()
	}
}

func (p *PrometheusRecorder) IncValidationFailure(kind string) {
	if p == nil || p.validationFailures == nil {
		return
	}
	p.validationFailures.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) AddFlattenedGroups(n int) {
	if p == nil || p.flattenedGroups == nil || n <= 0 {
		return
	}
	p.flattenedGroups.Add(float64(n))
}

func (p *PrometheusRecorder) SetPages(rendered, orphaned int) {
	if p == nil || p.pagesRendered == nil {
		return
	}
	p.pagesRendered.Set(float64(rendered))
	p.pagesOrphaned.Set(float64(orphaned))
}

// WriteTextfile writes the current metrics in the text exposition format.
// The write goes through a temp file so a scraper never sees a partial file.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil {
		return errors.New("metrics: recorder is nil")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	return prom.WriteToTextfile(path, p.reg)
}
