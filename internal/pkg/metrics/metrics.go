// Package metrics exposes the Prometheus collectors of the service.
//
// Every method is safe on a nil *Metrics, so components built without
// instrumentation (tests, tools) pass nil instead of a registry.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	generated          *prometheus.CounterVec
	validations        *prometheus.CounterVec
	validationDuration *prometheus.HistogramVec
	submissions        *prometheus.CounterVec
	submissionDuration prometheus.Histogram
	cacheLookups       *prometheus.CounterVec
	jobRuns            *prometheus.CounterVec
	jobDuration        *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// NewMetrics registers the collectors against registerer, or against the
// default Prometheus registerer when it is nil.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		defaultOnce.Do(func() {
			defaultMetrics = buildMetrics(prometheus.DefaultRegisterer)
		})
		return defaultMetrics
	}
	return buildMetrics(registerer)
}

// NewRegistry returns a dedicated registry carrying the Go and process
// collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// ObserveGeneration counts one generation attempt. outcome is "success" or
// the error kind of the failed result.
func (m *Metrics) ObserveGeneration(documentType, outcome string) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(documentType, outcome).Inc()
}

// ObserveValidation counts one validation run by outcome and records its
// duration.
func (m *Metrics) ObserveValidation(documentType string, valid bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(documentType, strconv.FormatBool(valid)).Inc()
	m.validationDuration.WithLabelValues(documentType).Observe(elapsed.Seconds())
}

// ObserveSubmission records one delivery attempt: "accepted", "rejected",
// "transient" or "error".
func (m *Metrics) ObserveSubmission(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
	m.submissionDuration.Observe(elapsed.Seconds())
}

// ObserveCacheLookup records "hit", "miss" or "error".
func (m *Metrics) ObserveCacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest records a served request. path should be the route
// pattern, not the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// Tracker instruments a single job run.
type Tracker struct {
	metrics *Metrics
	job     string
	start   time.Time
}

// Track starts timing a run of job. Call End on the returned tracker.
func (m *Metrics) Track(job string) *Tracker {
	return &Tracker{metrics: m, job: job, start: time.Now()}
}

// End records the run and returns err untouched.
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	t.metrics.jobRuns.WithLabelValues(t.job, status).Inc()
	t.metrics.jobDuration.WithLabelValues(t.job).Observe(time.Since(t.start).Seconds())
	return err
}

func buildMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transport_order_generations_total",
			Help: "Generation attempts partitioned by document type and outcome.",
		}, []string{"document_type", "outcome"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transport_order_validations_total",
			Help: "Validation runs partitioned by document type and result.",
		}, []string{"document_type", "valid"}),
		validationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transport_order_validation_duration_seconds",
			Help:    "Duration of validation pipeline runs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"document_type"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transport_order_submissions_total",
			Help: "Deliveries to the exchange platform partitioned by outcome.",
		}, []string{"outcome"}),
		submissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transport_order_submission_duration_seconds",
			Help:    "Duration of deliveries to the exchange platform.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transport_order_validation_cache_lookups_total",
			Help: "Validation cache lookups partitioned by result.",
		}, []string{"result"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transport_order_jobs_total",
			Help: "Background job executions partitioned by job name and status.",
		}, []string{"job", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "transport_order_job_duration_seconds",
			Help:    "Duration of background job executions.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
	registerer.MustRegister(
		m.generated, m.validations, m.validationDuration,
		m.submissions, m.submissionDuration, m.cacheLookups,
		m.jobRuns, m.jobDuration, m.httpRequests, m.httpDuration,
	)
	return m
}
