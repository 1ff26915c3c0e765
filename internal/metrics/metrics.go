// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hireflow/hireflow/internal/extraction"
	"github.com/hireflow/hireflow/internal/intake"
	"github.com/hireflow/hireflow/internal/textsource"
)

const (
	Namespace           = "hireflow"
	SubsystemDocuments  = "documents"
	SubsystemExtraction = "extraction"
	SubsystemValidation = "validation"
	SubsystemHTTP       = "http"

	OutcomeAccepted      = "accepted"
	OutcomeBlocked       = "blocked"
	OutcomeUnprocessable = "unprocessable"
	OutcomeUnsupported   = "unsupported"
)

// Metrics collects intake metrics on a private registry. It implements
// intake.Observer.
type Metrics struct {
	registry *prometheus.Registry

	documentsTotal *prometheus.CounterVec
	fieldsTotal    *prometheus.CounterVec
	findingsTotal  *prometheus.CounterVec
	confidence     *prometheus.HistogramVec

	httpRequests *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: Namespace}))
	m.registry.MustRegister(collectors.NewGoCollector())

	m.documentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: SubsystemDocuments,
		Name:      "processed_total",
		Help:      "Documents processed, by outcome.",
	}, []string{"outcome"})
	m.registry.MustRegister(m.documentsTotal)

	m.fieldsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: SubsystemExtraction,
		Name:      "fields_total",
		Help:      "Extracted fields, by field and whether the field was found.",
	}, []string{"field", "found"})
	m.registry.MustRegister(m.fieldsTotal)

	m.confidence = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: SubsystemExtraction,
		Name:      "confidence",
		Help:      "Confidence of found fields.",
		Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
	}, []string{"field"})
	m.registry.MustRegister(m.confidence)

	m.findingsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: SubsystemValidation,
		Name:      "findings_total",
		Help:      "Validation findings, by kind.",
	}, []string{"kind"})
	m.registry.MustRegister(m.findingsTotal)

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: SubsystemHTTP,
		Name:      "requests_total",
		Help:      "HTTP requests, by route and status code.",
	}, []string{"route", "code"})
	m.registry.MustRegister(m.httpRequests)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest counts one served request.
func (m *Metrics) ObserveHTTPRequest(route, code string) {
	m.httpRequests.WithLabelValues(route, code).Inc()
}

func (m *Metrics) Observe(ev intake.Event) {
	switch ev.Kind {
	case intake.EventRejected:
		outcome := OutcomeUnprocessable
		if errors.Is(ev.Err, textsource.ErrUnsupportedFormat) {
			outcome = OutcomeUnsupported
		}
		m.documentsTotal.WithLabelValues(outcome).Inc()
	case intake.EventExtracted:
		for _, f := range ev.Extraction.Fields {
			m.observeField(f)
		}
	case intake.EventValidated:
		outcome := OutcomeAccepted
		if ev.Report.Blocking() {
			outcome = OutcomeBlocked
		}
		m.documentsTotal.WithLabelValues(outcome).Inc()
		m.findingsTotal.WithLabelValues("error").Add(float64(len(ev.Report.Errors)))
		m.findingsTotal.WithLabelValues("warning").Add(float64(len(ev.Report.Warnings)))
		m.findingsTotal.WithLabelValues("suggestion").Add(float64(len(ev.Report.Suggestions)))
	}
}

func (m *Metrics) observeField(f extraction.FieldResult) {
	if !f.Found {
		m.fieldsTotal.WithLabelValues(string(f.Field), "false").Inc()
		return
	}
	m.fieldsTotal.WithLabelValues(string(f.Field), "true").Inc()
	m.confidence.WithLabelValues(string(f.Field)).Observe(f.Confidence)
}
