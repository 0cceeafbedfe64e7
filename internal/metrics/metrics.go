package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
)

// Classification outcomes.
const (
	OutcomeMatched  = "matched"
	OutcomeDefault  = "default"
	OutcomeDeferred = "below_threshold"
)

// Submission results.
const (
	ResultAccepted  = "accepted"
	ResultInvalid   = "invalid"
	ResultDuplicate = "duplicate"
	ResultFailed    = "failed"
	ResultAbandoned = "abandoned"
)

// Metrics holds the deed service collectors.
type Metrics struct {
	registry *prometheus.Registry

	classifications *prometheus.CounterVec
	sdgTags         *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	feedQueries     prometheus.Counter
	feedResults     prometheus.Histogram
	indexed         *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New(namespace string) *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.classifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classifications_total",
		Help:      "Descriptions classified, by outcome",
	}, []string{"outcome"})
	m.sdgTags = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sdg_tags_total",
		Help:      "SDG tags attached to accepted deeds",
	}, []string{"sdg"})
	m.submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Deed submissions, by result",
	}, []string{"result"})
	m.feedQueries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_queries_total",
		Help:      "Feed filter queries served",
	})
	m.feedResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "feed_results",
		Help:      "Deeds returned per feed query",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
	m.indexed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "indexed_total",
		Help:      "Deeds handled by the indexer, by result",
	}, []string{"result"})

	m.registry.MustRegister(
		m.classifications,
		m.sdgTags,
		m.submissions,
		m.feedQueries,
		m.feedResults,
		m.indexed,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveClassification(outcome string) {
	m.classifications.WithLabelValues(outcome).Inc()
}

// ObserveSubmission counts a submission result and, for accepted deeds, their tags.
func (m *Metrics) ObserveSubmission(result string, deed *models.Deed) {
	m.submissions.WithLabelValues(result).Inc()
	if deed == nil {
		return
	}
	for _, tag := range deed.SDGs {
		m.sdgTags.WithLabelValues(strconv.Itoa(tag.ID)).Inc()
	}
}

func (m *Metrics) ObserveFeed(results int) {
	m.feedQueries.Inc()
	m.feedResults.Observe(float64(results))
}

func (m *Metrics) ObserveIndexed(result string) {
	m.indexed.WithLabelValues(result).Inc()
}
