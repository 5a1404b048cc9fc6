// Package prometheus exposes LocalMind request and domain metrics in the
// Prometheus text format.
package prometheus

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/localmind"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "localmind"

// Metrics holds the collectors of one server on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpDurationSeconds *prometheus.HistogramVec
	searchesTotal       *prometheus.CounterVec
	searchResults       prometheus.Histogram
	uploadsTotal        *prometheus.CounterVec
}

// NewMetrics registers request and domain collectors. Index sizes are read
// from index at scrape time.
func NewMetrics(index localmind.Index) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"route", "method", "code"},
		),
		httpDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of searches by search type.",
			},
			[]string{"search_type"},
		),
		searchResults: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_results",
				Help:      "Number of results returned per search.",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),
		uploadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Total number of uploaded files by outcome.",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDurationSeconds,
		m.searchesTotal,
		m.searchResults,
		m.uploadsTotal,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_documents",
			Help:      "Number of documents in the search index.",
		}, func() float64 { return float64(index.Len()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_vocabulary_terms",
			Help:      "Number of distinct terms in the search index vocabulary.",
		}, func() float64 { return float64(index.VocabularySize()) }),
	)
	return m
}

// HashCounter reports the approximate size of a content hash set.
type HashCounter interface {
	EstimatedCount() uint
}

// RegisterContentHashes exposes the approximate number of content hashes
// used for duplicate detection.
func (m *Metrics) RegisterContentHashes(hashes HashCounter) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "content_hashes",
		Help:      "Approximate number of content hashes in the duplicate filter.",
	}, func() float64 { return float64(hashes.EstimatedCount()) }))
}

// Handler returns the metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records a completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDurationSeconds.WithLabelValues(route, method).Observe(duration.Seconds())
}

var _ localmind.SearchService = (*SearchService)(nil)

// SearchService counts searches and result sizes.
type SearchService struct {
	metrics *Metrics
	next    localmind.SearchService
}

// NewSearchService wraps next.
func NewSearchService(next localmind.SearchService, m *Metrics) *SearchService {
	return &SearchService{metrics: m, next: next}
}

// Search delegates to the wrapped service and records successful searches.
func (s *SearchService) Search(ctx context.Context, req localmind.SearchRequest) (*localmind.SearchResponse, error) {
	resp, err := s.next.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	s.metrics.searchesTotal.WithLabelValues(resp.QueryAnalysis.SearchType).Inc()
	s.metrics.searchResults.Observe(float64(resp.Total))
	return resp, nil
}

var _ localmind.Uploader = (*Uploader)(nil)

// Uploader counts uploads by outcome: stored, duplicate, rejected or failed.
type Uploader struct {
	metrics *Metrics
	next    localmind.Uploader
}

// NewUploader wraps next.
func NewUploader(next localmind.Uploader, m *Metrics) *Uploader {
	return &Uploader{metrics: m, next: next}
}

// Upload delegates to the wrapped uploader.
func (u *Uploader) Upload(ctx context.Context, file localmind.File) (*localmind.Document, error) {
	doc, err := u.next.Upload(ctx, file)
	u.metrics.uploadsTotal.WithLabelValues(outcome(err)).Inc()
	return doc, err
}

// BulkUpload delegates to the wrapped uploader and counts every file.
func (u *Uploader) BulkUpload(ctx context.Context, files []localmind.File) (*localmind.BulkResult, error) {
	result, err := u.next.BulkUpload(ctx, files)
	if err != nil {
		return nil, err
	}
	u.metrics.uploadsTotal.WithLabelValues("stored").Add(float64(result.TotalProcessed))
	u.metrics.uploadsTotal.WithLabelValues("rejected").Add(float64(result.TotalFailed))
	return result, nil
}

// Store delegates to the wrapped uploader.
func (u *Uploader) Store(ctx context.Context, doc *localmind.Document) error {
	err := u.next.Store(ctx, doc)
	u.metrics.uploadsTotal.WithLabelValues(outcome(err)).Inc()
	return err
}

func outcome(err error) string {
	switch localmind.ErrorCode(err) {
	case "":
		return "stored"
	case localmind.ECONFLICT:
		return "duplicate"
	case localmind.EINTERNAL:
		return "failed"
	default:
		return "rejected"
	}
}
