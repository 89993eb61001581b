// Package metrics exposes the service's Prometheus instrumentation.
//
// All families live on a package-private registry so the /metrics
// endpoint serves only jamstats series, without the default Go and
// process collectors. Call sites use the package-level helpers, which
// write through a shared Manager.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// latencyBuckets covers the millisecond histograms: sub-millisecond
// appends up through multi-second pipeline runs over a large corpus.
var latencyBuckets = []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500}

// Manager owns every metric family the service emits.
type Manager struct {
	namespace string
	buckets   []float64
	reg       prometheus.Registerer

	// ingestion volume
	tracksIngested  prometheus.Counter
	batchesIngested prometheus.Counter
	batchesRejected prometheus.Counter

	// pipeline runs and the memoized-result cache
	pipelineRuns    prometheus.Counter
	pipelineLatency prometheus.Histogram
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter

	// dataset shape
	datasetTracks prometheus.Gauge
	datasetShows  prometheus.Gauge
	datasetSongs  prometheus.Gauge
	appendLatency prometheus.Histogram

	// ingestion queue
	queueDepth       prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	enqueues         prometheus.Counter
	dequeues         prometheus.Counter
	enqueueRejects   prometheus.Counter

	// ingestion workers
	workerCount      prometheus.Gauge
	workerThroughput prometheus.Gauge
	batchLatency     prometheus.Histogram
	workerErrors     prometheus.Counter

	// HTTP surface
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec

	// cross-component error breakdown
	componentErrors *prometheus.CounterVec

	// Go runtime samples
	heapBytes  prometheus.Gauge
	goroutines prometheus.Gauge
	gcPause    prometheus.Histogram
}

// registry backs the package-level helpers and the /metrics endpoint.
var registry = prometheus.NewRegistry()

// std is the shared manager the package-level helpers write through.
var std = NewManager(WithRegistry(registry))

// NewManager builds a Manager and registers its families. Registering
// two managers on one registry panics (duplicate names); tests pass
// their own registry per manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "jamstats",
		buckets:   latencyBuckets,
		reg:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.build()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.reg).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Name: name, Help: help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.reg).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.reg).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Name: name, Help: help, Buckets: m.buckets,
	})
}

func (m *Manager) counterVec(name, help string, labels []string) *prometheus.CounterVec {
	return promauto.With(m.reg).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Name: name, Help: help,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels []string) *prometheus.HistogramVec {
	return promauto.With(m.reg).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Name: name, Help: help, Buckets: m.buckets,
	}, labels)
}

func (m *Manager) build() {
	m.tracksIngested = m.counter("tracks_ingested_total", "Performance records appended to the dataset.")
	m.batchesIngested = m.counter("batches_ingested_total", "Track batches drained off the queue and appended.")
	m.batchesRejected = m.counter("batches_rejected_total", "Track batches refused at the API due to backpressure.")

	m.pipelineRuns = m.counter("pipeline_runs_total", "Full leaderboard pipeline executions.")
	m.pipelineLatency = m.histogram("pipeline_latency_ms", "Leaderboard pipeline wall time in milliseconds.")
	m.cacheHits = m.counter("result_cache_hits_total", "Leaderboard queries answered from the result cache.")
	m.cacheMisses = m.counter("result_cache_misses_total", "Leaderboard queries that had to run the pipeline.")

	m.datasetTracks = m.gauge("dataset_tracks", "Performance records currently in the dataset.")
	m.datasetShows = m.gauge("dataset_shows", "Distinct show dates currently in the dataset.")
	m.datasetSongs = m.gauge("dataset_songs", "Distinct songs currently in the dataset.")
	m.appendLatency = m.histogram("dataset_append_latency_ms", "Dataset append wall time in milliseconds.")

	m.queueDepth = m.gauge("queue_depth", "Batches waiting in the ingestion queue.")
	m.queueCapacity = m.gauge("queue_capacity", "Ingestion queue capacity.")
	m.queueUtilization = m.gauge("queue_utilization", "Queue depth over capacity, 0 to 1.")
	m.enqueues = m.counter("queue_enqueues_total", "Batches accepted by the ingestion queue.")
	m.dequeues = m.counter("queue_dequeues_total", "Batches handed to workers.")
	m.enqueueRejects = m.counter("queue_rejects_total", "Enqueue attempts refused (full or closed).")

	m.workerCount = m.gauge("worker_count", "Configured ingestion workers.")
	m.workerThroughput = m.gauge("worker_batches_per_second", "Recent batch ingestion rate across the pool.")
	m.batchLatency = m.histogram("batch_process_latency_ms", "Per-batch dequeue-to-append wall time in milliseconds.")
	m.workerErrors = m.counter("worker_errors_total", "Batches a worker failed to process.")

	labels := []string{"endpoint", "method", "status"}
	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method and status.", labels)
	m.httpLatency = m.histogramVec("http_request_latency_ms", "HTTP request wall time in milliseconds.", labels)
	m.httpErrors = m.counterVec("http_errors_total", "HTTP error responses by endpoint, method and kind.",
		[]string{"endpoint", "method", "kind"})

	m.componentErrors = m.counterVec("component_errors_total", "Errors by component and kind.",
		[]string{"component", "kind"})

	m.heapBytes = m.gauge("runtime_heap_bytes", "Allocated heap bytes from runtime.MemStats.")
	m.goroutines = m.gauge("runtime_goroutines", "Live goroutines.")
	m.gcPause = m.histogram("runtime_gc_pause_ms", "Mean GC pause in milliseconds, sampled periodically.")
}

// Ingestion.

// RecordTracksIngested counts records appended to the dataset.
func RecordTracksIngested(n int) { std.tracksIngested.Add(float64(n)) }

// RecordBatchIngested counts one batch drained and appended.
func RecordBatchIngested() { std.batchesIngested.Inc() }

// RecordBatchRejected counts one batch refused at the API.
func RecordBatchRejected() { std.batchesRejected.Inc() }

// Pipeline.

// RecordLeaderboardRun counts one pipeline execution and its wall time.
func RecordLeaderboardRun(elapsedMs float64) {
	std.pipelineRuns.Inc()
	std.pipelineLatency.Observe(elapsedMs)
}

// RecordCacheHit counts a leaderboard query served from cache.
func RecordCacheHit() { std.cacheHits.Inc() }

// RecordCacheMiss counts a leaderboard query that ran the pipeline.
func RecordCacheMiss() { std.cacheMisses.Inc() }

// Dataset.

// UpdateDatasetShape sets the corpus gauges after an append or snapshot.
func UpdateDatasetShape(tracks, shows, songs int) {
	std.datasetTracks.Set(float64(tracks))
	std.datasetShows.Set(float64(shows))
	std.datasetSongs.Set(float64(songs))
}

// RecordAppendLatency observes one dataset append in milliseconds.
func RecordAppendLatency(elapsedMs float64) { std.appendLatency.Observe(elapsedMs) }

// Queue.

// UpdateQueueDepth sets the depth, capacity and utilization gauges.
func UpdateQueueDepth(depth, capacity int) {
	std.queueDepth.Set(float64(depth))
	std.queueCapacity.Set(float64(capacity))
	if capacity > 0 {
		std.queueUtilization.Set(float64(depth) / float64(capacity))
	}
}

// RecordEnqueue counts one accepted batch.
func RecordEnqueue() { std.enqueues.Inc() }

// RecordDequeue counts one batch handed to a worker.
func RecordDequeue() { std.dequeues.Inc() }

// RecordQueueReject counts one refused enqueue and tags its kind
// ("full", "closed", "canceled") on the component error vector.
func RecordQueueReject(kind string) {
	std.enqueueRejects.Inc()
	std.componentErrors.WithLabelValues("queue", kind).Inc()
}

// Workers.

// UpdateWorkerCount sets the configured pool size.
func UpdateWorkerCount(n int) { std.workerCount.Set(float64(n)) }

// UpdateWorkerThroughput sets the recent pool-wide batches-per-second rate.
func UpdateWorkerThroughput(perSecond float64) { std.workerThroughput.Set(perSecond) }

// RecordBatchProcessLatency observes one dequeue-to-append cycle in
// milliseconds.
func RecordBatchProcessLatency(elapsedMs float64) { std.batchLatency.Observe(elapsedMs) }

// RecordWorkerError counts one failed batch and tags its kind on the
// component error vector.
func RecordWorkerError(kind string) {
	std.workerErrors.Inc()
	std.componentErrors.WithLabelValues("worker", kind).Inc()
}

// HTTP.

// RecordHTTPRequest counts one request and observes its wall time.
func RecordHTTPRequest(endpoint, method, status string, elapsedMs float64) {
	std.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	std.httpLatency.WithLabelValues(endpoint, method, status).Observe(elapsedMs)
}

// RecordHTTPError counts one error response by kind ("client_error",
// "not_found", "rate_limit", "server_error").
func RecordHTTPError(endpoint, method, kind string) {
	std.httpErrors.WithLabelValues(endpoint, method, kind).Inc()
}

// Runtime.

// UpdateRuntimeHeapBytes sets the sampled heap allocation gauge.
func UpdateRuntimeHeapBytes(bytes uint64) { std.heapBytes.Set(float64(bytes)) }

// UpdateRuntimeGoroutines sets the sampled goroutine count.
func UpdateRuntimeGoroutines(n int) { std.goroutines.Set(float64(n)) }

// RecordGCPause observes a sampled mean GC pause in milliseconds.
func RecordGCPause(pauseMs float64) { std.gcPause.Observe(pauseMs) }

// Registry returns the registry behind the package-level helpers, for
// the /metrics exposition handler.
func Registry() *prometheus.Registry {
	return registry
}
