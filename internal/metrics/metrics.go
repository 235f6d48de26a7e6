package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_board_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_board_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Store operation metrics
var (
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_board_store_operations_total",
			Help: "Total number of content store operations",
		},
		[]string{"operation", "status"}, // operation: save, list, update, delete, restore, empty_trash
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_board_store_operation_duration_seconds",
			Help:    "Content store operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	StoreOrphansDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_board_store_orphans_dropped_total",
			Help: "Total number of orphaned records excluded from listings",
		},
	)

	StoreMalformedSidecars = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_board_store_malformed_sidecars_total",
			Help: "Total number of unreadable metadata sidecars skipped during listings",
		},
	)

	StoreItemsListed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_board_store_items_listed",
			Help: "Number of records returned by the most recent listing",
		},
	)
)

// Trash metrics
var (
	TrashItemsMoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_board_trash_files_moved_total",
			Help: "Total number of files moved between the active store and trash",
		},
		[]string{"direction"}, // "delete" or "restore"
	)

	TrashPurgesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_board_trash_purges_total",
			Help: "Total number of trash purges",
		},
	)

	TrashLastPurgeTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_board_trash_last_purge_timestamp",
			Help: "Timestamp of the last trash purge",
		},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_board_fs_operation_duration_seconds",
			Help:    "Filesystem primitive duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"}, // move, copy, write, purge
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_board_fs_operation_errors_total",
			Help: "Total number of filesystem primitive failures",
		},
		[]string{"operation"},
	)
)

// Watcher metrics
var (
	WatcherEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_board_watcher_events_total",
			Help: "Total number of filesystem change events observed",
		},
		[]string{"directory"}, // "images" or "metadata"
	)
)

// InitializeMetrics pre-populates expected label combinations so that
// every metric is exported from the first Prometheus scrape.
func InitializeMetrics() {
	for _, op := range []string{"save", "list", "update", "delete", "restore", "empty_trash"} {
		StoreOperationsTotal.WithLabelValues(op, "success")
		StoreOperationsTotal.WithLabelValues(op, "error")
		StoreOperationDuration.WithLabelValues(op)
	}

	for _, dir := range []string{"delete", "restore"} {
		TrashItemsMoved.WithLabelValues(dir)
	}

	for _, op := range []string{"move", "copy", "write", "purge"} {
		FilesystemOperationDuration.WithLabelValues(op)
		FilesystemOperationErrors.WithLabelValues(op)
	}

	for _, dir := range []string{"images", "metadata"} {
		WatcherEventsTotal.WithLabelValues(dir)
	}
}
