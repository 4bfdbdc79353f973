package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folder_playlist_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folder_playlist_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folder_playlist_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Session metrics
var (
	ActivationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folder_playlist_activations_total",
			Help: "Total number of folder activations by result",
		},
		[]string{"result"}, // "success", "no_active_item", "malformed_path", "unreadable_folder", "playback_error"
	)

	ActivationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folder_playlist_activation_duration_seconds",
			Help:    "Time to list, filter, sort and resolve a folder",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	AnchorResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folder_playlist_anchor_resolutions_total",
			Help: "Total number of anchor resolutions by the rule that matched",
		},
		[]string{"method"}, // "uri", "name", "default", "none"
	)

	NavigationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folder_playlist_navigations_total",
			Help: "Total number of navigation commands by command and result",
		},
		[]string{"command", "result"}, // result: "played", "empty", "error"
	)

	RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folder_playlist_refreshes_total",
			Help: "Total number of folder refreshes by result",
		},
		[]string{"result"},
	)

	DeactivationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folder_playlist_deactivations_total",
			Help: "Total number of session deactivations",
		},
	)

	SessionActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folder_playlist_session_active",
			Help: "Whether a folder is currently activated (1 = active, 0 = idle)",
		},
	)

	PlaylistEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folder_playlist_entries",
			Help: "Number of entries in the active folder playlist",
		},
	)

	FolderEntriesListed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folder_playlist_folder_entries_listed",
			Help:    "Number of files returned by a folder listing",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folder_playlist_filesystem_operation_duration_seconds",
			Help:    "Duration of filesystem operations by volume and operation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"volume", "operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folder_playlist_filesystem_operation_errors_total",
			Help: "Total number of failed filesystem operations by volume and operation",
		},
		[]string{"volume", "operation"},
	)

	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folder_playlist_filesystem_retry_attempts_total",
			Help: "Total number of filesystem retry attempts",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folder_playlist_filesystem_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retry",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folder_playlist_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folder_playlist_filesystem_stale_errors_total",
			Help: "Total number of NFS stale file handle errors encountered",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folder_playlist_filesystem_retry_duration_seconds",
			Help:    "Total time spent in filesystem operations including retries",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "volume"},
	)
)

// Watcher metrics
var (
	WatcherEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folder_playlist_watcher_events_total",
			Help: "Total number of filesystem watcher events by type",
		},
		[]string{"type"},
	)

	WatcherErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "folder_playlist_watcher_errors_total",
			Help: "Total number of filesystem watcher errors",
		},
	)

	WatchedDirectories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folder_playlist_watched_directories",
			Help: "Number of directories currently being watched",
		},
	)
)

// Application info
var AppInfo = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "folder_playlist_app_info",
		Help: "Application information",
	},
	[]string{"version", "commit", "go_version"},
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
