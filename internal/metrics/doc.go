// Package metrics provides Prometheus instrumentation for the folder-playlist daemon.
//
// All metrics are prefixed with "folder_playlist_" and registered with the
// default Prometheus registry through promauto.
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Session Metrics
//
// Track folder activations and navigation:
//   - ActivationsTotal: Counter of activations by result
//   - ActivationDuration: Histogram of list/filter/sort/resolve time
//   - AnchorResolutionsTotal: Counter by the rule that located the anchor (uri/name/default/none)
//   - NavigationsTotal: Counter by command (next/previous/jump) and result
//   - RefreshesTotal: Counter of folder refreshes by result
//   - DeactivationsTotal: Counter of session teardowns
//   - SessionActive: Gauge, 1 while a folder is active
//   - PlaylistEntries: Gauge of entries in the active playlist
//   - FolderEntriesListed: Histogram of raw listing sizes
//
// ## Filesystem Metrics
//
// Recorded through [NewFilesystemObserver], which the filesystem package
// calls for every stat, readdir and write:
//   - FilesystemOperationDuration, FilesystemOperationErrors
//   - FilesystemRetryAttempts, FilesystemRetrySuccess, FilesystemRetryFailures
//   - FilesystemStaleErrors, FilesystemRetryDuration
//
// ## Watcher Metrics
//
//   - WatcherEventsTotal: Counter of fsnotify events by type
//   - WatcherErrors: Counter of watcher errors
//   - WatchedDirectories: Gauge of watched directories
//
// ## Application Info
//
//   - AppInfo: Gauge with version, commit, and Go version labels
//
// # Usage
//
//	import "github.com/prometheus/client_golang/prometheus/promhttp"
//
//	mux.Handle("/metrics", promhttp.Handler())
//
// # Prometheus Queries
//
// Navigation rate by command:
//
//	sum(rate(folder_playlist_navigations_total{result="played"}[5m])) by (command)
//
// Share of activations that fell back to the first entry:
//
//	rate(folder_playlist_anchor_resolutions_total{method="default"}[1h]) /
//	sum(rate(folder_playlist_anchor_resolutions_total[1h]))
//
// P95 activation latency:
//
//	histogram_quantile(0.95, sum(rate(folder_playlist_activation_duration_seconds_bucket[5m])) by (le))
package metrics
