package metrics

// volumeLabels lists the configured volume labels to pre-populate.
var volumeLabels []string

// SetVolumeLabels records the configured volume labels so InitializeMetrics
// exports a series for each of them.
func SetVolumeLabels(labels []string) {
	volumeLabels = append([]string(nil), labels...)
}

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, result := range []string{"success", "no_active_item", "malformed_path", "unreadable_folder", "playback_error"} {
		ActivationsTotal.WithLabelValues(result)
	}

	for _, method := range []string{"uri", "name", "default", "none"} {
		AnchorResolutionsTotal.WithLabelValues(method)
	}

	for _, command := range []string{"next", "previous", "jump"} {
		for _, result := range []string{"played", "empty", "error"} {
			NavigationsTotal.WithLabelValues(command, result)
		}
	}

	for _, result := range []string{"success", "inactive", "error"} {
		RefreshesTotal.WithLabelValues(result)
	}

	volumes := append([]string{"unknown"}, volumeLabels...)
	fsOps := []string{"stat", "readdir", "write"}

	for _, vol := range volumes {
		for _, op := range fsOps {
			FilesystemOperationDuration.WithLabelValues(vol, op)
			FilesystemOperationErrors.WithLabelValues(vol, op)
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}

	for _, eventType := range []string{"create", "write", "remove", "rename", "chmod"} {
		WatcherEventsTotal.WithLabelValues(eventType)
	}
}
