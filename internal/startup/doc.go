// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// [RegisterFlags] binds a [Config] to a flag set. Every flag defaults to an
// environment variable, and [LoadDotEnv] fills the environment from .env
// files first, so the effective precedence is
// command line > ini file (-config, via iniflags) > environment > .env > default.
//
//   - LISTEN_PORT: HTTP control API port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - PLAYLIST_FILE: WPL file rewritten on every playlist replacement (default: none)
//   - PLAYLIST_TITLE: Title written into the WPL file
//   - WATCH_FOLDER: Refresh the playlist when the active folder changes (default: false)
//   - WATCH_DEBOUNCE: Quiet period before a refresh (default: 500ms)
//   - FS_MAX_RETRIES: Retries for NFS stale file handles on playlist file writes (default: 0)
//   - VOLUMES: name=path pairs used to label filesystem metrics
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_REQUESTS: Log HTTP requests (default: true)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: false)
//   - OPEN: File or file:// URI activated at startup
//
// [Finalize] validates the result, resolves the playlist file and prints the
// banner and effective configuration.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//
//	go build -ldflags "-X folder-playlist/internal/startup.Version=1.2.0"
//
// # Lifecycle Logging
//
//   - [LogSessionInit], [LogWatcherStarted], [LogActivation]
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated], [LogShutdownStep], [LogShutdownComplete]
package startup
