// Package main provides the entry point for the folder-playlist daemon.
//
// folder-playlist turns "the item that is open right now" into a playlist of
// its media siblings. Activating on a file lists the folder that holds it,
// keeps the audio and video files other than the file itself, sorts them by
// name and starts playback on the entry that matches the file (or the first
// entry when nothing matches). next and previous then walk that playlist
// with wrap-around until the session is deactivated or another item is
// activated.
//
// # Application Lifecycle
//
//  1. Configuration: .env, environment-backed flags and an optional -config ini file
//  2. Instrumentation: volume labels, filesystem observer, Prometheus metrics
//  3. Session: directory lister, playback sink (log or WPL file), optional folder watcher
//  4. Startup activation of -open, when set
//  5. HTTP Server Setup: control API, health and version routes, middleware
//  6. Graceful Shutdown: handles SIGINT/SIGTERM
//
// # HTTP Server
//
// The application runs two HTTP servers:
//
//  1. Control Server (default port 8080):
//     - POST /api/activate, /api/next, /api/previous, /api/jump, /api/refresh
//     - POST or DELETE /api/deactivate, GET and DELETE /api/session
//     - GET /api/playlist.wpl
//     - /health, /healthz, /livez, /version
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//     - Health check endpoint (/health)
//
// # Environment Variables
//
//   - LISTEN_PORT: Control server port (default: 8080)
//   - METRICS_PORT: Metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable metrics server (default: true)
//   - PLAYLIST_FILE: WPL file the playlist is written to (default: log only)
//   - PLAYLIST_TITLE: Title written into the WPL file
//   - WATCH_FOLDER: Refresh the playlist when the active folder changes
//   - WATCH_DEBOUNCE: Quiet period before a watched change refreshes (default: 500ms)
//   - FS_MAX_RETRIES: Retries for stale NFS file handles on playlist file writes (default: 0)
//   - VOLUMES: name=path pairs used as metric volume labels
//   - OPEN: File or file:// URI activated at startup
//   - LOG_LEVEL: Logging level (debug/info/warn/error)
//
// Every variable has a matching flag, which takes precedence.
//
// # Graceful Shutdown
//
//  1. Deactivate the session
//  2. Stop the folder watcher (if running)
//  3. Shutdown metrics server (if running)
//  4. Shutdown control server (30s timeout)
//
// # Related Packages
//
//   - [folder-playlist/internal/playlist]: Snapshot building, resolution and navigation
//   - [folder-playlist/internal/host]: Session and host collaborators
//   - [folder-playlist/internal/handlers]: HTTP control API
//   - [folder-playlist/internal/watcher]: Folder change notifications
//   - [folder-playlist/internal/startup]: Configuration and startup logging
package main
