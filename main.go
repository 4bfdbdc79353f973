package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/vharitonsky/iniflags"

	"folder-playlist/internal/filesystem"
	"folder-playlist/internal/handlers"
	"folder-playlist/internal/host"
	"folder-playlist/internal/logging"
	"folder-playlist/internal/metrics"
	"folder-playlist/internal/middleware"
	"folder-playlist/internal/startup"
	"folder-playlist/internal/watcher"
)

func main() {
	startTime := time.Now()

	// Load configuration: .env, then environment-backed flags, then -config ini
	if err := startup.LoadDotEnv(); err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}
	config := &startup.Config{}
	startup.RegisterFlags(flag.CommandLine, config)
	iniflags.Parse()
	if err := startup.Finalize(config); err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Metrics and filesystem instrumentation
	volumes, err := startup.ParseVolumes(config.Volumes)
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}
	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(volumes))
	labels := make([]string, 0, len(volumes))
	for name := range volumes {
		labels = append(labels, name)
	}
	metrics.SetVolumeLabels(labels)
	filesystem.SetObserver(metrics.NewFilesystemObserver())
	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)

	// Session and its collaborators
	startup.LogSessionInit(config.PlaylistFile, config.WatchFolder)
	var sink host.PlaybackSink = host.LogSink{}
	var wpl *host.WPLSink
	if config.PlaylistFile != "" {
		wpl = host.NewWPLSink(config.PlaylistFile, config.PlaylistTitle)
		wpl.Retry = config.RetryConfig()
		sink = wpl
	}

	var w *watcher.Watcher
	var session *host.Session
	opts := host.Options{
		Anchors: host.StaticAnchor(config.Open),
		Lister:  host.NewFSLister(),
		Sink:    sink,
	}
	if config.WatchFolder {
		w, err = watcher.New(config.WatchDebounce, func(ctx context.Context) error {
			_, err := session.Refresh(ctx)
			return err
		})
		if err != nil {
			startup.LogFatal("Failed to create folder watcher: %v", err)
		}
		opts.OnFolderChange = w.SetFolder
	}
	session = host.NewSession(opts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if w != nil {
		go w.Run(ctx)
		startup.LogWatcherStarted()
	}

	if config.Open != "" {
		_, err := session.Activate(ctx)
		startup.LogActivation(config.Open, err)
	}

	// Initialize handlers
	h := handlers.New(session, config.PlaylistTitle)

	// Setup router
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	router.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogRequests, config.LogHealthChecks)

	var handler http.Handler = router
	if config.LogRequests {
		loggingConfig := middleware.DefaultLoggingConfig()
		loggingConfig.LogHealthChecks = config.LogHealthChecks
		handler = middleware.Logger(loggingConfig)(router)
	}

	// Create servers
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", h.MetricsHandler())
		metricsMux.HandleFunc("/health", h.LivenessCheck)
		metricsSrv = &http.Server{
			Addr:              ":" + config.MetricsPort,
			Handler:           metricsMux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, session, wpl, w, cancel)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func handleShutdown(srv, metricsSrv *http.Server, session *host.Session, wpl *host.WPLSink, w *watcher.Watcher, stop context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(strings.ToUpper(sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Deactivating session")
	session.Deactivate()
	startup.LogShutdownStepComplete("Session deactivated")

	if wpl != nil {
		startup.LogShutdownStep("Removing playlist file")
		if err := wpl.Remove(); err != nil {
			logging.Warn("Playlist file removal error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Playlist file removed")
		}
	}

	if w != nil {
		startup.LogShutdownStep("Stopping folder watcher")
		stop()
		if err := w.Close(); err != nil {
			logging.Warn("Folder watcher close error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Folder watcher stopped")
		}
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
