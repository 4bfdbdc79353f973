package startup

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"folder-playlist/internal/filesystem"
	"folder-playlist/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Config holds all application configuration
type Config struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	PlaylistFile    string
	PlaylistTitle   string
	WatchFolder     bool
	WatchDebounce   time.Duration
	FSMaxRetries    int
	Volumes         string
	LogRequests     bool
	LogHealthChecks bool
	LogLevel        string

	// Open is activated once at startup when set.
	Open string
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// named) without overriding variables already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
		logging.Debug("Loaded environment from %s", f)
	}
	return nil
}

// RegisterFlags binds cfg to flags on set. Each flag defaults to its
// environment variable, so the command line wins over the environment.
func RegisterFlags(set *flag.FlagSet, cfg *Config) {
	set.StringVar(&cfg.Port, "port", getEnv("LISTEN_PORT", "8080"), "HTTP control API port (LISTEN_PORT)")
	set.StringVar(&cfg.MetricsPort, "metrics-port", getEnv("METRICS_PORT", "9090"), "Prometheus metrics port (METRICS_PORT)")
	set.BoolVar(&cfg.MetricsEnabled, "metrics", getEnvBool("METRICS_ENABLED", true), "serve Prometheus metrics (METRICS_ENABLED)")
	set.StringVar(&cfg.PlaylistFile, "playlist-file", getEnv("PLAYLIST_FILE", ""), "write the folder playlist to this WPL file (PLAYLIST_FILE)")
	set.StringVar(&cfg.PlaylistTitle, "playlist-title", getEnv("PLAYLIST_TITLE", "Folder Playlist"), "title written into the WPL file (PLAYLIST_TITLE)")
	set.BoolVar(&cfg.WatchFolder, "watch", getEnvBool("WATCH_FOLDER", false), "refresh the playlist when the active folder changes (WATCH_FOLDER)")
	set.DurationVar(&cfg.WatchDebounce, "watch-debounce", getEnvDuration("WATCH_DEBOUNCE", 500*time.Millisecond), "quiet period before a watched change triggers a refresh (WATCH_DEBOUNCE)")
	set.IntVar(&cfg.FSMaxRetries, "fs-max-retries", getEnvInt("FS_MAX_RETRIES", 0), "retries for stale NFS file handles when writing the playlist file; folder listings are never retried (FS_MAX_RETRIES)")
	set.StringVar(&cfg.Volumes, "volumes", getEnv("VOLUMES", ""), "volume labels for metrics, name=path[,name=path] (VOLUMES)")
	set.BoolVar(&cfg.LogRequests, "log-requests", getEnvBool("LOG_REQUESTS", true), "log HTTP requests (LOG_REQUESTS)")
	set.BoolVar(&cfg.LogHealthChecks, "log-health-checks", getEnvBool("LOG_HEALTH_CHECKS", false), "include health checks in the request log (LOG_HEALTH_CHECKS)")
	set.StringVar(&cfg.LogLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")
	set.StringVar(&cfg.Open, "open", getEnv("OPEN", ""), "file or file:// URI to activate at startup (OPEN)")
}

// Validate checks the configuration without touching the filesystem.
func (c *Config) Validate() error {
	var errs []error
	for name, port := range map[string]string{"port": c.Port, "metrics-port": c.MetricsPort} {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			errs = append(errs, fmt.Errorf("%s: %q is not a valid port", name, port))
		}
	}
	if c.MetricsEnabled && c.Port == c.MetricsPort {
		errs = append(errs, fmt.Errorf("port and metrics-port are both %s", c.Port))
	}
	if c.WatchDebounce <= 0 {
		errs = append(errs, fmt.Errorf("watch-debounce must be positive, got %v", c.WatchDebounce))
	}
	if c.FSMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("fs-max-retries must not be negative, got %d", c.FSMaxRetries))
	}
	if c.LogLevel != "" {
		if _, ok := logging.ParseLevel(c.LogLevel); !ok {
			errs = append(errs, fmt.Errorf("log-level: unknown level %q", c.LogLevel))
		}
	}
	if _, err := ParseVolumes(c.Volumes); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RetryConfig returns the retry policy for playlist file writes.
func (c *Config) RetryConfig() filesystem.RetryConfig {
	rc := filesystem.DefaultRetryConfig()
	rc.MaxRetries = c.FSMaxRetries
	return rc
}

// ParseVolumes parses "name=path,name=path" into a map for
// filesystem.NewVolumeResolver. An empty string yields an empty map.
func ParseVolumes(s string) (map[string]string, error) {
	volumes := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, path, ok := strings.Cut(part, "=")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("volumes: %q is not name=path", part)
		}
		volumes[name] = path
	}
	return volumes, nil
}

// Finalize validates cfg, applies the log level, resolves the playlist file
// to an absolute path and logs the effective configuration.
func Finalize(cfg *Config) error {
	printBanner()
	logSystemInfo()

	if err := cfg.Validate(); err != nil {
		return err
	}
	if level, ok := logging.ParseLevel(cfg.LogLevel); ok {
		logging.SetLevel(level)
	}

	if cfg.PlaylistFile != "" {
		abs, err := filepath.Abs(cfg.PlaylistFile)
		if err != nil {
			return fmt.Errorf("failed to resolve playlist file path: %w", err)
		}
		cfg.PlaylistFile = abs
		if err := testWriteAccess(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("playlist file folder is not writable: %w", err)
		}
	}

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  LISTEN_PORT:         %s", cfg.Port)
	logging.Info("  METRICS_PORT:        %s", cfg.MetricsPort)
	logging.Info("  METRICS_ENABLED:     %v", cfg.MetricsEnabled)
	logging.Info("  PLAYLIST_FILE:       %s", valueOrNone(cfg.PlaylistFile))
	logging.Info("  WATCH_FOLDER:        %v", cfg.WatchFolder)
	logging.Info("  WATCH_DEBOUNCE:      %v", cfg.WatchDebounce)
	logging.Info("  FS_MAX_RETRIES:      %d", cfg.FSMaxRetries)
	logging.Info("  VOLUMES:             %s", valueOrNone(cfg.Volumes))
	logging.Info("  LOG_REQUESTS:        %v", cfg.LogRequests)
	logging.Info("  LOG_HEALTH_CHECKS:   %v", cfg.LogHealthChecks)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())
	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Playlist file: %s", enabledString(cfg.PlaylistFile != ""))
	logging.Info("    Folder watch:  %s", enabledString(cfg.WatchFolder))
	logging.Info("    Metrics:       %s", enabledString(cfg.MetricsEnabled))

	return nil
}

func valueOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogSessionInit logs how the playback session is wired
func LogSessionInit(playlistFile string, watch bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SESSION INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	if playlistFile != "" {
		logging.Info("  Playback sink:   WPL file %s", playlistFile)
	} else {
		logging.Info("  Playback sink:   log only")
	}
	if watch {
		logging.Info("  Folder watcher:  starting")
	}
}

// LogWatcherStarted logs successful watcher start
func LogWatcherStarted() {
	logging.Info("  [OK] Folder watcher started")
}

// LogActivation logs the outcome of the startup activation
func LogActivation(item string, err error) {
	if err != nil {
		logging.Warn("  Startup activation of %s failed: %v", item, err)
		return
	}
	logging.Info("  [OK] Activated %s", item)
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		name := route.GetName()

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   name,
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes dynamically
func LogHTTPRoutes(router *mux.Router, logRequests, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))
		logging.Debug("")

		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, group := range groupKeys {
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}

			for _, route := range groups[group] {
				logging.Debug("    %-6s %s", route.Method, route.Path)
			}
			logging.Debug("")
		}
	}

	if !logRequests {
		logging.Info("  HTTP logging disabled (set LOG_REQUESTS=true to enable)")
		return
	}
	logging.Info("  HTTP logging enabled")
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	first := parts[0]

	if first == "api" && len(parts) > 1 {
		subParts := strings.SplitN(parts[1], "/", 2)
		return "api/" + subParts[0]
	}

	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Control API:   http://0.0.0.0:%s/api", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func printBanner() {
	banner := `
------------------------------------------------------------
    ____      __    __                __             ___      __
   / __/___  / /___/ /__  _____      / /  ___  ___ _/ (_)__ _/ /_
  / /_/ __ \/ / __  / _ \/ ___/_____/ _ \/ _ \/ _ '/ / (_-</ __/
 / __/ /_/ / / /_/ /  __/ /  /_____/ .__/_/\_,_/\_, /_/_/___/\__/
/_/  \____/_/\__,_/\___/_/        /_/          /___/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logging.Warn("Invalid duration for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
