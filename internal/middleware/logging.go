package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"folder-playlist/internal/logging"
)

// Response headers the control handlers set so the access log can tie a
// request to the session command it ran.
const (
	HeaderCommand      = "X-Session-Command"
	HeaderActivationID = "X-Activation-ID"
)

// w3cFields is the #Fields directive for the lines Logger writes. The two
// x- fields are W3C extension fields.
const w3cFields = "#Fields: date time c-ip cs-method cs-uri-stem cs-uri-query sc-status sc-bytes time-taken cs(User-Agent) cs(Referer) x-command x-activation-id"

// responseWriter records the status code and body size of a response.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
	wroteHeader  bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.wroteHeader = true
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// LoggingConfig holds configuration for the logging middleware
type LoggingConfig struct {
	SkipPaths       []string
	LogHealthChecks bool
}

// DefaultLoggingConfig returns the default configuration: every control
// request is logged, health probes are not.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		SkipPaths:       []string{},
		LogHealthChecks: false,
	}
}

var healthCheckPaths = map[string]bool{
	"/health":  true,
	"/healthz": true,
	"/livez":   true,
	"/readyz":  true,
}

// accessEntry is one access log line before formatting.
type accessEntry struct {
	at           time.Time
	clientIP     string
	method       string
	path         string
	query        string
	status       int
	bytes        int64
	took         time.Duration
	userAgent    string
	referer      string
	command      string
	activationID string
}

// newAccessEntry collects the fields of a served request. Everything taken
// from the request or the response headers is sanitized.
func newAccessEntry(r *http.Request, rw *responseWriter, took time.Duration) accessEntry {
	return accessEntry{
		at:           time.Now().UTC(),
		clientIP:     sanitizeLogField(getClientIP(r)),
		method:       sanitizeLogField(r.Method),
		path:         sanitizeLogField(r.URL.Path),
		query:        sanitizeLogField(r.URL.RawQuery),
		status:       rw.statusCode,
		bytes:        rw.bytesWritten,
		took:         took,
		userAgent:    sanitizeLogField(r.Header.Get("User-Agent")),
		referer:      sanitizeLogField(r.Header.Get("Referer")),
		command:      sanitizeLogField(rw.Header().Get(HeaderCommand)),
		activationID: sanitizeLogField(rw.Header().Get(HeaderActivationID)),
	}
}

// String formats the entry in the field order of w3cFields. Empty fields
// are written as "-".
func (e accessEntry) String() string {
	return fmt.Sprintf("%s %s %s %s %s %s %d %d %d %s %s %s %s",
		e.at.Format("2006-01-02"),
		e.at.Format("15:04:05"),
		e.clientIP,
		e.method,
		e.path,
		orDash(e.query),
		e.status,
		e.bytes,
		e.took.Milliseconds(),
		orDash(escapeW3CField(e.userAgent)),
		orDash(escapeW3CField(e.referer)),
		orDash(e.command),
		orDash(e.activationID),
	)
}

// Logger returns access log middleware writing W3C Extended Log Format
// lines. The #Fields directive is written once when the middleware is built.
func Logger(config LoggingConfig) func(http.Handler) http.Handler {
	logging.Printf("%s", w3cFields)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkip(r.URL.Path, config) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			//nolint:gosec // G706: newAccessEntry sanitizes every request-derived field.
			logging.Printf("%s", newAccessEntry(r, wrapped, time.Since(start)))
		})
	}
}

// sanitizeLogField removes control characters that could be used for log injection.
// This includes newlines, carriage returns, tabs, null bytes, and ANSI escape sequences.
func sanitizeLogField(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			b.WriteRune(' ')
		case r == '\x00', r == '\x1b':
			continue
		case r < 0x20 && r != '\t':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func shouldSkip(path string, config LoggingConfig) bool {
	for _, skipPath := range config.SkipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return !config.LogHealthChecks && healthCheckPaths[path]
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// escapeW3CField quotes values holding spaces, tabs or quotes, doubling
// embedded quotes.
func escapeW3CField(s string) string {
	if strings.ContainsAny(s, " \t\"") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
