package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"folder-playlist/internal/logging"
)

func TestNewResponseWriter(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newResponseWriter(w)

	if rw == nil {
		t.Fatal("Expected responseWriter to be created")
	}

	if rw.statusCode != http.StatusOK {
		t.Errorf("Expected default status code 200, got %d", rw.statusCode)
	}

	if rw.bytesWritten != 0 {
		t.Errorf("Expected bytesWritten to be 0, got %d", rw.bytesWritten)
	}

	if rw.wroteHeader {
		t.Error("Expected wroteHeader to be false initially")
	}
}

func TestResponseWriterWriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newResponseWriter(w)

	rw.WriteHeader(http.StatusNotFound)

	if rw.statusCode != http.StatusNotFound {
		t.Errorf("Expected status code 404, got %d", rw.statusCode)
	}

	if !rw.wroteHeader {
		t.Error("Expected wroteHeader to be true after WriteHeader")
	}

	// Write header again - should be ignored
	rw.WriteHeader(http.StatusInternalServerError)

	if rw.statusCode != http.StatusNotFound {
		t.Error("Status code should not change after first WriteHeader")
	}
}

func TestResponseWriterWrite(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newResponseWriter(w)

	data := []byte("test data")
	n, err := rw.Write(data)

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if n != len(data) {
		t.Errorf("Expected to write %d bytes, wrote %d", len(data), n)
	}

	if rw.bytesWritten != int64(len(data)) {
		t.Errorf("Expected bytesWritten to be %d, got %d", len(data), rw.bytesWritten)
	}

	if !rw.wroteHeader {
		t.Error("Expected wroteHeader to be true after Write")
	}
}

func TestDefaultLoggingConfig(t *testing.T) {
	config := DefaultLoggingConfig()

	if len(config.SkipPaths) != 0 {
		t.Errorf("Expected empty SkipPaths, got %d items", len(config.SkipPaths))
	}

	if config.LogHealthChecks {
		t.Error("Expected LogHealthChecks to be false by default")
	}
}

// captureLog redirects the shared logger into a buffer for one test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(nil) })
	return &buf
}

func TestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		config        LoggingConfig
		expectLogging bool
	}{
		{
			name:          "Logs control requests",
			path:          "/api/next",
			config:        DefaultLoggingConfig(),
			expectLogging: true,
		},
		{
			name:          "Logs health checks when enabled",
			path:          "/health",
			config:        LoggingConfig{LogHealthChecks: true},
			expectLogging: true,
		},
		{
			name:          "Skips health checks when disabled",
			path:          "/livez",
			config:        LoggingConfig{LogHealthChecks: false},
			expectLogging: false,
		},
		{
			name:          "Skips configured prefixes",
			path:          "/api/playlist.wpl",
			config:        LoggingConfig{SkipPaths: []string{"/api/playlist"}},
			expectLogging: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)

			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})

			wrappedHandler := Logger(tt.config)(handler)

			req := httptest.NewRequest(http.MethodPost, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			wrappedHandler.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Expected status 200, got %d", w.Code)
			}
			logged := strings.Contains(buf.String(), tt.path)
			if logged != tt.expectLogging {
				t.Errorf("logged = %v, want %v (output %q)", logged, tt.expectLogging, buf.String())
			}
		})
	}
}

func TestLoggerW3CFields(t *testing.T) {
	buf := captureLog(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderCommand, "activate")
		w.Header().Set(HeaderActivationID, "6f1c\nforged")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"x"}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/activate?x=1", http.NoBody)
	req.RemoteAddr = "192.0.2.7:51234"
	req.Header.Set("User-Agent", "folderctl test")

	Logger(DefaultLoggingConfig())(handler).ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("log lines = %q, want the #Fields directive and one entry", lines)
	}
	if !strings.Contains(lines[0], w3cFields) {
		t.Errorf("first line %q is not the #Fields directive", lines[0])
	}
	line := lines[1]
	for _, want := range []string{"192.0.2.7", "POST", "/api/activate", "x=1", " 422 ", " 13 ", `"folderctl test"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
	if !strings.HasSuffix(line, " - activate 6f1c forged") {
		t.Errorf("log line %q does not end with referer, command and activation id", line)
	}
}

func TestAccessEntryString(t *testing.T) {
	e := accessEntry{
		at:       time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		clientIP: "192.0.2.7",
		method:   "GET",
		path:     "/api/session",
		status:   200,
		bytes:    42,
		took:     1500 * time.Microsecond,
	}
	want := "2026-03-04 05:06:07 192.0.2.7 GET /api/session - 200 42 1 - - - -"
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSanitizeLogField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"line\nbreak", "line break"},
		{"cr\rlf", "cr lf"},
		{"nul\x00byte", "nulbyte"},
		{"\x1b[31mred", "[31mred"},
		{"bell\x07", "bell"},
		{"tab\tkept", "tab\tkept"},
	}
	for _, tt := range tests {
		if got := sanitizeLogField(tt.in); got != tt.want {
			t.Errorf("sanitizeLogField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}, "10.0.0.2:1", "203.0.113.1"},
		{"forwarded single", map[string]string{"X-Forwarded-For": " 203.0.113.2 "}, "10.0.0.2:1", "203.0.113.2"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.3"}, "10.0.0.2:1", "203.0.113.3"},
		{"remote addr", nil, "198.51.100.4:8080", "198.51.100.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeW3CField(t *testing.T) {
	if got := escapeW3CField("curl/8.0"); got != "curl/8.0" {
		t.Errorf("escapeW3CField() = %q", got)
	}
	if got := escapeW3CField(`a "b" c`); got != `"a ""b"" c"` {
		t.Errorf("escapeW3CField() = %q", got)
	}
}

func TestDefaultMetricsConfig(t *testing.T) {
	config := DefaultMetricsConfig()
	for _, path := range []string{"/metrics", "/health", "/healthz", "/livez"} {
		found := false
		for _, skip := range config.SkipPaths {
			if skip == path {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %q to be in default SkipPaths", path)
		}
	}
}

func TestMetricsMiddlewareStatusCode(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"200 OK", http.StatusOK},
		{"400 Bad Request", http.StatusBadRequest},
		{"409 Conflict", http.StatusConflict},
		{"422 Unprocessable Entity", http.StatusUnprocessableEntity},
		{"500 Internal Server Error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
			})

			wrappedHandler := Metrics(MetricsConfig{})(handler)

			req := httptest.NewRequest(http.MethodPost, "/api/next", http.NoBody)
			w := httptest.NewRecorder()

			wrappedHandler.ServeHTTP(w, req)

			if w.Code != tt.statusCode {
				t.Errorf("Expected status code %d, got %d", tt.statusCode, w.Code)
			}
		})
	}
}

func TestMetricsMiddlewareSkipPaths(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Metrics(DefaultMetricsConfig())(handler)
	for _, path := range []string{"/metrics", "/health", "/api/session"} {
		wrappedHandler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}
	if calls != 3 {
		t.Errorf("handler called %d times, want 3", calls)
	}
}

func TestRouteLabel(t *testing.T) {
	var got string
	router := mux.NewRouter()
	router.HandleFunc("/api/{command}", func(_ http.ResponseWriter, r *http.Request) {
		got = routeLabel(r)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/next", http.NoBody))
	if got != "/api/{command}" {
		t.Errorf("routeLabel() = %q, want the route template", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/a/b/c/d/e/f", http.NoBody)
	if got := routeLabel(req); got != "/a/b/c/{path}" {
		t.Errorf("routeLabel() without a route = %q", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"control path", "/api/next", "/api/next"},
		{"root path", "/", "/"},
		{"health check path", "/health", "/health"},
		{"three segments kept", "/api/v1/users", "/api/v1/users"},
		{"deep path", "/a/b/c/d/e/f/g/h", "/a/b/c/{path}"},
		{"fourth segment collapsed", "/api/v1/users/123", "/api/v1/users/{path}"},
		{"five segments", "/api/v1/users/123/profile", "/api/v1/users/{path}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizePath(tt.path)
			if result != tt.expected {
				t.Errorf("normalizePath(%q) = %q, want %q", tt.path, result, tt.expected)
			}
		})
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logging.SetOutput(&bytes.Buffer{})
	defer logging.SetOutput(nil)

	handler := Logger(DefaultLoggingConfig())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/next", http.NoBody)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkMetricsMiddleware(b *testing.B) {
	handler := Metrics(DefaultMetricsConfig())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/next", http.NoBody)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}
