package handlers

import (
	"net/http"
	"runtime"
	"time"

	"folder-playlist/internal/startup"
)

const statusHealthy = "healthy"

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	// Session summary
	SessionActive bool   `json:"sessionActive"`
	Folder        string `json:"folder,omitempty"`
	Entries       int    `json:"entries"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	snap := h.session.Snapshot()

	response := HealthResponse{
		Status:        statusHealthy,
		Version:       startup.Version,
		Uptime:        time.Since(h.started).Round(time.Second).String(),
		SessionActive: snap.Active,
		Folder:        snap.Folder,
		Entries:       len(snap.Entries),
		GoVersion:     runtime.Version(),
		NumGoroutine:  runtime.NumGoroutine(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		writeJSON(w, response)
	}
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}
