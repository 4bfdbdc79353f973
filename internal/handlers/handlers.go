package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"folder-playlist/internal/host"
)

// Handlers serves the control API for one session.
type Handlers struct {
	session       *host.Session
	playlistTitle string
	started       time.Time
}

// New returns handlers bound to session. playlistTitle names the WPL
// rendering served at /api/playlist.wpl.
func New(session *host.Session, playlistTitle string) *Handlers {
	if playlistTitle == "" {
		playlistTitle = "Folder Playlist"
	}
	return &Handlers{
		session:       session,
		playlistTitle: playlistTitle,
		started:       time.Now(),
	}
}

// RegisterRoutes mounts every control, health and version route on r.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.HealthCheck).Methods("GET", "HEAD")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET", "HEAD")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/activate", h.Activate).Methods("POST")
	api.HandleFunc("/next", h.command("next")).Methods("POST")
	api.HandleFunc("/media_next", h.command("media_next")).Methods("POST")
	api.HandleFunc("/previous", h.command("previous")).Methods("POST")
	api.HandleFunc("/media_previous", h.command("media_previous")).Methods("POST")
	api.HandleFunc("/jump", h.command("jump")).Methods("POST")
	api.HandleFunc("/refresh", h.command("refresh")).Methods("POST")
	api.HandleFunc("/deactivate", h.command("deactivate")).Methods("POST", "DELETE")
	api.HandleFunc("/session", h.GetSession).Methods("GET")
	api.HandleFunc("/session", h.command("deactivate")).Methods("DELETE")
	api.HandleFunc("/playlist.wpl", h.GetPlaylistWPL).Methods("GET")

	// Both routers need the handler: a verb mismatch inside /api is
	// resolved by the subrouter.
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	api.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, "not found", http.StatusNotFound)
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, r.Method+" not allowed on "+r.URL.Path, http.StatusMethodNotAllowed)
}
