package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"folder-playlist/internal/host"
	"folder-playlist/internal/logging"
	"folder-playlist/internal/mediatypes"
	"folder-playlist/internal/middleware"
	"folder-playlist/internal/playlist"
)

// maxActivateBody bounds the activation request body.
const maxActivateBody = 64 << 10

// ActivateRequest is the body of POST /api/activate.
type ActivateRequest struct {
	URI string `json:"uri"`
}

// CommandResponse wraps a session result with a one-word status:
// "playing", "empty", "refreshed" or "deactivated".
type CommandResponse struct {
	Status string `json:"status"`
	host.Result
}

// Activate activates the folder of the requested item. Without a uri the
// session's own anchor provider is asked for the current item.
func (h *Handlers) Activate(w http.ResponseWriter, r *http.Request) {
	var req ActivateRequest
	body := http.MaxBytesReader(w, r.Body, maxActivateBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var (
		res host.Result
		err error
	)
	if req.URI == "" {
		res, err = h.session.Activate(r.Context())
	} else {
		res, err = h.session.ActivateItem(r.Context(), req.URI)
	}
	h.respond(w, "activate", res, err)
}

// command returns a handler that dispatches one named session command.
func (h *Handlers) command(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.session.Dispatch(r.Context(), name)
		h.respond(w, name, res, err)
	}
}

func (h *Handlers) respond(w http.ResponseWriter, name string, res host.Result, err error) {
	w.Header().Set(middleware.HeaderCommand, name)
	if res.ActivationID != "" {
		w.Header().Set(middleware.HeaderActivationID, res.ActivationID)
	}
	if err != nil {
		code := statusFor(err)
		if code >= http.StatusInternalServerError {
			logging.Error("%s failed: %v", name, err)
		} else {
			logging.Debug("%s rejected: %v", name, err)
		}
		writeJSONError(w, err.Error(), code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, CommandResponse{Status: statusOf(res), Result: res})
}

func statusOf(res host.Result) string {
	switch res.Command {
	case "refresh":
		return "refreshed"
	case "deactivate":
		return "deactivated"
	}
	if !res.Played {
		return "empty"
	}
	return "playing"
}

// GetSession returns the current session snapshot.
func (h *Handlers) GetSession(w http.ResponseWriter, _ *http.Request) {
	snap := h.session.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, snap)
}

// GetPlaylistWPL renders the current snapshot as a WPL playlist.
func (h *Handlers) GetPlaylistWPL(w http.ResponseWriter, _ *http.Request) {
	snap := h.session.Snapshot()

	var buf bytes.Buffer
	if err := playlist.EncodeWPL(&buf, h.playlistTitle, snap.State); err != nil {
		logging.Error("failed to encode playlist: %v", err)
		writeJSONError(w, "failed to encode playlist", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mediatypes.GetMimeType(".wpl"))
	w.Header().Set("Content-Disposition", `inline; filename="folder.wpl"`)
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Debug("failed to write playlist response: %v", err)
	}
}
