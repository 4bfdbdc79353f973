// Package handlers provides the HTTP control surface of the folder-playlist
// daemon.
//
// It includes handlers for:
//   - Activating a folder from a file or file:// URI
//   - next, previous, jump, refresh and deactivate commands
//   - Reading the session and its WPL rendering
//   - Health checks and build information
//
// Errors are returned as {"error": "..."} with a status derived from the
// session error: 400 for a missing or malformed item, 422 for an unreadable
// folder, 409 for commands that need an active folder and 502 when the
// player rejects a playlist or playback change.
package handlers
