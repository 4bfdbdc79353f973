package host

import (
	"errors"

	"folder-playlist/internal/pathcodec"
)

var (
	// ErrNoActiveItem is returned when activation finds nothing open.
	ErrNoActiveItem = errors.New("no active item")

	// ErrUnreadableFolder is returned when the anchor's folder cannot be listed.
	ErrUnreadableFolder = errors.New("unreadable folder")

	// ErrMalformedPath is returned when the anchor identifier cannot be decoded.
	ErrMalformedPath = pathcodec.ErrMalformedPath

	// ErrNotActive is returned by commands that need an activated folder.
	ErrNotActive = errors.New("no folder is active")

	// ErrPlayback wraps failures reported by the PlaybackSink.
	ErrPlayback = errors.New("playback failed")

	// ErrUnknownCommand is returned by Dispatch for unrecognised command names.
	ErrUnknownCommand = errors.New("unknown command")
)
