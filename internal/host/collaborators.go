package host

import (
	"context"

	"folder-playlist/internal/playlist"
)

// AnchorProvider reports the identifier of the item open in the player.
// It returns an error wrapping ErrNoActiveItem when nothing is open.
type AnchorProvider interface {
	CurrentItem(ctx context.Context) (string, error)
}

// DirectoryLister returns the file names (not paths) in dir.
type DirectoryLister interface {
	List(ctx context.Context, dir string) ([]string, error)
}

// PathCodec converts between player identifiers and local paths and
// extracts the containing folder of a path.
type PathCodec interface {
	Decode(identifier string) (string, error)
	Encode(path string) (string, error)
	Dir(path string) (string, error)
}

// PlaybackSink is the player's playlist and transport.
type PlaybackSink interface {
	// ReplacePlaylist replaces the player's playlist with entries, in order.
	ReplacePlaylist(ctx context.Context, entries []playlist.MediaEntry) error
	// Play makes entry the active playback target.
	Play(ctx context.Context, entry playlist.MediaEntry) error
}

// Diagnostics receives human-readable trace output.
type Diagnostics interface {
	Trace(msg string)
}
