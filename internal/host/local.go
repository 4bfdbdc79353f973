package host

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"folder-playlist/internal/filesystem"
	"folder-playlist/internal/logging"
	"folder-playlist/internal/playlist"
)

// StaticAnchor is an AnchorProvider that always reports the same identifier.
// The empty StaticAnchor reports ErrNoActiveItem.
type StaticAnchor string

// CurrentItem returns the identifier.
func (a StaticAnchor) CurrentItem(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a == "" {
		return "", ErrNoActiveItem
	}
	return string(a), nil
}

// FSLister lists folders on the local filesystem. Each List is a single
// read; failures are not retried.
type FSLister struct{}

// NewFSLister returns an FSLister.
func NewFSLister() *FSLister {
	return &FSLister{}
}

// List returns the regular file names in dir.
func (l *FSLister) List(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filesystem.ListFiles(dir)
}

// LogSink is a PlaybackSink that only logs. It stands in for a player when
// the daemon runs without a playlist file.
type LogSink struct{}

// ReplacePlaylist logs the new playlist size.
func (LogSink) ReplacePlaylist(_ context.Context, entries []playlist.MediaEntry) error {
	logging.Info("Playlist replaced: %d entries", len(entries))
	return nil
}

// Play logs the entry.
func (LogSink) Play(_ context.Context, entry playlist.MediaEntry) error {
	logging.Info("Now playing: %s", entry.Path)
	return nil
}

// WPLSink writes every playlist replacement to a Windows Media Player
// playlist file so an external player can pick it up. Writes are not
// retried unless Retry says so.
type WPLSink struct {
	Path  string
	Title string
	Retry filesystem.RetryConfig
}

// NewWPLSink returns a sink writing to path.
func NewWPLSink(path, title string) *WPLSink {
	return &WPLSink{Path: path, Title: title}
}

// ReplacePlaylist atomically rewrites the playlist file.
func (s *WPLSink) ReplacePlaylist(ctx context.Context, entries []playlist.MediaEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := playlist.EncodeWPL(&buf, s.Title, playlist.NewState(entries)); err != nil {
		return fmt.Errorf("encoding playlist: %w", err)
	}
	if err := filesystem.WriteFileAtomic(s.Path, buf.Bytes(), 0o644, s.Retry); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}

	logging.Debug("Wrote %d entries to %s", len(entries), s.Path)
	return nil
}

// Play logs entry. The playlist file has no notion of a current entry.
func (s *WPLSink) Play(ctx context.Context, entry playlist.MediaEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logging.Info("Now playing: %s", entry.Path)
	return nil
}

// Remove deletes the playlist file. A missing file is not an error. The
// daemon and folderctl call it on exit.
func (s *WPLSink) Remove() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
