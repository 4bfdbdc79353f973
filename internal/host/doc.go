// Package host adapts the folder playlist model to a running player.
//
// A [Session] is the context object for one activation. It owns the current
// [playlist.State] and [playlist.AnchorReference], and serialises every
// command behind a mutex so that a watcher-triggered refresh cannot race a
// navigation key-press.
//
// The player itself is reached only through collaborator interfaces:
//
//   - [AnchorProvider] reports the item that is open when activation runs
//   - [DirectoryLister] lists the names in the anchor's folder
//   - [PathCodec] turns player identifiers into local paths
//   - [PlaybackSink] replaces the player's playlist and switches playback
//   - [Diagnostics] receives trace messages
//
// Local implementations ([StaticAnchor], [FSLister], [WPLSink], [LogSink])
// back the daemon and the folderctl terminal host.
//
// # Commands
//
// [Session.Dispatch] accepts the command names used by both hosts:
//
//	activate, next, media_next, previous, media_previous, jump, refresh, deactivate
//
// Failures at the collaborator boundary surface as [ErrNoActiveItem],
// [ErrMalformedPath] or [ErrUnreadableFolder] and leave the session as it was.
// An empty folder is not an error: navigation returns a [Result] with
// Played set to false.
package host
