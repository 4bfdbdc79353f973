// Package playlist models the folder playlist built around the item a host
// player had open when it was activated.
//
// The model is deliberately host-independent: it never touches storage and
// has no notion of playback. Directory listings, path decoding and switching
// the player's active item are supplied by the host package.
//
// # Snapshots
//
// BuildSnapshot filters a directory listing down to media files, joins each
// name to the anchor's folder, drops the anchor itself and orders the result
// by name:
//
//	s := playlist.BuildSnapshot("/music/a.mp3", []string{"b.mp4", "a.mp3", "c.txt"})
//	s.Paths() // ["/music/b.mp4"]
//
// Paths are opaque tokens. The folder prefix is everything up to the last '/'
// or '\', so URI-style, POSIX and Windows identifiers all keep their form.
//
// # Resolution and Navigation
//
// A fresh snapshot is unresolved. Resolve seeds the current index from the
// AnchorReference (URI match, then name match, then the first entry). Advance
// moves with unconditional wrap-around:
//
//	s = s.Resolve(playlist.NewAnchor("/music/a.mp3"))
//	s, entry, ok := s.Advance(playlist.Next)
//
// Advance on an empty playlist is a no-op reporting ok == false.
//
// State holds no locks. Callers that share one across goroutines must
// serialise access themselves.
//
// # WPL
//
// EncodeWPL writes a snapshot as a Windows Media Player playlist, which is
// how the file-based playback sink hands the rebuilt playlist to a player.
package playlist
