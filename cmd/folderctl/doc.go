// Command folderctl activates a folder playlist from the command line and
// drives it interactively.
//
// Usage:
//
//	folderctl [flags] <file-or-uri>
//
// The argument is a local path or a file:// URI. Its folder is listed, the
// media siblings are sorted into a playlist and playback starts on the
// resolved entry. Commands are then read from stdin, one per line:
//
//	next, n, media_next          Play the next entry, wrapping to the first.
//	previous, prev, p,
//	media_previous               Play the previous entry, wrapping to the last.
//	jump                         Return to the entry matching the opened file.
//	refresh                      Re-list the folder, keeping the current entry.
//	list                         Print the playlist, marking the current entry.
//	deactivate                   Drop the playlist and exit.
//	quit, q, exit                Exit.
//
// The now-playing entry is printed after every command. A prompt is shown
// only when stdin is a terminal, so commands can also be piped in.
//
// Flags and environment variables are shared with the daemon; -playlist-file
// writes each playlist change to a WPL file and -config reads flags from an
// ini file.
//
// Exit status is 1 when activation fails or the arguments are wrong.
// SIGINT and SIGTERM deactivate the session and exit with status 0.
package main
