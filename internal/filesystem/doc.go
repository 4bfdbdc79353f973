/*
Package filesystem lists the folder of the playing item and writes playlist
files, with opt-in retry for NFS stale file handle errors on writes.

# Purpose

Media libraries frequently live on NFS mounts. ESTALE (stale file handle)
errors show up there when the server side changes underneath a client, and
they usually clear after a short wait. Every operation in this package goes
through one loop that can back off exponentially on ESTALE and fails fast on
anything else.

Folder listings make exactly one attempt: an unreadable folder is returned to
the caller immediately. Retries apply only where a RetryConfig is passed in,
and the daemon passes MaxRetries 0 unless FS_MAX_RETRIES is set.

# Usage

	names, err := filesystem.ListFiles("/mnt/music/Album")

ListFiles returns regular files only. Symlinks are followed; links to
directories and dangling links are skipped.

	err := filesystem.WriteFileAtomic("/tmp/now.wpl", data, 0o644, filesystem.DefaultRetryConfig())

WriteFileAtomic writes through a temporary file and renames it into place.

# Retry Behavior

DefaultRetryConfig, for callers that opt in:
  - MaxRetries: 3 attempts
  - InitialBackoff: 50ms
  - MaxBackoff: 500ms

# Metrics

Operations report to the Observer installed with SetObserver, labelled by the
volume VolumeResolver assigns to the path. Without an observer nothing is
recorded.
*/
package filesystem
