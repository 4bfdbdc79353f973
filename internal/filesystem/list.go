package filesystem

import (
	"os"
	"path/filepath"

	"folder-playlist/internal/logging"
)

// listConfig makes a single attempt. A folder that cannot be read is
// reported to the caller as is, stale handles included.
var listConfig = RetryConfig{}

// ListFiles returns the names of the regular files in dir, in directory
// order. Symlinks are followed and kept when they point at a regular file;
// dangling links and subdirectories are skipped. Listing is never retried;
// the read is still reported to the Observer.
func ListFiles(dir string) ([]string, error) {
	config := listConfig
	entries, err := ReadDirWithRetry(dir, config)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		mode := entry.Type()

		if mode&os.ModeSymlink != 0 {
			target := filepath.Join(dir, entry.Name())
			info, err := StatWithRetry(target, config)
			if err != nil {
				logging.Debug("skipping unreadable link %s: %v", target, err)
				continue
			}
			mode = info.Mode().Type()
		}

		if !mode.IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
