package playlist

import (
	"cmp"
	"slices"

	"folder-playlist/internal/mediatypes"
)

// BuildSnapshot turns a directory listing of the anchor's folder into an
// unresolved State.
//
// Non-media names are dropped, the survivors are joined to the anchor's
// folder with the anchor's own separator, the anchor itself is excluded and
// the result is ordered by name with ties broken by path. An empty or
// media-free listing yields an empty State, not an error.
func BuildSnapshot(anchorPath string, siblingNames []string) State {
	folder := FolderOf(anchorPath)

	seen := make(map[string]struct{}, len(siblingNames))
	entries := make([]MediaEntry, 0, len(siblingNames))
	for _, name := range siblingNames {
		if name == "" || !mediatypes.IsMedia(name) {
			continue
		}
		p := folder + name
		if p == anchorPath {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		entries = append(entries, NewMediaEntry(p))
	}

	slices.SortFunc(entries, compareEntries)

	return State{entries: entries, resolution: ResolutionNone}
}

// compareEntries is the canonical snapshot order: byte-wise by name, then by
// path.
func compareEntries(a, b MediaEntry) int {
	return cmp.Or(
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Path, b.Path),
	)
}
