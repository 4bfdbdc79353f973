package playlist

import "strings"

// MediaEntry is one playable sibling of the anchor. Entries are values; Path
// is unique within a State.
type MediaEntry struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// NewMediaEntry derives the entry name from the final segment of path.
func NewMediaEntry(path string) MediaEntry {
	return MediaEntry{Path: path, Name: NameOf(path)}
}

// AnchorReference records the item that was open when the folder was
// activated. It is set once per activation and never mutated.
type AnchorReference struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// NewAnchor captures uri as the anchor, deriving its name from the final
// path segment.
func NewAnchor(uri string) AnchorReference {
	return AnchorReference{URI: uri, Name: NameOf(uri)}
}

// IsZero reports whether no anchor has been captured.
func (a AnchorReference) IsZero() bool {
	return a.URI == "" && a.Name == ""
}

// lastSeparator returns the index of the last '/' or '\' in p, or -1.
func lastSeparator(p string) int {
	return max(strings.LastIndexByte(p, '/'), strings.LastIndexByte(p, '\\'))
}

// NameOf returns the final segment of a path or URI. Both '/' and '\' are
// treated as separators.
func NameOf(p string) string {
	return p[lastSeparator(p)+1:]
}

// FolderOf returns everything up to and including the last separator of p.
// Joining FolderOf(p) with a name reproduces p's separator convention.
func FolderOf(p string) string {
	return p[:lastSeparator(p)+1]
}
