package playlist

// Resolution records which rule placed the current index when the anchor was
// resolved.
type Resolution string

const (
	// ResolutionNone means the state has not been resolved, or it was
	// resolved against an empty playlist.
	ResolutionNone Resolution = "none"
	// ResolutionURI means an entry path matched the anchor URI exactly.
	ResolutionURI Resolution = "uri"
	// ResolutionName means an entry name matched the anchor name.
	ResolutionName Resolution = "name"
	// ResolutionDefault means the anchor was not found and the first entry
	// was selected.
	ResolutionDefault Resolution = "default"
)

// State is an ordered folder snapshot plus an optional current index.
//
// The zero value is an empty, unresolved playlist. State values are never
// mutated in place: Resolve, Advance and JumpToAnchor return a new State that
// shares the immutable entries slice.
type State struct {
	entries    []MediaEntry
	index      int
	resolved   bool
	resolution Resolution
}

// NewState returns an unresolved State over entries in the given order.
// Entries whose path repeats an earlier entry are dropped.
func NewState(entries []MediaEntry) State {
	seen := make(map[string]struct{}, len(entries))
	kept := make([]MediaEntry, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Path]; dup {
			continue
		}
		seen[e.Path] = struct{}{}
		kept = append(kept, e)
	}
	return State{entries: kept, resolution: ResolutionNone}
}

// Len returns the number of entries.
func (s State) Len() int {
	return len(s.entries)
}

// IsEmpty reports whether there is nothing to navigate.
func (s State) IsEmpty() bool {
	return len(s.entries) == 0
}

// Entries returns a copy of the ordered entries.
func (s State) Entries() []MediaEntry {
	out := make([]MediaEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Paths returns the entry paths in playlist order.
func (s State) Paths() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Path
	}
	return out
}

// Entry returns the entry at i.
func (s State) Entry(i int) (MediaEntry, bool) {
	if i < 0 || i >= len(s.entries) {
		return MediaEntry{}, false
	}
	return s.entries[i], true
}

// Index returns the current index, or false when unresolved.
func (s State) Index() (int, bool) {
	return s.index, s.resolved
}

// Current returns the entry at the current index.
func (s State) Current() (MediaEntry, bool) {
	if !s.resolved {
		return MediaEntry{}, false
	}
	return s.Entry(s.index)
}

// Resolution reports how the current index was seeded.
func (s State) Resolution() Resolution {
	if s.resolution == "" {
		return ResolutionNone
	}
	return s.resolution
}

// IndexOf returns the position of the entry with the given path.
func (s State) IndexOf(path string) (int, bool) {
	for i, e := range s.entries {
		if e.Path == path {
			return i, true
		}
	}
	return 0, false
}

func (s State) withIndex(i int) State {
	s.index = i
	s.resolved = true
	return s
}
