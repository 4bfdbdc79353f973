package playlist

import "fmt"

// Direction selects which neighbour Advance moves to.
type Direction int

const (
	// Next moves forward, wrapping from the last entry to the first.
	Next Direction = iota
	// Previous moves backward, wrapping from the first entry to the last.
	Previous
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Previous:
		return "previous"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// Resolve seeds the current index from the anchor. The first matching rule
// wins:
//
//  1. an entry whose path equals the anchor URI
//  2. an entry whose name equals the anchor name
//  3. the first entry, if any
//
// An empty state stays unresolved. Resolve is deterministic.
func (s State) Resolve(anchor AnchorReference) State {
	if anchor.URI != "" {
		if i, ok := s.IndexOf(anchor.URI); ok {
			s = s.withIndex(i)
			s.resolution = ResolutionURI
			return s
		}
	}
	if anchor.Name != "" {
		for i, e := range s.entries {
			if e.Name == anchor.Name {
				s = s.withIndex(i)
				s.resolution = ResolutionName
				return s
			}
		}
	}
	if len(s.entries) > 0 {
		s = s.withIndex(0)
		s.resolution = ResolutionDefault
		return s
	}
	s.index = 0
	s.resolved = false
	s.resolution = ResolutionNone
	return s
}

// Advance moves one step in direction d with unconditional wrap-around and
// returns the entry landed on. An unresolved state behaves as if it sat at
// index -1, so Next lands on the first entry and Previous on the last.
// On an empty playlist the state is returned unchanged with ok == false.
func (s State) Advance(d Direction) (next State, entry MediaEntry, ok bool) {
	if s.IsEmpty() {
		return s, MediaEntry{}, false
	}
	n := len(s.entries)

	cur := -1
	if s.resolved {
		cur = s.index
	}

	var i int
	switch d {
	case Previous:
		if cur < 0 {
			i = n - 1
		} else {
			i = (cur - 1 + n) % n
		}
	default:
		i = (cur + 1) % n
	}

	next = s.withIndex(i)
	return next, next.entries[i], true
}

// JumpToAnchor re-resolves the anchor and returns the entry it lands on.
func (s State) JumpToAnchor(anchor AnchorReference) (State, MediaEntry, bool) {
	next := s.Resolve(anchor)
	entry, ok := next.Current()
	return next, entry, ok
}
