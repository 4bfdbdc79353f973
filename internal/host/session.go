package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"folder-playlist/internal/logging"
	"folder-playlist/internal/mediatypes"
	"folder-playlist/internal/metrics"
	"folder-playlist/internal/pathcodec"
	"folder-playlist/internal/playlist"
)

// Options wires a Session to its collaborators. Nil fields get the local
// defaults: pathcodec.New, NewFSLister, LogSink and the logging diagnostics.
type Options struct {
	Anchors     AnchorProvider
	Lister      DirectoryLister
	Codec       PathCodec
	Sink        PlaybackSink
	Diagnostics Diagnostics

	// OnFolderChange is called with the newly active folder after an
	// activation commits, and with "" after deactivation. It runs without
	// the session lock held. Calls never overlap, and a change that was
	// overtaken by a later commit is not delivered, so the last call always
	// names the committed folder.
	OnFolderChange func(folder string)
}

// Session is the per-activation context: the anchor captured at activation,
// the folder snapshot and the current position. All methods are safe for
// concurrent use; commands run one at a time.
type Session struct {
	mu sync.Mutex

	anchors  AnchorProvider
	lister   DirectoryLister
	codec    PathCodec
	sink     PlaybackSink
	diag     Diagnostics
	onFolder func(string)

	// seq counts folder commits. notifyMu orders OnFolderChange delivery;
	// notified is the seq of the last delivered change.
	seq      uint64
	notifyMu sync.Mutex
	notified uint64

	id         string
	active     bool
	anchor     playlist.AnchorReference
	anchorPath string
	folder     string
	state      playlist.State
	activated  time.Time
}

// Result describes the outcome of one command.
type Result struct {
	Command      string              `json:"command"`
	ActivationID string              `json:"activation_id,omitempty"`
	Played       bool                `json:"played"`
	Entry        playlist.MediaEntry `json:"entry"`
	URI          string              `json:"uri,omitempty"`
	Type         mediatypes.FileType `json:"type,omitempty"`
	Index        int                 `json:"index"`
	Count        int                 `json:"count"`
	Resolution   playlist.Resolution `json:"resolution"`
}

// Snapshot is a read-only copy of the session.
type Snapshot struct {
	ID          string                   `json:"id,omitempty"`
	Active      bool                     `json:"active"`
	Anchor      playlist.AnchorReference `json:"anchor"`
	Folder      string                   `json:"folder,omitempty"`
	Entries     []playlist.MediaEntry    `json:"entries"`
	Index       int                      `json:"index"`
	Resolution  playlist.Resolution      `json:"resolution"`
	ActivatedAt time.Time                `json:"activated_at,omitzero"`

	State playlist.State `json:"-"`
}

// NewSession returns an inactive session.
func NewSession(opts Options) *Session {
	s := &Session{
		anchors:  opts.Anchors,
		lister:   opts.Lister,
		codec:    opts.Codec,
		sink:     opts.Sink,
		diag:     opts.Diagnostics,
		onFolder: opts.OnFolderChange,
	}
	if s.anchors == nil {
		s.anchors = StaticAnchor("")
	}
	if s.lister == nil {
		s.lister = NewFSLister()
	}
	if s.codec == nil {
		s.codec = pathcodec.New()
	}
	if s.sink == nil {
		s.sink = LogSink{}
	}
	if s.diag == nil {
		s.diag = logging.NewDiagnostics("session")
	}
	return s
}

// Activate captures the item reported by the session's AnchorProvider,
// rebuilds the playlist from its folder and plays the resolved entry.
func (s *Session) Activate(ctx context.Context) (Result, error) {
	return s.activate(ctx, s.anchors)
}

// ActivateItem activates on identifier instead of asking the AnchorProvider.
func (s *Session) ActivateItem(ctx context.Context, identifier string) (Result, error) {
	return s.activate(ctx, StaticAnchor(identifier))
}

func (s *Session) activate(ctx context.Context, anchors AnchorProvider) (Result, error) {
	s.mu.Lock()
	before := s.seq
	res, err := s.activateLocked(ctx, anchors)
	seq, folder := s.seq, s.folder
	s.mu.Unlock()

	metrics.ActivationsTotal.WithLabelValues(activationLabel(err)).Inc()
	if err != nil {
		s.diag.Trace(fmt.Sprintf("activate failed: %v", err))
	}
	// A playback failure after the commit still moves the session.
	if seq != before {
		s.notifyFolder(seq, folder)
	}
	return res, err
}

// notifyFolder delivers a folder change unless a later one already went out.
func (s *Session) notifyFolder(seq uint64, folder string) {
	if s.onFolder == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if seq <= s.notified {
		return
	}
	s.notified = seq
	s.onFolder(folder)
}

func (s *Session) activateLocked(ctx context.Context, anchors AnchorProvider) (Result, error) {
	start := time.Now()
	defer func() {
		metrics.ActivationDuration.Observe(time.Since(start).Seconds())
	}()

	uri, err := anchors.CurrentItem(ctx)
	if err != nil {
		return Result{}, wrapAs(ErrNoActiveItem, err)
	}
	if uri == "" {
		return Result{}, ErrNoActiveItem
	}

	anchorPath, err := s.codec.Decode(uri)
	if err != nil {
		return Result{}, wrapAs(ErrMalformedPath, err)
	}
	folder, err := s.codec.Dir(anchorPath)
	if err != nil {
		return Result{}, wrapAs(ErrMalformedPath, err)
	}
	s.diag.Trace(fmt.Sprintf("anchor %s in %s", uri, folder))

	names, err := s.lister.List(ctx, folder)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrUnreadableFolder, folder, err)
	}
	metrics.FolderEntriesListed.Observe(float64(len(names)))

	anchor := playlist.AnchorReference{URI: uri, Name: playlist.NameOf(anchorPath)}
	state := playlist.BuildSnapshot(anchorPath, names).Resolve(anchor)
	metrics.AnchorResolutionsTotal.WithLabelValues(string(state.Resolution())).Inc()
	s.diag.Trace(fmt.Sprintf("%d of %d names are media siblings, resolved by %s",
		state.Len(), len(names), state.Resolution()))

	if err := s.sink.ReplacePlaylist(ctx, state.Entries()); err != nil {
		return Result{}, fmt.Errorf("%w: replacing playlist: %w", ErrPlayback, err)
	}

	// The host playlist now matches the snapshot, so the session commits
	// even if switching playback below fails.
	s.seq++
	s.id = uuid.NewString()
	s.active = true
	s.anchor = anchor
	s.anchorPath = anchorPath
	s.folder = folder
	s.state = state
	s.activated = time.Now()
	s.publishGauges()

	res := s.resultLocked("activate")
	entry, ok := state.Current()
	if !ok {
		logging.Info("Activated %s: folder has no other media", folder)
		return res, nil
	}
	if err := s.sink.Play(ctx, entry); err != nil {
		return res, fmt.Errorf("%w: %s: %w", ErrPlayback, entry.Path, err)
	}
	res.Played = true
	logging.Info("Activated %s (%d entries, %s): playing %s", folder, state.Len(), state.Resolution(), entry.Name)
	return res, nil
}

// Next plays the following entry, wrapping from the last to the first.
func (s *Session) Next(ctx context.Context) (Result, error) {
	return s.advance(ctx, playlist.Next)
}

// Previous plays the preceding entry, wrapping from the first to the last.
func (s *Session) Previous(ctx context.Context) (Result, error) {
	return s.advance(ctx, playlist.Previous)
}

func (s *Session) advance(ctx context.Context, d playlist.Direction) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, entry, ok := s.state.Advance(d)
	return s.playLocked(ctx, d.String(), next, entry, ok)
}

// JumpToAnchor re-resolves the anchor captured at activation and plays the
// entry it lands on.
func (s *Session) JumpToAnchor(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, entry, ok := s.state.JumpToAnchor(s.anchor)
	return s.playLocked(ctx, "jump", next, entry, ok)
}

// playLocked switches playback to entry and commits next. On an empty
// playlist it reports Played == false without touching the sink. If the sink
// fails the current index is left unchanged.
func (s *Session) playLocked(ctx context.Context, command string, next playlist.State, entry playlist.MediaEntry, ok bool) (Result, error) {
	if !ok {
		metrics.NavigationsTotal.WithLabelValues(command, "empty").Inc()
		s.diag.Trace(command + ": nothing to play")
		return s.resultLocked(command), nil
	}

	if err := s.sink.Play(ctx, entry); err != nil {
		metrics.NavigationsTotal.WithLabelValues(command, "error").Inc()
		s.diag.Trace(fmt.Sprintf("%s: play %s failed: %v", command, entry.Path, err))
		return s.resultLocked(command), fmt.Errorf("%w: %s: %w", ErrPlayback, entry.Path, err)
	}

	s.state = next
	metrics.NavigationsTotal.WithLabelValues(command, "played").Inc()
	s.diag.Trace(fmt.Sprintf("%s: %s", command, entry.Name))

	res := s.resultLocked(command)
	res.Played = true
	return res, nil
}

// Refresh re-lists the active folder with the same anchor and replaces the
// host playlist without switching playback. The entry currently selected
// stays selected when it still exists; otherwise the anchor is resolved
// again.
func (s *Session) Refresh(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.refreshLocked(ctx)
	switch {
	case errors.Is(err, ErrNotActive):
		metrics.RefreshesTotal.WithLabelValues("inactive").Inc()
	case err != nil:
		metrics.RefreshesTotal.WithLabelValues("error").Inc()
		s.diag.Trace(fmt.Sprintf("refresh failed: %v", err))
	default:
		metrics.RefreshesTotal.WithLabelValues("success").Inc()
	}
	return res, err
}

func (s *Session) refreshLocked(ctx context.Context) (Result, error) {
	if !s.active {
		return Result{Command: "refresh", Index: -1, Resolution: playlist.ResolutionNone}, ErrNotActive
	}

	names, err := s.lister.List(ctx, s.folder)
	if err != nil {
		return s.resultLocked("refresh"), fmt.Errorf("%w: %s: %w", ErrUnreadableFolder, s.folder, err)
	}
	metrics.FolderEntriesListed.Observe(float64(len(names)))

	state := playlist.BuildSnapshot(s.anchorPath, names)
	if cur, ok := s.state.Current(); ok {
		kept := state.Resolve(playlist.AnchorReference{URI: cur.Path})
		if kept.Resolution() == playlist.ResolutionURI {
			state = kept
		}
	}
	if _, ok := state.Index(); !ok {
		state = state.Resolve(s.anchor)
	}

	if err := s.sink.ReplacePlaylist(ctx, state.Entries()); err != nil {
		return s.resultLocked("refresh"), fmt.Errorf("%w: replacing playlist: %w", ErrPlayback, err)
	}

	s.state = state
	s.publishGauges()
	s.diag.Trace(fmt.Sprintf("refreshed %s: %d entries", s.folder, state.Len()))
	return s.resultLocked("refresh"), nil
}

// Deactivate releases the session state. Deactivating an inactive session
// is a no-op.
func (s *Session) Deactivate() Result {
	s.mu.Lock()
	wasActive := s.active
	if wasActive {
		s.seq++
	}
	seq := s.seq
	s.id = ""
	s.active = false
	s.anchor = playlist.AnchorReference{}
	s.anchorPath = ""
	s.folder = ""
	s.state = playlist.State{}
	s.activated = time.Time{}
	s.publishGauges()
	res := s.resultLocked("deactivate")
	s.mu.Unlock()

	if wasActive {
		metrics.DeactivationsTotal.Inc()
		s.diag.Trace("deactivated")
		s.notifyFolder(seq, "")
	}
	return res
}

// Snapshot returns a copy of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.state.Index()
	if !ok {
		idx = -1
	}
	return Snapshot{
		ID:          s.id,
		Active:      s.active,
		Anchor:      s.anchor,
		Folder:      s.folder,
		Entries:     s.state.Entries(),
		Index:       idx,
		Resolution:  s.state.Resolution(),
		ActivatedAt: s.activated,
		State:       s.state,
	}
}

// Folder returns the active folder, or "" when inactive.
func (s *Session) Folder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.folder
}

func (s *Session) resultLocked(command string) Result {
	res := Result{
		Command:      command,
		ActivationID: s.id,
		Index:        -1,
		Count:        s.state.Len(),
		Resolution:   s.state.Resolution(),
	}
	if idx, ok := s.state.Index(); ok {
		res.Index = idx
		res.Entry, _ = s.state.Entry(idx)
		res.Type = mediatypes.GetFileType(mediatypes.Ext(res.Entry.Name))
		if uri, err := s.codec.Encode(res.Entry.Path); err == nil {
			res.URI = uri
		}
	}
	return res
}

func (s *Session) publishGauges() {
	if s.active {
		metrics.SessionActive.Set(1)
	} else {
		metrics.SessionActive.Set(0)
	}
	metrics.PlaylistEntries.Set(float64(s.state.Len()))
}

// wrapAs returns err unchanged when it already matches sentinel, otherwise
// wraps both.
func wrapAs(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

func activationLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNoActiveItem):
		return "no_active_item"
	case errors.Is(err, ErrMalformedPath):
		return "malformed_path"
	case errors.Is(err, ErrUnreadableFolder):
		return "unreadable_folder"
	default:
		return "playback_error"
	}
}
