package host

import (
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"folder-playlist/internal/mediatypes"
	"folder-playlist/internal/pathcodec"
	"folder-playlist/internal/playlist"
)

func TestStaticAnchor(t *testing.T) {
	got, err := StaticAnchor("/music/a.mp3").CurrentItem(context.Background())
	if err != nil || got != "/music/a.mp3" {
		t.Errorf("CurrentItem() = %q, %v", got, err)
	}

	if _, err := StaticAnchor("").CurrentItem(context.Background()); !errors.Is(err, ErrNoActiveItem) {
		t.Errorf("empty CurrentItem() error = %v, want ErrNoActiveItem", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := StaticAnchor("/music/a.mp3").CurrentItem(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled CurrentItem() error = %v, want context.Canceled", err)
	}
}

// readWPL returns the title and media sources of the playlist file at path.
func readWPL(t *testing.T, path string) (string, []string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var doc playlist.WPL
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	sources := make([]string, 0, len(doc.Body.Seq.Media))
	for _, m := range doc.Body.Seq.Media {
		sources = append(sources, m.Src)
	}
	return doc.Head.Title, sources
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFSLister(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mp3", "b.mkv")
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := NewFSLister().List(context.Background(), dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 2 {
		t.Errorf("List() = %v, want two regular files", names)
	}

	if _, err := NewFSLister().List(context.Background(), filepath.Join(dir, "missing")); err == nil {
		t.Error("List() of a missing folder succeeded")
	}
}

func TestWPLSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "now.wpl")
	sink := NewWPLSink(path, "Album")

	entries := []playlist.MediaEntry{
		playlist.NewMediaEntry("/music/album/b.mp3"),
		playlist.NewMediaEntry("/music/album/c.mp3"),
	}
	if err := sink.ReplacePlaylist(context.Background(), entries); err != nil {
		t.Fatalf("ReplacePlaylist() error = %v", err)
	}

	title, sources := readWPL(t, path)
	if title != "Album" {
		t.Errorf("title = %q, want Album", title)
	}
	if want := []string{"/music/album/b.mp3", "/music/album/c.mp3"}; !reflect.DeepEqual(sources, want) {
		t.Errorf("sources = %v, want %v", sources, want)
	}

	if err := sink.Play(context.Background(), entries[1]); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if _, after := readWPL(t, path); !reflect.DeepEqual(after, sources) {
		t.Errorf("Play() rewrote the playlist: %v", after)
	}

	if err := sink.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("playlist file still present: %v", err)
	}
	if err := sink.Remove(); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
}

func TestWPLSink_UnwritableFolder(t *testing.T) {
	sink := NewWPLSink(filepath.Join(t.TempDir(), "missing", "now.wpl"), "x")
	if err := sink.ReplacePlaylist(context.Background(), nil); err == nil {
		t.Error("ReplacePlaylist() into a missing folder succeeded")
	}
}

func TestSession_LocalCollaborators(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "01 Intro.flac", "02 Song.flac", "03 Outro.flac", "cover.jpg", "album.wpl")
	out := filepath.Join(t.TempDir(), "folder.wpl")
	sink := NewWPLSink(out, "folder")

	s := NewSession(Options{Sink: sink})
	res, err := s.ActivateItem(context.Background(), filepath.Join(dir, "02 Song.flac"))
	if err != nil {
		t.Fatalf("ActivateItem() error = %v", err)
	}
	if res.Count != 2 || res.Entry.Name != "01 Intro.flac" {
		t.Errorf("Result = %+v, want 01 Intro.flac of 2", res)
	}
	if res.Type != mediatypes.FileTypeAudio {
		t.Errorf("Type = %q, want audio", res.Type)
	}
	if !strings.HasPrefix(res.URI, "file:///") || !strings.HasSuffix(res.URI, "/01%20Intro.flac") {
		t.Errorf("URI = %q, want an escaped file URI", res.URI)
	}
	if decoded, err := pathcodec.New().Decode(res.URI); err != nil || decoded != res.Entry.Path {
		t.Errorf("URI decodes to %q, %v; want %q", decoded, err, res.Entry.Path)
	}

	writeFiles(t, dir, "04 Bonus.flac")
	res, err = s.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if res.Count != 3 || res.Entry.Name != "01 Intro.flac" {
		t.Errorf("Refresh() = %+v", res)
	}

	_, sources := readWPL(t, out)
	if len(sources) != 3 {
		t.Errorf("playlist file has %d entries, want 3", len(sources))
	}
}
