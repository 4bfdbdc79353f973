package mediatypes

import (
	"strings"
	"testing"
)

func TestGetFileType(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want FileType
	}{
		{
			name: "MP4 video",
			ext:  ".mp4",
			want: FileTypeVideo,
		},
		{
			name: "MKV video",
			ext:  ".mkv",
			want: FileTypeVideo,
		},
		{
			name: "MP3 audio",
			ext:  ".mp3",
			want: FileTypeAudio,
		},
		{
			name: "Musepack plus audio",
			ext:  ".mp+",
			want: FileTypeAudio,
		},
		{
			name: "WPL playlist",
			ext:  ".wpl",
			want: FileTypePlaylist,
		},
		{
			name: "Unknown extension",
			ext:  ".xyz",
			want: FileTypeOther,
		},
		{
			name: "Empty extension",
			ext:  "",
			want: FileTypeOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetFileType(tt.ext)
			if got != tt.want {
				t.Errorf("GetFileType(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestGetMimeType(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want string
	}{
		{
			name: "MP4 mime type",
			ext:  ".mp4",
			want: "video/mp4",
		},
		{
			name: "MP3 mime type",
			ext:  ".mp3",
			want: "audio/mpeg",
		},
		{
			name: "WPL mime type",
			ext:  ".wpl",
			want: "application/vnd.ms-wpl",
		},
		{
			name: "Known media without mime entry returns octet-stream",
			ext:  ".roq",
			want: "application/octet-stream",
		},
		{
			name: "Empty extension returns octet-stream",
			ext:  "",
			want: "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetMimeType(tt.ext)
			if got != tt.want {
				t.Errorf("GetMimeType(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestIsMedia(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     bool
	}{
		{name: "lower-case video", fileName: "movie.mp4", want: true},
		{name: "upper-case video", fileName: "MOVIE.MKV", want: true},
		{name: "mixed-case audio", fileName: "Track 01.FlAc", want: true},
		{name: "plus sign extension", fileName: "song.mp+", want: true},
		{name: "midi", fileName: "tune.midi", want: true},
		{name: "multiple dots", fileName: "show.s01e02.720p.webm", want: true},
		{name: "hidden media file", fileName: ".mp3", want: true},
		{name: "text file", fileName: "notes.txt", want: false},
		{name: "image", fileName: "cover.jpg", want: false},
		{name: "playlist is not media", fileName: "album.m3u", want: false},
		{name: "extension only in the middle", fileName: "mp4.txt", want: false},
		{name: "no extension", fileName: "mp4", want: false},
		{name: "trailing dot", fileName: "movie.", want: false},
		{name: "empty name", fileName: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMedia(tt.fileName); got != tt.want {
				t.Errorf("IsMedia(%q) = %v, want %v", tt.fileName, got, tt.want)
			}
		})
	}
}

func TestIsMedia_CaseInsensitiveForEveryExtension(t *testing.T) {
	for _, table := range []map[string]bool{AudioExtensions, VideoExtensions} {
		for ext := range table {
			lower := "file" + ext
			upper := "FILE" + strings.ToUpper(ext)
			if !IsMedia(lower) {
				t.Errorf("IsMedia(%q) = false, want true", lower)
			}
			if IsMedia(lower) != IsMedia(upper) {
				t.Errorf("IsMedia(%q) != IsMedia(%q)", lower, upper)
			}
		}
	}
}

func TestIsMedia_Stable(t *testing.T) {
	names := []string{"a.mp3", "b.txt", "C.AVI", "d"}
	for _, n := range names {
		first := IsMedia(n)
		for i := 0; i < 5; i++ {
			if IsMedia(n) != first {
				t.Fatalf("IsMedia(%q) changed between calls", n)
			}
		}
	}
}

func TestExtensionTablesDisjoint(t *testing.T) {
	for ext := range AudioExtensions {
		if VideoExtensions[ext] {
			t.Errorf("%s is listed as both audio and video", ext)
		}
		if PlaylistExtensions[ext] {
			t.Errorf("%s is listed as both audio and playlist", ext)
		}
	}
	for ext := range VideoExtensions {
		if PlaylistExtensions[ext] {
			t.Errorf("%s is listed as both video and playlist", ext)
		}
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.MP3", ".mp3"},
		{"a.tar.GZ", ".gz"},
		{"noext", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Ext(tt.in); got != tt.want {
			t.Errorf("Ext(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileTypeConstants(t *testing.T) {
	// Ensure constants have expected values
	if FileTypeAudio != "audio" {
		t.Errorf("FileTypeAudio = %v, want 'audio'", FileTypeAudio)
	}
	if FileTypeVideo != "video" {
		t.Errorf("FileTypeVideo = %v, want 'video'", FileTypeVideo)
	}
	if FileTypePlaylist != "playlist" {
		t.Errorf("FileTypePlaylist = %v, want 'playlist'", FileTypePlaylist)
	}
	if FileTypeOther != "other" {
		t.Errorf("FileTypeOther = %v, want 'other'", FileTypeOther)
	}
}

func BenchmarkIsMedia(b *testing.B) {
	for i := 0; i < b.N; i++ {
		IsMedia("Some Long Episode Name.S01E01.MKV")
	}
}
