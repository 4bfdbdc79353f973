package mediatypes

import (
	"path"
	"strings"
)

// FileType represents the type of a file found next to the playing item.
type FileType string

const (
	// FileTypeAudio represents an audio file.
	FileTypeAudio FileType = "audio"
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypePlaylist represents a playlist file.
	FileTypePlaylist FileType = "playlist"
	// FileTypeOther represents an unknown or unsupported file type.
	FileTypeOther FileType = "other"
)

// VideoExtensions maps file extensions to whether they are supported video formats.
var VideoExtensions = map[string]bool{
	".3g2":  true,
	".3gp":  true,
	".asf":  true,
	".avi":  true,
	".divx": true,
	".drc":  true,
	".f4p":  true,
	".f4v":  true,
	".flv":  true,
	".gifv": true,
	".m2ts": true,
	".m4v":  true,
	".mkv":  true,
	".mng":  true,
	".mov":  true,
	".mp4":  true,
	".mpeg": true,
	".mpg":  true,
	".mts":  true,
	".mxf":  true,
	".nsv":  true,
	".ogm":  true,
	".ogv":  true,
	".qt":   true,
	".rm":   true,
	".rmvb": true,
	".roq":  true,
	".svi":  true,
	".ts":   true,
	".viv":  true,
	".vob":  true,
	".webm": true,
	".wmv":  true,
}

// AudioExtensions maps file extensions to whether they are supported audio formats.
var AudioExtensions = map[string]bool{
	".aac":  true,
	".ac3":  true,
	".aif":  true,
	".aiff": true,
	".alac": true,
	".amr":  true,
	".ape":  true,
	".au":   true,
	".dts":  true,
	".f4a":  true,
	".f4b":  true,
	".flac": true,
	".m4a":  true,
	".m4b":  true,
	".m4p":  true,
	".mid":  true,
	".midi": true,
	".mka":  true,
	".mp+":  true,
	".mp3":  true,
	".mpc":  true,
	".mpp":  true,
	".oga":  true,
	".ogg":  true,
	".opus": true,
	".ra":   true,
	".spx":  true,
	".tta":  true,
	".voc":  true,
	".wav":  true,
	".wma":  true,
}

// PlaylistExtensions maps file extensions to whether they are playlist formats.
// Playlists are recognised but never treated as playable media.
var PlaylistExtensions = map[string]bool{
	".m3u":  true,
	".m3u8": true,
	".pls":  true,
	".wpl":  true,
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	// Video
	".3gp":  "video/3gpp",
	".3g2":  "video/3gpp2",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".m4v":  "video/x-m4v",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".ogv":  "video/ogg",
	".ts":   "video/mp2t",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",

	// Audio
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mid":  "audio/midi",
	".midi": "audio/midi",
	".mka":  "audio/x-matroska",
	".mp3":  "audio/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".wma":  "audio/x-ms-wma",

	// Playlists
	".m3u":  "audio/x-mpegurl",
	".m3u8": "application/vnd.apple.mpegurl",
	".pls":  "audio/x-scpls",
	".wpl":  "application/vnd.ms-wpl",
}

// Ext returns the lower-cased extension of name, including the leading dot.
// Returns "" when name has no extension.
func Ext(name string) string {
	return strings.ToLower(path.Ext(name))
}

// GetFileType returns the FileType for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".mp3").
// Returns FileTypeOther if the extension is not recognized.
func GetFileType(ext string) FileType {
	if VideoExtensions[ext] {
		return FileTypeVideo
	}
	if AudioExtensions[ext] {
		return FileTypeAudio
	}
	if PlaylistExtensions[ext] {
		return FileTypePlaylist
	}
	return FileTypeOther
}

// GetMimeType returns the MIME type for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".mp4").
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// IsMediaFile returns true if the extension represents a playable audio or video file.
func IsMediaFile(ext string) bool {
	return VideoExtensions[ext] || AudioExtensions[ext]
}

// IsMedia reports whether the file name carries a known audio or video
// extension. The comparison is case-insensitive.
func IsMedia(name string) bool {
	return IsMediaFile(Ext(name))
}
