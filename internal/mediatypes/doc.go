// Package mediatypes classifies file names found next to the playing item.
//
// This package is a dependency-free foundation imported by the playlist and
// host packages. It contains extension tables and pure lookup functions.
//
// # Media Detection
//
// IsMedia is the filter applied to every directory entry when a folder
// snapshot is built. It lower-cases the name's extension and checks it
// against the audio and video tables:
//
//	mediatypes.IsMedia("Track 01.FLAC") // true
//	mediatypes.IsMedia("cover.jpg")     // false
//	mediatypes.IsMedia("album.m3u")     // false, playlists are not media
//
// # File Types
//
// GetFileType maps an extension to one of:
//
//	mediatypes.FileTypeAudio
//	mediatypes.FileTypeVideo
//	mediatypes.FileTypePlaylist
//	mediatypes.FileTypeOther
//
// # MIME Types
//
// GetMimeType returns the MIME type used by the HTTP control surface when it
// reports entries:
//
//	mediatypes.GetMimeType(mediatypes.Ext("a.mp3")) // "audio/mpeg"
package mediatypes
