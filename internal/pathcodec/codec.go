// Package pathcodec converts between the URI identifiers a player reports and
// plain filesystem paths.
package pathcodec

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrMalformedPath is returned for identifiers that cannot be decoded into a
// local path.
var ErrMalformedPath = errors.New("malformed path")

// Codec decodes player identifiers into local paths and back.
type Codec struct{}

// New returns a Codec for file:// URIs and plain local paths.
func New() Codec {
	return Codec{}
}

// Decode turns a file:// URI or a plain absolute path into a cleaned local
// path. Percent-escapes in URIs are decoded. Any other scheme, a remote host
// or a relative path is malformed.
func (Codec) Decode(identifier string) (string, error) {
	if identifier == "" {
		return "", fmt.Errorf("%w: empty identifier", ErrMalformedPath)
	}
	if strings.ContainsRune(identifier, 0) {
		return "", fmt.Errorf("%w: %q contains a NUL byte", ErrMalformedPath, identifier)
	}

	if !hasScheme(identifier) {
		p := filepath.FromSlash(identifier)
		if !filepath.IsAbs(p) {
			return "", fmt.Errorf("%w: %q is not absolute", ErrMalformedPath, identifier)
		}
		return filepath.Clean(p), nil
	}

	u, err := url.Parse(identifier)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPath, err)
	}
	if !strings.EqualFold(u.Scheme, "file") {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrMalformedPath, u.Scheme)
	}
	if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
		return "", fmt.Errorf("%w: remote host %q", ErrMalformedPath, u.Host)
	}
	if u.Path == "" {
		return "", fmt.Errorf("%w: %q has no path", ErrMalformedPath, identifier)
	}

	p := u.Path
	// file:///C:/dir/x.mp4 carries a drive letter after the leading slash.
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' && isLetter(p[1]) {
		p = p[1:]
	}
	p = filepath.FromSlash(p)
	if !filepath.IsAbs(p) {
		return "", fmt.Errorf("%w: %q is not absolute", ErrMalformedPath, identifier)
	}
	return filepath.Clean(p), nil
}

// Encode turns an absolute local path into a file:// URI.
func (Codec) Encode(path string) (string, error) {
	if path == "" || !filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %q is not absolute", ErrMalformedPath, path)
	}
	slashed := filepath.ToSlash(filepath.Clean(path))
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String(), nil
}

// Dir returns the folder containing path.
func (Codec) Dir(path string) (string, error) {
	if path == "" || !filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %q is not absolute", ErrMalformedPath, path)
	}
	dir := filepath.Dir(path)
	if dir == path {
		return "", fmt.Errorf("%w: %q has no parent folder", ErrMalformedPath, path)
	}
	return dir, nil
}

// hasScheme reports whether s starts with an RFC 3986 scheme followed by ':'.
// A single letter before ':' is a drive letter, not a scheme.
func hasScheme(s string) bool {
	i := strings.IndexByte(s, ':')
	if i < 2 {
		return false
	}
	for j := 0; j < i; j++ {
		c := s[j]
		switch {
		case isLetter(c):
		case j > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
