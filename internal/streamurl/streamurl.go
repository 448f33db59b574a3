// Package streamurl holds the URL rules applied to channel stream links.
package streamurl

import (
	"net/url"
	"strings"
)

const playlistSuffix = ".m3u8"

// Valid reports whether raw parses as a URL with both a scheme and a host.
func Valid(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// IsPlaylist reports whether raw is a valid URL ending in ".m3u8" (any case).
func IsPlaylist(raw string) bool {
	return Valid(raw) && strings.HasSuffix(strings.ToLower(raw), playlistSuffix)
}

// FirstInvalid returns the first entry of urls that is not Valid.
func FirstInvalid(urls []string) (string, bool) {
	for _, u := range urls {
		if !Valid(u) {
			return u, true
		}
	}
	return "", false
}

// Playlists keeps the entries of urls that are playlists, preserving order.
func Playlists(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if IsPlaylist(u) {
			out = append(out, u)
		}
	}
	return out
}
