// Package crawl — URL filtering rules.
// Decides which discovered links are worth chunking and canonicalizes
// them so the same page is only processed once.
package crawl

import (
	"net/url"
	"path"
	"strings"
)

// skipExtensions are file types that carry no prose worth chunking.
var skipExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true, ".webp": true, ".ico": true,
	".css": true, ".js": true, ".mjs": true, ".map": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// SameHost reports whether rawURL is served by host.
func SameHost(rawURL, host string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && u.Host == host
}

// Chunkable reports whether rawURL looks like an HTML page rather than an asset.
func Chunkable(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return !skipExtensions[strings.ToLower(path.Ext(u.Path))]
}

// Canonical drops the fragment and any trailing slash except the root one.
func Canonical(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return u.String()
}
