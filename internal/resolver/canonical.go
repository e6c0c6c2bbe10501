package resolver

import (
	"net/url"
	"regexp"
	"strings"
)

const watchPrefix = "https://www.youtube.com/watch?v="

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var youtubeHosts = map[string]struct{}{
	"youtube.com":              {},
	"www.youtube.com":          {},
	"m.youtube.com":            {},
	"music.youtube.com":        {},
	"youtube-nocookie.com":     {},
	"www.youtube-nocookie.com": {},
}

// IsVideoID reports whether s has the shape of a YouTube video id.
func IsVideoID(s string) bool {
	return videoIDPattern.MatchString(s)
}

// WatchURL returns the canonical watch URL for id.
func WatchURL(id string) string {
	return watchPrefix + id
}

// Canonicalize maps a query to the URL handed to the extractor. Recognized
// YouTube links and bare ids become canonical watch URLs. Other http(s) URLs
// are passed through for the extractor to handle. Anything else reports
// false and should be searched.
func Canonicalize(query string) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}
	if IsVideoID(query) {
		return WatchURL(query), true
	}

	raw := query
	if !strings.Contains(raw, "://") && looksLikeYouTubeHost(raw) {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	if id, ok := videoIDFromURL(u); ok {
		return WatchURL(id), true
	}
	return u.String(), true
}

func looksLikeYouTubeHost(s string) bool {
	host, _, _ := strings.Cut(s, "/")
	host = strings.ToLower(host)
	if host == "youtu.be" {
		return true
	}
	_, ok := youtubeHosts[host]
	return ok
}

func videoIDFromURL(u *url.URL) (string, bool) {
	host := strings.ToLower(u.Hostname())
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	if host == "youtu.be" {
		return checkID(segments[0])
	}
	if _, ok := youtubeHosts[host]; !ok {
		return "", false
	}
	switch segments[0] {
	case "watch":
		return checkID(u.Query().Get("v"))
	case "shorts", "embed", "live", "v":
		if len(segments) > 1 {
			return checkID(segments[1])
		}
	}
	return "", false
}

func checkID(id string) (string, bool) {
	if IsVideoID(id) {
		return id, true
	}
	return "", false
}
