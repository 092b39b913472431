package download

import (
	"net/url"
	"strings"
)

// ExtractVideoID pulls the video identifier out of the common YouTube URL
// shapes (watch, youtu.be, shorts, live, embed). Playlist URLs yield ""; a
// string that does not look like a URL is assumed to already be an ID.
func ExtractVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "youtube.com/") && !strings.Contains(raw, "youtu.be/") {
		return raw
	}

	if strings.Contains(raw, "youtu.be/") {
		rest := raw[strings.Index(raw, "youtu.be/")+len("youtu.be/"):]
		return trimIDTail(rest)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch {
	case strings.Contains(u.Path, "/watch"):
		return u.Query().Get("v")
	case strings.Contains(u.Path, "/playlist"):
		return ""
	}
	for _, prefix := range []string{"/shorts/", "/live/", "/embed/"} {
		if strings.HasPrefix(u.Path, prefix) {
			return trimIDTail(strings.TrimPrefix(u.Path, prefix))
		}
	}
	return ""
}

func trimIDTail(s string) string {
	for _, sep := range []string{"?", "&", "/"} {
		if i := strings.Index(s, sep); i >= 0 {
			s = s[:i]
		}
	}
	return s
}
