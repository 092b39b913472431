package oplog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// extensionsFor returns the extension set accepted as an artifact of the
// given media type. The requested video format is included so a non-default
// container still matches.
func extensionsFor(mediaType, videoFormat string) []string {
	switch mediaType {
	case TypeAudio:
		return []string{".wav"}
	case TypeCaption:
		return []string{".txt"}
	default:
		exts := []string{".mp4", ".webm", ".mkv"}
		if videoFormat != "" {
			ext := "." + strings.TrimPrefix(videoFormat, ".")
			for _, e := range exts {
				if e == ext {
					return exts
				}
			}
			exts = append(exts, ext)
		}
		return exts
	}
}

// matchesVideoID reports whether a filename belongs to a video identifier.
// Matching is by exact name or "<id>." prefix; two unrelated IDs sharing a
// filename prefix can therefore collide, a known weakness of the scheme.
func matchesVideoID(name, videoID string) bool {
	return name == videoID || strings.HasPrefix(name, videoID+".")
}

// FindOnDisk scans dir for an artifact of (videoID, mediaType) without
// touching the log: a directory entry counts when its name starts with the
// video identifier and its extension belongs to the media type's set.
func FindOnDisk(dir, videoID, mediaType, videoFormat string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	exts := extensionsFor(mediaType, videoFormat)
	for _, e := range entries {
		if e.IsDir() || !matchesVideoID(e.Name(), videoID) {
			continue
		}
		for _, ext := range exts {
			if strings.HasSuffix(e.Name(), ext) {
				return filepath.Join(dir, e.Name()), true
			}
		}
	}
	return "", false
}

// Find looks the artifact up in the log: an entry matching (videoID,
// mediaType) is a hit when its recorded path still exists. Caption entries
// must match the requested language as well. A stale recorded path falls back to the same
// directory-prefix heuristic as FindOnDisk, applied to the entry's directory.
// Malformed log lines are skipped. This is a read-only probe.
func (l Log) Find(videoID, mediaType, language string) (string, bool) {
	f, err := os.Open(l.Path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		if e.VideoID != videoID || e.Type != mediaType {
			continue
		}
		if mediaType == TypeCaption && language != "" && e.Language != language {
			continue
		}
		if e.FilePath == "" {
			continue
		}
		if _, err := os.Stat(e.FilePath); err == nil {
			return e.FilePath, true
		}
		// Logged path is stale; re-scan its directory for the identifier.
		if path, ok := FindOnDisk(filepath.Dir(e.FilePath), videoID, mediaType, ""); ok {
			return path, true
		}
	}
	return "", false
}
