package oplog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry types. Entries are immutable once written; the log file only grows.
const (
	TypeAudio         = "audio"
	TypeVideo         = "video"
	TypeCaption       = "caption"
	TypeCaptionStatus = "caption_status"
	TypeSkipped       = "skipped"
)

// Entry is one line of the append-only download log.
type Entry struct {
	Timestamp   string `json:"timestamp"`
	VideoID     string `json:"video_id"`
	Title       string `json:"title,omitempty"`
	Type        string `json:"type"`
	FilePath    string `json:"file_path,omitempty"`
	Language    string `json:"language,omitempty"`
	URL         string `json:"url,omitempty"`
	Reason      string `json:"reason,omitempty"`
	HasCaption  *bool  `json:"has_caption,omitempty"`
	CaptionType string `json:"caption_type,omitempty"`
	RunID       string `json:"run_id,omitempty"`
}

// Log is a line-oriented JSON audit trail of completed and skipped download
// operations. It carries no locking of its own; callers are expected to hold
// the collection's batch lock so there is a single writer per run.
type Log struct {
	Path string
}

// Append writes one entry as a JSON line, creating the parent directory if
// absent. The timestamp is stamped here when the entry carries none.
func (l Log) Append(e Entry) error {
	if l.Path == "" {
		return nil
	}
	if e.Timestamp == "" {
		e.Timestamp = time.Now().Format("2006-01-02 15:04:05")
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
		return fmt.Errorf("create log directory for %s: %w", l.Path, err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}

	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log %s: %w", l.Path, err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append to log %s: %w", l.Path, err)
	}
	return nil
}

// RecordDownload appends a completed media or caption entry.
func (l Log) RecordDownload(videoID, title, mediaType, language, filePath, runID string) error {
	e := Entry{
		VideoID:  videoID,
		Title:    title,
		Type:     mediaType,
		FilePath: filePath,
		RunID:    runID,
	}
	if mediaType == TypeCaption {
		e.Language = language
	}
	return l.Append(e)
}

// RecordSkipped appends a skip entry with a human-readable reason.
func (l Log) RecordSkipped(videoID, url, reason, runID string) error {
	return l.Append(Entry{
		VideoID: videoID,
		URL:     url,
		Type:    TypeSkipped,
		Reason:  reason,
		RunID:   runID,
	})
}
