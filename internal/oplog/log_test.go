package oplog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendAndFind_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "abc123.mp4")
	if err := os.WriteFile(mediaPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	log := Log{Path: filepath.Join(dir, "download_log.jsonl")}
	if err := log.RecordDownload("abc123", "Some Title", TypeVideo, "", mediaPath, "run-1"); err != nil {
		t.Fatalf("record: %v", err)
	}

	path, ok := log.Find("abc123", TypeVideo, "")
	if !ok || path != mediaPath {
		t.Fatalf("expected hit on %s, got (%q, %v)", mediaPath, path, ok)
	}
	if _, ok := log.Find("abc123", TypeAudio, ""); ok {
		t.Fatalf("audio lookup must not match a video entry")
	}
	if _, ok := log.Find("other", TypeVideo, ""); ok {
		t.Fatalf("unknown id must miss")
	}
}

func TestFind_MissesWhenFileDeleted(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "abc123.mp4")
	if err := os.WriteFile(mediaPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	log := Log{Path: filepath.Join(dir, "log.jsonl")}
	if err := log.RecordDownload("abc123", "", TypeVideo, "", mediaPath, ""); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(mediaPath); err != nil {
		t.Fatal(err)
	}
	if _, ok := log.Find("abc123", TypeVideo, ""); ok {
		t.Fatalf("expected miss after artifact removal")
	}
}

func TestFind_StalePathRescansDirectory(t *testing.T) {
	dir := t.TempDir()
	log := Log{Path: filepath.Join(dir, "log.jsonl")}
	// The logged path never existed, but a renamed artifact with the same id
	// prefix lives in the same directory.
	stale := filepath.Join(dir, "abc123.webm")
	if err := log.RecordDownload("abc123", "", TypeVideo, "", stale, ""); err != nil {
		t.Fatal(err)
	}
	actual := filepath.Join(dir, "abc123.mp4")
	if err := os.WriteFile(actual, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, ok := log.Find("abc123", TypeVideo, "")
	if !ok || path != actual {
		t.Fatalf("expected rescan hit on %s, got (%q, %v)", actual, path, ok)
	}
}

func TestFind_CaptionLanguageMustMatch(t *testing.T) {
	dir := t.TempDir()
	capPath := filepath.Join(dir, "abc123.hu.txt")
	if err := os.WriteFile(capPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	log := Log{Path: filepath.Join(dir, "log.jsonl")}
	if err := log.RecordDownload("abc123", "", TypeCaption, "hu", capPath, ""); err != nil {
		t.Fatal(err)
	}

	if _, ok := log.Find("abc123", TypeCaption, "en"); ok {
		t.Fatalf("wrong language must miss")
	}
	if _, ok := log.Find("abc123", TypeCaption, "hu"); !ok {
		t.Fatalf("matching language must hit")
	}
	if _, ok := log.Find("abc123", TypeCaption, ""); !ok {
		t.Fatalf("empty language filter must hit any caption")
	}
}

func TestFind_ToleratesMalformedLines(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "abc123.mp4")
	if err := os.WriteFile(mediaPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(dir, "log.jsonl")
	garbage := "not json at all\n{\"half\": \n"
	if err := os.WriteFile(logPath, []byte(garbage), 0o644); err != nil {
		t.Fatal(err)
	}

	log := Log{Path: logPath}
	if err := log.RecordDownload("abc123", "", TypeVideo, "", mediaPath, ""); err != nil {
		t.Fatal(err)
	}
	if _, ok := log.Find("abc123", TypeVideo, ""); !ok {
		t.Fatalf("garbage lines must not hide valid entries")
	}
}

func TestAppend_EmptyPathIsNoOp(t *testing.T) {
	log := Log{}
	if err := log.Append(Entry{VideoID: "x", Type: TypeVideo}); err != nil {
		t.Fatalf("disabled log must accept writes silently: %v", err)
	}
}

func TestAppend_StampsTimestamp(t *testing.T) {
	dir := t.TempDir()
	log := Log{Path: filepath.Join(dir, "log.jsonl")}
	if err := log.RecordSkipped("abc123", "https://youtu.be/abc123", "livestream", "run-1"); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(log.Path)
	if err != nil {
		t.Fatal(err)
	}
	line := strings.TrimSpace(string(b))
	if !strings.Contains(line, `"timestamp":"`) {
		t.Fatalf("entry missing timestamp: %s", line)
	}
	if !strings.Contains(line, `"type":"skipped"`) || !strings.Contains(line, `"reason":"livestream"`) {
		t.Fatalf("unexpected skip entry: %s", line)
	}
}
