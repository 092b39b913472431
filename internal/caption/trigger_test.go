package caption

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTriggerFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mp4", "b.MP4", "notes.txt", "c.mov"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub.mp4"), 0o755); err != nil {
		t.Fatal(err)
	}

	created, err := WriteTriggerFiles(dir, "ohwx person", nil)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 sidecars, got %d", created)
	}

	b, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "ohwx person" {
		t.Fatalf("unexpected sidecar content %q", b)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.txt")); err != nil {
		t.Fatalf("uppercase extension not handled: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "c.txt")); !os.IsNotExist(err) {
		t.Fatalf("non-mp4 should not get a sidecar")
	}
}

func TestWriteTriggerFiles_NoMP4s(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteTriggerFiles(dir, "word", nil); err == nil {
		t.Fatalf("expected error for folder without mp4 files")
	}
}
