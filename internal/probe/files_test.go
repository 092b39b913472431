package probe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsVideoFile(t *testing.T) {
	yes := []string{"a.mp4", "b.MOV", "c.webm", "d.MKV", "e.m2ts"}
	no := []string{"a.txt", "b.jpg", "noext", "c.mp4.part"}
	for _, name := range yes {
		if !IsVideoFile(name) {
			t.Fatalf("%s should be recognized", name)
		}
	}
	for _, name := range no {
		if IsVideoFile(name) {
			t.Fatalf("%s should not be recognized", name)
		}
	}
}

func TestFindVideos_FlatAndSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp4", "a.mov", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "c.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := FindVideos(dir, false)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("flat scan must skip subdirectories, got %v", files)
	}
	if filepath.Base(files[0]) != "a.mov" || filepath.Base(files[1]) != "b.mp4" {
		t.Fatalf("expected sorted order, got %v", files)
	}

	files, err = FindVideos(dir, true)
	if err != nil {
		t.Fatalf("recursive find: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("recursive scan should include sub/c.mp4, got %v", files)
	}
}

func TestFindVideos_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.mp4")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FindVideos(file, false); err == nil {
		t.Fatalf("expected not-a-directory error")
	}
	if _, err := FindVideos(filepath.Join(file, "nope"), false); err == nil {
		t.Fatalf("expected missing-folder error")
	}
}
