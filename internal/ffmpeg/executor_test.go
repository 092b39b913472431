package ffmpeg

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Succeeds(t *testing.T) {
	bin := writeScript(t, "#!/bin/sh\nexit 0\n")
	r := Runner{Bin: bin}
	if err := r.Run(context.Background(), []string{"-i", "in.mp4", "out.mp4"}); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRun_ErrorCarriesStderrTail(t *testing.T) {
	bin := writeScript(t, "#!/bin/sh\necho 'Invalid data found when processing input' >&2\nexit 1\n")
	r := Runner{Bin: bin}
	err := r.Run(context.Background(), []string{"-i", "bad.mp4", "out.mp4"})
	if err == nil {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Fatalf("error should carry ffmpeg diagnostics, got %v", err)
	}
}

func TestLookPath_MissingBinary(t *testing.T) {
	r := Runner{Bin: "definitely-not-a-real-ffmpeg-binary"}
	if _, err := r.LookPath(); err == nil {
		t.Fatalf("expected lookup failure")
	}
}
