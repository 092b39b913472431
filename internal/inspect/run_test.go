package inspect

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vidprep/internal/probe"
)

const fakeProbeScript = `#!/bin/sh
for a in "$@"; do last=$a; done
case "$(basename "$last")" in
  broken.mp4) exit 1 ;;
esac
printf '{"streams":[{"codec_type":"video","width":1920,"height":1080,"avg_frame_rate":"30/1","nb_frames":"300"}],"format":{"duration":"10.0"}}\n'
`

func fakeProber(t *testing.T) probe.Prober {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(bin, []byte(fakeProbeScript), 0o755); err != nil {
		t.Fatal(err)
	}
	return probe.Prober{Bin: bin}
}

func TestRun_ReportsRowsAndErrors(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"good.mp4", "broken.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	rows, err := Run(context.Background(), Options{
		Dir:        dir,
		ShowFrames: true,
		Prober:     fakeProber(t),
		Out:        &buf,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// FindVideos sorts; broken.mp4 comes first.
	if rows[0].Err != "Error" {
		t.Fatalf("expected probe failure row, got %+v", rows[0])
	}
	good := rows[1]
	if good.Width != 1920 || good.Height != 1080 || good.Frames != 300 {
		t.Fatalf("unexpected row: %+v", good)
	}
	if good.AspectRatio != 1.78 {
		t.Fatalf("aspect ratio should round to 1.78, got %v", good.AspectRatio)
	}

	text := buf.String()
	if !strings.Contains(text, "Filename") || !strings.Contains(text, "1920x1080") {
		t.Fatalf("table output incomplete:\n%s", text)
	}
	if !strings.Contains(text, "Total files processed: 2") {
		t.Fatalf("missing summary line:\n%s", text)
	}
}

func TestRun_SlowFrameCountReportsTimeout(t *testing.T) {
	slowScript := "#!/bin/sh\nsleep 5\n"
	bin := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(bin, []byte(slowScript), 0o755); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := Run(context.Background(), Options{
		Dir:          dir,
		ShowFrames:   true,
		Prober:       probe.Prober{Bin: bin},
		FrameTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Err != "Timeout" {
		t.Fatalf("expected timeout row, got %+v", rows[0])
	}
}

func TestRun_EmptyFolder(t *testing.T) {
	var buf bytes.Buffer
	rows, err := Run(context.Background(), Options{
		Dir:    t.TempDir(),
		Prober: fakeProber(t),
		Out:    &buf,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rows != nil {
		t.Fatalf("expected no rows, got %v", rows)
	}
	if !strings.Contains(buf.String(), "No video files found") {
		t.Fatalf("missing empty-folder notice: %s", buf.String())
	}
}

func TestRun_RecursiveUsesRelativeNames(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "clip.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := Run(context.Background(), Options{
		Dir:       dir,
		Recursive: true,
		Prober:    fakeProber(t),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Name != filepath.Join("nested", "clip.mp4") {
		t.Fatalf("expected relative name, got %q", rows[0].Name)
	}
}
