package download

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kkdai/youtube/v2"
)

func fmtEntry(mime string, bitrate, audioChannels int) youtube.Format {
	return youtube.Format{MimeType: mime, Bitrate: bitrate, AudioChannels: audioChannels}
}

func TestBestVideoFormat_PrefersRequestedContainer(t *testing.T) {
	formats := youtube.FormatList{
		fmtEntry(`video/webm; codecs="vp9"`, 900, 0),
		fmtEntry(`video/mp4; codecs="avc1"`, 500, 0),
		fmtEntry(`video/mp4; codecs="avc1"`, 700, 0),
		fmtEntry(`audio/mp4; codecs="mp4a"`, 1000, 2),
	}
	f := bestVideoFormat(formats, "mp4")
	if f == nil || f.Bitrate != 700 {
		t.Fatalf("expected highest-bitrate mp4 video stream, got %+v", f)
	}
	f = bestVideoFormat(formats, "webm")
	if f == nil || f.Bitrate != 900 {
		t.Fatalf("expected webm stream, got %+v", f)
	}
}

func TestBestVideoFormat_FallsBackAcrossContainers(t *testing.T) {
	formats := youtube.FormatList{
		fmtEntry(`video/mp4; codecs="avc1"`, 500, 0),
	}
	f := bestVideoFormat(formats, "webm")
	if f == nil || f.Bitrate != 500 {
		t.Fatalf("expected cross-container fallback, got %+v", f)
	}
}

func TestBestVideoFormat_SkipsMuxedStreams(t *testing.T) {
	formats := youtube.FormatList{
		fmtEntry(`video/mp4; codecs="avc1,mp4a"`, 900, 2),
	}
	if f := bestVideoFormat(formats, "mp4"); f != nil {
		t.Fatalf("muxed stream must not be selected as video-only: %+v", f)
	}
}

func TestBestAudioFormat(t *testing.T) {
	formats := youtube.FormatList{
		fmtEntry(`audio/webm; codecs="opus"`, 160, 2),
		fmtEntry(`audio/mp4; codecs="mp4a"`, 128, 2),
	}
	f := bestAudioFormat(formats, "mp4")
	if f == nil || f.Bitrate != 128 {
		t.Fatalf("expected container-matched audio, got %+v", f)
	}
	f = bestAudioFormat(formats, "")
	if f == nil || f.Bitrate != 160 {
		t.Fatalf("expected highest-bitrate audio, got %+v", f)
	}
}

func TestBestProgressiveFormat(t *testing.T) {
	formats := youtube.FormatList{
		fmtEntry(`video/mp4; codecs="avc1"`, 900, 0),
		fmtEntry(`video/mp4; codecs="avc1,mp4a"`, 400, 2),
	}
	f := bestProgressiveFormat(formats)
	if f == nil || f.Bitrate != 400 {
		t.Fatalf("expected muxed stream, got %+v", f)
	}
}

func TestStreamAndAudioExt(t *testing.T) {
	webm := fmtEntry(`video/webm; codecs="vp9"`, 0, 0)
	mp4 := fmtEntry(`video/mp4; codecs="avc1"`, 0, 0)
	if streamExt(&webm) != ".webm" || streamExt(&mp4) != ".mp4" {
		t.Fatalf("unexpected stream extensions")
	}
	opus := fmtEntry(`audio/webm; codecs="opus"`, 0, 2)
	aac := fmtEntry(`audio/mp4; codecs="mp4a"`, 0, 2)
	if audioExt(&opus) != ".webm" || audioExt(&aac) != ".m4a" {
		t.Fatalf("unexpected audio extensions")
	}
}

func TestContainerMime(t *testing.T) {
	if containerMime("webm") != "webm" {
		t.Fatalf("webm maps to webm")
	}
	// MKV remuxes from mp4 delivery streams.
	if containerMime("mkv") != "mp4" || containerMime("") != "mp4" {
		t.Fatalf("non-webm containers map to mp4")
	}
}

func TestCheckNonEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.mp4")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := checkNonEmpty(empty); err == nil {
		t.Fatalf("empty file must be rejected")
	}
	full := filepath.Join(dir, "full.mp4")
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, err := checkNonEmpty(full); err != nil || got != full {
		t.Fatalf("expected (%q, nil), got (%q, %v)", full, got, err)
	}
	if _, err := checkNonEmpty(filepath.Join(dir, "absent.mp4")); err == nil {
		t.Fatalf("missing file must be rejected")
	}
}
