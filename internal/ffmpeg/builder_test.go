package ffmpeg

import (
	"reflect"
	"testing"
)

func TestBuildNormalizeArgs(t *testing.T) {
	got := BuildNormalizeArgs(NormalizeSpec{
		InputPath:    "in.mp4",
		OutputPath:   "out.mp4",
		CropWidth:    1440,
		CropHeight:   1080,
		TargetWidth:  1080,
		TargetHeight: 810,
	})
	want := []string{
		"-i", "in.mp4",
		"-vf", "crop=1440:1080,scale=1080:810",
		"-c:v", "libx264",
		"-crf", "18",
		"-preset", "slow",
		"-c:a", "copy",
		"-y",
		"out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildRetimeArgs(t *testing.T) {
	got := BuildRetimeArgs("in.mp4", "out.mp4", 24)
	want := []string{
		"-i", "in.mp4",
		"-filter:v", "fps=24",
		"-c:v", "libx264",
		"-c:a", "copy",
		"-preset", "medium",
		"-y",
		"out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildRescaleArgs_ScaleIsOriginalOverTarget(t *testing.T) {
	got := BuildRescaleArgs("in.mp4", "out.mp4", 60, 30)
	want := []string{
		"-itsscale", "2",
		"-i", "in.mp4",
		"-c:v", "copy",
		"-c:a", "copy",
		"-avoid_negative_ts", "make_zero",
		"-y",
		"out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	got = BuildRescaleArgs("in.mp4", "out.mp4", 30, 60)
	if got[1] != "0.5" {
		t.Fatalf("expected itsscale 0.5 for 30->60, got %q", got[1])
	}
}

func TestBuildExtractWavArgs(t *testing.T) {
	got := BuildExtractWavArgs("in.mp4", "out.wav")
	want := []string{"-i", "in.mp4", "-vn", "-acodec", "pcm_s16le", "-y", "out.wav"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuildMuxArgs(t *testing.T) {
	got := BuildMuxArgs("v.mp4", "a.m4a", "out.mp4")
	want := []string{"-i", "v.mp4", "-i", "a.m4a", "-c", "copy", "-y", "out.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
