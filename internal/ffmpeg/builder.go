package ffmpeg

import (
	"fmt"
	"strconv"
)

// NormalizeSpec describes a crop+scale re-encode for aspect-ratio
// normalization. The crop is taken from the frame center, then the result is
// scaled to the target resolution.
type NormalizeSpec struct {
	InputPath    string
	OutputPath   string
	CropWidth    int
	CropHeight   int
	TargetWidth  int
	TargetHeight int
}

// BuildNormalizeArgs constructs the argument slice for a crop+scale encode.
// libx264 CRF 18 / preset slow keeps the re-encode visually lossless while
// the audio stream is copied untouched.
func BuildNormalizeArgs(spec NormalizeSpec) []string {
	filter := fmt.Sprintf("crop=%d:%d,scale=%d:%d",
		spec.CropWidth, spec.CropHeight, spec.TargetWidth, spec.TargetHeight)
	return []string{
		"-i", spec.InputPath,
		"-vf", filter,
		"-c:v", "libx264",
		"-crf", "18",
		"-preset", "slow",
		"-c:a", "copy",
		"-y",
		spec.OutputPath,
	}
}

// BuildRetimeArgs constructs a frame-rate change that preserves the total
// duration: the fps filter drops or duplicates frames, which forces a video
// re-encode.
func BuildRetimeArgs(inputPath, outputPath string, targetFPS float64) []string {
	return []string{
		"-i", inputPath,
		"-filter:v", "fps=" + formatFPS(targetFPS),
		"-c:v", "libx264",
		"-c:a", "copy",
		"-preset", "medium",
		"-y",
		outputPath,
	}
}

// BuildRescaleArgs constructs a frame-rate change that retimes the stream
// instead: -itsscale stretches input timestamps by originalFPS/targetFPS, so
// the output duration scales by the same factor and no re-encode happens.
func BuildRescaleArgs(inputPath, outputPath string, originalFPS, targetFPS float64) []string {
	scale := originalFPS / targetFPS
	return []string{
		"-itsscale", strconv.FormatFloat(scale, 'f', -1, 64),
		"-i", inputPath,
		"-c:v", "copy",
		"-c:a", "copy",
		"-avoid_negative_ts", "make_zero",
		"-y",
		outputPath,
	}
}

// BuildExtractWavArgs constructs an audio-only conversion to 16-bit PCM WAV.
func BuildExtractWavArgs(inputPath, outputPath string) []string {
	return []string{
		"-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-y",
		outputPath,
	}
}

// BuildMuxArgs constructs a lossless remux of separate video and audio
// streams into one container.
func BuildMuxArgs(videoPath, audioPath, outputPath string) []string {
	return []string{
		"-i", videoPath,
		"-i", audioPath,
		"-c", "copy",
		"-y",
		outputPath,
	}
}

func formatFPS(fps float64) string {
	return strconv.FormatFloat(fps, 'f', -1, 64)
}
