package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kkdai/youtube/v2"

	"vidprep/internal/ffmpeg"
)

// Client bundles the YouTube API client with the ffmpeg runner used for
// muxing and audio extraction.
type Client struct {
	YT      youtube.Client
	FFmpeg  ffmpeg.Runner
	TempDir string
}

func (c *Client) tempDir() string {
	if strings.TrimSpace(c.TempDir) == "" {
		return os.TempDir()
	}
	return c.TempDir
}

// FetchVideo resolves metadata for a video URL or bare identifier.
func (c *Client) FetchVideo(ctx context.Context, urlOrID string) (*youtube.Video, error) {
	video, err := c.YT.GetVideoContext(ctx, urlOrID)
	if err != nil {
		return nil, fmt.Errorf("video info for %s: %w", urlOrID, err)
	}
	return video, nil
}

// FetchPlaylist resolves a playlist's entry list without downloading.
func (c *Client) FetchPlaylist(ctx context.Context, url string) (*youtube.Playlist, error) {
	playlist, err := c.YT.GetPlaylistContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("playlist info for %s: %w", url, err)
	}
	return playlist, nil
}

// DownloadVideo fetches the best separate video and audio streams for the
// requested container, muxes them losslessly, and returns the final path
// <outputDir>/<video id>.<format>. When no separate streams are available it
// falls back to the best progressive (combined) stream.
func (c *Client) DownloadVideo(ctx context.Context, video *youtube.Video, outputDir, format string) (string, error) {
	outputPath := filepath.Join(outputDir, video.ID+"."+format)

	videoFormat := bestVideoFormat(video.Formats, format)
	audioFormat := bestAudioFormat(video.Formats, format)

	if videoFormat == nil || audioFormat == nil {
		return c.downloadProgressive(ctx, video, outputPath)
	}

	tempID := uuid.NewString()
	videoTemp := filepath.Join(c.tempDir(), "v_"+tempID+streamExt(videoFormat))
	audioTemp := filepath.Join(c.tempDir(), "a_"+tempID+audioExt(audioFormat))
	defer os.Remove(videoTemp)
	defer os.Remove(audioTemp)

	if err := c.downloadStream(ctx, video, videoFormat, videoTemp); err != nil {
		// Separate-stream delivery can fail on throttled formats; one retry
		// with a progressive stream before giving up.
		return c.downloadProgressive(ctx, video, outputPath)
	}
	if err := c.downloadStream(ctx, video, audioFormat, audioTemp); err != nil {
		return c.downloadProgressive(ctx, video, outputPath)
	}

	if err := c.FFmpeg.Run(ctx, ffmpeg.BuildMuxArgs(videoTemp, audioTemp, outputPath)); err != nil {
		return "", fmt.Errorf("mux %s: %w", video.ID, err)
	}
	return checkNonEmpty(outputPath)
}

// DownloadAudio fetches the best audio stream and converts it to WAV at
// <outputDir>/<video id>.wav.
func (c *Client) DownloadAudio(ctx context.Context, video *youtube.Video, outputDir string) (string, error) {
	audioFormat := bestAudioFormat(video.Formats, "")
	if audioFormat == nil {
		return "", fmt.Errorf("no audio format found for %s", video.ID)
	}

	audioTemp := filepath.Join(c.tempDir(), "a_"+uuid.NewString()+audioExt(audioFormat))
	defer os.Remove(audioTemp)

	if err := c.downloadStream(ctx, video, audioFormat, audioTemp); err != nil {
		return "", err
	}

	outputPath := filepath.Join(outputDir, video.ID+".wav")
	if err := c.FFmpeg.Run(ctx, ffmpeg.BuildExtractWavArgs(audioTemp, outputPath)); err != nil {
		return "", fmt.Errorf("extract audio %s: %w", video.ID, err)
	}
	return checkNonEmpty(outputPath)
}

func (c *Client) downloadProgressive(ctx context.Context, video *youtube.Video, outputPath string) (string, error) {
	progressive := bestProgressiveFormat(video.Formats)
	if progressive == nil {
		return "", fmt.Errorf("no usable format found for %s", video.ID)
	}
	if err := c.downloadStream(ctx, video, progressive, outputPath); err != nil {
		return "", err
	}
	return checkNonEmpty(outputPath)
}

func (c *Client) downloadStream(ctx context.Context, video *youtube.Video, format *youtube.Format, path string) error {
	stream, _, err := c.YT.GetStreamContext(ctx, video, format)
	if err != nil {
		return fmt.Errorf("stream %s (itag %d): %w", video.ID, format.ItagNo, err)
	}
	defer stream.Close()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, stream); err != nil {
		return fmt.Errorf("download %s: %w", video.ID, err)
	}
	return nil
}

func checkNonEmpty(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("downloaded file missing: %w", err)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("downloaded file is empty: %s", path)
	}
	return path, nil
}

// --- format selection ---

// bestVideoFormat picks the highest-bitrate video-only stream whose MIME
// container matches the requested output format, falling back to any video
// stream when the container has no match.
func bestVideoFormat(formats youtube.FormatList, container string) *youtube.Format {
	mime := "video/" + containerMime(container)
	if f := highestBitrate(formats, func(f *youtube.Format) bool {
		return strings.HasPrefix(f.MimeType, mime) && f.AudioChannels == 0
	}); f != nil {
		return f
	}
	return highestBitrate(formats, func(f *youtube.Format) bool {
		return strings.HasPrefix(f.MimeType, "video/") && f.AudioChannels == 0
	})
}

// bestAudioFormat prefers an audio stream from the same container family so
// the mux stays a pure copy.
func bestAudioFormat(formats youtube.FormatList, container string) *youtube.Format {
	if container != "" {
		mime := "audio/" + containerMime(container)
		if f := highestBitrate(formats, func(f *youtube.Format) bool {
			return strings.HasPrefix(f.MimeType, mime)
		}); f != nil {
			return f
		}
	}
	return highestBitrate(formats, func(f *youtube.Format) bool {
		return strings.HasPrefix(f.MimeType, "audio/")
	})
}

// bestProgressiveFormat picks the highest-bitrate stream carrying both video
// and audio, the retry path when separate streams fail.
func bestProgressiveFormat(formats youtube.FormatList) *youtube.Format {
	return highestBitrate(formats, func(f *youtube.Format) bool {
		return strings.HasPrefix(f.MimeType, "video/") && f.AudioChannels > 0
	})
}

func highestBitrate(formats youtube.FormatList, match func(*youtube.Format) bool) *youtube.Format {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if !match(f) {
			continue
		}
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}
	return best
}

// containerMime maps output containers to their MIME subtype. MKV has no
// dedicated YouTube delivery format; mp4 streams remux into it cleanly.
func containerMime(container string) string {
	switch container {
	case "webm":
		return "webm"
	default:
		return "mp4"
	}
}

func streamExt(f *youtube.Format) string {
	if strings.Contains(f.MimeType, "webm") {
		return ".webm"
	}
	return ".mp4"
}

func audioExt(f *youtube.Format) string {
	if strings.Contains(f.MimeType, "webm") {
		return ".webm"
	}
	return ".m4a"
}
