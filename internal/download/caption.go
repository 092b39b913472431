package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kkdai/youtube/v2"

	"vidprep/internal/settings"
)

// captionCandidate is a caption track selected for fetching.
type captionCandidate struct {
	LanguageCode string
	LanguageName string
	Generated    bool
}

// selectCaptionTrack picks the caption track to fetch, honoring the caption
// mode (manual, auto, any) and falling back from the requested language to
// English. Returns false when no acceptable track exists.
func selectCaptionTrack(video *youtube.Video, lang, mode string) (captionCandidate, bool) {
	languages := []string{lang}
	if lang != "en" {
		languages = append(languages, "en")
	}

	pick := func(wantGenerated bool) (captionCandidate, bool) {
		for _, l := range languages {
			for _, track := range video.CaptionTracks {
				if !captionLangMatches(track.LanguageCode, l) {
					continue
				}
				generated := track.Kind == "asr"
				if generated != wantGenerated {
					continue
				}
				return captionCandidate{
					LanguageCode: track.LanguageCode,
					LanguageName: track.Name.SimpleText,
					Generated:    generated,
				}, true
			}
		}
		return captionCandidate{}, false
	}

	switch mode {
	case settings.CaptionModeManual:
		return pick(false)
	case settings.CaptionModeAuto:
		return pick(true)
	default:
		if c, ok := pick(false); ok {
			return c, true
		}
		return pick(true)
	}
}

// FetchCaption downloads the transcript for the selected track and writes it
// as <outputDir>/<video id>.<lang>.txt with a small metadata header and
// YouTube-style timestamped lines. Returns the written path and the language
// code actually fetched.
func (c *Client) FetchCaption(ctx context.Context, video *youtube.Video, outputDir, lang, mode string) (string, string, error) {
	track, ok := selectCaptionTrack(video, lang, mode)
	if !ok {
		available := make([]string, 0, len(video.CaptionTracks))
		for _, t := range video.CaptionTracks {
			available = append(available, t.LanguageCode)
		}
		if len(available) > 0 {
			return "", "", fmt.Errorf("no %s transcript in %q for %s (available: %s)",
				mode, lang, video.ID, strings.Join(available, ", "))
		}
		return "", "", fmt.Errorf("no transcript available for %s", video.ID)
	}

	transcript, err := c.YT.GetTranscriptCtx(ctx, video, track.LanguageCode)
	if err != nil {
		return "", "", fmt.Errorf("transcript %s (%s): %w", video.ID, track.LanguageCode, err)
	}

	path := filepath.Join(outputDir, video.ID+"."+track.LanguageCode+".txt")
	if err := os.WriteFile(path, []byte(formatTranscript(video, track, transcript)), 0o644); err != nil {
		return "", "", fmt.Errorf("write caption %s: %w", path, err)
	}
	return path, track.LanguageCode, nil
}

func formatTranscript(video *youtube.Video, track captionCandidate, transcript youtube.VideoTranscript) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", video.Title)
	fmt.Fprintf(&b, "Video ID: %s\n", video.ID)
	fmt.Fprintf(&b, "Language: %s (%s)\n", track.LanguageName, track.LanguageCode)
	fmt.Fprintf(&b, "Generated: %s\n\n", yesNo(track.Generated))

	for _, segment := range transcript {
		text := strings.ReplaceAll(segment.Text, "\n", " ")
		fmt.Fprintf(&b, "[%s] %s\n", formatTimestamp(segment.StartMs/1000), text)
	}
	return b.String()
}

// formatTimestamp renders seconds as MM:SS, or HH:MM:SS past the hour mark.
func formatTimestamp(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
