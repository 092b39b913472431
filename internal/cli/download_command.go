package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kkdai/youtube/v2"

	"vidprep/internal/download"
	"vidprep/internal/ffmpeg"
	"vidprep/internal/settings"
)

func runDownload(args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	playlist := fs.String("playlist", "", "playlist URL (downloads every entry into a per-playlist folder)")
	output := fs.String("output", "", "output folder (defaults to the configured one)")
	audioOnly := fs.Bool("audio-only", false, "extract audio as WAV instead of downloading video")
	language := fs.String("language", "", "target content/caption language code (defaults to the configured one)")
	format := fs.String("format", "", "video container: mp4 or webm (defaults to the configured one)")
	captionMode := fs.String("caption-mode", "", "caption preference: manual, auto, or any")
	skipCaptions := fs.Bool("skip-captions", false, "do not fetch caption transcripts")
	languageOnly := fs.Bool("language-only", false, "skip videos not detected as the target language")
	includeLive := fs.Bool("include-livestreams", false, "do not skip livestream entries")
	logPath := fs.String("log", "", "idempotency log path (defaults to <output>/download_log.jsonl)")
	config := fs.String("config", settings.DefaultSettingsPath, "settings file path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	fs.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: vidprep download [flags] <url> [<url>...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	urls := fs.Args()
	if len(urls) == 0 && strings.TrimSpace(*playlist) == "" {
		fs.Usage()
		return errors.New("provide one or more video URLs, or --playlist")
	}
	if len(urls) > 0 && strings.TrimSpace(*playlist) != "" {
		return errors.New("provide video URLs or --playlist, not both")
	}

	cfg, err := settings.Load(*config)
	if err != nil {
		return err
	}
	outputDir := strings.TrimSpace(*output)
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	lang := strings.TrimSpace(*language)
	if lang == "" {
		lang = cfg.Language
	}
	videoFormat := cfg.VideoFormat
	if strings.TrimSpace(*format) != "" {
		videoFormat = settings.NormalizeVideoFormat(*format)
	}
	mode := cfg.CaptionMode
	if strings.TrimSpace(*captionMode) != "" {
		mode = settings.NormalizeCaptionMode(*captionMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := &download.Client{
		YT:     youtube.Client{},
		FFmpeg: ffmpeg.Runner{Bin: cfg.FFmpegBin},
	}
	res, err := download.Run(ctx, download.Options{
		URLs:               urls,
		PlaylistURL:        *playlist,
		OutputDir:          outputDir,
		LogPath:            *logPath,
		AudioOnly:          *audioOnly,
		Language:           lang,
		VideoFormat:        videoFormat,
		CaptionMode:        mode,
		SkipCaptions:       *skipCaptions,
		LanguageOnly:       *languageOnly,
		IncludeLivestreams: *includeLive,
		Client:             client,
		Out:                os.Stdout,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(res)
	}
	fmt.Printf("processed: %d\n", res.Processed)
	fmt.Printf("downloaded: %d\n", res.Downloaded)
	fmt.Printf("reused: %d\n", res.Reused)
	fmt.Printf("skipped: %d\n", res.Skipped)
	fmt.Printf("captions: %d\n", res.Captions)
	fmt.Printf("failures: %d\n", res.Failed)
	return nil
}
