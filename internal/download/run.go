package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kkdai/youtube/v2"

	"vidprep/internal/oplog"
	"vidprep/internal/store"
)

type Options struct {
	// Exactly one of URLs or PlaylistURL drives the batch.
	URLs        []string
	PlaylistURL string

	OutputDir          string
	LogPath            string // defaults to <OutputDir>/download_log.jsonl
	AudioOnly          bool
	Language           string
	VideoFormat        string
	CaptionMode        string
	SkipCaptions       bool
	LanguageOnly       bool
	IncludeLivestreams bool

	Client *Client
	Out    io.Writer
}

type Result struct {
	RunID      string `json:"run_id"`
	OutputDir  string `json:"output_dir"`
	Processed  int    `json:"processed"`
	Downloaded int    `json:"downloaded"`
	Reused     int    `json:"reused"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
	Captions   int    `json:"captions"`
}

// Run processes the requested videos one at a time, in order: idempotency
// probe, livestream gate, language gate, media download, caption fetch, log
// append. Per-video failures are reported and counted; the batch keeps going.
// The collection directory is locked for the duration so the append-only log
// has a single writer.
func Run(ctx context.Context, opts Options) (Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	if opts.Client == nil {
		return Result{}, errors.New("download client is required")
	}
	if len(opts.URLs) == 0 && strings.TrimSpace(opts.PlaylistURL) == "" {
		return Result{}, errors.New("provide a video URL or a playlist URL")
	}

	outputDir := opts.OutputDir
	urls := opts.URLs

	if strings.TrimSpace(opts.PlaylistURL) != "" {
		playlist, err := opts.Client.FetchPlaylist(ctx, opts.PlaylistURL)
		if err != nil {
			return Result{}, err
		}
		outputDir = filepath.Join(opts.OutputDir, sanitizeFolderName(playlist.Title))
		urls = make([]string, 0, len(playlist.Videos))
		for _, entry := range playlist.Videos {
			urls = append(urls, "https://www.youtube.com/watch?v="+entry.ID)
		}
		fmt.Fprintf(out, "Playlist: %s\n", playlist.Title)
		fmt.Fprintf(out, "Number of videos: %d\n", len(urls))
	}

	if err := store.Mkdir(outputDir); err != nil {
		return Result{}, err
	}
	lock, err := store.AcquireBatchLock(outputDir)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		_ = lock.Release()
	}()

	logPath := strings.TrimSpace(opts.LogPath)
	if logPath == "" {
		logPath = filepath.Join(outputDir, "download_log.jsonl")
	}
	log := oplog.Log{Path: logPath}

	res := Result{RunID: uuid.NewString(), OutputDir: outputDir}
	for i, url := range urls {
		fmt.Fprintf(out, "\nProcessing %d of %d: %s\n", i+1, len(urls), url)
		res.Processed++
		processOne(ctx, opts, log, outputDir, url, &res, out)
	}

	return res, nil
}

func processOne(ctx context.Context, opts Options, log oplog.Log, outputDir, url string, res *Result, out io.Writer) {
	videoID := ExtractVideoID(url)
	if videoID == "" {
		fmt.Fprintf(out, "could not extract video ID from URL: %s\n", url)
		res.Failed++
		return
	}
	mediaType := oplog.TypeVideo
	if opts.AudioOnly {
		mediaType = oplog.TypeAudio
	}

	// Two-tier idempotency probe: disk first, then the log.
	if path, ok := oplog.FindOnDisk(outputDir, videoID, mediaType, opts.VideoFormat); ok {
		fmt.Fprintf(out, "Found existing %s file: %s\n", mediaType, path)
		res.Reused++
		ensureCaption(ctx, opts, log, outputDir, videoID, res, out)
		return
	}
	if path, ok := log.Find(videoID, mediaType, ""); ok {
		fmt.Fprintf(out, "Found existing %s in log: %s\n", mediaType, path)
		res.Reused++
		ensureCaption(ctx, opts, log, outputDir, videoID, res, out)
		return
	}

	video, err := opts.Client.FetchVideo(ctx, videoID)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		_ = log.RecordSkipped(videoID, url, "metadata fetch failed: "+err.Error(), res.RunID)
		res.Failed++
		return
	}

	if !opts.IncludeLivestreams && IsLivestream(video) {
		fmt.Fprintf(out, "Skipping livestream: %s\n", url)
		_ = log.RecordSkipped(videoID, url, "livestream - skipped", res.RunID)
		res.Skipped++
		return
	}

	if opts.LanguageOnly {
		match, reason := IsTargetLanguage(video, opts.Language)
		if !match {
			fmt.Fprintf(out, "Skipping non-%s content: %s\n", opts.Language, reason)
			_ = log.RecordSkipped(videoID, url, reason, res.RunID)
			res.Skipped++
			return
		}
		fmt.Fprintf(out, "Target-language content detected: %s\n", reason)
	}

	var mediaPath string
	if opts.AudioOnly {
		mediaPath, err = opts.Client.DownloadAudio(ctx, video, outputDir)
	} else {
		mediaPath, err = opts.Client.DownloadVideo(ctx, video, outputDir, opts.VideoFormat)
	}
	if err != nil {
		fmt.Fprintf(out, "error downloading media: %v\n", err)
		res.Failed++
		return
	}
	fmt.Fprintf(out, "Saved %s to: %s\n", mediaType, mediaPath)
	if err := log.RecordDownload(videoID, video.Title, mediaType, "", mediaPath, res.RunID); err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
	}
	res.Downloaded++

	fetchCaptionFor(ctx, opts, log, outputDir, video, res, out)
}

// ensureCaption handles the reused-media path: the media artifact exists, but
// the caption may still be missing.
func ensureCaption(ctx context.Context, opts Options, log oplog.Log, outputDir, videoID string, res *Result, out io.Writer) {
	if opts.SkipCaptions {
		return
	}
	if _, ok := oplog.FindOnDisk(outputDir, videoID, oplog.TypeCaption, ""); ok {
		return
	}
	if _, ok := log.Find(videoID, oplog.TypeCaption, opts.Language); ok {
		return
	}
	video, err := opts.Client.FetchVideo(ctx, videoID)
	if err != nil {
		fmt.Fprintf(out, "error fetching metadata for caption: %v\n", err)
		return
	}
	fetchCaptionFor(ctx, opts, log, outputDir, video, res, out)
}

func fetchCaptionFor(ctx context.Context, opts Options, log oplog.Log, outputDir string, video *youtube.Video, res *Result, out io.Writer) {
	status := oplog.Entry{
		VideoID:     video.ID,
		Title:       video.Title,
		Type:        oplog.TypeCaptionStatus,
		Language:    opts.Language,
		CaptionType: opts.CaptionMode,
		RunID:       res.RunID,
	}

	if opts.SkipCaptions {
		status.HasCaption = boolPtr(false)
		status.Reason = "skipped"
		_ = log.Append(status)
		return
	}

	path, lang, err := opts.Client.FetchCaption(ctx, video, outputDir, opts.Language, opts.CaptionMode)
	if err != nil {
		fmt.Fprintf(out, "failed to download caption: %v\n", err)
		status.HasCaption = boolPtr(false)
		status.Reason = "not_found"
		_ = log.Append(status)
		return
	}

	fmt.Fprintf(out, "Caption saved to: %s\n", path)
	if err := log.RecordDownload(video.ID, video.Title, oplog.TypeCaption, lang, path, res.RunID); err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
	}
	status.HasCaption = boolPtr(true)
	status.Reason = "downloaded"
	_ = log.Append(status)
	res.Captions++
}

// sanitizeFolderName keeps alphanumerics, spaces, hyphens and underscores,
// replacing everything else, the same scheme used for playlist folders.
func sanitizeFolderName(title string) string {
	if strings.TrimSpace(title) == "" {
		return "YouTube_Playlist"
	}
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func boolPtr(v bool) *bool {
	b := v
	return &b
}
