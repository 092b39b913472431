package bucket

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vidprep/internal/probe"
	"vidprep/internal/store"
)

type Options struct {
	InputDir  string
	OutputDir string // defaults to InputDir
	Buckets   []int64
	Prober    probe.Prober
	Out       io.Writer
}

type Result struct {
	Total          int `json:"total"`
	Copied         int `json:"copied"`
	Skipped        int `json:"skipped"`
	BucketsCreated int `json:"buckets_created"`
}

// Run partitions the MP4 files under InputDir into bucket_<N>_frames folders
// by frame count. Files are copied, never moved; a file already present in
// its bucket is left alone. Videos shorter than the smallest bucket and
// videos whose frame count cannot be determined are skipped.
func Run(ctx context.Context, opts Options) (Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = opts.InputDir
	}

	files, err := findMP4s(opts.InputDir)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(out, "Using buckets: %v\n", opts.Buckets)
	fmt.Fprintf(out, "Found %d MP4 files\n", len(files))

	res := Result{Total: len(files)}

	// Assign first, then create only the folders that will receive files.
	assignments := make(map[int64][]string)
	for i, file := range files {
		fmt.Fprintf(out, "Processing %d/%d: %s", i+1, len(files), filepath.Base(file))

		info, err := opts.Prober.Probe(ctx, file)
		if err != nil || info.FrameCount <= 0 {
			fmt.Fprintln(out, " - SKIPPED (could not determine frame count)")
			res.Skipped++
			continue
		}
		fmt.Fprintf(out, " - %d frames", info.FrameCount)

		b, ok := Classify(info.FrameCount, opts.Buckets)
		if !ok {
			fmt.Fprintln(out, " - SKIPPED (no suitable bucket)")
			res.Skipped++
			continue
		}
		assignments[b] = append(assignments[b], file)
		fmt.Fprintf(out, " - assigned to %s\n", FolderName(b))
	}

	for _, b := range opts.Buckets {
		members := assignments[b]
		if len(members) == 0 {
			continue
		}
		bucketDir := filepath.Join(outputDir, FolderName(b))
		if err := store.Mkdir(bucketDir); err != nil {
			return res, err
		}
		res.BucketsCreated++

		copied := 0
		for _, file := range members {
			dest := filepath.Join(bucketDir, filepath.Base(file))
			if _, err := os.Stat(dest); err == nil {
				fmt.Fprintf(out, "  Skipped %s (already exists in bucket)\n", filepath.Base(file))
				res.Skipped++
				continue
			}
			if err := store.CopyFile(file, dest); err != nil {
				fmt.Fprintf(out, "  Error copying %s: %v\n", filepath.Base(file), err)
				res.Skipped++
				continue
			}
			copied++
			res.Copied++
		}
		fmt.Fprintf(out, "Copied %d files to %s\n", copied, FolderName(b))
	}

	fmt.Fprintf(out, "Summary: %d files, %d copied, %d skipped, %d buckets created\n",
		res.Total, res.Copied, res.Skipped, res.BucketsCreated)
	return res, nil
}

func findMP4s(dir string) ([]string, error) {
	all, err := probe.FindVideos(dir, true)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, f := range all {
		if filepath.Ext(f) == ".mp4" || filepath.Ext(f) == ".MP4" {
			files = append(files, f)
		}
	}
	return files, nil
}
