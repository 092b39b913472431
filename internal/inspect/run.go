// Package inspect prints a resolution/FPS/frame-count table for the videos
// in a folder.
package inspect

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"vidprep/internal/probe"
)

// probeTimeout bounds the exact frame count, which decodes the whole stream.
const probeTimeout = 60 * time.Second

type Options struct {
	Dir        string
	Recursive  bool
	ShowFrames bool
	Prober     probe.Prober
	Out        io.Writer

	// FrameTimeout overrides probeTimeout; zero keeps the default.
	FrameTimeout time.Duration
}

// Row is one table line; Err marks files that could not be probed.
type Row struct {
	Name        string  `json:"name"`
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	AspectRatio float64 `json:"aspect_ratio,omitempty"`
	Frames      int64   `json:"frames,omitempty"`
	FPS         float64 `json:"fps,omitempty"`
	Err         string  `json:"error,omitempty"`
}

func Run(ctx context.Context, opts Options) ([]Row, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	files, err := probe.FindVideos(opts.Dir, opts.Recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No video files found in the folder.")
		return nil, nil
	}

	printHeader(out, opts.ShowFrames)
	rows := make([]Row, 0, len(files))
	for _, file := range files {
		row := probeRow(ctx, opts, file)
		rows = append(rows, row)
		printRow(out, row, opts.ShowFrames)
	}
	printSeparator(out, opts.ShowFrames)
	fmt.Fprintf(out, "Total files processed: %d\n", len(rows))
	return rows, nil
}

func probeRow(ctx context.Context, opts Options, file string) Row {
	name := filepath.Base(file)
	if opts.Recursive {
		if rel, err := filepath.Rel(opts.Dir, file); err == nil {
			name = rel
		}
	}
	row := Row{Name: truncateName(name)}

	var info *probe.Result
	var err error
	probeCtx := ctx
	if opts.ShowFrames {
		timeout := opts.FrameTimeout
		if timeout <= 0 {
			timeout = probeTimeout
		}
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
		info, err = opts.Prober.CountFrames(probeCtx, file)
	} else {
		info, err = opts.Prober.Probe(ctx, file)
	}
	if err != nil {
		row.Err = "Error"
		if probeCtx.Err() != nil {
			row.Err = "Timeout"
		}
		return row
	}

	row.Width = info.Width
	row.Height = info.Height
	row.AspectRatio = roundTo2(info.AspectRatio())
	row.Frames = info.FrameCount
	row.FPS = roundTo2(info.FPS)
	return row
}

func printHeader(out io.Writer, showFrames bool) {
	printSeparator(out, showFrames)
	header := fmt.Sprintf("%-40s %-15s %-12s", "Filename", "Resolution", "Aspect Ratio")
	if showFrames {
		header += fmt.Sprintf(" %-12s %-8s", "Frames", "FPS")
	}
	fmt.Fprintln(out, header)
	printSeparator(out, showFrames)
}

func printSeparator(out io.Writer, showFrames bool) {
	width := 80
	if showFrames {
		width = 105
	}
	for i := 0; i < width; i++ {
		fmt.Fprint(out, "-")
	}
	fmt.Fprintln(out)
}

func printRow(out io.Writer, row Row, showFrames bool) {
	if row.Err != "" {
		line := fmt.Sprintf("%-40s %-15s %-12s", row.Name, row.Err, "N/A")
		if showFrames {
			line += fmt.Sprintf(" %-12s %-8s", "N/A", "N/A")
		}
		fmt.Fprintln(out, line)
		return
	}

	resolution := fmt.Sprintf("%dx%d", row.Width, row.Height)
	line := fmt.Sprintf("%-40s %-15s %-12.2f", row.Name, resolution, row.AspectRatio)
	if showFrames {
		frames := "N/A"
		if row.Frames > 0 {
			frames = fmt.Sprintf("%d", row.Frames)
		}
		fps := "N/A"
		if row.FPS > 0 {
			fps = fmt.Sprintf("%.2f", row.FPS)
		}
		line += fmt.Sprintf(" %-12s %-8s", frames, fps)
	}
	fmt.Fprintln(out, line)
}

func truncateName(name string) string {
	if len(name) <= 38 {
		return name
	}
	return name[:35] + "..."
}

func roundTo2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
