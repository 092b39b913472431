// Package retime converts the frame rate of every video in a folder, either
// preserving the total duration (frames are dropped or duplicated) or scaling
// it by originalFPS/targetFPS (frames are retimed, no re-encode).
package retime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"vidprep/internal/ffmpeg"
	"vidprep/internal/probe"
	"vidprep/internal/store"
)

const (
	ModePreserve = "preserve"
	ModeChange   = "change"
)

// fallbackFPS is assumed when probing the source rate fails in change mode.
const fallbackFPS = 30.0

type Options struct {
	InputDir     string
	OutputDir    string
	TargetFPS    float64
	DurationMode string
	Prober       probe.Prober
	Runner       ffmpeg.Runner
	Out          io.Writer
}

type Result struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func Run(ctx context.Context, opts Options) (Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	if opts.TargetFPS <= 0 {
		return Result{}, errors.New("target fps must be positive")
	}
	if opts.DurationMode != ModePreserve && opts.DurationMode != ModeChange {
		return Result{}, fmt.Errorf("invalid duration mode %q (expected %s or %s)", opts.DurationMode, ModePreserve, ModeChange)
	}
	inAbs, _ := filepath.Abs(opts.InputDir)
	outAbs, _ := filepath.Abs(opts.OutputDir)
	if inAbs == outAbs {
		return Result{}, errors.New("input and output folders must be different")
	}

	files, err := probe.FindVideos(opts.InputDir, false)
	if err != nil {
		return Result{}, err
	}
	if err := store.Mkdir(opts.OutputDir); err != nil {
		return Result{}, err
	}

	res := Result{Total: len(files)}
	for _, file := range files {
		if err := convertOne(ctx, opts, file); err != nil {
			fmt.Fprintf(out, "Error converting %s: %v\n", filepath.Base(file), err)
			res.Failed++
			continue
		}
		fmt.Fprintf(out, "Successfully converted: %s\n", filepath.Base(file))
		res.Succeeded++
	}

	fmt.Fprintf(out, "\nConversion completed: %d videos successfully converted, %d failed.\n", res.Succeeded, res.Failed)
	return res, nil
}

func convertOne(ctx context.Context, opts Options, inputPath string) error {
	name := filepath.Base(inputPath)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	outputPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_fps%d%s", stem, int(opts.TargetFPS), ext))

	var args []string
	if opts.DurationMode == ModePreserve {
		args = ffmpeg.BuildRetimeArgs(inputPath, outputPath, opts.TargetFPS)
	} else {
		originalFPS := fallbackFPS
		if info, err := opts.Prober.Probe(ctx, inputPath); err == nil && info.FPS > 0 {
			originalFPS = info.FPS
		}
		args = ffmpeg.BuildRescaleArgs(inputPath, outputPath, originalFPS, opts.TargetFPS)
	}
	return opts.Runner.Run(ctx, args)
}
