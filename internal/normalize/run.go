package normalize

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

type Options struct {
	InputDir    string
	OutputDir   string
	AspectRatio float64
	Width       int
	Height      int
	Prober      probe.Prober
	Runner      ffmpeg.Runner
	Out         io.Writer
}

type Result struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Copied    int `json:"copied"`
	Failed    int `json:"failed"`
}

// Run normalizes every video in InputDir to the target aspect ratio, writing
// <stem>_normalized<ext> files into OutputDir. Inputs already within
// AspectTolerance of the target are copied verbatim. Per-file failures are
// reported and counted; only argument and input-folder errors abort.
func Run(ctx context.Context, opts Options) (Result, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	if opts.AspectRatio <= 0 {
		return Result{}, errors.New("aspect ratio must be positive")
	}
	if opts.Width > 0 && opts.Height > 0 {
		return Result{}, errors.New("specify either --width or --height, not both")
	}

	fixedWidth, fixedHeight := 0, 0
	if opts.Width > 0 || opts.Height > 0 {
		fixedWidth, fixedHeight = TargetFromAspect(opts.Width, opts.Height, opts.AspectRatio)
	}

	files, err := probe.FindVideos(opts.InputDir, false)
	if err != nil {
		return Result{}, err
	}
	if len(files) == 0 {
		return Result{}, fmt.Errorf("no video files found in %s", opts.InputDir)
	}
	if err := store.Mkdir(opts.OutputDir); err != nil {
		return Result{}, err
	}

	fmt.Fprintf(out, "Found %d video files\n", len(files))
	if fixedWidth > 0 {
		fmt.Fprintf(out, "Target resolution: %dx%d (AR: %.2f)\n", fixedWidth, fixedHeight, float64(fixedWidth)/float64(fixedHeight))
	} else {
		fmt.Fprintf(out, "Target aspect ratio: %.2f (resolution calculated per video)\n", opts.AspectRatio)
	}

	res := Result{Total: len(files)}
	for _, file := range files {
		outcome, err := normalizeOne(ctx, opts, file, fixedWidth, fixedHeight, out)
		switch {
		case err != nil:
			fmt.Fprintf(out, "  error: %v\n", err)
			res.Failed++
		case outcome == outcomeCopied:
			res.Copied++
			res.Succeeded++
		default:
			res.Succeeded++
		}
	}

	fmt.Fprintf(out, "Processed %d/%d videos successfully\n", res.Succeeded, res.Total)
	return res, nil
}

type outcome int

const (
	outcomeEncoded outcome = iota
	outcomeCopied
)

func normalizeOne(ctx context.Context, opts Options, inputPath string, fixedWidth, fixedHeight int, out io.Writer) (outcome, error) {
	name := filepath.Base(inputPath)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	outputPath := filepath.Join(opts.OutputDir, stem+"_normalized"+ext)

	info, err := opts.Prober.Probe(ctx, inputPath)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", name, err)
	}

	inputAR := info.AspectRatio()
	if abs(inputAR-opts.AspectRatio) < AspectTolerance {
		fmt.Fprintf(out, "Copying: %s (already correct AR: %.2f)\n", name, inputAR)
		if err := store.CopyFile(inputPath, outputPath); err != nil {
			return 0, err
		}
		return outcomeCopied, nil
	}

	targetWidth, targetHeight := fixedWidth, fixedHeight
	if targetWidth == 0 {
		targetWidth, targetHeight = targetForInput(info.Width, info.Height, opts.AspectRatio)
	}

	cropWidth, cropHeight := ComputeCrop(info.Width, info.Height, targetWidth, targetHeight)

	fmt.Fprintf(out, "Processing: %s\n", name)
	fmt.Fprintf(out, "  Input: %dx%d (AR: %.2f)\n", info.Width, info.Height, inputAR)
	if cropWidth < info.Width {
		fmt.Fprintf(out, "  Crop: %dx%d (cropping %dpx from width)\n", cropWidth, cropHeight, info.Width-cropWidth)
	} else {
		fmt.Fprintf(out, "  Crop: %dx%d (cropping %dpx from height)\n", cropWidth, cropHeight, info.Height-cropHeight)
	}
	fmt.Fprintf(out, "  Final: %dx%d (AR: %.2f)\n", targetWidth, targetHeight, float64(targetWidth)/float64(targetHeight))

	args := ffmpeg.BuildNormalizeArgs(ffmpeg.NormalizeSpec{
		InputPath:    inputPath,
		OutputPath:   outputPath,
		CropWidth:    cropWidth,
		CropHeight:   cropHeight,
		TargetWidth:  targetWidth,
		TargetHeight: targetHeight,
	})
	if err := opts.Runner.Run(ctx, args); err != nil {
		return 0, fmt.Errorf("encode %s: %w", name, err)
	}
	return outcomeEncoded, nil
}
