package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"vidprep/internal/bucket"
	"vidprep/internal/ffmpeg"
	"vidprep/internal/inspect"
	"vidprep/internal/normalize"
	"vidprep/internal/probe"
	"vidprep/internal/retime"
	"vidprep/internal/settings"
)

func runNormalize(args []string) error {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	input := fs.String("input", "", "input folder containing videos")
	output := fs.String("output", "", "output folder for normalized videos")
	aspectRatio := fs.Float64("aspect-ratio", 1.78, "target aspect ratio (default 16:9)")
	width := fs.Int("width", 0, "target width (derived from input if not set)")
	height := fs.Int("height", 0, "target height (derived from input if not set)")
	config := fs.String("config", settings.DefaultSettingsPath, "settings file path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*input) == "" || strings.TrimSpace(*output) == "" {
		fs.Usage()
		return errors.New("--input and --output are required")
	}

	cfg, err := settings.Load(*config)
	if err != nil {
		return err
	}

	res, err := normalize.Run(context.Background(), normalize.Options{
		InputDir:    *input,
		OutputDir:   *output,
		AspectRatio: *aspectRatio,
		Width:       *width,
		Height:      *height,
		Prober:      probe.Prober{Bin: cfg.FFprobeBin},
		Runner:      ffmpeg.Runner{Bin: cfg.FFmpegBin},
		Out:         os.Stdout,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(res)
	}
	fmt.Printf("total: %d\n", res.Total)
	fmt.Printf("succeeded: %d\n", res.Succeeded)
	fmt.Printf("copied: %d\n", res.Copied)
	fmt.Printf("failed: %d\n", res.Failed)
	return nil
}

func runBuckets(args []string) error {
	fs := flag.NewFlagSet("buckets", flag.ContinueOnError)
	input := fs.String("input", "", "folder containing MP4 files to analyze")
	output := fs.String("output", "", "base output folder (defaults to input folder)")
	bucketsRaw := fs.String("buckets", "", "frame-count buckets, comma-separated (e.g. 30,60,120,300)")
	config := fs.String("config", settings.DefaultSettingsPath, "settings file path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*input) == "" {
		fs.Usage()
		return errors.New("--input is required")
	}
	if strings.TrimSpace(*bucketsRaw) == "" {
		fs.Usage()
		return errors.New("--buckets is required")
	}
	buckets, err := bucket.ParseBuckets(*bucketsRaw)
	if err != nil {
		return err
	}

	cfg, err := settings.Load(*config)
	if err != nil {
		return err
	}

	res, err := bucket.Run(context.Background(), bucket.Options{
		InputDir:  *input,
		OutputDir: *output,
		Buckets:   buckets,
		Prober:    probe.Prober{Bin: cfg.FFprobeBin},
		Out:       os.Stdout,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(res)
	}
	fmt.Printf("total: %d\n", res.Total)
	fmt.Printf("copied: %d\n", res.Copied)
	fmt.Printf("skipped: %d\n", res.Skipped)
	fmt.Printf("buckets_created: %d\n", res.BucketsCreated)
	return nil
}

func runFPS(args []string) error {
	fs := flag.NewFlagSet("fps", flag.ContinueOnError)
	input := fs.String("input", "", "input folder containing videos")
	output := fs.String("output", "", "output folder for converted videos")
	targetFPS := fs.Float64("fps", 30, "target frames per second")
	duration := fs.String("duration", retime.ModePreserve, "duration mode: preserve keeps total duration, change retimes it")
	config := fs.String("config", settings.DefaultSettingsPath, "settings file path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*input) == "" || strings.TrimSpace(*output) == "" {
		fs.Usage()
		return errors.New("--input and --output are required")
	}

	cfg, err := settings.Load(*config)
	if err != nil {
		return err
	}

	res, err := retime.Run(context.Background(), retime.Options{
		InputDir:     *input,
		OutputDir:    *output,
		TargetFPS:    *targetFPS,
		DurationMode: strings.ToLower(strings.TrimSpace(*duration)),
		Prober:       probe.Prober{Bin: cfg.FFprobeBin},
		Runner:       ffmpeg.Runner{Bin: cfg.FFmpegBin},
		Out:          os.Stdout,
	})
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(res)
	}
	fmt.Printf("total: %d\n", res.Total)
	fmt.Printf("succeeded: %d\n", res.Succeeded)
	fmt.Printf("failed: %d\n", res.Failed)
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	input := fs.String("input", "", "input folder path")
	recursive := fs.Bool("recursive", false, "search recursively in subdirectories")
	noDuration := fs.Bool("no-duration", false, "skip frame count and FPS information")
	config := fs.String("config", settings.DefaultSettingsPath, "settings file path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*input) == "" {
		fs.Usage()
		return errors.New("--input is required")
	}

	cfg, err := settings.Load(*config)
	if err != nil {
		return err
	}

	out := os.Stdout
	opts := inspect.Options{
		Dir:        *input,
		Recursive:  *recursive,
		ShowFrames: !*noDuration,
		Prober:     probe.Prober{Bin: cfg.FFprobeBin},
	}
	if *jsonOut {
		rows, err := inspect.Run(context.Background(), opts)
		if err != nil {
			return err
		}
		return printJSON(rows)
	}
	opts.Out = out
	_, err = inspect.Run(context.Background(), opts)
	return err
}
