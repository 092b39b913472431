package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"vidprep/internal/settings"
)

func runSettings(args []string) error {
	if len(args) == 0 {
		printSettingsUsage()
		return nil
	}
	switch args[0] {
	case "show":
		return runSettingsShow(args[1:])
	case "set":
		return runSettingsSet(args[1:])
	case "help", "-h", "--help":
		printSettingsUsage()
		return nil
	default:
		printSettingsUsage()
		return fmt.Errorf("unknown settings subcommand %q", args[0])
	}
}

func runSettingsShow(args []string) error {
	fs := flag.NewFlagSet("settings show", flag.ContinueOnError)
	config := fs.String("config", settings.DefaultSettingsPath, "settings file path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	configPath := strings.TrimSpace(*config)
	cfg, err := settings.Load(configPath)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(map[string]any{
			"config_path": configPath,
			"settings":    cfg,
		})
	}

	fmt.Printf("config: %s\n", configPath)
	fmt.Printf("output_dir: %s\n", cfg.OutputDir)
	fmt.Printf("language: %s\n", cfg.Language)
	fmt.Printf("video_format: %s\n", cfg.VideoFormat)
	fmt.Printf("caption_mode: %s\n", cfg.CaptionMode)
	fmt.Printf("trigger_word: %s\n", orNone(cfg.TriggerWord))
	fmt.Printf("ffmpeg_bin: %s\n", orDefaultBin(cfg.FFmpegBin, "ffmpeg"))
	fmt.Printf("ffprobe_bin: %s\n", orDefaultBin(cfg.FFprobeBin, "ffprobe"))
	return nil
}

func runSettingsSet(args []string) error {
	fs := flag.NewFlagSet("settings set", flag.ContinueOnError)
	config := fs.String("config", settings.DefaultSettingsPath, "settings file path")
	outputDir := fs.String("output-dir", "", "default output folder (empty keeps current)")
	language := fs.String("language", "", "default language code (empty keeps current)")
	videoFormat := fs.String("video-format", "", "default container: mp4|webm|mkv (empty keeps current)")
	captionMode := fs.String("caption-mode", "", "caption preference: manual|auto|any (empty keeps current)")
	triggerWord := fs.String("trigger-word", "", "default trigger word (empty keeps current)")
	ffmpegBin := fs.String("ffmpeg-bin", "", "ffmpeg binary path (empty keeps current)")
	ffprobeBin := fs.String("ffprobe-bin", "", "ffprobe binary path (empty keeps current)")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	configPath := strings.TrimSpace(*config)
	cfg, err := settings.Load(configPath)
	if err != nil {
		return err
	}

	changed := false
	if strings.TrimSpace(*outputDir) != "" {
		cfg.OutputDir = strings.TrimSpace(*outputDir)
		changed = true
	}
	if strings.TrimSpace(*language) != "" {
		cfg.Language = strings.TrimSpace(*language)
		changed = true
	}
	if strings.TrimSpace(*videoFormat) != "" {
		v := strings.ToLower(strings.TrimSpace(*videoFormat))
		if settings.NormalizeVideoFormat(v) != v {
			return fmt.Errorf("--video-format must be one of %s", strings.Join(settings.VideoFormats, ", "))
		}
		cfg.VideoFormat = v
		changed = true
	}
	if strings.TrimSpace(*captionMode) != "" {
		m := strings.ToLower(strings.TrimSpace(*captionMode))
		if m != settings.CaptionModeManual && m != settings.CaptionModeAuto && m != settings.CaptionModeAny {
			return errors.New("--caption-mode must be manual, auto, or any")
		}
		cfg.CaptionMode = m
		changed = true
	}
	if strings.TrimSpace(*triggerWord) != "" {
		cfg.TriggerWord = strings.TrimSpace(*triggerWord)
		changed = true
	}
	if strings.TrimSpace(*ffmpegBin) != "" {
		cfg.FFmpegBin = strings.TrimSpace(*ffmpegBin)
		changed = true
	}
	if strings.TrimSpace(*ffprobeBin) != "" {
		cfg.FFprobeBin = strings.TrimSpace(*ffprobeBin)
		changed = true
	}
	if !changed {
		return errors.New("nothing to update; pass at least one flag")
	}

	if err := settings.Save(configPath, cfg); err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(map[string]any{
			"config_path": configPath,
			"settings":    settings.Normalize(cfg),
		})
	}
	fmt.Printf("updated settings in %s\n", configPath)
	return nil
}

func printSettingsUsage() {
	fmt.Println("settings commands:")
	fmt.Println("  settings show")
	fmt.Println("  settings set [--output-dir DIR] [--language CODE] [--video-format mp4|webm|mkv]")
	fmt.Println("               [--caption-mode manual|auto|any] [--trigger-word WORD]")
	fmt.Println("               [--ffmpeg-bin PATH] [--ffprobe-bin PATH]")
}

func orNone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(none)"
	}
	return v
}

func orDefaultBin(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback + " (from PATH)"
	}
	return v
}
