package settings

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"vidprep/internal/store"
)

const (
	DefaultSettingsPath = "config/settings.json"
	DefaultOutputDir    = "downloads"
	DefaultLanguage     = "hu"
	DefaultVideoFormat  = "mp4"
	DefaultCaptionMode  = CaptionModeAny

	CaptionModeManual = "manual"
	CaptionModeAuto   = "auto"
	CaptionModeAny    = "any"
)

// VideoFormats lists the containers the download command will merge into.
var VideoFormats = []string{"mp4", "webm", "mkv"}

// Settings are the persisted global defaults shared by the commands.
// Precedence when resolving a value: command flag > environment variable
// (after optional .env loading) > settings file > built-in default.
type Settings struct {
	OutputDir   string `json:"output_dir,omitempty"`
	Language    string `json:"language,omitempty"`
	VideoFormat string `json:"video_format,omitempty"`
	CaptionMode string `json:"caption_mode,omitempty"`
	TriggerWord string `json:"trigger_word,omitempty"`
	FFmpegBin   string `json:"ffmpeg_bin,omitempty"`
	FFprobeBin  string `json:"ffprobe_bin,omitempty"`
}

func Default() Settings {
	return Settings{
		OutputDir:   DefaultOutputDir,
		Language:    DefaultLanguage,
		VideoFormat: DefaultVideoFormat,
		CaptionMode: DefaultCaptionMode,
	}
}

// Load reads the settings file (missing file yields defaults), then applies
// VIDPREP_* environment overrides. A .env file in the working directory is
// honored before the environment is read.
func Load(path string) (Settings, error) {
	s := Default()
	if strings.TrimSpace(path) == "" {
		path = DefaultSettingsPath
	}

	var fromFile Settings
	err := store.ReadJSON(path, &fromFile)
	switch {
	case err == nil:
		s = merge(s, fromFile)
	case errors.Is(err, os.ErrNotExist):
		// First run; defaults apply.
	default:
		return Settings{}, err
	}

	_ = godotenv.Load()
	s = merge(s, fromEnv())
	return Normalize(s), nil
}

// Save normalizes and persists the settings atomically.
func Save(path string, s Settings) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultSettingsPath
	}
	return store.WriteJSON(path, Normalize(s))
}

func fromEnv() Settings {
	return Settings{
		OutputDir:   os.Getenv("VIDPREP_OUTPUT_DIR"),
		Language:    os.Getenv("VIDPREP_LANGUAGE"),
		VideoFormat: os.Getenv("VIDPREP_VIDEO_FORMAT"),
		CaptionMode: os.Getenv("VIDPREP_CAPTION_MODE"),
		TriggerWord: os.Getenv("VIDPREP_TRIGGER_WORD"),
		FFmpegBin:   os.Getenv("VIDPREP_FFMPEG_BIN"),
		FFprobeBin:  os.Getenv("VIDPREP_FFPROBE_BIN"),
	}
}

// merge overlays non-empty fields of over onto base.
func merge(base, over Settings) Settings {
	if strings.TrimSpace(over.OutputDir) != "" {
		base.OutputDir = over.OutputDir
	}
	if strings.TrimSpace(over.Language) != "" {
		base.Language = over.Language
	}
	if strings.TrimSpace(over.VideoFormat) != "" {
		base.VideoFormat = over.VideoFormat
	}
	if strings.TrimSpace(over.CaptionMode) != "" {
		base.CaptionMode = over.CaptionMode
	}
	if strings.TrimSpace(over.TriggerWord) != "" {
		base.TriggerWord = over.TriggerWord
	}
	if strings.TrimSpace(over.FFmpegBin) != "" {
		base.FFmpegBin = over.FFmpegBin
	}
	if strings.TrimSpace(over.FFprobeBin) != "" {
		base.FFprobeBin = over.FFprobeBin
	}
	return base
}

// Normalize resolves empty or unknown fields back to their defaults.
func Normalize(raw Settings) Settings {
	s := raw
	if strings.TrimSpace(s.OutputDir) == "" {
		s.OutputDir = DefaultOutputDir
	}
	s.Language = strings.ToLower(strings.TrimSpace(s.Language))
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	s.VideoFormat = NormalizeVideoFormat(s.VideoFormat)
	s.CaptionMode = NormalizeCaptionMode(s.CaptionMode)
	return s
}

func NormalizeVideoFormat(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, f := range VideoFormats {
		if v == f {
			return f
		}
	}
	return DefaultVideoFormat
}

func NormalizeCaptionMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case CaptionModeManual:
		return CaptionModeManual
	case CaptionModeAuto:
		return CaptionModeAuto
	default:
		return CaptionModeAny
	}
}
