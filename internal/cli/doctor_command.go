package cli

import (
	"errors"
	"flag"
	"fmt"

	"vidprep/internal/ffmpeg"
	"vidprep/internal/probe"
	"vidprep/internal/settings"
)

type doctorCheck struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
	OK   bool   `json:"ok"`
	Err  string `json:"error,omitempty"`
}

func runDoctor(args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	config := fs.String("config", settings.DefaultSettingsPath, "settings file path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := settings.Load(*config)
	if err != nil {
		return err
	}

	checks := []doctorCheck{
		check("ffmpeg", func() (string, error) {
			return ffmpeg.Runner{Bin: cfg.FFmpegBin}.LookPath()
		}),
		check("ffprobe", func() (string, error) {
			return probe.Prober{Bin: cfg.FFprobeBin}.LookPath()
		}),
	}

	failures := 0
	for _, c := range checks {
		if !c.OK {
			failures++
		}
	}

	if *jsonOut {
		if err := printJSON(map[string]any{"checks": checks, "failures": failures}); err != nil {
			return err
		}
	} else {
		for _, c := range checks {
			if c.OK {
				fmt.Printf("ok    %s (%s)\n", c.Name, c.Path)
			} else {
				fmt.Printf("fail  %s: %s\n", c.Name, c.Err)
			}
		}
	}
	if failures > 0 {
		return errors.New("doctor found missing dependencies")
	}
	return nil
}

func check(name string, look func() (string, error)) doctorCheck {
	path, err := look()
	if err != nil {
		return doctorCheck{Name: name, Err: err.Error()}
	}
	return doctorCheck{Name: name, Path: path, OK: true}
}
