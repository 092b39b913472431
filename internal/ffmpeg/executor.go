package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner wraps the external ffmpeg binary. The zero value uses "ffmpeg"
// from PATH.
type Runner struct {
	Bin string
}

func (r Runner) bin() string {
	if strings.TrimSpace(r.Bin) == "" {
		return "ffmpeg"
	}
	return r.Bin
}

// Run executes ffmpeg with the given arguments, capturing stderr silently.
// On failure the error carries the tail of ffmpeg's diagnostics so per-item
// failures can be reported without aborting the batch.
func (r Runner) Run(ctx context.Context, args []string) error {
	full := append([]string{"-hide_banner", "-nostdin", "-loglevel", "error"}, args...)
	cmd := exec.CommandContext(ctx, r.bin(), full...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > 2048 {
			msg = msg[len(msg)-2048:]
		}
		if msg != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// LookPath reports whether the configured ffmpeg binary can be resolved.
func (r Runner) LookPath() (string, error) {
	path, err := exec.LookPath(r.bin())
	if err != nil {
		return "", fmt.Errorf("missing dependency: %s is not installed or not on PATH", r.bin())
	}
	return path, nil
}
