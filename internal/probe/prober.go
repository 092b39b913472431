package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideoStream is returned when ffprobe succeeds but the file carries no
// usable video stream.
var ErrNoVideoStream = errors.New("no video stream found")

// Prober wraps the external ffprobe binary. The zero value uses "ffprobe"
// from PATH.
type Prober struct {
	Bin string
}

func (p Prober) bin() string {
	if strings.TrimSpace(p.Bin) == "" {
		return "ffprobe"
	}
	return p.Bin
}

// LookPath reports whether the configured ffprobe binary can be resolved.
func (p Prober) LookPath() (string, error) {
	path, err := exec.LookPath(p.bin())
	if err != nil {
		return "", fmt.Errorf("missing dependency: %s is not installed or not on PATH", p.bin())
	}
	return path, nil
}

// Probe runs a single ffprobe JSON call against path and returns the parsed
// result. Frame count is best-effort: container metadata first, otherwise
// derived from duration and average frame rate.
func (p Prober) Probe(ctx context.Context, path string) (*Result, error) {
	return p.run(ctx, path, false)
}

// CountFrames is Probe with -count_frames, which decodes the whole stream to
// get an exact frame count. Noticeably slower; callers should bound ctx.
func (p Prober) CountFrames(ctx context.Context, path string) (*Result, error) {
	return p.run(ctx, path, true)
}

func (p Prober) run(ctx context.Context, path string, countFrames bool) (*Result, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
	}
	if countFrames {
		args = append(args, "-count_frames")
	}
	args = append(args, path)

	cmd := exec.CommandContext(ctx, p.bin(), args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a Result.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildResult(&raw)
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename string `json:"filename"`
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType    string         `json:"codec_type"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	Duration     string         `json:"duration"`
	AvgFrameRate string         `json:"avg_frame_rate"`
	RFrameRate   string         `json:"r_frame_rate"`
	NbFrames     string         `json:"nb_frames"`
	NbReadFrames string         `json:"nb_read_frames"`
	Disposition  map[string]int `json:"disposition"`
}

// --- Conversion from wire types to the domain type ---

func buildResult(raw *ffprobeOutput) (*Result, error) {
	var vs *ffprobeStream
	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType != "video" {
			continue
		}
		// Cover art shows up as a video stream; skip it.
		if s.Disposition["attached_pic"] == 1 {
			continue
		}
		vs = s
		break
	}
	if vs == nil || vs.Width <= 0 || vs.Height <= 0 {
		return nil, ErrNoVideoStream
	}

	r := &Result{
		Path:   raw.Format.Filename,
		Width:  vs.Width,
		Height: vs.Height,
		FPS:    parseRate(vs.AvgFrameRate),
	}
	if r.FPS == 0 {
		r.FPS = parseRate(vs.RFrameRate)
	}

	r.Duration = parseFloat(vs.Duration)
	if r.Duration == 0 {
		r.Duration = parseFloat(raw.Format.Duration)
	}

	// Exact decoded count wins, then container metadata, then duration*fps.
	switch {
	case parseInt64(vs.NbReadFrames) > 0:
		r.FrameCount = parseInt64(vs.NbReadFrames)
	case parseInt64(vs.NbFrames) > 0:
		r.FrameCount = parseInt64(vs.NbFrames)
	case r.Duration > 0 && r.FPS > 0:
		r.FrameCount = int64(r.Duration * r.FPS)
	}

	return r, nil
}

// parseRate parses ffprobe rational rates like "30000/1001" or "25/1".
func parseRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "0/0" {
		return 0
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseFloat(s)
	}
	n := parseFloat(num)
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
