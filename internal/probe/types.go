package probe

// Result holds the properties of a probed video file that the batch commands
// care about. FrameCount and FPS are zero when ffprobe could not report them.
type Result struct {
	Path       string
	Width      int
	Height     int
	FPS        float64
	FrameCount int64
	Duration   float64
}

// AspectRatio returns width/height, or zero for a degenerate height.
func (r *Result) AspectRatio() float64 {
	if r.Height == 0 {
		return 0
	}
	return float64(r.Width) / float64(r.Height)
}
