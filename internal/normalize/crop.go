package normalize

// AspectTolerance is the maximum aspect-ratio difference treated as "already
// compliant". Within it the file is copied byte-for-byte instead of being
// re-encoded.
const AspectTolerance = 0.01

// ComputeCrop returns the centered crop dimensions that bring an
// inputWidth x inputHeight frame to the aspect ratio of
// targetWidth x targetHeight. The narrower axis is kept whole: a relatively
// wide input loses width, a relatively tall input loses height. Results are
// always even because downstream encoders require macroblock-aligned
// dimensions.
func ComputeCrop(inputWidth, inputHeight, targetWidth, targetHeight int) (cropWidth, cropHeight int) {
	inputAR := float64(inputWidth) / float64(inputHeight)
	targetAR := float64(targetWidth) / float64(targetHeight)

	if inputAR > targetAR {
		cropWidth = evenFloor(int(float64(inputHeight) * targetAR))
		cropHeight = evenFloor(inputHeight)
	} else {
		cropWidth = evenFloor(inputWidth)
		cropHeight = evenFloor(int(float64(inputWidth) / targetAR))
	}
	return cropWidth, cropHeight
}

// TargetFromAspect derives a full target resolution from a single fixed
// dimension and an aspect ratio. Exactly one of width/height must be set; the
// derived dimension is even-floored.
func TargetFromAspect(width, height int, aspectRatio float64) (int, int) {
	if width > 0 {
		return width, evenFloor(int(float64(width) / aspectRatio))
	}
	return evenFloor(int(float64(height) * aspectRatio)), height
}

// targetForInput picks a per-video target resolution when the caller fixed
// neither dimension: the larger input dimension is kept as reference so no
// quality is thrown away.
func targetForInput(inputWidth, inputHeight int, aspectRatio float64) (int, int) {
	if inputWidth >= inputHeight {
		return evenFloor(inputWidth), evenFloor(int(float64(inputWidth) / aspectRatio))
	}
	return evenFloor(int(float64(inputHeight) * aspectRatio)), evenFloor(inputHeight)
}

func evenFloor(n int) int {
	return n - n%2
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
