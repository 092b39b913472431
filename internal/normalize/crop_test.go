package normalize

import "testing"

func TestComputeCrop_WideInputLosesWidth(t *testing.T) {
	w, h := ComputeCrop(2560, 1080, 1920, 1080)
	if h != 1080 {
		t.Fatalf("expected full height 1080, got %d", h)
	}
	if w != 1920 {
		t.Fatalf("expected cropped width 1920, got %d", w)
	}
}

func TestComputeCrop_TallInputLosesHeight(t *testing.T) {
	w, h := ComputeCrop(1080, 1920, 1080, 1080)
	if w != 1080 {
		t.Fatalf("expected full width 1080, got %d", w)
	}
	if h != 1080 {
		t.Fatalf("expected cropped height 1080, got %d", h)
	}
}

func TestComputeCrop_ResultsAreEvenAndWithinInput(t *testing.T) {
	cases := []struct {
		inW, inH   int
		tgtW, tgtH int
	}{
		{1920, 1080, 1080, 1080},
		{1921, 1081, 1920, 1080},
		{853, 481, 16, 9},
		{640, 480, 1920, 1080},
		{999, 777, 4, 3},
	}
	for _, c := range cases {
		w, h := ComputeCrop(c.inW, c.inH, c.tgtW, c.tgtH)
		if w%2 != 0 || h%2 != 0 {
			t.Fatalf("ComputeCrop(%d,%d,%d,%d) = %dx%d: dimensions must be even", c.inW, c.inH, c.tgtW, c.tgtH, w, h)
		}
		if w > c.inW || h > c.inH {
			t.Fatalf("ComputeCrop(%d,%d,%d,%d) = %dx%d: crop exceeds input", c.inW, c.inH, c.tgtW, c.tgtH, w, h)
		}
		if w <= 0 || h <= 0 {
			t.Fatalf("ComputeCrop(%d,%d,%d,%d) = %dx%d: degenerate crop", c.inW, c.inH, c.tgtW, c.tgtH, w, h)
		}
	}
}

func TestTargetFromAspect(t *testing.T) {
	w, h := TargetFromAspect(1920, 0, 16.0/9.0)
	if w != 1920 || h != 1080 {
		t.Fatalf("expected 1920x1080, got %dx%d", w, h)
	}
	w, h = TargetFromAspect(0, 1080, 16.0/9.0)
	if w != 1920 || h != 1080 {
		t.Fatalf("expected 1920x1080, got %dx%d", w, h)
	}
}

func TestTargetForInput_KeepsLargerDimension(t *testing.T) {
	w, h := targetForInput(1920, 1080, 16.0/9.0)
	if w != 1920 || h != 1080 {
		t.Fatalf("landscape: expected 1920x1080, got %dx%d", w, h)
	}
	w, h = targetForInput(1080, 1920, 9.0/16.0)
	if h != 1920 {
		t.Fatalf("portrait: expected full height 1920, got %d", h)
	}
	if w != 1080 {
		t.Fatalf("portrait: expected width 1080, got %d", w)
	}
}
