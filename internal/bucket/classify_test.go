package bucket

import "testing"

func TestClassify(t *testing.T) {
	buckets := []int64{30, 60, 120, 300}
	cases := []struct {
		frames int64
		want   int64
		ok     bool
	}{
		{90, 60, true},
		{120, 120, true},
		{29, 0, false},
		{30, 30, true},
		{10000, 300, true},
		{0, 0, false},
	}
	for _, c := range cases {
		got, ok := Classify(c.frames, buckets)
		if ok != c.ok || got != c.want {
			t.Fatalf("Classify(%d) = (%d, %v), want (%d, %v)", c.frames, got, ok, c.want, c.ok)
		}
	}
}

func TestClassify_UnsortedBuckets(t *testing.T) {
	got, ok := Classify(90, []int64{300, 30, 60})
	if !ok || got != 60 {
		t.Fatalf("expected bucket 60, got (%d, %v)", got, ok)
	}
}

func TestParseBuckets(t *testing.T) {
	buckets, err := ParseBuckets("300, 30,60 ,120")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []int64{30, 60, 120, 300}
	if len(buckets) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(buckets))
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Fatalf("expected ascending %v, got %v", want, buckets)
		}
	}
}

func TestParseBuckets_Rejects(t *testing.T) {
	for _, raw := range []string{"", "abc", "30,-5", "0", " , "} {
		if _, err := ParseBuckets(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestFolderName(t *testing.T) {
	if got := FolderName(120); got != "bucket_120_frames" {
		t.Fatalf("unexpected folder name %q", got)
	}
}
