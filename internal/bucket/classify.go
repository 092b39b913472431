package bucket

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Classify returns the largest bucket that does not exceed frameCount.
// ok is false when every bucket is larger than frameCount.
func Classify(frameCount int64, buckets []int64) (int64, bool) {
	best := int64(-1)
	for _, b := range buckets {
		if b <= frameCount && b > best {
			best = b
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// ParseBuckets parses a comma-separated bucket list like "30,60,120,300"
// into an ascending slice of positive thresholds.
func ParseBuckets(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	buckets := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("buckets must be comma-separated integers: %q", p)
		}
		if n <= 0 {
			return nil, fmt.Errorf("bucket thresholds must be positive: %d", n)
		}
		buckets = append(buckets, n)
	}
	if len(buckets) == 0 {
		return nil, fmt.Errorf("at least one bucket is required")
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i] < buckets[j] })
	return buckets, nil
}

// FolderName encodes a bucket threshold as a directory name.
func FolderName(bucket int64) string {
	return fmt.Sprintf("bucket_%d_frames", bucket)
}
