package caption

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteTriggerFiles creates one .txt sidecar per .mp4 in dir, each containing
// exactly the trigger word. Existing sidecars are overwritten.
func WriteTriggerFiles(dir, triggerWord string, out io.Writer) (int, error) {
	if out == nil {
		out = io.Discard
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("folder %s: %w", dir, err)
	}

	created := 0
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".mp4" {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		sidecar := filepath.Join(dir, base+".txt")
		if err := os.WriteFile(sidecar, []byte(triggerWord), 0o644); err != nil {
			return created, fmt.Errorf("write %s: %w", sidecar, err)
		}
		fmt.Fprintf(out, "Created: %s\n", filepath.Base(sidecar))
		created++
	}
	if created == 0 {
		return 0, fmt.Errorf("no mp4 files found in %s", dir)
	}
	return created, nil
}
