package probe

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// VideoExtensions lists the container extensions the batch commands accept,
// lowercase with leading dot. Matching is case-insensitive.
var VideoExtensions = []string{
	".mp4", ".mov", ".avi", ".mkv", ".m4v", ".wmv", ".flv", ".webm",
	".mpg", ".mpeg", ".ts", ".m2ts", ".ogv", ".3gp",
}

// IsVideoFile reports whether name carries a recognized video extension.
func IsVideoFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range VideoExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindVideos returns the video files directly inside dir (or the whole tree
// when recursive), sorted by path.
func FindVideos(dir string, recursive bool) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input folder %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input folder %s: not a directory", dir)
	}

	var files []string
	if recursive {
		err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsVideoFile(d.Name()) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, e := range entries {
			if !e.IsDir() && IsVideoFile(e.Name()) {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
