package caption

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"vidprep/internal/store"
)

// invalidFilenameChars are replaced with underscores when a CSV field is used
// as a filename.
const invalidFilenameChars = `<>:"/\|?*`

type CSVOptions struct {
	CSVPath        string
	TextColumn     string
	FilenameColumn string
	OutputDir      string
	Out            io.Writer
}

// ExtractCSV writes one text file per CSV row: the content comes from
// TextColumn (empty fields still produce an empty file), the filename from
// FilenameColumn after sanitization. An .mp4 suffix is rewritten to .txt, a
// missing extension gets .txt appended, and on-disk collisions get _1, _2, ...
// suffixes.
func ExtractCSV(opts CSVOptions) (int, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	f, err := os.Open(opts.CSVPath)
	if err != nil {
		return 0, fmt.Errorf("CSV file %s: %w", opts.CSVPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read CSV header: %w", err)
	}
	textIdx, filenameIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case opts.TextColumn:
			textIdx = i
		case opts.FilenameColumn:
			filenameIdx = i
		}
	}
	if textIdx < 0 {
		return 0, fmt.Errorf("column %q not found in CSV (available: %s)", opts.TextColumn, strings.Join(header, ", "))
	}
	if filenameIdx < 0 {
		return 0, fmt.Errorf("column %q not found in CSV (available: %s)", opts.FilenameColumn, strings.Join(header, ", "))
	}

	if err := store.Mkdir(opts.OutputDir); err != nil {
		return 0, err
	}

	created := 0
	for rowNum := 1; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return created, fmt.Errorf("read CSV row %d: %w", rowNum, err)
		}

		text := field(row, textIdx)
		name := SanitizeFilename(field(row, filenameIdx), rowNum)
		path := resolveCollision(filepath.Join(opts.OutputDir, name))

		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			fmt.Fprintf(out, "Error creating file %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "Created: %s\n", path)
		created++
	}

	fmt.Fprintf(out, "Completed! Created %d text files in %s\n", created, opts.OutputDir)
	return created, nil
}

func field(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// SanitizeFilename turns a raw CSV field into a safe .txt filename. Empty or
// fully-invalid names fall back to row_<rowNum>.
func SanitizeFilename(raw string, rowNum int) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) {
			return '_'
		}
		return r
	}, raw)
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("row_%d", rowNum)
	}

	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".mp4"):
		name = name[:len(name)-4] + ".txt"
	case !strings.HasSuffix(lower, ".txt"):
		name += ".txt"
	}
	return name
}

// resolveCollision appends _1, _2, ... before the extension until the path is
// free on disk.
func resolveCollision(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
