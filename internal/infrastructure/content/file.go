package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileBytes matches the upload limit of the application form.
const MaxFileBytes = 5 << 20

var (
	// ErrUnsupportedFormat is returned for binary document formats.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrFileTooLarge is returned for files above MaxFileBytes.
	ErrFileTooLarge = errors.New("file too large")
)

var textExtensions = map[string]struct{}{
	".txt":      {},
	".md":       {},
	".markdown": {},
	".html":     {},
	".htm":      {},
}

// ReadFile loads a text, Markdown or HTML file for analysis.
func ReadFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := textExtensions[ext]; !ok {
		return "", fmt.Errorf("%s: %w (use .txt, .md or .html)", path, ErrUnsupportedFormat)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxFileBytes {
		return "", fmt.Errorf("%s is %d bytes: %w", path, info.Size(), ErrFileTooLarge)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(raw), nil
}
