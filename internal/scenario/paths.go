package scenario

import (
	"path/filepath"
	"strings"
)

// Stem returns the file name without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// VideoPath returns the sibling videos location for a scenario file:
// <dir>/../videos/<stem><ext>.
func VideoPath(input, ext string) string {
	return filepath.Join(filepath.Dir(input), "..", "videos", Stem(input)+ext)
}
