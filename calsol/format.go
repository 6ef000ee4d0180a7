package calsol

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a solution container.
type Format int

const (
	FormatUnknown Format = iota
	FormatAOCal
	FormatNumPy
)

var formatSuffixes = map[string]Format{
	".bin": FormatAOCal,
	".npy": FormatNumPy,
}

// String returns the conventional name of the format.
func (f Format) String() string {
	switch f {
	case FormatAOCal:
		return "aocal"
	case FormatNumPy:
		return "npy"
	default:
		return "unknown"
	}
}

// FormatFromPath resolves the container format from the file suffix.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatSuffixes[ext]; ok {
		return f, nil
	}

	return FormatUnknown, fmt.Errorf("%w: %q", ErrFormat, path)
}
