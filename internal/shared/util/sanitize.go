package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName reports an empty name or a traversal pattern.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName trims the uploaded name, rejects traversal patterns and
// replaces path separators so the result is safe as a single path element.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	cleaned := strings.TrimSpace(name)
	cleaned = strings.ReplaceAll(cleaned, "/", "_")
	cleaned = strings.ReplaceAll(cleaned, "\\", "_")
	if cleaned == "" {
		return "", ErrInvalidFileName
	}
	return cleaned, nil
}
