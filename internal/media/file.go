package media

import (
	"errors"
	"path"
	"slices"
	"strings"
)

// MaxFileSize is the largest file accepted for upload (2 MB).
const MaxFileSize int64 = 2 << 20

var (
	ImageExtensions      = []string{"jpg", "gif", "png"}
	AttachmentExtensions = []string{"jpg", "gif", "png", "pdf"}
)

var (
	ErrFileTooLarge        = errors.New("file size must not exceed 2mb")
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")
)

// CheckFile validates a client-provided file name and size against the upload rules.
func CheckFile(name string, size int64, allowed []string) error {
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if !slices.Contains(allowed, ext) {
		return ErrExtensionNotAllowed
	}
	return nil
}
