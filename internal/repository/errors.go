package repository

import "errors"

// Common repository errors
var (
	// ErrUserNotFound is returned when a write targets a user that does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrAttachmentNotFound is returned when a write targets an attachment that does not exist
	ErrAttachmentNotFound = errors.New("attachment not found")
)
