package services

import "errors"

// ErrNotFound is returned when a requested service record (or blob) does
// not exist. Controllers map it to a 404.
var ErrNotFound = errors.New("not found")

// UploadError wraps a media-host failure during an image upload. Uploads
// always fail before anything is persisted, so an UploadError means no
// record was touched. Controllers map it to a 400.
type UploadError struct {
	Cause error
}

func (e *UploadError) Error() string {
	return "Image upload failed: " + e.Cause.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// ValidationError reports a malformed caller-supplied value, e.g. a full
// URL passed where a bare public ID was required. Controllers map it to a
// 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
