// internal/convert/errors.go
package convert

import "errors"

var (
	// ErrFFmpegNotFound indicates the video converter is not on the
	// execution path. Checked before any invocation is attempted.
	ErrFFmpegNotFound = errors.New("ffmpeg not found in PATH")

	// ErrConversionFailed indicates an external converter exited non-zero.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrCopyFailed indicates the plain file copy failed.
	ErrCopyFailed = errors.New("failed to copy file")
)
