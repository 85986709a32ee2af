package core

import "errors"

var (
	// ErrChallengeNotFound is returned when a captcha id is unknown,
	// already consumed, or expired. The three cases are indistinguishable.
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrFontNotFound is returned when no usable font file can be resolved
	ErrFontNotFound = errors.New("no usable font found")

	// ErrStoreOperationFailed is returned when a store operation fails
	ErrStoreOperationFailed = errors.New("store operation failed")
)
