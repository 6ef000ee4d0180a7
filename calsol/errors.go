package calsol

import "errors"

// Errors returned by solution loading, saving and masking.
var (
	ErrFormat       = errors.New("calsol: unsupported solution format")
	ErrCorrupt      = errors.New("calsol: corrupt solution file")
	ErrTruncated    = errors.New("calsol: truncated solution payload")
	ErrShape        = errors.New("calsol: invalid bandpass shape")
	ErrChannelSpec  = errors.New("calsol: malformed channel range")
	ErrChannelRange = errors.New("calsol: channel index out of range")
)
