package smooth

import "errors"

// Errors returned by the smoothing engine.
var (
	ErrNoReferenceAntenna = errors.New("smooth: no reference antenna with valid data")
	ErrConfig             = errors.New("smooth: invalid configuration")
)
