package session

import "errors"

var (
	ErrInvalidMultiplier = errors.New("multiplier must be a finite number greater than zero")
	ErrInvalidWindow     = errors.New("window size out of range")
	ErrInvalidThreshold  = errors.New("pink threshold must be a finite number greater than zero")
	ErrIndexOutOfRange   = errors.New("round index out of range")
	ErrTimestampOrder    = errors.New("round timestamp precedes the last recorded round")
	ErrMixedTimestamps   = errors.New("batch mixes blank and explicit timestamps")
)
