package worker

import "errors"

// Sentinel kinds for worker errors.
var (
	ErrEmptyBatch = errors.New("empty batch")
)
