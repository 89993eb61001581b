package queue

import "errors"

var (
	// ErrFull signals the queue is at capacity and the batch was dropped.
	ErrFull = errors.New("queue full")

	// ErrClosed signals an enqueue after Close.
	ErrClosed = errors.New("queue closed")
)
