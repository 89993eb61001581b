package config

import "errors"

var (
	// ErrLoadConfig wraps failures reading or parsing a config source.
	ErrLoadConfig = errors.New("load config")

	// ErrInvalidConfig wraps semantic validation failures.
	ErrInvalidConfig = errors.New("invalid config")
)
