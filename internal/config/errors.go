package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	// ErrInvalidLogLevel indicates a log level other than debug, info, warn or error.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidRedisConfig indicates an empty redis address or negative DB index.
	ErrInvalidRedisConfig = errors.New("invalid redis configuration")
)
