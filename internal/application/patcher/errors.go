package patcher

import (
	"errors"
	"fmt"
)

// ErrNotDirectory indicates that the resolved configuration path exists
// but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ConfigDirectoryError is returned when the configuration directory is
// missing or is not a directory.
type ConfigDirectoryError struct {
	Path string
	Err  error
}

func (e *ConfigDirectoryError) Error() string {
	return fmt.Sprintf("hadoop configuration directory %s: %v", e.Path, e.Err)
}

func (e *ConfigDirectoryError) Unwrap() error {
	return e.Err
}

// ResourceLoadError is returned when a resource file exists but cannot be
// read or parsed. Resources merged before it stay merged.
type ResourceLoadError struct {
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("load resource %s: %v", e.Path, e.Err)
}

func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}
