package hadoopconf

import "errors"

// ErrBadRoot is returned when a resource's top-level element is not
// <configuration>.
var ErrBadRoot = errors.New("top-level element is not <configuration>")

// ErrOutsideRoot is returned when a resource has markup or text before or
// after its root element.
var ErrOutsideRoot = errors.New("content outside the root element")
