package domain

import (
	"errors"
	"fmt"
)

// ErrPublishDisabled is returned by publish operations when no bucket is configured.
var ErrPublishDisabled = errors.New("publishing is disabled (set S3_ENABLED=true)")

// PathError reports a source or destination directory that cannot be used.
// It is raised before any file is processed.
type PathError struct {
	Role string // "source" or "destination"
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s directory %q: %v", e.Role, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// DecodeError reports a source entry that could not be read as an image.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IOError reports a filesystem failure for one entry. Op is one of
// "read", "encode" or "write".
type IOError struct {
	Op   string
	Name string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
