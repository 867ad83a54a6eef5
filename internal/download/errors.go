package download

import (
	"errors"
	"fmt"

	"github.com/maneth909/tubedl/internal/fetch"
)

// Kind classifies where in the orchestration a download failed
type Kind string

const (
	// KindResolve means the URL could not be resolved to media metadata
	KindResolve Kind = "resolution"

	// KindStreamSelect means no stream matched the requested constraints
	KindStreamSelect Kind = "stream selection"

	// KindIO means the byte transfer or a disk write failed
	KindIO Kind = "io"

	// KindTranscode means the audio conversion failed
	KindTranscode Kind = "transcode"
)

// ErrNoMatchingStream indicates no stream satisfied the requested
// resolution/container constraints.
var ErrNoMatchingStream = errors.New("no stream matches the requested constraints")

// Error wraps a download failure with its orchestration-stage kind. Use
// errors.As to recover it and decide on retry policy.
type Error struct {
	Kind Kind
	Err  error

	// permanent marks resolve failures that cannot succeed on retry
	// (restricted content, malformed URL).
	permanent bool
}

// Error returns the human-readable failure description
func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether retrying the same request could succeed.
// Only transient resolution (network) failures qualify; missing streams,
// disk failures, and codec failures are permanent.
func (e *Error) Retryable() bool {
	return e.Kind == KindResolve && !e.permanent
}

func resolveError(err error) error {
	return &Error{Kind: KindResolve, Err: err, permanent: fetch.IsPermanent(err)}
}

func selectionError(err error) error {
	return &Error{Kind: KindStreamSelect, Err: err}
}

func ioError(err error) error {
	return &Error{Kind: KindIO, Err: err}
}

func transcodeError(err error) error {
	return &Error{Kind: KindTranscode, Err: err}
}
