package county

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoFactoryMatch is returned when a path has to be materialized but
	// no registered pattern matches it. Register a catch-all "**" pattern to
	// avoid it.
	ErrNoFactoryMatch = errors.New("no counter factory matches path")

	// ErrMalformedPath is returned when a delimited path contains an empty
	// segment.
	ErrMalformedPath = errors.New("malformed counter path")

	// ErrInvalidGranularity is returned when parsing an unknown granularity
	// name.
	ErrInvalidGranularity = errors.New("invalid granularity")
)

// A MalformedPathError describes which segment of a path could not be
// parsed.
type MalformedPathError struct {
	Path  string
	Index int // index of the empty segment
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("%s: %q has an empty segment at index %d",
		ErrMalformedPath, e.Path, e.Index)
}

// Unwrap lets errors.Is match ErrMalformedPath.
func (e *MalformedPathError) Unwrap() error { return ErrMalformedPath }

// Cause supports errors.Cause from github.com/pkg/errors.
func (e *MalformedPathError) Cause() error { return ErrMalformedPath }

func noFactoryMatch(path CounterKey) error {
	return errors.Wrapf(ErrNoFactoryMatch, "path %q", path.String())
}
