package engagement

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the primary post (or parent, for listings)
	// does not exist
	ErrNotFound = errors.New("post not found")

	// ErrInvalidArgument indicates a malformed identifier, a non-positive
	// page number or an unsupported child kind. Requests failing this way
	// are rejected before any store access.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable indicates the entity store failed or timed out
	// mid-aggregation. The whole call fails; no partial result is returned.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func invalidArgf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
