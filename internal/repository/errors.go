package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist in the store.
var ErrNotFound = errors.New("not found")

// UpstreamError reports a non-2xx response from the external store.
type UpstreamError struct {
	Op     string
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("store: %s returned status %d", e.Op, e.Status)
}
