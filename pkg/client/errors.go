package client

import (
	"context"
	"errors"
	"fmt"
)

// TransportError reports a failed or rejected collaborator request. Status is
// set for non-2xx responses; Err wraps network and decoding failures,
// preserving context.Canceled so aborted requests remain recognizable.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("client: %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("client: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAborted reports whether err stems from a cancelled or expired context,
// i.e. an intentionally abandoned request rather than a failure.
func IsAborted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
