package sky

import (
	"errors"
	"fmt"
)

// ErrInvalidObserver is returned for coordinates that cannot describe a
// place on Earth.
var ErrInvalidObserver = errors.New("invalid observer")

// ComputationError reports an ephemeris failure for one object. The whole
// query fails with it; no partial result is returned.
type ComputationError struct {
	Object string
	Err    error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computing %s: %v", e.Object, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
