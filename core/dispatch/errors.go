package dispatch

import (
	"errors"

	"github.com/floodops/dispatch/core/store"
)

// ErrInvalidInput is returned when a caller-supplied value is out of range or
// a required field is missing.
var ErrInvalidInput = errors.New("invalid input")

// Store-level sentinels re-exported so callers can match on a single package.
var (
	ErrNotFound                = store.ErrNotFound
	ErrUnitNoLongerAvailable   = store.ErrUnitNoLongerAvailable
	ErrIncidentAlreadyAssigned = store.ErrIncidentAlreadyAssigned
)
