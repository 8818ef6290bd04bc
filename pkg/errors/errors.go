package errors

import "errors"

// ErrConflict signals that a write lost to a concurrent modification.
var ErrConflict = errors.New("record was modified by another operation, retry")
