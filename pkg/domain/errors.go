package domain

import "errors"

// ErrSurfaceNotFound is returned when a surface ID cannot be found in the store.
var ErrSurfaceNotFound = errors.New("surface not found")
