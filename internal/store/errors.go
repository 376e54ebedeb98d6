package store

import "errors"

// ErrNotFound is returned when a drop or token id has no row.
var ErrNotFound = errors.New("not found")
