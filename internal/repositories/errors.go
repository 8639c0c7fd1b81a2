package repositories

import "errors"

// ErrNotFound is returned when a referenced record does not exist.
// Implementations wrap it with context, so check with errors.Is.
var ErrNotFound = errors.New("record not found")
