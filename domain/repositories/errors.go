package repositories

import "errors"

// ErrRecordNotFound is returned by single-row lookups when no row matches.
var ErrRecordNotFound = errors.New("record not found")
