package core

import "errors"

// Common errors.
var (
	ErrNotFound            = errors.New("document not found")
	ErrUnsupportedDocument = errors.New("document is not a text document")
	ErrInvalidSortOrder    = errors.New("invalid sort order")
)
