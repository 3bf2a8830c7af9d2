package core

import (
	"fmt"
	"strings"
)

// SortOrder is the chronological direction of a timeline.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortOrder accepts asc/desc and ascending/descending, case-insensitive.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
}

// Delimiter selects how a document body is split into segments.
type Delimiter int

const (
	BlankLine Delimiter = iota
	SingleLine
)

// Separator returns the literal string segments are split on.
func (d Delimiter) Separator() string {
	if d == SingleLine {
		return "\n"
	}
	return "\n\n"
}

func (d Delimiter) String() string {
	if d == SingleLine {
		return "singleLine"
	}
	return "blankLine"
}

// Settings is the configuration of a build. It is treated as immutable: callers
// replace it wholesale instead of mutating fields in place.
type Settings struct {
	UseReferencePattern   bool
	ReferenceKeyOrPattern string
	DefaultSortOrder      SortOrder
	Delimiter             Delimiter
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		UseReferencePattern:   false,
		ReferenceKeyOrPattern: "created",
		DefaultSortOrder:      Ascending,
		Delimiter:             BlankLine,
	}
}
