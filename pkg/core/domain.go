// Package core holds the domain types shared by every stage of a timeline build
// and the ports through which the build reaches the document store.
package core

import "time"

// Document is a snapshot of a note owned by the document store.
// The core only reads it.
type Document struct {
	ID      string
	Content string
	// BodyOffset is the byte offset in Content where the leading metadata block ends.
	BodyOffset int
	Metadata   Metadata
	Created    time.Time
}

// Body returns the content that follows the metadata block.
func (d Document) Body() string {
	if d.BodyOffset <= 0 {
		return d.Content
	}
	if d.BodyOffset >= len(d.Content) {
		return ""
	}
	return d.Content[d.BodyOffset:]
}

// EventType represents the type of change in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the store.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}
