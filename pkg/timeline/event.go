// Package timeline holds timeline events and arranges them chronologically into
// month and day buckets for display.
package timeline

import (
	"strings"
	"time"
)

// Status colors an event.
type Status string

const (
	StatusNone    Status = ""
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusInfo    Status = "info"
	StatusWarning Status = "warning"
)

// ParseStatus accepts the four known statuses, case-insensitive.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusSuccess, StatusFailure, StatusInfo, StatusWarning:
		return st, true
	}
	return StatusNone, false
}

// Event is one dated entry of a timeline. Events are values and are not modified
// after they are created.
type Event struct {
	Date    time.Time `json:"date"`
	Details string    `json:"details"`
	Title   string    `json:"title,omitempty"`
	Icon    string    `json:"icon,omitempty"`
	Status  Status    `json:"status,omitempty"`
	Author  string    `json:"author,omitempty"`
}
