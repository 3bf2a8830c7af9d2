package timeline

import (
	"strings"

	"github.com/aretw0/timeline/pkg/annotate"
)

const timeLayout = "15:04:05"

// Card is the display form of an event: fields set on the event win, inline
// annotations in the details fill the rest, and a leading markdown header becomes
// the title when nothing else provides one.
type Card struct {
	Time   string   `json:"time"`
	Title  string   `json:"title,omitempty"`
	Icon   string   `json:"icon,omitempty"`
	Status Status   `json:"status,omitempty"`
	Author string   `json:"author,omitempty"`
	Lines  []string `json:"lines"`
}

// Present derives the card of an event.
func Present(e Event) Card {
	meta, cleaned := annotate.ExtractAndClean(e.Details)

	var lines []string
	for _, l := range strings.Split(cleaned, "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}

	var header string
	if len(lines) > 0 {
		if h, ok := annotate.MarkdownHeader(lines[0]); ok {
			header = h
			lines = lines[1:]
		}
	}

	c := Card{
		Time:   e.Date.Format(timeLayout),
		Title:  firstNonEmpty(e.Title, meta["title"], header),
		Icon:   firstNonEmpty(e.Icon, meta["icon"]),
		Author: firstNonEmpty(e.Author, meta["author"]),
		Status: e.Status,
		Lines:  lines,
	}
	if c.Status == StatusNone {
		c.Status, _ = ParseStatus(meta["status"])
	}
	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
