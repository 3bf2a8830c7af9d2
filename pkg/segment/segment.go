package segment

import (
	"strings"
	"time"

	"github.com/aretw0/timeline/pkg/core"
	"github.com/aretw0/timeline/pkg/dateparse"
	"github.com/aretw0/timeline/pkg/timeline"
)

// Split drops the leading metadata block (everything before bodyOffset), removes
// the first verbatim occurrence of the directive block source, and splits the rest
// on the delimiter. Pieces are trimmed; empty pieces are kept and left for Assign
// to discard.
func Split(content string, bodyOffset int, directiveSource string, mode core.Delimiter) []string {
	if bodyOffset < 0 {
		bodyOffset = 0
	}
	if bodyOffset > len(content) {
		bodyOffset = len(content)
	}
	body := normalizeNewlines(content[bodyOffset:])

	if directiveSource != "" {
		body = strings.Replace(body, normalizeNewlines(directiveSource), "", 1)
	}

	pieces := strings.Split(body, mode.Separator())
	for i, p := range pieces {
		pieces[i] = strings.TrimSpace(p)
	}
	return pieces
}

// Assign dates each segment against the reference and returns the dated ones as
// events, in input order. A segment gets at most one date, the parser's first
// match; segments without a date are dropped.
func Assign(segments []string, reference time.Time, parser dateparse.Parser) []timeline.Event {
	var events []timeline.Event
	for _, s := range segments {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		date, ok := parser.ParseStrict(s, reference)
		if !ok {
			continue
		}
		events = append(events, timeline.Event{Date: date, Details: s})
	}
	return events
}
