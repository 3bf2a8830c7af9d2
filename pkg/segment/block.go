// Package segment cuts a document body into candidate timeline entries and keeps
// the ones that carry a date.
package segment

import (
	"strings"
)

// Language is the fence tag that marks a timeline directive block.
const Language = "timeline"

const fence = "```"

// Block is a fenced control block as it appears in a document.
type Block struct {
	Language string
	Body     string
}

// Source reconstructs the verbatim text of the block: fence, language tag, body, fence.
func (b Block) Source() string {
	if b.Body == "" {
		return fence + b.Language + "\n" + fence
	}
	return fence + b.Language + "\n" + b.Body + "\n" + fence
}

// FindBlock returns the first fenced block tagged with lang. The body excludes the
// newline before the closing fence.
func FindBlock(text, lang string) (Block, bool) {
	text = normalizeNewlines(text)
	opening := fence + lang + "\n"

	from := 0
	for {
		i := strings.Index(text[from:], opening)
		if i < 0 {
			return Block{}, false
		}
		start := from + i
		// The fence must open its own line.
		if start > 0 && text[start-1] != '\n' {
			from = start + len(opening)
			continue
		}

		bodyStart := start + len(opening)
		if strings.HasPrefix(text[bodyStart:], fence) {
			return Block{Language: lang}, true
		}
		end := strings.Index(text[bodyStart:], "\n"+fence)
		if end < 0 {
			return Block{}, false
		}
		return Block{Language: lang, Body: text[bodyStart : bodyStart+end]}, true
	}
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
