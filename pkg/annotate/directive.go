package annotate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/aretw0/timeline/pkg/core"
)

// Recognized directive keys.
const (
	DirectiveReference = "reference"
	DirectiveSort      = "sort"
)

// barePattern matches a bare "key: value" line. The colon must not be doubled.
var barePattern = regexp.MustCompile(`^\s*([A-Za-z][\w -]*?)\s*:([^:].*)?$`)

// Directives maps canonical keys to raw values parsed from a control block.
// Unrecognized keys are kept but unused.
type Directives map[string]string

// Reference returns the explicit anchor date string, if any.
func (d Directives) Reference() (string, bool) {
	v, ok := d[DirectiveReference]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Sort returns the sort override. ok is false when absent or not a valid order.
func (d Directives) Sort() (core.SortOrder, bool) {
	v, ok := d[DirectiveSort]
	if !ok {
		return "", false
	}
	order, err := core.ParseSortOrder(v)
	if err != nil {
		return "", false
	}
	return order, true
}

// Recognized reports whether at least one directive this package acts on is present.
func (d Directives) Recognized() bool {
	_, ref := d[DirectiveReference]
	_, srt := d[DirectiveSort]
	return ref || srt
}

type directiveHit struct {
	pos        int
	key, value string
}

// ExtractDirectives parses a control block. Each line is scanned on its own for
// bracketed "[key:: value]" annotations and a bare "key: value" pair; hits are applied
// left to right, so the last occurrence of a key wins, across lines and syntaxes.
// Empty input yields an empty set.
func ExtractDirectives(block string) Directives {
	out := make(Directives)
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSuffix(line, "\r")
		var hits []directiveHit

		// Blank out bracketed spans so the bare scan cannot see into them.
		masked := []byte(line)
		for _, m := range inlinePattern.FindAllStringSubmatchIndex(line, -1) {
			hits = append(hits, directiveHit{
				pos:   m[0],
				key:   line[m[2]:m[3]],
				value: line[m[4]:m[5]],
			})
			for i := m[0]; i < m[1]; i++ {
				masked[i] = ' '
			}
		}

		if m := barePattern.FindSubmatchIndex(masked); m != nil {
			hit := directiveHit{pos: m[2], key: string(masked[m[2]:m[3]])}
			if m[4] >= 0 {
				hit.value = string(masked[m[4]:m[5]])
			}
			hits = append(hits, hit)
		}

		sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
		for _, h := range hits {
			key := Normalize(h.key)
			if key == "" {
				continue
			}
			out[key] = strings.TrimSpace(h.value)
		}
	}
	return out
}
