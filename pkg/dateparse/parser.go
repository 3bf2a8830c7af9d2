// Package dateparse finds dates written in natural language.
//
// The rest of the module only depends on the Parser interface; Natural is the
// default implementation and Cached memoizes any Parser.
package dateparse

import (
	"sort"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Match is one date found in a text.
type Match struct {
	Index int       `json:"index"` // byte offset of the match in the text
	Text  string    `json:"text"`  // matched source text
	Time  time.Time `json:"time"`  // resolved instant
}

// Parser is the date-parsing capability.
type Parser interface {
	// Parse returns every date found in text, in order of appearance.
	// Relative phrases are interpreted against anchor.
	Parse(text string, anchor time.Time) []Match
	// ParseStrict returns the first date found in text.
	ParseStrict(text string, anchor time.Time) (time.Time, bool)
}

// clockWindow bounds how far past an explicit date a time of day is looked for.
const clockWindow = 24

// Natural recognizes explicit calendar dates (2018-08-21, 08/21/2018,
// August 21, 2018) and English natural-language phrases ("Friday",
// "next week", "3 days ago", "August 21st").
type Natural struct {
	w     *when.Parser
	rules []rules.Rule
}

// New creates a Natural parser with the English and common rule sets.
func New() *Natural {
	rs := append(append([]rules.Rule{}, en.All...), common.All...)
	w := when.New(nil)
	w.Add(rs...)
	return &Natural{w: w, rules: rs}
}

// Parse implements Parser.
func (n *Natural) Parse(text string, anchor time.Time) []Match {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// Explicit forms are masked once matched so the phrase rules do not read
	// them again (e.g. "08-21" as day-month or "02-30" as a clock time).
	masked := []byte(text)
	var matches []Match
	for _, p := range passes {
		last := 0
		for _, idx := range p.re.FindAllSubmatchIndex(masked, -1) {
			start, end := idx[0], idx[1]
			if start < last {
				continue
			}
			if p.skip != nil && p.skip(string(masked[:start])) {
				continue
			}
			groups := make([]string, len(idx)/2)
			for g := range groups {
				if idx[2*g] >= 0 {
					groups[g] = string(masked[idx[2*g]:idx[2*g+1]])
				}
			}
			t, clock, ok := p.resolve(groups, anchor)
			if ok && !clock {
				end, t = n.attachClock(masked, end, t)
			}
			for i := start; i < end; i++ {
				masked[i] = ' '
			}
			last = end
			if ok {
				matches = append(matches, Match{Index: start, Text: text[start:end], Time: t})
			}
		}
	}
	matches = append(matches, n.phraseMatches(string(masked), text, anchor)...)

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Index < matches[j].Index })
	return matches
}

// ParseStrict implements Parser.
func (n *Natural) ParseStrict(text string, anchor time.Time) (time.Time, bool) {
	matches := n.Parse(text, anchor)
	if len(matches) == 0 {
		return time.Time{}, false
	}
	return matches[0].Time, true
}

// attachClock extends a date-only match with a time of day that directly
// follows it ("August 21, 2018 at 5pm").
func (n *Natural) attachClock(masked []byte, end int, day time.Time) (int, time.Time) {
	window := string(masked[end:min(end+clockWindow, len(masked))])
	r, err := n.w.Parse(window, day)
	if err != nil || r == nil || r.Time.Equal(day) || !clockLead.MatchString(window[:r.Index]) {
		return end, day
	}
	if y, m, d := r.Time.Date(); y != day.Year() || m != day.Month() || d != day.Day() {
		return end, day
	}
	return end + r.Index + len(strings.TrimRight(r.Text, " \t")), r.Time
}

// phraseMatches runs the rule engine repeatedly over the rest of the text, since
// each pass yields a single merged result.
func (n *Natural) phraseMatches(masked, original string, anchor time.Time) []Match {
	var out []Match
	offset := 0
	for offset < len(masked) {
		r, err := n.w.Parse(masked[offset:], anchor)
		if err != nil {
			break
		}
		if r == nil {
			// A cluster that no rule could apply hides any later date; step over it.
			next, ok := n.skipUnapplied(masked[offset:])
			if !ok {
				break
			}
			offset += next
			continue
		}
		start := offset + r.Index
		end := start + len(r.Text)
		if end <= offset || end > len(original) {
			break
		}
		raw := original[start:end]
		trimmed := strings.TrimSpace(raw)
		out = append(out, Match{
			Index: start + strings.Index(raw, trimmed),
			Text:  trimmed,
			Time:  r.Time,
		})
		offset = end
	}
	return out
}

// skipUnapplied returns the offset just past the leftmost rule match in text.
func (n *Natural) skipUnapplied(text string) (int, bool) {
	var first *rules.Match
	for _, rule := range n.rules {
		if m := rule.Find(text); m != nil && (first == nil || m.Left < first.Left) {
			first = m
		}
	}
	if first == nil || first.Right <= 0 {
		return 0, false
	}
	return first.Right, true
}
