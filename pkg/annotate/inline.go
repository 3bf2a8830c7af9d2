package annotate

import (
	"regexp"
	"strings"
)

// inlinePattern matches "[key:: value]". Neither part may contain brackets.
var inlinePattern = regexp.MustCompile(`\[([^\[\]]+?)::([^\[\]]*)\]`)

// Annotations maps canonical keys to trimmed values.
type Annotations map[string]string

// Get returns the value for a key after normalizing it.
func (a Annotations) Get(key string) (string, bool) {
	v, ok := a[Normalize(key)]
	return v, ok
}

// ExtractAndClean collects every inline annotation in text and returns the text with
// each annotation replaced by its bare value. Text outside annotations, line breaks
// included, is left untouched. Later occurrences of a key win.
//
// Cleaning runs to a fixpoint so that nested annotations such as "[a:: [b:: c]]"
// do not leave a new annotation behind.
func ExtractAndClean(text string) (Annotations, string) {
	found := make(Annotations)
	for {
		matches := inlinePattern.FindAllStringSubmatchIndex(text, -1)
		if len(matches) == 0 {
			return found, text
		}

		var b strings.Builder
		b.Grow(len(text))
		last := 0
		for _, m := range matches {
			key := Normalize(text[m[2]:m[3]])
			value := strings.TrimSpace(text[m[4]:m[5]])
			if key != "" {
				found[key] = value
			}
			b.WriteString(text[last:m[0]])
			b.WriteString(value)
			last = m[1]
		}
		b.WriteString(text[last:])
		text = b.String()
	}
}

// Extract returns only the annotations of text.
func Extract(text string) Annotations {
	a, _ := ExtractAndClean(text)
	return a
}

// Clean returns only the cleaned text.
func Clean(text string) string {
	_, cleaned := ExtractAndClean(text)
	return cleaned
}
