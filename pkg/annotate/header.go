package annotate

import "regexp"

var headerPattern = regexp.MustCompile(`^(#+)\s+(.*)$`)

// MarkdownHeader returns the text of a markdown header line ("## Title" -> "Title").
func MarkdownHeader(line string) (string, bool) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[2], true
}
