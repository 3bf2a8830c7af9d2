// Package render turns build results into terminal text or JSON.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/aretw0/timeline/pkg/pipeline"
	"github.com/aretw0/timeline/pkg/timeline"
)

// NoDates is printed when a document mentions no date at all.
const NoDates = "No dates in markdown file."

var (
	styleMonth  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleCount  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleDay    = lipgloss.NewStyle().Bold(true)
	styleTime   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleTitle  = lipgloss.NewStyle().Bold(true)
	styleAuthor = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))

	statusStyles = map[timeline.Status]lipgloss.Style{
		timeline.StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		timeline.StatusFailure: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		timeline.StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		timeline.StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
)

// Text writes the grouped timeline as indented blocks: a header per month with
// its entry count, a header per day, then one card per event.
func Text(w io.Writer, g timeline.Grouped) error {
	var b strings.Builder
	for i, m := range g.Months {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styleMonth.Render(m.Label))
		b.WriteString(" ")
		b.WriteString(styleCount.Render(entries(len(m.Days))))
		b.WriteString("\n")

		for _, d := range m.Days {
			b.WriteString("  ")
			b.WriteString(styleDay.Render(d.Label))
			b.WriteString("\n")
			for _, e := range d.Events {
				writeCard(&b, timeline.Present(e))
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeCard(b *strings.Builder, c timeline.Card) {
	marker := "●"
	if st, ok := statusStyles[c.Status]; ok {
		marker = st.Render(marker)
	}

	head := []string{marker, styleTime.Render(c.Time)}
	if c.Icon != "" {
		head = append(head, c.Icon)
	}
	if c.Title != "" {
		head = append(head, styleTitle.Render(c.Title))
	}
	b.WriteString("    ")
	b.WriteString(strings.Join(head, " "))
	b.WriteString("\n")

	for _, l := range c.Lines {
		b.WriteString("      ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	if c.Author != "" {
		b.WriteString("      ")
		b.WriteString(styleAuthor.Render("- " + c.Author))
		b.WriteString("\n")
	}
}

func entries(n int) string {
	return fmt.Sprintf("%d Entries", n)
}

// Dates writes one line per date found, or NoDates.
func Dates(w io.Writer, list *pipeline.DateList) error {
	if list == nil || len(list.Dates) == 0 {
		_, err := fmt.Fprintln(w, NoDates)
		return err
	}
	for _, m := range list.Dates {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", m.Time.Format("2006-01-02 15:04:05"), m.Text); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes v indented.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ResultJSON is the JSON document of a build: the grouped timeline plus the
// presentation card of every event.
type ResultJSON struct {
	*pipeline.Result
	Cards []timeline.Card `json:"cards"`
}

// NewResultJSON attaches the cards of every event to a result.
func NewResultJSON(r *pipeline.Result) ResultJSON {
	out := ResultJSON{Result: r, Cards: []timeline.Card{}}
	if r == nil {
		return out
	}
	for _, e := range r.Timeline.Events() {
		out.Cards = append(out.Cards, timeline.Present(e))
	}
	return out
}
