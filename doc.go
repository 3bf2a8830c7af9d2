// Package timeline is the Composition Root for the timeline builder.
//
// It turns the free-form text of a markdown note into a chronological timeline:
// the note is split into entries, each entry is dated by the first date phrase it
// contains, and dated entries are grouped by month and day.
//
// Relative phrases ("next friday", "tomorrow") are interpreted against a reference
// date, resolved in order from:
//
//   - a `reference:` directive in the note's ```timeline block;
//   - a frontmatter property, by exact key or by pattern;
//   - the file's creation time.
//
// Usage:
//
//	svc, err := timeline.New("./vault", timeline.WithLogger(logger))
//
//	res, err := svc.Build(ctx, "journal/2018.md", nil)
//	for _, month := range res.Timeline.Months {
//		fmt.Println(month.Label)
//	}
package timeline
