package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-03 is a Wednesday.
var wednesday = time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC)

func TestNatural_ISODates(t *testing.T) {
	p := New()

	got, ok := p.ParseStrict("2018-08-21", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2018, time.August, 21, 0, 0, 0, 0, time.UTC), got)

	got, ok = p.ParseStrict("Shipped 2018-08-21T23:12 to prod", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2018, time.August, 21, 23, 12, 0, 0, time.UTC), got)

	_, ok = p.ParseStrict("2018-02-30", wednesday)
	assert.False(t, ok, "impossible calendar dates are rejected")
}

func TestNatural_ExplicitDates(t *testing.T) {
	p := New()
	want := time.Date(2018, time.August, 21, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		text  string
		match string
	}{
		{"Shipped on August 21, 2018.", "August 21, 2018"},
		{"Shipped on Aug 21st 2018.", "Aug 21st 2018"},
		{"Shipped on 21 August 2018.", "21 August 2018"},
		{"Shipped on 21st of August, 2018.", "21st of August, 2018"},
		{"Shipped on 08/21/2018.", "08/21/2018"},
		{"Shipped on 21/08/2018.", "21/08/2018"},
		{"Shipped on 2018/08/21.", "2018/08/21"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			matches := p.Parse(tt.text, wednesday)
			require.Len(t, matches, 1)
			assert.Equal(t, tt.match, matches[0].Text)
			assert.Equal(t, want, matches[0].Time)
			assert.Equal(t, tt.match, tt.text[matches[0].Index:matches[0].Index+len(matches[0].Text)])
		})
	}
}

func TestNatural_ImpossibleDates(t *testing.T) {
	p := New()

	for _, text := range []string{"2018-02-30", "February 30, 2018", "13/13/2018", "2018/02/30", "2018-08-21T25:00"} {
		assert.Empty(t, p.Parse(text, wednesday), text)
	}
}

func TestNatural_DateWithClock(t *testing.T) {
	p := New()

	matches := p.Parse("Launch August 21, 2018 at 5pm", wednesday)
	require.Len(t, matches, 1)
	assert.Equal(t, "August 21, 2018 at 5pm", matches[0].Text)
	assert.Equal(t, time.Date(2018, time.August, 21, 17, 0, 0, 0, time.UTC), matches[0].Time)
}

func TestNatural_RelativePeriods(t *testing.T) {
	p := New()

	tests := []struct {
		text string
		want time.Time
	}{
		{"next week", wednesday.AddDate(0, 0, 7)},
		{"Retro last week", wednesday.AddDate(0, 0, -7)},
		{"Planning next month", time.Date(2024, time.February, 3, 9, 0, 0, 0, time.UTC)},
		{"Audit last year", time.Date(2023, time.January, 3, 9, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := p.ParseStrict(tt.text, wednesday)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	// A weekday owns the period phrase that follows it.
	matches := p.Parse("Demo on Friday next week", wednesday)
	require.Len(t, matches, 1)
	assert.Equal(t, time.Friday, matches[0].Time.Weekday())
}

func TestNatural_ScanContinuesPastUnresolvedPhrase(t *testing.T) {
	p := New()

	// "August 2018" is recognized by the month rule but never resolved.
	matches := p.Parse("Budget for August 2018, review on Friday", wednesday)
	require.Len(t, matches, 1)
	assert.Equal(t, "Friday", matches[0].Text)
	assert.Equal(t, time.Friday, matches[0].Time.Weekday())
}

func TestNatural_Weekday(t *testing.T) {
	p := New()

	got, ok := p.ParseStrict("Meeting on Friday [author:: Alice]", wednesday)
	require.True(t, ok)
	assert.Equal(t, time.Friday, got.Weekday())
	assert.True(t, got.After(wednesday))
	assert.True(t, got.Before(wednesday.AddDate(0, 0, 7)))
}

func TestNatural_NoDate(t *testing.T) {
	p := New()

	for _, text := range []string{"", "   ", "Just some prose without any date."} {
		_, ok := p.ParseStrict(text, wednesday)
		assert.False(t, ok, text)
		assert.Empty(t, p.Parse(text, wednesday), text)
	}
}

func TestNatural_ParseOrdersByAppearance(t *testing.T) {
	p := New()

	text := "Kickoff 2018-08-21, review 2018-09-05."
	matches := p.Parse(text, wednesday)
	require.Len(t, matches, 2)
	assert.Equal(t, "2018-08-21", matches[0].Text)
	assert.Equal(t, "2018-09-05", matches[1].Text)
	assert.Less(t, matches[0].Index, matches[1].Index)
	assert.Equal(t, matches[1].Text, text[matches[1].Index:matches[1].Index+len(matches[1].Text)])
}

type countingParser struct {
	calls int
}

func (c *countingParser) Parse(text string, anchor time.Time) []Match {
	c.calls++
	return []Match{{Index: 0, Text: text, Time: anchor}}
}

func (c *countingParser) ParseStrict(text string, anchor time.Time) (time.Time, bool) {
	c.calls++
	return anchor, text != ""
}

func TestCached(t *testing.T) {
	next := &countingParser{}
	c, err := NewCached(next, 8)
	require.NoError(t, err)

	c.Parse("a", wednesday)
	c.Parse("a", wednesday)
	assert.Equal(t, 1, next.calls)

	// A different anchor is a different question.
	c.Parse("a", wednesday.Add(time.Hour))
	assert.Equal(t, 2, next.calls)

	got, ok := c.ParseStrict("a", wednesday)
	require.True(t, ok)
	assert.Equal(t, wednesday, got)
	_, _ = c.ParseStrict("a", wednesday)
	assert.Equal(t, 3, next.calls)

	_, ok = c.ParseStrict("", wednesday)
	assert.False(t, ok)
	_, ok = c.ParseStrict("", wednesday)
	assert.False(t, ok)
	assert.Equal(t, 4, next.calls)
	assert.Equal(t, 4, c.Len())
}

func TestCached_ReturnsCopies(t *testing.T) {
	c, err := NewCached(New(), 8)
	require.NoError(t, err)

	first := c.Parse("2018-08-21", wednesday)
	require.Len(t, first, 1)
	first[0].Text = "changed"
	_ = append(first, Match{Text: "extra"})

	again := c.Parse("2018-08-21", wednesday)
	require.Len(t, again, 1)
	assert.Equal(t, "2018-08-21", again[0].Text)
}
