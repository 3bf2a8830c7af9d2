package timeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/aretw0/timeline/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func labels(g Grouped) []string {
	var out []string
	for _, m := range g.Months {
		out = append(out, m.Label)
	}
	return out
}

func TestGroup_TwoMonths(t *testing.T) {
	events := []Event{
		{Date: date(2018, time.September, 5, 0), Details: "second"},
		{Date: date(2018, time.August, 21, 0), Details: "first"},
	}

	g := Group(events, core.Ascending)

	require.Equal(t, []string{"August, 2018", "September, 2018"}, labels(g))
	require.Len(t, g.Months[0].Days, 1)
	require.Len(t, g.Months[1].Days, 1)
	assert.Equal(t, "21, Tuesday", g.Months[0].Days[0].Label)
	assert.Equal(t, "5, Wednesday", g.Months[1].Days[0].Label)
	assert.Equal(t, "first", g.Months[0].Days[0].Events[0].Details)
	assert.Equal(t, "second", g.Months[1].Days[0].Events[0].Details)
}

func TestGroup_Descending(t *testing.T) {
	events := []Event{
		{Date: date(2018, time.August, 21, 9)},
		{Date: date(2018, time.September, 5, 0)},
		{Date: date(2018, time.August, 21, 17)},
		{Date: date(2018, time.August, 22, 0)},
	}

	g := Group(events, core.Descending)

	assert.Equal(t, core.Descending, g.Order)
	assert.Equal(t, []string{"September, 2018", "August, 2018"}, labels(g))
	aug := g.Months[1]
	require.Len(t, aug.Days, 2)
	assert.Equal(t, "22, Wednesday", aug.Days[0].Label)
	assert.Equal(t, "21, Tuesday", aug.Days[1].Label)
	assert.Equal(t, 17, aug.Days[1].Events[0].Date.Hour())
	assert.Equal(t, 9, aug.Days[1].Events[1].Date.Hour())
}

func TestGroup_StableWithinSameInstant(t *testing.T) {
	at := date(2018, time.August, 21, 0)
	events := []Event{
		{Date: at, Details: "a"},
		{Date: at, Details: "b"},
		{Date: at, Details: "c"},
	}

	for _, order := range []core.SortOrder{core.Ascending, core.Descending} {
		g := Group(events, order)
		var got []string
		for _, e := range g.Events() {
			got = append(got, e.Details)
		}
		assert.Equal(t, []string{"a", "b", "c"}, got, order)
	}
}

func TestGroup_YearBoundary(t *testing.T) {
	// Same month/day label in different years must not be merged or misordered.
	events := []Event{
		{Date: date(2019, time.January, 1, 0), Details: "2019"},
		{Date: date(2018, time.January, 1, 0), Details: "2018"},
		{Date: date(2018, time.December, 31, 0), Details: "eve"},
	}

	g := Group(events, core.Ascending)
	assert.Equal(t, []string{"January, 2018", "December, 2018", "January, 2019"}, labels(g))

	g = Group(events, core.Descending)
	assert.Equal(t, []string{"January, 2019", "December, 2018", "January, 2018"}, labels(g))
}

func TestGroup_MonotonicProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := date(2017, time.January, 1, 0)

	for round := 0; round < 20; round++ {
		var events []Event
		for i := 0; i < 50; i++ {
			events = append(events, Event{Date: base.Add(time.Duration(rng.Intn(3*365*24)) * time.Hour)})
		}

		asc := Group(events, core.Ascending).Events()
		require.Len(t, asc, len(events))
		for i := 1; i < len(asc); i++ {
			assert.False(t, asc[i].Date.Before(asc[i-1].Date))
		}

		desc := Group(events, core.Descending).Events()
		require.Len(t, desc, len(events))
		for i := 1; i < len(desc); i++ {
			assert.False(t, desc[i].Date.After(desc[i-1].Date))
		}
	}
}

func TestGroup_DoesNotMutateInput(t *testing.T) {
	events := []Event{
		{Date: date(2018, time.September, 5, 0)},
		{Date: date(2018, time.August, 21, 0)},
	}
	_ = Group(events, core.Ascending)
	assert.Equal(t, time.September, events[0].Date.Month())
}

func TestGroup_Empty(t *testing.T) {
	g := Group(nil, "")
	assert.Empty(t, g.Months)
	assert.Equal(t, core.Ascending, g.Order)
	assert.Equal(t, 0, g.Len())
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("Success")
	assert.True(t, ok)
	assert.Equal(t, StatusSuccess, s)

	s, ok = ParseStatus("purple")
	assert.False(t, ok)
	assert.Equal(t, StatusNone, s)
}
