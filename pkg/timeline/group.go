package timeline

import (
	"sort"
	"time"

	"github.com/aretw0/timeline/pkg/core"
)

const (
	monthLayout = "January, 2006"
	dayLayout   = "2, Monday"
)

// Day is a bucket of events that happened on the same calendar day.
type Day struct {
	Label  string    `json:"label"`
	Key    time.Time `json:"-"`
	Events []Event   `json:"events"`
}

// Month is a bucket of days in the same calendar month.
type Month struct {
	Label string    `json:"label"`
	Key   time.Time `json:"-"`
	Days  []Day     `json:"days"`
}

// Grouped is a timeline arranged as month -> day -> events.
type Grouped struct {
	Order  core.SortOrder `json:"order"`
	Months []Month        `json:"months"`
}

// Events returns every event in display order.
func (g Grouped) Events() []Event {
	var out []Event
	for _, m := range g.Months {
		for _, d := range m.Days {
			out = append(out, d.Events...)
		}
	}
	return out
}

// Len returns the number of events.
func (g Grouped) Len() int {
	n := 0
	for _, m := range g.Months {
		for _, d := range m.Days {
			n += len(d.Events)
		}
	}
	return n
}

// MonthLabel formats the bucket label of a month ("August, 2018").
func MonthLabel(t time.Time) string { return t.Format(monthLayout) }

// DayLabel formats the bucket label of a day within its month ("21, Tuesday").
func DayLabel(t time.Time) string { return t.Format(dayLayout) }

// Group sorts events by date in the given order and buckets them by month and day.
// Events sharing a date keep their input order. Buckets carry the start of their
// month or day as a sort key, so ordering never depends on re-reading labels.
func Group(events []Event, order core.SortOrder) Grouped {
	sorted := make([]Event, len(events))
	copy(sorted, events)

	desc := order == core.Descending
	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})

	g := Grouped{Order: order}
	if !desc {
		g.Order = core.Ascending
	}
	months := make(map[string]int)
	days := make(map[string]map[string]int)

	for _, e := range sorted {
		ml, dl := MonthLabel(e.Date), DayLabel(e.Date)

		mi, ok := months[ml]
		if !ok {
			mi = len(g.Months)
			months[ml] = mi
			days[ml] = make(map[string]int)
			g.Months = append(g.Months, Month{Label: ml, Key: monthStart(e.Date)})
		}

		m := &g.Months[mi]
		di, ok := days[ml][dl]
		if !ok {
			di = len(m.Days)
			days[ml][dl] = di
			m.Days = append(m.Days, Day{Label: dl, Key: dayStart(e.Date)})
		}
		m.Days[di].Events = append(m.Days[di].Events, e)
	}

	less := func(a, b time.Time) bool {
		if desc {
			return a.After(b)
		}
		return a.Before(b)
	}
	sort.SliceStable(g.Months, func(i, j int) bool { return less(g.Months[i].Key, g.Months[j].Key) })
	for i := range g.Months {
		ds := g.Months[i].Days
		sort.SliceStable(ds, func(a, b int) bool { return less(ds[a].Key, ds[b].Key) })
	}

	return g
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
