package annotate

import (
	"testing"

	"github.com/aretw0/timeline/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"author", "author"},
		{"Author", "author"},
		{"Loss Type", "loss-type"},
		{"  Start \t Date ", "-start-date-"},
		{"ícon!", "con"},
		{"Loss\u00a0Type", "loss-type"},
		{"Start\u2003\u2003Date", "start-date"},
		{"already-normal-1", "already-normal-1"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := Normalize(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestExtractAndClean(t *testing.T) {
	t.Run("Single annotation", func(t *testing.T) {
		a, cleaned := ExtractAndClean("Meeting on Friday [author:: Alice]")
		assert.Equal(t, Annotations{"author": "Alice"}, a)
		assert.Equal(t, "Meeting on Friday Alice", cleaned)
	})

	t.Run("No annotations leaves text untouched", func(t *testing.T) {
		in := "Plain text\nwith [brackets] and key: value\n"
		a, cleaned := ExtractAndClean(in)
		assert.Empty(t, a)
		assert.Equal(t, in, cleaned)
	})

	t.Run("Last occurrence wins and keys are normalized", func(t *testing.T) {
		a, cleaned := ExtractAndClean("[Icon:: pencil] edit\n[icon::  star ]")
		assert.Equal(t, Annotations{"icon": "star"}, a)
		assert.Equal(t, "pencil edit\nstar", cleaned)
	})

	t.Run("Line breaks are preserved", func(t *testing.T) {
		_, cleaned := ExtractAndClean("# Job Edited\nProject Manager Marlyn\n[author:: Tyler]")
		assert.Equal(t, "# Job Edited\nProject Manager Marlyn\nTyler", cleaned)
	})

	t.Run("Cleaning is idempotent", func(t *testing.T) {
		inputs := []string{
			"[a:: b] and [c:: d]",
			"[a:: [b:: c]]",
			"x [status:: success] y [title:: Job Created]",
		}
		for _, in := range inputs {
			_, once := ExtractAndClean(in)
			again, twice := ExtractAndClean(once)
			assert.Empty(t, again, in)
			assert.Equal(t, once, twice, in)
		}
	})

	t.Run("Nested annotations", func(t *testing.T) {
		a, cleaned := ExtractAndClean("[a:: [b:: c]]")
		assert.Equal(t, Annotations{"a": "c", "b": "c"}, a)
		assert.Equal(t, "c", cleaned)
	})

	t.Run("Get normalizes the lookup key", func(t *testing.T) {
		a := Extract("[Loss Type:: A/C Leak]")
		v, ok := a.Get("Loss Type")
		require.True(t, ok)
		assert.Equal(t, "A/C Leak", v)
		assert.Equal(t, "A/C Leak", Clean("[Loss Type:: A/C Leak]"))
	})
}

func TestExtractDirectives(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Directives
	}{
		{
			name: "Bare syntax",
			in:   "sort: desc\nreference: 2024-01-01",
			want: Directives{"sort": "desc", "reference": "2024-01-01"},
		},
		{
			name: "Bracketed syntax",
			in:   "[sort:: asc]\n[reference:: last monday]",
			want: Directives{"sort": "asc", "reference": "last monday"},
		},
		{
			name: "Last occurrence wins across syntaxes",
			in:   "sort: asc\n[sort:: desc]",
			want: Directives{"sort": "desc"},
		},
		{
			name: "Left to right within a line",
			in:   "[sort:: desc] sort: asc",
			want: Directives{"sort": "asc"},
		},
		{
			name: "Values keep inner colons",
			in:   "reference: 2024-01-01T10:30",
			want: Directives{"reference": "2024-01-01T10:30"},
		},
		{
			name: "Unrecognized keys pass through",
			in:   "Theme Color: blue",
			want: Directives{"theme-color": "blue"},
		},
		{
			name: "Empty input",
			in:   "",
			want: Directives{},
		},
		{
			name: "Empty value",
			in:   "reference:",
			want: Directives{"reference": ""},
		},
		{
			name: "Double colon outside brackets is not bare syntax",
			in:   "author:: Tyler",
			want: Directives{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractDirectives(tc.in))
		})
	}
}

func TestDirectives_Accessors(t *testing.T) {
	d := ExtractDirectives("sort: Descending\nreference: 2024-01-01")
	assert.True(t, d.Recognized())

	order, ok := d.Sort()
	require.True(t, ok)
	assert.Equal(t, core.Descending, order)

	ref, ok := d.Reference()
	require.True(t, ok)
	assert.Equal(t, "2024-01-01", ref)

	d = ExtractDirectives("sort: sideways\nfoo: bar")
	_, ok = d.Sort()
	assert.False(t, ok)
	_, ok = d.Reference()
	assert.False(t, ok)

	assert.False(t, ExtractDirectives("foo: bar").Recognized())
}

func TestMarkdownHeader(t *testing.T) {
	h, ok := MarkdownHeader("## Job Edited")
	require.True(t, ok)
	assert.Equal(t, "Job Edited", h)

	_, ok = MarkdownHeader("#NoSpace")
	assert.False(t, ok)
	_, ok = MarkdownHeader("plain")
	assert.False(t, ok)
}
