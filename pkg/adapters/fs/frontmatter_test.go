package fs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		yaml   string
		offset int
		ok     bool
	}{
		{"LF", "---\na: 1\n---\nbody", "a: 1\n", 13, true},
		{"CRLF", "---\r\na: 1\r\n---\r\nbody", "a: 1\r\n", 16, true},
		{"Closing At EOF", "---\na: 1\n---", "a: 1\n", 12, true},
		{"Empty Block", "---\n---\nbody", "", 8, true},
		{"Unclosed", "---\na: 1\nbody", "", 0, false},
		{"Not At Start", "text\n---\na: 1\n---\n", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, off, ok := splitFrontmatter([]byte(tt.in))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.offset, off)
			assert.Equal(t, tt.yaml, string(y))
		})
	}
}

func TestParseFrontmatterNotMapping(t *testing.T) {
	meta, off, err := parseFrontmatter([]byte("---\n- a\n- b\n---\nbody"))
	assert.Error(t, err)
	assert.Empty(t, meta)
	assert.Equal(t, 16, off)
}
