package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/timeline/pkg/annotate"
	"github.com/aretw0/timeline/pkg/core"
	"github.com/aretw0/timeline/pkg/dateparse"
	"github.com/aretw0/timeline/pkg/pipeline"
	"github.com/aretw0/timeline/pkg/segment"
	"github.com/aretw0/timeline/pkg/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRepository implements core.Repository and core.Watchable in memory.
type MockRepository struct {
	docs   map[string]core.Document
	events chan core.Event
	err    error
}

func NewMockRepository(docs ...core.Document) *MockRepository {
	m := &MockRepository{
		docs:   make(map[string]core.Document),
		events: make(chan core.Event, 8),
	}
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return m
}

func (m *MockRepository) Get(ctx context.Context, id string) (core.Document, error) {
	if m.err != nil {
		return core.Document{}, m.err
	}
	doc, ok := m.docs[id]
	if !ok {
		return core.Document{}, core.ErrNotFound
	}
	return doc, nil
}

func (m *MockRepository) List(ctx context.Context, pattern string) ([]string, error) {
	var ids []string
	for id := range m.docs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockRepository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	return m.events, nil
}

func (m *MockRepository) Canonical(id string) string {
	return id
}

var created = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

const header = "---\ncreated: 2018-08-21\n---\n"

func newDoc(id, content string) core.Document {
	offset := 0
	var meta core.Metadata
	if len(content) >= len(header) && content[:len(header)] == header {
		offset = len(header)
		meta = core.Metadata{{Key: "created", Value: core.StringValue("2018-08-21")}}
	}
	return core.Document{ID: id, Content: content, BodyOffset: offset, Metadata: meta, Created: created}
}

func newService(repo core.Repository, settings core.Settings) *pipeline.Service {
	return pipeline.NewService(repo, dateparse.New(), settings)
}

func details(g timeline.Grouped) []string {
	var out []string
	for _, e := range g.Events() {
		out = append(out, e.Details)
	}
	return out
}

func TestBuild_DocumentBody(t *testing.T) {
	content := header +
		"Some intro without dates.\n\n" +
		"2018-09-05 Carpet extraction [author:: Carol]\n\n" +
		"2018-08-21 Job created\n[author:: Tyler]\n"
	svc := newService(NewMockRepository(newDoc("job.md", content)), core.DefaultSettings())

	res, err := svc.Build(context.Background(), "job.md", nil)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, pipeline.SourceDocument, res.Source)
	assert.Equal(t, core.Ascending, res.Order)
	assert.Equal(t, time.Date(2018, time.August, 21, 0, 0, 0, 0, time.UTC), res.Reference)
	assert.Equal(t, []string{
		"2018-08-21 Job created\n[author:: Tyler]",
		"2018-09-05 Carpet extraction [author:: Carol]",
	}, details(res.Timeline))
	require.Len(t, res.Timeline.Months, 2)
	assert.Equal(t, "August, 2018", res.Timeline.Months[0].Label)
	assert.Equal(t, "September, 2018", res.Timeline.Months[1].Label)
}

func TestBuild_DirectiveBlockInDocument(t *testing.T) {
	content := header +
		"```timeline\nsort: desc\n```\n\n" +
		"2018-08-21 first\n\n" +
		"2018-09-05 second\n"
	svc := newService(NewMockRepository(newDoc("a.md", content)), core.DefaultSettings())

	res, err := svc.Build(context.Background(), "a.md", nil)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, core.Descending, res.Order)
	assert.Equal(t, "desc", res.Directives["sort"])
	assert.Equal(t, []string{"2018-09-05 second", "2018-08-21 first"}, details(res.Timeline))
}

func TestBuild_ExplicitReference(t *testing.T) {
	// 2024-01-03 is a Wednesday.
	content := header + "Meeting on Friday [author:: Alice]\n"
	svc := newService(NewMockRepository(newDoc("m.md", content)), core.DefaultSettings())

	block := &segment.Block{Language: segment.Language, Body: "reference: 2024-01-03"}
	res, err := svc.Build(context.Background(), "m.md", block)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, time.Date(2024, time.January, 3, 0, 0, 0, 0, time.Local), res.Reference)
	events := res.Timeline.Events()
	require.Len(t, events, 1)
	assert.Equal(t, time.Friday, events[0].Date.Weekday())
	assert.True(t, events[0].Date.After(res.Reference))

	card := timeline.Present(events[0])
	assert.Equal(t, "Alice", card.Author)
	assert.Equal(t, []string{"Meeting on Friday Alice"}, card.Lines)
}

func TestBuild_BlockWithoutDirectivesIsContent(t *testing.T) {
	content := header + "2017-01-01 ignored body entry\n"
	svc := newService(NewMockRepository(newDoc("b.md", content)), core.DefaultSettings())

	block := &segment.Block{Language: segment.Language, Body: "2018-08-21 from the block\n\n2018-09-05 also from the block"}
	res, err := svc.Build(context.Background(), "b.md", block)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, pipeline.SourceBlock, res.Source)
	assert.Equal(t, []string{"2018-08-21 from the block", "2018-09-05 also from the block"}, details(res.Timeline))
}

func TestBuild_EmptyBlockUsesBody(t *testing.T) {
	content := header + "```timeline\n```\n\n2018-08-21 entry\n"
	svc := newService(NewMockRepository(newDoc("c.md", content)), core.DefaultSettings())

	res, err := svc.Build(context.Background(), "c.md", nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, pipeline.SourceDocument, res.Source)
	assert.Equal(t, []string{"2018-08-21 entry"}, details(res.Timeline))
}

func TestBuild_SingleLineSettings(t *testing.T) {
	content := "2018-08-21 one\n2018-08-22 two\nno date"
	settings := core.DefaultSettings()
	settings.Delimiter = core.SingleLine
	svc := newService(NewMockRepository(newDoc("d.md", content)), settings)

	res, err := svc.Build(context.Background(), "d.md", nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Timeline.Len())

	settings.Delimiter = core.BlankLine
	svc.SetSettings(settings)
	res, err = svc.Build(context.Background(), "d.md", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Timeline.Len())
}

func TestBuild_NoEligibleDocument(t *testing.T) {
	repo := NewMockRepository()
	svc := newService(repo, core.DefaultSettings())

	res, err := svc.Build(context.Background(), "missing.md", nil)
	assert.NoError(t, err)
	assert.Nil(t, res)

	res, err = svc.Build(context.Background(), "", nil)
	assert.NoError(t, err)
	assert.Nil(t, res)

	repo.err = core.ErrUnsupportedDocument
	res, err = svc.Build(context.Background(), "image.png", nil)
	assert.NoError(t, err)
	assert.Nil(t, res)

	repo.err = errors.New("disk on fire")
	_, err = svc.Build(context.Background(), "x.md", nil)
	assert.Error(t, err)
}

func TestBuild_InvalidPatternFallsBack(t *testing.T) {
	var notices []string
	settings := core.DefaultSettings()
	settings.UseReferencePattern = true
	settings.ReferenceKeyOrPattern = "["

	svc := pipeline.NewService(
		NewMockRepository(newDoc("p.md", header+"2018-08-21 entry")),
		dateparse.New(),
		settings,
		pipeline.WithNotifier(noticeFunc(func(msg string) { notices = append(notices, msg) })),
	)

	res, err := svc.Build(context.Background(), "p.md", nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, created, res.Reference)
	assert.Len(t, notices, 1)
}

type noticeFunc func(string)

func (f noticeFunc) Notify(msg string) { f(msg) }

func TestDates(t *testing.T) {
	content := header + "Kickoff 2018-08-21 and review 2018-09-05."
	svc := newService(NewMockRepository(newDoc("d.md", content)), core.DefaultSettings())

	list, err := svc.Dates(context.Background(), "d.md")
	require.NoError(t, err)
	require.NotNil(t, list)
	// The frontmatter date is content too.
	require.Len(t, list.Dates, 3)
	assert.Equal(t, "2018-09-05", list.Dates[2].Text)

	list, err = svc.Dates(context.Background(), "nope.md")
	assert.NoError(t, err)
	assert.Nil(t, list)
}

func TestState(t *testing.T) {
	svc := newService(NewMockRepository(newDoc("s.md", "2018-08-21 x")), core.DefaultSettings())
	_, err := svc.Build(context.Background(), "s.md", nil)
	require.NoError(t, err)

	state, ok := svc.State().(pipeline.ServiceState)
	require.True(t, ok)
	assert.Equal(t, uint64(1), state.Builds)
	assert.Equal(t, "repository", state.RepositoryType)
	assert.Equal(t, "blankLine", state.Delimiter)
}

func TestBuildWith_Overrides(t *testing.T) {
	content := header + "```timeline\nsort: asc\n```\n\n2018-08-21 first\n\n2018-09-05 second\n"
	svc := newService(NewMockRepository(newDoc("o.md", content)), core.DefaultSettings())

	res, err := svc.BuildWith(context.Background(), "o.md", nil, annotate.Directives{annotate.DirectiveSort: "desc"})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, core.Descending, res.Order)
	assert.Equal(t, []string{"2018-09-05 second", "2018-08-21 first"}, details(res.Timeline))
}
