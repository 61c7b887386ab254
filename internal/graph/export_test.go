package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amplifier-docs/docsync/internal/domain"
	"github.com/amplifier-docs/docsync/internal/links"
)

// fakeDriver records executed queries and serves canned read results.
type fakeDriver struct {
	writes  []string
	params  []map[string]any
	results []Record
}

func (f *fakeDriver) Execute(_ context.Context, _ string, _ map[string]any) ([]Record, error) {
	return f.results, nil
}

func (f *fakeDriver) ExecuteWrite(_ context.Context, query string, params map[string]any) error {
	f.writes = append(f.writes, query)
	f.params = append(f.params, params)
	return nil
}

func (f *fakeDriver) Close() error                 { return nil }
func (f *fakeDriver) Ping(_ context.Context) error { return nil }

func sampleOutline() *domain.Outline {
	return &domain.Outline{
		Sections: []domain.Section{
			{
				ID:           "architecture",
				DocPath:      "docs/concepts/architecture.md",
				Title:        "Architecture",
				Category:     "concepts",
				Relationship: domain.RelDerived,
				Sources: []domain.SourceRef{
					{Repo: "amplifier-core", Path: "README.md", Type: domain.SourceReadme, Required: true},
					{Repo: "amplifier-core", Path: "src/kernel.py", Type: domain.SourcePython, Required: false},
				},
				Metadata: domain.SectionMeta{Priority: domain.PriorityHigh},
			},
			{
				ID:           "quickstart",
				DocPath:      "docs/getting-started/quickstart.md",
				Title:        "Quickstart",
				Category:     "getting_started",
				Relationship: domain.RelDirect,
				Sources: []domain.SourceRef{
					{Repo: "amplifier-docs", Path: "guides/quickstart.md", Type: domain.SourceMarkdown, Required: true},
				},
				Metadata: domain.SectionMeta{Priority: domain.PriorityHigh},
			},
		},
	}
}

func TestExportWritesSectionsAndSources(t *testing.T) {
	db := &fakeDriver{}
	exp := NewExporter(db)

	pageLinks := []links.Link{
		{Page: "concepts/architecture.md", Dest: "getting-started/quickstart.md"},
		{Page: "concepts/architecture.md", Dest: "https://example.com", External: true},
	}

	require.NoError(t, exp.Export(context.Background(), sampleOutline(), pageLinks))

	joined := strings.Join(db.writes, "\n")
	assert.Contains(t, joined, "DETACH DELETE")
	assert.Contains(t, joined, "MERGE (s:Section {id: $id})")
	assert.Contains(t, joined, "MERGE (f:SourceFile {repo: $repo, path: $path})")
	assert.Contains(t, joined, "MERGE (a)-[:LINKS_TO]->(b)")

	// clear + 2 sections + 3 sources + 1 internal link; the external
	// link is skipped.
	assert.Len(t, db.writes, 7)

	last := db.params[len(db.params)-1]
	assert.Equal(t, "docs/concepts/architecture.md", last["from"])
	assert.Equal(t, "docs/getting-started/quickstart.md", last["to"])
}

func TestRepoCoverage(t *testing.T) {
	db := &fakeDriver{results: []Record{
		{"repo": "amplifier-core", "sections": int64(5), "files": int64(9)},
		{"repo": "amplifier-docs", "sections": int64(2), "files": int64(2)},
	}}

	coverage, err := NewExporter(db).RepoCoverage(context.Background())
	require.NoError(t, err)
	require.Len(t, coverage, 2)
	assert.Equal(t, "amplifier-core", coverage[0].Repo)
	assert.Equal(t, int64(5), coverage[0].Sections)
	assert.Equal(t, int64(9), coverage[0].Files)
}

func TestUndocumentedRepos(t *testing.T) {
	db := &fakeDriver{results: []Record{
		{"repo": "amplifier-core"},
		{"repo": "amplifier-module-tool-filesystem"},
	}}

	meta := &domain.OutlineMeta{
		AllowedRepos: map[string][]string{
			"core": {"amplifier-core", "amplifier-app-cli"},
			"tools": {
				"amplifier-module-tool-filesystem",
				"amplifier-module-tool-bash",
			},
		},
	}

	undocumented, err := NewExporter(db).UndocumentedRepos(context.Background(), meta)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"amplifier-app-cli",
		"amplifier-module-tool-bash",
	}, undocumented)
}

func TestUndocumentedReposAllCovered(t *testing.T) {
	db := &fakeDriver{results: []Record{
		{"repo": "amplifier-core"},
	}}

	meta := &domain.OutlineMeta{
		AllowedRepos: map[string][]string{"core": {"amplifier-core"}},
	}

	undocumented, err := NewExporter(db).UndocumentedRepos(context.Background(), meta)
	require.NoError(t, err)
	assert.Empty(t, undocumented)
}

func TestOrphans(t *testing.T) {
	db := &fakeDriver{results: []Record{
		{"doc_path": "docs/reference/internals.md"},
	}}

	orphans, err := NewExporter(db).Orphans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/reference/internals.md"}, orphans)
}
