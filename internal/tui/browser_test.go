package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amplifier-docs/docsync/internal/domain"
)

func browserResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Summary: domain.AnalysisSummary{Analyzed: 2, Stale: 1, Healthy: 1},
		StaleDocs: []domain.DocResult{{
			SectionID:    "architecture",
			DocPath:      "docs/concepts/architecture.md",
			Relationship: domain.RelDerived,
			Priority:     domain.PriorityHigh,
			IsStale:      true,
			Comparison: domain.Comparison{
				StalenessScore:    7,
				MissingConfigKeys: []string{"max_tokens"},
				MissingModels:     []string{"claude-sonnet-4"},
			},
			StalenessReasons: []string{"1 config keys undocumented"},
		}},
		HealthyDocs: []domain.DocResult{{
			SectionID:    "quickstart",
			DocPath:      "docs/getting-started/quickstart.md",
			Relationship: domain.RelDirect,
			Priority:     domain.PriorityHigh,
		}},
	}
}

func TestNewListsStaleFirst(t *testing.T) {
	m := New(browserResult())

	items := m.list.Items()
	require.Len(t, items, 2)
	first := items[0].(docItem)
	assert.True(t, first.result.IsStale)
	assert.Contains(t, first.FilterValue(), "architecture")
}

func TestEnterShowsDetail(t *testing.T) {
	m := New(browserResult())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.True(t, m.showing)
	view := m.View()
	assert.Contains(t, view, "Document Detail")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	assert.False(t, m.showing)
}

func TestQuit(t *testing.T) {
	m := New(browserResult())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderDetail(t *testing.T) {
	doc := browserResult().StaleDocs[0]
	out := renderDetail(doc)

	assert.Contains(t, out, "docs/concepts/architecture.md")
	assert.Contains(t, out, "Score:        7")
	assert.Contains(t, out, "Missing config keys")
	assert.Contains(t, out, "max_tokens")
	assert.Contains(t, out, "claude-sonnet-4")
	assert.Contains(t, out, "1 config keys undocumented")
}
