// Package tui provides an interactive browser for analysis results
// using Bubble Tea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amplifier-docs/docsync/internal/domain"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	staleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	healthyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// docItem adapts a DocResult for the list component.
type docItem struct {
	result domain.DocResult
}

func (i docItem) Title() string {
	marker := healthyStyle.Render("✓")
	if i.result.IsStale {
		marker = staleStyle.Render("✗")
	}
	return fmt.Sprintf("%s %s", marker, i.result.DocPath)
}

func (i docItem) Description() string {
	return fmt.Sprintf("%s · %s · score %d",
		i.result.Relationship, i.result.Priority, i.result.Comparison.StalenessScore)
}

func (i docItem) FilterValue() string { return i.result.DocPath }

// Model is the result browser.
type Model struct {
	list     list.Model
	detail   viewport.Model
	result   *domain.AnalysisResult
	showing  bool
	width    int
	height   int
	quitting bool
}

// New creates a browser over an analysis result. Stale documents come
// first, in the order the analyzer ranked them.
func New(result *domain.AnalysisResult) Model {
	items := make([]list.Item, 0, len(result.StaleDocs)+len(result.HealthyDocs))
	for _, doc := range result.StaleDocs {
		items = append(items, docItem{result: doc})
	}
	for _, doc := range result.HealthyDocs {
		items = append(items, docItem{result: doc})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Documentation Health: %.0f%% %s",
		result.Summary.HealthPct(), result.Summary.Status())
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return Model{
		list:   l,
		detail: viewport.New(0, 0),
		result: result,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		m.detail.Width = msg.Width - 4
		m.detail.Height = msg.Height - 6
		return m, nil

	case tea.KeyMsg:
		// Let the list's filter input swallow keys while active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			if m.showing {
				m.showing = false
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(docItem); ok {
				m.detail.SetContent(renderDetail(item.result))
				m.detail.GotoTop()
				m.showing = true
			}
			return m, nil
		case "esc":
			if m.showing {
				m.showing = false
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.showing {
		m.detail, cmd = m.detail.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showing {
		return titleStyle.Render("Document Detail") + "\n" +
			detailStyle.Render(m.detail.View()) + "\n" +
			helpStyle.Render("esc back · ↑/↓ scroll · q close")
	}
	return m.list.View() + "\n" +
		helpStyle.Render("enter detail · / filter · q quit")
}

func renderDetail(doc domain.DocResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Path:         %s\n", doc.DocPath)
	fmt.Fprintf(&sb, "Section:      %s\n", doc.SectionID)
	fmt.Fprintf(&sb, "Relationship: %s\n", doc.Relationship)
	fmt.Fprintf(&sb, "Priority:     %s\n", doc.Priority)
	fmt.Fprintf(&sb, "Score:        %d\n", doc.Comparison.StalenessScore)
	fmt.Fprintf(&sb, "Sources:      %d found", doc.SourcesFound)
	if len(doc.SourcesMissing) > 0 {
		fmt.Fprintf(&sb, ", %d missing", len(doc.SourcesMissing))
	}
	sb.WriteString("\n")

	if len(doc.StalenessReasons) > 0 {
		sb.WriteString("\nStaleness reasons:\n")
		for _, reason := range doc.StalenessReasons {
			fmt.Fprintf(&sb, "  • %s\n", reason)
		}
	}

	writeFactList(&sb, "Missing config keys", doc.Comparison.MissingConfigKeys)
	writeFactList(&sb, "Missing models", doc.Comparison.MissingModels)
	writeFactList(&sb, "Extra models", doc.Comparison.ExtraModels)
	writeFactList(&sb, "Missing sections", doc.Comparison.MissingSections)
	writeFactList(&sb, "Missing features", doc.Comparison.MissingFeatures)

	if doc.Relationship == domain.RelDirect && doc.Comparison.ContentMatch > 0 {
		fmt.Fprintf(&sb, "\nContent match: %.1f%%\n", doc.Comparison.ContentMatch*100)
	}

	return sb.String()
}

func writeFactList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", label)
	for _, item := range items {
		fmt.Fprintf(sb, "  - %s\n", item)
	}
}

// Run launches the browser and blocks until the user quits.
func Run(result *domain.AnalysisResult) error {
	p := tea.NewProgram(New(result), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
