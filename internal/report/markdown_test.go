package report

import (
	"strings"
	"testing"
	"time"

	"github.com/amplifier-docs/docsync/internal/domain"
)

func sampleResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Summary: domain.AnalysisSummary{
			TotalSections: 10,
			Analyzed:      8,
			Stale:         2,
			Healthy:       6,
			MissingDoc:    1,
		},
		StaleDocs: []domain.DocResult{
			{
				SectionID: "modules-providers-anthropic",
				DocPath:   "docs/modules/providers/anthropic.md",
				Priority:  domain.PriorityHigh,
				Comparison: domain.Comparison{
					StalenessScore:    9,
					IsStale:           true,
					MissingConfigKeys: []string{"thinking_budget"},
					ExtraModels:       []string{"claude-sonnet-3"},
				},
				IsStale: true,
				StalenessReasons: []string{
					"Missing config: thinking_budget",
					"Outdated models: claude-sonnet-3",
				},
			},
			{
				SectionID: "api-session",
				DocPath:   "docs/api/session.md",
				Priority:  domain.PriorityMedium,
				Comparison: domain.Comparison{
					StalenessScore: 6,
					IsStale:        true,
				},
				IsStale: true,
			},
		},
		HealthyDocs: []domain.DocResult{
			{DocPath: "docs/architecture/kernel.md"},
			{DocPath: "docs/getting_started/index.md"},
		},
		MissingDocs: []domain.MissingDoc{
			{SectionID: "ecosystem", DocPath: "docs/ecosystem/index.md", Priority: domain.PriorityLow},
		},
	}
}

func TestMarkdownLayout(t *testing.T) {
	md := Markdown(sampleResult(), time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))

	for _, want := range []string{
		"# Documentation Freshness Report",
		"## Executive Summary",
		"| **Health Score** | 75% |",
		"| **Status** | WARNING |",
		"## Stale Documentation (2 found)",
		"### docs/modules/providers/anthropic.md",
		"| **Priority** | HIGH |",
		"- `thinking_budget`",
		"- Outdated: `claude-sonnet-3` (in doc but not source)",
		"## Healthy Documentation (6 found)",
		"- docs/architecture/kernel.md",
		"### High Priority (Update Immediately)",
		"### Medium Priority",
		"1. **docs/api/session.md** - Score: 6",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestMarkdownNoStale(t *testing.T) {
	result := &domain.AnalysisResult{
		Summary: domain.AnalysisSummary{TotalSections: 3, Analyzed: 3, Healthy: 3},
		HealthyDocs: []domain.DocResult{
			{DocPath: "docs/index.md"},
		},
	}
	md := Markdown(result, time.Now())

	if !strings.Contains(md, "*No stale documentation found.*") {
		t.Error("missing empty-stale marker")
	}
	if !strings.Contains(md, "**All documentation is up-to-date!**") {
		t.Error("missing up-to-date recommendation")
	}
	if !strings.Contains(md, "| **Status** | HEALTHY |") {
		t.Error("100%% healthy run should report HEALTHY")
	}
}

func TestMarkdownHealthyListCapped(t *testing.T) {
	result := &domain.AnalysisResult{
		Summary: domain.AnalysisSummary{Analyzed: 15, Healthy: 15},
	}
	for i := 0; i < 15; i++ {
		result.HealthyDocs = append(result.HealthyDocs, domain.DocResult{
			DocPath: "docs/page.md",
		})
	}
	md := Markdown(result, time.Now())
	if !strings.Contains(md, "... and 5 more") {
		t.Error("healthy list should cap at 10 entries")
	}
}

func TestTerminalSummaryPlain(t *testing.T) {
	r := NewRenderer(false)
	out := r.Summary(sampleResult())
	if !strings.Contains(out, "stale=2") || !strings.Contains(out, "status=WARNING") {
		t.Errorf("plain summary = %q", out)
	}
}

func TestTerminalStaleDocsLimit(t *testing.T) {
	r := NewRenderer(false)
	out := r.StaleDocs(sampleResult(), 1)
	if !strings.Contains(out, "and 1 more") {
		t.Errorf("limited output = %q", out)
	}
}
