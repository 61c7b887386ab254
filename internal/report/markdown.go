// Package report turns analysis results into the freshness report
// artifacts: a markdown report for humans, a JSON snapshot for tooling,
// and a terminal summary.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amplifier-docs/docsync/internal/domain"
)

const (
	maxHealthyListed    = 10
	maxRecommendations  = 5
	maxListedConfigKeys = 10
)

// Markdown renders the freshness report.
func Markdown(result *domain.AnalysisResult, generatedAt time.Time) string {
	var sb strings.Builder
	s := result.Summary

	fmt.Fprintf(&sb, "# Documentation Freshness Report\n\n")
	fmt.Fprintf(&sb, "**Generated:** %s\n", generatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "**Analysis Type:** Structured fact comparison (config keys, models, features)\n\n")
	sb.WriteString("---\n\n")

	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString("| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&sb, "| **Total Sections** | %d |\n", s.TotalSections)
	fmt.Fprintf(&sb, "| **Analyzed** | %d |\n", s.Analyzed)
	fmt.Fprintf(&sb, "| **Healthy** | %d |\n", s.Healthy)
	fmt.Fprintf(&sb, "| **Stale** | %d |\n", s.Stale)
	fmt.Fprintf(&sb, "| **Missing Docs** | %d |\n", s.MissingDoc)
	fmt.Fprintf(&sb, "| **Health Score** | %.0f%% |\n", s.HealthPct())
	fmt.Fprintf(&sb, "| **Status** | %s |\n\n", s.Status())
	sb.WriteString("---\n\n")

	fmt.Fprintf(&sb, "## Stale Documentation (%d found)\n\n", s.Stale)
	if len(result.StaleDocs) == 0 {
		sb.WriteString("*No stale documentation found.*\n\n---\n\n")
	} else {
		for _, doc := range result.StaleDocs {
			writeStaleDoc(&sb, doc)
		}
	}

	fmt.Fprintf(&sb, "## Healthy Documentation (%d found)\n\n", s.Healthy)
	if len(result.HealthyDocs) == 0 {
		sb.WriteString("*No healthy documentation found.*\n")
	} else {
		for i, doc := range result.HealthyDocs {
			if i >= maxHealthyListed {
				fmt.Fprintf(&sb, "- ... and %d more\n", len(result.HealthyDocs)-maxHealthyListed)
				break
			}
			fmt.Fprintf(&sb, "- %s\n", doc.DocPath)
		}
	}

	sb.WriteString("\n---\n\n## Recommendations\n\n")
	writeRecommendations(&sb, result)

	return sb.String()
}

func writeStaleDoc(sb *strings.Builder, doc domain.DocResult) {
	comp := doc.Comparison
	reasons := strings.Join(doc.StalenessReasons, ", ")
	if reasons == "" {
		reasons = "Score threshold"
	}

	fmt.Fprintf(sb, "### %s\n\n", doc.DocPath)
	sb.WriteString("| Attribute | Value |\n|-----------|-------|\n")
	fmt.Fprintf(sb, "| **Priority** | %s |\n", strings.ToUpper(string(doc.Priority)))
	fmt.Fprintf(sb, "| **Staleness Score** | %d |\n", comp.StalenessScore)
	fmt.Fprintf(sb, "| **Reasons** | %s |\n\n", reasons)

	if len(comp.MissingConfigKeys) > 0 {
		sb.WriteString("**Missing Config Keys:**\n")
		for i, key := range comp.MissingConfigKeys {
			if i >= maxListedConfigKeys {
				break
			}
			fmt.Fprintf(sb, "- `%s`\n", key)
		}
		sb.WriteString("\n")
	}

	if len(comp.MissingModels) > 0 || len(comp.ExtraModels) > 0 {
		sb.WriteString("**Model Mismatches:**\n")
		for _, model := range comp.MissingModels {
			fmt.Fprintf(sb, "- Missing: `%s`\n", model)
		}
		for _, model := range comp.ExtraModels {
			fmt.Fprintf(sb, "- Outdated: `%s` (in doc but not source)\n", model)
		}
		sb.WriteString("\n")
	}

	if len(comp.MissingFeatures) > 0 {
		sb.WriteString("**Missing Features:**\n")
		for _, feat := range comp.MissingFeatures {
			fmt.Fprintf(sb, "- %s\n", strings.ReplaceAll(feat, "_", " "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
}

func writeRecommendations(sb *strings.Builder, result *domain.AnalysisResult) {
	byPriority := func(p domain.Priority) []domain.DocResult {
		var docs []domain.DocResult
		for _, d := range result.StaleDocs {
			if d.Priority == p {
				docs = append(docs, d)
			}
		}
		return docs
	}

	high := byPriority(domain.PriorityHigh)
	if len(high) > 0 {
		sb.WriteString("### High Priority (Update Immediately)\n\n")
		for i, doc := range high {
			if i >= maxRecommendations {
				break
			}
			fmt.Fprintf(sb, "1. **%s**\n", doc.DocPath)
			for j, reason := range doc.StalenessReasons {
				if j >= 2 {
					break
				}
				fmt.Fprintf(sb, "   - %s\n", reason)
			}
		}
		sb.WriteString("\n")
	}

	medium := byPriority(domain.PriorityMedium)
	if len(medium) > 0 {
		sb.WriteString("### Medium Priority\n\n")
		for i, doc := range medium {
			if i >= maxRecommendations {
				break
			}
			fmt.Fprintf(sb, "1. **%s** - Score: %d\n", doc.DocPath, doc.Comparison.StalenessScore)
		}
		sb.WriteString("\n")
	}

	if len(result.StaleDocs) == 0 {
		sb.WriteString("**All documentation is up-to-date!**\n")
	}
}

// WriteMarkdown writes the markdown report, creating parent directories.
func WriteMarkdown(result *domain.AnalysisResult, path string, generatedAt time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	return os.WriteFile(path, []byte(Markdown(result, generatedAt)), 0644)
}

// WriteJSON writes the raw analysis result snapshot.
func WriteJSON(result *domain.AnalysisResult, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
