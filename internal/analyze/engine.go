// Package analyze runs the documentation freshness analysis: for every
// syncable outline section it aggregates the upstream sources, extracts
// facts from both sides, and scores the drift.
package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/amplifier-docs/docsync/internal/domain"
	"github.com/amplifier-docs/docsync/internal/facts"
	"github.com/amplifier-docs/docsync/internal/ingest"
)

// Engine drives an analysis run.
type Engine struct {
	docsDir string
	reader  *ingest.Reader
	log     zerolog.Logger
}

// New creates an engine over a docs checkout and a repos directory.
func New(docsDir, reposDir string, log zerolog.Logger) *Engine {
	return &Engine{
		docsDir: docsDir,
		reader:  ingest.NewReader(reposDir),
		log:     log,
	}
}

// Run analyzes every syncable section of the outline.
func (e *Engine) Run(ctx context.Context, o *domain.Outline) (*domain.AnalysisResult, error) {
	result := &domain.AnalysisResult{
		StaleDocs:   []domain.DocResult{},
		HealthyDocs: []domain.DocResult{},
		MissingDocs: []domain.MissingDoc{},
	}

	for i := range o.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		section := &o.Sections[i]
		result.Summary.TotalSections++

		if !section.Syncable() {
			continue
		}

		docContent, err := e.readDoc(section.DocPath)
		if err != nil {
			result.Summary.MissingDoc++
			result.MissingDocs = append(result.MissingDocs, domain.MissingDoc{
				SectionID: section.ID,
				DocPath:   section.DocPath,
				Priority:  section.Metadata.Priority,
			})
			continue
		}

		agg, err := e.reader.ReadSources(section.Sources)
		if err != nil {
			return nil, fmt.Errorf("read sources for %s: %w", section.ID, err)
		}
		if agg.Content == "" {
			result.Summary.MissingSource++
			e.log.Warn().Str("section", section.ID).Strs("missing", agg.Missing).
				Msg("no sources resolvable")
			continue
		}

		result.Summary.Analyzed++
		doc := e.analyzeSection(section, agg, docContent)

		if doc.IsStale {
			result.Summary.Stale++
			result.StaleDocs = append(result.StaleDocs, doc)
		} else {
			result.Summary.Healthy++
			result.HealthyDocs = append(result.HealthyDocs, doc)
		}

		e.log.Debug().Str("section", section.ID).
			Int("score", doc.Comparison.StalenessScore).
			Bool("stale", doc.IsStale).
			Msg("section analyzed")
	}

	// Stale docs surface by priority first, then by heaviest drift.
	sort.SliceStable(result.StaleDocs, func(i, j int) bool {
		a, b := result.StaleDocs[i], result.StaleDocs[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		return a.Comparison.StalenessScore > b.Comparison.StalenessScore
	})

	return result, nil
}

func (e *Engine) analyzeSection(section *domain.Section, agg ingest.Aggregate, docContent string) domain.DocResult {
	sourceFacts := facts.Extract(agg.Content)
	docFacts := facts.Extract(docContent)
	comparison := facts.Compare(sourceFacts, docFacts)

	if section.Relationship == domain.RelDirect {
		comparison.ContentMatch = contentMatch(agg.Content, docContent)
		if comparison.ContentMatch < section.Validation.AcceptanceThreshold {
			comparison.IsStale = true
		}
	}

	doc := domain.DocResult{
		SectionID:      section.ID,
		DocPath:        section.DocPath,
		Relationship:   section.Relationship,
		Priority:       section.Metadata.Priority,
		SourcesFound:   agg.SourcesFound,
		SourcesMissing: agg.Missing,
		Comparison:     comparison,
		IsStale:        comparison.IsStale,
	}
	doc.StalenessReasons = stalenessReasons(comparison, section)
	return doc
}

func stalenessReasons(c domain.Comparison, section *domain.Section) []string {
	var reasons []string
	if len(c.MissingConfigKeys) > 0 {
		reasons = append(reasons, "Missing config: "+strings.Join(cap5(c.MissingConfigKeys), ", "))
	}
	if len(c.MissingModels) > 0 {
		reasons = append(reasons, "Missing models: "+strings.Join(c.MissingModels, ", "))
	}
	if len(c.ExtraModels) > 0 {
		reasons = append(reasons, "Outdated models: "+strings.Join(c.ExtraModels, ", "))
	}
	if len(c.MissingFeatures) > 0 {
		reasons = append(reasons, "Missing features: "+strings.Join(cap3(c.MissingFeatures), ", "))
	}
	if section.Relationship == domain.RelDirect && c.ContentMatch > 0 &&
		c.ContentMatch < section.Validation.AcceptanceThreshold {
		reasons = append(reasons, fmt.Sprintf("Content match %.0f%% below threshold %.0f%%",
			c.ContentMatch*100, section.Validation.AcceptanceThreshold*100))
	}
	return reasons
}

func cap5(s []string) []string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

func cap3(s []string) []string {
	if len(s) > 3 {
		return s[:3]
	}
	return s
}

func (e *Engine) readDoc(docPath string) (string, error) {
	// Outline doc paths carry the docs/ prefix; the engine is rooted at
	// the real docs dir.
	rel := strings.TrimPrefix(docPath, "docs/")
	data, err := os.ReadFile(filepath.Join(e.docsDir, rel))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
