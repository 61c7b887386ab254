// Package outline builds the content synchronization outline from the
// DOC_SOURCE_MAPPING.csv maintained alongside the docs.
package outline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amplifier-docs/docsync/internal/domain"
)

// MappingRow is one line of the source mapping CSV.
type MappingRow struct {
	DocPath      string
	SourceFiles  string
	Relationship string
	Notes        string
}

// ParseMapping reads the mapping CSV. Expected header columns:
// Documentation Page, Source Files, Relationship Type, Notes.
func ParseMapping(r io.Reader) ([]MappingRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Documentation Page", "Source Files", "Relationship Type"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("mapping csv missing column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []MappingRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		row := MappingRow{
			DocPath:      field(rec, "Documentation Page"),
			SourceFiles:  field(rec, "Source Files"),
			Relationship: field(rec, "Relationship Type"),
			Notes:        field(rec, "Notes"),
		}
		if row.DocPath == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SectionID derives a stable section id from a doc path.
// docs/architecture/kernel.md -> architecture-kernel; index files collapse
// to their directory slug.
func SectionID(docPath string) string {
	path := strings.TrimSuffix(strings.TrimPrefix(docPath, "docs/"), ".md")
	id := strings.ReplaceAll(path, "/", "-")
	id = strings.TrimSuffix(id, "-index")
	return id
}

// Category returns the first path segment under docs/.
func Category(docPath string) string {
	parts := strings.Split(strings.TrimPrefix(docPath, "docs/"), "/")
	if len(parts) >= 1 && parts[0] != "" {
		return parts[0]
	}
	return "other"
}

// Title derives a readable title from a doc path. Index pages take their
// parent directory's name.
func Title(docPath string) string {
	name := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	if name == "index" {
		name = filepath.Base(filepath.Dir(docPath))
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return titleCase(name)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ParseSources splits a pipe-delimited source column into refs.
// Each entry is repo-name/path/to/file; entries without a path are skipped.
func ParseSources(sourceStr string) []domain.SourceRef {
	if sourceStr == "" || sourceStr == "N/A" {
		return nil
	}

	var refs []domain.SourceRef
	for _, entry := range strings.Split(sourceStr, "|") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "/", 2)
		if len(parts) < 2 {
			continue
		}
		refs = append(refs, domain.SourceRef{
			Repo:     parts[0],
			Path:     parts[1],
			Type:     sourceType(parts[1]),
			Required: true,
		})
	}
	return refs
}

func sourceType(path string) domain.SourceType {
	switch {
	case strings.HasSuffix(path, ".py"):
		return domain.SourcePython
	case strings.HasSuffix(path, ".md"):
		if strings.Contains(path, "README") {
			return domain.SourceReadme
		}
		return domain.SourceMarkdown
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return domain.SourceYAML
	default:
		return domain.SourceOther
	}
}

// ValidationRules returns the rule set for a relationship type.
func ValidationRules(rel domain.RelationshipType) []string {
	switch rel {
	case domain.RelDirect:
		return []string{"exact_source_match", "format_consistency", "metadata_preserved"}
	case domain.RelDerived:
		return []string{"factual_accuracy", "source_traceability", "no_hallucination"}
	case domain.RelReference:
		return []string{"sources_exist", "links_valid", "refs_current"}
	case domain.RelNone:
		return []string{"build_passes", "links_valid"}
	default:
		return []string{"links_valid"}
	}
}

// PromptTemplate picks the generation template for a section.
func PromptTemplate(rel domain.RelationshipType, category string) string {
	switch rel {
	case domain.RelNone:
		return ""
	case domain.RelDirect:
		return "direct_copy"
	case domain.RelReference:
		if category == "modules" {
			return "module_reference"
		}
		return "validate_only"
	}
	// DERIVED
	switch category {
	case "architecture":
		return "synthesize_architecture"
	case "api":
		return "api_from_docstrings"
	case "modules":
		return "module_reference"
	}
	return "synthesize_documentation"
}

// TransformSteps returns the generation pipeline steps for a relationship type.
func TransformSteps(rel domain.RelationshipType) []string {
	switch rel {
	case domain.RelDirect:
		return []string{"copy_content", "add_navigation_header", "update_links", "add_cross_references"}
	case domain.RelDerived:
		return []string{"extract_content", "synthesize_narrative", "add_examples", "add_navigation"}
	case domain.RelReference:
		return []string{"verify_sources_exist", "validate_links", "check_version_match"}
	}
	return nil
}

// SectionPriority ranks a section for refresh urgency.
func SectionPriority(rel domain.RelationshipType, category string) domain.Priority {
	if rel == domain.RelDirect {
		return domain.PriorityHigh
	}
	switch category {
	case "architecture", "getting_started", "developer":
		return domain.PriorityHigh
	case "api", "modules":
		return domain.PriorityMedium
	}
	return domain.PriorityLow
}

// Build assembles the full outline from mapping rows.
func Build(rows []MappingRow, now time.Time) *domain.Outline {
	sections := make([]domain.Section, 0, len(rows))
	for _, row := range rows {
		rel := domain.RelationshipType(row.Relationship)
		category := Category(row.DocPath)

		threshold := 0.90
		if rel == domain.RelDirect {
			threshold = 0.95
		}

		preserve := []string{"## See Also"}
		if rel == domain.RelNone {
			preserve = []string{"*"}
		}

		sections = append(sections, domain.Section{
			ID:           SectionID(row.DocPath),
			DocPath:      row.DocPath,
			Title:        Title(row.DocPath),
			Category:     category,
			Relationship: rel,
			Sources:      ParseSources(row.SourceFiles),
			Validation: domain.Validation{
				Rules:               ValidationRules(rel),
				CustomRules:         []string{},
				AcceptanceThreshold: threshold,
			},
			Generation: domain.Generation{
				PromptTemplate:   nullable(PromptTemplate(rel, category)),
				TransformSteps:   TransformSteps(rel),
				OutputFormat:     "markdown",
				PreserveSections: preserve,
			},
			Metadata: domain.SectionMeta{
				Priority:   SectionPriority(rel, category),
				AutoUpdate: rel != domain.RelNone && rel != domain.RelReference,
				Notes:      row.Notes,
			},
		})
	}

	o := &domain.Outline{
		Meta:     DefaultMeta(now),
		Sections: sections,
		Summary:  summarize(sections),
	}
	return o
}

func summarize(sections []domain.Section) domain.OutlineSummary {
	s := domain.OutlineSummary{
		TotalSections:      len(sections),
		ByRelationshipType: make(map[string]int),
		ByCategory:         make(map[string]int),
		ByPriority:         make(map[string]int),
	}
	for _, sec := range sections {
		s.ByRelationshipType[string(sec.Relationship)]++
		s.ByCategory[sec.Category]++
		s.ByPriority[string(sec.Metadata.Priority)]++
	}
	return s
}

// Generate reads the mapping CSV and writes the outline JSON.
func Generate(csvPath, outPath string, now time.Time) (*domain.Outline, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	defer f.Close()

	rows, err := ParseMapping(f)
	if err != nil {
		return nil, err
	}

	o := Build(rows, now)
	if err := Write(o, outPath); err != nil {
		return nil, err
	}
	return o, nil
}

// nullable maps the empty string to a JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Write serializes the outline to disk, creating parent directories.
func Write(o *domain.Outline, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create outline dir: %w", err)
	}
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal outline: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Load reads an outline JSON from disk.
func Load(path string) (*domain.Outline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}
	var o domain.Outline
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse outline: %w", err)
	}
	return &o, nil
}
