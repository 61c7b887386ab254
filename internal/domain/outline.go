// Package domain defines the core entities shared across docsync.
package domain

// RelationshipType describes how a documentation page relates to its sources.
type RelationshipType string

const (
	// RelDirect means content closely matches source with minimal transformation.
	RelDirect RelationshipType = "DIRECT"
	// RelDerived means content is synthesized from sources.
	RelDerived RelationshipType = "DERIVED"
	// RelReference means sources are checked for existence only.
	RelReference RelationshipType = "REFERENCE"
	// RelNone means the page is manually maintained and skipped.
	RelNone RelationshipType = "N/A"
)

// SourceType classifies a mapped source file.
type SourceType string

const (
	SourcePython   SourceType = "python"
	SourceMarkdown SourceType = "markdown"
	SourceReadme   SourceType = "readme"
	SourceYAML     SourceType = "yaml"
	SourceOther    SourceType = "other"
)

// Priority ranks how urgently a stale page should be refreshed.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort order of a priority (high first).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 1
}

// SourceRef points at a file (or wildcard) inside an upstream repository.
type SourceRef struct {
	Repo     string     `json:"repo"`
	Path     string     `json:"path"`
	Type     SourceType `json:"type"`
	Required bool       `json:"required"`
}

// Validation describes how a generated page is checked.
type Validation struct {
	Rules               []string `json:"rules"`
	CustomRules         []string `json:"custom_rules"`
	AcceptanceThreshold float64  `json:"acceptance_threshold"`
}

// Generation describes how a page is (re)generated from its sources.
type Generation struct {
	PromptTemplate   *string  `json:"prompt_template"`
	TransformSteps   []string `json:"transform_steps"`
	OutputFormat     string   `json:"output_format"`
	PreserveSections []string `json:"preserve_sections"`
}

// SectionMeta holds bookkeeping fields for a section.
type SectionMeta struct {
	Priority   Priority `json:"priority"`
	AutoUpdate bool     `json:"auto_update"`
	LastSynced *string  `json:"last_synced"`
	Notes      string   `json:"notes,omitempty"`
}

// Section maps one documentation page to its upstream sources.
type Section struct {
	ID           string           `json:"id"`
	DocPath      string           `json:"doc_path"`
	Title        string           `json:"title"`
	Category     string           `json:"category"`
	Relationship RelationshipType `json:"relationship_type"`
	Sources      []SourceRef      `json:"sources"`
	Validation   Validation       `json:"validation"`
	Generation   Generation       `json:"generation"`
	Metadata     SectionMeta      `json:"metadata"`
}

// Syncable reports whether the section participates in content analysis.
func (s *Section) Syncable() bool {
	return s.Relationship != RelNone && len(s.Sources) > 0
}

// OutlineSummary aggregates counts across sections.
type OutlineSummary struct {
	TotalSections      int            `json:"total_sections"`
	ByRelationshipType map[string]int `json:"by_relationship_type"`
	ByCategory         map[string]int `json:"by_category"`
	ByPriority         map[string]int `json:"by_priority"`
}

// Outline is the full content synchronization outline for the docs site.
type Outline struct {
	Meta     OutlineMeta    `json:"_meta"`
	Sections []Section      `json:"content_sections"`
	Summary  OutlineSummary `json:"summary"`
}

// OutlineMeta carries site-wide configuration embedded in the outline.
type OutlineMeta struct {
	Name              string                     `json:"name"`
	Version           string                     `json:"version"`
	Description       string                     `json:"description"`
	TargetSite        string                     `json:"target_site"`
	GeneratedFrom     string                     `json:"generated_from"`
	GeneratedAt       string                     `json:"generated_at"`
	AllowedRepos      map[string][]string        `json:"allowed_repos"`
	GitHubOrg         string                     `json:"github_org"`
	GitHubBaseURL     string                     `json:"github_base_url"`
	RelationshipTypes map[string]RelationshipDef `json:"relationship_types"`
	ValidationRules   map[string]ValidationDef   `json:"validation_rule_definitions"`
	PromptTemplates   map[string]TemplateDef     `json:"prompt_templates"`
	Categories        []string                   `json:"categories"`
}

// RelationshipDef documents one relationship type.
type RelationshipDef struct {
	Description        string `json:"description"`
	GenerationStrategy string `json:"generation_strategy"`
	AllowsEnhancement  bool   `json:"allows_enhancement"`
}

// ValidationDef documents one validation rule.
type ValidationDef struct {
	Description string `json:"description"`
	Check       string `json:"check"`
}

// TemplateDef is a named prompt template.
type TemplateDef struct {
	Description string `json:"description"`
	Template    string `json:"template"`
}

// RepoAllowed reports whether repo appears in any allowed group.
func (m *OutlineMeta) RepoAllowed(repo string) bool {
	for _, group := range m.AllowedRepos {
		for _, r := range group {
			if r == repo {
				return true
			}
		}
	}
	return false
}
