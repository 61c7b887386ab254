package outline

import (
	"time"

	"github.com/amplifier-docs/docsync/internal/domain"
)

// DefaultMeta returns the site-wide outline metadata: the allowed repo
// registry, relationship and validation rule definitions, and the prompt
// templates the regeneration pipeline uses.
func DefaultMeta(now time.Time) domain.OutlineMeta {
	return domain.OutlineMeta{
		Name:          "amplifier-docs-content-outline",
		Version:       "1.0.0",
		Description:   "Content synchronization outline for amplifier-docs",
		TargetSite:    "https://microsoft.github.io/amplifier-docs/",
		GeneratedFrom: "docs/DOC_SOURCE_MAPPING.csv",
		GeneratedAt:   now.UTC().Format(time.RFC3339),
		AllowedRepos: map[string][]string{
			"core": {
				"amplifier",
				"amplifier-core",
				"amplifier-foundation",
				"amplifier-app-cli",
			},
			"libraries": {
				"amplifier-profiles",
				"amplifier-collections",
				"amplifier-config",
				"amplifier-module-resolution",
			},
			"providers": {
				"amplifier-module-provider-anthropic",
				"amplifier-module-provider-openai",
				"amplifier-module-provider-azure-openai",
				"amplifier-module-provider-ollama",
				"amplifier-module-provider-vllm",
				"amplifier-module-provider-mock",
			},
			"tools": {
				"amplifier-module-tool-filesystem",
				"amplifier-module-tool-bash",
				"amplifier-module-tool-web",
				"amplifier-module-tool-search",
				"amplifier-module-tool-task",
				"amplifier-module-tool-todo",
			},
			"hooks": {
				"amplifier-module-hooks-logging",
				"amplifier-module-hooks-approval",
				"amplifier-module-hooks-redaction",
				"amplifier-module-hooks-backup",
				"amplifier-module-hooks-scheduler-cost-aware",
				"amplifier-module-hooks-scheduler-heuristic",
				"amplifier-module-hooks-status-context",
				"amplifier-module-hooks-streaming-ui",
				"amplifier-module-hooks-todo-reminder",
			},
			"orchestrators": {
				"amplifier-module-loop-basic",
				"amplifier-module-loop-streaming",
				"amplifier-module-loop-events",
			},
			"contexts": {
				"amplifier-module-context-simple",
				"amplifier-module-context-persistent",
			},
		},
		GitHubOrg:     "microsoft",
		GitHubBaseURL: "https://github.com/microsoft",
		RelationshipTypes: map[string]domain.RelationshipDef{
			"DIRECT": {
				Description:        "Content closely matches source with minimal transformation",
				GenerationStrategy: "copy_transform",
				AllowsEnhancement:  false,
			},
			"DERIVED": {
				Description:        "Synthesized from sources, can enhance and adapt",
				GenerationStrategy: "synthesize",
				AllowsEnhancement:  true,
			},
			"REFERENCE": {
				Description:        "References sources for validation only, not regenerated",
				GenerationStrategy: "validate_only",
				AllowsEnhancement:  true,
			},
			"N/A": {
				Description:        "Manually maintained, skip generation",
				GenerationStrategy: "skip",
				AllowsEnhancement:  true,
			},
		},
		ValidationRules: map[string]domain.ValidationDef{
			"exact_source_match": {
				Description: "Core content matches source verbatim (excluding formatting)",
				Check:       "diff_content_normalized",
			},
			"format_consistency": {
				Description: "Markdown formatting follows site standards",
				Check:       "lint_markdown",
			},
			"metadata_preserved": {
				Description: "Source metadata preserved in output",
				Check:       "compare_frontmatter",
			},
			"factual_accuracy": {
				Description: "All facts trace to source material",
				Check:       "source_citation_check",
			},
			"source_traceability": {
				Description: "Each claim can be traced to specific source",
				Check:       "traceability_analysis",
			},
			"no_hallucination": {
				Description: "No invented facts beyond sources",
				Check:       "hallucination_detection",
			},
			"sources_exist": {
				Description: "All referenced source files exist",
				Check:       "file_existence",
			},
			"links_valid": {
				Description: "All internal and external links resolve",
				Check:       "link_validation",
			},
			"refs_current": {
				Description: "Referenced versions match current releases",
				Check:       "version_comparison",
			},
			"build_passes": {
				Description: "Documentation builds without errors",
				Check:       "mkdocs_build_strict",
			},
		},
		PromptTemplates: map[string]domain.TemplateDef{
			"direct_copy": {
				Description: "Copy with minimal transformation",
				Template:    "Copy the source content. Add navigation header. Update internal links to match site structure. Preserve all technical accuracy.",
			},
			"synthesize_architecture": {
				Description: "Synthesize architecture documentation",
				Template:    "Create architecture documentation by:\n1. Extract core philosophy from design docs\n2. Analyze implementation patterns from code\n3. Synthesize into clear narrative\n4. Add diagrams where helpful\n5. Include practical examples\n\nMaintain factual accuracy - every claim must trace to sources.",
			},
			"synthesize_documentation": {
				Description: "Synthesize general documentation",
				Template:    "Create documentation by synthesizing the source materials:\n1. Extract key concepts and information\n2. Organize in a logical structure\n3. Write clear explanations\n4. Add examples where helpful\n5. Ensure all facts trace to sources",
			},
			"module_reference": {
				Description: "Generate module reference page",
				Template:    "Create module documentation including:\n- Purpose and capabilities\n- Installation instructions\n- Configuration options (from source)\n- Usage examples\n- API reference\n\nVerify all information against README and source code.",
			},
			"api_from_docstrings": {
				Description: "Generate API docs from Python docstrings",
				Template:    "Extract and format API documentation from Python source:\n- Class/function signatures\n- Parameter documentation\n- Return types\n- Usage examples from docstrings\n- Cross-references to related APIs",
			},
			"validate_only": {
				Description: "Validate references without regenerating",
				Template:    "Verify that all source references exist and are accessible. Report any broken links or missing files.",
			},
		},
		Categories: []string{
			"index",
			"getting_started",
			"user_guide",
			"developer_guides",
			"developer",
			"architecture",
			"api",
			"modules",
			"libraries",
			"ecosystem",
			"showcase",
			"community",
		},
	}
}
