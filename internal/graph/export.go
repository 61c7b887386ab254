package graph

import (
	"context"
	"fmt"
	"sort"

	"github.com/amplifier-docs/docsync/internal/domain"
	"github.com/amplifier-docs/docsync/internal/links"
)

// Exporter mirrors the documentation map into the graph database.
type Exporter struct {
	db Driver
}

// NewExporter creates an exporter over an open driver.
func NewExporter(db Driver) *Exporter {
	return &Exporter{db: db}
}

// Export replaces the documentation graph: Section and SourceFile
// nodes, SOURCED_FROM edges from the outline, and LINKS_TO edges from
// the pages' internal links.
func (e *Exporter) Export(ctx context.Context, outline *domain.Outline, pageLinks []links.Link) error {
	if err := e.clear(ctx); err != nil {
		return err
	}
	if err := e.exportSections(ctx, outline); err != nil {
		return err
	}
	return e.exportLinks(ctx, pageLinks)
}

func (e *Exporter) clear(ctx context.Context) error {
	err := e.db.ExecuteWrite(ctx,
		`MATCH (n) WHERE n:Section OR n:SourceFile DETACH DELETE n`, nil)
	if err != nil {
		return fmt.Errorf("clearing graph: %w", err)
	}
	return nil
}

func (e *Exporter) exportSections(ctx context.Context, outline *domain.Outline) error {
	for i := range outline.Sections {
		section := &outline.Sections[i]
		err := e.db.ExecuteWrite(ctx, `
			MERGE (s:Section {id: $id})
			SET s.doc_path = $doc_path,
			    s.title = $title,
			    s.category = $category,
			    s.relationship = $relationship,
			    s.priority = $priority`,
			map[string]any{
				"id":           section.ID,
				"doc_path":     section.DocPath,
				"title":        section.Title,
				"category":     section.Category,
				"relationship": string(section.Relationship),
				"priority":     string(section.Metadata.Priority),
			})
		if err != nil {
			return fmt.Errorf("exporting section %s: %w", section.ID, err)
		}

		for _, src := range section.Sources {
			err := e.db.ExecuteWrite(ctx, `
				MERGE (f:SourceFile {repo: $repo, path: $path})
				SET f.type = $type
				WITH f
				MATCH (s:Section {id: $section})
				MERGE (s)-[r:SOURCED_FROM]->(f)
				SET r.required = $required`,
				map[string]any{
					"repo":     src.Repo,
					"path":     src.Path,
					"type":     string(src.Type),
					"section":  section.ID,
					"required": src.Required,
				})
			if err != nil {
				return fmt.Errorf("exporting source %s/%s: %w", src.Repo, src.Path, err)
			}
		}
	}
	return nil
}

func (e *Exporter) exportLinks(ctx context.Context, pageLinks []links.Link) error {
	for _, link := range pageLinks {
		if link.External {
			continue
		}
		err := e.db.ExecuteWrite(ctx, `
			MATCH (a:Section {doc_path: $from})
			MATCH (b:Section {doc_path: $to})
			MERGE (a)-[:LINKS_TO]->(b)`,
			map[string]any{
				"from": "docs/" + link.Page,
				"to":   "docs/" + link.Dest,
			})
		if err != nil {
			return fmt.Errorf("exporting link %s -> %s: %w", link.Page, link.Dest, err)
		}
	}
	return nil
}

// Coverage summarizes the source graph per repository: how many
// sections each repo feeds.
type Coverage struct {
	Repo     string
	Sections int64
	Files    int64
}

// RepoCoverage queries how many sections each repository sources.
func (e *Exporter) RepoCoverage(ctx context.Context) ([]Coverage, error) {
	records, err := e.db.Execute(ctx, `
		MATCH (s:Section)-[:SOURCED_FROM]->(f:SourceFile)
		RETURN f.repo AS repo,
		       count(DISTINCT s) AS sections,
		       count(DISTINCT f) AS files
		ORDER BY sections DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("coverage query: %w", err)
	}

	var out []Coverage
	for _, rec := range records {
		c := Coverage{}
		if v, ok := rec["repo"].(string); ok {
			c.Repo = v
		}
		if v, ok := rec["sections"].(int64); ok {
			c.Sections = v
		}
		if v, ok := rec["files"].(int64); ok {
			c.Files = v
		}
		out = append(out, c)
	}
	return out, nil
}

// UndocumentedRepos returns registry repos that no section sources:
// the outline's allowed-repos registry minus repos with SOURCED_FROM
// edges.
func (e *Exporter) UndocumentedRepos(ctx context.Context, meta *domain.OutlineMeta) ([]string, error) {
	records, err := e.db.Execute(ctx, `
		MATCH (:Section)-[:SOURCED_FROM]->(f:SourceFile)
		RETURN DISTINCT f.repo AS repo`, nil)
	if err != nil {
		return nil, fmt.Errorf("sourced repos query: %w", err)
	}

	covered := make(map[string]bool, len(records))
	for _, rec := range records {
		if v, ok := rec["repo"].(string); ok {
			covered[v] = true
		}
	}

	var out []string
	seen := make(map[string]bool)
	for _, repos := range meta.AllowedRepos {
		for _, repo := range repos {
			if !covered[repo] && !seen[repo] {
				seen[repo] = true
				out = append(out, repo)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// Orphans returns sections no other section links to.
func (e *Exporter) Orphans(ctx context.Context) ([]string, error) {
	records, err := e.db.Execute(ctx, `
		MATCH (s:Section)
		WHERE NOT ()-[:LINKS_TO]->(s) AND s.doc_path <> 'docs/index.md'
		RETURN s.doc_path AS doc_path ORDER BY doc_path`, nil)
	if err != nil {
		return nil, fmt.Errorf("orphans query: %w", err)
	}

	var out []string
	for _, rec := range records {
		if v, ok := rec["doc_path"].(string); ok {
			out = append(out, v)
		}
	}
	return out, nil
}
