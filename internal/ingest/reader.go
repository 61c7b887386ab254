// Package ingest resolves and aggregates upstream source content for
// outline sections.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	gocache "github.com/patrickmn/go-cache"

	"github.com/amplifier-docs/docsync/internal/domain"
)

// Wildcard sources cap how many files they pull in; a glob over a module
// tree can otherwise drown the fact comparison.
const maxWildcardFiles = 5

// Reader aggregates source files for sections. File reads are cached
// because sections frequently share sources (READMEs especially).
type Reader struct {
	reposDir string
	cache    *gocache.Cache
}

// NewReader creates a reader rooted at the repos checkout directory.
func NewReader(reposDir string) *Reader {
	return &Reader{
		reposDir: reposDir,
		cache:    gocache.New(10*time.Minute, 30*time.Minute),
	}
}

// Aggregate is the combined source content for one section.
type Aggregate struct {
	Content      string
	SourcesFound int
	Missing      []string
}

// Resolve expands a source ref to concrete file paths. Wildcard paths
// expand via glob with a file cap; plain paths must exist.
func (r *Reader) Resolve(ref domain.SourceRef) ([]string, error) {
	base := filepath.Join(r.reposDir, ref.Repo)

	if !strings.ContainsAny(ref.Path, "*?[") {
		p := filepath.Join(base, ref.Path)
		if _, err := os.Stat(p); err != nil {
			return nil, err
		}
		return []string{p}, nil
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(base, ref.Path))
	if err != nil {
		return nil, fmt.Errorf("glob %s/%s: %w", ref.Repo, ref.Path, err)
	}
	if len(matches) == 0 {
		return nil, os.ErrNotExist
	}
	sort.Strings(matches)
	if len(matches) > maxWildcardFiles {
		matches = matches[:maxWildcardFiles]
	}
	return matches, nil
}

// ReadSources aggregates the content of all resolvable sources for a
// section. Unresolvable refs are reported, not fatal.
func (r *Reader) ReadSources(refs []domain.SourceRef) (Aggregate, error) {
	var agg Aggregate
	var sb strings.Builder

	for _, ref := range refs {
		paths, err := r.Resolve(ref)
		if err != nil {
			agg.Missing = append(agg.Missing, ref.Repo+"/"+ref.Path)
			continue
		}

		readAny := false
		for _, p := range paths {
			content, err := r.readFile(p)
			if err != nil {
				continue
			}
			sb.WriteString(content)
			sb.WriteString("\n\n")
			readAny = true
		}
		if readAny {
			agg.SourcesFound++
		} else {
			agg.Missing = append(agg.Missing, ref.Repo+"/"+ref.Path)
		}
	}

	agg.Content = sb.String()
	return agg, nil
}

func (r *Reader) readFile(path string) (string, error) {
	if v, ok := r.cache.Get(path); ok {
		if content, ok := v.(string); ok {
			return content, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content := string(data)
	r.cache.Set(path, content, gocache.DefaultExpiration)
	return content, nil
}
