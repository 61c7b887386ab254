// Package nav validates the mkdocs site navigation: tab structure,
// entry resolution, theme feature flags, and orphaned pages.
package nav

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MkdocsConfig is the subset of mkdocs.yaml the checks need.
type MkdocsConfig struct {
	SiteName string `yaml:"site_name"`
	DocsDir  string `yaml:"docs_dir"`
	Theme    struct {
		Name     string   `yaml:"name"`
		Features []string `yaml:"features"`
	} `yaml:"theme"`
	Plugins []yaml.Node `yaml:"plugins"`
	Nav     []yaml.Node `yaml:"nav"`
}

// Entry is one flattened navigation entry.
type Entry struct {
	Title string
	Path  string // empty for pure section headers
	Depth int
}

// Tab is a top-level navigation tab.
type Tab struct {
	Title   string
	Entries []Entry
}

// Load parses mkdocs.yaml. When the nav key is absent and the
// literate-nav plugin is configured, the .nav.yml under the docs dir is
// parsed instead.
func Load(mkdocsPath string) (*MkdocsConfig, []Tab, error) {
	data, err := os.ReadFile(mkdocsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read mkdocs config: %w", err)
	}

	var cfg MkdocsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parse mkdocs config: %w", err)
	}
	if cfg.DocsDir == "" {
		cfg.DocsDir = "docs"
	}

	navNodes := cfg.Nav
	if len(navNodes) == 0 && cfg.HasPlugin("literate-nav") {
		navFile := filepath.Join(filepath.Dir(mkdocsPath), cfg.DocsDir, ".nav.yml")
		navNodes, err = loadLiterateNav(navFile)
		if err != nil {
			return nil, nil, err
		}
	}

	tabs, err := parseTabs(navNodes)
	if err != nil {
		return nil, nil, err
	}
	return &cfg, tabs, nil
}

// HasPlugin reports whether the named plugin is configured. Plugins may
// be plain strings or single-key maps with options.
func (c *MkdocsConfig) HasPlugin(name string) bool {
	for _, n := range c.Plugins {
		switch n.Kind {
		case yaml.ScalarNode:
			if n.Value == name {
				return true
			}
		case yaml.MappingNode:
			if len(n.Content) > 0 && n.Content[0].Value == name {
				return true
			}
		}
	}
	return false
}

func loadLiterateNav(path string) ([]yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read literate nav: %w", err)
	}
	var doc struct {
		Nav []yaml.Node `yaml:"nav"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse literate nav: %w", err)
	}
	if len(doc.Nav) == 0 {
		// a bare top-level list is also accepted
		var bare []yaml.Node
		if err := yaml.Unmarshal(data, &bare); err != nil {
			return nil, fmt.Errorf("parse literate nav: %w", err)
		}
		return bare, nil
	}
	return doc.Nav, nil
}

func parseTabs(nodes []yaml.Node) ([]Tab, error) {
	tabs := make([]Tab, 0, len(nodes))
	for _, n := range nodes {
		title, entries, err := parseItem(&n, 0)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, Tab{Title: title, Entries: entries})
	}
	return tabs, nil
}

// parseItem flattens one nav item. Items are either a bare path, a
// {Title: path} pair, or a {Title: [children]} section.
func parseItem(n *yaml.Node, depth int) (string, []Entry, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return "", []Entry{{Path: n.Value, Depth: depth}}, nil

	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return "", nil, fmt.Errorf("nav item at line %d: expected single-key mapping", n.Line)
		}
		title := n.Content[0].Value
		value := n.Content[1]

		switch value.Kind {
		case yaml.ScalarNode:
			return title, []Entry{{Title: title, Path: value.Value, Depth: depth}}, nil
		case yaml.SequenceNode:
			entries := []Entry{{Title: title, Depth: depth}}
			for i := range value.Content {
				_, children, err := parseItem(value.Content[i], depth+1)
				if err != nil {
					return "", nil, err
				}
				entries = append(entries, children...)
			}
			return title, entries, nil
		}
		return "", nil, fmt.Errorf("nav item %q at line %d: unsupported value", title, n.Line)
	}
	return "", nil, fmt.Errorf("nav item at line %d: unsupported node", n.Line)
}

// Severity of a nav issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding from the nav checks.
type Issue struct {
	Severity Severity
	Check    string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Check, i.Message)
}

// CheckOptions configure the nav validation.
type CheckOptions struct {
	// ExpectedTabs is the required top-level tab count (0 disables).
	ExpectedTabs int
	// RequiredFeatures must all appear in theme.features.
	RequiredFeatures []string
}

// Check validates the navigation against a docs directory.
func Check(cfg *MkdocsConfig, tabs []Tab, docsDir string, opts CheckOptions) []Issue {
	var issues []Issue

	if opts.ExpectedTabs > 0 && len(tabs) != opts.ExpectedTabs {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Check:    "tab_count",
			Message:  fmt.Sprintf("navigation has %d top-level tabs, want %d", len(tabs), opts.ExpectedTabs),
		})
	}

	for _, feature := range opts.RequiredFeatures {
		if !contains(cfg.Theme.Features, feature) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Check:    "theme_features",
				Message:  fmt.Sprintf("theme.features missing %q", feature),
			})
		}
	}

	referenced := make(map[string]bool)
	for _, tab := range tabs {
		for _, entry := range tab.Entries {
			if entry.Path == "" || isExternal(entry.Path) {
				continue
			}
			referenced[entry.Path] = true
			full := filepath.Join(docsDir, entry.Path)
			if _, err := os.Stat(full); err != nil {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Check:    "nav_entry_exists",
					Message:  fmt.Sprintf("nav entry %q does not resolve under %s", entry.Path, docsDir),
				})
			}
		}
	}

	for _, orphan := range findOrphans(docsDir, referenced) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Check:    "orphan_page",
			Message:  fmt.Sprintf("page %q is not reachable from the navigation", orphan),
		})
	}

	return issues
}

func findOrphans(docsDir string, referenced map[string]bool) []string {
	var orphans []string
	_ = filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, err := filepath.Rel(docsDir, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !referenced[rel] {
			orphans = append(orphans, rel)
		}
		return nil
	})
	return orphans
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func isExternal(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
