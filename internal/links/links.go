// Package links checks that documentation links resolve: markdown links
// between pages (with anchors) and, optionally, hrefs in the built site.
package links

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Link is one outbound link found in a page.
type Link struct {
	Page     string // page path relative to docs dir
	Dest     string // raw destination
	External bool
}

// Issue is a broken-link finding.
type Issue struct {
	Page    string
	Dest    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s -> %s: %s", i.Page, i.Dest, i.Message)
}

// ExtractLinks walks a markdown document and returns its outbound links.
func ExtractLinks(page string, content []byte) []Link {
	var links []Link
	doc := goldmark.DefaultParser().Parse(text.NewReader(content))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest string
		switch v := n.(type) {
		case *ast.Link:
			dest = string(v.Destination)
		case *ast.AutoLink:
			dest = string(v.URL(content))
		default:
			return ast.WalkContinue, nil
		}
		if dest == "" {
			return ast.WalkContinue, nil
		}
		links = append(links, Link{
			Page:     page,
			Dest:     dest,
			External: isExternal(dest),
		})
		return ast.WalkContinue, nil
	})
	return links
}

func isExternal(dest string) bool {
	return strings.HasPrefix(dest, "http://") ||
		strings.HasPrefix(dest, "https://") ||
		strings.HasPrefix(dest, "mailto:")
}

var slugCleanRe = regexp.MustCompile(`[^\w\- ]`)

// HeadingSlug converts a heading to its anchor slug the way mkdocs does.
func HeadingSlug(heading string) string {
	s := strings.ToLower(strings.TrimSpace(heading))
	s = slugCleanRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// extractAnchors returns the set of heading anchors in a document.
func extractAnchors(content []byte) map[string]bool {
	anchors := make(map[string]bool)
	doc := goldmark.DefaultParser().Parse(text.NewReader(content))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if h, ok := n.(*ast.Heading); ok {
				anchors[HeadingSlug(string(h.Text(content)))] = true
			}
		}
		return ast.WalkContinue, nil
	})
	return anchors
}

// Checker validates internal links across a docs tree.
type Checker struct {
	docsDir string
	anchors map[string]map[string]bool // page -> anchor set, lazy
}

// NewChecker creates a checker rooted at the docs directory.
func NewChecker(docsDir string) *Checker {
	return &Checker{
		docsDir: docsDir,
		anchors: make(map[string]map[string]bool),
	}
}

// Result of a docs-wide link scan.
type Result struct {
	Pages    int
	Links    int
	External []Link
	Issues   []Issue
}

// CheckDocs scans every markdown page under the docs dir.
func (c *Checker) CheckDocs() (*Result, error) {
	result := &Result{}

	err := filepath.WalkDir(c.docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, err := filepath.Rel(c.docsDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read page %s: %w", rel, err)
		}

		result.Pages++
		for _, link := range ExtractLinks(rel, content) {
			result.Links++
			if link.External {
				result.External = append(result.External, link)
				continue
			}
			if issue := c.checkInternal(link); issue != nil {
				result.Issues = append(result.Issues, *issue)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Collect returns every internal link in the docs tree with its
// destination resolved relative to the docs root, fragments stripped.
// External links pass through unresolved.
func Collect(docsDir string) ([]Link, error) {
	var out []Link
	err := filepath.WalkDir(docsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}
		rel, err := filepath.Rel(docsDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read page %s: %w", rel, err)
		}

		for _, link := range ExtractLinks(rel, content) {
			if link.External {
				out = append(out, link)
				continue
			}
			dest, _, _ := strings.Cut(link.Dest, "#")
			if dest == "" {
				continue
			}
			out = append(out, Link{Page: rel, Dest: resolveDest(rel, dest)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolveDest resolves a link destination against its page, relative to
// the docs root. Directory destinations (trailing slash or no file
// extension) resolve to their index page.
func resolveDest(page, dest string) string {
	target := path.Join(path.Dir(page), dest)
	if strings.HasSuffix(dest, "/") || path.Ext(target) == "" {
		target = path.Join(target, "index.md")
	}
	return target
}

// checkInternal resolves a relative link from its page and verifies the
// target file and anchor exist.
func (c *Checker) checkInternal(link Link) *Issue {
	dest, fragment, _ := strings.Cut(link.Dest, "#")

	target := link.Page
	if dest != "" {
		target = resolveDest(link.Page, dest)
		if strings.HasPrefix(target, "../") {
			return &Issue{Page: link.Page, Dest: link.Dest, Message: "target escapes the docs directory"}
		}
		if _, err := os.Stat(filepath.Join(c.docsDir, filepath.FromSlash(target))); err != nil {
			return &Issue{Page: link.Page, Dest: link.Dest, Message: "target does not exist"}
		}
	}

	if fragment != "" && strings.HasSuffix(target, ".md") {
		anchors, err := c.anchorsFor(target)
		if err != nil {
			return &Issue{Page: link.Page, Dest: link.Dest, Message: "anchor target unreadable"}
		}
		if !anchors[fragment] {
			return &Issue{Page: link.Page, Dest: link.Dest,
				Message: fmt.Sprintf("anchor %q not found in %s", fragment, target)}
		}
	}
	return nil
}

func (c *Checker) anchorsFor(page string) (map[string]bool, error) {
	if anchors, ok := c.anchors[page]; ok {
		return anchors, nil
	}
	content, err := os.ReadFile(filepath.Join(c.docsDir, filepath.FromSlash(page)))
	if err != nil {
		return nil, err
	}
	anchors := extractAnchors(content)
	c.anchors[page] = anchors
	return anchors, nil
}
