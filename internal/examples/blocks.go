// Package examples lints the illustrative code blocks embedded in
// documentation pages: YAML and JSON snippets must parse, and mount
// plan examples must match the documented schema.
package examples

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Block is one fenced code block extracted from a page.
type Block struct {
	Page     string
	Language string
	Line     int
	Code     string
}

// ExtractBlocks returns all fenced code blocks in a markdown document.
func ExtractBlocks(page string, content []byte) []Block {
	var blocks []Block
	doc := goldmark.DefaultParser().Parse(text.NewReader(content))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		cb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var code string
		var line int
		if cb.Lines().Len() > 0 {
			start := cb.Lines().At(0).Start
			stop := cb.Lines().At(cb.Lines().Len() - 1).Stop
			code = string(content[start:stop])
			line = lineAt(content, start)
		}
		blocks = append(blocks, Block{
			Page:     page,
			Language: strings.ToLower(string(cb.Language(content))),
			Line:     line,
			Code:     code,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

func lineAt(content []byte, offset int) int {
	line := 1
	for i := 0; i < offset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
		}
	}
	return line
}

// Issue is one lint finding for an embedded example.
type Issue struct {
	Page    string
	Line    int
	Kind    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s:%d [%s] %s", i.Page, i.Line, i.Kind, i.Message)
}

// Result of an example lint run.
type Result struct {
	Pages      int
	Blocks     int
	MountPlans int
	Issues     []Issue
}

// Linter validates embedded examples.
type Linter struct {
	mountPlan *mountPlanValidator
}

// NewLinter creates the linter.
func NewLinter() (*Linter, error) {
	mp, err := newMountPlanValidator()
	if err != nil {
		return nil, err
	}
	return &Linter{mountPlan: mp}, nil
}

// LintDocs checks every markdown page under the docs dir.
func (l *Linter) LintDocs(docsDir string) (*Result, error) {
	result := &Result{}

	err := filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, err := filepath.Rel(docsDir, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read page %s: %w", rel, err)
		}

		result.Pages++
		l.lintPage(filepath.ToSlash(rel), content, result)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LintPage checks one page's blocks.
func (l *Linter) LintPage(page string, content []byte) *Result {
	result := &Result{Pages: 1}
	l.lintPage(page, content, result)
	return result
}

func (l *Linter) lintPage(page string, content []byte, result *Result) {
	for _, block := range ExtractBlocks(page, content) {
		result.Blocks++
		switch block.Language {
		case "yaml", "yml":
			l.lintYAML(block, result)
		case "json", "jsonl":
			l.lintJSON(block, result)
		}
	}
}

func (l *Linter) lintYAML(block Block, result *Result) {
	var doc any
	if err := yaml.Unmarshal([]byte(block.Code), &doc); err != nil {
		result.Issues = append(result.Issues, Issue{
			Page:    block.Page,
			Line:    block.Line,
			Kind:    "yaml_parse",
			Message: yamlErr(err),
		})
		return
	}

	if isMountPlan(doc) {
		result.MountPlans++
		for _, msg := range l.mountPlan.validate(doc) {
			result.Issues = append(result.Issues, Issue{
				Page:    block.Page,
				Line:    block.Line,
				Kind:    "mount_plan_schema",
				Message: msg,
			})
		}
	}
}

func (l *Linter) lintJSON(block Block, result *Result) {
	// JSONL blocks validate line by line.
	if block.Language == "jsonl" {
		for i, line := range strings.Split(strings.TrimSpace(block.Code), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !json.Valid([]byte(line)) {
				result.Issues = append(result.Issues, Issue{
					Page:    block.Page,
					Line:    block.Line + i,
					Kind:    "json_parse",
					Message: fmt.Sprintf("invalid JSON on line %d of block", i+1),
				})
			}
		}
		return
	}

	if !json.Valid([]byte(block.Code)) {
		result.Issues = append(result.Issues, Issue{
			Page:    block.Page,
			Line:    block.Line,
			Kind:    "json_parse",
			Message: "invalid JSON",
		})
	}
}

func yamlErr(err error) string {
	// yaml errors embed a noisy prefix per line; keep the first line
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i > 0 {
		msg = msg[:i]
	}
	return msg
}

// HasErrors reports whether the lint run found any issues.
func (r *Result) HasErrors() bool {
	return len(r.Issues) > 0
}
