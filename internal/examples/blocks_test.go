package examples

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `# Mounting Modules

A session mounts modules through a plan:

` + "```yaml" + `
session:
  orchestrator: loop-basic
  context: context-simple
modules:
  - module: tool-filesystem
    source: git+https://github.com/example/amplifier-module-tool-filesystem
  - module: provider-anthropic
    config:
      model: claude-sonnet-4
` + "```" + `

Event lines are plain JSON:

` + "```json" + `
{"event": "tool:pre", "name": "read_file"}
` + "```" + `

Shell usage requires no linting:

` + "```bash" + `
docsync analyze --pretty
` + "```" + `
`

func TestExtractBlocks(t *testing.T) {
	blocks := ExtractBlocks("guide.md", []byte(samplePage))
	require.Len(t, blocks, 3)

	assert.Equal(t, "yaml", blocks[0].Language)
	assert.Contains(t, blocks[0].Code, "orchestrator: loop-basic")
	assert.Equal(t, "json", blocks[1].Language)
	assert.Equal(t, "bash", blocks[2].Language)

	// Line numbers point at the block content, not the fence.
	assert.Greater(t, blocks[1].Line, blocks[0].Line)
}

func TestLintPageClean(t *testing.T) {
	linter, err := NewLinter()
	require.NoError(t, err)

	result := linter.LintPage("guide.md", []byte(samplePage))
	assert.Equal(t, 3, result.Blocks)
	assert.Equal(t, 1, result.MountPlans)
	assert.False(t, result.HasErrors(), "issues: %v", result.Issues)
}

func TestLintPageBadYAML(t *testing.T) {
	linter, err := NewLinter()
	require.NoError(t, err)

	page := "```yaml\nkey: [unclosed\n```\n"
	result := linter.LintPage("bad.md", []byte(page))
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "yaml_parse", result.Issues[0].Kind)
}

func TestLintPageBadJSON(t *testing.T) {
	linter, err := NewLinter()
	require.NoError(t, err)

	page := "```json\n{\"event\": }\n```\n"
	result := linter.LintPage("bad.md", []byte(page))
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "json_parse", result.Issues[0].Kind)
}

func TestLintJSONLPerLine(t *testing.T) {
	linter, err := NewLinter()
	require.NoError(t, err)

	page := "```jsonl\n{\"event\": \"session:start\"}\nnot json\n{\"event\": \"session:end\"}\n```\n"
	result := linter.LintPage("events.md", []byte(page))
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0].Message, "line 2")
}

func TestMountPlanMissingModuleID(t *testing.T) {
	linter, err := NewLinter()
	require.NoError(t, err)

	page := "```yaml\nmodules:\n  - source: git+https://example.com/repo\n```\n"
	result := linter.LintPage("plan.md", []byte(page))
	assert.Equal(t, 1, result.MountPlans)
	require.NotEmpty(t, result.Issues)
	assert.Equal(t, "mount_plan_schema", result.Issues[0].Kind)
	assert.Contains(t, result.Issues[0].Message, "module")
}

func TestMountPlanUnknownModuleKey(t *testing.T) {
	linter, err := NewLinter()
	require.NoError(t, err)

	page := "```yaml\nmodules:\n  - module: tool-bash\n    version: 1.2.3\n```\n"
	result := linter.LintPage("plan.md", []byte(page))
	require.NotEmpty(t, result.Issues)
	assert.Equal(t, "mount_plan_schema", result.Issues[0].Kind)
}

func TestPlainYAMLNotTreatedAsMountPlan(t *testing.T) {
	linter, err := NewLinter()
	require.NoError(t, err)

	page := "```yaml\nsite_name: Amplifier\ntheme:\n  name: material\n```\n"
	result := linter.LintPage("mkdocs.md", []byte(page))
	assert.Equal(t, 0, result.MountPlans)
	assert.False(t, result.HasErrors())
}

func TestLintDocsWalk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "guides"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.md"), []byte(samplePage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guides", "bad.md"),
		[]byte("```json\nnope\n```\n"), 0o644))

	linter, err := NewLinter()
	require.NoError(t, err)

	result, err := linter.LintDocs(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pages)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "guides/bad.md", result.Issues[0].Page)
}
