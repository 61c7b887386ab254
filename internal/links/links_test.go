package links

import (
	"os"
	"path/filepath"
	"testing"
)

func writePage(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExtractLinks(t *testing.T) {
	content := []byte(`# Page

See [the kernel](../architecture/kernel.md) and [docs](https://example.com/docs).

Also <https://example.com/auto>.
`)
	links := ExtractLinks("modules/index.md", content)
	if len(links) != 3 {
		t.Fatalf("links = %+v", links)
	}
	if links[0].External || links[0].Dest != "../architecture/kernel.md" {
		t.Errorf("links[0] = %+v", links[0])
	}
	if !links[1].External || !links[2].External {
		t.Errorf("external links not flagged: %+v", links[1:])
	}
}

func TestHeadingSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Configuration", "configuration"},
		{"Error Handling", "error-handling"},
		{"What's New?", "whats-new"},
		{"tool:pre / tool:post", "toolpre--toolpost"},
	}
	for _, tt := range tests {
		if got := HeadingSlug(tt.in); got != tt.want {
			t.Errorf("HeadingSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCheckDocsClean(t *testing.T) {
	docs := t.TempDir()
	writePage(t, docs, "index.md", "[guide](guide/index.md)\n")
	writePage(t, docs, "guide/index.md", "## Setup\n\n[home](../index.md)\n[setup](#setup)\n")

	c := NewChecker(docs)
	result, err := c.CheckDocs()
	if err != nil {
		t.Fatalf("CheckDocs failed: %v", err)
	}
	if len(result.Issues) != 0 {
		t.Errorf("issues = %v", result.Issues)
	}
	if result.Pages != 2 {
		t.Errorf("pages = %d, want 2", result.Pages)
	}
}

func TestCheckDocsBrokenTarget(t *testing.T) {
	docs := t.TempDir()
	writePage(t, docs, "index.md", "[missing](nope.md)\n")

	result, err := NewChecker(docs).CheckDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %v", result.Issues)
	}
	if result.Issues[0].Message != "target does not exist" {
		t.Errorf("issue = %+v", result.Issues[0])
	}
}

func TestCheckDocsBrokenAnchor(t *testing.T) {
	docs := t.TempDir()
	writePage(t, docs, "index.md", "[cfg](guide.md#configuration)\n[ok](guide.md#setup)\n")
	writePage(t, docs, "guide.md", "## Setup\n")

	result, err := NewChecker(docs).CheckDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %v", result.Issues)
	}
	if result.Issues[0].Dest != "guide.md#configuration" {
		t.Errorf("issue = %+v", result.Issues[0])
	}
}

func TestCheckDocsExternalNotFetched(t *testing.T) {
	docs := t.TempDir()
	writePage(t, docs, "index.md", "[ext](https://example.com/broken)\n")

	result, err := NewChecker(docs).CheckDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 0 {
		t.Errorf("external links must not produce issues: %v", result.Issues)
	}
	if len(result.External) != 1 {
		t.Errorf("external = %v", result.External)
	}
}

func TestCheckDocsEscapingLink(t *testing.T) {
	docs := t.TempDir()
	writePage(t, docs, "index.md", "[up](../secrets.md)\n")

	result, err := NewChecker(docs).CheckDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %v", result.Issues)
	}
}

func TestCheckSite(t *testing.T) {
	site := t.TempDir()
	writePage(t, site, "index.html",
		`<html><body><a href="guide/">Guide</a><a href="missing/page.html">x</a><a href="https://example.com">e</a></body></html>`)
	writePage(t, site, "guide/index.html", `<html><body><a href="../">Home</a></body></html>`)

	result, err := CheckSite(site)
	if err != nil {
		t.Fatalf("CheckSite failed: %v", err)
	}
	if result.Pages != 2 {
		t.Errorf("pages = %d, want 2", result.Pages)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %v", result.Issues)
	}
	if result.Issues[0].Dest != "missing/page.html" {
		t.Errorf("issue = %+v", result.Issues[0])
	}
	if len(result.External) != 1 {
		t.Errorf("external = %v", result.External)
	}
}

func TestCollectResolvesRelative(t *testing.T) {
	docs := t.TempDir()
	writePage(t, docs, "index.md", "[Guide](guides/setup.md) [Ext](https://example.com)")
	writePage(t, docs, "guides/setup.md", "[Home](../index.md) [Dir](../concepts/)")

	links, err := Collect(docs)
	if err != nil {
		t.Fatal(err)
	}

	var internal []Link
	for _, l := range links {
		if !l.External {
			internal = append(internal, l)
		}
	}
	if len(internal) != 3 {
		t.Fatalf("internal links = %v", internal)
	}
	if internal[0].Dest != "guides/setup.md" {
		t.Errorf("dest = %s", internal[0].Dest)
	}
	if internal[1].Dest != "index.md" {
		t.Errorf("dest = %s", internal[1].Dest)
	}
	if internal[2].Dest != "concepts/index.md" {
		t.Errorf("dest = %s", internal[2].Dest)
	}
}

func TestCheckDocsDirectoryLinkWithoutSlash(t *testing.T) {
	docs := t.TempDir()
	writePage(t, docs, "index.md", "[guides](guides)\n")
	writePage(t, docs, "guides/index.md", "# Guides\n")

	result, err := NewChecker(docs).CheckDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("issues = %v", result.Issues)
	}

	// Same link with no index page behind it is broken.
	docs2 := t.TempDir()
	writePage(t, docs2, "index.md", "[guides](guides)\n")

	result, err = NewChecker(docs2).CheckDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %v", result.Issues)
	}
}
