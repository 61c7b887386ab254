package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvDefaults(t *testing.T) {
	ResetEnv()
	t.Setenv("DOCSYNC_DOCS_DIR", "")
	t.Setenv("DOCSYNC_REPOS_DIR", "")

	e := Env()
	if e.DocsDir != "docs" {
		t.Errorf("DocsDir = %q, want %q", e.DocsDir, "docs")
	}
	if e.Neo4jURI != "bolt://localhost:7687" {
		t.Errorf("Neo4jURI = %q, want default bolt URI", e.Neo4jURI)
	}
}

func TestEnvOverride(t *testing.T) {
	ResetEnv()
	t.Setenv("DOCSYNC_DOCS_DIR", "/tmp/docs")
	t.Setenv("CI", "true")

	e := Env()
	if e.DocsDir != "/tmp/docs" {
		t.Errorf("DocsDir = %q, want %q", e.DocsDir, "/tmp/docs")
	}
	if !e.CI {
		t.Error("CI should be true")
	}
	ResetEnv()
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	got := ExpandHome(filepath.Join("~", "repos"))
	want := filepath.Join(home, "repos")
	if got != want {
		t.Errorf("ExpandHome = %q, want %q", got, want)
	}

	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(old)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Nav.Tabs != 6 {
		t.Errorf("Nav.Tabs = %d, want 6", p.Nav.Tabs)
	}
	if p.Mapping != "docs/DOC_SOURCE_MAPPING.csv" {
		t.Errorf("Mapping = %q", p.Mapping)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsync.yaml")
	content := []byte("docs_dir: site-docs\nnav:\n  tabs: 4\n")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.DocsDir != "site-docs" {
		t.Errorf("DocsDir = %q, want %q", p.DocsDir, "site-docs")
	}
	if p.Nav.Tabs != 4 {
		t.Errorf("Nav.Tabs = %d, want 4", p.Nav.Tabs)
	}
	// Unset keys keep defaults.
	if p.Nav.File != "mkdocs.yaml" {
		t.Errorf("Nav.File = %q, want mkdocs.yaml", p.Nav.File)
	}
}
