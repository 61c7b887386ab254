// Package config provides centralized configuration for docsync.
// Environment, standard paths, and the optional docsync.yaml file all
// resolve through here instead of scattered os.Getenv calls.
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// DocsyncEnv holds all docsync environment variables.
type DocsyncEnv struct {
	// DocsDir is the documentation root (DOCSYNC_DOCS_DIR)
	DocsDir string

	// ReposDir is where upstream source repos are checked out (DOCSYNC_REPOS_DIR)
	ReposDir string

	// Outline is the path to the content outline JSON (DOCSYNC_OUTLINE)
	Outline string

	// SiteDir is the mkdocs build output directory (DOCSYNC_SITE_DIR)
	SiteDir string

	// Neo4jURI is the graph database URI (NEO4J_URI)
	Neo4jURI string

	// Neo4jUser is the graph database user (NEO4J_USER)
	Neo4jUser string

	// Neo4jPassword is the graph database password (NEO4J_PASSWORD)
	Neo4jPassword string

	// CI indicates a CI environment; disables pretty output (CI)
	CI bool
}

var (
	env     *DocsyncEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *DocsyncEnv {
	envOnce.Do(func() {
		env = &DocsyncEnv{
			DocsDir:       getEnvDefault("DOCSYNC_DOCS_DIR", "docs"),
			ReposDir:      getEnvDefault("DOCSYNC_REPOS_DIR", filepath.Join("~", "repos", "amplifier-sources")),
			Outline:       getEnvDefault("DOCSYNC_OUTLINE", filepath.Join("outlines", "amplifier-docs-outline.json")),
			SiteDir:       getEnvDefault("DOCSYNC_SITE_DIR", "site"),
			Neo4jURI:      getEnvDefault("NEO4J_URI", "bolt://localhost:7687"),
			Neo4jUser:     os.Getenv("NEO4J_USER"),
			Neo4jPassword: os.Getenv("NEO4J_PASSWORD"),
			CI:            os.Getenv("CI") != "",
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Paths holds standard docsync directory paths.
type Paths struct {
	// Home is the docsync home directory (~/.docsync)
	Home string

	// Data is the data directory (~/.docsync/data)
	Data string

	// Reports is the generated reports directory (~/.docsync/reports)
	Reports string

	// Cache is the analysis cache directory (~/.docsync/cache)
	Cache string

	// Logs is the run log directory (~/.docsync/logs)
	Logs string
}

var (
	paths     *Paths
	pathsOnce sync.Once
)

// GetPaths returns the singleton paths configuration.
func GetPaths() *Paths {
	pathsOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		root := filepath.Join(home, ".docsync")

		paths = &Paths{
			Home:    root,
			Data:    filepath.Join(root, "data"),
			Reports: filepath.Join(root, "reports"),
			Cache:   filepath.Join(root, "cache"),
			Logs:    filepath.Join(root, "logs"),
		}
	})
	return paths
}

// Path returns a path under the docsync home directory.
func Path(parts ...string) string {
	p := GetPaths()
	allParts := append([]string{p.Home}, parts...)
	return filepath.Join(allParts...)
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// ExpandHome replaces a leading ~ with the user home directory.
func ExpandHome(path string) string {
	if path == "~" || len(path) >= 2 && path[0] == '~' && os.IsPathSeparator(path[1]) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
