package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Project is the file-backed configuration for a docs checkout.
// Loaded from docsync.yaml in the working directory (or --config).
type Project struct {
	DocsDir  string `mapstructure:"docs_dir"`
	ReposDir string `mapstructure:"repos_dir"`
	Outline  string `mapstructure:"outline"`
	SiteDir  string `mapstructure:"site_dir"`
	Mapping  string `mapstructure:"mapping"`

	Nav struct {
		File             string   `mapstructure:"file"`
		Tabs             int      `mapstructure:"tabs"`
		RequiredFeatures []string `mapstructure:"required_features"`
	} `mapstructure:"nav"`

	Report struct {
		Markdown string `mapstructure:"markdown"`
		JSON     string `mapstructure:"json"`
	} `mapstructure:"report"`
}

// Defaults returns the project configuration used when no file is present.
// Values mirror the layout of the amplifier-docs checkout.
func Defaults() Project {
	e := Env()
	p := Project{
		DocsDir:  e.DocsDir,
		ReposDir: e.ReposDir,
		Outline:  e.Outline,
		SiteDir:  e.SiteDir,
		Mapping:  "docs/DOC_SOURCE_MAPPING.csv",
	}
	p.Nav.File = "mkdocs.yaml"
	p.Nav.Tabs = 6
	p.Nav.RequiredFeatures = []string{"navigation.tabs", "navigation.sections"}
	p.Report.Markdown = "sync-output/reports/content-analysis-report.md"
	p.Report.JSON = "sync-output/cache/content-analysis.json"
	return p
}

// Load reads the project configuration. An explicit path must exist;
// otherwise docsync.yaml is searched in the working directory and is
// optional.
func Load(path string) (Project, error) {
	v := viper.New()
	defaults := Defaults()

	v.SetDefault("docs_dir", defaults.DocsDir)
	v.SetDefault("repos_dir", defaults.ReposDir)
	v.SetDefault("outline", defaults.Outline)
	v.SetDefault("site_dir", defaults.SiteDir)
	v.SetDefault("mapping", defaults.Mapping)
	v.SetDefault("nav.file", defaults.Nav.File)
	v.SetDefault("nav.tabs", defaults.Nav.Tabs)
	v.SetDefault("nav.required_features", defaults.Nav.RequiredFeatures)
	v.SetDefault("report.markdown", defaults.Report.Markdown)
	v.SetDefault("report.json", defaults.Report.JSON)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Project{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("docsync")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				if _, statErr := os.Stat("docsync.yaml"); statErr == nil {
					return Project{}, fmt.Errorf("read docsync.yaml: %w", err)
				}
			}
			// No config file is fine; defaults apply.
		}
	}

	var p Project
	if err := v.Unmarshal(&p); err != nil {
		return Project{}, fmt.Errorf("decode config: %w", err)
	}

	p.ReposDir = ExpandHome(p.ReposDir)
	return p, nil
}
