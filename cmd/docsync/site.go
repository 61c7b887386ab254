// Package main site commands: navigation, link, and example checks.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amplifier-docs/docsync/internal/examples"
	"github.com/amplifier-docs/docsync/internal/graph"
	"github.com/amplifier-docs/docsync/internal/links"
	"github.com/amplifier-docs/docsync/internal/logging"
	"github.com/amplifier-docs/docsync/internal/nav"
	"github.com/amplifier-docs/docsync/internal/outline"
)

func navCmd() *cobra.Command {
	var mkdocsPath string
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Validate the site navigation",
		Long:  "Check mkdocs navigation: tab count, required theme features, entries resolve, no orphan pages.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mkdocsPath == "" {
				mkdocsPath = project.Nav.File
			}

			cfg, tabs, err := nav.Load(mkdocsPath)
			if err != nil {
				return err
			}

			issues := nav.Check(cfg, tabs, project.DocsDir, nav.CheckOptions{
				ExpectedTabs:     project.Nav.Tabs,
				RequiredFeatures: project.Nav.RequiredFeatures,
			})

			if len(issues) == 0 {
				okLine(fmt.Sprintf("Navigation valid: %d tabs", len(tabs)))
				return nil
			}
			for _, issue := range issues {
				issueLine(string(issue.Severity), issue.String())
			}
			if nav.HasErrors(issues) {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mkdocsPath, "mkdocs", "", "Path to mkdocs.yaml (default from config)")
	return cmd
}

func linksCmd() *cobra.Command {
	var site bool
	cmd := &cobra.Command{
		Use:   "links",
		Short: "Check documentation links resolve",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *links.Result
			var err error
			if site {
				result, err = links.CheckSite(project.SiteDir)
			} else {
				result, err = links.NewChecker(project.DocsDir).CheckDocs()
			}
			if err != nil {
				return err
			}

			linksLog := logging.For("links")
			linksLog.Info().
				Int("pages", result.Pages).
				Int("links", result.Links).
				Int("broken", len(result.Issues)).
				Msg("link check complete")

			if len(result.Issues) == 0 {
				okLine(fmt.Sprintf("%d links across %d pages, all resolve (%d external skipped)",
					result.Links, result.Pages, len(result.External)))
				return nil
			}
			for _, issue := range result.Issues {
				issueLine("error", issue.String())
			}
			os.Exit(1)
			return nil
		},
	}
	cmd.Flags().BoolVar(&site, "site", false, "Check the built HTML site instead of markdown")
	return cmd
}

func examplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Lint embedded code examples",
		Long:  "Parse yaml/json blocks in every page; mount plan examples validate against their schema.",
		RunE: func(cmd *cobra.Command, args []string) error {
			linter, err := examples.NewLinter()
			if err != nil {
				return err
			}

			result, err := linter.LintDocs(project.DocsDir)
			if err != nil {
				return err
			}

			if !result.HasErrors() {
				okLine(fmt.Sprintf("%d blocks across %d pages valid (%d mount plans)",
					result.Blocks, result.Pages, result.MountPlans))
				return nil
			}
			for _, issue := range result.Issues {
				issueLine("error", issue.String())
			}
			os.Exit(1)
			return nil
		},
	}
}

func graphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Graph database commands",
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the documentation map to the graph database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := graph.Connect(cmd.Context())
			if err != nil {
				return err
			}
			if db == nil {
				return fmt.Errorf("graph database unreachable")
			}
			defer db.Close()

			o, err := outline.Load(project.Outline)
			if err != nil {
				return err
			}
			pageLinks, err := links.Collect(project.DocsDir)
			if err != nil {
				return err
			}

			exporter := graph.NewExporter(db)
			if err := exporter.Export(cmd.Context(), o, pageLinks); err != nil {
				return err
			}
			okLine(fmt.Sprintf("Exported %d sections", len(o.Sections)))
			return nil
		},
	}

	coverageCmd := &cobra.Command{
		Use:   "coverage",
		Short: "Show per-repository source coverage",
		Long:  "Sections per repository, registry repos no section sources, and pages no page links to.",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := graph.Connect(cmd.Context())
			if err != nil {
				return err
			}
			if db == nil {
				return fmt.Errorf("graph database unreachable")
			}
			defer db.Close()

			o, err := outline.Load(project.Outline)
			if err != nil {
				return err
			}

			exporter := graph.NewExporter(db)
			coverage, err := exporter.RepoCoverage(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range coverage {
				fmt.Printf("%-40s %3d sections %3d files\n", c.Repo, c.Sections, c.Files)
			}

			undocumented, err := exporter.UndocumentedRepos(cmd.Context(), &o.Meta)
			if err != nil {
				return err
			}
			if len(undocumented) > 0 {
				fmt.Printf("\nUndocumented repos (%d):\n", len(undocumented))
				for _, repo := range undocumented {
					issueLine("warning", repo)
				}
			}

			orphans, err := exporter.Orphans(cmd.Context())
			if err != nil {
				return err
			}
			if len(orphans) > 0 {
				fmt.Printf("\nUnlinked pages (%d):\n", len(orphans))
				for _, page := range orphans {
					issueLine("warning", page)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(exportCmd, coverageCmd)
	return cmd
}

func okLine(msg string) {
	if pretty {
		fmt.Printf("%s %s\n", color.GreenString("✓"), msg)
	} else {
		fmt.Printf("ok: %s\n", msg)
	}
}

func issueLine(severity, msg string) {
	if pretty {
		tag := color.YellowString(severity)
		if severity == "error" {
			tag = color.RedString(severity)
		}
		fmt.Printf("%s %s\n", tag, msg)
	} else {
		fmt.Printf("%s: %s\n", severity, msg)
	}
}
