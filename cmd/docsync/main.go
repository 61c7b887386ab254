// Package main provides the docsync CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amplifier-docs/docsync/internal/config"
	"github.com/amplifier-docs/docsync/internal/logging"
)

var (
	version = "0.1.0"

	pretty     = true
	jsonOut    = false
	configPath = ""
	logLevel   = "info"
	docsDir    = ""
	reposDir   = ""

	project config.Project
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "docsync",
		Short: "Documentation synchronization toolchain",
		Long: `docsync keeps a generated documentation site honest: it maps pages to
their source files, scores each page for staleness, and validates the
site's navigation, links, and embedded examples.

Use 'docsync outline' to regenerate the content outline from the mapping CSV.
Use 'docsync analyze' to compare docs against sources.
Use 'docsync status' to show the latest recorded health.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Plain output when piping, unless the user forced pretty.
			if !cmd.Flags().Changed("pretty") {
				pretty = term.IsTerminal(int(os.Stdout.Fd())) && !jsonOut
			}

			closer := logging.Setup(logLevel, jsonOut)
			cobra.OnFinalize(closer)

			var err error
			project, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if docsDir != "" {
				project.DocsDir = docsDir
			}
			if reposDir != "" {
				project.ReposDir = config.ExpandHome(reposDir)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Pretty print output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to docsync.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&docsDir, "docs-dir", "", "Docs directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&reposDir, "repos-dir", "", "Source repos directory (overrides config)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "content", Title: "Content:"},
		&cobra.Group{ID: "site", Title: "Site:"},
		&cobra.Group{ID: "ops", Title: "Operations:"},
	)

	for _, c := range []*cobra.Command{outlineCmd(), analyzeCmd(), reportCmd(), watchCmd()} {
		c.GroupID = "content"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{navCmd(), linksCmd(), examplesCmd(), graphCmd()} {
		c.GroupID = "site"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{historyCmd(), eventsCmd(), statusCmd(), versionCmd()} {
		c.GroupID = "ops"
		rootCmd.AddCommand(c)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("docsync %s\n", version)
		},
	}
}
