// Package main content commands: outline generation, analysis, reports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amplifier-docs/docsync/internal/analyze"
	"github.com/amplifier-docs/docsync/internal/config"
	"github.com/amplifier-docs/docsync/internal/domain"
	"github.com/amplifier-docs/docsync/internal/history"
	"github.com/amplifier-docs/docsync/internal/logging"
	"github.com/amplifier-docs/docsync/internal/outline"
	"github.com/amplifier-docs/docsync/internal/report"
	"github.com/amplifier-docs/docsync/internal/tui"
	"github.com/amplifier-docs/docsync/internal/watch"
)

func outlineCmd() *cobra.Command {
	var mapping, out string
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Generate the content outline from the mapping CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mapping == "" {
				mapping = project.Mapping
			}
			if out == "" {
				out = project.Outline
			}

			o, err := outline.Generate(mapping, out, time.Now())
			if err != nil {
				return err
			}

			outlineLog := logging.For("outline")
			outlineLog.Info().
				Int("sections", len(o.Sections)).
				Str("path", out).
				Msg("outline written")
			syncable := 0
			for i := range o.Sections {
				if o.Sections[i].Syncable() {
					syncable++
				}
			}
			fmt.Printf("Wrote %s: %d sections (%d syncable)\n",
				out, o.Summary.TotalSections, syncable)
			return nil
		},
	}
	cmd.Flags().StringVar(&mapping, "mapping", "", "Mapping CSV path (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Outline output path (default from config)")
	return cmd
}

func analyzeCmd() *cobra.Command {
	var interactive, noHistory, noReport bool
	var limit int
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compare documentation against its sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runAnalysis(cmd.Context())
			if err != nil {
				return err
			}

			if !noReport {
				if err := writeReports(result); err != nil {
					return err
				}
			}
			if !noHistory {
				if err := recordRun(cmd.Context(), result); err != nil {
					analyzeLog := logging.For("analyze")
					analyzeLog.Warn().Err(err).Msg("history not recorded")
				}
			}

			if interactive && term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(result)
			}

			r := report.NewRenderer(pretty)
			fmt.Print(r.Summary(result))
			fmt.Print(r.StaleDocs(result, limit))
			fmt.Print(r.MissingDocs(result))

			if result.Summary.Status() == domain.HealthCritical {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse results interactively")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Skip recording the run")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Skip writing report files")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Stale documents to show")
	return cmd
}

func reportCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display the latest analysis report",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(project.Report.Markdown)
			if err != nil {
				return fmt.Errorf("no report found, run 'docsync analyze' first: %w", err)
			}

			if raw || !pretty {
				fmt.Print(string(content))
				return nil
			}

			width := 100
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}
			rendered, err := report.RenderView(string(content), width)
			if err != nil {
				return err
			}
			fmt.Print(rendered)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")
	return cmd
}

func watchCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run analysis when docs or sources change",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := logging.For("watch")
			w, err := watch.New(watch.Config{
				Roots:       []string{project.DocsDir, project.ReposDir},
				DebounceDur: debounce,
			}, log)
			if err != nil {
				return err
			}
			defer w.Stop()

			onChange, err := w.Start()
			if err != nil {
				return err
			}

			run := func() {
				result, err := runAnalysis(ctx)
				if err != nil {
					log.Error().Err(err).Msg("analysis failed")
					return
				}
				r := report.NewRenderer(pretty)
				fmt.Print(r.Summary(result))
			}

			fmt.Printf("Watching %s and %s (ctrl+c to stop)\n", project.DocsDir, project.ReposDir)
			run()
			for {
				select {
				case <-onChange:
					log.Info().Msg("change detected, re-running analysis")
					run()
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", time.Second, "Quiet period before re-running")
	return cmd
}

func runAnalysis(ctx context.Context) (*domain.AnalysisResult, error) {
	o, err := outline.Load(project.Outline)
	if err != nil {
		return nil, fmt.Errorf("load outline (run 'docsync outline' first): %w", err)
	}

	engine := analyze.New(project.DocsDir, project.ReposDir, logging.For("analyze"))
	return engine.Run(ctx, o)
}

func writeReports(result *domain.AnalysisResult) error {
	now := time.Now()
	if err := report.WriteMarkdown(result, project.Report.Markdown, now); err != nil {
		return err
	}
	return report.WriteJSON(result, project.Report.JSON)
}

func recordRun(ctx context.Context, result *domain.AnalysisResult) error {
	store, err := history.Open(config.Path("data"))
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(ctx, result, time.Now())
	return err
}
