// Package main operations commands: run history, event logs, status.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/amplifier-docs/docsync/internal/config"
	"github.com/amplifier-docs/docsync/internal/events"
	"github.com/amplifier-docs/docsync/internal/history"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Analysis run history",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent analysis runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(config.Path("data"))
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded")
				return nil
			}

			for _, r := range runs {
				status := r.Status
				if pretty {
					status = colorStatus(r.Status)
				}
				fmt.Printf("%s  %s  %3d docs  %2d stale  %5.1f%%  %s\n",
					r.ID, r.StartedAt.Format("2006-01-02 15:04"),
					r.Analyzed, r.StaleDocs, r.HealthPct, status)
			}
			return nil
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Runs to show")

	var docLimit int
	docCmd := &cobra.Command{
		Use:   "doc <path>",
		Short: "Show one document's score history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(config.Path("data"))
			if err != nil {
				return err
			}
			defer store.Close()

			scores, err := store.DocHistory(cmd.Context(), args[0], docLimit)
			if err != nil {
				return err
			}
			if len(scores) == 0 {
				fmt.Printf("No history for %s\n", args[0])
				return nil
			}

			for _, s := range scores {
				marker := "✓"
				if s.IsStale {
					marker = "✗"
				}
				fmt.Printf("%s  %s  score %2d  %s\n",
					s.StartedAt.Format("2006-01-02 15:04"), marker, s.Score, s.Priority)
			}
			return nil
		},
	}
	docCmd.Flags().IntVarP(&docLimit, "limit", "n", 20, "Entries to show")

	trendsCmd := &cobra.Command{
		Use:   "trends",
		Short: "Show score movement per document",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(config.Path("data"))
			if err != nil {
				return err
			}
			defer store.Close()

			trends, err := store.Trends(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range trends {
				arrow := "→"
				if t.Delta > 0 {
					arrow = "↑"
				} else if t.Delta < 0 {
					arrow = "↓"
				}
				fmt.Printf("%s %2d %s %2d  (%d runs)  %s\n",
					arrow, t.First, "to", t.Last, t.Runs, t.Doc)
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd, docCmd, trendsCmd)
	return cmd
}

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Session event log commands",
	}

	lintCmd := &cobra.Command{
		Use:   "lint <file>",
		Short: "Lint a JSONL session log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := parseEventFile(args[0])
			if err != nil {
				return err
			}
			fmt.Print(events.NewRenderer(pretty).Lint(log))
			if len(log.Errors()) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	timelineCmd := &cobra.Command{
		Use:   "timeline <file>",
		Short: "Render a session log as a timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := parseEventFile(args[0])
			if err != nil {
				return err
			}
			fmt.Print(events.NewRenderer(pretty).Timeline(log))
			return nil
		},
	}

	cmd.AddCommand(lintCmd, timelineCmd)
	return cmd
}

func parseEventFile(path string) (*events.Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()
	return events.Parse(f)
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show latest recorded documentation health",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(config.Path("data"))
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), 1)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No analysis recorded yet, run 'docsync analyze'")
				return nil
			}

			r := runs[0]
			status := r.Status
			if pretty {
				status = colorStatus(r.Status)
			}
			fmt.Printf("Last run:     %s (%s)\n", r.StartedAt.Format("2006-01-02 15:04"), r.ID)
			fmt.Printf("Documents:    %d analyzed, %d stale, %d missing\n",
				r.Analyzed, r.StaleDocs, r.MissingDocs)
			fmt.Printf("Health:       %.1f%% %s\n", r.HealthPct, status)
			return nil
		},
	}
}

func colorStatus(status string) string {
	switch status {
	case "HEALTHY":
		return color.GreenString(status)
	case "WARNING":
		return color.YellowString(status)
	default:
		return color.RedString(status)
	}
}
