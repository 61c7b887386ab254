package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/amplifier-docs/docsync/internal/domain"
)

// Renderer formats analysis output for the terminal.
type Renderer struct {
	pretty bool
}

// NewRenderer creates a renderer. Pretty output uses color and rules;
// plain output is line-oriented for scripts and CI logs.
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// Summary formats the run summary.
func (r *Renderer) Summary(result *domain.AnalysisResult) string {
	s := result.Summary
	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Documentation Freshness\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
		fmt.Fprintf(&sb, "  Sections:  %d\n", s.TotalSections)
		fmt.Fprintf(&sb, "  Analyzed:  %d\n", s.Analyzed)
		fmt.Fprintf(&sb, "  Healthy:   %s\n", color.GreenString("%d", s.Healthy))
		fmt.Fprintf(&sb, "  Stale:     %s\n", staleColor(s.Stale))
		fmt.Fprintf(&sb, "  Missing:   %d\n", s.MissingDoc)
		fmt.Fprintf(&sb, "  Health:    %s\n", r.healthString(s))
	} else {
		fmt.Fprintf(&sb, "sections=%d analyzed=%d healthy=%d stale=%d missing=%d health=%.0f%% status=%s\n",
			s.TotalSections, s.Analyzed, s.Healthy, s.Stale, s.MissingDoc, s.HealthPct(), s.Status())
	}

	return sb.String()
}

// StaleDocs formats the stale page list with reasons.
func (r *Renderer) StaleDocs(result *domain.AnalysisResult, limit int) string {
	if len(result.StaleDocs) == 0 {
		return "No stale documentation found\n"
	}

	var sb strings.Builder
	if r.pretty {
		sb.WriteString(color.YellowString("Stale Documentation\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for i, doc := range result.StaleDocs {
		if limit > 0 && i >= limit {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(result.StaleDocs)-limit)
			break
		}
		r.formatStaleDoc(&sb, doc)
	}
	return sb.String()
}

func (r *Renderer) formatStaleDoc(sb *strings.Builder, doc domain.DocResult) {
	reasons := strings.Join(doc.StalenessReasons, "; ")
	if reasons == "" {
		reasons = "score threshold"
	}

	if r.pretty {
		marker := color.RedString("✗")
		if doc.Priority != domain.PriorityHigh {
			marker = color.YellowString("○")
		}
		fmt.Fprintf(sb, "%s %s %s (score %d)\n", marker,
			color.HiBlackString(strings.ToUpper(string(doc.Priority))),
			doc.DocPath, doc.Comparison.StalenessScore)
		fmt.Fprintf(sb, "    %s\n", reasons)
	} else {
		fmt.Fprintf(sb, "[%s] score=%d %s: %s\n",
			doc.Priority, doc.Comparison.StalenessScore, doc.DocPath, reasons)
	}
}

// MissingDocs formats pages that are mapped but absent on disk.
func (r *Renderer) MissingDocs(result *domain.AnalysisResult) string {
	if len(result.MissingDocs) == 0 {
		return ""
	}
	var sb strings.Builder
	if r.pretty {
		sb.WriteString(color.RedString("Missing Documentation\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}
	for _, doc := range result.MissingDocs {
		if r.pretty {
			fmt.Fprintf(&sb, "%s %s (%s)\n", color.RedString("✗"), doc.DocPath, doc.Priority)
		} else {
			fmt.Fprintf(&sb, "missing [%s] %s\n", doc.Priority, doc.DocPath)
		}
	}
	return sb.String()
}

func (r *Renderer) healthString(s domain.AnalysisSummary) string {
	pct := s.HealthPct()
	text := fmt.Sprintf("%.0f%% %s", pct, s.Status())
	switch s.Status() {
	case domain.HealthHealthy:
		return color.GreenString(text)
	case domain.HealthWarning:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}

func staleColor(n int) string {
	if n == 0 {
		return color.GreenString("%d", n)
	}
	return color.YellowString("%d", n)
}
