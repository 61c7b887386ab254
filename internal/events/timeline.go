package events

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Renderer formats parsed event streams for the terminal.
type Renderer struct {
	pretty bool
}

// NewRenderer creates a renderer. Pretty mode uses color and glyphs,
// plain mode emits machine-friendly lines.
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// Timeline formats the event stream in order.
func (r *Renderer) Timeline(log *Log) string {
	if len(log.Events) == 0 {
		return "No events found"
	}

	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Session Timeline\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for _, ev := range log.Events {
		r.formatEvent(&sb, ev)
	}

	return sb.String()
}

func (r *Renderer) formatEvent(sb *strings.Builder, ev Event) {
	timeStr := "--:--:--"
	if !ev.Timestamp.IsZero() {
		timeStr = ev.Timestamp.Format("15:04:05")
	}

	detail := eventDetail(ev)

	if r.pretty {
		fmt.Fprintf(sb, "%s %s %s%s\n",
			eventGlyph(ev.Name), color.HiBlackString(timeStr), ev.Name, detail)
	} else {
		fmt.Fprintf(sb, "[%s] %s%s\n", timeStr, ev.Name, detail)
	}
}

func eventGlyph(name string) string {
	switch name {
	case SessionStart, SessionEnd:
		return color.CyanString("◆")
	case ToolPre, ToolPost:
		return color.GreenString("▸")
	case HookError:
		return color.RedString("✗")
	case ContextCompact:
		return color.YellowString("⟳")
	default:
		return color.HiBlackString("·")
	}
}

func eventDetail(ev Event) string {
	var parts []string
	if ev.Module != "" {
		parts = append(parts, ev.Module)
	}
	if name, ok := ev.Data["tool"].(string); ok {
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, " ") + ")"
}

// Lint formats the lint findings for a stream.
func (r *Renderer) Lint(log *Log) string {
	if len(log.Issues) == 0 {
		if r.pretty {
			return color.GreenString("✓") + " No issues found\n"
		}
		return "ok: no issues found\n"
	}

	var sb strings.Builder
	for _, issue := range log.Issues {
		if r.pretty {
			tag := color.YellowString("warning")
			if issue.Severity == SeverityError {
				tag = color.RedString("error")
			}
			fmt.Fprintf(&sb, "%s line %d: %s\n", tag, issue.Line, issue.Message)
		} else {
			fmt.Fprintf(&sb, "%s\n", issue)
		}
	}
	return sb.String()
}
