// Package events parses and lints the canonical session event stream:
// JSONL lines carrying lifecycle, provider, tool, and hook events.
package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Canonical event names. Anything else is an unknown event.
const (
	SessionStart     = "session:start"
	SessionEnd       = "session:end"
	PromptSubmit     = "prompt:submit"
	ProviderRequest  = "provider:request"
	ProviderResponse = "provider:response"
	ToolPre          = "tool:pre"
	ToolPost         = "tool:post"
	HookError        = "hook:error"
	ContextCompact   = "context:compact"
)

var canonicalNames = map[string]bool{
	SessionStart:     true,
	SessionEnd:       true,
	PromptSubmit:     true,
	ProviderRequest:  true,
	ProviderResponse: true,
	ToolPre:          true,
	ToolPost:         true,
	HookError:        true,
	ContextCompact:   true,
}

// Event is one decoded line of a session log.
type Event struct {
	Name      string         `json:"event"`
	Timestamp time.Time      `json:"ts"`
	SessionID string         `json:"session_id,omitempty"`
	Module    string         `json:"module,omitempty"`
	Data      map[string]any `json:"data,omitempty"`

	// Line is the 1-based position in the source stream.
	Line int `json:"-"`
}

// Severity of a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one lint finding against a session log.
type Issue struct {
	Line     int
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d [%s] %s", i.Line, i.Severity, i.Message)
}

// Log is a parsed session event stream.
type Log struct {
	Events []Event
	Issues []Issue
}

// Errors returns only the error-severity issues.
func (l *Log) Errors() []Issue {
	var out []Issue
	for _, issue := range l.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

// Sessions groups events by session id, preserving stream order.
func (l *Log) Sessions() map[string][]Event {
	out := make(map[string][]Event)
	for _, ev := range l.Events {
		id := ev.SessionID
		if id == "" {
			id = "unknown"
		}
		out[id] = append(out[id], ev)
	}
	return out
}

// Parse reads a JSONL event stream and lints it: malformed lines,
// unknown event names, and missing timestamps are errors; out-of-order
// timestamps and unbalanced session or tool boundaries are warnings.
func Parse(r io.Reader) (*Log, error) {
	log := &Log{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Issues = append(log.Issues, Issue{
				Line:     line,
				Severity: SeverityError,
				Message:  fmt.Sprintf("malformed JSON: %v", err),
			})
			continue
		}
		ev.Line = line

		if ev.Name == "" {
			log.Issues = append(log.Issues, Issue{
				Line:     line,
				Severity: SeverityError,
				Message:  "missing event name",
			})
			continue
		}
		if !canonicalNames[ev.Name] {
			log.Issues = append(log.Issues, Issue{
				Line:     line,
				Severity: SeverityError,
				Message:  fmt.Sprintf("unknown event %q", ev.Name),
			})
			continue
		}
		if ev.Timestamp.IsZero() {
			log.Issues = append(log.Issues, Issue{
				Line:     line,
				Severity: SeverityError,
				Message:  fmt.Sprintf("%s missing timestamp", ev.Name),
			})
		}
		if ev.SessionID != "" {
			if _, err := uuid.Parse(ev.SessionID); err != nil {
				log.Issues = append(log.Issues, Issue{
					Line:     line,
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("session_id %q is not a UUID", ev.SessionID),
				})
			}
		}

		log.Events = append(log.Events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading event stream: %w", err)
	}

	lintOrdering(log)
	lintBoundaries(log)
	return log, nil
}

func lintOrdering(log *Log) {
	var prev time.Time
	var prevLine int
	for _, ev := range log.Events {
		if ev.Timestamp.IsZero() {
			continue
		}
		if !prev.IsZero() && ev.Timestamp.Before(prev) {
			log.Issues = append(log.Issues, Issue{
				Line:     ev.Line,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("timestamp before line %d", prevLine),
			})
		}
		prev = ev.Timestamp
		prevLine = ev.Line
	}
}

// lintBoundaries checks paired events: every session:start needs a
// session:end, every tool:pre a tool:post, and every provider:request
// a provider:response.
func lintBoundaries(log *Log) {
	pairs := []struct {
		open, close, label string
	}{
		{SessionStart, SessionEnd, "session"},
		{ToolPre, ToolPost, "tool call"},
		{ProviderRequest, ProviderResponse, "provider request"},
	}

	for _, pair := range pairs {
		var open []Event
		for _, ev := range log.Events {
			switch ev.Name {
			case pair.open:
				open = append(open, ev)
			case pair.close:
				if len(open) == 0 {
					log.Issues = append(log.Issues, Issue{
						Line:     ev.Line,
						Severity: SeverityWarning,
						Message:  fmt.Sprintf("%s without preceding %s", pair.close, pair.open),
					})
					continue
				}
				open = open[:len(open)-1]
			}
		}
		for _, ev := range open {
			log.Issues = append(log.Issues, Issue{
				Line:     ev.Line,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("dangling %s: no matching %s", pair.label, pair.close),
			})
		}
	}

	sort.SliceStable(log.Issues, func(i, j int) bool {
		return log.Issues[i].Line < log.Issues[j].Line
	})
}
