package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RenderView renders a markdown report for in-terminal reading.
func RenderView(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}
