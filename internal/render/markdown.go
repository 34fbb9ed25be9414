package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders markdown for the terminal using the glamour style of the
// active theme, wrapped at width columns.
func Markdown(content string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(CurrentTheme().Glamour),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return "", err
	}

	out, err := renderer.Render(content)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(out, "\n"), nil
}
