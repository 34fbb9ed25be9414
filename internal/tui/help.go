package tui

import (
	"github.com/diogo/flapmsg/internal/render"
)

const helpMarkdown = `# flapmsg

The top panel shows the message currently stored on the board service.
` + "`???`" + ` means the last request failed; the details are in the log file.

## Keys

| Key | Action |
|-----|--------|
| **Enter** | Replace the stored message with the input (empty is allowed) |
| **Ctrl+Y** | Copy the displayed message |
| **PgUp / PgDn** | Scroll long messages |
| **F1** | Toggle this help |
| **Esc / Ctrl+C** | Quit |

The input is cleared once the service accepts the new message and is kept
when the write fails, so you can press **Enter** again to retry.
`

// renderHelp renders the help overlay, falling back to the raw markdown
func renderHelp(width int) string {
	out, err := render.Markdown(helpMarkdown, width)
	if err != nil {
		return helpMarkdown
	}
	return out
}
