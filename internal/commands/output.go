package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	apierrors "github.com/diogo/flapmsg/internal/errors"
)

// Flap colors for the spinner
var flapColors = []lipgloss.Color{
	lipgloss.Color("#ffb000"),
	lipgloss.Color("#ffc533"),
	lipgloss.Color("#ffd75f"),
	lipgloss.Color("#f0f0f0"),
	lipgloss.Color("#ffd75f"),
	lipgloss.Color("#ffc533"),
}

var (
	colorText    = lipgloss.Color("#c0caf5")
	colorTextDim = lipgloss.Color("#565f89")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorError   = lipgloss.Color("#f7768e")
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)
)

// spinner draws a split-flap style indicator while a request is pending
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool
}

func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(90 * time.Millisecond)
		defer ticker.Stop()

		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

func (s *spinner) render() {
	flaps := []string{"▀", "▔", "─", "▁", "▄", "█"}

	var board strings.Builder
	for i := 0; i < 6; i++ {
		idx := (s.frame + i) % len(flaps)
		style := lipgloss.NewStyle().Foreground(flapColors[(s.frame+i)%len(flapColors)])
		board.WriteString(style.Render(flaps[idx]))
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s", board.String(), msg)
}

func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	fmt.Fprintf(s.out, "%s %s\n", checkmark, successStyle.Render(message))
}

func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// startSpinner starts a spinner only when w is an interactive terminal
func startSpinner(w io.Writer, message string) *spinner {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	s := newSpinner(w, message)
	s.start()
	return s
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isTTY returns true if w is connected to a terminal
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// truncate shortens s to n runes, adding an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// oneLine makes multi-line text fit a table cell
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "⏎")
	return strings.ReplaceAll(s, "\n", "⏎")
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	switch status := apierrors.GetHTTPStatus(err); {
	case apierrors.IsTransportFailure(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Could not reach the service. Check the address (--address or " +
			"FLAPMSG_SERVICE_ADDRESS) and that the service is running"))
	case status == 404:
		sb.WriteString(dimStyle.Render("\n  Hint: The service has no /api/message endpoint. Is the address pointing at the right host?"))
	case status >= 500:
		sb.WriteString(dimStyle.Render("\n  Hint: The service reported an internal error. Try again or check its logs"))
	case status >= 400:
		sb.WriteString(dimStyle.Render("\n  Hint: The service rejected the request"))
	case errors.Is(err, apierrors.ErrInvalidMode):
		sb.WriteString(dimStyle.Render("\n  Hint: Valid modes are 'message' and 'clock'"))
	case errors.Is(err, apierrors.ErrEmptyAddress):
		sb.WriteString(dimStyle.Render("\n  Hint: Set an address with 'flapmsg config set-address <url>'"))
	}

	return sb.String()
}
