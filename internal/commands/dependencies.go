package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/flapmsg/internal/api"
	"github.com/diogo/flapmsg/internal/editor"
	"github.com/diogo/flapmsg/internal/history"
	"github.com/diogo/flapmsg/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunEditor(ctx context.Context, client api.MessageClientInterface, opts editor.Options, recorder tui.HistoryRecorder, logger *slog.Logger) error
}

// HistoryStore is the subset of the history store used by the commands.
type HistoryStore interface {
	tui.HistoryRecorder
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
	Count(ctx context.Context) (int, error)
	Prune(ctx context.Context, keep int) error
	Clear(ctx context.Context) error
	Close() error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client overrides the client built from the resolved address.
	Client api.MessageClientInterface

	// TUI is the terminal user interface.
	TUI TUIInterface

	// History overrides the store opened from the config directory.
	History HistoryStore

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTerminal reports whether Stdin is interactive
	StdinIsTerminal func() bool

	// Copy writes text to the system clipboard
	Copy func(string) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunEditor(ctx context.Context, client api.MessageClientInterface, opts editor.Options, recorder tui.HistoryRecorder, logger *slog.Logger) error {
	return tui.RunEditor(ctx, client, opts, recorder, logger)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:    &DefaultTUI{},
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		Copy: clipboard.WriteAll,
	}
}

func (d *Dependencies) stdin() io.Reader {
	if d == nil || d.Stdin == nil {
		return os.Stdin
	}
	return d.Stdin
}

func (d *Dependencies) stdout() io.Writer {
	if d == nil || d.Stdout == nil {
		return os.Stdout
	}
	return d.Stdout
}

func (d *Dependencies) stderr() io.Writer {
	if d == nil || d.Stderr == nil {
		return os.Stderr
	}
	return d.Stderr
}

func (d *Dependencies) stdinIsTerminal() bool {
	if d == nil || d.StdinIsTerminal == nil {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
	return d.StdinIsTerminal()
}

func (d *Dependencies) copy(text string) error {
	if d == nil || d.Copy == nil {
		return clipboard.WriteAll(text)
	}
	return d.Copy(text)
}

func (d *Dependencies) tui() TUIInterface {
	if d == nil || d.TUI == nil {
		return &DefaultTUI{}
	}
	return d.TUI
}
