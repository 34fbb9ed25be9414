package commands

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/flapmsg/internal/api"
	"github.com/diogo/flapmsg/internal/config"
	"github.com/diogo/flapmsg/internal/editor"
	"github.com/diogo/flapmsg/internal/history"
	"github.com/diogo/flapmsg/internal/tui"
)

// fakeTUI records how the editor was started
type fakeTUI struct {
	called   bool
	client   api.MessageClientInterface
	opts     editor.Options
	recorder tui.HistoryRecorder
	err      error
}

func (f *fakeTUI) RunEditor(ctx context.Context, client api.MessageClientInterface, opts editor.Options, recorder tui.HistoryRecorder, logger *slog.Logger) error {
	f.called = true
	f.client = client
	f.opts = opts
	f.recorder = recorder
	return f.err
}

type testEnv struct {
	deps   *Dependencies
	client *api.MockMessageClient
	store  *history.Store
	tui    *fakeTUI
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	copied []string
}

// newTestEnv isolates HOME and wires mocks into a Dependencies value
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvServiceAddress, "")

	store, err := history.NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := &testEnv{
		client: &api.MockMessageClient{},
		store:  store,
		tui:    &fakeTUI{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	env.deps = &Dependencies{
		Client:          env.client,
		TUI:             env.tui,
		History:         store,
		Stdin:           strings.NewReader(""),
		Stdout:          env.stdout,
		Stderr:          env.stderr,
		StdinIsTerminal: func() bool { return true },
		Copy: func(s string) error {
			env.copied = append(env.copied, s)
			return nil
		},
	}
	return env
}

// run executes the root command with args
func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCmd(e.deps)
	root.SetArgs(args)
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)
	return root.Execute()
}

func (e *testEnv) entries(t *testing.T) []history.Entry {
	t.Helper()
	entries, err := e.store.Recent(t.Context(), 100)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	return entries
}
