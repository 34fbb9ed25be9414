package commands

import (
	"errors"
	"strings"
	"testing"

	apierrors "github.com/diogo/flapmsg/internal/errors"
	"github.com/diogo/flapmsg/internal/history"
)

func TestMode(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(t, "mode", "clock"); err != nil {
		t.Fatalf("mode failed: %v", err)
	}
	if len(env.client.Modes) != 1 || env.client.Modes[0] != "clock" {
		t.Errorf("Modes = %q", env.client.Modes)
	}
	if !strings.Contains(env.stdout.String(), "clock") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
	if entries := env.entries(t); len(entries) != 1 || entries[0].Op != history.OpMode {
		t.Errorf("history = %+v", entries)
	}
}

func TestMode_RequiresOneArg(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run(t, "mode"); err == nil {
		t.Error("expected error without a mode")
	}
}

func TestMode_Failure(t *testing.T) {
	env := newTestEnv(t)
	env.client.ModeErr = apierrors.ErrInvalidMode

	err := env.run(t, "mode", "disco")
	if !errors.Is(err, apierrors.ErrInvalidMode) {
		t.Errorf("err = %v, want ErrInvalidMode", err)
	}
}
