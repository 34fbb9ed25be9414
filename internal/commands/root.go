// Package commands provides CLI commands for flapmsg.
package commands

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/diogo/flapmsg/internal/config"
	"github.com/diogo/flapmsg/internal/editor"
	"github.com/diogo/flapmsg/internal/render"
	"github.com/diogo/flapmsg/internal/tui"
)

var (
	// Global flags
	addressFlag string
	verboseFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flapmsg",
		Short: "Edit the message shown on a split-flap display",
		Long: `flapmsg reads and replaces the single message stored by a split-flap
display service. Without arguments it opens an interactive editor that shows
the current message and replaces it when you press Enter.

The service address is taken from --address, then FLAPMSG_SERVICE_ADDRESS
(a .env file in the working directory is loaded first), then the config
file, then http://localhost:5000.

Examples:
  flapmsg                               Open the interactive editor
  flapmsg get                           Print the current message
  flapmsg set "HELLO WORLD"             Replace the message
  echo "GATE 12" | flapmsg set          Replace the message from stdin
  flapmsg mode clock                    Switch the display to clock mode
  flapmsg -a http://board.local:5000    Use another service`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				fmt.Fprintf(deps.stderr(), "Warning: %v\n", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.stdout(), "flapmsg %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runEditor(cmd, deps)
		},
	}

	cmd.PersistentFlags().StringVarP(&addressFlag, "address", "a", "", "Service address (e.g. http://localhost:5000)")
	cmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Print diagnostic output to stderr")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewGetCmd(deps))
	cmd.AddCommand(NewSetCmd(deps))
	cmd.AddCommand(NewModeCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))
	cmd.AddCommand(NewHistoryCmd(deps))

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

// runEditor opens the interactive editor
func runEditor(cmd *cobra.Command, deps *Dependencies) error {
	stderr := deps.stderr()
	cfg := loadConfig(stderr)

	if cfg.TUITheme != "" && !render.SetTheme(cfg.TUITheme) {
		fmt.Fprintf(stderr, "Warning: unknown theme %q, using %s\n", cfg.TUITheme, render.DefaultThemeName)
	}
	tui.UpdateTheme()

	logger, closeLog, err := openEditorLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v (logging disabled)\n", err)
	}
	defer closeLog()

	client, err := newClient(deps, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	logger.Info("editor starting", "api_base", client.APIBase(), "discard_stale", cfg.DiscardStale)

	var recorder tui.HistoryRecorder
	store, closeStore, err := openHistory(deps, false, cfg)
	if err != nil {
		logger.Warn("history unavailable", "error", err)
	} else if store != nil {
		recorder = store
	}
	defer closeStore()

	return deps.tui().RunEditor(cmd.Context(), client, editor.OptionsFromConfig(cfg), recorder, logger)
}

// openEditorLog sends structured logs to a file, since the terminal belongs
// to the editor while it runs. The returned close func is always safe to call.
func openEditorLog(path string) (*slog.Logger, func(), error) {
	discard := slog.New(slog.DiscardHandler)
	if path == "" {
		return discard, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return discard, func() {}, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := tea.LogToFile(path, "flapmsg")
	if err != nil {
		return discard, func() {}, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	closeLog := func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}
	return logger, closeLog, nil
}
