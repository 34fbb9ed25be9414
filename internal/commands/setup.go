package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/diogo/flapmsg/internal/api"
	"github.com/diogo/flapmsg/internal/config"
	"github.com/diogo/flapmsg/internal/history"
)

// session bundles what a one-shot command needs
type session struct {
	cfg     config.Config
	client  api.MessageClientInterface
	store   HistoryStore
	logger  *slog.Logger
	verbose bool
	stderr  io.Writer

	closeStore func()
}

// loadConfig loads the config file, warning and falling back to defaults
// when it cannot be read
func loadConfig(stderr io.Writer) config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// newCLILogger logs to stderr only in verbose mode
func newCLILogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newClient returns the injected client or builds one for the resolved address
func newClient(deps *Dependencies, cfg config.Config, logger *slog.Logger) (api.MessageClientInterface, error) {
	if deps != nil && deps.Client != nil {
		return deps.Client, nil
	}

	address := config.ResolveServiceAddress(addressFlag, cfg)
	apiBase, err := config.APIBase(address)
	if err != nil {
		return nil, err
	}

	return api.NewClient(apiBase,
		api.WithTimeoutSeconds(cfg.TimeoutSeconds),
		api.WithLogger(logger),
	)
}

// openHistory returns the injected store or opens the default one. The
// returned close func is always safe to call.
func openHistory(deps *Dependencies, force bool, cfg config.Config) (HistoryStore, func(), error) {
	if deps != nil && deps.History != nil {
		return deps.History, func() {}, nil
	}
	if !force && !cfg.History {
		return nil, func() {}, nil
	}

	path, err := config.GetHistoryPath()
	if err != nil {
		return nil, func() {}, err
	}
	store, err := history.NewStore(path)
	if err != nil {
		return nil, func() {}, err
	}
	return store, func() { store.Close() }, nil
}

// newSession prepares config, logging, client and history for a command
func newSession(deps *Dependencies) (*session, error) {
	stderr := deps.stderr()
	cfg := loadConfig(stderr)
	verbose := verboseFlag || cfg.Verbose
	logger := newCLILogger(stderr, verbose)

	client, err := newClient(deps, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if verbose {
		fmt.Fprintf(stderr, "[verbose] API base: %s\n", client.APIBase())
	}

	store, closeStore, err := openHistory(deps, false, cfg)
	if err != nil {
		// History is best effort for one-shot commands
		logger.Warn("history unavailable", "error", err)
	}

	return &session{
		cfg:        cfg,
		client:     client,
		store:      store,
		logger:     logger,
		verbose:    verbose,
		stderr:     stderr,
		closeStore: closeStore,
	}, nil
}

func (s *session) close() {
	s.closeStore()
}

// record appends a completed request to history, if enabled
func (s *session) record(ctx context.Context, e history.Entry, err error) {
	if s.store == nil {
		return
	}
	e.Source = "cli"
	if err != nil {
		e.Error = err.Error()
	}
	if _, rerr := s.store.Record(ctx, e); rerr != nil {
		s.logger.Warn("history record failed", "op", e.Op, "error", rerr)
	}
}
