// Package cli implements the snippets command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/roguepikachu/snippets/internal/config"
	"github.com/roguepikachu/snippets/internal/health"
	"github.com/roguepikachu/snippets/internal/repository"
	"github.com/roguepikachu/snippets/internal/service"
	"github.com/roguepikachu/snippets/pkg/ctxutil"
	"github.com/roguepikachu/snippets/pkg/logger"
	"github.com/spf13/cobra"
)

// Store is a storage backend the CLI can drive and release.
type Store interface {
	repository.SnippetRepository
	health.Pinger
	Close()
}

// Opener opens the backend selected by cfg.
type Opener func(ctx context.Context, cfg config.Config) (Store, error)

// Option customizes Run, mainly for tests.
type Option func(*app)

// WithConfigLoader replaces config.Load.
func WithConfigLoader(f func() (config.Config, error)) Option {
	return func(a *app) { a.loadConfig = f }
}

// WithStoreOpener replaces OpenStore.
func WithStoreOpener(f Opener) Option { return func(a *app) { a.openStore = f } }

// WithLogOutput sends logs to w instead of the configured LOG_FILE.
func WithLogOutput(w io.Writer) Option { return func(a *app) { a.logOutput = w } }

// app carries state shared by all commands of one invocation.
type app struct {
	loadConfig func() (config.Config, error)
	openStore  Opener
	logOutput  io.Writer

	backendFlag string
	outputFlag  string

	cfg      config.Config
	store    Store
	svc      *service.Service
	closeLog func() error
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...Option) int {
	a := &app{loadConfig: config.Load, openStore: OpenStore}
	for _, opt := range opts {
		opt(a)
	}
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "snippets",
		Short:         "Store and retrieve snippets of text",
		Long:          `snippets stores named text fragments, optionally hidden, and retrieves them by name, lists visible names, or searches their contents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.backendFlag, "backend", "", "Storage backend: postgres, sqlite or redis (overrides SNIPPETS_BACKEND)")
	root.PersistentFlags().StringVarP(&a.outputFlag, "output", "o", outputText, "Output format: text, json or yaml")

	root.AddCommand(
		a.newPostCommand(),
		a.newGetCommand(),
		a.newCatalogueCommand(),
		a.newSearchCommand(),
		a.newStatusCommand(),
	)
	return root
}

// setup loads configuration, configures logging and tags the command context.
func (a *app) setup(cmd *cobra.Command) error {
	if err := validateOutput(a.outputFlag); err != nil {
		return err
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.backendFlag != "" {
		cfg.Backend = a.backendFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	out := a.logOutput
	if out == nil {
		w, closeFn, err := logger.OpenOutput(cfg.LogFile)
		if err != nil {
			return err
		}
		out, a.closeLog = w, closeFn
	}
	logger.InitLogging(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: out})

	ctx := ctxutil.WithRequestID(cmd.Context(), uuid.New().String())
	ctx = ctxutil.WithCommand(ctx, cmd.Name())
	cmd.SetContext(ctx)
	logger.With(ctx, map[string]any{"backend": cfg.Backend}).Debug("command started")
	return nil
}

// service opens the backend once per invocation and returns the snippet service over it.
func (a *app) service(ctx context.Context) (*service.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	if err := a.open(ctx); err != nil {
		return nil, err
	}
	a.svc = service.NewService(a.store, service.RealClock{})
	return a.svc, nil
}

func (a *app) open(ctx context.Context) error {
	if a.store != nil {
		return nil
	}
	logger.Debug(ctx, "connecting to %s", a.cfg.Backend)
	st, err := a.openStore(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", a.cfg.Backend, err)
	}
	logger.Debug(ctx, "%s connection established", a.cfg.Backend)
	a.store = st
	return nil
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
	if a.closeLog != nil {
		_ = a.closeLog()
		a.closeLog = nil
	}
}

// errNotReady is returned by status when a dependency is down.
var errNotReady = errors.New("backend not ready")
