package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/academy/internal/app"
	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/config"
	"github.com/abhisek/academy/internal/gateway"
	"github.com/abhisek/academy/internal/llm"
	"github.com/abhisek/academy/internal/logging"
	"github.com/abhisek/academy/internal/store"
)

// env holds what every command needs after config is resolved.
type env struct {
	cfg       *config.AppConfig
	logger    *zap.Logger
	sessionID string
	db        *store.Store
	calls     store.CallLog
	closeLog  func() error
	errOut    io.Writer
}

// setup resolves config, opens the log file and the call log database.
// An unusable database degrades to a no-op call log.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Config{FilePath: cfg.Log.File, Level: cfg.Log.Level})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	sessionID := uuid.NewString()
	e := &env{
		cfg:       cfg,
		logger:    logger.With(zap.String("session", sessionID), zap.String("command", cmd.Name())),
		sessionID: sessionID,
		calls:     store.NopCallLog{},
		closeLog:  closeLog,
		errOut:    cmd.ErrOrStderr(),
	}

	dbPath, err := resolveDBPath(cfg)
	if err == nil {
		e.db, err = store.Open(dbPath)
	}
	if err != nil {
		e.logger.Warn("call log unavailable", zap.Error(err))
	} else {
		e.calls = e.db.CallLog()
	}
	return e, nil
}

// Close releases the call log and the log file. The log file goes last;
// a failure closing it is written to errOut.
func (e *env) Close() {
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			e.logger.Warn("closing call log failed", zap.Error(err))
		}
	}
	_ = e.logger.Sync()
	if err := e.closeLog(); err != nil {
		fmt.Fprintf(e.errOut, "warning: closing log file: %v\n", err)
	}
}

// ctx tags parent with the session id used for call-log rows.
func (e *env) ctx(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return llm.WithSession(parent, e.sessionID)
}

// resolveDBPath returns the --db / ACADEMY_DB path when set, otherwise the
// default XDG path.
func resolveDBPath(cfg *config.AppConfig) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// loadCatalog returns the --catalog file when set, otherwise the bundled
// curriculum.
func (e *env) loadCatalog() (*catalog.Catalog, error) {
	if e.cfg.Catalog != "" {
		return catalog.Load(e.cfg.Catalog)
	}
	return catalog.Default()
}

// newGateway builds the generation gateway. Without a usable provider it
// still works and serves the fallback content.
func (e *env) newGateway(ctx context.Context) *gateway.Service {
	var provider llm.Provider

	llmCfg, err := e.cfg.LLMConfig()
	if err == nil {
		provider, err = llm.NewProvider(ctx, llmCfg, e.calls, e.logger)
	}
	if err != nil {
		e.logger.Warn("LLM provider not configured", zap.Error(err))
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will use offline fallbacks.")
	} else {
		e.logger.Info("LLM provider ready",
			zap.String("provider", llmCfg.Provider),
			zap.String("model", provider.ModelID()),
		)
	}

	return gateway.NewService(provider, gateway.DefaultConfig(), e.logger)
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	cat, err := e.loadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	ctx := e.ctx(cmd.Context())
	return app.Run(ctx, app.Options{
		Catalog:   cat,
		Gateway:   e.newGateway(ctx),
		Logger:    e.logger,
		SessionID: e.sessionID,
	})
}
