package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-formrules/framework/config"
	"github.com/km-arc/go-formrules/framework/http/validation"
	"github.com/km-arc/go-formrules/framework/routing"
)

// Version is reported by the version command and the /sets endpoint.
var Version = "0.1.0"

// Application binds the validator factory and router to a Config.
type Application struct {
	cfg     *config.Config
	logger  zerolog.Logger
	factory *validation.Factory
	router  *routing.Router
	sets    map[string]validation.Rules
	names   []string
}

// New bootstraps the application from cfg: message catalogs are loaded from
// VALIDATION_MESSAGES_DIR and rule sets from VALIDATION_RULES_FILE.
func New(cfg *config.Config, logger zerolog.Logger) (*Application, error) {
	factory, err := NewFactory(cfg.Validation, logger)
	if err != nil {
		return nil, err
	}

	a := &Application{
		cfg:     cfg,
		logger:  logger,
		factory: factory,
		router:  routing.New(factory, logger, routing.WithMaxMemory(cfg.Validation.MaxMemory)),
		sets:    make(map[string]validation.Rules),
	}

	if path := cfg.Validation.RulesFile; path != "" {
		rf, err := validation.LoadRuleFile(path)
		if err != nil {
			return nil, err
		}
		for _, name := range rf.Names() {
			rules, err := rf.Rules(name)
			if err != nil {
				return nil, err
			}
			a.sets[name] = rules
			a.names = append(a.names, name)
		}
		logger.Info().Str("file", path).Strs("sets", a.names).Msg("rule sets loaded")
	}

	a.Mount()
	return a, nil
}

// NewFactory builds a validator factory from the validation settings.
func NewFactory(cfg config.ValidationConfig, logger zerolog.Logger) (*validation.Factory, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	tag, err := cfg.Tag()
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", cfg.Language, err)
	}

	catalog := validation.NewCatalog(tag)
	if cfg.MessagesDir != "" {
		if err := catalog.LoadDir(cfg.MessagesDir); err != nil {
			return nil, err
		}
	}

	opts := []validation.Option{
		validation.WithLogger(logger),
		validation.WithLocation(loc),
		validation.WithCatalog(catalog),
		validation.WithLanguage(tag),
	}
	if cfg.Strict {
		opts = append(opts, validation.Strict())
	}
	return validation.NewFactory(opts...), nil
}

// Config returns the application configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Router returns the application router.
func (a *Application) Router() *routing.Router { return a.router }

// Factory returns the shared validator factory.
func (a *Application) Factory() *validation.Factory { return a.factory }

// RuleSets lists the loaded rule set names.
func (a *Application) RuleSets() []string { return a.names }

// Rules returns a loaded rule set.
func (a *Application) Rules(name string) (validation.Rules, bool) {
	rules, ok := a.sets[name]
	return rules, ok
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.App.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.cfg.App.Addr(), err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           a.router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().
			Str("addr", ln.Addr().String()).
			Str("env", a.cfg.App.Env).
			Msgf("%s listening", a.cfg.App.Name)
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
