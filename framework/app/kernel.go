package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-genius/framework/config"
	"github.com/km-arc/go-genius/framework/container"
	"github.com/km-arc/go-genius/framework/debug"
	"github.com/km-arc/go-genius/framework/logging"
	"github.com/km-arc/go-genius/framework/providers"
)

const shutdownTimeout = 5 * time.Second

// Application is the composition root: it loads configuration, registers
// providers and owns the resulting container.
type Application struct {
	Config    *config.Config
	Logger    *zap.Logger
	Providers *container.ProviderRegistry
}

// New loads and validates configuration, creates the logger and registers the
// framework providers. Call Register for application providers, then Boot.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	registry := container.NewProviderRegistry(container.NewBuilder())

	// Register framework core providers
	registry.Register(&providers.ConfigServiceProvider{Config: cfg})
	registry.Register(&providers.LoggingServiceProvider{Logger: logger})
	registry.Register(&providers.DebugServiceProvider{})
	registry.Register(&providers.DefinitionsServiceProvider{File: cfg.Container.Services, Optional: true})

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Providers: registry,
	}, nil
}

// Register adds a ServiceProvider to the application. It must be called
// before Boot.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot builds the container and runs every provider's Boot.
func (a *Application) Boot() error {
	a.Providers.Build(container.WithLogger(a.Logger.Named("container")))
	return a.Providers.Boot()
}

// Container returns the built container, building it if Boot was not called.
func (a *Application) Container() *container.Container {
	return a.Providers.Build(container.WithLogger(a.Logger.Named("container")))
}

// Warm builds every declared service once, from the calling goroutine, so
// the container can afterwards be shared for concurrent reads. Failures are
// logged and returned together.
func (a *Application) Warm() error {
	c := a.Container()

	var errs []error
	for _, name := range c.Names() {
		if _, err := c.Get(name); err != nil {
			a.Logger.Error("service failed to build", zap.String("service", name), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run serves the container inspector on DEBUG_ADDR while APP_DEBUG is on,
// until ctx is cancelled. With debug off it returns immediately.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}

	if !a.IsDebug() {
		a.Logger.Info("debug server disabled", zap.String("env", a.Environment()))
		return nil
	}

	inspector, err := container.Resolve[*debug.Inspector](a.Container(), "debug.inspector")
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: a.Config.Debug.Addr, Handler: inspector.Handler()}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	a.Logger.Info(fmt.Sprintf("%s inspector listening", a.Config.App.Name),
		zap.String("addr", srv.Addr),
		zap.String("env", a.Environment()),
	)

	select {
	case err := <-errCh:
		return fmt.Errorf("debug server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
