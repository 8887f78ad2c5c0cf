package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/voicecheck/component"
	"github.com/kbukum/voicecheck/logger"
)

// App runs a service through a uniform lifecycle. The type parameter C is the
// config type; any struct embedding config.ServiceConfig satisfies Config.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
//	    return a.RegisterComponent(server.NewComponent(srv))
//	})
//	app.Run(context.Background())
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		gracefulTimeout: 15 * time.Second,
	}

	// Apply options (may override logger, timeout, summary output).
	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	// Logger: use custom if provided, otherwise init from config.
	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	app.Summary = NewSummary(base.Name, base.Version)
	if o.output != nil {
		app.Summary.SetOutput(o.output)
	}
	return app, nil
}

// RegisterComponent adds a component to the application's registry.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// OnConfigure registers a callback to run during the configure phase.
// Use this to set up business-layer dependencies after infrastructure is started.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck verifies that all registered components are healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	results := a.Components.HealthAll(ctx)
	var unhealthy []string
	for _, h := range results {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run executes the full application lifecycle for long-running services:
// configure, start components, OnStart hooks, ready check, OnReady hooks,
// block on signal, OnStop hooks, graceful shutdown.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	// Block until shutdown signal
	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	// Graceful shutdown
	return a.stop()
}

// RunTask runs task with the same lifecycle as Run but shuts down when the
// task returns or the context is canceled (e.g. via SIGINT/SIGTERM) instead
// of waiting for a signal.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	// Set up signal-based cancellation for the task
	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	// Execute the task
	taskErr := task(taskCtx)

	// Graceful shutdown
	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}

	return taskErr
}

// startup performs the common initialization sequence shared by Run and RunTask.
// Configure callbacks run first because they register the components.
func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := a.configure(ctx); err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}

	if err := a.initialize(ctx); err != nil {
		a.stopComponents()
		return fmt.Errorf("initialization failed: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		a.stopComponents()
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	// A failed ready check is reported but does not stop the service; the
	// remote classifier may come up later.
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.ErrorFields("ready_check", err))
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		a.stopComponents()
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.DisplaySummary()
	return nil
}

// initialize starts all registered components.
func (a *App[C]) initialize(ctx context.Context) error {
	a.Logger.Info("Starting components")

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}

	a.Logger.Info("All components started")
	return nil
}

// DisplaySummary prints the startup summary collected from the component registry.
func (a *App[C]) DisplaySummary() {
	a.Summary.DisplaySummary(a.Components)
}

// configure runs registered configuration callbacks.
func (a *App[C]) configure(ctx context.Context) error {
	if len(a.onConfigure) == 0 {
		return nil
	}

	a.Logger.Info("Running configuration callbacks", map[string]interface{}{
		"count": len(a.onConfigure),
	})

	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return err
		}
	}

	a.Logger.Info("Configuration complete")
	return nil
}

// WaitForSignal blocks until an OS interrupt/term signal or context cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal, graceful shutdown starting", map[string]interface{}{
			"signal": sig.String(),
		})
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use when managing your own lifecycle.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop gracefully shuts down all components within the graceful timeout.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	// Run OnStop hooks before stopping components
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.ErrorFields("on_stop", err))
		shutdownErr = err
	}

	// Stop all components (reverse order)
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.ErrorFields("stop_components", err))
		shutdownErr = err
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}

// stopComponents stops whatever started when startup fails half way.
func (a *App[C]) stopComponents() {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Stopping components after failed startup", logger.ErrorFields("stop_components", err))
	}
}
