package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/classkit/internal/classsys"
	"github.com/vk/classkit/internal/ctxlog"
	"github.com/vk/classkit/internal/hcldecl"
	"github.com/vk/classkit/internal/propflag"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *classsys.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App holding a registered class system, including its own
// isolated logger. Declaration or registration failures are fatal startup
// errors and panic; the caller recovers them into a clean exit.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	flags, builtins := propflag.NewBuiltin()
	logger.Debug("Flag registry bootstrapped.", "flags", flags.Names())

	loader := hcldecl.NewLoader(flags)
	defs, err := loader.Load(ctx, cfg.DeclsPath)
	if err != nil {
		// A failure to load declarations is a fatal startup error.
		panic(fmt.Errorf("failed to load class declarations: %w", err))
	}
	logger.Debug("Class declarations loaded.", "classes", len(defs))

	registry := classsys.New(flags, builtins)
	if err := registry.RegisterAll(ctx, defs); err != nil {
		panic(fmt.Errorf("failed to register classes: %w", err))
	}
	logger.Debug("All classes registered.", "count", len(registry.Classes()))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: registry,
	}
}

// Registry returns the application's class system. This is primarily for
// testing.
func (a *App) Registry() *classsys.Registry {
	return a.registry
}
