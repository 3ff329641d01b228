package params

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/logging"
	"github.com/0xalexb/hjarta-params/metrics"
	"github.com/0xalexb/hjarta-params/tree"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is an Fx application that loads a parameter tree on start and
// releases it on stop.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options, os.Stderr),
	}
}

func configure(options *Options, w io.Writer) *fx.App {
	logConfig := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}
	logger := logging.NewLogger(logConfig, w)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(logConfig),
		fx.Supply(logger),
		fx.Supply(options.Params),
		Module(),
		fx.Options(options.Modules...),
	)
}

// Module provides the metrics registry and collector, the Loader, and the
// *tree.Tree built from the supplied config.Params.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module() fx.Option {
	return fx.Module("params",
		fx.Provide(
			metrics.NewRegistry,
			func(registry *prometheus.Registry) *metrics.Collector {
				return metrics.NewCollector(metrics.Config{}, registry)
			},
			func(collector *metrics.Collector, logger *slog.Logger) *Loader {
				return NewLoader(WithCollector(collector), WithLoaderLogger(logger))
			},
			newTree,
		),
	)
}

func newTree(lifecycle fx.Lifecycle, loader *Loader, cfg config.Params) (*tree.Tree, error) {
	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid parameter configuration: %w", err)
	}

	loaded, err := loader.Load(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	lifecycle.Append(fx.StopHook(loaded.Finalize))

	return loaded, nil
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Err returns the error, if any, from building the application graph.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err() //nolint:wrapcheck
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
