package params

import (
	"log/slog"
	"net/http"

	"go.uber.org/fx"

	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/httpapi"
	"github.com/0xalexb/hjarta-params/listener"
	"github.com/0xalexb/hjarta-params/metrics"
	"github.com/0xalexb/hjarta-params/tree"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	Params    config.Params
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the log level: "debug", "info", "warn" or "error".
// Unknown levels fall back to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (the default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithParams replaces the whole parameter configuration.
func WithParams(cfg config.Params) Option {
	return func(opts *Options) {
		opts.Params = cfg
	}
}

// WithParamFiles appends parameter files. Later files override earlier ones.
func WithParamFiles(files ...string) Option {
	return func(opts *Options) {
		opts.Params.Files = append(opts.Params.Files, files...)
	}
}

// WithOverrides appends "[node:]param:=value" rules applied after the files.
func WithOverrides(rules ...string) Option {
	return func(opts *Options) {
		opts.Params.Overrides = append(opts.Params.Overrides, rules...)
	}
}

// WithHTTPListener serves the parameter tree on a named listener. The name
// is the Fx module name and the tag of the listener's handler and Config.
// Without listener options the Config tagged with the name must be
// provided by another module.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		handler := func(paramTree *tree.Tree, collector *metrics.Collector, logger *slog.Logger) http.Handler {
			return httpapi.NewHandler(paramTree, httpapi.WithMetrics(collector), httpapi.WithLogger(logger))
		}

		o.Modules = append(o.Modules,
			fx.Provide(fx.Annotate(handler, fx.ResultTags(listener.NameTag(name)))),
			listener.NewModule(name, opts...),
		)
	}
}
