package listener

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

// NameTag is the Fx tag under which a listener called name looks up its
// http.Handler and Config.
func NameTag(name string) string {
	return fmt.Sprintf(`name:"%s"`, name)
}

// NewModule creates the Fx module of a named listener. The module serves
// the http.Handler tagged NameTag(name). Its Config comes from opts when
// any are given; otherwise a Config with the same tag must be provided, for
// example from the "http" configuration section.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	tag := NameTag(name)

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		var cfg Config

		for _, apply := range opts {
			apply(&cfg)
		}

		moduleOpts = append(moduleOpts, fx.Supply(fx.Annotate(cfg, fx.ResultTags(tag))))
	}

	start := func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, handler http.Handler, cfg Config) error {
		srv, err := NewServer(name, handler, cfg, func() {
			shutdownErr := shutdowner.Shutdown()
			if shutdownErr != nil {
				slog.Error("failed to trigger shutdown", "name", name, "error", shutdownErr)
			}
		})
		if err != nil {
			return err
		}

		lifecycle.Append(fx.Hook{OnStart: srv.Start, OnStop: srv.Stop})

		return nil
	}

	moduleOpts = append(moduleOpts, fx.Invoke(fx.Annotate(start, fx.ParamTags("", "", tag, tag))))

	return fx.Module(name, moduleOpts...)
}
