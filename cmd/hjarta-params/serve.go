package main

import (
	"github.com/spf13/cobra"

	params "github.com/0xalexb/hjarta-params"
	"github.com/0xalexb/hjarta-params/listener"
)

const listenerName = "api"

type ServeOptions struct {
	Root    *RootOptions
	Address string
}

func NewServeOptions(root *RootOptions) *ServeOptions {
	return &ServeOptions{Root: root}
}

func NewServeCmd(o *ServeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the loaded parameter tree over HTTP",
		Args:  cobra.NoArgs,
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.Address, "address", "", "Listen address (default "+listener.DefaultAddress+")")

	return cmd
}

// App builds the application without starting it.
func (o *ServeOptions) App() (*params.App, error) {
	settings, err := o.Root.Settings()
	if err != nil {
		return nil, err
	}

	httpCfg := settings.HTTP
	if o.Address != "" {
		httpCfg.Address = o.Address
	}

	httpCfg.SetDefaults()

	app := params.NewApp(
		params.WithLogLevel(settings.Log.Level),
		params.WithLogFormat(settings.Log.Format),
		params.WithParams(settings.Params),
		params.WithHTTPListener(listenerName, listener.WithConfig(httpCfg)),
	)

	return app, app.Err()
}

func (o *ServeOptions) Run() error {
	app, err := o.App()
	if err != nil {
		return err
	}

	app.Run()

	return nil
}
