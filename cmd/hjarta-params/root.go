package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	params "github.com/0xalexb/hjarta-params"
	"github.com/0xalexb/hjarta-params/config"
	filefetcher "github.com/0xalexb/hjarta-params/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-params/config/parser/yaml"
	"github.com/0xalexb/hjarta-params/listener"
	"github.com/0xalexb/hjarta-params/logging"
	"github.com/0xalexb/hjarta-params/tree"
)

// RootOptions holds the flags shared by every command.
type RootOptions struct {
	ConfigFile  string
	Files       []string
	Overrides   []string
	SkipMissing bool
	MemoryLimit int
	LogLevel    string
	LogFormat   string

	Out    io.Writer
	ErrOut io.Writer
}

// Settings is the merged result of the configuration file and the flags.
type Settings struct {
	Params config.Params
	HTTP   listener.Config
	Log    logging.LoggerConfig
}

func NewRootOptions() *RootOptions {
	return &RootOptions{Out: os.Stdout, ErrOut: os.Stderr}
}

func NewDefaultRootCmd() *cobra.Command {
	return NewRootCmd(NewRootOptions())
}

func NewRootCmd(o *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hjarta-params",
		Version: params.Version,
		Short:   "hjarta-params loads ROS 2 style parameter files",
		Long: `hjarta-params loads ROS 2 style parameter files.

Files are parsed in the order given, so later files override earlier ones.
Override rules of the form [node:]param.name:=value are applied last.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.ConfigFile, "config", "", "Service configuration file with params, http and log sections")
	flags.StringArrayVarP(&o.Files, "file", "f", nil, "Parameter file (can be specified multiple times)")
	flags.StringArrayVarP(&o.Overrides, "override", "p", nil, "Override rule [node:]param:=value (can be specified multiple times)")
	flags.BoolVar(&o.SkipMissing, "skip-missing", false, "Skip parameter files that do not exist")
	flags.IntVar(&o.MemoryLimit, "memory-limit", 0, "Maximum bytes the parameter tree may hold (0 means no limit)")
	flags.StringVar(&o.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&o.LogFormat, "log-format", "", "Log format: json or text")

	cmd.AddCommand(NewDumpCmd(NewDumpOptions(o)))
	cmd.AddCommand(NewGetCmd(NewGetOptions(o)))
	cmd.AddCommand(NewServeCmd(NewServeOptions(o)))
	cmd.AddCommand(NewVersionCmd(NewVersionOptions(o)))

	return cmd
}

// Settings reads the configuration file, when one is set, and lays the
// flags over it. Flag files and overrides are appended to the configured
// ones.
func (o *RootOptions) Settings() (Settings, error) {
	var settings Settings

	if o.ConfigFile != "" {
		err := o.readConfig(&settings)
		if err != nil {
			return Settings{}, err
		}
	}

	settings.Params.Files = append(settings.Params.Files, o.Files...)
	settings.Params.Overrides = append(settings.Params.Overrides, o.Overrides...)
	settings.Params.SkipMissing = settings.Params.SkipMissing || o.SkipMissing

	if o.MemoryLimit != 0 {
		settings.Params.MemoryLimit = o.MemoryLimit
	}

	if o.LogLevel != "" {
		settings.Log.Level = o.LogLevel
	}

	if o.LogFormat != "" {
		settings.Log.Format = o.LogFormat
	}

	settings.Params.SetDefaults()

	err := settings.Params.Validate()
	if err != nil {
		return Settings{}, fmt.Errorf("invalid parameter configuration: %w", err)
	}

	return settings, nil
}

func (o *RootOptions) readConfig(settings *Settings) error {
	fetcher, err := filefetcher.Open(o.ConfigFile)
	if err != nil {
		return err
	}

	parser := yamlparser.NewStrictParser()

	paramsCfg, err := config.OptionalProvider(new(config.Params), config.ParamsPath)(parser, fetcher)
	if err != nil {
		return err
	}

	httpCfg, err := config.OptionalProvider(new(listener.Config), config.HTTPPath)(parser, fetcher)
	if err != nil {
		return err
	}

	logCfg, err := config.OptionalProvider(new(logging.LoggerConfig), config.LogPath)(parser, fetcher)
	if err != nil {
		return err
	}

	settings.Params = *paramsCfg
	settings.HTTP = *httpCfg
	settings.Log = *logCfg

	return nil
}

// Load builds the parameter tree described by the settings.
func (o *RootOptions) Load(ctx context.Context) (*tree.Tree, error) {
	settings, err := o.Settings()
	if err != nil {
		return nil, err
	}

	loader := params.NewLoader(params.WithLoaderLogger(o.logger(settings.Log)))

	return loader.Load(ctx, settings.Params) //nolint:wrapcheck
}

func (o *RootOptions) logger(cfg logging.LoggerConfig) *slog.Logger {
	if cfg.Level == "" {
		cfg.Level = "warn"
	}

	return logging.NewLogger(cfg, o.ErrOut)
}
