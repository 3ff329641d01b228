package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Dump output formats.
const (
	FormatYAML  = "yaml"
	FormatTable = "table"
)

type DumpOptions struct {
	Root   *RootOptions
	Format string
}

func NewDumpOptions(root *RootOptions) *DumpOptions {
	return &DumpOptions{Root: root}
}

func NewDumpCmd(o *DumpOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the loaded parameter tree",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.Context()) },
	}
	cmd.Flags().StringVarP(&o.Format, "output", "o", FormatYAML, "Output format: yaml or table")

	return cmd
}

func (o *DumpOptions) Run(ctx context.Context) error {
	if o.Format != FormatYAML && o.Format != FormatTable {
		return fmt.Errorf("unknown output format %q", o.Format)
	}

	loaded, err := o.Root.Load(ctx)
	if err != nil {
		return err
	}

	defer loaded.Finalize()

	if o.Format == FormatTable {
		return loaded.Print(o.Root.Out) //nolint:wrapcheck
	}

	data, err := loaded.MarshalYAML()
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = o.Root.Out.Write(data)

	return err //nolint:wrapcheck
}
