package main

import (
	"fmt"

	"github.com/spf13/cobra"

	params "github.com/0xalexb/hjarta-params"
)

type VersionOptions struct {
	Root *RootOptions
}

func NewVersionOptions(root *RootOptions) *VersionOptions {
	return &VersionOptions{Root: root}
}

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
}

func (o *VersionOptions) Run() error {
	_, err := fmt.Fprintf(o.Root.Out, "hjarta-params version %s (commit %s, built %s)\n",
		params.Version, params.Commit, params.CompiledAt)

	return err //nolint:wrapcheck
}
