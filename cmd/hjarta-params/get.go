package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errParameterNotFound = errors.New("parameter not found")

type GetOptions struct {
	Root *RootOptions
}

func NewGetOptions(root *RootOptions) *GetOptions {
	return &GetOptions{Root: root}
}

func NewGetCmd(o *GetOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get NODE PARAM",
		Short: "Print the value and type of one parameter",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args[0], args[1])
		},
	}
}

func (o *GetOptions) Run(ctx context.Context, node, param string) error {
	loaded, err := o.Root.Load(ctx)
	if err != nil {
		return err
	}

	defer loaded.Finalize()

	value, found := loaded.Lookup(node, param)
	if !found || value.IsEmpty() {
		return fmt.Errorf("%w: %s %s", errParameterNotFound, node, param)
	}

	_, err = fmt.Fprintf(o.Root.Out, "%s (%s)\n", value, value.Kind())

	return err //nolint:wrapcheck
}
