package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"salesdash/internal/config"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "salesdash %s\n", config.GetVersion())
			return nil
		},
	}
}
