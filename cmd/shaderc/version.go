package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCommand creates the `shaderc version` command.
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shaderc version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shaderc version %s\n", version)
		},
	}
}
