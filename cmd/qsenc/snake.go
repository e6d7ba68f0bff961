package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/qsenc"
)

func newSnakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snake <name>...",
		Short: "Print the snake_case form of each name",
		Long: `Snake prints each argument as the snake encoding strategy would emit it.

Examples:
  qsenc snake PascalCase camelCase   # pascal_case, camel_case`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), qsenc.KeysCamelToSnake.Transform(a)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
