package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fourtrack/internal/formats"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "formats",
		Short:       "List supported import formats",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := formats.NewRegistry()
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(registry.Formats(), " "))
			return nil
		},
	}
}
