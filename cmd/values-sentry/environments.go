package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var environmentsCmd = &cobra.Command{
	Use:   "environments <chart-dir>",
	Short: "List the environments a chart defines and their overlay chains",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnvironments,
}

func runEnvironments(cmd *cobra.Command, args []string) error {
	envs, err := newService().ListEnvironments(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	for _, env := range envs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", env.Name, strings.Join(env.ValueFiles, " -> "))
	}
	return nil
}
