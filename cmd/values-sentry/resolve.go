package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	resolveEnv    string
	resolveExtra  []string
	resolveOutput string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <chart-dir>",
	Short: "Resolve one environment's overlay chain into a single document",
	Long: `Resolve discovers the values files in a chart directory, folds the
environment's chain left-to-right (later layers win), and prints the
merged document. Extra overlay files passed with -f are applied last,
with the highest precedence.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveEnv, "env", "e", "", "environment to resolve (required when the chart defines more than one)")
	resolveCmd.Flags().StringArrayVarP(&resolveExtra, "values", "f", nil, "extra overlay file, highest precedence (repeatable)")
	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "", "write the resolved document to a file instead of stdout")
}

func runResolve(cmd *cobra.Command, args []string) error {
	out, err := newService().ResolveEnvironment(cmd.Context(), args[0], resolveEnv, resolveExtra)
	if err != nil {
		return err
	}

	if resolveOutput == "" || resolveOutput == "-" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	return os.WriteFile(resolveOutput, out, 0o644)
}
