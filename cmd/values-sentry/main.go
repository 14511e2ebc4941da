// Package main provides the values-sentry CLI: resolve layered values
// documents and diff the resolved output between chart versions.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	envdiscovery "github.com/nathantilsley/values-sentry/internal/overlay/adapters/env_discovery"
	linediff "github.com/nathantilsley/values-sentry/internal/overlay/adapters/line_diff"
	valuediff "github.com/nathantilsley/values-sentry/internal/overlay/adapters/value_diff"
	yamlcodec "github.com/nathantilsley/values-sentry/internal/overlay/adapters/yaml_codec"
	"github.com/nathantilsley/values-sentry/internal/overlay/app"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "values-sentry",
	Short: "Resolve and diff layered Helm values",
	Long: `values-sentry folds a chart's ordered values overlays
(base -> environment -> instance) into a single resolved document,
and diffs resolved output between two chart versions or the base and
head refs of a GitHub pull request.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(resolveCmd, environmentsCmd, diffCmd, prCmd)
}

func newService() *app.Service {
	return app.New(yamlcodec.New(), envdiscovery.New(), linediff.New(), valuediff.New(), slog.Default())
}

func getEnvOrFlag(flagValue, envKey string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(envKey)
}
