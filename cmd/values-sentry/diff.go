package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nathantilsley/values-sentry/internal/overlay/app"
	"github.com/nathantilsley/values-sentry/internal/overlay/domain"
)

var (
	diffBaseRef  string
	diffHeadRef  string
	diffExitCode bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <base-dir> <head-dir>",
	Short: "Diff resolved values between two versions of a chart",
	Long: `Diff resolves every environment of the head chart directory and the
same chains in the base directory, then reports unified and semantic
diffs of the serialized documents per environment.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffBaseRef, "base-ref", "base", "label for the base side of the diff")
	diffCmd.Flags().StringVar(&diffHeadRef, "head-ref", "head", "label for the head side of the diff")
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "exit with status 1 when changes are detected")
}

func runDiff(cmd *cobra.Command, args []string) error {
	baseDir, headDir := args[0], args[1]
	chartName := filepath.Base(filepath.Clean(headDir))

	results, err := newService().DiffChart(cmd.Context(), chartName, baseDir, headDir, diffBaseRef, diffHeadRef)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), app.FormatReport(results))

	_, changes, errs := domain.CountByStatus(results)
	if errs > 0 {
		return fmt.Errorf("%d environment(s) failed to resolve", errs)
	}
	if diffExitCode && changes > 0 {
		os.Exit(1)
	}
	return nil
}
