package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	gogithub "github.com/google/go-github/v68/github"
	"github.com/spf13/cobra"

	ghauth "github.com/nathantilsley/values-sentry/internal/overlay/adapters/gh_auth"
	prfiles "github.com/nathantilsley/values-sentry/internal/overlay/adapters/pr_files"
	sourcectrl "github.com/nathantilsley/values-sentry/internal/overlay/adapters/source_ctrl"
	"github.com/nathantilsley/values-sentry/internal/overlay/app"
	"github.com/nathantilsley/values-sentry/internal/overlay/domain"
)

var (
	prToken     string
	prAppID     int64
	prInstallID int64
	prKeyPath   string
)

var prCmd = &cobra.Command{
	Use:   "pr <pull-request-url>",
	Short: "Diff resolved values for the charts a pull request touches",
	Long: `Pr lists the files a GitHub pull request changes, finds the charts
they belong to, fetches each chart at the base and head refs, and diffs
the resolved values per environment.

Authenticate with a personal access token (-token or GITHUB_TOKEN) or
as a GitHub App installation (--app-id, --installation-id,
--private-key, or the matching GITHUB_* env vars).`,
	Args: cobra.ExactArgs(1),
	RunE: runPR,
}

func init() {
	prCmd.Flags().StringVar(&prToken, "token", "", "GitHub personal access token (or GITHUB_TOKEN env var)")
	prCmd.Flags().Int64Var(&prAppID, "app-id", 0, "GitHub App ID (or GITHUB_APP_ID env var)")
	prCmd.Flags().Int64Var(&prInstallID, "installation-id", 0, "GitHub App installation ID (or GITHUB_INSTALLATION_ID env var)")
	prCmd.Flags().StringVar(&prKeyPath, "private-key", "", "GitHub App private key path (or GITHUB_PRIVATE_KEY_PATH env var)")
}

func runPR(cmd *cobra.Command, args []string) error {
	owner, repo, prNum, err := parsePRURL(args[0])
	if err != nil {
		return fmt.Errorf("parsing PR URL: %w", err)
	}

	client, err := newGitHubClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pr, _, err := client.PullRequests.Get(ctx, owner, repo, prNum)
	if err != nil {
		return fmt.Errorf("fetching PR: %w", err)
	}

	prCtx := domain.PRContext{
		Owner:    owner,
		Repo:     repo,
		PRNumber: prNum,
		BaseRef:  pr.GetBase().GetRef(),
		HeadRef:  pr.GetHead().GetRef(),
		HeadSHA:  pr.GetHead().GetSHA(),
	}

	svc := newService().WithGitHub(sourcectrl.New(client), prfiles.New(client))
	results, err := svc.DiffPullRequest(ctx, prCtx)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), app.FormatReport(results))
	return nil
}

func newGitHubClient() (*gogithub.Client, error) {
	if token := getEnvOrFlag(prToken, "GITHUB_TOKEN"); token != "" {
		return ghauth.NewTokenClient(token), nil
	}

	appID, err := getEnvOrFlagInt64(prAppID, "GITHUB_APP_ID")
	if err != nil {
		return nil, err
	}
	installID, err := getEnvOrFlagInt64(prInstallID, "GITHUB_INSTALLATION_ID")
	if err != nil {
		return nil, err
	}
	keyPath := getEnvOrFlag(prKeyPath, "GITHUB_PRIVATE_KEY_PATH")

	if appID != 0 && installID != 0 && keyPath != "" {
		return ghauth.NewAppClient(ghauth.AppConfig{
			AppID:          appID,
			InstallationID: installID,
			PrivateKeyPath: keyPath,
		})
	}

	return nil, errors.New(
		"github auth required\nProvide -token/GITHUB_TOKEN, or App credentials via --app-id, --installation-id and --private-key")
}

func getEnvOrFlagInt64(flagValue int64, envKey string) (int64, error) {
	if flagValue != 0 {
		return flagValue, nil
	}
	str := os.Getenv(envKey)
	if str == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", envKey, err)
	}
	return v, nil
}

// parsePRURL extracts owner, repo, and PR number from a GitHub PR URL
// Handles formats:
//   - https://github.com/owner/repo/pull/123
//   - https://github.com/owner/repo/pull/123/changes
//   - https://github.com/owner/repo/pull/123/files
func parsePRURL(url string) (string, string, int, error) {
	// Handle both http and https URLs, with optional trailing paths
	re := regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)(?:/.*)?$`)
	matches := re.FindStringSubmatch(url)

	if len(matches) != 4 {
		return "", "", 0, fmt.Errorf(
			"invalid PR URL format, expected: https://github.com/owner/repo/pull/123, got: %s",
			url,
		)
	}

	owner := matches[1]
	repo := matches[2]
	prNum, err := strconv.Atoi(matches[3])
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid PR number: %w", err)
	}

	return owner, repo, prNum, nil
}
