// Package app wires the overlay adapters into the resolution and diff
// flows the CLI exposes.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nathantilsley/values-sentry/internal/overlay/domain"
	"github.com/nathantilsley/values-sentry/internal/overlay/ports"
)

// Service orchestrates environment discovery, chain loading, resolution,
// and diffing. It holds no mutable state; every call stands alone.
type Service struct {
	codec     ports.Codec
	discovery ports.EnvironmentDiscovery
	lineDiff  ports.LineDiff
	valueDiff ports.ValueDiff
	fetcher   ports.ChartFetcher // nil outside pull request flows
	changes   ports.FileChanges  // nil outside pull request flows
	logger    *slog.Logger
}

// New creates a service for local chart directories.
func New(
	codec ports.Codec,
	discovery ports.EnvironmentDiscovery,
	lineDiff ports.LineDiff,
	valueDiff ports.ValueDiff,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		codec:     codec,
		discovery: discovery,
		lineDiff:  lineDiff,
		valueDiff: valueDiff,
		logger:    logger,
	}
}

// WithGitHub enables the pull request flow by attaching the adapters
// that talk to GitHub.
func (s *Service) WithGitHub(fetcher ports.ChartFetcher, changes ports.FileChanges) *Service {
	s.fetcher = fetcher
	s.changes = changes
	return s
}

// ResolveEnvironment resolves one environment's overlay chain in
// chartDir and returns the serialized document. extraFiles are appended
// to the chain after the discovered layers, so they carry the highest
// precedence; their paths are taken as given, not relative to chartDir.
func (s *Service) ResolveEnvironment(ctx context.Context, chartDir, envName string, extraFiles []string) ([]byte, error) {
	env, err := s.findEnvironment(ctx, chartDir, envName)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveChain(chartDir, env.ValueFiles, extraFiles)
	if err != nil {
		return nil, err
	}
	return s.codec.Encode(resolved)
}

// ListEnvironments returns the environments chartDir defines.
func (s *Service) ListEnvironments(ctx context.Context, chartDir string) ([]domain.Environment, error) {
	return s.discovery.DiscoverEnvironments(ctx, chartDir)
}

// DiffChart resolves every environment of headDir against the same
// chains in baseDir and diffs the serialized results. An empty baseDir
// means the chart is new; every environment then diffs against an empty
// document. A resolution failure in one environment is reported as a
// StatusError result rather than aborting the rest.
func (s *Service) DiffChart(ctx context.Context, chartName, baseDir, headDir, baseRef, headRef string) ([]domain.ResolveResult, error) {
	envs, err := s.discovery.DiscoverEnvironments(ctx, headDir)
	if err != nil {
		return nil, fmt.Errorf("discovering environments for %s: %w", chartName, err)
	}

	results := make([]domain.ResolveResult, 0, len(envs))
	for _, env := range envs {
		results = append(results, s.diffEnvironment(chartName, baseDir, headDir, baseRef, headRef, env))
	}
	return results, nil
}

func (s *Service) diffEnvironment(chartName, baseDir, headDir, baseRef, headRef string, env domain.Environment) domain.ResolveResult {
	result := domain.ResolveResult{
		ChartName:   chartName,
		Environment: env.Name,
		BaseRef:     baseRef,
		HeadRef:     headRef,
	}

	headDoc, err := s.resolveChain(headDir, env.ValueFiles, nil)
	if err != nil {
		result.Status = domain.StatusError
		result.Summary = fmt.Sprintf("resolving head: %v", err)
		return result
	}

	baseDoc := domain.MappingValue()
	if baseDir != "" {
		baseDoc, err = s.resolveChain(baseDir, env.ValueFiles, nil)
		if domain.IsNotFound(err) {
			// Environment is new in head; diff against an empty document.
			s.logger.Debug("base values missing, treating environment as new",
				"chart", chartName, "environment", env.Name)
			baseDoc, err = domain.MappingValue(), nil
		}
		if err != nil {
			result.Status = domain.StatusError
			result.Summary = fmt.Sprintf("resolving base: %v", err)
			return result
		}
	}

	baseBytes, err := s.codec.Encode(baseDoc)
	if err != nil {
		result.Status = domain.StatusError
		result.Summary = fmt.Sprintf("encoding base: %v", err)
		return result
	}
	headBytes, err := s.codec.Encode(headDoc)
	if err != nil {
		result.Status = domain.StatusError
		result.Summary = fmt.Sprintf("encoding head: %v", err)
		return result
	}

	baseName := domain.DiffLabel(chartName, env.Name, baseRef)
	headName := domain.DiffLabel(chartName, env.Name, headRef)

	result.UnifiedDiff = s.lineDiff.ComputeDiff(baseName, headName, baseBytes, headBytes)
	result.SemanticDiff = s.valueDiff.ComputeDiff(baseName, headName, baseDoc, headDoc)

	if result.UnifiedDiff != "" || result.SemanticDiff != "" {
		result.Status = domain.StatusChanges
		result.Summary = fmt.Sprintf("Changes detected in %s for environment %s.", chartName, env.Name)
	} else {
		result.Status = domain.StatusSuccess
		result.Summary = "No changes detected."
	}
	return result
}

// DiffPullRequest fetches base and head of the PR, finds the charts its
// changed files touch, and diffs the resolved values of each.
func (s *Service) DiffPullRequest(ctx context.Context, pr domain.PRContext) ([]domain.ResolveResult, error) {
	if s.fetcher == nil || s.changes == nil {
		return nil, errors.New("github adapters not configured")
	}

	files, err := s.changes.ChangedFiles(ctx, pr.Owner, pr.Repo, pr.PRNumber)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}

	charts := domain.ExtractChartNames(files)
	if len(charts) == 0 {
		s.logger.Info("no chart files changed in pull request",
			"owner", pr.Owner, "repo", pr.Repo, "pr", pr.PRNumber)
		return nil, nil
	}

	headRef := pr.HeadSHA
	if headRef == "" {
		headRef = pr.HeadRef
	}

	var allResults []domain.ResolveResult
	for _, chart := range charts {
		results, err := s.diffRemoteChart(ctx, pr, chart, headRef)
		if err != nil {
			return nil, err
		}
		allResults = append(allResults, results...)
	}
	return allResults, nil
}

func (s *Service) diffRemoteChart(ctx context.Context, pr domain.PRContext, chart, headRef string) ([]domain.ResolveResult, error) {
	chartPath := "charts/" + chart

	headDir, headCleanup, err := s.fetcher.FetchChart(ctx, pr.Owner, pr.Repo, headRef, chartPath)
	if err != nil {
		if domain.IsNotFound(err) {
			// Chart deleted by this PR; nothing to resolve.
			s.logger.Warn("chart missing at head ref, skipping", "chart", chart, "ref", headRef)
			return nil, nil
		}
		return nil, fmt.Errorf("fetching %s at head: %w", chartPath, err)
	}
	defer headCleanup()

	baseDir, baseCleanup, err := s.fetcher.FetchChart(ctx, pr.Owner, pr.Repo, pr.BaseRef, chartPath)
	switch {
	case domain.IsNotFound(err):
		// New chart in this PR; diff every environment against empty.
		baseDir = ""
	case err != nil:
		return nil, fmt.Errorf("fetching %s at base: %w", chartPath, err)
	default:
		defer baseCleanup()
	}

	// Label the head side with the ref that was actually fetched, which
	// is the head SHA when the PR event carries one.
	return s.DiffChart(ctx, chart, baseDir, headDir, pr.BaseRef, headRef)
}

func (s *Service) findEnvironment(ctx context.Context, chartDir, envName string) (domain.Environment, error) {
	envs, err := s.discovery.DiscoverEnvironments(ctx, chartDir)
	if err != nil {
		return domain.Environment{}, err
	}

	if envName == "" {
		if len(envs) == 1 {
			return envs[0], nil
		}
		return domain.Environment{}, fmt.Errorf(
			"chart defines %d environments, pick one with --env", len(envs))
	}

	for _, env := range envs {
		if env.Name == envName {
			return env, nil
		}
	}
	return domain.Environment{}, domain.NewNotFoundError("environment "+envName, chartDir)
}

// resolveChain loads each layer through the codec and folds the chain.
func (s *Service) resolveChain(chartDir string, files, extraFiles []string) (domain.Value, error) {
	chain := make(domain.Chain, 0, len(files)+len(extraFiles))

	for _, f := range files {
		doc, err := s.loadLayer(filepath.Join(chartDir, f), f)
		if err != nil {
			return domain.Value{}, err
		}
		chain = append(chain, doc)
	}
	for _, f := range extraFiles {
		doc, err := s.loadLayer(f, f)
		if err != nil {
			return domain.Value{}, err
		}
		chain = append(chain, doc)
	}

	resolved, err := domain.Resolve(chain)
	if err != nil {
		return domain.Value{}, err
	}
	return resolved, nil
}

func (s *Service) loadLayer(path, label string) (domain.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Value{}, domain.NewNotFoundError(label, path)
		}
		return domain.Value{}, fmt.Errorf("reading %s: %w", label, err)
	}
	return s.codec.Decode(label, data)
}
