// Package ports defines the interfaces the application service uses to
// talk to its adapters.
package ports

import (
	"context"

	"github.com/nathantilsley/values-sentry/internal/overlay/domain"
)

// Codec translates between serialized values documents and the domain
// value tree.
type Codec interface {
	// Decode parses data into a value tree. source labels the document
	// in parse errors.
	Decode(source string, data []byte) (domain.Value, error)
	// Encode serializes a value tree deterministically: same tree, same
	// bytes.
	Encode(doc domain.Value) ([]byte, error)
}

// EnvironmentDiscovery finds the environments defined by a chart
// directory and the ordered values-file chain for each.
type EnvironmentDiscovery interface {
	DiscoverEnvironments(ctx context.Context, chartDir string) ([]domain.Environment, error)
}

// ChartFetcher materializes a chart directory from a repository at a
// given ref. The cleanup func releases any temporary files.
type ChartFetcher interface {
	FetchChart(ctx context.Context, owner, repo, ref, chartPath string) (dir string, cleanup func(), err error)
}

// FileChanges lists the files modified in a pull request.
type FileChanges interface {
	ChangedFiles(ctx context.Context, owner, repo string, prNumber int) ([]string, error)
}

// LineDiff produces a unified diff of two serialized documents.
// An empty string means no differences.
type LineDiff interface {
	ComputeDiff(baseName, headName string, base, head []byte) string
}

// ValueDiff produces a per-path semantic diff of two value trees.
// An empty string means no differences.
type ValueDiff interface {
	ComputeDiff(baseName, headName string, base, head domain.Value) string
}
