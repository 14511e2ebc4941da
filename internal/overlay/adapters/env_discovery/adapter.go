// Package envdiscovery finds the environments a chart directory defines
// through its values files.
package envdiscovery

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/nathantilsley/values-sentry/internal/overlay/domain"
)

const (
	baseValuesFile = "values.yaml"
	envFilePrefix  = "values-"
	envFileSuffix  = ".yaml"

	// DefaultEnvironment is the environment reported for charts that
	// ship only a base values.yaml.
	DefaultEnvironment = "default"
)

// Adapter implements ports.EnvironmentDiscovery using the file naming
// convention values.yaml + values-<env>.yaml. Returned ValueFiles are
// relative to the chart directory, lowest precedence first.
type Adapter struct{}

// New creates a new environment discovery adapter.
func New() *Adapter {
	return &Adapter{}
}

// DiscoverEnvironments scans chartDir for values files. Each
// values-<env>.yaml defines environment <env> with the chain
// [values.yaml, values-<env>.yaml]; a chart with only values.yaml gets
// the single environment "default". Environments come back sorted by
// name so results are deterministic.
func (a *Adapter) DiscoverEnvironments(_ context.Context, chartDir string) ([]domain.Environment, error) {
	entries, err := os.ReadDir(chartDir)
	if err != nil {
		return nil, fmt.Errorf("reading chart dir: %w", err)
	}

	hasBase := false
	var envNames []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == baseValuesFile {
			hasBase = true
			continue
		}
		if env, ok := environmentName(name); ok {
			envNames = append(envNames, env)
		}
	}

	if !hasBase && len(envNames) == 0 {
		return nil, domain.NewNotFoundError("values files", chartDir)
	}

	sort.Strings(envNames)

	if len(envNames) == 0 {
		return []domain.Environment{
			{Name: DefaultEnvironment, ValueFiles: []string{baseValuesFile}},
		}, nil
	}

	envs := make([]domain.Environment, 0, len(envNames))
	for _, env := range envNames {
		var files []string
		if hasBase {
			files = append(files, baseValuesFile)
		}
		files = append(files, envFilePrefix+env+envFileSuffix)
		envs = append(envs, domain.Environment{Name: env, ValueFiles: files})
	}
	return envs, nil
}

func environmentName(file string) (string, bool) {
	if !strings.HasPrefix(file, envFilePrefix) || !strings.HasSuffix(file, envFileSuffix) {
		return "", false
	}
	env := strings.TrimSuffix(strings.TrimPrefix(file, envFilePrefix), envFileSuffix)
	return env, env != ""
}
