package envdiscovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nathantilsley/values-sentry/internal/overlay/domain"
)

func writeChart(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("replicas: 1\n"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", f, err)
		}
	}
	return dir
}

func TestDiscoverEnvironments(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []domain.Environment
	}{
		{
			name:  "base only yields default environment",
			files: []string{"values.yaml"},
			want: []domain.Environment{
				{Name: "default", ValueFiles: []string{"values.yaml"}},
			},
		},
		{
			name:  "environments sorted by name",
			files: []string{"values.yaml", "values-prod.yaml", "values-dev.yaml"},
			want: []domain.Environment{
				{Name: "dev", ValueFiles: []string{"values.yaml", "values-dev.yaml"}},
				{Name: "prod", ValueFiles: []string{"values.yaml", "values-prod.yaml"}},
			},
		},
		{
			name:  "environment files without base",
			files: []string{"values-prod.yaml"},
			want: []domain.Environment{
				{Name: "prod", ValueFiles: []string{"values-prod.yaml"}},
			},
		},
		{
			name:  "unrelated files ignored",
			files: []string{"values.yaml", "Chart.yaml", "values-.yaml", "notes.txt"},
			want: []domain.Environment{
				{Name: "default", ValueFiles: []string{"values.yaml"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeChart(t, tt.files...)

			got, err := New().DiscoverEnvironments(context.Background(), dir)
			if err != nil {
				t.Fatalf("DiscoverEnvironments() error: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %d environments, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].Name != tt.want[i].Name {
					t.Errorf("env[%d].Name = %q, want %q", i, got[i].Name, tt.want[i].Name)
				}
				if len(got[i].ValueFiles) != len(tt.want[i].ValueFiles) {
					t.Fatalf("env[%d].ValueFiles = %v, want %v", i, got[i].ValueFiles, tt.want[i].ValueFiles)
				}
				for j := range got[i].ValueFiles {
					if got[i].ValueFiles[j] != tt.want[i].ValueFiles[j] {
						t.Errorf("env[%d].ValueFiles[%d] = %q, want %q",
							i, j, got[i].ValueFiles[j], tt.want[i].ValueFiles[j])
					}
				}
			}
		})
	}
}

func TestDiscoverEnvironments_NoValuesFiles(t *testing.T) {
	dir := writeChart(t, "Chart.yaml")

	_, err := New().DiscoverEnvironments(context.Background(), dir)
	if err == nil {
		t.Fatal("expected an error for a chart without values files")
	}
	if !domain.IsNotFound(err) {
		t.Errorf("expected a not-found error, got %v", err)
	}
}

func TestDiscoverEnvironments_MissingDir(t *testing.T) {
	_, err := New().DiscoverEnvironments(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected an error for a missing chart dir")
	}
}
