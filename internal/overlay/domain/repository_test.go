package domain

import (
	"reflect"
	"testing"
)

func TestExtractChartNames(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "no chart files",
			files: []string{"README.md", ".github/workflows/ci.yaml"},
			want:  nil,
		},
		{
			name: "single chart",
			files: []string{
				"charts/my-app/values.yaml",
				"charts/my-app/values-prod.yaml",
			},
			want: []string{"my-app"},
		},
		{
			name: "multiple charts with noise",
			files: []string{
				"charts/my-app/values.yaml",
				"docs/runbook.md",
				"charts/other-app/values-dev.yaml",
				"charts/my-app/templates/deployment.yaml",
			},
			want: []string{"my-app", "other-app"},
		},
		{
			name:  "malformed chart path",
			files: []string{"charts/", "charts"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractChartNames(tt.files)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractChartNames() = %v, want %v", got, tt.want)
			}
		})
	}
}
