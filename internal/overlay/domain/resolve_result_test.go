package domain

import "testing"

func TestResolveResult_PreferredDiff(t *testing.T) {
	tests := []struct {
		name   string
		result ResolveResult
		want   string
	}{
		{
			name: "prefers semantic diff when available",
			result: ResolveResult{
				SemanticDiff: "semantic diff content",
				UnifiedDiff:  "unified diff content",
			},
			want: "semantic diff content",
		},
		{
			name: "falls back to unified diff when semantic is empty",
			result: ResolveResult{
				SemanticDiff: "",
				UnifiedDiff:  "unified diff content",
			},
			want: "unified diff content",
		},
		{
			name: "returns empty when both are empty",
			result: ResolveResult{
				SemanticDiff: "",
				UnifiedDiff:  "",
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.PreferredDiff()
			if got != tt.want {
				t.Errorf("PreferredDiff() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCountByStatus(t *testing.T) {
	tests := []struct {
		name        string
		results     []ResolveResult
		wantSuccess int
		wantChanges int
		wantErrors  int
	}{
		{
			name:        "empty results",
			results:     []ResolveResult{},
			wantSuccess: 0,
			wantChanges: 0,
			wantErrors:  0,
		},
		{
			name: "all success",
			results: []ResolveResult{
				{Status: StatusSuccess},
				{Status: StatusSuccess},
			},
			wantSuccess: 2,
		},
		{
			name: "mixed statuses",
			results: []ResolveResult{
				{Status: StatusSuccess},
				{Status: StatusChanges},
				{Status: StatusError},
				{Status: StatusSuccess},
				{Status: StatusChanges},
			},
			wantSuccess: 2,
			wantChanges: 2,
			wantErrors:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSuccess, gotChanges, gotErrors := CountByStatus(tt.results)
			if gotSuccess != tt.wantSuccess {
				t.Errorf("CountByStatus() success = %v, want %v", gotSuccess, tt.wantSuccess)
			}
			if gotChanges != tt.wantChanges {
				t.Errorf("CountByStatus() changes = %v, want %v", gotChanges, tt.wantChanges)
			}
			if gotErrors != tt.wantErrors {
				t.Errorf("CountByStatus() errors = %v, want %v", gotErrors, tt.wantErrors)
			}
		})
	}
}

func TestDiffLabel(t *testing.T) {
	got := DiffLabel("my-app", "prod", "main")
	want := "my-app/prod (main)"
	if got != want {
		t.Errorf("DiffLabel() = %q, want %q", got, want)
	}
}

func TestGroupByChart(t *testing.T) {
	results := []ResolveResult{
		{ChartName: "app-a", Environment: "dev"},
		{ChartName: "app-b", Environment: "dev"},
		{ChartName: "app-a", Environment: "prod"},
	}

	groups := GroupByChart(results)
	if len(groups) != 2 {
		t.Fatalf("GroupByChart() returned %d groups, want 2", len(groups))
	}
	if len(groups[0]) != 2 || groups[0][0].ChartName != "app-a" {
		t.Errorf("first group = %+v, want two app-a results", groups[0])
	}
	if len(groups[1]) != 1 || groups[1][0].ChartName != "app-b" {
		t.Errorf("second group = %+v, want one app-b result", groups[1])
	}
}
