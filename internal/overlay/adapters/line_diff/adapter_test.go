package linediff

import (
	"strings"
	"testing"
)

func TestAdapter_ComputeDiff(t *testing.T) {
	tests := []struct {
		name string
		base []byte
		head []byte
		want string // Empty if no diff expected
	}{
		{
			name: "identical documents return empty diff",
			base: []byte("env: base\nreplicas: 1\ntag: v1\n"),
			head: []byte("env: base\nreplicas: 1\ntag: v1\n"),
			want: "",
		},
		{
			name: "changed value returns unified diff",
			base: []byte("env: base\nreplicas: 1\ntag: v1\n"),
			head: []byte("env: base\nreplicas: 3\ntag: v1\n"),
			want: "--- my-app/prod (main)\n+++ my-app/prod (feature)\n@@ -1,4 +1,4 @@\n env: base\n-replicas: 1\n+replicas: 3\n tag: v1",
		},
		{
			name: "added keys",
			base: []byte("env: base\nreplicas: 1\n"),
			head: []byte("env: base\nreplicas: 1\ntag: v2\nteam: payments\n"),
			want: "--- my-app/prod (main)\n+++ my-app/prod (feature)\n@@ -1,3 +1,5 @@\n env: base\n replicas: 1\n+tag: v2\n+team: payments",
		},
		{
			name: "removed keys",
			base: []byte("env: base\nreplicas: 1\ntag: v2\nteam: payments\n"),
			head: []byte("env: base\nreplicas: 1\n"),
			want: "--- my-app/prod (main)\n+++ my-app/prod (feature)\n@@ -1,5 +1,3 @@\n env: base\n replicas: 1\n-tag: v2\n-team: payments",
		},
		{
			name: "empty base shows all additions",
			base: []byte(""),
			head: []byte("env: base\n"),
			want: "--- my-app/prod (main)\n+++ my-app/prod (feature)\n@@ -1 +1,2 @@\n+env: base",
		},
		{
			name: "empty head shows all deletions",
			base: []byte("env: base\n"),
			head: []byte(""),
			want: "--- my-app/prod (main)\n+++ my-app/prod (feature)\n@@ -1,2 +1 @@\n-env: base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := New()
			got := adapter.ComputeDiff("my-app/prod (main)", "my-app/prod (feature)", tt.base, tt.head)

			if tt.want == "" && got != "" {
				t.Errorf("ComputeDiff() expected empty diff, got:\n%s", got)
				return
			}

			if tt.want != "" && got == "" {
				t.Errorf("ComputeDiff() expected diff, got empty")
				return
			}

			// Normalize line endings for comparison
			gotNorm := strings.ReplaceAll(got, "\r\n", "\n")
			wantNorm := strings.ReplaceAll(tt.want, "\r\n", "\n")

			if gotNorm != wantNorm {
				t.Errorf("ComputeDiff() diff mismatch:\n--- Got ---\n%s\n--- Want ---\n%s", gotNorm, wantNorm)
			}
		})
	}
}

func TestAdapter_ComputeDiff_ContextLines(t *testing.T) {
	// Context lines (3 before/after) should surround the change
	adapter := New()

	base := []byte(`one: 1
two: 2
three: 3
four: 4
five: 5
six: 6
seven: 7
eight: 8
nine: 9
`)
	head := []byte(`one: 1
two: 2
three: 3
four: 4
five: 50
six: 6
seven: 7
eight: 8
nine: 9
`)

	diff := adapter.ComputeDiff("my-app/dev (main)", "my-app/dev (feature)", base, head)

	if !strings.Contains(diff, "two: 2") { // Context before
		t.Error("expected context line 'two: 2' before change")
	}
	if !strings.Contains(diff, "eight: 8") { // Context after
		t.Error("expected context line 'eight: 8' after change")
	}
	if !strings.Contains(diff, "-five: 5") {
		t.Error("expected removed line '-five: 5'")
	}
	if !strings.Contains(diff, "+five: 50") {
		t.Error("expected added line '+five: 50'")
	}
}
