package domain

// Status represents the outcome of resolving and diffing one
// chart/environment pair.
type Status int

const (
	StatusSuccess Status = iota // No changes detected
	StatusChanges               // Changes detected
	StatusError                 // Error occurred during resolution
)

// ResolveResult holds the diff of resolved values for a single
// chart + environment pair between two refs.
type ResolveResult struct {
	ChartName    string
	Environment  string
	BaseRef      string
	HeadRef      string
	Status       Status // Outcome of the resolution
	UnifiedDiff  string // Line-based diff of the serialized documents (go-difflib)
	SemanticDiff string // Per-path diff of the value trees - empty when identical
	Summary      string // Human-readable summary (or error message if Status == StatusError)
}

// PreferredDiff returns the semantic diff if available, otherwise the unified diff.
// This allows reporting layers to prefer semantic diffs while falling back to unified.
func (r ResolveResult) PreferredDiff() string {
	if r.SemanticDiff != "" {
		return r.SemanticDiff
	}
	return r.UnifiedDiff
}

// CountByStatus returns counts of results grouped by status.
func CountByStatus(results []ResolveResult) (success, changes, errors int) {
	for _, r := range results {
		switch r.Status {
		case StatusSuccess:
			success++
		case StatusChanges:
			changes++
		case StatusError:
			errors++
		}
	}
	return
}

// DiffLabel creates a display name for one side of a comparison.
// Example: "my-app/prod (main)"
func DiffLabel(chartName, envName, ref string) string {
	return chartName + "/" + envName + " (" + ref + ")"
}

// GroupByChart groups results by ChartName, preserving insertion order.
// Returns a slice of slices, where each inner slice contains all results
// for a single chart.
func GroupByChart(results []ResolveResult) [][]ResolveResult {
	order := make(map[string]int)
	var groups [][]ResolveResult

	for _, r := range results {
		idx, exists := order[r.ChartName]
		if !exists {
			idx = len(groups)
			order[r.ChartName] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], r)
	}
	return groups
}
