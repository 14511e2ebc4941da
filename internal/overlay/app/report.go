package app

import (
	"fmt"
	"strings"

	"github.com/nathantilsley/values-sentry/internal/overlay/domain"
)

// FormatReport renders results as markdown, one section per chart, in
// the shape used for PR comments and equally readable in a terminal.
func FormatReport(results []domain.ResolveResult) string {
	if len(results) == 0 {
		return "No chart values changed.\n"
	}

	var sb strings.Builder
	sb.WriteString("## Resolved Values Diff Report\n\n")

	sb.WriteString("| Chart | Environment | Status |\n")
	sb.WriteString("|-------|-------------|--------|\n")
	for _, r := range results {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", r.ChartName, r.Environment, statusLabel(r.Status))
	}
	sb.WriteString("\n")

	for _, group := range domain.GroupByChart(results) {
		success, changes, errs := domain.CountByStatus(group)
		fmt.Fprintf(&sb, "### %s\n", group[0].ChartName)
		fmt.Fprintf(&sb, "Analyzed %d environment(s): %d changed, %d unchanged, %d failed\n\n",
			len(group), changes, success, errs)

		for _, r := range group {
			fmt.Fprintf(&sb, "#### %s/%s\n", r.ChartName, r.Environment)
			switch r.Status {
			case domain.StatusError:
				fmt.Fprintf(&sb, "Error: %s\n\n", r.Summary)
			case domain.StatusSuccess:
				sb.WriteString("No changes detected.\n\n")
			case domain.StatusChanges:
				fmt.Fprintf(&sb, "```diff\n%s\n```\n\n", r.PreferredDiff())
			}
		}
	}

	return sb.String()
}

func statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusChanges:
		return "Changed"
	case domain.StatusError:
		return "Error"
	default:
		return "No Changes"
	}
}
