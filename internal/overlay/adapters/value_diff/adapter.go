// Package valuediff produces per-path semantic diffs of resolved value
// trees, so a port change deep inside a document reads as "db.port"
// rather than a pair of context lines.
package valuediff

import (
	"fmt"
	"strings"

	"github.com/nathantilsley/values-sentry/internal/overlay/domain"
)

// Adapter implements ports.ValueDiff by walking the two trees together.
type Adapter struct{}

// New creates a new semantic diff adapter.
func New() *Adapter {
	return &Adapter{}
}

// ComputeDiff compares base and head and reports added, removed, and
// changed paths in dot notation. Returns the empty string when the
// trees are identical.
func (a *Adapter) ComputeDiff(baseName, headName string, base, head domain.Value) string {
	var blocks []string
	walk("", base, head, &blocks)
	if len(blocks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n", baseName)
	fmt.Fprintf(&sb, "+++ %s\n\n", headName)
	sb.WriteString(strings.Join(blocks, "\n\n"))
	return sb.String()
}

func walk(path string, base, head domain.Value, blocks *[]string) {
	if domain.Equal(base, head) {
		return
	}

	if base.Kind == domain.KindMapping && head.Kind == domain.KindMapping {
		// Base keys first, then head-only keys, so report order follows
		// first occurrence like the merge itself.
		for _, e := range base.Mapping {
			childPath := join(path, e.Key)
			if headVal, ok := head.Get(e.Key); ok {
				walk(childPath, e.Value, headVal, blocks)
			} else {
				*blocks = append(*blocks, fmt.Sprintf("%s\n- %s", childPath, render(e.Value)))
			}
		}
		for _, e := range head.Mapping {
			if _, ok := base.Get(e.Key); !ok {
				childPath := join(path, e.Key)
				*blocks = append(*blocks, fmt.Sprintf("%s\n+ %s", childPath, render(e.Value)))
			}
		}
		return
	}

	*blocks = append(*blocks, fmt.Sprintf("%s\n- %s\n+ %s", displayPath(path), render(base), render(head)))
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

// render produces a compact single-line representation of a value.
func render(v domain.Value) string {
	switch v.Kind {
	case domain.KindScalar:
		if v.Scalar == nil {
			return "null"
		}
		return fmt.Sprintf("%v", v.Scalar)
	case domain.KindSequence:
		parts := make([]string, len(v.Sequence))
		for i, item := range v.Sequence {
			parts[i] = render(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case domain.KindMapping:
		parts := make([]string, len(v.Mapping))
		for i, e := range v.Mapping {
			parts[i] = e.Key + ": " + render(e.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}
