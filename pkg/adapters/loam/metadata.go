package loam

import (
	"maps"
	"strings"
)

// Metadata is the raw frontmatter (or data file body) of one catalog document.
// It stays untyped so the schema package can resolve aliases and numeric
// shapes the same way for every catalog source.
type Metadata map[string]any

const (
	// classDocument holds the per-class settings (budget, root) of a directory.
	classDocument = "_class"
	// classKey overrides the class implied by the directory.
	classKey = "class"
)

// ability returns the raw ability map, with the Markdown body promoted to the
// description when the frontmatter does not carry one.
func (m Metadata) ability(content string) map[string]any {
	out := maps.Clone(map[string]any(m))
	if out == nil {
		out = make(map[string]any)
	}
	delete(out, classKey)
	if _, ok := out["description"]; !ok {
		if body := strings.TrimSpace(content); body != "" {
			out["description"] = body
		}
	}
	return out
}

func (m Metadata) class() string {
	if v, ok := m[classKey].(string); ok {
		return v
	}
	return ""
}
