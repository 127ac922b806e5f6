package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/abilitree/internal/runtime"
	"github.com/aretw0/abilitree/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart syntax string from the nodes
// of one class.
// It applies semantic styling:
// - Root: ((Circle))
// - Archetype ability: {{Hexagon}}
// - Default: [Rectangle]
//
// Exports are solid arrows, requirements dotted arrows and mutual exclusions
// dotted lines with a cross. With overlay set, nodes are styled by state.
func GenerateMermaid(nodes []runtime.NodeView, overlay bool) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.Name)

		opener, closer := "[", "]"
		switch {
		case node.Root:
			opener, closer = "((", "))"
		case node.Archetype != "":
			opener, closer = "{{", "}}"
		}

		label := fmt.Sprintf("%s <br/> %d pt", escape(node.Label), node.Cost)
		if node.Archetype != "" {
			label += " <br/> " + escape(node.Archetype)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.Name)
		for _, to := range node.Exports {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeMermaidID(to)))
		}
		if node.Required != "" {
			sb.WriteString(fmt.Sprintf("    %s -. requires .-> %s\n", safeID, sanitizeMermaidID(node.Required)))
		}
		for _, other := range node.Blocks {
			// Mutual exclusion is usually declared on both sides; draw it once.
			if other < node.Name && blocks(nodes, other, node.Name) {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s x-.-x %s\n", safeID, sanitizeMermaidID(other)))
		}
	}

	if overlay {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef enabled fill:#c8e6c9,stroke:#2e7d32,stroke-width:3px,color:#000;\n")
		sb.WriteString("    classDef standby fill:#fff9c4,stroke:#f9a825,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef disabled fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4,color:#000;\n")
		sb.WriteString("    classDef locked fill:#ffcdd2,stroke:#c62828,stroke-width:2px,color:#000;\n")

		for _, node := range nodes {
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(node.Name), styleOf(node)))
		}
	}

	return sb.String()
}

func styleOf(node runtime.NodeView) string {
	if node.Locked {
		return "locked"
	}
	switch node.State {
	case domain.Enabled:
		return "enabled"
	case domain.Standby:
		return "standby"
	}
	return "disabled"
}

func blocks(nodes []runtime.NodeView, from, to string) bool {
	for _, n := range nodes {
		if n.Name != from {
			continue
		}
		for _, b := range n.Blocks {
			if b == to {
				return true
			}
		}
	}
	return false
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
