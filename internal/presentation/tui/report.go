package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/abilitree/internal/runtime"
	"github.com/aretw0/abilitree/pkg/domain"
)

// Report builds a Markdown summary of a class, meant for NewRenderer.
func Report(status runtime.Status, nodes []runtime.NodeView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", status.Class)
	fmt.Fprintf(&sb, "**%d / %d** points spent, root **%s**.\n", status.Spent(), status.Budget, status.Root)
	if status.Violations > 0 {
		fmt.Fprintf(&sb, "\n> %d catalog problem(s) found, run `abilitree validate` for details.\n", status.Violations)
	}

	sections := []struct {
		title string
		keep  func(runtime.NodeView) bool
	}{
		{"Enabled", func(n runtime.NodeView) bool { return n.State == domain.Enabled }},
		{"Available", func(n runtime.NodeView) bool { return n.State == domain.Standby && !n.Locked }},
		{"Locked", func(n runtime.NodeView) bool { return n.Locked }},
	}
	for _, s := range sections {
		var picked []runtime.NodeView
		for _, n := range nodes {
			if s.keep(n) {
				picked = append(picked, n)
			}
		}
		if len(picked) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", s.title)
		for _, n := range picked {
			fmt.Fprintf(&sb, "- **%s** (%d pt)", n.Label, n.Cost)
			if n.Combo != "" {
				fmt.Fprintf(&sb, " `%s`", n.Combo)
			}
			if note := note(n); note != "" {
				fmt.Fprintf(&sb, " _%s_", note)
			}
			if n.Description != "" {
				fmt.Fprintf(&sb, ": %s", strings.Join(strings.Fields(n.Description), " "))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
