package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/abilitree/internal/runtime"
	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// StatusTable writes one row per ability with its state and what holds it
// back, followed by the point total.
func StatusTable(w io.Writer, status runtime.Status, nodes []runtime.NodeView, color bool) string {
	t := table.NewWriter()
	if w != nil {
		t.SetOutputMirror(w)
	}
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("%s (root %s)", status.Class, status.Root))

	header := func(s string) any {
		if color {
			return text.FgHiCyan.Sprint(s)
		}
		return s
	}
	t.AppendHeader(table.Row{header("ABILITY"), header("STATE"), header("COST"), header("ARCHETYPE"), header("POSITION"), header("NOTE")})

	for _, n := range nodes {
		state := StateLabel(n)
		if color {
			state = stateColor(n).Sprint(state)
		}
		t.AppendRow(table.Row{n.Label, state, n.Cost, n.Archetype, n.Position.String(), note(n)})
	}

	t.AppendFooter(table.Row{"", "SPENT", fmt.Sprintf("%d/%d", status.Spent(), status.Budget), archetypeSummary(status), "", ""})
	return t.Render()
}

func stateColor(n runtime.NodeView) text.Colors {
	if n.Locked {
		return text.Colors{text.FgRed}
	}
	switch n.State {
	case domain.Enabled:
		return text.Colors{text.FgGreen}
	case domain.Standby:
		return text.Colors{text.FgYellow}
	}
	return text.Colors{text.FgHiBlack}
}

func note(n runtime.NodeView) string {
	var parts []string
	if len(n.LockedBy) > 0 {
		parts = append(parts, "locked by "+strings.Join(n.LockedBy, ", "))
	}
	if n.Required != "" && !n.RequirementMet {
		parts = append(parts, "requires "+n.Required)
	}
	return strings.Join(parts, "; ")
}

func archetypeSummary(status runtime.Status) string {
	var parts []string
	for name, count := range status.Archetypes {
		parts = append(parts, fmt.Sprintf("%s %d", name, count))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
