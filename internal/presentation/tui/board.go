package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/abilitree/internal/runtime"
	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/muesli/termenv"
)

// Glyphs used for node cells.
const (
	GlyphEnabled  = "●"
	GlyphStandby  = "○"
	GlyphDisabled = "·"
	GlyphLocked   = "✖"
)

const (
	colorEnabled  = "#22c55e"
	colorStandby  = "#eab308"
	colorDisabled = "#6b7280"
	colorLocked   = "#ef4444"
)

// pipes maps a junction shape to its box-drawing glyph.
var pipes = map[string]string{
	"N": "╵", "S": "╷", "E": "╶", "W": "╴",
	"NS": "│", "EW": "─",
	"NE": "└", "NW": "┘", "SE": "┌", "SW": "┐",
	"NSE": "├", "NSW": "┤", "SEW": "┬", "NEW": "┴",
	"NSEW": "┼",
}

// Board draws a class as a grid of colored cells, followed by a legend.
type Board struct {
	Profile termenv.Profile
	// Legend lists every node under the grid.
	Legend bool
}

// NewBoard creates a board for the color profile of the terminal.
func NewBoard() *Board {
	return &Board{Profile: termenv.ColorProfile(), Legend: true}
}

type cell struct {
	glyph string
	color string
	east  bool
}

// Render draws the nodes and junctions of one tree.
func (b *Board) Render(nodes []runtime.NodeView, junctions []runtime.JunctionView) string {
	if len(nodes) == 0 {
		return ""
	}

	cells := make(map[domain.Position]cell, len(nodes)+len(junctions))
	lo, hi := nodes[0].Position, nodes[0].Position
	grow := func(p domain.Position) {
		lo.Row, lo.Col = min(lo.Row, p.Row), min(lo.Col, p.Col)
		hi.Row, hi.Col = max(hi.Row, p.Row), max(hi.Col, p.Col)
	}

	for _, n := range nodes {
		glyph, color := NodeGlyph(n)
		cells[n.Position] = cell{glyph: glyph, color: color, east: strings.Contains(n.Shape, "E")}
		grow(n.Position)
	}
	for _, j := range junctions {
		glyph, ok := pipes[j.Shape]
		if !ok {
			glyph = "?"
		}
		color := colorDisabled
		if j.Lit() {
			color = colorEnabled
		}
		cells[j.Position] = cell{glyph: glyph, color: color, east: strings.Contains(j.Shape, "E")}
		grow(j.Position)
	}

	var sb strings.Builder
	for row := lo.Row; row <= hi.Row; row++ {
		var line strings.Builder
		for col := lo.Col; col <= hi.Col; col++ {
			c, ok := cells[domain.Position{Row: row, Col: col}]
			if !ok {
				line.WriteString("  ")
				continue
			}
			line.WriteString(b.paint(c.glyph, c.color))
			if c.east {
				line.WriteString(b.paint("─", c.color))
			} else {
				line.WriteString(" ")
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}

	if b.Legend {
		sb.WriteString("\n")
		for _, n := range nodes {
			glyph, color := NodeGlyph(n)
			sb.WriteString(fmt.Sprintf("%s %-20s %-8s %s\n", b.paint(glyph, color), n.Label, StateLabel(n), n.Position))
		}
	}
	return sb.String()
}

func (b *Board) paint(s, color string) string {
	return b.Profile.String(s).Foreground(b.Profile.Color(color)).String()
}

// NodeGlyph returns the glyph and color of a node cell.
func NodeGlyph(n runtime.NodeView) (string, string) {
	if n.Locked {
		return GlyphLocked, colorLocked
	}
	switch n.State {
	case domain.Enabled:
		return GlyphEnabled, colorEnabled
	case domain.Standby:
		return GlyphStandby, colorStandby
	}
	return GlyphDisabled, colorDisabled
}

// StateLabel is the state name shown to players; locks win over states.
func StateLabel(n runtime.NodeView) string {
	if n.Locked {
		return domain.StateNameLocked
	}
	return n.State.String()
}
