package domain

import (
	"fmt"
	"strings"
)

// Direction is one of the four compass sides of a grid cell.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every direction in canonical N, S, E, W order.
var Directions = [...]Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Valid reports whether d is one of the four compass directions.
func (d Direction) Valid() bool {
	return d <= West
}

// Opposite returns the direction facing back the way d points.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// ParseDirection converts a draft token (N, S, E or W, case-insensitive).
func ParseDirection(r rune) (Direction, error) {
	switch r {
	case 'N', 'n':
		return North, nil
	case 'S', 's':
		return South, nil
	case 'E', 'e':
		return East, nil
	case 'W', 'w':
		return West, nil
	}
	return 0, fmt.Errorf("invalid direction %q", r)
}

// ParseDraft converts a path draft such as "SSSE" into its steps.
// The error names the offending token and its offset.
func ParseDraft(draft string) ([]Direction, error) {
	draft = strings.TrimSpace(draft)
	steps := make([]Direction, 0, len(draft))
	for i, r := range draft {
		d, err := ParseDirection(r)
		if err != nil {
			return nil, fmt.Errorf("draft %q at offset %d: %w", draft, i, err)
		}
		steps = append(steps, d)
	}
	return steps, nil
}

// Position addresses a cell of the sparse grid.
type Position struct {
	Row int `json:"row" yaml:"row" mapstructure:"row"`
	Col int `json:"col" yaml:"col" mapstructure:"col"`
}

// Step returns the neighbouring position one cell towards d.
func (p Position) Step(d Direction) Position {
	switch d {
	case North:
		p.Row--
	case South:
		p.Row++
	case East:
		p.Col++
	case West:
		p.Col--
	}
	return p
}

// Less orders positions row-major, which is the reading order of the grid.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

func (p Position) String() string {
	return fmt.Sprintf("[%d,%d]", p.Row, p.Col)
}
