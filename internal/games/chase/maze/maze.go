// Package maze holds the static grid the chase is played on and the rules for
// stepping across it.
package maze

import (
	"fmt"
)

// Cell is the static kind of a grid square.
type Cell uint8

const (
	CellWall Cell = iota
	CellFloor
	CellPickup
	CellSpecialPickup
)

func (c Cell) String() string {
	switch c {
	case CellWall:
		return "wall"
	case CellFloor:
		return "floor"
	case CellPickup:
		return "pickup"
	case CellSpecialPickup:
		return "special"
	default:
		return "unknown"
	}
}

// Position is a grid coordinate. X is the column, Y is the row.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Maze is an immutable grid. Pickups are tracked elsewhere; the cell kind
// recorded here is the layout as the session started.
type Maze struct {
	width     int
	height    int
	tunnelRow int
	cells     []Cell
}

// Parse builds a maze from text rows: '#' wall, '.' pickup, 'o' special pickup,
// ' ' floor. Every row must have the same width. tunnelRow is the single row
// that wraps horizontally; pass -1 for none.
func Parse(rows []string, tunnelRow int) (*Maze, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("maze: empty layout")
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("maze: empty first row")
	}
	if tunnelRow >= len(rows) {
		return nil, fmt.Errorf("maze: tunnel row %d outside %d rows", tunnelRow, len(rows))
	}

	m := &Maze{
		width:     width,
		height:    len(rows),
		tunnelRow: tunnelRow,
		cells:     make([]Cell, width*len(rows)),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("maze: row %d has width %d, expected %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			var c Cell
			switch row[x] {
			case '#':
				c = CellWall
			case ' ':
				c = CellFloor
			case '.':
				c = CellPickup
			case 'o':
				c = CellSpecialPickup
			default:
				return nil, fmt.Errorf("maze: unknown cell %q at (%d,%d)", row[x], x, y)
			}
			m.cells[y*width+x] = c
		}
	}
	return m, nil
}

// MustParse is Parse for layouts known at compile time.
func MustParse(rows []string, tunnelRow int) *Maze {
	m, err := Parse(rows, tunnelRow)
	if err != nil {
		panic(err)
	}
	return m
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// TunnelRow returns the wraparound row, or -1.
func (m *Maze) TunnelRow() int { return m.tunnelRow }

// InBounds reports whether p lies on the grid.
func (m *Maze) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// CellAt returns the static cell kind at p. Out-of-bounds positions read as walls.
func (m *Maze) CellAt(p Position) Cell {
	if !m.InBounds(p) {
		return CellWall
	}
	return m.cells[p.Y*m.width+p.X]
}

// IsWalkable reports whether p is on the grid and not a wall.
func (m *Maze) IsWalkable(p Position) bool {
	return m.InBounds(p) && m.CellAt(p) != CellWall
}

// Pickups returns the initial regular and special pickup positions in row-major order.
func (m *Maze) Pickups() (regular, special []Position) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			switch m.cells[y*m.width+x] {
			case CellPickup:
				regular = append(regular, Position{X: x, Y: y})
			case CellSpecialPickup:
				special = append(special, Position{X: x, Y: y})
			}
		}
	}
	return regular, special
}
