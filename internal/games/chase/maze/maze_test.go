package maze

import (
	"strings"
	"testing"
)

func TestClassicDimensions(t *testing.T) {
	m := Classic()
	if m.Width() != ClassicWidth || m.Height() != ClassicHeight {
		t.Fatalf("classic size = %dx%d, want %dx%d", m.Width(), m.Height(), ClassicWidth, ClassicHeight)
	}
	if m.TunnelRow() != ClassicTunnelRow {
		t.Fatalf("tunnel row = %d, want %d", m.TunnelRow(), ClassicTunnelRow)
	}
	if !m.IsWalkable(Position{X: 0, Y: ClassicTunnelRow}) || !m.IsWalkable(Position{X: ClassicWidth - 1, Y: ClassicTunnelRow}) {
		t.Fatal("tunnel ends must be walkable")
	}
}

func TestClassicPickups(t *testing.T) {
	regular, special := Classic().Pickups()
	if len(special) != 4 {
		t.Fatalf("special pickups = %d, want 4", len(special))
	}
	if len(regular) == 0 {
		t.Fatal("expected regular pickups")
	}
	if special[0] != (Position{X: 1, Y: 3}) {
		t.Fatalf("first special = %v, want (1,3)", special[0])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		tunnel int
		want   string
	}{
		{"empty", nil, -1, "empty layout"},
		{"ragged", []string{"###", "##"}, -1, "row 1"},
		{"unknown rune", []string{"#x#"}, -1, "unknown cell"},
		{"tunnel outside", []string{"###"}, 3, "tunnel row"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.rows, tt.tunnel)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Parse() err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestCellAtOutOfBoundsIsWall(t *testing.T) {
	m := Classic()
	for _, p := range []Position{{-1, 0}, {0, -1}, {ClassicWidth, 5}, {5, ClassicHeight}} {
		if m.CellAt(p) != CellWall {
			t.Fatalf("CellAt(%v) = %v, want wall", p, m.CellAt(p))
		}
		if m.IsValidPosition(p) {
			t.Fatalf("IsValidPosition(%v) = true, want false", p)
		}
	}
}

func TestMoveUnitSteps(t *testing.T) {
	m := Classic()
	from := Position{X: 5, Y: 5}
	tests := []struct {
		dir  Direction
		want Position
	}{
		{DirUp, Position{5, 4}},
		{DirDown, Position{5, 6}},
		{DirLeft, Position{4, 5}},
		{DirRight, Position{6, 5}},
		{DirNone, Position{5, 5}},
	}
	for _, tt := range tests {
		if got := m.Move(from, tt.dir); got != tt.want {
			t.Errorf("Move(%v, %v) = %v, want %v", from, tt.dir, got, tt.want)
		}
	}
}

func TestMoveTunnelWraps(t *testing.T) {
	m := Classic()
	left := Position{X: 0, Y: ClassicTunnelRow}
	right := Position{X: ClassicWidth - 1, Y: ClassicTunnelRow}

	if got := m.Move(left, DirLeft); got != right {
		t.Fatalf("left from col 0 = %v, want %v", got, right)
	}
	if got := m.Move(right, DirRight); got != left {
		t.Fatalf("right from last col = %v, want %v", got, left)
	}
	if !m.IsValidPosition(m.Move(left, DirLeft)) {
		t.Fatal("wrapped position must be valid")
	}
}

func TestMoveDoesNotWrapOffTunnelRow(t *testing.T) {
	m := Classic()
	p := Position{X: 0, Y: 5}
	got := m.Move(p, DirLeft)
	if got != (Position{X: -1, Y: 5}) {
		t.Fatalf("Move off edge = %v, want (-1,5)", got)
	}
	if m.IsValidPosition(got) {
		t.Fatal("off-board position must be invalid")
	}
}

// Stepping in a direction and back returns to the start everywhere on the
// board. The tunnel ends are the only places where the step is not a unit delta.
func TestMoveInverse(t *testing.T) {
	m := Classic()
	wraps := 0
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := Position{X: x, Y: y}
			if !m.IsValidPosition(p) {
				continue
			}
			for _, d := range Directions {
				next := m.Move(p, d)
				if back := m.Move(next, d.Opposite()); back != p {
					t.Fatalf("Move(Move(%v,%v),%v) = %v", p, d, d.Opposite(), back)
				}
				dx, dy := d.Delta()
				if next.X-p.X != dx || next.Y-p.Y != dy {
					if y != ClassicTunnelRow {
						t.Fatalf("non-unit step from %v going %v off the tunnel row", p, d)
					}
					wraps++
				}
			}
		}
	}
	if wraps != 2 {
		t.Fatalf("wrapping steps = %d, want 2", wraps)
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Fatalf("%v opposite twice = %v", d, d.Opposite().Opposite())
		}
		if d.Opposite() == d {
			t.Fatalf("%v is its own opposite", d)
		}
	}
	if DirNone.Opposite() != DirNone {
		t.Fatal("none has no opposite")
	}
}

func TestExitsExcludesReverse(t *testing.T) {
	m := Classic()
	// (1,5) is a junction: up, down and right are open.
	p := Position{X: 1, Y: 5}
	all := m.Exits(p, DirNone)
	if len(all) != 3 {
		t.Fatalf("Exits(%v) = %v, want 3 directions", p, all)
	}
	forward := m.Exits(p, DirLeft)
	for _, d := range forward {
		if d == DirRight {
			t.Fatalf("Exits heading left included reverse: %v", forward)
		}
	}
}
