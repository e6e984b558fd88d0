package pickup

import (
	"testing"

	"github.com/vovakirdan/asciiman/internal/games/chase/maze"
)

func TestCollectAt(t *testing.T) {
	tr := NewTracker(
		[]maze.Position{{X: 1, Y: 1}, {X: 2, Y: 1}},
		[]maze.Position{{X: 3, Y: 1}},
	)

	tests := []struct {
		name string
		pos  maze.Position
		want Kind
	}{
		{"regular", maze.Position{X: 1, Y: 1}, Regular},
		{"special", maze.Position{X: 3, Y: 1}, Special},
		{"empty", maze.Position{X: 9, Y: 9}, None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.CollectAt(tt.pos); got != tt.want {
				t.Fatalf("CollectAt(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}

	if r, s := tr.Remaining(); r != 1 || s != 0 {
		t.Fatalf("Remaining() = %d,%d, want 1,0", r, s)
	}
}

func TestCollectAtIdempotent(t *testing.T) {
	p := maze.Position{X: 4, Y: 2}
	tr := NewTracker([]maze.Position{p}, nil)

	if got := tr.CollectAt(p); got != Regular {
		t.Fatalf("first collect = %v, want regular", got)
	}
	for i := 0; i < 2; i++ {
		if got := tr.CollectAt(p); got != None {
			t.Fatalf("repeat collect %d = %v, want none", i, got)
		}
	}
	if !tr.IsAllCollected() {
		t.Fatal("expected all collected")
	}
}

func TestIsAllCollectedNeedsBothSets(t *testing.T) {
	r := maze.Position{X: 1, Y: 1}
	s := maze.Position{X: 2, Y: 2}
	tr := NewTracker([]maze.Position{r}, []maze.Position{s})

	tr.CollectAt(r)
	if tr.IsAllCollected() {
		t.Fatal("special pickup still remains")
	}
	tr.CollectAt(s)
	if !tr.IsAllCollected() {
		t.Fatal("expected all collected")
	}
}

func TestFromMaze(t *testing.T) {
	m := maze.MustParse([]string{
		"#####",
		"#.o #",
		"#####",
	}, -1)
	tr := FromMaze(m)

	if tr.At(maze.Position{X: 1, Y: 1}) != Regular {
		t.Fatal("expected regular at (1,1)")
	}
	if tr.At(maze.Position{X: 2, Y: 1}) != Special {
		t.Fatal("expected special at (2,1)")
	}
	if tr.At(maze.Position{X: 3, Y: 1}) != None {
		t.Fatal("floor should hold nothing")
	}
}

func TestNewTrackerPanicsOnOverlap(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for overlapping sets")
		}
	}()
	p := maze.Position{X: 1, Y: 1}
	NewTracker([]maze.Position{p}, []maze.Position{p})
}

func TestCloneIsIndependent(t *testing.T) {
	p := maze.Position{X: 1, Y: 1}
	tr := NewTracker([]maze.Position{p}, nil)
	c := tr.Clone()
	c.CollectAt(p)

	if tr.At(p) != Regular {
		t.Fatal("collect on clone leaked into original")
	}
}

func TestRegularSortedRowMajor(t *testing.T) {
	tr := NewTracker([]maze.Position{{X: 5, Y: 2}, {X: 1, Y: 3}, {X: 2, Y: 2}}, nil)
	got := tr.Regular()
	want := []maze.Position{{X: 2, Y: 2}, {X: 5, Y: 2}, {X: 1, Y: 3}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Regular()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
