package game

import "testing"

func TestOppositeIsInvolutive(t *testing.T) {
	for _, d := range []Direction{Left, Up, Right, Down} {
		if got := d.Opposite().Opposite(); got != d {
			t.Fatalf("Opposite(Opposite(%v))=%v want=%v", d, got, d)
		}
	}
}

func TestOppositePairs(t *testing.T) {
	pairs := map[Direction]Direction{
		Left:  Right,
		Right: Left,
		Up:    Down,
		Down:  Up,
	}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Fatalf("Opposite(%v)=%v want=%v", d, got, want)
		}
	}
}

func TestDeltaAxisConvention(t *testing.T) {
	// Up increases Y, matching the bottom-left origin convention.
	cases := []struct {
		d      Direction
		dx, dy int32
	}{
		{Left, -1, 0},
		{Right, 1, 0},
		{Up, 0, 1},
		{Down, 0, -1},
	}
	for _, c := range cases {
		dx, dy := c.d.Delta()
		if dx != c.dx || dy != c.dy {
			t.Fatalf("Delta(%v)=(%d,%d) want=(%d,%d)", c.d, dx, dy, c.dx, c.dy)
		}
	}
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	tail := Point{X: 1, Y: 1}
	s := &Snapshot{
		Width:    10,
		Height:   10,
		Turn:     3,
		Heading:  Up,
		Segments: []Segment{{ID: 1, Pos: Point{X: 3, Y: 3}}, {ID: 2, Pos: Point{X: 3, Y: 2}}},
		Foods:    []Food{{ID: 3, Pos: Point{X: 5, Y: 5}}},
		LastTail: &tail,
	}

	c := s.Clone()
	c.Segments[0].Pos = Point{X: 9, Y: 9}
	c.Foods[0].Pos = Point{X: 0, Y: 0}
	c.LastTail.X = 7

	if s.Segments[0].Pos != (Point{X: 3, Y: 3}) {
		t.Fatalf("clone mutation leaked into source segments: %v", s.Segments[0].Pos)
	}
	if s.Foods[0].Pos != (Point{X: 5, Y: 5}) {
		t.Fatalf("clone mutation leaked into source foods: %v", s.Foods[0].Pos)
	}
	if s.LastTail.X != 1 {
		t.Fatalf("clone mutation leaked into source last tail: %v", *s.LastTail)
	}

	var nilSnap *Snapshot
	if nilSnap.Clone() != nil {
		t.Fatal("Clone of nil snapshot should be nil")
	}
}
