// Package game defines the core state types for the grid snake simulation.
//
// Coordinates follow the original arena convention: (0,0) is the bottom-left
// cell and Up increases Y. Points are plain cell coordinates and carry no
// bounds of their own; the arena size lives on the snapshot and the engine.
package game

import "fmt"

// Point is an arena cell coordinate.
type Point struct {
	X int32
	Y int32
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four movement headings.
type Direction int32

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Opposite returns the reverse heading, pairing Left with Right and Up with
// Down. Opposite(Opposite(d)) == d for every heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}

// Delta returns the per-tick cell offset for the heading. Up increases Y.
func (d Direction) Delta() (dx, dy int32) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int32(d))
	}
}

// Segment is one unit of the snake's body. The head is always segment 0 of the
// chain. IDs are opaque handles assigned by the engine and never reused.
type Segment struct {
	ID  int64
	Pos Point
}

// Food is a single food instance. Multiple foods may share a cell.
type Food struct {
	ID  int64
	Pos Point
}

// Snapshot is a read-only view of one simulation frame for render sinks.
// All slices and pointers are owned by the snapshot; mutating it never
// affects the engine it came from.
type Snapshot struct {
	Width   int32
	Height  int32
	Turn    int64
	Heading Direction

	// Segments is the chain in order, head first.
	Segments []Segment
	Foods    []Food

	// LastTail is the cell the tail vacated on the most recent movement
	// tick, nil until the first tick fires.
	LastTail *Point
}

// Clone performs a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	out := &Snapshot{
		Width:   s.Width,
		Height:  s.Height,
		Turn:    s.Turn,
		Heading: s.Heading,
	}

	if len(s.Segments) > 0 {
		out.Segments = make([]Segment, len(s.Segments))
		copy(out.Segments, s.Segments)
	}

	if len(s.Foods) > 0 {
		out.Foods = make([]Food, len(s.Foods))
		copy(out.Foods, s.Foods)
	}

	if s.LastTail != nil {
		tail := *s.LastTail
		out.LastTail = &tail
	}

	return out
}
