// Package sim implements the snake simulation engine: a single-threaded frame
// loop that resolves input, advances the segment chain on a fixed movement
// tick, detects head/food collisions, grows the chain, and spawns food on an
// independent tick.
//
// All state is explicit on the Engine; there are no package-level globals.
// The engine is not safe for concurrent use — every mutation happens inside
// Step, which the owner calls once per frame.
package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/brensch/gridsnake/game"
)

// Reference defaults, taken from the original 10x10 arena.
const (
	DefaultWidth        = 10
	DefaultHeight       = 10
	DefaultMoveInterval = 250 * time.Millisecond
	DefaultFoodInterval = time.Second
)

// ErrNoVacatedTail is returned by Step when a growth signal is consumed before
// any movement tick has recorded a vacated tail cell, i.e. there is no cell to
// place the new segment on. The signal is dropped.
var ErrNoVacatedTail = errors.New("sim: growth requested before first movement tick")

// Config sets up a new engine. Zero values fall back to the reference
// defaults; negative values are rejected.
type Config struct {
	Width        int32
	Height       int32
	MoveInterval time.Duration
	FoodInterval time.Duration

	// Rand is the food placement source. Callers pass a seeded source for
	// reproducible runs or tests; nil means time-seeded.
	Rand *rand.Rand
}

// Engine holds the complete simulation state for one snake on one arena.
type Engine struct {
	width  int32
	height int32

	// segments is the chain in order, head first. It only ever grows, by
	// appending at the tail.
	segments []game.Segment
	heading  game.Direction
	foods    []game.Food

	// lastTail is the cell the tail vacated on the most recent movement
	// tick. nil until the first tick fires.
	lastTail *game.Point

	// pendingGrowth counts growth signals raised by collisions this frame.
	// Only one is consumed per frame; the rest are dropped.
	pendingGrowth int

	moveTimer ticker
	foodTimer ticker

	rng    *rand.Rand
	nextID int64
	turn   int64
}

// New builds an engine with the starting chain: a head at (3,3) facing Up and
// one body segment at (3,2).
func New(cfg Config) (*Engine, error) {
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.MoveInterval == 0 {
		cfg.MoveInterval = DefaultMoveInterval
	}
	if cfg.FoodInterval == 0 {
		cfg.FoodInterval = DefaultFoodInterval
	}

	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, fmt.Errorf("sim: invalid arena %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.MoveInterval < 0 || cfg.FoodInterval < 0 {
		return nil, fmt.Errorf("sim: invalid intervals move=%v food=%v", cfg.MoveInterval, cfg.FoodInterval)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		width:     cfg.Width,
		height:    cfg.Height,
		heading:   game.Up,
		moveTimer: ticker{interval: cfg.MoveInterval},
		foodTimer: ticker{interval: cfg.FoodInterval},
		rng:       rng,
		nextID:    1,
	}

	e.segments = append(e.segments,
		e.newSegment(game.Point{X: 3, Y: 3}),
		e.newSegment(game.Point{X: 3, Y: 2}),
	)

	return e, nil
}

// Step advances the simulation by one frame. dt is the wall-clock time since
// the previous frame and keys are the movement keys held during it.
//
// Sub-systems always run in the same order: input resolution, movement tick
// check, collision detection, growth consumption, food spawn tick check.
// Input is resolved against the pre-move heading, so a reversal requested in
// the same frame the chain moves is still rejected.
func (e *Engine) Step(dt time.Duration, keys Keys) error {
	e.heading = resolveDirection(keys, e.heading)

	if e.moveTimer.advance(dt) {
		e.applyMovement()
	}

	e.detectCollisions()

	err := e.consumeGrowth()

	if e.foodTimer.advance(dt) {
		e.spawnFood()
	}

	return err
}

// applyMovement performs one movement tick: the head moves one cell along the
// current heading and every trailing segment takes the cell its predecessor
// held before this tick, so the head's new cell never propagates into segment
// 1 within the same tick. The head is deliberately not clamped to the arena.
func (e *Engine) applyMovement() {
	if len(e.segments) == 0 {
		return
	}

	prev := make([]game.Point, len(e.segments))
	for i, s := range e.segments {
		prev[i] = s.Pos
	}

	dx, dy := e.heading.Delta()
	e.segments[0].Pos.X += dx
	e.segments[0].Pos.Y += dy

	for i := 1; i < len(e.segments); i++ {
		e.segments[i].Pos = prev[i-1]
	}

	tail := prev[len(prev)-1]
	e.lastTail = &tail
	e.turn++
}

// detectCollisions removes every food sharing the head's cell and raises one
// growth signal per removed food. Runs every frame, not only on movement
// ticks.
func (e *Engine) detectCollisions() {
	if len(e.segments) == 0 || len(e.foods) == 0 {
		return
	}

	head := e.segments[0].Pos
	kept := e.foods[:0]
	for _, f := range e.foods {
		if f.Pos == head {
			e.pendingGrowth++
			continue
		}
		kept = append(kept, f)
	}
	e.foods = kept
}

// consumeGrowth appends at most one segment per frame at the last vacated
// tail cell. Extra signals raised in the same frame are dropped, matching the
// original first-event-only behavior.
func (e *Engine) consumeGrowth() error {
	if e.pendingGrowth == 0 {
		return nil
	}
	e.pendingGrowth = 0

	if e.lastTail == nil {
		return ErrNoVacatedTail
	}

	e.segments = append(e.segments, e.newSegment(*e.lastTail))
	return nil
}

// spawnFood places one food at a uniformly random arena cell. Occupancy is
// not checked: food may land on the snake or stack on existing food.
func (e *Engine) spawnFood() {
	p := game.Point{
		X: int32(e.rng.Float64() * float64(e.width)),
		Y: int32(e.rng.Float64() * float64(e.height)),
	}
	e.foods = append(e.foods, game.Food{ID: e.allocID(), Pos: p})
}

func (e *Engine) newSegment(p game.Point) game.Segment {
	return game.Segment{ID: e.allocID(), Pos: p}
}

func (e *Engine) allocID() int64 {
	id := e.nextID
	e.nextID++
	return id
}

// Snapshot returns a deep copy of the visible frame state for render sinks.
func (e *Engine) Snapshot() *game.Snapshot {
	snap := &game.Snapshot{
		Width:    e.width,
		Height:   e.height,
		Turn:     e.turn,
		Heading:  e.heading,
		Segments: e.segments,
		Foods:    e.foods,
		LastTail: e.lastTail,
	}
	return snap.Clone()
}

// Len returns the current chain length.
func (e *Engine) Len() int {
	return len(e.segments)
}

// Head returns the head cell. The chain always has at least one segment after
// New, so this never needs a guard in practice.
func (e *Engine) Head() game.Point {
	return e.segments[0].Pos
}

// Heading returns the head's current direction.
func (e *Engine) Heading() game.Direction {
	return e.heading
}

// Turn returns the number of movement ticks applied so far.
func (e *Engine) Turn() int64 {
	return e.turn
}
