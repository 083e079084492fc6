package sim

import (
	"testing"
	"time"
)

func TestTickerAccumulatesAcrossFrames(t *testing.T) {
	tk := ticker{interval: 250 * time.Millisecond}

	if tk.advance(100 * time.Millisecond) {
		t.Fatal("fired at 100ms")
	}
	if tk.advance(100 * time.Millisecond) {
		t.Fatal("fired at 200ms")
	}
	if !tk.advance(100 * time.Millisecond) {
		t.Fatal("did not fire at 300ms")
	}
	// 50ms remainder carries over, so the next firing needs only 200ms.
	if tk.advance(150 * time.Millisecond) {
		t.Fatal("fired at 200ms into the second cycle")
	}
	if !tk.advance(50 * time.Millisecond) {
		t.Fatal("did not fire at 250ms into the second cycle")
	}
}

func TestTickerFiresOncePerFrame(t *testing.T) {
	tk := ticker{interval: 250 * time.Millisecond}

	// A stalled frame spanning several intervals still fires once; the
	// overshoot folds back below one interval.
	if !tk.advance(900 * time.Millisecond) {
		t.Fatal("did not fire after long frame")
	}
	if tk.acc >= tk.interval {
		t.Fatalf("accumulator %v not folded below interval", tk.acc)
	}
}

func TestTickerReset(t *testing.T) {
	tk := ticker{interval: 250 * time.Millisecond}
	tk.advance(200 * time.Millisecond)
	tk.reset()
	if tk.advance(200 * time.Millisecond) {
		t.Fatal("fired despite reset")
	}
}
