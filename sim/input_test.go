package sim

import (
	"testing"

	"github.com/brensch/gridsnake/game"
)

func TestResolveDirection(t *testing.T) {
	cases := []struct {
		name    string
		keys    Keys
		current game.Direction
		want    game.Direction
	}{
		{"no keys keeps heading", Keys{}, game.Up, game.Up},
		{"single key wins", Keys{Right: true}, game.Up, game.Right},
		{"left beats down", Keys{Left: true, Down: true}, game.Up, game.Left},
		{"left beats right", Keys{Left: true, Right: true}, game.Up, game.Left},
		{"down beats up", Keys{Down: true, Up: true}, game.Left, game.Down},
		{"up beats right", Keys{Up: true, Right: true}, game.Left, game.Up},
		{"all keys resolve to left", Keys{Left: true, Down: true, Up: true, Right: true}, game.Up, game.Left},
		{"reversal rejected", Keys{Down: true}, game.Up, game.Up},
		{"reversal rejected left-right", Keys{Left: true}, game.Right, game.Right},
		{"priority winner can be the reversal", Keys{Left: true, Up: true}, game.Right, game.Right},
		{"perpendicular turn allowed", Keys{Left: true}, game.Up, game.Left},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := resolveDirection(c.keys, c.current); got != c.want {
				t.Fatalf("resolveDirection(%+v, %s)=%s want=%s", c.keys, c.current, got, c.want)
			}
		})
	}
}

func TestResolveDirection_NeverReverses(t *testing.T) {
	all := []Keys{
		{}, {Left: true}, {Down: true}, {Up: true}, {Right: true},
		{Left: true, Right: true}, {Up: true, Down: true},
		{Left: true, Down: true, Up: true, Right: true},
	}
	for _, current := range []game.Direction{game.Left, game.Up, game.Right, game.Down} {
		for _, k := range all {
			if got := resolveDirection(k, current); got == current.Opposite() {
				t.Fatalf("resolveDirection(%+v, %s) reversed to %s", k, current, got)
			}
		}
	}
}

func TestKeysAny(t *testing.T) {
	if (Keys{}).Any() {
		t.Fatal("empty Keys reported a held key")
	}
	if !(Keys{Down: true}).Any() {
		t.Fatal("held key not reported")
	}
}
