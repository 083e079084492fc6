// Command play runs the snake simulation in an interactive terminal UI.
//
// The TUI is a plain render sink and input source: each frame it feeds the
// elapsed wall-clock time and the keys pressed since the previous frame into
// the engine, then draws the returned snapshot.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/gridsnake/config"
	"github.com/brensch/gridsnake/game"
	"github.com/brensch/gridsnake/sim"
)

var (
	// Cell colors follow the original: grey snake, magenta food.
	headStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	bodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	foodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("201"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	statusBar  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type frameMsg time.Time

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type model struct {
	eng      *sim.Engine
	interval time.Duration

	// keys collects presses between frames; consumed and cleared each frame.
	keys      sim.Keys
	lastFrame time.Time
	lastErr   error
}

func (m model) Init() tea.Cmd {
	return frameCmd(m.interval)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.keys.Left = true
		case "down", "j":
			m.keys.Down = true
		case "up", "k":
			m.keys.Up = true
		case "right", "l":
			m.keys.Right = true
		}
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		dt := now.Sub(m.lastFrame)
		m.lastFrame = now

		m.lastErr = m.eng.Step(dt, m.keys)
		m.keys = sim.Keys{}
		return m, frameCmd(m.interval)
	}
	return m, nil
}

func (m model) View() string {
	snap := m.eng.Snapshot()

	food := make(map[game.Point]bool, len(snap.Foods))
	for _, f := range snap.Foods {
		food[f.Pos] = true
	}
	body := make(map[game.Point]bool, len(snap.Segments))
	for _, s := range snap.Segments[1:] {
		body[s.Pos] = true
	}
	head := snap.Segments[0].Pos

	var b strings.Builder
	for y := snap.Height - 1; y >= 0; y-- {
		for x := int32(0); x < snap.Width; x++ {
			p := game.Point{X: x, Y: y}
			switch {
			case p == head:
				b.WriteString(headStyle.Render("██"))
			case body[p]:
				b.WriteString(bodyStyle.Render("▓▓"))
			case food[p]:
				b.WriteString(foodStyle.Render("◆ "))
			default:
				b.WriteString(emptyStyle.Render("· "))
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString(statusBar.Render(fmt.Sprintf(
		"turn %d  len %d  heading %s  head %s", snap.Turn, len(snap.Segments), snap.Heading, head)))
	b.WriteByte('\n')
	if m.lastErr != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("last frame: %v", m.lastErr)))
		b.WriteByte('\n')
	}
	b.WriteString(statusBar.Render("arrows/hjkl to steer, q to quit"))
	b.WriteByte('\n')
	return b.String()
}

func main() {
	configPath := flag.String("config", "", "Path to TOML config (optional)")
	seed := flag.Int64("seed", 0, "Food spawn seed; 0 uses the config value or the clock")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	eng, err := sim.New(sim.Config{
		Width:        cfg.Arena.Width,
		Height:       cfg.Arena.Height,
		MoveInterval: cfg.Timing.MoveInterval,
		FoodInterval: cfg.Timing.FoodInterval,
		Rand:         rng,
	})
	if err != nil {
		log.Fatalf("create engine: %v", err)
	}

	m := model{
		eng:       eng,
		interval:  cfg.Timing.FrameInterval,
		lastFrame: time.Now(),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
