// Command viewer runs the snake simulation headless and serves frame
// snapshots to websocket observers. Observers may also steer: any key state
// they send is merged into the next frame's input.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brensch/gridsnake/config"
	"github.com/brensch/gridsnake/game"
	"github.com/brensch/gridsnake/logging"
	"github.com/brensch/gridsnake/sim"
)

type wirePoint struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

type frameData struct {
	Turn     int64       `json:"turn"`
	Width    int32       `json:"width"`
	Height   int32       `json:"height"`
	Heading  string      `json:"heading"`
	Segments []wirePoint `json:"segments"`
	Foods    []wirePoint `json:"foods"`
}

type frameEvent struct {
	Type string    `json:"type"`
	Data frameData `json:"data"`
}

func encodeFrame(snap *game.Snapshot) ([]byte, error) {
	data := frameData{
		Turn:     snap.Turn,
		Width:    snap.Width,
		Height:   snap.Height,
		Heading:  snap.Heading.String(),
		Segments: make([]wirePoint, 0, len(snap.Segments)),
		Foods:    make([]wirePoint, 0, len(snap.Foods)),
	}
	for _, s := range snap.Segments {
		data.Segments = append(data.Segments, wirePoint{X: s.Pos.X, Y: s.Pos.Y})
	}
	for _, f := range snap.Foods {
		data.Foods = append(data.Foods, wirePoint{X: f.Pos.X, Y: f.Pos.Y})
	}
	return json.Marshal(frameEvent{Type: "frame", Data: data})
}

// runLoop owns the engine. All engine mutation happens here, once per frame;
// the hub only hands over accumulated key state and fans frames out.
func runLoop(ctx context.Context, logger *slog.Logger, eng *sim.Engine, h *hub, frameInterval time.Duration) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now

			if err := eng.Step(dt, h.takeKeys()); err != nil {
				// Growth before the first movement tick; the game
				// carries on with the signal dropped.
				logger.Warn("frame error", "err", err, "turn", eng.Turn())
			}

			payload, err := encodeFrame(eng.Snapshot())
			if err != nil {
				logger.Error("encode frame", "err", err)
				continue
			}
			h.broadcast(payload)
		}
	}
}

func main() {
	configPath := flag.String("config", "", "Path to TOML config (optional)")
	addr := flag.String("addr", "", "Listen address; overrides the config value")
	seed := flag.Int64("seed", 0, "Food spawn seed; 0 uses the config value or the clock")
	flag.Parse()

	logger := slog.New(logging.NewJSONLineHandler(os.Stdout, slog.LevelInfo))

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("load config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Viewer.Addr = *addr
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
		logger.Error("create engine", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := newHub(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWS)
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		// Served from the hub's last broadcast frame; the engine itself
		// is only touched by the run loop.
		payload := h.lastFrame()
		if payload == nil {
			http.Error(w, "no frame yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	})

	srv := &http.Server{Addr: cfg.Viewer.Addr, Handler: mux}

	go func() {
		logger.Info("viewer listening",
			"addr", cfg.Viewer.Addr,
			"arena", slog.GroupValue(
				slog.Int("width", int(cfg.Arena.Width)),
				slog.Int("height", int(cfg.Arena.Height))))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "err", err)
			stop()
		}
	}()

	runLoop(ctx, logger, eng, h, cfg.Timing.FrameInterval)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", "err", err)
	}
	h.closeAll()
	logger.Info("viewer stopped", "turns", eng.Turn())
}
