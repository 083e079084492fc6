// Package logging provides the slog handler shared by the gridsnake binaries.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// JSONLineHandler is a slog.Handler that prints one compact JSON object per
// record. Groups are flattened into dotted keys, which keeps frame-loop logs
// greppable. Not optimized for throughput.
type JSONLineHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Leveler

	prefix string
	// attrs are pre-flattened with the prefix in force when they were
	// added, so later WithGroup calls don't retroactively rename them.
	attrs []slog.Attr
}

func NewJSONLineHandler(w io.Writer, level slog.Leveler) slog.Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &JSONLineHandler{
		w:     w,
		mu:    &sync.Mutex{},
		level: level,
	}
}

func (h *JSONLineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *JSONLineHandler) Handle(_ context.Context, r slog.Record) error {
	payload := make(map[string]any, 4+r.NumAttrs()+len(h.attrs))

	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	payload["time"] = when.Format(time.RFC3339Nano)
	payload["level"] = r.Level.String()
	payload["msg"] = r.Message

	for _, a := range h.attrs {
		addAttr(payload, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(payload, h.prefix, a)
		return true
	})

	b, err := json.Marshal(payload)
	if err != nil {
		// Last resort, don't drop the record.
		b = []byte(`{"level":` + strconv.Quote(r.Level.String()) + `,"msg":` + strconv.Quote(r.Message) + `}`)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(append(b, '\n'))
	return err
}

func (h *JSONLineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	flat := make(map[string]any, len(attrs))
	for _, a := range attrs {
		addAttr(flat, h.prefix, a)
	}

	clone := *h
	clone.attrs = append([]slog.Attr(nil), h.attrs...)
	for k, v := range flat {
		clone.attrs = append(clone.attrs, slog.Any(k, v))
	}
	return &clone
}

func (h *JSONLineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func addAttr(dst map[string]any, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Key == "" && a.Value.Kind() != slog.KindGroup {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		childPrefix := prefix
		if a.Key != "" {
			childPrefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			addAttr(dst, childPrefix, ga)
		}
		return
	}

	dst[prefix+a.Key] = valueToAny(a.Value)
}

func valueToAny(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		return v.Any()
	default:
		return v.String()
	}
}
