package logging

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

// fanout is the handler behind Subsystem.Logger. It reads the current sink
// list on every record, so loggers handed out before a re-initialize keep
// writing to the new sinks.
type fanout struct {
	sinks *atomic.Pointer[[]slog.Handler]
	level slog.Leveler
	ops   []func(slog.Handler) slog.Handler
}

func (h *fanout) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *fanout) Handle(ctx context.Context, r slog.Record) error {
	sinks := h.sinks.Load()
	if sinks == nil {
		return nil
	}
	var errs []error
	for _, sink := range *sinks {
		for _, op := range h.ops {
			sink = op(sink)
		}
		if !sink.Enabled(ctx, r.Level) {
			continue
		}
		if err := sink.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (h *fanout) WithGroup(name string) slog.Handler {
	return h.with(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *fanout) with(op func(slog.Handler) slog.Handler) *fanout {
	ops := make([]func(slog.Handler) slog.Handler, len(h.ops), len(h.ops)+1)
	copy(ops, h.ops)
	return &fanout{sinks: h.sinks, level: h.level, ops: append(ops, op)}
}

// replaceLevel prints custom levels with their severity names instead of
// slog's "ERROR+4" style.
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelName(l))
		}
	}
	return a
}
