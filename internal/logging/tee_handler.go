package logging

import (
	"context"
	"log/slog"
)

// TeeHandler pairs the console stream with the database sink. The sink only
// sees the levels it asks for, and a sink failure never suppresses console
// output; the first failure is reported after both handlers ran.
type TeeHandler struct {
	console slog.Handler
	db      slog.Handler
}

func NewTeeHandler(console, db slog.Handler) *TeeHandler {
	return &TeeHandler{console: console, db: db}
}

func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.console.Enabled(ctx, level) || t.db.Enabled(ctx, level)
}

func (t *TeeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	if t.console.Enabled(ctx, record.Level) {
		firstErr = t.console.Handle(ctx, record)
	}
	if t.db.Enabled(ctx, record.Level) {
		if err := t.db.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TeeHandler{console: t.console.WithAttrs(attrs), db: t.db.WithAttrs(attrs)}
}

func (t *TeeHandler) WithGroup(name string) slog.Handler {
	return &TeeHandler{console: t.console.WithGroup(name), db: t.db.WithGroup(name)}
}
