package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// CaptureHandler is a slog.Handler that keeps records in memory so tests can
// assert on what was logged.
//
//	h := logging.NewCaptureHandler(slog.LevelDebug)
//	logging.SetLogger(slog.New(h))
//	// ... run extraction ...
//	if !h.Contains("grid detected") { ... }
type CaptureHandler struct {
	level slog.Leveler
	attrs []slog.Attr
	store *captureStore
}

type captureStore struct {
	mu    sync.Mutex
	lines []string
}

// NewCaptureHandler returns a handler that records everything at or above level.
func NewCaptureHandler(level slog.Leveler) *CaptureHandler {
	if level == nil {
		level = slog.LevelDebug
	}
	return &CaptureHandler{level: level, store: &captureStore{}}
}

// Enabled implements slog.Handler.
func (h *CaptureHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler. Each record is stored as
// "LEVEL message key=value ...".
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Level.String())
	sb.WriteString(" ")
	sb.WriteString(r.Message)
	for _, a := range h.attrs {
		sb.WriteString(" ")
		sb.WriteString(a.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(" ")
		sb.WriteString(a.String())
		return true
	})

	h.store.mu.Lock()
	h.store.lines = append(h.store.lines, sb.String())
	h.store.mu.Unlock()
	return nil
}

// WithAttrs implements slog.Handler.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CaptureHandler{level: h.level, attrs: merged, store: h.store}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *CaptureHandler) WithGroup(string) slog.Handler {
	return h
}

// Lines returns a copy of every captured record.
func (h *CaptureHandler) Lines() []string {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return append([]string(nil), h.store.lines...)
}

// Contains reports whether any captured record contains s.
func (h *CaptureHandler) Contains(s string) bool {
	for _, line := range h.Lines() {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// Reset discards all captured records.
func (h *CaptureHandler) Reset() {
	h.store.mu.Lock()
	h.store.lines = nil
	h.store.mu.Unlock()
}
