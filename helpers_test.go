package invcolors

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Test helpers shared across the package tests.

// capturedRecord is a log record flattened for assertions.
type capturedRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

// captureHandler is a slog.Handler that keeps every record in memory.
// Handlers derived with WithAttrs share the same record list.
type captureHandler struct {
	state *captureState
	attrs []slog.Attr
}

type captureState struct {
	mu      sync.Mutex
	records []capturedRecord
}

func newCaptureHandler() *captureHandler {
	return &captureHandler{state: &captureState{}}
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	rec := capturedRecord{Level: r.Level, Message: r.Message, Attrs: make(map[string]string)}
	for _, a := range h.attrs {
		rec.Attrs[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[a.Key] = a.Value.String()
		return true
	})
	h.state.mu.Lock()
	h.state.records = append(h.state.records, rec)
	h.state.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{state: h.state, attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...)}
}

func (h *captureHandler) WithGroup(string) slog.Handler { return h }

func (h *captureHandler) Records() []capturedRecord {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	return append([]capturedRecord(nil), h.state.records...)
}

// countMessages returns how many records have the given message.
func (h *captureHandler) countMessages(msg string) int {
	n := 0
	for _, r := range h.Records() {
		if r.Message == msg {
			n++
		}
	}
	return n
}

// captureChannel returns a channel writing to a fresh capture handler.
func captureChannel() (*Channel, *captureHandler) {
	h := newCaptureHandler()
	return NewChannel(slog.New(h)), h
}

// recordingCanvas is a Canvas that counts stack operations.
type recordingCanvas struct {
	width, height int
	depth         int
	saveLayers    int
	restores      int
	lastBounds    Rect
	lastPaint     *Paint
	lastFlags     SaveFlags

	saveErr    error
	restoreErr error
	panicOn    string
}

func newRecordingCanvas(w, h int) *recordingCanvas {
	return &recordingCanvas{width: w, height: h}
}

func (c *recordingCanvas) Width() int  { return c.width }
func (c *recordingCanvas) Height() int { return c.height }

func (c *recordingCanvas) SaveLayer(bounds Rect, paint *Paint, flags SaveFlags) (int, error) {
	if c.panicOn == "save" {
		panic("save layer exploded")
	}
	if c.saveErr != nil {
		return 0, c.saveErr
	}
	c.saveLayers++
	c.depth++
	c.lastBounds = bounds
	c.lastPaint = paint
	c.lastFlags = flags
	return c.depth, nil
}

var errUnderflow = errors.New("restore underflow")

func (c *recordingCanvas) Restore() error {
	if c.panicOn == "restore" {
		panic("restore exploded")
	}
	if c.restoreErr != nil {
		return c.restoreErr
	}
	if c.depth == 0 {
		return errUnderflow
	}
	c.depth--
	c.restores++
	return nil
}
