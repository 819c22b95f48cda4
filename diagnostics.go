package invcolors

import (
	"context"
	"log/slog"
	"sync"
)

// Tag is attached to every diagnostic record.
const Tag = "InvColors"

// DefaultLogLimit caps Limited emissions per binding and category.
const DefaultLogLimit = 3

// Category groups diagnostic records for rate limiting.
type Category string

// Log categories.
const (
	CategoryApply    Category = "apply"
	CategoryFrame    Category = "frame"
	CategoryInstall  Category = "install"
	CategorySettings Category = "settings"
)

// Channel is the process-wide diagnostic sink. Records are written to a
// slog.Logger with the InvColors tag; write failures are dropped.
type Channel struct {
	logger *slog.Logger
	limit  int
}

// NewChannel returns a channel writing to l. A nil logger follows the
// package logger configured with SetLogger.
func NewChannel(l *slog.Logger) *Channel {
	return &Channel{logger: l, limit: DefaultLogLimit}
}

// WithLimit returns a copy of the channel using limit for Limited records.
func (c *Channel) WithLimit(limit int) *Channel {
	cp := *c
	cp.limit = limit
	return &cp
}

// For returns the diagnostics of a single binding, keyed by package.
func (c *Channel) For(pkg string) *Diagnostics {
	return &Diagnostics{
		ch:     c,
		pkg:    pkg,
		counts: make(map[Category]int),
	}
}

func (c *Channel) loggerOrDefault() *slog.Logger {
	if c == nil || c.logger == nil {
		return Logger()
	}
	return c.logger
}

func (c *Channel) emit(pkg string, cat Category, level slog.Level, msg string, args []any) {
	defer func() {
		// A panicking handler must never reach the draw path.
		_ = recover()
	}()

	l := c.loggerOrDefault()
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}

	attrs := make([]any, 0, len(args)+3)
	attrs = append(attrs, slog.String("tag", Tag), slog.String("package", pkg))
	if cat != "" {
		attrs = append(attrs, slog.String("category", string(cat)))
	}
	attrs = append(attrs, args...)
	l.Log(ctx, level, msg, attrs...)
}

// Diagnostics is the rate-limited log writer of one binding.
// It is safe for concurrent use.
type Diagnostics struct {
	ch  *Channel
	pkg string

	mu     sync.Mutex
	counts map[Category]int
}

// Package returns the package the diagnostics are keyed by.
func (d *Diagnostics) Package() string {
	return d.pkg
}

// Log writes a record without rate limiting. Use it off the draw path.
func (d *Diagnostics) Log(level slog.Level, msg string, args ...any) {
	d.ch.emit(d.pkg, "", level, msg, args)
}

// Limited writes a record unless the category already reached the
// channel's limit for this binding. It reports whether the record was
// accepted.
func (d *Diagnostics) Limited(cat Category, level slog.Level, msg string, args ...any) bool {
	return d.limited(cat, d.ch.limit, level, msg, args)
}

// Once writes a record only the first time the category is used.
func (d *Diagnostics) Once(cat Category, level slog.Level, msg string, args ...any) bool {
	return d.limited(cat, 1, level, msg, args)
}

// Count returns the number of records accepted for the category.
func (d *Diagnostics) Count(cat Category) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[cat]
}

func (d *Diagnostics) limited(cat Category, limit int, level slog.Level, msg string, args []any) bool {
	d.mu.Lock()
	if d.counts[cat] >= limit {
		d.mu.Unlock()
		return false
	}
	d.counts[cat]++
	d.mu.Unlock()

	d.ch.emit(d.pkg, cat, level, msg, args)
	return true
}
