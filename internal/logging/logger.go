// Package logging defines the small structured-logging interface the rest of
// the project depends on, so packages are not tied to a concrete backend.
package logging

import "context"

// Logger is a context-aware structured logger. The variadic args form
// key-value pairs:
//
//	log.Info(ctx, "server started", "addr", addr)
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given key-value pairs.
	With(args ...any) Logger
}
