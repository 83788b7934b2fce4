// Package logging provides a minimal logging facade for the power-sum solver.
//
// The Logger interface wraps the subset of log/slog used by the solver so that
// applications can plug in their own implementation for tests, redaction or an
// existing logging stack.
//
// # Default Implementation
//
//	// Use slog.Default()
//	logger := logging.New(nil)
//
//	// Or a custom handler
//	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	logger = logging.New(slog.New(handler))
//
// # Redaction
//
// A peer's own message identifies it within the round and must not end up in
// logs. Use Redacted in its place:
//
//	logger.Debug(ctx, "membership checked", logging.Redacted("my_message"))
//	// Logs: my_message=[redacted]
//
// The solver logs stage transitions at debug level and never logs the
// caller's message.
package logging
