// Package logging provides a minimal logging interface and adapters for QueryFlow.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that the interpreter and executor use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - QueryFlowLogger with contextual helpers (session, query, component)
//     and domain logging for interpretations, handlers and collaborators
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	qf := queryflow.New(func(o *queryflow.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
