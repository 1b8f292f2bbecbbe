// Package logging provides structured logging for roster sessions.
//
// It wraps Go's log/slog with a JSON handler. Logs go to a file in the
// configured log directory, or to stderr when no directory is set, so the
// interactive prompt on stdout stays clean.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(dir, "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("roster generated", "count", 10)
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	runLogger := logger.WithRunID(id).WithSeed(42)
//	runLogger.WithPhase("release").Info("prisoners released", "articles", "1-3")
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"prisoners released","run_id":"...","seed":42,"phase":"release","articles":"1-3"}
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] to capture it.
//
// # Log Levels
//
// [LevelDebug], [LevelInfo] (default), [LevelWarn] and [LevelError]. Use
// [ParseLevel] to normalize user input and [ValidLevels] to list them.
package logging
