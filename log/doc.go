// Package log provides a concurrency-safe structured logging interface
// based on [log/slog].
//
// Loggers are immutable values created with [Make] and reconfigured with
// functional options; the zero value discards all output, so library
// code can log unconditionally. A Trace level below [LevelDebug] is
// added for per-token and per-node tracing.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//	logger.Info("service started", slog.String("version", v))
//
// The package also maintains a default logger configured with [Config]
// and driven through package-level functions mirroring the [Logger]
// methods.
package log
