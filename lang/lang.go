package lang

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ardnew/edl/log"
)

// config holds pipeline options.
type config struct {
	logger log.Logger
}

// Option configures a pipeline run.
type Option func(*config)

// WithLogger sets the structured logger used by every pipeline stage.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func makeConfig(opts ...Option) config {
	var c config

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// Run compiles one source listing against provider and returns the
// resulting bundle.
//
// The pipeline is a single sequential pass: lexer, parser, static
// resolver, interpreter. Static errors stop the run before interpretation;
// runtime errors let every statement execute but force the bundle empty.
// Either way the returned error is a [*SourceError] carrying the full
// diagnostic lists, wrapped in [ErrSourceErrors].
//
// Each call owns a fresh identity cache and root registry, so independent
// listings may be compiled concurrently through separate calls.
func Run(ctx context.Context, source string, provider Provider, opts ...Option) (*Bundle, error) {
	if provider == nil {
		return &Bundle{}, ErrNoProvider
	}

	cfg := makeConfig(opts...)
	start := time.Now()

	errors := NewReporter()

	tokens := NewLexer(source, errors, cfg.logger).ScanTokens()
	if errors.HasErrors() {
		return &Bundle{}, sourceError(errors)
	}

	statements := NewParser(tokens, errors, cfg.logger).Parse()
	if errors.HasErrors() {
		return &Bundle{}, sourceError(errors)
	}

	interp := NewInterpreter(provider, errors, cfg.logger)
	NewResolver(interp.Paths(), cfg.logger).Resolve(statements)

	bundle := interp.Interpret(statements)
	if errors.HasErrors() {
		return bundle, sourceError(errors)
	}

	cfg.logger.InfoContext(ctx, "bundle generated",
		slog.Int("entries", bundle.Len()),
		slog.Duration("elapsed", time.Since(start)))

	return bundle, nil
}

// RunReader reads an entire source listing from r and compiles it with
// [Run]. Source is consumed as one unit; there is no streaming.
func RunReader(ctx context.Context, r io.Reader, provider Provider, opts ...Option) (*Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return &Bundle{}, ErrReadInput.Wrap(err)
	}

	return Run(ctx, string(data), provider, opts...)
}

// Check runs only the static half of the pipeline, the lexer and parser,
// and returns the static diagnostics found. It never consults a provider
// and produces no objects.
func Check(_ context.Context, source string, opts ...Option) []Diagnostic {
	cfg := makeConfig(opts...)

	errors := NewReporter()

	tokens := NewLexer(source, errors, cfg.logger).ScanTokens()
	NewParser(tokens, errors, cfg.logger).Parse()

	return errors.StaticErrors()
}

func sourceError(r *Reporter) error {
	return ErrSourceErrors.Wrap(newSourceError(r))
}
