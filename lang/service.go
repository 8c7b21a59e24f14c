package lang

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/ardnew/edl/log"
)

// DefaultConcurrency is the number of listings a [Service] compiles
// simultaneously unless overridden with [WithConcurrency].
const DefaultConcurrency = 40

// Result is the outcome of one asynchronous compilation.
type Result struct {
	Bundle *Bundle
	Err    error
}

// ServiceOption configures a [Service].
type ServiceOption func(*Service)

// WithConcurrency bounds the number of listings compiled simultaneously.
// Values below one fall back to [DefaultConcurrency].
func WithConcurrency(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.sem = make(chan struct{}, n)
		}
	}
}

// WithServiceLogger sets the structured logger used by the service and
// every pipeline it runs.
func WithServiceLogger(logger log.Logger) ServiceOption {
	return func(s *Service) {
		s.opts = append(s.opts, WithLogger(logger))
		s.logger = logger
	}
}

// Service compiles listings asynchronously against a shared provider,
// bounding the number of concurrent compilations. Each compilation still
// owns its own reporter, identity cache, and root registry; only the
// provider is shared, so providers used through a Service must be safe
// for concurrent use.
type Service struct {
	provider Provider
	logger   log.Logger
	opts     []Option
	sem      chan struct{}

	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

// NewService creates a Service compiling against provider.
func NewService(provider Provider, opts ...ServiceOption) *Service {
	s := &Service{
		provider: provider,
		sem:      make(chan struct{}, DefaultConcurrency),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Submit schedules source for compilation and returns a channel that
// receives the single [Result] when it completes. The channel is closed
// after the result is delivered.
//
// Submit blocks only while acquiring a concurrency slot; cancellation of
// ctx during the wait delivers the context error as the result.
func (s *Service) Submit(ctx context.Context, source string) <-chan Result {
	out := make(chan Result, 1)

	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()

		out <- Result{Bundle: &Bundle{}, Err: ErrClosed}
		close(out)

		return out
	}

	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer close(out)

		select {
		case s.sem <- struct{}{}:
			defer func() { <-s.sem }()

		case <-ctx.Done():
			out <- Result{Bundle: &Bundle{}, Err: ctx.Err()}

			return
		}

		bundle, err := Run(ctx, source, s.provider, s.opts...)
		out <- Result{Bundle: bundle, Err: err}
	}()

	return out
}

// Run compiles source synchronously, still counting against the
// concurrency bound.
func (s *Service) Run(ctx context.Context, source string) (*Bundle, error) {
	res := <-s.Submit(ctx, source)

	return res.Bundle, res.Err
}

// ProcessEntries hydrates a set of templated statements and compiles the
// combined listing.
//
// Each map key is a statement containing a '$' placeholder; the
// placeholder is replaced with the map value rendered as a quoted string
// literal. The hydrated statements are joined into one listing, so any
// error in one entry fails all of them. Map iteration order does not
// matter because object identity is driven by identity paths, not by
// statement position.
func (s *Service) ProcessEntries(ctx context.Context, entries map[string]string) (*Bundle, error) {
	var source strings.Builder

	for stmt, value := range entries {
		// String literals carry no escape sequences, so the value is
		// wrapped in quotes verbatim rather than through %q.
		source.WriteString(strings.ReplaceAll(stmt, "$", `"`+value+`"`))
		source.WriteByte('\n')
	}

	s.logger.DebugContext(ctx, "hydrated entries",
		slog.Int("count", len(entries)))

	return s.Run(ctx, source.String())
}

// Close marks the service closed and waits for in-flight compilations to
// finish. Submissions after Close fail with [ErrClosed].
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
}
