package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_Wrap_MatchesSentinel(t *testing.T) {
	tests := []struct {
		name     string
		sentinel *Error
	}{
		{"read input", ErrReadInput},
		{"source errors", ErrSourceErrors},
		{"no provider", ErrNoProvider},
		{"closed", ErrClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sentinel.Wrap(io.ErrUnexpectedEOF)

			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false, want true", err)
			}
		})
	}
}

func TestError_Wrap_UnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := ErrReadInput.Wrap(cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(%v, cause) = false, want true", err)
	}
}

func TestError_With_MatchesSentinel(t *testing.T) {
	err := ErrClosed.With(slog.String("component", "service"))

	if !errors.Is(err, ErrClosed) {
		t.Errorf("errors.Is(%v, ErrClosed) = false, want true", err)
	}
}

func TestError_Is_DistinctSentinels(t *testing.T) {
	err := ErrReadInput.Wrap(errors.New("boom"))

	if errors.Is(err, ErrClosed) {
		t.Errorf("errors.Is(%v, ErrClosed) = true, want false", err)
	}
}
