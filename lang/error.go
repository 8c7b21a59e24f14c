package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrReadInput    = NewError("failed to read input")
	ErrSourceErrors = NewError("source contains errors")
	ErrNoProvider   = NewError("no element provider configured")
	ErrClosed       = NewError("service is closed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same base error, so a sentinel still
// matches through errors.Is after [Error.Wrap] or [Error.With] derived a
// new instance from it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	// A message-less Error matches only by identity, which errors.Is
	// already covers before consulting this method.
	return ok && e.msg != "" && e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Diagnostic is a single static or runtime problem found in a source
// listing, located by line and, when available, the offending token.
type Diagnostic struct {
	Line    int
	Token   *Token
	Message string
}

// String renders the diagnostic report line.
func (d Diagnostic) String() string {
	switch {
	case d.Token != nil && d.Token.Kind == KindEOF:
		return fmt.Sprintf("[line %d] Error at end: %s", d.Line, d.Message)

	case d.Token != nil:
		return fmt.Sprintf("[line %d] Error at '%s': %s",
			d.Line, d.Token.Lexeme, d.Message)

	default:
		return fmt.Sprintf("[line %d] Error: %s", d.Line, d.Message)
	}
}

// Reporter accumulates the diagnostics found across one run. Static errors
// are lexical or syntactic problems in the source; runtime errors occur
// during interpretation. The two lists are tracked independently and each
// preserves insertion order.
type Reporter struct {
	static  []Diagnostic
	runtime []Diagnostic
}

// NewReporter creates an empty Reporter for one run.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Static records a static diagnostic located by line only.
func (r *Reporter) Static(line int, message string) {
	r.static = append(r.static, Diagnostic{Line: line, Message: message})
}

// StaticToken records a static diagnostic located by a token.
func (r *Reporter) StaticToken(token Token, message string) {
	r.static = append(r.static, Diagnostic{
		Line:    token.Line,
		Token:   &token,
		Message: message,
	})
}

// Runtime records a runtime diagnostic located by line only.
func (r *Reporter) Runtime(line int, message string) {
	r.runtime = append(r.runtime, Diagnostic{Line: line, Message: message})
}

// RuntimeToken records a runtime diagnostic located by a token.
func (r *Reporter) RuntimeToken(token Token, message string) {
	r.runtime = append(r.runtime, Diagnostic{
		Line:    token.Line,
		Token:   &token,
		Message: message,
	})
}

// StaticErrors returns the static diagnostics recorded so far.
func (r *Reporter) StaticErrors() []Diagnostic {
	return r.static
}

// RuntimeErrors returns the runtime diagnostics recorded so far.
func (r *Reporter) RuntimeErrors() []Diagnostic {
	return r.runtime
}

// HasErrors reports whether any diagnostic of either kind was recorded.
func (r *Reporter) HasErrors() bool {
	return len(r.static) > 0 || len(r.runtime) > 0
}

// Report renders all diagnostics as a combined, human-readable report.
func (r *Reporter) Report() string {
	var buf strings.Builder

	buf.WriteString("\nStatic errors:\n")

	for _, d := range r.static {
		buf.WriteString(d.String())
		buf.WriteRune('\n')
	}

	buf.WriteString("\nRuntime errors:\n")

	for _, d := range r.runtime {
		buf.WriteString(d.String())
		buf.WriteRune('\n')
	}

	return buf.String()
}

// SourceError is returned by [Run] when a listing produced diagnostics.
// It carries both diagnostic lists so callers can render them
// individually; Error renders the combined report.
type SourceError struct {
	Static  []Diagnostic
	Runtime []Diagnostic
}

// newSourceError captures the reporter state into a SourceError.
func newSourceError(r *Reporter) *SourceError {
	return &SourceError{
		Static:  r.StaticErrors(),
		Runtime: r.RuntimeErrors(),
	}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	var buf strings.Builder

	buf.WriteString("source contains errors")

	for _, d := range e.Static {
		buf.WriteString("\n\t")
		buf.WriteString(d.String())
	}

	for _, d := range e.Runtime {
		buf.WriteString("\n\t")
		buf.WriteString(d.String())
	}

	return buf.String()
}

// runtimeError carries a runtime failure up the evaluation tree until the
// statement boundary, where it is recorded as a diagnostic.
type runtimeError struct {
	token   Token
	message string
}

// Error implements the error interface.
func (e *runtimeError) Error() string {
	return e.message
}

// newRuntimeError creates a runtime error located at token.
func newRuntimeError(token Token, message string) *runtimeError {
	return &runtimeError{token: token, message: message}
}
