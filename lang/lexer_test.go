package lang

import (
	"testing"
)

func scan(t *testing.T, source string) ([]Token, *Reporter) {
	t.Helper()

	errors := NewReporter()
	tokens := NewLexer(source, errors, testLogger()).ScanTokens()

	return tokens, errors
}

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}

	return out
}

// TestLexer_Statements verifies token streams for well-formed statements.
func TestLexer_Statements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{
			name:  "bare element",
			input: "Patient;",
			want:  []Kind{KindElement, KindSemicolon, KindEOF},
		},
		{
			name:  "field assignment",
			input: `Patient.gender = "male";`,
			want: []Kind{
				KindElement, KindDot, KindIdentifier,
				KindEqual, KindString, KindSemicolon, KindEOF,
			},
		},
		{
			name:  "matcher and index",
			input: `Patient[1].name[0];`,
			want: []Kind{
				KindElement, KindLeftBracket, KindNumber, KindRightBracket,
				KindDot, KindIdentifier,
				KindLeftBracket, KindNumber, KindRightBracket,
				KindSemicolon, KindEOF,
			},
		},
		{
			name:  "typed annotation",
			input: `Patient.active = ("yes" as boolean);`,
			want: []Kind{
				KindElement, KindDot, KindIdentifier, KindEqual,
				KindLeftParen, KindString, KindAs, KindBoolean,
				KindRightParen, KindSemicolon, KindEOF,
			},
		},
		{
			name:  "date with explicit layout",
			input: `Patient.birthDate = ("12-03-1998" as date => "02-01-2006");`,
			want: []Kind{
				KindElement, KindDot, KindIdentifier, KindEqual,
				KindLeftParen, KindString, KindAs, KindDate,
				KindArrow, KindString,
				KindRightParen, KindSemicolon, KindEOF,
			},
		},
		{
			name:  "comment runs to end of line",
			input: "// a comment\nPatient;",
			want:  []Kind{KindElement, KindSemicolon, KindEOF},
		},
		{
			name:  "empty source",
			input: "",
			want:  []Kind{KindEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errors := scan(t, tt.input)

			if errors.HasErrors() {
				t.Fatalf("unexpected errors: %v", errors.StaticErrors())
			}

			got := kinds(tokens)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d %v",
					len(got), got, len(tt.want), tt.want)
			}

			for i, want := range tt.want {
				if got[i] != want {
					t.Errorf("token[%d] = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

// TestLexer_Literals verifies literal values carried on tokens.
func TestLexer_Literals(t *testing.T) {
	tokens, errors := scan(t, `Patient.name = "Rossi"; Patient[12];`)
	if errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", errors.StaticErrors())
	}

	var (
		str *Token
		num *Token
	)

	for i := range tokens {
		switch tokens[i].Kind {
		case KindString:
			str = &tokens[i]
		case KindNumber:
			num = &tokens[i]
		}
	}

	if str == nil || str.Literal != "Rossi" {
		t.Errorf("string literal = %v, want %q", str, "Rossi")
	}

	if num == nil || num.Literal != 12 {
		t.Errorf("number literal = %v, want 12", num)
	}
}

// TestLexer_Keywords verifies keywords are distinguished from identifiers.
func TestLexer_Keywords(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"as", KindAs},
		{"boolean", KindBoolean},
		{"integer", KindInteger},
		{"decimal", KindDecimal},
		{"date", KindDate},
		{"dates", KindIdentifier},
		{"name", KindIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, _ := scan(t, tt.input)
			if tokens[0].Kind != tt.want {
				t.Errorf("kind = %v, want %v", tokens[0].Kind, tt.want)
			}
		})
	}
}

// TestLexer_Errors verifies lexical diagnostics.
func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		line    int
	}{
		{
			name:    "unterminated string",
			input:   `Patient.name = "Rossi`,
			message: "unterminated string.",
			line:    1,
		},
		{
			name:    "unexpected character",
			input:   "Patient ? name;",
			message: "unexpected character.",
			line:    1,
		},
		{
			name:    "error on later line",
			input:   "Patient;\nObservation ! x;",
			message: "unexpected character.",
			line:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errors := scan(t, tt.input)

			static := errors.StaticErrors()
			if len(static) != 1 {
				t.Fatalf("got %d static errors, want 1", len(static))
			}

			if static[0].Message != tt.message {
				t.Errorf("message = %q, want %q", static[0].Message, tt.message)
			}

			if static[0].Line != tt.line {
				t.Errorf("line = %d, want %d", static[0].Line, tt.line)
			}
		})
	}
}

// TestLexer_LineTracking verifies line numbers advance with newlines.
func TestLexer_LineTracking(t *testing.T) {
	tokens, _ := scan(t, "Patient;\n\nObservation;")

	if tokens[0].Line != 1 {
		t.Errorf("first element line = %d, want 1", tokens[0].Line)
	}

	if tokens[2].Line != 3 {
		t.Errorf("second element line = %d, want 3", tokens[2].Line)
	}
}
