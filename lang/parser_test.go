package lang

import (
	"strings"
	"testing"
)

func parse(t *testing.T, source string) ([]Stmt, *Reporter) {
	t.Helper()

	errors := NewReporter()
	tokens := NewLexer(source, errors, testLogger()).ScanTokens()
	statements := NewParser(tokens, errors, testLogger()).Parse()

	return statements, errors
}

// TestParser_ElementDeclaration verifies bare and matched declarations.
func TestParser_ElementDeclaration(t *testing.T) {
	statements, errors := parse(t, `Patient; Patient[1]; Patient["wife"];`)
	if errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", errors.StaticErrors())
	}

	if len(statements) != 3 {
		t.Fatalf("got %d statements, want 3", len(statements))
	}

	bare := statements[0].(*ExprStmt).Expr.(*Element)
	if bare.Name.Lexeme != "Patient" || bare.Matcher != nil {
		t.Errorf("bare element = %+v, want Patient with nil matcher", bare)
	}

	byNumber := statements[1].(*ExprStmt).Expr.(*Element)
	if lit := byNumber.Matcher.(*Literal); lit.Value != 1 {
		t.Errorf("numeric matcher = %v, want 1", lit.Value)
	}

	byString := statements[2].(*ExprStmt).Expr.(*Element)
	if lit := byString.Matcher.(*Literal); lit.Value != "wife" {
		t.Errorf("string matcher = %v, want %q", lit.Value, "wife")
	}
}

// TestParser_FieldNavigation verifies Get chains with optional indexes.
func TestParser_FieldNavigation(t *testing.T) {
	statements, errors := parse(t, `Patient.name[1].family;`)
	if errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", errors.StaticErrors())
	}

	family := statements[0].(*ExprStmt).Expr.(*Get)
	if family.Field.Lexeme != "family" || family.Index != nil {
		t.Fatalf("outer get = %+v, want family without index", family)
	}

	name := family.Object.(*Get)
	if name.Field.Lexeme != "name" {
		t.Fatalf("inner get field = %q, want name", name.Field.Lexeme)
	}

	if lit := name.Index.(*Literal); lit.Value != 1 {
		t.Errorf("inner get index = %v, want 1", lit.Value)
	}

	if _, ok := name.Object.(*Element); !ok {
		t.Errorf("receiver = %T, want *Element", name.Object)
	}
}

// TestParser_Assignment verifies Set construction from the Get target.
func TestParser_Assignment(t *testing.T) {
	statements, errors := parse(t, `Patient.name[0].given[1] = "Maria";`)
	if errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", errors.StaticErrors())
	}

	set := statements[0].(*ExprStmt).Expr.(*Set)
	if set.Field.Lexeme != "given" {
		t.Errorf("set field = %q, want given", set.Field.Lexeme)
	}

	if lit := set.Index.(*Literal); lit.Value != 1 {
		t.Errorf("set index = %v, want 1", lit.Value)
	}

	if lit := set.Value.(*Literal); lit.Value != "Maria" || lit.Type != TypeNone {
		t.Errorf("set value = %+v, want untyped Maria", lit)
	}
}

// TestParser_ElementReference verifies element values on the right side.
func TestParser_ElementReference(t *testing.T) {
	statements, errors := parse(t, `Observation.subject = Patient;`)
	if errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", errors.StaticErrors())
	}

	set := statements[0].(*ExprStmt).Expr.(*Set)

	ref, ok := set.Value.(*Element)
	if !ok || ref.Name.Lexeme != "Patient" {
		t.Errorf("set value = %+v, want element Patient", set.Value)
	}
}

// TestParser_TypedLiterals verifies annotated right-hand sides.
func TestParser_TypedLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, value Expr)
	}{
		{
			name:  "boolean",
			input: `Patient.active = ("yes" as boolean);`,
			check: func(t *testing.T, value Expr) {
				lit := value.(*Literal)
				if lit.Type != TypeBoolean || lit.Value != "yes" {
					t.Errorf("literal = %+v, want boolean yes", lit)
				}
			},
		},
		{
			name:  "integer",
			input: `Observation.count = ("10" as integer);`,
			check: func(t *testing.T, value Expr) {
				lit := value.(*Literal)
				if lit.Type != TypeInteger || lit.Value != "10" {
					t.Errorf("literal = %+v, want integer 10", lit)
				}
			},
		},
		{
			name:  "decimal",
			input: `Observation.quantity = ("1.5" as decimal);`,
			check: func(t *testing.T, value Expr) {
				lit := value.(*Literal)
				if lit.Type != TypeDecimal || lit.Value != "1.5" {
					t.Errorf("literal = %+v, want decimal 1.5", lit)
				}
			},
		},
		{
			name:  "date without layout",
			input: `Patient.birthDate = ("1998-03-12" as date);`,
			check: func(t *testing.T, value Expr) {
				date := value.(*Date)
				if date.Value != "1998-03-12" || date.Format != "" {
					t.Errorf("date = %+v, want guessed 1998-03-12", date)
				}
			},
		},
		{
			name:  "date with layout",
			input: `Patient.birthDate = ("12-03-1998" as date => "02-01-2006");`,
			check: func(t *testing.T, value Expr) {
				date := value.(*Date)
				if date.Value != "12-03-1998" || date.Format != "02-01-2006" {
					t.Errorf("date = %+v, want explicit layout", date)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statements, errors := parse(t, tt.input)
			if errors.HasErrors() {
				t.Fatalf("unexpected errors: %v", errors.StaticErrors())
			}

			tt.check(t, statements[0].(*ExprStmt).Expr.(*Set).Value)
		})
	}
}

// TestParser_Errors verifies structural diagnostics and recovery.
func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		messages []string
	}{
		{
			name:     "missing semicolon",
			input:    `Patient`,
			messages: []string{"expect ';' after expression."},
		},
		{
			name:     "invalid type keyword",
			input:    `Patient.deceased = ("x" as struct);`,
			messages: []string{"expect a valid type keyword."},
		},
		{
			name:     "invalid matcher",
			input:    `Patient[name];`,
			messages: []string{"expect an integer number or a string."},
		},
		{
			name:     "invalid assignment target",
			input:    `Patient = "x";`,
			messages: []string{"invalid assignment target."},
		},
		{
			name:  "recovery reports both statements",
			input: "Patient.name = ;\nObservation[;\n",
			messages: []string{
				"expect a string.",
				"expect an integer number or a string.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errors := parse(t, tt.input)

			static := errors.StaticErrors()
			if len(static) == 0 {
				t.Fatal("expected static errors, got none")
			}

			for _, want := range tt.messages {
				found := false

				for _, d := range static {
					if d.Message == want {
						found = true

						break
					}
				}

				if !found {
					t.Errorf("missing diagnostic %q in %v", want, static)
				}
			}
		})
	}
}

// TestParser_IndependentStatementErrors verifies that one broken statement
// does not suppress diagnostics from the next.
func TestParser_IndependentStatementErrors(t *testing.T) {
	source := "Patient..name;\nObservation.code = (\"x\" as struct);\n"
	_, errors := parse(t, source)

	static := errors.StaticErrors()
	if len(static) < 2 {
		t.Fatalf("got %d static errors, want at least 2: %v",
			len(static), static)
	}

	report := errors.Report()
	for _, want := range []string{"[line 1]", "[line 2]"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}
