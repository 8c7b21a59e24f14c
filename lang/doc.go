// Package lang implements a small definition language that compiles short
// textual statements into a materialized graph of typed domain objects.
//
// A listing is a flat sequence of statements, each ended by ';'. Every
// statement names an element and navigates or assigns its fields:
//
//	Patient;
//	Patient.name.family = "Verdi";
//	Patient.name.given[0] = "Giuseppe";
//	Observation[1].subject = Patient;
//	Patient.birthDate = ("1813-10-10" as date);
//	Encounter.period.start = ("09/10/2021" as date => "02/01/2006");
//
// # Grammar
//
// Informal EBNF:
//
//	Listing     → Statement* EOF
//	Statement   → Expression ';'
//	Expression  → Receiver ('.' Field)* ('=' Value)?
//	Receiver    → Element Matcher? | Element Matcher? ('.' Field)+
//	Field       → identifier Index?
//	Matcher     → '[' (number | string) ']'
//	Index       → '[' number ']'
//	Value       → Expression | string | '(' string 'as' Type Layout? ')'
//	Type        → 'boolean' | 'integer' | 'decimal' | 'date'
//	Layout      → '=>' string
//
// Elements begin with an uppercase letter, fields with a lowercase one.
// Strings carry no escape sequences; '//' starts a line comment.
//
// # Pipeline
//
// [Run] drives the full pipeline over one listing: lexer, parser, static
// identity-path resolver, and a tree-walking interpreter that materializes
// objects through a [Provider]. Identity paths make object identity
// positional and repeatable: two statements that spell the same path touch
// the same object, so listings are order-independent and free of variable
// declarations.
//
// The error model is all-or-nothing. Static diagnostics stop the run
// before interpretation; runtime diagnostics let the remaining statements
// execute but force an empty [Bundle]. Both lists travel in the returned
// [*SourceError].
//
// # Concurrency
//
// [Service] compiles listings asynchronously against a shared provider
// with a bounded worker pool, and hydrates templated statement maps via
// [Service.ProcessEntries].
package lang
