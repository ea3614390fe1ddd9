// Package glrerrors defines the fatal error kinds the pipeline can
// surface. Every kind is a distinct type so callers can use errors.As to
// recover the offending source span; main() is the only place that
// formats one of these to the error stream and sets a process exit
// code.
package glrerrors

import "fmt"

// UnknownTokenType: a token declaration's attribute string isn't one of
// the recognized set ("string", "int", "char", "real").
type UnknownTokenType struct {
	Name string
	Attr string
	Span fmt.Stringer
}

func (e *UnknownTokenType) Error() string {
	return fmt.Sprintf("%s: token %q declares unknown attribute type %q", e.Span, e.Name, e.Attr)
}

// UndefinedSymbol: a rule right-hand side references a name that was
// never declared as a token or category.
type UndefinedSymbol struct {
	Handle string
	Span   fmt.Stringer
}

func (e *UndefinedSymbol) Error() string {
	return fmt.Sprintf("%s: undefined symbol %q", e.Span, e.Handle)
}

// NonterminalRequired: a rule's left-hand side resolved to a terminal.
type NonterminalRequired struct {
	Handle string
	Span   fmt.Stringer
}

func (e *NonterminalRequired) Error() string {
	return fmt.Sprintf("%s: %q must be a nonterminal, found a terminal", e.Span, e.Handle)
}

// GrammarParseFailure wraps an error surfaced by the upstream grammar-file
// front end that produced the gast.Grammar this pipeline consumes.
type GrammarParseFailure struct {
	Cause error
}

func (e *GrammarParseFailure) Error() string {
	return fmt.Sprintf("grammar parse failure: %v", e.Cause)
}

func (e *GrammarParseFailure) Unwrap() error { return e.Cause }

// IOFailure wraps a file/process I/O error encountered while reading the
// grammar or writing generated output.
type IOFailure struct {
	Op    string
	Cause error
}

func (e *IOFailure) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *IOFailure) Unwrap() error { return e.Cause }
