// Package emit implements the abstract emission tree and the GLR code
// emitter built on top of it.
//
// The emission tree is a small, closed algebraic vocabulary for
// declarations and expressions, target-language-neutral in spirit but
// rendered here to idiomatic Go (the generator itself is a Go program,
// and the lexer interface an emitted parser expects is specified in
// terms a Go runtime package can satisfy directly). A Printer walks the
// tree and renders it to Go source text, inlining short expressions and
// breaking long ones onto their own line using a 70-column heuristic,
// via github.com/dekarrin/rosed's line-wrapper.
package emit

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

const inlineWidth = 70

// Decl is a top-level or nested declaration node.
type Decl interface{ declNode() }

// SumTypeDecl declares a closed tagged union: Name is the interface
// name, and each Case becomes a struct implementing a private marker
// method on that interface.
type SumTypeDecl struct {
	Name  string
	Doc   string
	Cases []SumCase
}

// SumCase is one variant of a SumTypeDecl.
type SumCase struct {
	Name   string
	Fields []Field
}

// Field is one named, typed struct field.
type Field struct {
	Name string
	Type string
}

// FuncClauseGroup is a top-level function built from a dispatch over one
// argument (a pattern-matched "clause group" in the ML sense, rendered
// here as a Go switch over Scrutinee).
type FuncClauseGroup struct {
	Doc       string
	Name      string
	Params    []Field
	Returns   []string
	Scrutinee string // expression text switched over; "" means no switch, just Body
	Clauses   []Clause
	Default   Expr // evaluated when no clause pattern matches; nil prints a bare `return nil`
	Body      Expr // used instead of Clauses when Scrutinee == ""
}

// Clause is one switch-case of a FuncClauseGroup.
type Clause struct {
	Pattern string
	Body    Expr
}

// ValueBinding declares a top-level var/const.
type ValueBinding struct {
	Doc   string
	Name  string
	Type  string
	Value Expr
}

// RawDecl is an opaque, pre-rendered textual declaration (used for the
// handful of declarations, such as the terminal-kind constants, the
// tables literal, and the Parse entry point with its helpers, that don't
// benefit from being modeled structurally).
type RawDecl struct {
	Text string
}

func (SumTypeDecl) declNode()     {}
func (FuncClauseGroup) declNode() {}
func (ValueBinding) declNode()    {}
func (RawDecl) declNode()         {}

// Expr is an expression node.
type Expr interface{ exprNode() }

// Atom is a literal, already-rendered expression fragment (an
// identifier, a literal, or a short already-composed snippet).
type Atom struct{ Text string }

// RawExpr is an already-rendered multi-line expression (a map or slice
// literal) inserted verbatim; unlike Atom it is never re-wrapped by the
// 70-column heuristic, since its internal line breaks are already
// meaningful.
type RawExpr struct{ Text string }

func (RawExpr) exprNode() {}

// LetExpr sequences bindings before a result expression.
type LetExpr struct {
	Bindings []ValueBinding
	Body     Expr
}

// CaseExpr is a pattern-match/switch expression.
type CaseExpr struct {
	Scrutinee string
	Arms      []CaseArm
	Default   Expr
}

// CaseArm is one arm of a CaseExpr.
type CaseArm struct {
	Pattern string
	Body    Expr
}

// TupleExpr groups Elems positionally.
type TupleExpr struct{ Elems []Expr }

// AppExpr is a function application Fn(Args...).
type AppExpr struct {
	Fn   string
	Args []Expr
}

func (Atom) exprNode()      {}
func (LetExpr) exprNode()   {}
func (CaseExpr) exprNode()  {}
func (TupleExpr) exprNode() {}
func (AppExpr) exprNode()   {}

// Module is a named group of declarations, the unit the Printer renders
// as a single Go source file.
type Module struct {
	Name    string
	Imports []string
	Decls   []Decl
}

// Printer renders a Module to Go source text.
type Printer struct {
	pkg string
}

// NewPrinter creates a Printer that renders into Go package pkg.
func NewPrinter(pkg string) *Printer {
	return &Printer{pkg: pkg}
}

// Print renders m to a complete Go source file.
func (p *Printer) Print(m Module) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// Code generated by proglr from %s. DO NOT EDIT.\n\n", m.Name)
	fmt.Fprintf(&sb, "package %s\n\n", p.pkg)
	if len(m.Imports) > 0 {
		sb.WriteString("import (\n")
		for _, imp := range m.Imports {
			fmt.Fprintf(&sb, "\t%q\n", imp)
		}
		sb.WriteString(")\n\n")
	}
	for i, d := range m.Decls {
		p.printDecl(&sb, d)
		if i+1 < len(m.Decls) {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (p *Printer) printDecl(sb *strings.Builder, d Decl) {
	switch v := d.(type) {
	case SumTypeDecl:
		p.printSumType(sb, v)
	case FuncClauseGroup:
		p.printFunc(sb, v)
	case ValueBinding:
		p.printValue(sb, v)
	case RawDecl:
		sb.WriteString(v.Text)
		if !strings.HasSuffix(v.Text, "\n") {
			sb.WriteString("\n")
		}
	}
}

func (p *Printer) printSumType(sb *strings.Builder, d SumTypeDecl) {
	if d.Doc != "" {
		writeDoc(sb, d.Doc)
	}
	fmt.Fprintf(sb, "type %s interface { is%s() }\n\n", d.Name, d.Name)
	for _, c := range d.Cases {
		fmt.Fprintf(sb, "type %s struct {\n", c.Name)
		for _, f := range c.Fields {
			fmt.Fprintf(sb, "\t%s %s\n", f.Name, f.Type)
		}
		sb.WriteString("}\n")
		fmt.Fprintf(sb, "func (%s) is%s() {}\n\n", c.Name, d.Name)
	}
}

func (p *Printer) printFunc(sb *strings.Builder, f FuncClauseGroup) {
	if f.Doc != "" {
		writeDoc(sb, f.Doc)
	}
	params := make([]string, len(f.Params))
	for i, pm := range f.Params {
		params[i] = pm.Name + " " + pm.Type
	}
	ret := ""
	switch len(f.Returns) {
	case 0:
	case 1:
		ret = " " + f.Returns[0]
	default:
		ret = " (" + strings.Join(f.Returns, ", ") + ")"
	}
	fmt.Fprintf(sb, "func %s(%s)%s {\n", f.Name, strings.Join(params, ", "), ret)

	if f.Scrutinee == "" {
		sb.WriteString("\treturn ")
		p.printExpr(sb, f.Body, 1)
		sb.WriteString("\n")
	} else {
		fmt.Fprintf(sb, "\tswitch %s {\n", f.Scrutinee)
		for _, c := range f.Clauses {
			fmt.Fprintf(sb, "\tcase %s:\n\t\treturn ", c.Pattern)
			p.printExpr(sb, c.Body, 2)
			sb.WriteString("\n")
		}
		sb.WriteString("\tdefault:\n\t\treturn ")
		if f.Default != nil {
			p.printExpr(sb, f.Default, 2)
		} else {
			sb.WriteString("nil")
		}
		sb.WriteString("\n\t}\n")
	}
	sb.WriteString("}\n\n")
}

func (p *Printer) printValue(sb *strings.Builder, v ValueBinding) {
	if v.Doc != "" {
		writeDoc(sb, v.Doc)
	}
	fmt.Fprintf(sb, "var %s %s = ", v.Name, v.Type)
	p.printExpr(sb, v.Value, 0)
	sb.WriteString("\n\n")
}

// printExpr renders e, inlining it if its one-line rendering fits within
// inlineWidth columns (minus indent), otherwise breaking it across
// multiple lines via rosed's Wrap.
func (p *Printer) printExpr(sb *strings.Builder, e Expr, indent int) {
	if raw, ok := e.(RawExpr); ok {
		sb.WriteString(raw.Text)
		return
	}
	inline := p.renderInline(e)
	pad := strings.Repeat("\t", indent)
	if len(pad)+len(inline) <= inlineWidth {
		sb.WriteString(inline)
		return
	}
	wrapped := rosed.Edit(inline).Wrap(inlineWidth).String()
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n" + pad)
		}
		sb.WriteString(line)
	}
}

func (p *Printer) renderInline(e Expr) string {
	switch v := e.(type) {
	case Atom:
		return v.Text
	case TupleExpr:
		parts := make([]string, len(v.Elems))
		for i, el := range v.Elems {
			parts[i] = p.renderInline(el)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case AppExpr:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = p.renderInline(a)
		}
		return v.Fn + "(" + strings.Join(parts, ", ") + ")"
	case CaseExpr:
		var arms []string
		for _, a := range v.Arms {
			arms = append(arms, fmt.Sprintf("case %s: %s", a.Pattern, p.renderInline(a.Body)))
		}
		return fmt.Sprintf("switch %s { %s }", v.Scrutinee, strings.Join(arms, "; "))
	case LetExpr:
		var parts []string
		for _, b := range v.Bindings {
			parts = append(parts, fmt.Sprintf("%s := %s", b.Name, p.renderInline(b.Value)))
		}
		parts = append(parts, p.renderInline(v.Body))
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprintf("%v", e)
	}
}

func writeDoc(sb *strings.Builder, doc string) {
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		sb.WriteString("// " + line + "\n")
	}
}
