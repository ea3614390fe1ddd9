package emit

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/DawidvC/proglr/internal/automaton"
	"github.com/DawidvC/proglr/internal/glrrt"
	"github.com/DawidvC/proglr/internal/grammar"
	"github.com/DawidvC/proglr/internal/schema"
	"github.com/DawidvC/proglr/internal/symbol"
	"github.com/DawidvC/proglr/internal/tables"
)

var titleCaser = cases.Title(language.English)

// exportedName renders a grammar-level identifier as an exported Go
// identifier: proglr names (nonterminal base names, labels) are already
// written the way BNFC-family grammars write them (PascalCase for
// categories, a label per rule), so this only upper-cases a leading
// lowercase letter and leaves the rest of the name unchanged.
func exportedName(s string) string {
	if s == "" {
		return s
	}
	return titleCaser.String(s[:1]) + s[1:]
}

// BuildParserModule is the code emitter: given the normalized grammar,
// its built automaton, and the derived AST schema, produce the Module
// describing the complete generated parser package for pkgName.
func BuildParserModule(pkgName string, g *grammar.Grammar, aut *automaton.Automaton, sums map[string]schema.Sum) Module {
	var decls []Decl

	decls = append(decls, astDecls(sums)...)
	decls = append(decls, tokenKindDecl(g))
	decls = append(decls, tablesDecl(g, aut))
	decls = append(decls, reduceFuncDecl(g, sums))
	decls = append(decls, parseFuncDecl(pkgName))

	return Module{
		Name:    pkgName,
		Imports: []string{"github.com/DawidvC/proglr/internal/glrrt"},
		Decls:   decls,
	}
}

// astDecls renders one SumTypeDecl per base nonterminal name in the
// derived schema, ordered deterministically (schema.OrderedBaseNames),
// each case's payload fields named positionally (V1, V2, ...) since the
// grammar's labels carry no per-field names of their own.
func astDecls(sums map[string]schema.Sum) []Decl {
	var decls []Decl
	for _, base := range schema.OrderedBaseNames(sums) {
		sum := sums[base]
		typeName := exportedName(base)
		decl := SumTypeDecl{
			Name: typeName,
			Doc:  fmt.Sprintf("%s is the sum type derived from every coercion level of category %s.", typeName, base),
		}
		for _, c := range sum.Cases {
			fields := []Field{{Name: "Span", Type: "Span"}}
			for i, f := range c.Fields {
				fields = append(fields, Field{Name: fmt.Sprintf("V%d", i+1), Type: fieldGoType(f)})
			}
			decl.Cases = append(decl.Cases, SumCase{Name: c.Label, Fields: fields})
		}
		decls = append(decls, decl)
	}
	return decls
}

func fieldGoType(f schema.Field) string {
	if f.Kind == schema.AtomicField {
		return f.Atomic
	}
	t := exportedName(f.BaseName)
	for i := 0; i < f.ListLevel; i++ {
		t = "[]" + t
	}
	return t
}

// tokenKindDecl emits the closed set of terminal kind constants the
// lexer is expected to produce Tokens tagged with, one per terminal
// symbol at level 0 (EOF included).
func tokenKindDecl(g *grammar.Grammar) Decl {
	var sb strings.Builder
	sb.WriteString("// Terminal kind constants. A Lexer's Token.Kind must be one of these.\nconst (\n")
	names := make([]string, 0, len(g.Terms))
	for _, t := range g.Terms {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(&sb, "\tKind%s = %q\n", exportedName(n), n)
	}
	sb.WriteString(")\n")
	return RawDecl{Text: sb.String()}
}

// tablesDecl renders the glrrt.Tables package tables.Build derives as a
// single Go literal rather than one function per state, since Go map
// literals already give O(1) per-cell lookup without the indirection of
// per-state dispatch functions.
func tablesDecl(g *grammar.Grammar, aut *automaton.Automaton) Decl {
	t := tables.Build(g, aut)
	ids := make([]int, 0, len(t.Action)+len(t.Goto))
	seen := map[int]bool{}
	for id := range t.Action {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range t.Goto {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	var sb strings.Builder
	sb.WriteString("var parserTables = glrrt.Tables{\n")
	sb.WriteString("\tStart: " + fmt.Sprint(t.Start) + ",\n")

	sb.WriteString("\tAction: map[int]map[string][]glrrt.Action{\n")
	for _, id := range ids {
		cells := t.Action[id]
		if len(cells) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\t\t%d: {\n", id)
		var las []string
		for la := range cells {
			las = append(las, la)
		}
		sort.Strings(las)
		for _, la := range las {
			var acts []string
			for _, a := range cells[la] {
				acts = append(acts, actionLiteral(a))
			}
			fmt.Fprintf(&sb, "\t\t\t%q: {%s},\n", la, strings.Join(acts, ", "))
		}
		sb.WriteString("\t\t},\n")
	}
	sb.WriteString("\t},\n")

	sb.WriteString("\tGoto: map[int]map[string]int{\n")
	for _, id := range ids {
		row := t.Goto[id]
		if len(row) == 0 {
			continue
		}
		var names []string
		for n := range row {
			names = append(names, n)
		}
		sort.Strings(names)
		var cells []string
		for _, n := range names {
			cells = append(cells, fmt.Sprintf("%q: %d", n, row[n]))
		}
		fmt.Fprintf(&sb, "\t\t%d: {%s},\n", id, strings.Join(cells, ", "))
	}
	sb.WriteString("\t},\n")
	sb.WriteString("}\n")

	return RawDecl{Text: sb.String()}
}

func actionLiteral(a glrrt.Action) string {
	switch a.Kind {
	case glrrt.Shift:
		return fmt.Sprintf("{Kind: glrrt.Shift, To: %d}", a.To)
	case glrrt.Reduce:
		return fmt.Sprintf("{Kind: glrrt.Reduce, Rule: %d, Count: %d, LHS: %q}", a.Rule, a.Count, a.LHS)
	default:
		return "{Kind: glrrt.Accept}"
	}
}

// reduceFuncDecl emits the single dispatcher glrrt.Reducer calls: a
// switch over the rule index building the Value the rule's Constructor
// implies (a Named case struct, the pass-through of a Wild rule, or a
// list node for the List* constructors).
func reduceFuncDecl(g *grammar.Grammar, sums map[string]schema.Sum) Decl {
	fn := FuncClauseGroup{
		Doc:       "reduce builds the AST Value for a completed production.",
		Name:      "reduce",
		Params:    []Field{{Name: "rule", Type: "int"}, {Name: "children", Type: "[]glrrt.Value"}},
		Returns:   []string{"glrrt.Value", "error"},
		Scrutinee: "rule",
		Default:   Atom{Text: "nil, nil"},
	}
	for i, r := range g.Rules {
		body := reduceBody(r)
		fn.Clauses = append(fn.Clauses, Clause{Pattern: fmt.Sprint(i), Body: body})
	}
	return fn
}

func reduceBody(r grammar.Rule) Expr {
	switch r.Constructor.Kind {
	case grammar.Named:
		typeName := exportedName(r.Constructor.Label)
		var fields []string
		fields = append(fields, "Span: spanOf(children)")
		vi := 1
		for i, s := range r.RHS {
			if s.Kind == symbol.UnitTerminal {
				continue // unit terminals carry no value
			}
			fields = append(fields, fmt.Sprintf("V%d: valueAt(children, %d)", vi, i))
			vi++
		}
		text := fmt.Sprintf("&%s{%s}, nil", typeName, strings.Join(fields, ", "))
		return RawExpr{Text: text}
	case grammar.Wild:
		return Atom{Text: "children[0], nil"}
	case grammar.ListEmpty:
		return Atom{Text: "[]glrrt.Value{}, nil"}
	case grammar.ListOne:
		return Atom{Text: "[]glrrt.Value{children[0]}, nil"}
	case grammar.ListCons:
		return Atom{Text: "consList(children[0], children[2]), nil"}
	default:
		return Atom{Text: "nil, nil"}
	}
}

// parseFuncDecl emits the package's single public entry point, wiring
// the generated Tables and reduce dispatcher into glrrt.Run.
func parseFuncDecl(pkgName string) Decl {
	text := fmt.Sprintf(`// Parse runs the generalized LR driver over lex and returns every
// accepted derivation. A *glrrt.Ambiguous alongside a non-empty result
// means the grammar was genuinely ambiguous on this input; callers that
// only want one tree should take result[0] and ignore that error.
func Parse(lex glrrt.Lexer) ([]glrrt.Value, error) {
	return glrrt.Run(parserTables, lex, reduce)
}

func spanOf(children []glrrt.Value) Span {
	for _, c := range children {
		if tok, ok := c.(glrrt.Token); ok {
			return Span{Text: tok.Text}
		}
	}
	return Span{}
}

func valueAt(children []glrrt.Value, i int) glrrt.Value {
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

func consList(head, tail glrrt.Value) []glrrt.Value {
	rest, _ := tail.([]glrrt.Value)
	return append([]glrrt.Value{head}, rest...)
}

// Span marks the source extent an AST node was built from.
type Span struct {
	Text string
}
`)
	return RawDecl{Text: text}
}
