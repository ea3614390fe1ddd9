// Package grammar implements the grammar normalizer: three passes over
// the input gast.Grammar that populate a symbol.Table and produce the
// flat (constructor, lhs, rhs) rule list consumed by the rest of the
// pipeline.
package grammar

import (
	"fmt"

	"github.com/DawidvC/proglr/internal/gast"
	"github.com/DawidvC/proglr/internal/glrerrors"
	"github.com/DawidvC/proglr/internal/symbol"
)

// ConstructorKind distinguishes how a reduction over a Rule builds (or
// doesn't build) an AST node.
type ConstructorKind int

const (
	// Named is a user label: Ast.c(span, v1, ..., vk).
	Named ConstructorKind = iota
	// Wild passes its single child through untouched; no node is built.
	Wild
	// ListEmpty is the empty alternative of a list macro expansion: [].
	ListEmpty
	// ListCons is the cons alternative: head :: tail.
	ListCons
	// ListOne is the singleton alternative: [x].
	ListOne
)

func (k ConstructorKind) String() string {
	switch k {
	case Named:
		return "Named"
	case Wild:
		return "Wild"
	case ListEmpty:
		return "ListEmpty"
	case ListCons:
		return "ListCons"
	case ListOne:
		return "ListOne"
	default:
		return fmt.Sprintf("ConstructorKind(%d)", int(k))
	}
}

// Constructor names which production variant a Rule realizes. Label is
// only meaningful when Kind == Named.
type Constructor struct {
	Kind  ConstructorKind
	Label string
}

func (c Constructor) String() string {
	if c.Kind == Named {
		return c.Label
	}
	return c.Kind.String()
}

// Rule is one flat, atomic production: Constructor: LHS -> RHS (RHS may
// be empty).
type Rule struct {
	Constructor Constructor
	LHS         symbol.Symbol
	RHS         []symbol.Symbol
}

func (r Rule) String() string {
	return fmt.Sprintf("[%s] %s -> %v", r.Constructor, r.LHS, r.RHS)
}

// Grammar is the normalized, flat form of a gast.Grammar: every symbol
// appearing anywhere in Rules is reachable from Terms ∪ Nonterms ∪ {S',
// EOF}.
type Grammar struct {
	Terms    []symbol.Symbol
	Nonterms []symbol.Symbol
	Rules    []Rule
	Start    symbol.Symbol
}

// RulesFor returns, in textual (insertion) order, every rule whose LHS
// equals lhs.
func (g *Grammar) RulesFor(lhs symbol.Symbol) []Rule {
	var out []Rule
	for _, r := range g.Rules {
		if r.LHS.Equal(lhs) {
			out = append(out, r)
		}
	}
	return out
}

// Normalize runs the three normalizer passes over src and produces the
// flat Grammar, or a fatal *glrerrors.UndefinedSymbol /
// *glrerrors.UnknownTokenType / *glrerrors.NonterminalRequired. warn, if
// given, receives a non-fatal diagnostic whenever a keyword's literal
// alias collides with one declared earlier (the earlier declaration still
// wins); omit it, or pass nil, to normalize silently.
func Normalize(src *gast.Grammar, warn ...func(format string, args ...any)) (*Grammar, error) {
	var warnFn func(format string, args ...any)
	if len(warn) > 0 {
		warnFn = warn[0]
	}
	n := &normalizer{
		src:   src,
		table: symbol.NewTable(),
		warn:  warnFn,
	}
	if err := n.terminalPass(); err != nil {
		return nil, err
	}
	n.categoryPass()
	if err := n.ruleExpansionPass(); err != nil {
		return nil, err
	}
	return n.finish(), nil
}

type normalizer struct {
	src       *gast.Grammar
	table     *symbol.Table
	rules     []Rule
	start     symbol.Symbol
	haveStart bool
	warn      func(format string, args ...any)
}

// terminalPass (pass 1): populate the symbol table with
// every token declaration before any nonterminal is discovered.
func (n *normalizer) terminalPass() error {
	for _, td := range n.src.TokenDecls {
		switch t := td.(type) {
		case gast.Keyword:
			_, collided, err := n.table.DeclareKeyword(t.Name, t.Literal)
			if err != nil {
				return wrapUnknownType(err, t.Name, t.Span)
			}
			if collided && n.warn != nil {
				n.warn("keyword %q: literal %q already aliased by an earlier keyword declaration, keeping the first", t.Name, t.Literal)
			}
		case gast.AttrToken:
			if _, err := n.table.DeclareAttrToken(t.Name, t.Attr); err != nil {
				return wrapUnknownType(err, t.Name, t.Span)
			}
		case gast.NoAttrToken:
			if _, err := n.table.DeclareUnitToken(t.Name); err != nil {
				return wrapUnknownType(err, t.Name, t.Span)
			}
		}
	}
	return nil
}

func wrapUnknownType(err error, name string, span gast.Span) error {
	if utt, ok := err.(*symbol.UnknownTokenType); ok {
		return &glrerrors.UnknownTokenType{Name: name, Attr: utt.Attr, Span: span}
	}
	return err
}

// categoryPass (pass 2): visit every rule head and body,
// creating nonterminal symbols for every category reference. A category
// `[X]` produces both (X, 0) and (X, 1). coercions N k creates N, N1, ...
// Nk as nonterminals.
func (n *normalizer) categoryPass() {
	declareCat := func(c gast.Category) {
		n.declareCategoryChain(c)
	}
	for _, def := range n.src.Definitions {
		switch d := def.(type) {
		case gast.Rule:
			declareCat(d.Cat)
			for _, it := range d.Items {
				if nt, ok := it.(gast.NTerminal); ok {
					declareCat(nt.Cat)
				}
			}
		case gast.Separator:
			declareCat(d.Cat)
			n.declareListLevel(d.Cat)
		case gast.Terminator:
			declareCat(d.Cat)
			n.declareListLevel(d.Cat)
		case gast.Coercions:
			for i := 1; i <= d.Level; i++ {
				n.table.Nonterminal(coercionName(d.Ident, i), 0)
			}
			n.table.Nonterminal(d.Ident, 0)
		}
	}
}

// declareCategoryChain declares (name, level) for every level from 0 up
// to the ListCat nesting depth of c.
func (n *normalizer) declareCategoryChain(c gast.Category) symbol.Symbol {
	name, level := baseNameAndLevel(c)
	for l := 0; l <= level; l++ {
		n.table.Nonterminal(name, l)
	}
	sym, _ := n.table.Lookup(name, level)
	return sym
}

func baseNameAndLevel(c gast.Category) (string, int) {
	level := 0
	for {
		if lc, ok := c.(gast.ListCat); ok {
			level++
			c = lc.Cat
			continue
		}
		break
	}
	return c.(gast.IdCat).Ident, level
}

// declareListLevel ensures the (name, level+1) "list of c" nonterminal
// that separator/terminator macros produce exists in the table.
func (n *normalizer) declareListLevel(c gast.Category) {
	name, level := baseNameAndLevel(c)
	n.table.Nonterminal(name, level+1)
}

// coercionName produces the Ni spelling (Exp1, Exp2, ...) used by
// `coercions N k`.
func coercionName(ident string, i int) string {
	return fmt.Sprintf("%s%d", ident, i)
}

// ruleExpansionPass (pass 3) produces the flat rule list,
// in textual order of definitions, fixing Start as the lhs of the first
// rule this pass emits.
func (n *normalizer) ruleExpansionPass() error {
	for _, def := range n.src.Definitions {
		switch d := def.(type) {
		case gast.Rule:
			if err := n.expandRule(d); err != nil {
				return err
			}
		case gast.Separator:
			if err := n.expandSeparator(d); err != nil {
				return err
			}
		case gast.Terminator:
			if err := n.expandTerminator(d); err != nil {
				return err
			}
		case gast.Coercions:
			if err := n.expandCoercions(d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *normalizer) emit(r Rule) {
	if !n.haveStart {
		n.start = r.LHS
		n.haveStart = true
	}
	n.rules = append(n.rules, r)
}

func (n *normalizer) resolveCat(c gast.Category) symbol.Symbol {
	name, level := baseNameAndLevel(c)
	sym, _ := n.table.Lookup(name, level)
	return sym
}

func (n *normalizer) resolveItem(it gast.Item) (symbol.Symbol, error) {
	switch v := it.(type) {
	case gast.Terminal:
		if sym, ok := n.table.ResolveTerminal(v.Literal); ok {
			return sym, nil
		}
		return symbol.Symbol{}, &glrerrors.UndefinedSymbol{Handle: v.Literal, Span: v.Span}
	case gast.NTerminal:
		name, level := baseNameAndLevel(v.Cat)
		if sym, ok := n.table.Lookup(name, level); ok {
			return sym, nil
		}
		return symbol.Symbol{}, &glrerrors.UndefinedSymbol{Handle: fmt.Sprintf("%s@%d", name, level), Span: v.Span}
	default:
		return symbol.Symbol{}, &glrerrors.UndefinedSymbol{Handle: "?", Span: it.Source()}
	}
}

func labelConstructor(l gast.Label) Constructor {
	switch v := l.(type) {
	case gast.LabelID:
		return Constructor{Kind: Named, Label: v.Ident}
	case gast.LabelWild:
		return Constructor{Kind: Wild}
	case gast.LabelListE:
		return Constructor{Kind: ListEmpty}
	case gast.LabelListCons:
		return Constructor{Kind: ListCons}
	case gast.LabelListOne:
		return Constructor{Kind: ListOne}
	default:
		return Constructor{Kind: Wild}
	}
}

// expandRule handles `L. C ::= alpha;`.
func (n *normalizer) expandRule(d gast.Rule) error {
	lhs := n.resolveCat(d.Cat)
	if lhs.Kind.IsTerminal() {
		return &glrerrors.NonterminalRequired{Handle: lhs.Name, Span: d.Span}
	}
	rhs := make([]symbol.Symbol, 0, len(d.Items))
	for _, it := range d.Items {
		sym, err := n.resolveItem(it)
		if err != nil {
			return err
		}
		rhs = append(rhs, sym)
	}
	n.emit(Rule{Constructor: labelConstructor(d.Label), LHS: lhs, RHS: rhs})
	return nil
}

// expandSeparator handles `separator [non]empty C "s"`: produces
// ListEmpty (if empty), ListOne, and ListCons rules over [C] with s
// inserted between elements.
func (n *normalizer) expandSeparator(d gast.Separator) error {
	return n.expandListMacro(d.Cat, d.Sep, d.MinSize)
}

// expandTerminator handles `terminator [non]empty C "t"`: produces
// ListEmpty (if empty), ListOne, and ListCons rules over [C] with t
// following every element, the last one included.
func (n *normalizer) expandTerminator(d gast.Terminator) error {
	elem := n.resolveCat(d.Cat)
	name, level := baseNameAndLevel(d.Cat)
	list := n.table.Nonterminal(name, level+1)
	litSym, ok := n.table.ResolveTerminal(d.Term)
	if !ok {
		return &glrerrors.UndefinedSymbol{Handle: d.Term, Span: d.Cat.Source()}
	}
	if d.MinSize == gast.MEmpty {
		n.emit(Rule{Constructor: Constructor{Kind: ListEmpty}, LHS: list, RHS: nil})
	}
	n.emit(Rule{Constructor: Constructor{Kind: ListOne}, LHS: list, RHS: []symbol.Symbol{elem, litSym}})
	n.emit(Rule{Constructor: Constructor{Kind: ListCons}, LHS: list, RHS: []symbol.Symbol{elem, litSym, list}})
	return nil
}

func (n *normalizer) expandListMacro(cat gast.Category, literal string, minSize gast.MinSize) error {
	elem := n.resolveCat(cat)
	name, level := baseNameAndLevel(cat)
	list, ok := n.table.Lookup(name, level+1)
	if !ok {
		list = n.table.Nonterminal(name, level+1)
	}

	litSym, ok := n.table.ResolveTerminal(literal)
	if !ok {
		return &glrerrors.UndefinedSymbol{Handle: literal, Span: cat.Source()}
	}

	if minSize == gast.MEmpty {
		n.emit(Rule{Constructor: Constructor{Kind: ListEmpty}, LHS: list, RHS: nil})
	}
	n.emit(Rule{Constructor: Constructor{Kind: ListOne}, LHS: list, RHS: []symbol.Symbol{elem}})

	// Right-recursive cons shape: each element is followed by the
	// separator literal and the rest of the list, so the literal only
	// ever appears between elements.
	n.emit(Rule{Constructor: Constructor{Kind: ListCons}, LHS: list, RHS: []symbol.Symbol{elem, litSym, list}})
	return nil
}

// expandCoercions handles `coercions N k`: k Wild rules Ni-1 ::= Ni for i
// in 1..k, plus one atomic parenthesization Nk ::= "(" N ")".
func (n *normalizer) expandCoercions(d gast.Coercions) error {
	lparen, ok := n.table.ResolveTerminal("(")
	if !ok {
		return &glrerrors.UndefinedSymbol{Handle: "(", Span: d.Span}
	}
	rparen, ok := n.table.ResolveTerminal(")")
	if !ok {
		return &glrerrors.UndefinedSymbol{Handle: ")", Span: d.Span}
	}

	base, _ := n.table.Lookup(d.Ident, 0)
	prev := base
	for i := 1; i <= d.Level; i++ {
		cur, _ := n.table.Lookup(coercionName(d.Ident, i), 0)
		n.emit(Rule{Constructor: Constructor{Kind: Wild}, LHS: prev, RHS: []symbol.Symbol{cur}})
		prev = cur
	}
	// atomic parenthesization: Nk ::= "(" N ")"
	n.emit(Rule{Constructor: Constructor{Kind: Wild}, LHS: prev, RHS: []symbol.Symbol{lparen, base, rparen}})
	return nil
}

func (n *normalizer) finish() *Grammar {
	var terms, nonterms []symbol.Symbol
	for _, s := range n.table.Symbols() {
		if s.Kind.IsTerminal() {
			terms = append(terms, s)
		} else {
			nonterms = append(nonterms, s)
		}
	}
	return &Grammar{
		Terms:    terms,
		Nonterms: nonterms,
		Rules:    n.rules,
		Start:    n.start,
	}
}
