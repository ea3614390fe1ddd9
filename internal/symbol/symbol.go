// Package symbol canonicalizes grammatical symbols: (name, level, kind)
// triples, plus the table that assigns terminal kinds from token
// declarations before any nonterminal is discovered.
package symbol

import "fmt"

// Kind is the grammatical category a Symbol belongs to.
type Kind int

const (
	Nonterminal Kind = iota
	UnitTerminal
	IntTerminal
	StringTerminal
	CharTerminal
	RealTerminal
)

func (k Kind) String() string {
	switch k {
	case Nonterminal:
		return "Nonterminal"
	case UnitTerminal:
		return "UnitTerminal"
	case IntTerminal:
		return "IntTerminal"
	case StringTerminal:
		return "StringTerminal"
	case CharTerminal:
		return "CharTerminal"
	case RealTerminal:
		return "RealTerminal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsTerminal reports whether k is any of the terminal kinds.
func (k Kind) IsTerminal() bool {
	return k != Nonterminal
}

// Symbol is a grammatical symbol: a name, its list-nesting level (0 for
// the base category, 1 for `[Cat]`, 2 for `[[Cat]]`, ...), and its kind.
// Equality is structural over the triple.
type Symbol struct {
	Name  string
	Level int
	Kind  Kind
}

// Equal reports whether s and o denote the same symbol.
func (s Symbol) Equal(o Symbol) bool {
	return s.Name == o.Name && s.Level == o.Level && s.Kind == o.Kind
}

// String renders the symbol the way it would appear on a rule's
// right-hand side: the base name wrapped in Level pairs of brackets.
func (s Symbol) String() string {
	str := s.Name
	for i := 0; i < s.Level; i++ {
		str = "[" + str + "]"
	}
	return str
}

// key is the identity used for lookups: level does not appear in the
// name alone, so (name, level) is the true key.
func key(name string, level int) string {
	return fmt.Sprintf("%d:%s", level, name)
}

// StartPrime is the synthetic augmenting start symbol S'. It is never the
// lhs of a user rule and never appears in a user rule's right-hand side.
var StartPrime = Symbol{Name: "S'", Level: 0, Kind: Nonterminal}

// EOF is the reserved end-of-input unit terminal.
var EOF = Symbol{Name: "EOF", Level: 0, Kind: UnitTerminal}

// Table canonicalizes symbols for a single grammar. It guarantees that,
// within the table's lifetime, the pair (name, level) determines kind.
type Table struct {
	byKey   map[string]Symbol
	aliases map[string]Symbol // literal spelling -> symbol, first wins
	order   []Symbol
}

// NewTable builds an empty table seeded with the two reserved symbols.
func NewTable() *Table {
	t := &Table{
		byKey:   make(map[string]Symbol),
		aliases: make(map[string]Symbol),
	}
	t.intern(StartPrime)
	t.intern(EOF)
	return t
}

func (t *Table) intern(s Symbol) Symbol {
	k := key(s.Name, s.Level)
	if existing, ok := t.byKey[k]; ok {
		return existing
	}
	t.byKey[k] = s
	t.order = append(t.order, s)
	return s
}

// UnknownTokenType is returned by DeclareAttrToken when attr isn't one of
// the recognized attribute type strings.
type UnknownTokenType struct {
	Name string
	Attr string
}

func (e *UnknownTokenType) Error() string {
	return fmt.Sprintf("token %q declares unknown attribute type %q", e.Name, e.Attr)
}

// IncompatibleKind is returned when a token name is redeclared with a
// kind that conflicts with its first declaration.
type IncompatibleKind struct {
	Name string
	Had  Kind
	Got  Kind
}

func (e *IncompatibleKind) Error() string {
	return fmt.Sprintf("token %q already declared as %s, cannot redeclare as %s", e.Name, e.Had, e.Got)
}

func attrKind(attr string) (Kind, bool) {
	switch attr {
	case "string":
		return StringTerminal, true
	case "int":
		return IntTerminal, true
	case "char":
		return CharTerminal, true
	case "real":
		return RealTerminal, true
	default:
		return Nonterminal, false
	}
}

// DeclareAttrToken registers a terminal with an attribute-carrying kind.
// Duplicate declarations with a compatible kind are silently merged;
// incompatible kinds are fatal (IncompatibleKind).
func (t *Table) DeclareAttrToken(name, attr string) (Symbol, error) {
	kind, ok := attrKind(attr)
	if !ok {
		return Symbol{}, &UnknownTokenType{Name: name, Attr: attr}
	}
	return t.declareTerminal(name, kind)
}

// DeclareUnitToken registers a valueless terminal.
func (t *Table) DeclareUnitToken(name string) (Symbol, error) {
	return t.declareTerminal(name, UnitTerminal)
}

// DeclareKeyword registers a unit terminal under name and additionally
// registers literal as an alias resolving to the same symbol. If literal
// was already aliased (by an earlier keyword declaration), the earlier
// declaration wins and the alias is left untouched; collided reports this
// case so a caller that wants to surface it (rather than merge silently)
// can do so.
func (t *Table) DeclareKeyword(name, literal string) (sym Symbol, collided bool, err error) {
	sym, err = t.declareTerminal(name, UnitTerminal)
	if err != nil {
		return Symbol{}, false, err
	}
	if existing, taken := t.aliases[literal]; taken {
		return sym, !existing.Equal(sym), nil
	}
	t.aliases[literal] = sym
	return sym, false, nil
}

func (t *Table) declareTerminal(name string, kind Kind) (Symbol, error) {
	k := key(name, 0)
	if existing, ok := t.byKey[k]; ok {
		if existing.Kind != kind {
			return Symbol{}, &IncompatibleKind{Name: name, Had: existing.Kind, Got: kind}
		}
		return existing, nil
	}
	return t.intern(Symbol{Name: name, Level: 0, Kind: kind}), nil
}

// Nonterminal returns (creating if necessary) the nonterminal symbol
// (name, level). A category `[X]` produces both (X, 0) and (X, 1); a
// level-L symbol always implies the existence of the same-name symbol at
// every level below L, which callers should request individually when
// walking ListCat chains.
func (t *Table) Nonterminal(name string, level int) Symbol {
	return t.intern(Symbol{Name: name, Level: level, Kind: Nonterminal})
}

// Lookup resolves a bare name/level pair already known to the table.
func (t *Table) Lookup(name string, level int) (Symbol, bool) {
	s, ok := t.byKey[key(name, level)]
	return s, ok
}

// ResolveTerminal resolves a right-hand-side literal spelling to its
// terminal symbol, checking both the canonical name and any registered
// keyword alias.
func (t *Table) ResolveTerminal(spelling string) (Symbol, bool) {
	if s, ok := t.byKey[key(spelling, 0)]; ok && s.Kind.IsTerminal() {
		return s, true
	}
	if s, ok := t.aliases[spelling]; ok {
		return s, true
	}
	return Symbol{}, false
}

// Symbols returns every interned symbol in first-seen order.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, len(t.order))
	copy(out, t.order)
	return out
}
