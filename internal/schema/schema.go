// Package schema implements the AST schema deriver: for every base
// nonterminal name, the set of Named constructors whose lhs shares that
// base name at level 0, each with the ordered list of value-carrying
// payload types its right-hand side implies.
package schema

import (
	"sort"

	"github.com/DawidvC/proglr/internal/grammar"
	"github.com/DawidvC/proglr/internal/symbol"
)

// FieldKind distinguishes an atomic (terminal attribute) payload field
// from a nonterminal one.
type FieldKind int

const (
	AtomicField FieldKind = iota
	NonterminalField
)

// Field is one payload slot of a Case: either an atomic type (int,
// string, rune, float64) or a reference to another base nonterminal's
// sum type, wrapped in ListLevel list constructors.
type Field struct {
	Kind      FieldKind
	Atomic    string // valid when Kind == AtomicField
	BaseName  string // valid when Kind == NonterminalField
	ListLevel int    // valid when Kind == NonterminalField
}

// Case is one Named constructor of a base nonterminal's sum type. Every
// case carries a source span whether or not it has any other payload.
type Case struct {
	Label  string
	Fields []Field
}

// Sum is the derived sum-of-products schema for one base nonterminal
// name. The overall schema (the map Derive returns) is mutually
// recursive: a Field of NonterminalField kind names another Sum in the
// same map.
type Sum struct {
	BaseName string
	Cases    []Case
}

// stripTrailingDigits implements the "strip trailing decimal digits to
// merge coercion levels" rule: Exp1, Exp2, ... all
// derive from base name Exp.
func stripTrailingDigits(name string) string {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	if i == 0 {
		// an all-digit name has no letter prefix to fall back to; treat
		// it as its own base rather than collapsing to the empty string.
		return name
	}
	return name[:i]
}

func atomicTypeOf(k symbol.Kind) (string, bool) {
	switch k {
	case symbol.IntTerminal:
		return "int", true
	case symbol.StringTerminal:
		return "string", true
	case symbol.CharTerminal:
		return "rune", true
	case symbol.RealTerminal:
		return "float64", true
	default:
		return "", false
	}
}

// Derive builds the mutually-recursive schema map (base name -> Sum) for
// every nonterminal in g.
func Derive(g *grammar.Grammar) map[string]Sum {
	sums := make(map[string]Sum)

	// seed every base name so a nonterminal with zero Named productions
	// at level 0 (e.g. a pure coercion chain) still gets an (empty) case
	// list entry.
	for _, nt := range g.Nonterms {
		if nt.Level != 0 {
			continue
		}
		base := stripTrailingDigits(nt.Name)
		if _, ok := sums[base]; !ok {
			sums[base] = Sum{BaseName: base}
		}
	}

	for _, r := range g.Rules {
		if r.Constructor.Kind != grammar.Named {
			continue
		}
		if r.LHS.Level != 0 {
			continue
		}
		base := stripTrailingDigits(r.LHS.Name)

		var fields []Field
		for _, s := range r.RHS {
			if s.Kind == symbol.Nonterminal {
				fields = append(fields, Field{
					Kind:      NonterminalField,
					BaseName:  stripTrailingDigits(s.Name),
					ListLevel: s.Level,
				})
				continue
			}
			if s.Kind == symbol.UnitTerminal {
				continue // unit terminals carry no value
			}
			atomic, _ := atomicTypeOf(s.Kind)
			fields = append(fields, Field{Kind: AtomicField, Atomic: atomic})
		}

		sum := sums[base]
		sum.BaseName = base
		sum.Cases = append(sum.Cases, Case{Label: r.Constructor.Label, Fields: fields})
		sums[base] = sum
	}

	return sums
}

// OrderedBaseNames returns the schema's base names sorted lexically, for
// callers (the emitter) that need a deterministic traversal order over
// the mutually-recursive map.
func OrderedBaseNames(sums map[string]Sum) []string {
	names := make([]string, 0, len(sums))
	for n := range sums {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
