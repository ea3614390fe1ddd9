// Package automaton implements the canonical-collection builder: a
// worklist driver that produces the numbered canonical collection of
// LR(0) states and the labeled GOTO/transition graph, via the intern
// pool of package pool.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DawidvC/proglr/internal/grammar"
	"github.com/DawidvC/proglr/internal/item"
	"github.com/DawidvC/proglr/internal/pool"
	"github.com/DawidvC/proglr/internal/symbol"
)

// Transition is a single labeled edge of the automaton: From -Symbol->
// To. Each (From, Symbol) pair appears at most once across an
// Automaton's Transitions.
type Transition struct {
	From   int
	Symbol symbol.Symbol
	To     int
}

func (t Transition) String() string {
	return fmt.Sprintf("%d =(%s)=> %d", t.From, t.Symbol, t.To)
}

// Automaton is the result of building the canonical LR(0) item-set
// collection for a grammar: a pool of numbered states (state 0 is always
// the start) plus the transition set between them.
type Automaton struct {
	Pool        *pool.Pool[item.Set]
	Transitions []Transition
	Start       int
	gPrime      *grammar.Grammar
}

// Reporter receives progress notifications while the automaton is being
// built; nil is a valid Reporter (no-op). Wired to the diagnostic
// package's pterm-backed implementation from the CLI.
type Reporter interface {
	StateDiscovered(n int, items item.Set)
	TransitionAdded(t Transition)
}

// Build augments g with the virtual start rule S' -> start (constructor
// Wild), then runs the worklist loop to produce the
// automaton. report may be nil.
func Build(g *grammar.Grammar, report Reporter) *Automaton {
	gPrime := augment(g)

	p := pool.New[item.Set]()
	startItem := item.FromRule(gPrime.RulesFor(symbol.StartPrime)[0])
	startSet := item.Closure(item.NewSet(startItem), gPrime)

	startID, _ := p.Intern(startSet)
	if report != nil {
		report.StateDiscovered(startID, startSet)
	}

	aut := &Automaton{Pool: p, Start: startID, gPrime: gPrime}

	worklist := []int{startID}
	for len(worklist) > 0 {
		n := worklist[0]
		worklist = worklist[1:]

		I, _ := p.ValueOf(n)
		for _, x := range item.NextSymbols(I) {
			J := item.Goto(I, x, gPrime)

			// Pool-vs-new test: wasNew is captured at the
			// moment of interning, not by re-querying the pool
			// afterward, so we can correctly classify newness even
			// though Intern below mutates the pool.
			id, wasNew := p.Intern(J)

			t := Transition{From: n, Symbol: x, To: id}
			aut.Transitions = append(aut.Transitions, t)
			if report != nil {
				report.TransitionAdded(t)
			}

			if wasNew {
				worklist = append(worklist, id)
				if report != nil {
					report.StateDiscovered(id, J)
				}
			}
		}
	}

	return aut
}

// augment returns a copy of g with a synthetic rule S' -> start
// (constructor Wild) prepended conceptually (it is looked up directly by
// Build, so append order doesn't matter for correctness, only for the
// rule list a caller might print).
func augment(g *grammar.Grammar) *grammar.Grammar {
	augmented := &grammar.Grammar{
		Terms:    g.Terms,
		Nonterms: append(append([]symbol.Symbol{}, g.Nonterms...), symbol.StartPrime),
		Start:    g.Start,
	}
	augmented.Rules = append([]grammar.Rule{{
		Constructor: grammar.Constructor{Kind: grammar.Wild},
		LHS:         symbol.StartPrime,
		RHS:         []symbol.Symbol{g.Start},
	}}, g.Rules...)
	return augmented
}

// AcceptState reports whether state n holds the reduce item
// S' -> start . that marks acceptance. Returns false if n has no such
// reduce item or is not a state of the pool.
func (a *Automaton) AcceptState(n int) bool {
	I, ok := a.Pool.ValueOf(n)
	if !ok {
		return false
	}
	for _, it := range I {
		if it.LHS.Equal(symbol.StartPrime) && it.IsReduce() {
			return true
		}
	}
	return false
}

// TransitionsFrom returns every transition whose From equals n, in the
// order they were added during Build.
func (a *Automaton) TransitionsFrom(n int) []Transition {
	var out []Transition
	for _, t := range a.Transitions {
		if t.From == n {
			out = append(out, t)
		}
	}
	return out
}

// WriteDOT renders the automaton as a Graphviz DOT digraph. The actual
// `dot` invocation is the responsibility of the external CLI shell
// (the generator never shells out to Graphviz itself); this method only owns
// producing the abstract graph text the renderer consumes.
func (a *Automaton) WriteDOT(w *strings.Builder) {
	ids := a.Pool.IDs()
	sort.Ints(ids)

	w.WriteString("digraph automaton {\n")
	w.WriteString("  rankdir=LR;\n")
	for _, id := range ids {
		shape := "box"
		if a.AcceptState(id) {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "  s%d [shape=%s, label=%q];\n", id, shape, fmt.Sprintf("S%d", id))
	}
	for _, t := range a.Transitions {
		fmt.Fprintf(w, "  s%d -> s%d [label=%q];\n", t.From, t.To, t.Symbol.String())
	}
	w.WriteString("}\n")
}
