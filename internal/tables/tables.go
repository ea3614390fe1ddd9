// Package tables derives the glrrt.Tables (state action/goto cells) a
// built automaton implies. It is shared by internal/emit (which renders
// the result as Go source literals for a generated parser package) and
// cmd/proglr-repl (which feeds the result straight to glrrt.Run without
// generating any source at all), so the two never drift out of sync on
// what a state's table cells should contain.
package tables

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DawidvC/proglr/internal/automaton"
	"github.com/DawidvC/proglr/internal/glrrt"
	"github.com/DawidvC/proglr/internal/grammar"
	"github.com/DawidvC/proglr/internal/item"
	"github.com/DawidvC/proglr/internal/symbol"
)

// Build derives the full Tables value for g's automaton aut.
func Build(g *grammar.Grammar, aut *automaton.Automaton) glrrt.Tables {
	ruleIndex := make(map[string]int, len(g.Rules))
	for i, r := range g.Rules {
		ruleIndex[RuleKey(r)] = i
	}

	t := glrrt.Tables{
		Start:  aut.Start,
		Action: map[int]map[string][]glrrt.Action{},
		Goto:   map[int]map[string]int{},
	}

	for _, id := range aut.Pool.IDs() {
		I, _ := aut.Pool.ValueOf(id)

		reduceItems, _ := item.Partition(I)
		for _, it := range reduceItems {
			r := grammar.Rule{Constructor: it.Constructor, LHS: it.LHS, RHS: append(it.Before, it.After...)}
			idx, ok := ruleIndex[RuleKey(r)]
			if !ok {
				continue
			}
			act := glrrt.Action{Kind: glrrt.Reduce, Rule: idx, Count: len(r.RHS), LHS: r.LHS.String()}
			if it.LHS.Equal(symbol.StartPrime) {
				act = glrrt.Action{Kind: glrrt.Accept}
			}
			for _, la := range FollowApprox(g, it.LHS) {
				addAction(t.Action, id, la, act)
			}
		}

		for _, tr := range aut.TransitionsFrom(id) {
			if tr.Symbol.Kind.IsTerminal() {
				addAction(t.Action, id, tr.Symbol.Name, glrrt.Action{Kind: glrrt.Shift, To: tr.To})
				continue
			}
			if t.Goto[id] == nil {
				t.Goto[id] = map[string]int{}
			}
			t.Goto[id][tr.Symbol.String()] = tr.To
		}
	}
	return t
}

func addAction(m map[int]map[string][]glrrt.Action, state int, term string, act glrrt.Action) {
	if m[state] == nil {
		m[state] = map[string][]glrrt.Action{}
	}
	m[state][term] = append(m[state][term], act)
}

// RuleKey is the stable textual key used to find a rule's index from an
// item's reconstructed (constructor, lhs, rhs) triple.
func RuleKey(r grammar.Rule) string {
	parts := make([]string, len(r.RHS))
	for i, s := range r.RHS {
		parts[i] = s.String()
	}
	return fmt.Sprintf("%s/%s -> %s", r.Constructor, r.LHS, strings.Join(parts, " "))
}

// FollowApprox conservatively admits every terminal (plus EOF) as a
// possible lookahead for a reduction of lhs. Over-admitting is harmless
// to the GLR driver: a reduction whose goto is undefined is dropped by
// glrrt.applyReduce, so a spurious lookahead only spawns a thread that
// dies.
func FollowApprox(g *grammar.Grammar, lhs symbol.Symbol) []string {
	if lhs.Equal(symbol.StartPrime) {
		return []string{"EOF"}
	}
	out := make([]string, 0, len(g.Terms)+1)
	for _, t := range g.Terms {
		out = append(out, t.Name)
	}
	return append(out, "EOF")
}

// Ints returns a sorted copy of ids, for deterministic state iteration
// order.
func Ints(ids []int) []int {
	out := append([]int{}, ids...)
	sort.Ints(out)
	return out
}
