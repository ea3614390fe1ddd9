package automaton

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DawidvC/proglr/internal/grammar"
	"github.com/DawidvC/proglr/internal/item"
	"github.com/DawidvC/proglr/internal/symbol"
)

// dragonGrammar realizes S -> C C ; C -> c C | d ; (Purple Dragon 4.45).
func dragonGrammar() *grammar.Grammar {
	table := symbol.NewTable()
	S := table.Nonterminal("S", 0)
	C := table.Nonterminal("C", 0)
	c, _ := table.DeclareUnitToken("c")
	d, _ := table.DeclareUnitToken("d")

	return &grammar.Grammar{
		Terms:    []symbol.Symbol{c, d},
		Nonterms: []symbol.Symbol{S, C},
		Start:    S,
		Rules: []grammar.Rule{
			{Constructor: grammar.Constructor{Kind: grammar.Named, Label: "S"}, LHS: S, RHS: []symbol.Symbol{C, C}},
			{Constructor: grammar.Constructor{Kind: grammar.Named, Label: "Cc"}, LHS: C, RHS: []symbol.Symbol{c, C}},
			{Constructor: grammar.Constructor{Kind: grammar.Named, Label: "Cd"}, LHS: C, RHS: []symbol.Symbol{d}},
		},
	}
}

func Test_Build_ProducesExpectedStateCount(t *testing.T) {
	assert := assert.New(t)
	g := dragonGrammar()

	aut := Build(g, nil)
	// the classic textbook worked example has exactly 10 canonical LR(0)
	// states for this grammar.
	assert.Equal(10, aut.Pool.Len())
}

func Test_Build_TransitionsAreFunctional(t *testing.T) {
	assert := assert.New(t)
	g := dragonGrammar()
	aut := Build(g, nil)

	type cell struct {
		from int
		sym  string
	}
	seen := map[cell]int{}
	for _, tr := range aut.Transitions {
		k := cell{from: tr.From, sym: tr.Symbol.String()}
		if to, ok := seen[k]; ok {
			assert.Equal(to, tr.To, "each (state, symbol) pair must map to exactly one destination")
			continue
		}
		seen[k] = tr.To
	}
}

func Test_Build_AcceptStateReachable(t *testing.T) {
	assert := assert.New(t)
	g := dragonGrammar()
	aut := Build(g, nil)

	foundAccept := false
	for _, id := range aut.Pool.IDs() {
		if aut.AcceptState(id) {
			foundAccept = true
		}
	}
	assert.True(foundAccept)
}

type recordingReporter struct {
	states      int
	transitions int
}

func (r *recordingReporter) StateDiscovered(n int, items item.Set) { r.states++ }
func (r *recordingReporter) TransitionAdded(t Transition)          { r.transitions++ }

func Test_Build_ReportsEveryDiscoveredState(t *testing.T) {
	assert := assert.New(t)
	g := dragonGrammar()

	rec := &recordingReporter{}
	aut := Build(g, rec)

	assert.Equal(aut.Pool.Len(), rec.states)
	assert.Equal(len(aut.Transitions), rec.transitions)
}

func Test_WriteDOT_IncludesEveryState(t *testing.T) {
	assert := assert.New(t)
	g := dragonGrammar()
	aut := Build(g, nil)

	var sb strings.Builder
	aut.WriteDOT(&sb)
	out := sb.String()

	assert.Contains(out, "digraph automaton")
	for _, id := range aut.Pool.IDs() {
		assert.Contains(out, fmt.Sprintf("s%d", id))
	}
}
