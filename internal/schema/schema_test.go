package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DawidvC/proglr/internal/grammar"
	"github.com/DawidvC/proglr/internal/symbol"
)

func exprGrammar() *grammar.Grammar {
	table := symbol.NewTable()
	Exp := table.Nonterminal("Exp", 0)
	Exp1 := table.Nonterminal("Exp1", 0)
	Exp2 := table.Nonterminal("Exp2", 0)
	integer, _ := table.DeclareAttrToken("Integer", "int")
	plus, _, _ := table.DeclareKeyword("Plus", "+")
	lparen, _, _ := table.DeclareKeyword("LParen", "(")
	rparen, _, _ := table.DeclareKeyword("RParen", ")")

	return &grammar.Grammar{
		Terms:    []symbol.Symbol{integer, plus, lparen, rparen},
		Nonterms: []symbol.Symbol{Exp, Exp1, Exp2},
		Start:    Exp,
		Rules: []grammar.Rule{
			{Constructor: grammar.Constructor{Kind: grammar.Named, Label: "EAdd"}, LHS: Exp, RHS: []symbol.Symbol{Exp, plus, Exp1}},
			{Constructor: grammar.Constructor{Kind: grammar.Named, Label: "ELit"}, LHS: Exp1, RHS: []symbol.Symbol{integer}},
			{Constructor: grammar.Constructor{Kind: grammar.Wild}, LHS: Exp, RHS: []symbol.Symbol{Exp1}},
			{Constructor: grammar.Constructor{Kind: grammar.Wild}, LHS: Exp1, RHS: []symbol.Symbol{Exp2}},
			{Constructor: grammar.Constructor{Kind: grammar.Wild}, LHS: Exp2, RHS: []symbol.Symbol{lparen, Exp, rparen}},
		},
	}
}

func Test_Derive_MergesCoercionLevelsByBaseName(t *testing.T) {
	assert := assert.New(t)
	sums := Derive(exprGrammar())

	_, ok := sums["Exp"]
	assert.True(ok)
	_, hasExp1 := sums["Exp1"]
	assert.False(hasExp1, "Exp1's Named cases must be merged under base name Exp")
}

func Test_Derive_NamedCasesCarrySpanPlusFields(t *testing.T) {
	assert := assert.New(t)
	sums := Derive(exprGrammar())

	sum := sums["Exp"]
	var eadd, elit *Case
	for i := range sum.Cases {
		switch sum.Cases[i].Label {
		case "EAdd":
			eadd = &sum.Cases[i]
		case "ELit":
			elit = &sum.Cases[i]
		}
	}
	if assert.NotNil(eadd) {
		assert.Len(eadd.Fields, 2, "unit terminal '+' carries no value, so only the two Exp operands are fields")
		assert.Equal(NonterminalField, eadd.Fields[0].Kind)
		assert.Equal("Exp", eadd.Fields[0].BaseName)
	}
	if assert.NotNil(elit) {
		assert.Len(elit.Fields, 1)
		assert.Equal(AtomicField, elit.Fields[0].Kind)
		assert.Equal("int", elit.Fields[0].Atomic)
	}
}

func Test_StripTrailingDigits(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "no digits", input: "Exp", expect: "Exp"},
		{name: "one digit", input: "Exp1", expect: "Exp"},
		{name: "two digits", input: "Exp12", expect: "Exp"},
		{name: "all digits", input: "123", expect: "123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, stripTrailingDigits(tc.input))
		})
	}
}

func Test_OrderedBaseNames_IsSorted(t *testing.T) {
	assert := assert.New(t)
	sums := Derive(exprGrammar())
	names := OrderedBaseNames(sums)

	for i := 1; i < len(names); i++ {
		assert.True(names[i-1] < names[i])
	}
}
