package gastio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DawidvC/proglr/internal/gast"
)

const sampleGrammar = `
[[token]]
name = "Integer"
attr = "int"

[[token]]
name = "Plus"
literal = "+"

[[def]]
type = "rule"
label = "EAdd"
cat = "Exp"
items = ["Exp", "\"+\"", "Exp1"]

[[def]]
type = "rule"
label = "ELit"
cat = "Exp1"
items = ["Integer"]

[[def]]
type = "coercions"
ident = "Exp"
level = 1
`

func Test_LoadFile_DecodesTokensAndRules(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "arith.toml")
	assert.NoError(os.WriteFile(path, []byte(sampleGrammar), 0o644))

	g, err := LoadFile(path)
	assert.NoError(err)
	assert.Len(g.TokenDecls, 2)
	assert.Len(g.Definitions, 3)

	attr, ok := g.TokenDecls[0].(gast.AttrToken)
	assert.True(ok)
	assert.Equal("int", attr.Attr)

	kw, ok := g.TokenDecls[1].(gast.Keyword)
	assert.True(ok)
	assert.Equal("+", kw.Literal)

	rule, ok := g.Definitions[0].(gast.Rule)
	assert.True(ok)
	assert.Len(rule.Items, 3)
	_, isTerminal := rule.Items[1].(gast.Terminal)
	assert.True(isTerminal)
}

func Test_ParseCategory_ListNesting(t *testing.T) {
	assert := assert.New(t)

	cat := parseCategory("[[Exp]]")
	outer, ok := cat.(gast.ListCat)
	assert.True(ok)
	inner, ok := outer.Cat.(gast.ListCat)
	assert.True(ok)
	base, ok := inner.Cat.(gast.IdCat)
	assert.True(ok)
	assert.Equal("Exp", base.Ident)
}

func Test_ParseLabel_ReservedSpellings(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "wild", input: "_"},
		{name: "list empty", input: "[]"},
		{name: "list cons", input: "(:)"},
		{name: "list one", input: "(:[])"},
		{name: "named", input: "EAdd"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			label := parseLabel(tc.input)
			assert.NotNil(t, label)
		})
	}
}
