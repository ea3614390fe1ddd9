package glrrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sliceLexer struct {
	toks []Token
	pos  int
}

func (l *sliceLexer) Next() (Token, bool, error) {
	if l.pos >= len(l.toks) {
		return Token{}, false, nil
	}
	t := l.toks[l.pos]
	l.pos++
	return t, true, nil
}

// trivialTables realizes S' -> S ; S -> a over three states: state 0
// shifts "a" to state 1, state 1 reduces S -> a (rule 0) on EOF and
// goes to state 2, state 2 accepts on EOF.
func trivialTables() Tables {
	return Tables{
		Start: 0,
		Action: map[int]map[string][]Action{
			0: {"a": {{Kind: Shift, To: 1}}},
			1: {"EOF": {{Kind: Reduce, Rule: 0, Count: 1, LHS: "S"}}},
			2: {"EOF": {{Kind: Accept}}},
		},
		Goto: map[int]map[string]int{
			0: {"S": 2},
		},
	}
}

func Test_Run_AcceptsSimpleInput(t *testing.T) {
	assert := assert.New(t)

	lex := &sliceLexer{toks: []Token{{Kind: "a", Text: "a"}}}
	results, err := Run(trivialTables(), lex, func(rule int, children []Value) (Value, error) {
		return "S(" + children[0].(Token).Text + ")", nil
	})

	assert.NoError(err)
	assert.Equal([]Value{"S(a)"}, results)
}

func Test_Run_RejectsUnexpectedToken(t *testing.T) {
	assert := assert.New(t)

	lex := &sliceLexer{toks: []Token{{Kind: "b", Text: "b"}}}
	_, err := Run(trivialTables(), lex, func(rule int, children []Value) (Value, error) {
		return nil, nil
	})

	assert.Error(err)
}

func Test_Run_ForksOnAmbiguousAction(t *testing.T) {
	assert := assert.New(t)

	// state 0 on "a" admits two actions (a deliberate shift/shift-style
	// conflict for test purposes): each forked thread ends in its own
	// accept state.
	tables := Tables{
		Start: 0,
		Action: map[int]map[string][]Action{
			0: {"a": {{Kind: Shift, To: 1}, {Kind: Shift, To: 2}}},
			1: {"EOF": {{Kind: Accept}}},
			2: {"EOF": {{Kind: Accept}}},
		},
	}

	lex := &sliceLexer{toks: []Token{{Kind: "a", Text: "a"}}}
	results, err := Run(tables, lex, func(rule int, children []Value) (Value, error) {
		return nil, nil
	})

	var ambig *Ambiguous
	assert.ErrorAs(err, &ambig)
	assert.Equal(2, ambig.Count)
	assert.Len(results, 2)
}
