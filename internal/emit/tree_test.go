package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Printer_Print_SumType(t *testing.T) {
	assert := assert.New(t)

	mod := Module{
		Name: "test.grammar",
		Decls: []Decl{
			SumTypeDecl{
				Name: "Exp",
				Cases: []SumCase{
					{Name: "EAdd", Fields: []Field{{Name: "Span", Type: "Span"}, {Name: "V1", Type: "Exp"}}},
					{Name: "ELit", Fields: []Field{{Name: "Span", Type: "Span"}, {Name: "V1", Type: "int"}}},
				},
			},
		},
	}

	out := NewPrinter("parser").Print(mod)

	assert.Contains(out, "package parser")
	assert.Contains(out, "type Exp interface { isExp() }")
	assert.Contains(out, "type EAdd struct {")
	assert.Contains(out, "V1 Exp")
	assert.Contains(out, "func (EAdd) isExp() {}")
	assert.Contains(out, "func (ELit) isExp() {}")
}

func Test_Printer_Print_FuncClauseGroup(t *testing.T) {
	assert := assert.New(t)

	mod := Module{
		Name: "test.grammar",
		Decls: []Decl{
			FuncClauseGroup{
				Name:      "reduce",
				Params:    []Field{{Name: "rule", Type: "int"}},
				Returns:   []string{"string"},
				Scrutinee: "rule",
				Clauses: []Clause{
					{Pattern: "0", Body: Atom{Text: `"zero"`}},
				},
				Default: Atom{Text: `"?"`},
			},
		},
	}

	out := NewPrinter("parser").Print(mod)
	assert.Contains(out, "func reduce(rule int) string {")
	assert.Contains(out, "switch rule {")
	assert.Contains(out, `case 0:`)
	assert.Contains(out, `"zero"`)
}

func Test_Printer_PrintExpr_WrapsLongInlineExpressions(t *testing.T) {
	assert := assert.New(t)

	longArgs := make([]Expr, 0, 20)
	for i := 0; i < 20; i++ {
		longArgs = append(longArgs, Atom{Text: "argument_value_needs_space"})
	}
	mod := Module{
		Name: "test",
		Decls: []Decl{
			ValueBinding{Name: "x", Type: "string", Value: AppExpr{Fn: "build", Args: longArgs}},
		},
	}

	out := NewPrinter("parser").Print(mod)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	var longest int
	for _, l := range lines {
		if len(l) > longest {
			longest = len(l)
		}
	}
	assert.Greater(len(lines), 1)
	assert.LessOrEqual(longest, 2*inlineWidth, "a call far wider than the column budget must be broken across lines")
}

func Test_RawExpr_PrintedVerbatim(t *testing.T) {
	assert := assert.New(t)

	mod := Module{
		Name: "test",
		Decls: []Decl{
			ValueBinding{Name: "m", Type: "map[string]int", Value: RawExpr{Text: "map[string]int{\n\t\"a\": 1,\n}"}},
		},
	}

	out := NewPrinter("parser").Print(mod)
	assert.Contains(out, "\"a\": 1,")
}
