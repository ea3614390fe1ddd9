/*
Proglr-repl is an interactive shell for driving a freshly-built GLR
automaton over whitespace-split sample input, for iterating on a
grammar file without regenerating and recompiling a parser package
each time.

Usage:

	proglr-repl GRAMMAR_FILE

Tokens are typed one whitespace-separated word at a time; a word equal
to a declared terminal's name (e.g. If, not its literal spelling "if")
is classified as that terminal, otherwise it is offered, in declaration
order, to the grammar's int, real and string attribute tokens, taking
the first one willing to parse it. Keyword literal spellings are not
recognized and char tokens are never tried. Quit with Ctrl-D.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/DawidvC/proglr/internal/automaton"
	"github.com/DawidvC/proglr/internal/diagnostic"
	"github.com/DawidvC/proglr/internal/gastio"
	"github.com/DawidvC/proglr/internal/glrrt"
	"github.com/DawidvC/proglr/internal/grammar"
	"github.com/DawidvC/proglr/internal/symbol"
	"github.com/DawidvC/proglr/internal/tables"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: proglr-repl GRAMMAR_FILE")
		os.Exit(1)
	}

	src, err := gastio.LoadFile(os.Args[1])
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	reporter := diagnostic.NewReporter(false)
	g, err := grammar.Normalize(src, reporter.Warn)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}

	aut := automaton.Build(g, reporter)
	reporter.Summary()

	tbl := tables.Build(g, aut)

	repl, err := readline.New("proglr> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	defer repl.Close()

	pterm.Info.Println("enter whitespace-separated sample input; Ctrl-D to quit")
	for {
		line, err := repl.Readline()
		if err == io.EOF {
			return
		}
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runLine(tbl, g.Terms, line)
	}
}

func runLine(tbl glrrt.Tables, terms []symbol.Symbol, line string) {
	lex := &replLexer{words: strings.Fields(line), terms: terms}
	results, err := glrrt.Run(tbl, lex, func(rule int, children []glrrt.Value) (glrrt.Value, error) {
		return fmt.Sprintf("(#%d %v)", rule, children), nil
	})
	if err != nil {
		if _, ok := err.(*glrrt.Ambiguous); !ok {
			pterm.Error.Println(err.Error())
			return
		}
	}
	for _, r := range results {
		pterm.Success.Printfln("%v", r)
	}
}

// replLexer classifies whitespace-split words against the grammar's
// declared terminals: an exact match against a terminal's own name is
// tried first (a keyword's literal spelling is not matched), then the
// first int, real or string terminal able to parse the word as that
// type.
type replLexer struct {
	words []string
	terms []symbol.Symbol
	pos   int
}

func (l *replLexer) Next() (glrrt.Token, bool, error) {
	if l.pos >= len(l.words) {
		return glrrt.Token{}, false, nil
	}
	w := l.words[l.pos]
	l.pos++

	for _, t := range l.terms {
		if t.Name == w {
			return glrrt.Token{Kind: t.Name, Text: w}, true, nil
		}
	}
	for _, t := range l.terms {
		switch t.Kind {
		case symbol.IntTerminal:
			if n, err := strconv.Atoi(w); err == nil {
				return glrrt.Token{Kind: t.Name, Text: w, IntVal: n}, true, nil
			}
		case symbol.RealTerminal:
			if f, err := strconv.ParseFloat(w, 64); err == nil {
				return glrrt.Token{Kind: t.Name, Text: w, RealVal: f}, true, nil
			}
		case symbol.StringTerminal:
			return glrrt.Token{Kind: t.Name, Text: w, StrVal: w}, true, nil
		}
	}
	return glrrt.Token{}, false, fmt.Errorf("no terminal in the grammar can classify %q", w)
}
