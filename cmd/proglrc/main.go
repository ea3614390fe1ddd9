/*
Proglrc reads a grammar description and emits a generalized-LR parser
package implementing it.

Usage:

	proglrc [flags] GRAMMAR_FILE

The flags are:

	-v, --version
		Print the current version and exit.

	-c, --config FILE
		Read settings from the given TOML config file before applying
		any other flag.

	-p, --package NAME
		Go package name the emitted parser declares. Defaults to
		"parser".

	-o, --out DIR
		Directory to write the generated parser file (parser_gen.go,
		which also holds the parse tables) to. Defaults to the current
		directory.

	-d, --dump-automaton
		Additionally write automaton.dot, a Graphviz dump of the built
		LR(0) automaton, to the output directory.

	--verbose
		Print per-state automaton construction progress.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/DawidvC/proglr/internal/automaton"
	"github.com/DawidvC/proglr/internal/config"
	"github.com/DawidvC/proglr/internal/diagnostic"
	"github.com/DawidvC/proglr/internal/emit"
	"github.com/DawidvC/proglr/internal/gastio"
	"github.com/DawidvC/proglr/internal/grammar"
	"github.com/DawidvC/proglr/internal/schema"
	"github.com/DawidvC/proglr/internal/version"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitGrammarError
	ExitIOError
)

var (
	returnCode     = ExitSuccess
	flagVersion    = pflag.BoolP("version", "v", false, "Print the current version and exit")
	flagConfig     = pflag.StringP("config", "c", "", "Read settings from the given TOML config file")
	flagPackage    = pflag.StringP("package", "p", "", "Go package name the emitted parser declares")
	flagOut        = pflag.StringP("out", "o", "", "Directory to write the generated parser to")
	flagDump       = pflag.BoolP("dump-automaton", "d", false, "Write a Graphviz dump of the built automaton")
	flagVerbose    = pflag.Bool("verbose", false, "Print per-state automaton construction progress")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Println(version.Current)
		return
	}

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "ERROR: expected exactly one GRAMMAR_FILE argument")
		returnCode = ExitUsageError
		return
	}
	grammarPath := pflag.Arg(0)

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitUsageError
		return
	}
	if *flagPackage != "" {
		cfg.Package = *flagPackage
	}
	if *flagOut != "" {
		cfg.OutDir = *flagOut
	}
	if *flagDump {
		cfg.DumpAutomaton = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitUsageError
		return
	}

	reporter := diagnostic.NewReporter(*flagVerbose)

	src, err := gastio.LoadFile(grammarPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitIOError
		return
	}

	g, err := grammar.Normalize(src, reporter.Warn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitGrammarError
		return
	}
	reporter.Info("normalized grammar: %d terminals, %d nonterminals, %d rules", len(g.Terms), len(g.Nonterms), len(g.Rules))

	aut := automaton.Build(g, reporter)
	reporter.Summary()

	sums := schema.Derive(g)

	mod := emit.BuildParserModule(cfg.Package, g, aut, sums)
	printer := emit.NewPrinter(cfg.Package)
	out := printer.Print(mod)

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitIOError
		return
	}
	parserPath := filepath.Join(cfg.OutDir, "parser_gen.go")
	if err := os.WriteFile(parserPath, []byte(out), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitIOError
		return
	}
	reporter.Info("wrote %s", parserPath)

	if cfg.DumpAutomaton {
		var sb strings.Builder
		aut.WriteDOT(&sb)
		dotPath := filepath.Join(cfg.OutDir, "automaton.dot")
		if err := os.WriteFile(dotPath, []byte(sb.String()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = ExitIOError
			return
		}
		reporter.Info("wrote %s", dotPath)
	}
}
