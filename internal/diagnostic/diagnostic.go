// Package diagnostic is proglrc's logging facade: a small Reporter type
// wrapping github.com/pterm/pterm for colored, leveled console output
// rather than bare fmt.Printf.
package diagnostic

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/DawidvC/proglr/internal/automaton"
	"github.com/DawidvC/proglr/internal/item"
)

// Reporter prints build progress and warnings. The zero value is usable:
// it counts states and transitions without per-state tracing, while
// Warn, Error, Info and Summary always print.
type Reporter struct {
	// Verbose enables per-state StateDiscovered/TransitionAdded tracing;
	// without it only Warn/Error/Info/Summary are printed.
	Verbose bool

	states      int
	transitions int
}

// NewReporter creates a Reporter at the given verbosity.
func NewReporter(verbose bool) *Reporter {
	return &Reporter{Verbose: verbose}
}

// StateDiscovered implements automaton.Reporter.
func (r *Reporter) StateDiscovered(n int, items item.Set) {
	r.states++
	if r.Verbose {
		pterm.Debug.Printfln("state %d discovered (%d items)", n, len(items))
	}
}

// TransitionAdded implements automaton.Reporter.
func (r *Reporter) TransitionAdded(t automaton.Transition) {
	r.transitions++
	if r.Verbose {
		pterm.Debug.Printfln("transition %s", t.String())
	}
}

// Summary prints the final state/transition counts once Build returns.
func (r *Reporter) Summary() {
	pterm.Success.Printfln("automaton built: %d states, %d transitions", r.states, r.transitions)
}

// Warn prints a non-fatal diagnostic: a literal-alias collision, an
// unreachable rule, or a similar condition the pipeline resolves by
// continuing rather than aborting.
func (r *Reporter) Warn(format string, args ...any) {
	pterm.Warning.Printfln(format, args...)
}

// Error prints a fatal diagnostic before the caller exits non-zero.
func (r *Reporter) Error(err error) {
	pterm.Error.Println(fmt.Sprintf("%v", err))
}

// Info prints a plain progress message.
func (r *Reporter) Info(format string, args ...any) {
	pterm.Info.Printfln(format, args...)
}

var _ automaton.Reporter = (*Reporter)(nil)
