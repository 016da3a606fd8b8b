// Package writer implements the Writer external collaborator: consuming a
// finished grammar and its tables to produce either a human-readable
// verbose dump or a binary-serialized form for caching. Neither writer
// here is a C-code generator; that remains out of scope (SPEC_FULL.md
// 4.9).
package writer

import (
	"fmt"
	"io"
	"sort"

	"github.com/coldbrew-labs/yacgo/automaton"
	"github.com/coldbrew-labs/yacgo/grammar"
	"github.com/coldbrew-labs/yacgo/table"
)

// Writer is anything that can render a finished grammar/automaton/table
// triple.
type Writer interface {
	Write(w io.Writer, g *grammar.Grammar, a *automaton.Automaton, tabs *table.Tables) error
}

// Verbose implements the "-v" verbose dump of SPEC_FULL.md 4.9: the
// conflict list, the item set of every LR(0) state, any rules or tokens
// the grammar declares but never puts to use, and finally the
// rosed-formatted ACTION/GOTO table dump.
type Verbose struct{}

func (Verbose) Write(w io.Writer, g *grammar.Grammar, a *automaton.Automaton, tabs *table.Tables) error {
	if len(tabs.Conflicts) == 0 {
		if _, err := fmt.Fprintln(w, "no conflicts"); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "%d conflict(s):\n", len(tabs.Conflicts))
		for _, c := range tabs.Conflicts {
			if _, err := fmt.Fprintln(w, c.String()); err != nil {
				return err
			}
		}
	}
	fmt.Fprintln(w)

	if err := writeItemSets(w, g, a); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if err := writeUnused(w, g, a); err != nil {
		return err
	}
	fmt.Fprintln(w)

	_, err := fmt.Fprintln(w, tabs.String())
	return err
}

// writeItemSets prints the full closure of every LR(0) state, the way a
// yacc -v listing enumerates each state's items.
func writeItemSets(w io.Writer, g *grammar.Grammar, a *automaton.Automaton) error {
	for _, s := range a.States {
		if _, err := fmt.Fprintf(w, "state %d:\n", s.ID); err != nil {
			return err
		}
		for _, it := range s.Items {
			if _, err := fmt.Fprintf(w, "  %s\n", it.String(g)); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeUnused reports rules that never reduce in any state and terminals
// that never appear in any rule's right-hand side -- both signs of a
// grammar that declares more than it needs.
func writeUnused(w io.Writer, g *grammar.Grammar, a *automaton.Automaton) error {
	reduced := make([]bool, g.NRules)
	for _, s := range a.States {
		for _, r := range s.Reductions {
			reduced[r] = true
		}
	}
	referenced := make([]bool, g.NTokens)
	for r := 0; r < g.NRules; r++ {
		for _, sym := range g.RHS(r) {
			if g.IsTerminal(sym) {
				referenced[sym] = true
			}
		}
	}

	var unusedRules []int
	for r := 1; r < g.NRules; r++ { // rule 0 is the synthesized accept rule
		if !reduced[r] {
			unusedRules = append(unusedRules, r)
		}
	}
	var unusedTokens []string
	for tok := 1; tok < g.NTokens; tok++ { // symbol 0 is $end
		if !referenced[tok] {
			unusedTokens = append(unusedTokens, g.Name(grammar.Symbol(tok)))
		}
	}
	sort.Strings(unusedTokens)

	if len(unusedRules) == 0 && len(unusedTokens) == 0 {
		_, err := fmt.Fprintln(w, "no unused rules or tokens")
		return err
	}
	for _, r := range unusedRules {
		if _, err := fmt.Fprintf(w, "rule %d never reduces: %s -> %v\n", r, g.Name(g.LHS[r]), symbolNames(g, g.RHS(r))); err != nil {
			return err
		}
	}
	for _, name := range unusedTokens {
		if _, err := fmt.Fprintf(w, "token %q is declared but never used in a rule\n", name); err != nil {
			return err
		}
	}
	return nil
}

func symbolNames(g *grammar.Grammar, syms []grammar.Symbol) []string {
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = g.Name(s)
	}
	return names
}
