// Package table builds the ACTION/GOTO tables from an LR(0) automaton and
// its computed lookahead sets, resolving shift/reduce and reduce/reduce
// conflicts by precedence and associativity, and hoisting the most
// frequent reduction in each row to a default per section 4.7.
package table

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/coldbrew-labs/yacgo/automaton"
	"github.com/coldbrew-labs/yacgo/grammar"
	"github.com/coldbrew-labs/yacgo/lookahead"
	"github.com/coldbrew-labs/yacgo/trace"
)

// Tables is the finished ACTION/GOTO table pair, plus enough rule metadata
// for a parser driver to know how much to pop and which nonterminal to
// goto on a reduce.
type Tables struct {
	g *grammar.Grammar

	// width is the column width String passes to rosed's InsertTableOpts.
	// Build seeds it with a sane default; SetWidth lets a caller (main.go,
	// wired from config.Config.MaxInlineTableWidth) override it.
	width int

	NStates int
	// action[state][terminal] is the resolved action.
	action [][]Action
	// gotoTable[state][nonterm-offset] is the destination state, or -1.
	gotoTable [][]int
	// DefaultReduction[state] is the rule hoisted as this row's fallback,
	// or -1 if the row has no default.
	DefaultReduction []int

	RuleLen []int
	RuleLHS []grammar.Symbol

	Conflicts []Conflict
}

// SetWidth overrides the column width used by String, in place of the
// default of 10. Callers wire this from config.Config.MaxInlineTableWidth.
func (t *Tables) SetWidth(w int) {
	t.width = w
}

// Action returns the resolved action for (state, terminal), applying the
// row's default reduction when no explicit entry exists.
func (t *Tables) Action(state int, terminal grammar.Symbol) Action {
	a := t.action[state][terminal]
	if a.Type == Error && t.DefaultReduction[state] >= 0 {
		return Action{Type: Reduce, Rule: t.DefaultReduction[state]}
	}
	return a
}

// Goto returns the destination state for (state, nonterminal), or ok=false
// if undefined.
func (t *Tables) Goto(state int, nonterminal grammar.Symbol) (int, bool) {
	to := t.gotoTable[state][t.g.NonterminalIndex(nonterminal)]
	if to < 0 {
		return 0, false
	}
	return to, true
}

// rulePrecedence returns the effective precedence of rule r as the grammar
// recorded it, or none. Builder already folded both the %prec override and
// "rightmost terminal in RHS with a declared precedence" into
// HasPrec/Prec/Assoc, so
// this is just a lookup -- kept as its own function because the decision
// of what "no precedence" means (see DESIGN.md) belongs here, next to
// where it's consulted.
func rulePrecedence(g *grammar.Grammar, r int) (prec int, assoc grammar.Assoc, has bool) {
	if g.HasPrec[r] {
		return g.Prec[r], g.Assoc[r], true
	}
	return 0, grammar.AssocNone, false
}

// Build constructs the ACTION/GOTO tables for g's automaton a, using the
// lookahead sets in la.
func Build(g *grammar.Grammar, a *automaton.Automaton, la *lookahead.Result, sink trace.Sink) *Tables {
	if sink == nil {
		sink = trace.Discard{}
	}

	t := &Tables{
		g:       g,
		width:   10,
		NStates: len(a.States),
		RuleLen: make([]int, g.NRules),
		RuleLHS: make([]grammar.Symbol, g.NRules),
	}
	for r := 0; r < g.NRules; r++ {
		t.RuleLen[r] = g.RuleLen(r)
		t.RuleLHS[r] = g.LHS[r]
	}

	t.action = make([][]Action, len(a.States))
	t.gotoTable = make([][]int, len(a.States))
	t.DefaultReduction = make([]int, len(a.States))

	for _, s := range a.States {
		row := make([]Action, g.NTokens)
		gotoRow := make([]int, g.NVars)
		for i := range gotoRow {
			gotoRow[i] = -1
		}

		for _, tr := range s.Transitions {
			if g.IsTerminal(tr.Symbol) {
				row[tr.Symbol] = Action{Type: Shift, Target: tr.To}
			} else {
				gotoRow[g.NonterminalIndex(tr.Symbol)] = tr.To
			}
		}

		for _, r := range s.Reductions {
			set := la.LA(s.ID, r)
			if set == nil {
				continue
			}
			set.Each(func(term int) {
				existing := row[term]
				resolved, conflict := resolveCell(g, existing, Action{Type: Reduce, Rule: r}, s.ID, term)
				row[term] = resolved
				if conflict != nil {
					t.Conflicts = append(t.Conflicts, *conflict)
					sink.Conflict(conflict.String())
				}
			})
		}

		if s.Accepting {
			row[grammar.EndOfInput] = Action{Type: Accept}
		}

		t.action[s.ID] = row
		t.gotoTable[s.ID] = gotoRow
		t.DefaultReduction[s.ID] = chooseDefault(row)
	}

	return t
}

// resolveCell decides what goes in a single ACTION cell given the action
// already tentatively installed there (existing) and a newly proposed
// reduce action (next, reducing rule r on terminal term in state s).
// existing is the zero Action (Error) when nothing has been installed yet.
func resolveCell(g *grammar.Grammar, existing, next Action, state, term int) (Action, *Conflict) {
	switch existing.Type {
	case Error:
		return next, nil
	case Shift:
		return resolveShiftReduce(g, existing, next, state, term)
	case Reduce:
		return resolveReduceReduce(existing, next, state, term)
	default: // Accept
		return existing, &Conflict{State: state, Symbol: term, Kind: ShiftReduce, Chosen: existing, Other: next}
	}
}

func resolveShiftReduce(g *grammar.Grammar, shift, reduce Action, state, term int) (Action, *Conflict) {
	termPrec, termAssoc, termHas := g.Symbols[term].Prec, g.Symbols[term].Assoc, g.Symbols[term].HasPrec
	rulePrec, ruleAssoc, ruleHas := rulePrecedence(g, reduce.Rule)

	if !termHas || !ruleHas {
		// No precedence information to resolve with: classic yacc default,
		// prefer the shift, record an unresolved conflict.
		return shift, &Conflict{State: state, Symbol: term, Kind: ShiftReduce, Chosen: shift, Other: reduce}
	}

	switch {
	case rulePrec > termPrec:
		return reduce, &Conflict{State: state, Symbol: term, Kind: ShiftReduce, Chosen: reduce, Other: shift, ResolvedByPrecedence: true}
	case rulePrec < termPrec:
		return shift, &Conflict{State: state, Symbol: term, Kind: ShiftReduce, Chosen: shift, Other: reduce, ResolvedByPrecedence: true}
	default:
		switch termAssoc {
		case grammar.AssocLeft:
			return reduce, &Conflict{State: state, Symbol: term, Kind: ShiftReduce, Chosen: reduce, Other: shift, ResolvedByPrecedence: true}
		case grammar.AssocRight:
			return shift, &Conflict{State: state, Symbol: term, Kind: ShiftReduce, Chosen: shift, Other: reduce, ResolvedByPrecedence: true}
		default: // nonassoc: neither stands, becomes an explicit error cell
			return Action{Type: Error}, &Conflict{State: state, Symbol: term, Kind: ShiftReduce, Chosen: Action{Type: Error}, Other: shift, ResolvedByPrecedence: true}
		}
	}
}

func resolveReduceReduce(first, second Action, state, term int) (Action, *Conflict) {
	// first was installed by an earlier (lower-numbered) rule; rules are
	// processed in ascending order by the caller, so first always wins.
	return first, &Conflict{State: state, Symbol: term, Kind: ReduceReduce, Chosen: first, Other: second}
}

// chooseDefault picks the reduction rule that occurs most often across a
// finished ACTION row, breaking ties toward the lowest rule number. A row
// with no reduce actions at all gets no default (-1).
func chooseDefault(row []Action) int {
	counts := map[int]int{}
	for _, a := range row {
		if a.Type == Reduce {
			counts[a.Rule]++
		}
	}
	best, bestCount := -1, 0
	for rule, count := range counts {
		if count > bestCount || (count == bestCount && rule < best) {
			best, bestCount = rule, count
		}
	}
	return best
}

// Snapshot is the exported, serialization-friendly projection of a Tables
// value: every field a writer needs to reconstruct Action()/Goto() lookups,
// with no unexported state and no back-reference to a *grammar.Grammar.
type Snapshot struct {
	NTokens, NVars   int
	NStates          int
	Action           [][]Action
	Goto             [][]int
	DefaultReduction []int
	RuleLen          []int
	RuleLHS          []int
}

// Snapshot copies t into a Snapshot suitable for serialization.
func (t *Tables) Snapshot() *Snapshot {
	s := &Snapshot{
		NTokens:          t.g.NTokens,
		NVars:            t.g.NVars,
		NStates:          t.NStates,
		Action:           make([][]Action, t.NStates),
		Goto:             make([][]int, t.NStates),
		DefaultReduction: append([]int(nil), t.DefaultReduction...),
		RuleLen:          append([]int(nil), t.RuleLen...),
		RuleLHS:          make([]int, len(t.RuleLHS)),
	}
	for i, row := range t.action {
		s.Action[i] = append([]Action(nil), row...)
	}
	for i, row := range t.gotoTable {
		s.Goto[i] = append([]int(nil), row...)
	}
	for i, lhs := range t.RuleLHS {
		s.RuleLHS[i] = int(lhs)
	}
	return s
}

// FromSnapshot rebuilds a Tables from a Snapshot previously produced by
// Snapshot, against the grammar g (which must be the same grammar, or one
// with an identical symbol/rule layout, that produced the snapshot).
func FromSnapshot(g *grammar.Grammar, s *Snapshot) *Tables {
	t := &Tables{
		g:                g,
		NStates:          s.NStates,
		action:           s.Action,
		gotoTable:        s.Goto,
		DefaultReduction: s.DefaultReduction,
		RuleLen:          s.RuleLen,
		RuleLHS:          make([]grammar.Symbol, len(s.RuleLHS)),
	}
	for i, lhs := range s.RuleLHS {
		t.RuleLHS[i] = grammar.Symbol(lhs)
	}
	return t
}

// String renders the ACTION/GOTO tables as a formatted text table using the
// same rosed-based layout idiom used elsewhere in this corpus's table
// dumps: one row per state, one column per terminal followed by one column
// per nonterminal goto.
func (t *Tables) String() string {
	header := []string{"state"}
	for i := 0; i < t.g.NTokens; i++ {
		header = append(header, t.g.Name(grammar.Symbol(i)))
	}
	for i := 0; i < t.g.NVars; i++ {
		header = append(header, t.g.Name(grammar.Symbol(t.g.NTokens+i)))
	}

	data := [][]string{header}
	for s := 0; s < t.NStates; s++ {
		row := []string{fmt.Sprintf("%d", s)}
		for term := 0; term < t.g.NTokens; term++ {
			row = append(row, t.Action(s, grammar.Symbol(term)).String())
		}
		for nt := 0; nt < t.g.NVars; nt++ {
			if to, ok := t.Goto(s, grammar.Symbol(t.g.NTokens+nt)); ok {
				row = append(row, fmt.Sprintf("%d", to))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}

	width := t.width
	if width <= 0 {
		width = 10
	}
	return rosed.Edit("").
		InsertTableOpts(0, data, width, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
