// Package lookahead implements the DeRemer-Pennello algorithm for computing
// LALR(1) lookahead sets without constructing the full canonical LR(1)
// collection: DirectlyReads and Reads give Read(p) for every nonterminal
// goto p; Includes and Lookback give Follow(p) and, through it, the
// lookahead set of every reduction.
package lookahead

import (
	"github.com/coldbrew-labs/yacgo/automaton"
	"github.com/coldbrew-labs/yacgo/bitset"
	"github.com/coldbrew-labs/yacgo/gerrors"
	"github.com/coldbrew-labs/yacgo/grammar"
)

// Result holds, for every (state, rule) reduction pair that occurs
// anywhere in the automaton, the set of terminals under which that
// reduction is valid.
type Result struct {
	g    *grammar.Grammar
	a    *automaton.Automaton
	byID map[[2]int]*bitset.Set
}

// LA returns the lookahead set for reducing rule r in state s, or nil if
// that reduction does not occur in state s.
func (r *Result) LA(state, rule int) *bitset.Set {
	return r.byID[[2]int{state, rule}]
}

// Compute runs the full DeRemer-Pennello pipeline and returns the
// lookahead set of every reduction in a.
func Compute(g *grammar.Grammar, a *automaton.Automaton, nullable []bool) (*Result, error) {
	n := len(a.NTGotos)

	directlyReads := bitset.NewMatrix(n, g.NTokens)
	for i, p := range a.NTGotos {
		to := a.States[p.To]
		for _, tr := range to.Transitions {
			if g.IsTerminal(tr.Symbol) {
				directlyReads.Set(i, int(tr.Symbol))
			}
		}
		// The automaton builds no transition on $end; an accepting target
		// state stands for that shift, so $end is directly read here.
		if to.Accepting {
			directlyReads.Set(i, int(grammar.EndOfInput))
		}
	}

	reads := bitset.NewMatrix(n, n)
	for i, p := range a.NTGotos {
		to := a.States[p.To]
		for _, tr := range to.Transitions {
			if g.IsNonterminal(tr.Symbol) && nullable[g.NonterminalIndex(tr.Symbol)] {
				j, ok := a.GotoIndex(p.To, tr.Symbol)
				if !ok {
					return nil, gerrors.Core("I-READS", "nullable nonterminal transition missing its goto index")
				}
				reads.Set(i, j)
			}
		}
	}
	bitset.ReflexiveTransitiveClosure(reads)

	// Read(p) = DirectlyReads(p) union Read(p') for every p' reachable
	// from p via reads; since reads is now reflexive-transitively closed,
	// this is a single OR over directlyReads rows indexed by its set bits.
	Read := unionRows(n, g.NTokens, reads, directlyReads)

	includes, lookback, err := buildIncludesAndLookback(g, a, nullable, n)
	if err != nil {
		return nil, err
	}
	bitset.ReflexiveTransitiveClosure(includes)

	Follow := unionRows(n, g.NTokens, includes, Read)

	result := &Result{g: g, a: a, byID: map[[2]int]*bitset.Set{}}
	for _, s := range a.States {
		for _, rule := range s.Reductions {
			la := bitset.NewSet(g.NTokens)
			for _, gotoIdx := range lookback[[2]int{s.ID, rule}] {
				la.OrRow(Follow, gotoIdx)
			}
			result.byID[[2]int{s.ID, rule}] = la
		}
	}
	return result, nil
}

// unionRows computes, for every row i, the OR of base's row j over every j
// with closure[i][j] set (closure is assumed reflexive, so base[i] is
// always included). base and closure share row count n; base has cols
// columns.
func unionRows(n, cols int, closure, base *bitset.Matrix) *bitset.Matrix {
	out := bitset.NewMatrix(n, cols)
	for i := 0; i < n; i++ {
		closure.Each(i, func(j int) {
			out.OrRowFrom(i, base, j)
		})
	}
	return out
}

// buildIncludesAndLookback computes the includes relation (an n x n bit
// matrix over NTGotos) and the lookback relation (state,rule) -> []gotoIdx,
// in a single pass over every production.
//
// includes: for production B -> X1...Xk...Xm where Xk = A is a
// nonterminal and Xk+1..Xm all nullable (vacuously true if k==m), and for
// every NTGoto p' = (s', B, _), walk forward from s' through X1..Xk-1; if
// that walk succeeds and lands in a state s with a goto on A (giving
// p = (s,A,_)), then p includes p'. This avoids any backward search: the
// forward walk is deterministic because the LR(0) goto function is a
// (partial) function of (state, symbol).
//
// lookback: for state s and reduction of rule r (LHS B, RHS length L),
// walk backward from s through RHS(r) in reverse using the automaton's
// recorded predecessor edges; every state s0 reached after consuming all L
// symbols has a goto p=(s0,B,_) in its outgoing edges, which is added to
// lookback[(s,r)]. Multiple spines may exist, so every one is enumerated.
func buildIncludesAndLookback(g *grammar.Grammar, a *automaton.Automaton, nullable []bool, n int) (*bitset.Matrix, map[[2]int][]int, error) {
	includes := bitset.NewMatrix(n, n)

	// Group NTGotos by symbol for the includes forward-walk.
	gotosBySymbol := map[grammar.Symbol][]int{}
	for i, p := range a.NTGotos {
		gotosBySymbol[p.Symbol] = append(gotosBySymbol[p.Symbol], i)
	}

	for r := 0; r < g.NRules; r++ {
		b := g.LHS[r]
		rhs := g.RHS(r)
		for k, xk := range rhs {
			if g.IsTerminal(xk) {
				continue
			}
			if !suffixNullable(g, rhs[k+1:], nullable) {
				continue
			}
			prefix := rhs[:k]
			for _, pIdx := range gotosBySymbol[b] {
				pPrime := a.NTGotos[pIdx]
				s, ok := walk(a, pPrime.From, prefix)
				if !ok {
					continue
				}
				idx, ok := a.GotoIndex(s, xk)
				if !ok {
					continue
				}
				includes.Set(idx, pIdx)
			}
		}
	}

	lookback := map[[2]int][]int{}
	for _, s := range a.States {
		for _, r := range s.Reductions {
			b := g.LHS[r]
			rhs := g.RHS(r)
			spines := backSpine(a, []int{s.ID}, rhs)
			for _, s0 := range spines {
				idx, ok := a.GotoIndex(s0, b)
				if !ok {
					return nil, nil, gerrors.Coref("I-LOOKBACK", "no goto on %s out of state %d while tracing rule %d", g.Name(b), s0, r)
				}
				lookback[[2]int{s.ID, r}] = append(lookback[[2]int{s.ID, r}], idx)
			}
		}
	}

	return includes, lookback, nil
}

func suffixNullable(g *grammar.Grammar, suffix []grammar.Symbol, nullable []bool) bool {
	for _, sym := range suffix {
		if g.IsTerminal(sym) {
			return false
		}
		if !nullable[g.NonterminalIndex(sym)] {
			return false
		}
	}
	return true
}

// walk follows the automaton's deterministic goto function from `from`
// through every symbol of path in order, returning the final state, or
// ok=false if any step is undefined.
func walk(a *automaton.Automaton, from int, path []grammar.Symbol) (int, bool) {
	s := from
	for _, sym := range path {
		to, ok := a.Target(s, sym)
		if !ok {
			return 0, false
		}
		s = to
	}
	return s, true
}

// backSpine walks backward from the states in `from` through symbols in
// reverse order, using the automaton's recorded predecessor edges, and
// returns every state reached after consuming all of symbols. Branching
// (multiple predecessors on the same symbol) fans out and all resulting
// states are returned, deduplicated.
func backSpine(a *automaton.Automaton, from []int, symbols []grammar.Symbol) []int {
	cur := from
	for i := len(symbols) - 1; i >= 0; i-- {
		sym := symbols[i]
		seen := map[int]bool{}
		var next []int
		for _, st := range cur {
			for _, pred := range a.Predecessors(st, sym) {
				if !seen[pred] {
					seen[pred] = true
					next = append(next, pred)
				}
			}
		}
		cur = next
	}
	return cur
}
