package grammar

import "github.com/coldbrew-labs/yacgo/bitset"

// ComputeEFF builds the Epsilon-Free Firsts matrix: EFF[a][b] holds after
// ComputeEFF returns iff b is reachable from a in zero or more steps, where
// each step goes from a nonterminal to the nonterminal that begins the RHS
// of one of its rules (reflexive: EFF[a][a] is always set). Empty rules do
// not contribute, and a nullable leading nonterminal is not looked past.
// The matrix is NVars x NVars,
// indexed by nonterminal offset, and is the base relation closed by
// bitset.ReflexiveTransitiveClosure per section 4.3.
func ComputeEFF(g *Grammar, derives [][]int) *bitset.Matrix {
	eff := bitset.NewMatrix(g.NVars, g.NVars)
	for a := 0; a < g.NVars; a++ {
		for _, r := range derives[a] {
			p := g.RHSStart[r]
			if g.Items[p] < 0 {
				continue // empty RHS contributes nothing to EFF directly
			}
			first := Symbol(g.Items[p])
			if g.IsNonterminal(first) {
				eff.Set(a, g.NonterminalIndex(first))
			}
		}
	}
	bitset.ReflexiveTransitiveClosure(eff)
	return eff
}

// ComputeFirstDerives builds the FirstDerives matrix: FirstDerives[a][r]
// holds iff rule r can begin the derivation of some string derivable from
// nonterminal a, i.e. either r directly derives from a (r is in
// derives[a]) or r derives from some b reachable from a via EFF. It is an
// NVars x NRules matrix, consumed directly by the closure engine.
func ComputeFirstDerives(g *Grammar, derives [][]int, eff *bitset.Matrix) *bitset.Matrix {
	fd := bitset.NewMatrix(g.NVars, g.NRules)
	for a := 0; a < g.NVars; a++ {
		eff.Each(a, func(b int) {
			for _, r := range derives[b] {
				fd.Set(a, r)
			}
		})
	}
	return fd
}
