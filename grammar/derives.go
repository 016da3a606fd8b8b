package grammar

// ComputeDerives groups rule numbers by the nonterminal they define.
// Derives[a] lists, in rule-declaration order, every rule r with
// LHS[r] == Symbol(NTokens+a). It is the "derives" relation of section 3,
// indexed by nonterminal offset rather than raw Symbol so it can be used
// directly as a row index into EFF and FirstDerives.
func ComputeDerives(g *Grammar) [][]int {
	derives := make([][]int, g.NVars)
	for r, lhs := range g.LHS {
		a := g.NonterminalIndex(lhs)
		derives[a] = append(derives[a], r)
	}
	return derives
}

// ComputeNullable computes, for every nonterminal (by offset), whether it
// can derive the empty string. A nonterminal is nullable if some rule it
// derives has an all-nullable (possibly empty) right-hand side; this is
// solved by straightforward fixpoint iteration since NVars is always small
// relative to the cost of a packed-bitset formulation here.
func ComputeNullable(g *Grammar, derives [][]int) []bool {
	nullable := make([]bool, g.NVars)
	for {
		changed := false
		for a := 0; a < g.NVars; a++ {
			if nullable[a] {
				continue
			}
			for _, r := range derives[a] {
				if ruleIsNullable(g, r, nullable) {
					nullable[a] = true
					changed = true
					break
				}
			}
		}
		if !changed {
			break
		}
	}
	return nullable
}

func ruleIsNullable(g *Grammar, r int, nullable []bool) bool {
	for p := g.RHSStart[r]; g.Items[p] >= 0; p++ {
		sym := Symbol(g.Items[p])
		if g.IsTerminal(sym) {
			return false
		}
		if !nullable[g.NonterminalIndex(sym)] {
			return false
		}
	}
	return true
}
