package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classicExprGrammar builds the textbook expression grammar used throughout
// spec scenario S1:
//
//	E -> E + T | T
//	T -> T * F | F
//	F -> ( E ) | id
func classicExprGrammar(t *testing.T) *Grammar {
	t.Helper()
	b := NewBuilder("E")
	b.Precedence("+", 1, AssocLeft)
	b.Precedence("*", 2, AssocLeft)
	b.Token("(", 0)
	b.Token(")", 0)
	b.Token("id", 0)
	b.Rule(Rule{LHS: "E", RHS: []string{"E", "+", "T"}})
	b.Rule(Rule{LHS: "E", RHS: []string{"T"}})
	b.Rule(Rule{LHS: "T", RHS: []string{"T", "*", "F"}})
	b.Rule(Rule{LHS: "T", RHS: []string{"F"}})
	b.Rule(Rule{LHS: "F", RHS: []string{"(", "E", ")"}})
	b.Rule(Rule{LHS: "F", RHS: []string{"id"}})
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestBuilderSymbolCounts(t *testing.T) {
	assert := assert.New(t)
	g := classicExprGrammar(t)

	// tokens: $end, +, *, (, ), id = 6
	assert.Equal(6, g.NTokens)
	// nonterminals: $accept, E, T, F = 4
	assert.Equal(4, g.NVars)
	assert.Equal(g.NTokens+g.NVars, g.NSyms)
	// rules: augmented + 6 user rules = 7
	assert.Equal(7, g.NRules)
}

func TestBuilderUndefinedSymbol(t *testing.T) {
	b := NewBuilder("S")
	b.Rule(Rule{LHS: "S", RHS: []string{"nope"}})
	_, err := b.Build()
	assert.Error(t, err, "expected an error for an undefined RHS symbol")
}

func TestItemAbstraction(t *testing.T) {
	assert := assert.New(t)
	g := classicExprGrammar(t)

	it := g.StartItem(2) // E -> T
	assert.False(it.Complete(g), "start item of a non-empty rule must not be complete")

	sym, ok := it.PostDotSymbol(g)
	require.True(t, ok, "expected a post-dot symbol")
	assert.Equal("T", g.Name(sym))

	it2 := it.Advance()
	assert.True(it2.Complete(g), "E -> T . should be complete")
	assert.Equal(2, it2.RuleOf(g))
}

func TestNullableEmptyProduction(t *testing.T) {
	assert := assert.New(t)

	b := NewBuilder("S")
	b.Token("a", 0)
	b.Rule(Rule{LHS: "S", RHS: []string{"A", "a"}})
	b.Rule(Rule{LHS: "A", RHS: []string{}})
	g, err := b.Build()
	require.NoError(t, err)

	derives := ComputeDerives(g)
	nullable := ComputeNullable(g, derives)

	aIdx := g.NonterminalIndex(mustResolve(t, g, "A"))
	assert.True(nullable[aIdx], "A should be nullable (has an empty production)")

	sIdx := g.NonterminalIndex(mustResolve(t, g, "S"))
	assert.False(nullable[sIdx], "S should not be nullable (requires terminal a)")
}

func mustResolve(t *testing.T, g *Grammar, name string) Symbol {
	t.Helper()
	for s, info := range g.Symbols {
		if info.Name == name {
			return Symbol(s)
		}
	}
	t.Fatalf("symbol %q not found", name)
	return 0
}

func TestEFFAndFirstDerives(t *testing.T) {
	assert := assert.New(t)
	g := classicExprGrammar(t)
	derives := ComputeDerives(g)
	eff := ComputeEFF(g, derives)

	fIdx := g.NonterminalIndex(mustResolve(t, g, "F"))
	eIdx := g.NonterminalIndex(mustResolve(t, g, "E"))
	assert.True(eff.Test(eIdx, fIdx), "EFF(E,F) should hold: E =>* T =>* F")
	assert.False(eff.Test(fIdx, eIdx), "EFF(F,E) should not hold")
	assert.True(eff.Test(eIdx, eIdx), "EFF should be reflexive: EFF(E,E) should hold")

	fd := ComputeFirstDerives(g, derives, eff)
	// Rule 6 is "F -> id"; E should first-derive it transitively.
	assert.True(fd.Test(eIdx, 6), "FirstDerives(E, rule 6 'F -> id') should hold")
}
