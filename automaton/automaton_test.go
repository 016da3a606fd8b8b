package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldbrew-labs/yacgo/closure"
	"github.com/coldbrew-labs/yacgo/grammar"
	"github.com/coldbrew-labs/yacgo/trace"
)

func buildExprGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	b := grammar.NewBuilder("E")
	b.Precedence("+", 1, grammar.AssocLeft)
	b.Precedence("*", 2, grammar.AssocLeft)
	b.Token("(", 0)
	b.Token(")", 0)
	b.Token("id", 0)
	b.Rule(grammar.Rule{LHS: "E", RHS: []string{"E", "+", "T"}})
	b.Rule(grammar.Rule{LHS: "E", RHS: []string{"T"}})
	b.Rule(grammar.Rule{LHS: "T", RHS: []string{"T", "*", "F"}})
	b.Rule(grammar.Rule{LHS: "T", RHS: []string{"F"}})
	b.Rule(grammar.Rule{LHS: "F", RHS: []string{"(", "E", ")"}})
	b.Rule(grammar.Rule{LHS: "F", RHS: []string{"id"}})
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func buildExprAutomaton(t *testing.T) (*grammar.Grammar, *Automaton) {
	t.Helper()
	g := buildExprGrammar(t)
	derives := grammar.ComputeDerives(g)
	eff := grammar.ComputeEFF(g, derives)
	fd := grammar.ComputeFirstDerives(g, derives, eff)
	eng := closure.New(g, fd)
	a, err := Build(g, eng, trace.Discard{})
	require.NoError(t, err)
	return g, a
}

// TestClassicExprStateCount is scenario S1 of the design: the textbook
// expression grammar (dragon book 4.42/4.54) has exactly 12 LR(0) states.
func TestClassicExprStateCount(t *testing.T) {
	_, a := buildExprAutomaton(t)
	assert.Len(t, a.States, 12)
}

func TestStartStateAccessing(t *testing.T) {
	assert := assert.New(t)
	_, a := buildExprAutomaton(t)
	s0 := a.States[0]
	assert.False(s0.HasAccessing, "start state should not have an accessing symbol")
	assert.Len(s0.Kernel, 1, "start state kernel should have exactly the augmented item")
}

func TestAcceptingStateReachableByShiftingStart(t *testing.T) {
	assert := assert.New(t)
	g, a := buildExprAutomaton(t)
	eSym := mustResolve(t, g, "E")
	to, ok := a.Target(0, eSym)
	require.True(t, ok, "state 0 must have a goto on E")
	assert.True(a.States[to].Accepting, "state reached by goto(0, E) must be the accepting state")
}

func TestNoTransitionOnEndOfInput(t *testing.T) {
	_, a := buildExprAutomaton(t)
	for _, s := range a.States {
		_, ok := a.Target(s.ID, grammar.EndOfInput)
		assert.False(t, ok, "state %d has a transition on $end; accept states must not", s.ID)
	}
}

func TestReductionsSortedAscending(t *testing.T) {
	_, a := buildExprAutomaton(t)
	for _, s := range a.States {
		for i := 1; i < len(s.Reductions); i++ {
			assert.Greater(t, s.Reductions[i], s.Reductions[i-1], "state %d reductions not strictly ascending", s.ID)
		}
	}
}

func mustResolve(t *testing.T, g *grammar.Grammar, name string) grammar.Symbol {
	t.Helper()
	for s, info := range g.Symbols {
		if info.Name == name {
			return grammar.Symbol(s)
		}
	}
	t.Fatalf("symbol %q not found", name)
	return 0
}
