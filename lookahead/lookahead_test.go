package lookahead

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coldbrew-labs/yacgo/automaton"
	"github.com/coldbrew-labs/yacgo/closure"
	"github.com/coldbrew-labs/yacgo/grammar"
	"github.com/coldbrew-labs/yacgo/trace"
)

func buildExpr(t *testing.T) (*grammar.Grammar, *automaton.Automaton, []bool) {
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
	derives := grammar.ComputeDerives(g)
	eff := grammar.ComputeEFF(g, derives)
	fd := grammar.ComputeFirstDerives(g, derives, eff)
	nullable := grammar.ComputeNullable(g, derives)
	eng := closure.New(g, fd)
	a, err := automaton.Build(g, eng, trace.Discard{})
	require.NoError(t, err)
	return g, a, nullable
}

func symbolNamed(t *testing.T, g *grammar.Grammar, name string) grammar.Symbol {
	t.Helper()
	for s, info := range g.Symbols {
		if info.Name == name {
			return grammar.Symbol(s)
		}
	}
	t.Fatalf("symbol %q not found", name)
	return 0
}

// TestExprLookaheadsContainFollowSet checks scenario coverage for rule
// "E -> T" (rule 2): in every state where it reduces, its reduction
// lookahead must be exactly {+, ), $end} -- the classic FOLLOW(E) for this
// grammar.
func TestExprLookaheadsContainFollowSet(t *testing.T) {
	g, a, nullable := buildExpr(t)
	res, err := Compute(g, a, nullable)
	require.NoError(t, err)

	plus := symbolNamed(t, g, "+")
	rparen := symbolNamed(t, g, ")")

	allowed := map[grammar.Symbol]bool{
		plus:               true,
		rparen:             true,
		grammar.EndOfInput: true,
	}

	found := false
	for _, s := range a.States {
		la := res.LA(s.ID, 2) // rule 2: E -> T
		if la == nil {
			continue
		}
		found = true
		for _, want := range []grammar.Symbol{plus, rparen, grammar.EndOfInput} {
			if !la.Test(int(want)) {
				t.Errorf("state %d: lookahead for E -> T is missing %s", s.ID, g.Name(want))
			}
		}
		la.Each(func(sym int) {
			if !allowed[grammar.Symbol(sym)] {
				t.Errorf("state %d: unexpected lookahead terminal %s for E -> T", s.ID, g.Name(grammar.Symbol(sym)))
			}
		})
	}
	if !found {
		t.Fatalf("rule 2 (E -> T) never reduces anywhere; automaton is wrong")
	}
}

// TestEpsilonRuleLookback exercises the lookback degenerate case (RHS
// length zero): the reduction happens in the very state that contains the
// completed empty item, and its goto must be found at distance zero.
func TestEpsilonRuleLookback(t *testing.T) {
	b := grammar.NewBuilder("S")
	b.Token("a", 0)
	b.Rule(grammar.Rule{LHS: "S", RHS: []string{"A", "a"}})
	b.Rule(grammar.Rule{LHS: "A", RHS: []string{}})
	g, err := b.Build()
	require.NoError(t, err)
	derives := grammar.ComputeDerives(g)
	eff := grammar.ComputeEFF(g, derives)
	fd := grammar.ComputeFirstDerives(g, derives, eff)
	nullable := grammar.ComputeNullable(g, derives)
	eng := closure.New(g, fd)
	a, err := automaton.Build(g, eng, trace.Discard{})
	require.NoError(t, err)
	res, err := Compute(g, a, nullable)
	require.NoError(t, err)

	aTok := symbolNamed(t, g, "a")
	found := false
	for _, s := range a.States {
		la := res.LA(s.ID, 2) // rule 2: A -> (empty)
		if la == nil {
			continue
		}
		found = true
		if !la.Test(int(aTok)) {
			t.Errorf("state %d: A -> epsilon should have lookahead {a}", s.ID)
		}
	}
	if !found {
		t.Fatalf("the empty A rule never reduces anywhere")
	}
}
