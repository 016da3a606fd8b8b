package closure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldbrew-labs/yacgo/grammar"
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

func TestClosureOfStartKernel(t *testing.T) {
	assert := assert.New(t)
	g := buildExprGrammar(t)
	derives := grammar.ComputeDerives(g)
	eff := grammar.ComputeEFF(g, derives)
	fd := grammar.ComputeFirstDerives(g, derives, eff)
	eng := New(g, fd)

	kernel := []grammar.Item{g.StartItem(0)} // $accept -> . E $end
	full := eng.Closure(kernel)

	assert.True(Sorted(full), "closure result must be sorted and duplicate-free")

	// Every rule deriving E, T, or F should contribute its start item:
	// rules 1,2 (E), 3,4 (T), 5,6 (F), plus the kernel item itself = 7.
	assert.Len(full, 7)

	haveRule := map[int]bool{}
	for _, it := range full {
		haveRule[it.Rule(g)] = true
	}
	for r := 0; r <= 6; r++ {
		assert.True(haveRule[r], "closure missing start item of rule %d", r)
	}
}

func TestClosureScratchReuse(t *testing.T) {
	g := buildExprGrammar(t)
	derives := grammar.ComputeDerives(g)
	eff := grammar.ComputeEFF(g, derives)
	fd := grammar.ComputeFirstDerives(g, derives, eff)
	eng := New(g, fd)

	k1 := []grammar.Item{g.StartItem(0)}
	c1 := eng.Closure(k1)
	cp := make([]grammar.Item, len(c1))
	copy(cp, c1)

	// A second call on a different (empty-effect) kernel must not corrupt
	// a previously retained copy.
	k2 := []grammar.Item{g.StartItem(0).Advance()}
	_ = eng.Closure(k2)

	assert.Len(t, cp, 7, "retained copy was mutated by a later Closure call")
}
