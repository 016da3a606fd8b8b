// Package closure computes the closure of an LR(0) kernel: the full set of
// items reachable from the kernel by repeatedly adding, for every item with
// the dot before some nonterminal B, the start items of every rule that B
// can begin a derivation with. Section 4.4 of the design reduces this to a
// single bitset union (via the precomputed FirstDerives matrix) followed by
// a sorted merge, rather than a naive per-item fixpoint.
package closure

import (
	"sort"

	"github.com/coldbrew-labs/yacgo/bitset"
	"github.com/coldbrew-labs/yacgo/grammar"
)

// Engine computes closures against a fixed grammar and FirstDerives matrix.
// It reuses an internal scratch buffer across calls, so the slice returned
// by Closure is only valid until the next call to Closure on the same
// Engine; callers that need to retain a closure (e.g. to build an
// automaton state) must copy it out.
type Engine struct {
	g            *grammar.Grammar
	firstDerives *bitset.Matrix
	ruleBits     *bitset.Set
	scratch      []grammar.Item
}

// New returns a closure Engine for g, using the given FirstDerives matrix
// (see grammar.ComputeFirstDerives).
func New(g *grammar.Grammar, firstDerives *bitset.Matrix) *Engine {
	return &Engine{
		g:            g,
		firstDerives: firstDerives,
		ruleBits:     bitset.NewSet(g.NRules),
	}
}

// Closure computes the full item set for the given kernel. kernel must
// already be sorted in ascending item-position order (the sortedness of
// the merge below depends on it; see DESIGN.md's note on this precondition).
// The returned slice aliases e's internal scratch buffer and is only valid
// until the next Closure call.
func (e *Engine) Closure(kernel []grammar.Item) []grammar.Item {
	g := e.g
	bits := e.ruleBits
	for i := 0; i < bits.Len(); i++ {
		bits.Clear(i)
	}

	for _, it := range kernel {
		sym, ok := it.PostDotSymbol(g)
		if !ok || g.IsTerminal(sym) {
			continue
		}
		bits.OrRow(e.firstDerives, g.NonterminalIndex(sym))
	}

	e.scratch = e.scratch[:0]
	derived := make([]grammar.Item, 0, 8)
	bits.Each(func(r int) {
		derived = append(derived, g.StartItem(r))
	})

	e.scratch = mergeSorted(e.scratch, kernel, derived)
	return e.scratch
}

// mergeSorted merges two already-sorted, duplicate-free slices of items
// into dst, producing a sorted, duplicate-free result. derived is itself
// generated in ascending rule order (bitset.Set.Each enumerates ascending),
// and rule start items are monotonic in rule order, so derived arrives
// pre-sorted; kernel is sorted by precondition.
func mergeSorted(dst []grammar.Item, kernel, derived []grammar.Item) []grammar.Item {
	i, j := 0, 0
	for i < len(kernel) && j < len(derived) {
		switch {
		case kernel[i] == derived[j]:
			dst = append(dst, kernel[i])
			i++
			j++
		case kernel[i] < derived[j]:
			dst = append(dst, kernel[i])
			i++
		default:
			dst = append(dst, derived[j])
			j++
		}
	}
	dst = append(dst, kernel[i:]...)
	dst = append(dst, derived[j:]...)
	return dst
}

// Sorted reports whether items is in strictly ascending order, with no
// duplicates. It is used only by tests to check the sortedness precondition
// documented on Closure; production callers are trusted to maintain it.
func Sorted(items []grammar.Item) bool {
	return sort.SliceIsSorted(items, func(i, j int) bool { return items[i] < items[j] }) && noDuplicates(items)
}

func noDuplicates(items []grammar.Item) bool {
	for i := 1; i < len(items); i++ {
		if items[i] == items[i-1] {
			return false
		}
	}
	return true
}
