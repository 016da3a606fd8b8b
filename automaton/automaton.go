// Package automaton constructs the canonical collection of LR(0) item sets
// (states) and their goto transitions, per section 4.5. States are
// identified by their kernel; kernels are hashed with blake2b so that the
// worklist algorithm can intern previously-seen states in better than
// linear time per lookup, with an exact slice comparison as a fallback on
// hash collision.
package automaton

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/coldbrew-labs/yacgo/closure"
	"github.com/coldbrew-labs/yacgo/gerrors"
	"github.com/coldbrew-labs/yacgo/grammar"
	"github.com/coldbrew-labs/yacgo/trace"
)

// Transition is one edge of the LR(0) automaton: shifting or going to state
// To on Symbol from the State whose Transitions list holds it.
type Transition struct {
	Symbol grammar.Symbol
	To     int
}

// NTGoto is one nonterminal transition, additionally carrying its source
// state. Its position in Automaton.NTGotos is its dense index, in the order
// goto transitions were discovered; the lookahead solver addresses its
// relation matrices by this index.
type NTGoto struct {
	From, To int
	Symbol   grammar.Symbol
}

// State is one node of the canonical LR(0) collection.
type State struct {
	ID int
	// Kernel is the sorted, duplicate-free set of items that define this
	// state's identity (the items used to look it up/dedup by).
	Kernel []grammar.Item
	// Items is the full closure of Kernel, sorted.
	Items []grammar.Item
	// Accessing is the symbol whose shift/goto produced this state. It is
	// meaningful only when HasAccessing is true; the initial state has no
	// accessing symbol (HasAccessing false, Accessing 0).
	Accessing grammar.Symbol
	HasAccessing bool
	// Transitions lists every outgoing edge, sorted by Symbol (which
	// places every terminal/shift transition before every
	// nonterminal/goto transition, since terminals occupy the low end of
	// the symbol space).
	Transitions []Transition
	// Reductions lists the rule number of every complete item in Items,
	// ascending.
	Reductions []int
	// Accepting is true when this state contains the item
	// "$accept -> start . $end" (dot just before the end marker): the
	// augmented rule's completion is handled as ACCEPT rather than as an
	// ordinary shift/reduce, so no transition on $end is ever built.
	Accepting bool
}

// Automaton is the finished canonical LR(0) collection.
type Automaton struct {
	States  []*State
	NTGotos []NTGoto
	// gotoIndex maps (fromState, symbol) to its index in NTGotos, for
	// nonterminal transitions only.
	gotoIndex map[[2]int]int
	// trans maps (fromState, symbol) to the destination state, for every
	// transition (terminal and nonterminal).
	trans map[[2]int]int
	// rtrans maps (toState, symbol) to every predecessor state that
	// transitions into it on that symbol; used by the lookahead solver's
	// backward spine walk (Lookback).
	rtrans map[[2]int][]int
}

// GotoIndex returns the dense NTGotos index of the nonterminal transition
// out of state s on symbol A, if any.
func (a *Automaton) GotoIndex(s int, sym grammar.Symbol) (int, bool) {
	idx, ok := a.gotoIndex[[2]int{s, int(sym)}]
	return idx, ok
}

// Target returns the destination state of the transition out of state s on
// symbol sym, if any.
func (a *Automaton) Target(s int, sym grammar.Symbol) (int, bool) {
	to, ok := a.trans[[2]int{s, int(sym)}]
	return to, ok
}

// Predecessors returns every state that transitions into state s on symbol
// sym.
func (a *Automaton) Predecessors(s int, sym grammar.Symbol) []int {
	return a.rtrans[[2]int{s, int(sym)}]
}

type kernelKey [32]byte

func hashKernel(kernel []grammar.Item) kernelKey {
	buf := make([]byte, 8*len(kernel))
	for i, it := range kernel {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(it))
	}
	return blake2b.Sum256(buf)
}

func kernelEqual(a, b []grammar.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Build runs the worklist construction of section 4.5: starting from the
// kernel { $accept -> . start $end }, repeatedly closes each unprocessed
// state and partitions its non-complete items by post-dot symbol to
// discover (or intern) successor states.
func Build(g *grammar.Grammar, eng *closure.Engine, sink trace.Sink) (*Automaton, error) {
	if sink == nil {
		sink = trace.Discard{}
	}

	a := &Automaton{
		gotoIndex: map[[2]int]int{},
		trans:     map[[2]int]int{},
		rtrans:    map[[2]int][]int{},
	}
	buckets := map[kernelKey][]*State{}

	intern := func(kernel []grammar.Item, accessing grammar.Symbol, hasAccessing bool) (*State, bool) {
		key := hashKernel(kernel)
		for _, s := range buckets[key] {
			if kernelEqual(s.Kernel, kernel) {
				return s, false
			}
		}
		s := &State{ID: len(a.States), Kernel: kernel, Accessing: accessing, HasAccessing: hasAccessing}
		a.States = append(a.States, s)
		buckets[key] = append(buckets[key], s)
		return s, true
	}

	startKernel := []grammar.Item{g.StartItem(0)}
	start, _ := intern(startKernel, 0, false)

	var worklist []int
	worklist = append(worklist, start.ID)

	for len(worklist) > 0 {
		id := worklist[0]
		worklist = worklist[1:]
		s := a.States[id]

		full := eng.Closure(s.Kernel)
		items := make([]grammar.Item, len(full))
		copy(items, full)
		s.Items = items

		for _, it := range items {
			sink.Item(s.ID, it.String(g))
		}

		type bucket struct {
			sym   grammar.Symbol
			items []grammar.Item
		}
		var order []grammar.Symbol
		seen := map[grammar.Symbol]*bucket{}

		for _, it := range items {
			if it.Complete(g) {
				rule := it.RuleOf(g)
				if rule == 0 {
					return nil, gerrors.Core("I-ACC", "augmented rule must never complete; $end must not be shifted")
				}
				s.Reductions = append(s.Reductions, rule)
				continue
			}
			sym, _ := it.PostDotSymbol(g)
			if sym == grammar.EndOfInput {
				// Only the augmented rule's item dots just before $end;
				// that marks this state as accepting, with no transition.
				s.Accepting = true
				continue
			}
			bk, ok := seen[sym]
			if !ok {
				bk = &bucket{sym: sym}
				seen[sym] = bk
				order = append(order, sym)
			}
			bk.items = append(bk.items, it.Advance())
		}

		sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

		for _, sym := range order {
			kernel := seen[sym].items // already ascending: derived from an ascending scan
			target, isNew := intern(kernel, sym, true)
			if isNew {
				worklist = append(worklist, target.ID)
			}
			s.Transitions = append(s.Transitions, Transition{Symbol: sym, To: target.ID})
			a.trans[[2]int{s.ID, int(sym)}] = target.ID
			a.rtrans[[2]int{target.ID, int(sym)}] = append(a.rtrans[[2]int{target.ID, int(sym)}], s.ID)

			if g.IsNonterminal(sym) {
				idx := len(a.NTGotos)
				a.NTGotos = append(a.NTGotos, NTGoto{From: s.ID, To: target.ID, Symbol: sym})
				a.gotoIndex[[2]int{s.ID, int(sym)}] = idx
			}
		}

		sort.Ints(s.Reductions)
		sink.State(stateTraceLine(g, s))
	}

	return a, nil
}

func stateTraceLine(g *grammar.Grammar, s *State) string {
	var shifts, gotos int
	for _, tr := range s.Transitions {
		if g.IsTerminal(tr.Symbol) {
			shifts++
		} else {
			gotos++
		}
	}
	accessing := "<start>"
	if s.HasAccessing {
		accessing = g.Name(s.Accessing)
	}
	var flags []string
	if s.Accepting {
		flags = append(flags, "accepting")
	}
	flagText := ""
	if len(flags) > 0 {
		flagText = " [" + strings.Join(flags, ",") + "]"
	}
	return fmt.Sprintf("%d: accessing=%s kernel=%d items=%d shifts=%d gotos=%d reductions=%d%s",
		s.ID, accessing, len(s.Kernel), len(s.Items), shifts, gotos, len(s.Reductions), flagText)
}
