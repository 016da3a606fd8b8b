package grammar

// Grammar is the immutable tuple produced by a Reader and consumed by every
// later stage: symbol table, rule table, and the flat item store.
//
// Rule 0 is always the synthesized augmented rule "$accept -> start $end",
// added by Builder.Build. Its LHS, Symbol(NTokens), is the first nonterminal
// and is never itself on the right-hand side of any user rule.
//
// The item store packs every rule's right-hand side, one after another, as
// a flat []int: Items[RHSStart[r]:RHSStart[r]+len] holds the RHS symbols of
// rule r in order, immediately followed by a single negative sentinel
// -(r+1) marking the position just past the end of the rule (the completed
// item). A dotted item is simply a position in this array; see Item.
type Grammar struct {
	NTokens int
	NVars   int
	NSyms   int

	// Symbols holds one SymbolInfo per symbol, indexed by Symbol value,
	// length NSyms.
	Symbols []SymbolInfo

	NRules int
	// LHS[r] is the nonterminal defined by rule r.
	LHS []Symbol
	// RHSStart[r] is the index into Items where rule r's right-hand side
	// begins.
	RHSStart []int
	// Prec[r]/Assoc[r] hold the rule's resolved precedence (from a %prec
	// override or the rightmost terminal in its RHS that has a declared
	// precedence). HasPrec[r] is false when neither source supplies one.
	Prec    []int
	Assoc   []Assoc
	HasPrec []bool

	// Items is the flat item store described above.
	Items []int
	// ItemRule[p] is the rule owning item position p, for any p in range.
	ItemRule []int
}

// IsTerminal reports whether s is a terminal symbol.
func (g *Grammar) IsTerminal(s Symbol) bool {
	return int(s) < g.NTokens
}

// IsNonterminal reports whether s is a nonterminal symbol.
func (g *Grammar) IsNonterminal(s Symbol) bool {
	return int(s) >= g.NTokens
}

// NonterminalIndex maps a nonterminal symbol to its zero-based offset among
// nonterminals (s - NTokens), the indexing used by derives, Nullable, EFF,
// and FirstDerives.
func (g *Grammar) NonterminalIndex(s Symbol) int {
	return int(s) - g.NTokens
}

// AugmentedStart is the synthesized start symbol, Symbol(NTokens).
func (g *Grammar) AugmentedStart() Symbol {
	return Symbol(g.NTokens)
}

// Name returns the symbol's declared name, or "$end" for EndOfInput.
func (g *Grammar) Name(s Symbol) string {
	if int(s) < len(g.Symbols) {
		return g.Symbols[s].Name
	}
	return "?"
}

// RuleLen returns the number of right-hand-side symbols in rule r.
func (g *Grammar) RuleLen(r int) int {
	n := 0
	for p := g.RHSStart[r]; g.Items[p] >= 0; p++ {
		n++
	}
	return n
}

// RHS returns the right-hand-side symbols of rule r, in order.
func (g *Grammar) RHS(r int) []Symbol {
	syms := make([]Symbol, 0, 4)
	for p := g.RHSStart[r]; g.Items[p] >= 0; p++ {
		syms = append(syms, Symbol(g.Items[p]))
	}
	return syms
}

// StartItem returns the initial (dot-at-zero) item of rule r.
func (g *Grammar) StartItem(r int) Item {
	return Item(g.RHSStart[r])
}

// Item is a position in Grammar.Items: a dotted item of some rule. A
// complete item (dot past the last RHS symbol) is distinguished by method,
// never by the caller inspecting the sign of the raw slot directly.
type Item int

// Complete reports whether the dot is past the end of the rule's RHS.
func (it Item) Complete(g *Grammar) bool {
	return g.Items[it] < 0
}

// Rule returns the rule this item belongs to.
func (it Item) Rule(g *Grammar) int {
	return g.ItemRule[it]
}

// PostDotSymbol returns the symbol immediately after the dot and ok=true,
// or ok=false if the item is complete.
func (it Item) PostDotSymbol(g *Grammar) (sym Symbol, ok bool) {
	v := g.Items[it]
	if v < 0 {
		return 0, false
	}
	return Symbol(v), true
}

// Advance returns the item with the dot moved one symbol to the right. The
// caller must first check !Complete.
func (it Item) Advance() Item {
	return it + 1
}

// RuleOf returns the rule number encoded by a complete item's sentinel.
// The caller must first check Complete.
func (it Item) RuleOf(g *Grammar) int {
	return -g.Items[it] - 1
}

// String renders the item in dotted-production form, e.g. "E -> E . + T",
// for trace output and verbose table dumps.
func (it Item) String(g *Grammar) string {
	r := it.Rule(g)
	rhs := g.RHS(r)
	dot := int(it) - g.RHSStart[r]

	s := g.Name(g.LHS[r]) + " ->"
	for i, sym := range rhs {
		if i == dot {
			s += " ."
		}
		s += " " + g.Name(sym)
	}
	if dot == len(rhs) {
		s += " ."
	}
	return s
}
