// Package grammar holds the grammar data model shared by every stage of the
// table builder: symbols, rules, the flat item store, and the derived
// relations (derives, nullable, EFF, FirstDerives) computed directly from
// them.
package grammar

// Symbol is an index into the combined terminal/nonterminal symbol space.
// Terminals occupy [0, NTokens); nonterminals occupy [NTokens, NSyms).
// Symbol zero is always reserved for the end-of-input marker, and
// Symbol(NTokens) is always the augmented start symbol.
type Symbol int

// EndOfInput is the reserved end-of-input terminal, symbol zero.
const EndOfInput Symbol = 0

// Assoc is a token's declared associativity, used to break shift/reduce ties
// at equal precedence.
type Assoc int

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
	AssocNonAssoc
)

func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	case AssocNonAssoc:
		return "nonassoc"
	default:
		return "none"
	}
}

// SymbolInfo carries the user-visible attributes of one symbol: its name,
// its external token value (terminals only; meaningless for nonterminals),
// and its declared precedence/associativity, if any.
type SymbolInfo struct {
	Name   string
	Value  int
	Prec   int
	Assoc  Assoc
	HasPrec bool
}
