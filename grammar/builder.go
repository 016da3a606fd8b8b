package grammar

import "github.com/coldbrew-labs/yacgo/gerrors"

// Rule is a single user-declared production, LHS -> RHS, as fed to Builder.
// Prec/HasPrec carry an explicit %prec override; when HasPrec is false the
// builder derives the rule's precedence from the rightmost terminal in RHS
// that has a declared precedence, per Builder.Build.
type Rule struct {
	LHS     string
	RHS     []string
	Prec    int
	Assoc   Assoc
	HasPrec bool
}

// Builder assembles a Grammar from named symbols and rules, synthesizing
// the augmented rule 0 and resolving every name to a dense Symbol index.
// It is the common construction path used by both the reader and tests
// that want a grammar without going through grammar-file text.
type Builder struct {
	start    string
	tokens   []string
	tokenVal map[string]int
	prec     map[string]int
	assoc    map[string]Assoc
	rules    []Rule
	declared map[string]bool
}

// NewBuilder returns a Builder for a grammar whose start symbol is start.
func NewBuilder(start string) *Builder {
	return &Builder{
		start:    start,
		tokenVal: map[string]int{},
		prec:     map[string]int{},
		assoc:    map[string]Assoc{},
		declared: map[string]bool{},
	}
}

// SetStart changes the grammar's start symbol. Useful when the start
// symbol isn't known until after some declarations have already been fed
// to the Builder (e.g. a reader whose "%start" directive may appear
// anywhere, or be absent entirely).
func (b *Builder) SetStart(name string) {
	b.start = name
}

// Token declares a terminal symbol with an external token value.
func (b *Builder) Token(name string, value int) {
	if !b.declared[name] {
		b.tokens = append(b.tokens, name)
		b.declared[name] = true
	}
	b.tokenVal[name] = value
}

// Precedence declares a terminal's precedence level and associativity.
// Level increases with each call in a %left/%right/%nonassoc chain; callers
// typically call this once per declaration line with an increasing level.
func (b *Builder) Precedence(name string, level int, assoc Assoc) {
	if !b.declared[name] {
		b.tokens = append(b.tokens, name)
		b.declared[name] = true
	}
	b.prec[name] = level
	b.assoc[name] = assoc
}

// PrecedenceOf returns the precedence/associativity previously declared
// for a token name via Precedence, if any. Used by readers implementing
// "%prec NAME" overrides.
func (b *Builder) PrecedenceOf(name string) (level int, assoc Assoc, ok bool) {
	level, ok = b.prec[name]
	return level, b.assoc[name], ok
}

// Rule appends a production to the grammar under construction.
func (b *Builder) Rule(r Rule) {
	b.rules = append(b.rules, r)
}

// Build resolves every name, synthesizes the augmented rule, lays out the
// flat item store, and returns the finished Grammar. It returns a
// *gerrors.GrammarError if the start symbol never appears as the LHS of a
// rule, or if any RHS symbol was never declared as a token and never
// appears as the LHS of a rule.
func (b *Builder) Build() (*Grammar, error) {
	ntokens := len(b.tokens) + 1 // +1 for $end at index 0
	nameToSym := map[string]Symbol{}
	nameToSym["$end"] = EndOfInput

	symbols := make([]SymbolInfo, ntokens, ntokens+len(b.rules)+2)
	symbols[0] = SymbolInfo{Name: "$end"}
	for i, name := range b.tokens {
		sym := Symbol(i + 1)
		nameToSym[name] = sym
		info := SymbolInfo{Name: name, Value: b.tokenVal[name]}
		if p, ok := b.prec[name]; ok {
			info.Prec = p
			info.Assoc = b.assoc[name]
			info.HasPrec = true
		}
		symbols[sym] = info
	}

	// Discover nonterminals in first-appearance order: the start symbol
	// first (becomes the rule the augmented start derives to), then every
	// other distinct LHS as it's first seen.
	var nonterms []string
	seenNT := map[string]bool{}
	addNT := func(name string) {
		if !seenNT[name] {
			seenNT[name] = true
			nonterms = append(nonterms, name)
		}
	}
	addNT(b.start)
	for _, r := range b.rules {
		addNT(r.LHS)
	}

	// nonterms[0] is the user's start symbol; the augmented start symbol
	// itself is synthesized separately and placed at NTokens.
	nvars := len(nonterms) + 1
	nsyms := ntokens + nvars
	symbols = append(symbols, SymbolInfo{Name: "$accept"})
	for _, name := range nonterms {
		sym := Symbol(len(symbols))
		nameToSym[name] = sym
		symbols = append(symbols, SymbolInfo{Name: name})
	}
	if len(symbols) != nsyms {
		return nil, gerrors.Core("I-SYM", "symbol table size mismatch during build")
	}

	resolve := func(name string) (Symbol, error) {
		if s, ok := nameToSym[name]; ok {
			return s, nil
		}
		return 0, gerrors.Grammarf("undefined symbol %q", name)
	}

	startHasRule := false
	for _, r := range b.rules {
		if r.LHS == b.start {
			startHasRule = true
			break
		}
	}
	if !startHasRule {
		return nil, gerrors.Grammarf("undefined symbol %q: the start symbol has no rules", b.start)
	}

	startSym, err := resolve(b.start)
	if err != nil {
		return nil, err
	}

	nrules := len(b.rules) + 1
	lhs := make([]Symbol, nrules)
	rhsStart := make([]int, nrules)
	prec := make([]int, nrules)
	assoc := make([]Assoc, nrules)
	hasPrec := make([]bool, nrules)

	var items []int
	var itemRule []int

	appendRule := func(r int, lhsSym Symbol, rhsNames []string, rulePrec int, ruleAssoc Assoc, ruleHasPrec bool) error {
		lhs[r] = lhsSym
		rhsStart[r] = len(items)
		lastTermPrec := 0
		lastTermAssoc := AssocNone
		lastTermHasPrec := false
		for _, name := range rhsNames {
			sym, err := resolve(name)
			if err != nil {
				return err
			}
			items = append(items, int(sym))
			itemRule = append(itemRule, r)
			if int(sym) < ntokens {
				info := symbols[sym]
				if info.HasPrec {
					lastTermPrec = info.Prec
					lastTermAssoc = info.Assoc
					lastTermHasPrec = true
				}
			}
		}
		items = append(items, -(r + 1))
		itemRule = append(itemRule, r)

		if ruleHasPrec {
			prec[r] = rulePrec
			assoc[r] = ruleAssoc
			hasPrec[r] = true
		} else if lastTermHasPrec {
			prec[r] = lastTermPrec
			assoc[r] = lastTermAssoc
			hasPrec[r] = true
		}
		return nil
	}

	// Rule 0: $accept -> start $end
	if err := appendRule(0, Symbol(ntokens), []string{b.start, "$end"}, 0, AssocNone, false); err != nil {
		return nil, err
	}
	_ = startSym

	for i, r := range b.rules {
		lhsSym, err := resolve(r.LHS)
		if err != nil {
			return nil, err
		}
		if int(lhsSym) < ntokens {
			return nil, gerrors.Grammarf("symbol %q used as a rule LHS is declared as a token", r.LHS)
		}
		if err := appendRule(i+1, lhsSym, r.RHS, r.Prec, r.Assoc, r.HasPrec); err != nil {
			return nil, err
		}
	}

	return &Grammar{
		NTokens:  ntokens,
		NVars:    nvars,
		NSyms:    nsyms,
		Symbols:  symbols,
		NRules:   nrules,
		LHS:      lhs,
		RHSStart: rhsStart,
		Prec:     prec,
		Assoc:    assoc,
		HasPrec:  hasPrec,
		Items:    items,
		ItemRule: itemRule,
	}, nil
}
