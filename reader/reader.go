// Package reader implements the Reader external collaborator: it turns
// grammar source text into a *grammar.Grammar. The format accepted here is
// a deliberately small line-oriented subset of Yacc grammar syntax -- the
// full reader (embedded actions, %union, %type) is a Non-goal; see
// SPEC_FULL.md 4.8.
package reader

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/coldbrew-labs/yacgo/gerrors"
	"github.com/coldbrew-labs/yacgo/grammar"
)

// Reader is anything that can turn named source text into a grammar.
type Reader interface {
	Read(name string, src io.Reader) (*grammar.Grammar, error)
}

// Text is the concrete reader for this module's grammar-file format.
//
// Declarations, one per line:
//
//	%token NAME[=value] NAME[=value] ...
//	%left NAME NAME ...
//	%right NAME NAME ...
//	%nonassoc NAME NAME ...
//	%start NAME
//
// Rules follow a line containing only "%%":
//
//	lhs : rhs1 rhs2 | rhs3 ;
//
// A bare nonterminal name with no symbols before the terminating ';'
// declares an empty (nullable) alternative. "%prec NAME" at the end of an
// alternative overrides its precedence.
type Text struct{}

func (Text) Read(name string, src io.Reader) (*grammar.Grammar, error) {
	lines, err := splitLines(src)
	if err != nil {
		return nil, gerrors.WrapGrammar(err, "reading "+name)
	}

	b := grammar.NewBuilder("")
	start := ""
	level := 0

	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "%%" {
			i++
			break
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "%token":
			for _, tok := range fields[1:] {
				nameVal := strings.SplitN(tok, "=", 2)
				val := 0
				if len(nameVal) == 2 {
					v, err := strconv.Atoi(nameVal[1])
					if err != nil {
						return nil, gerrors.Grammarf("bad token value in %q", tok)
					}
					val = v
				}
				b.Token(nameVal[0], val)
			}
		case "%left":
			level++
			for _, tok := range fields[1:] {
				b.Precedence(tok, level, grammar.AssocLeft)
			}
		case "%right":
			level++
			for _, tok := range fields[1:] {
				b.Precedence(tok, level, grammar.AssocRight)
			}
		case "%nonassoc":
			level++
			for _, tok := range fields[1:] {
				b.Precedence(tok, level, grammar.AssocNonAssoc)
			}
		case "%start":
			if len(fields) != 2 {
				return nil, gerrors.Grammar("%start requires exactly one symbol name")
			}
			start = fields[1]
		default:
			return nil, gerrors.Grammarf("unrecognized declaration %q", fields[0])
		}
	}

	var firstLHS string
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasSuffix(line, ";") {
			return nil, gerrors.Grammarf("rule not terminated with ';': %q", line)
		}
		line = strings.TrimSuffix(line, ";")
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, gerrors.Grammarf("rule missing ':': %q", line)
		}
		lhs := strings.TrimSpace(parts[0])
		if firstLHS == "" {
			firstLHS = lhs
		}
		for _, alt := range strings.Split(parts[1], "|") {
			fields := strings.Fields(alt)
			rule := grammar.Rule{LHS: lhs}
			for j := 0; j < len(fields); j++ {
				if fields[j] == "%prec" {
					if j+1 >= len(fields) {
						return nil, gerrors.Grammar("%prec requires a following symbol name")
					}
					level, assoc, ok := b.PrecedenceOf(fields[j+1])
					if !ok {
						return nil, gerrors.Grammarf("%%prec refers to %q, which has no declared precedence", fields[j+1])
					}
					rule.Prec = level
					rule.Assoc = assoc
					rule.HasPrec = true
					j++
					continue
				}
				rule.RHS = append(rule.RHS, fields[j])
			}
			b.Rule(rule)
		}
	}

	if start == "" {
		start = firstLHS
	}
	if start == "" {
		return nil, gerrors.Grammar("grammar has no rules")
	}

	// %start may appear anywhere in the declarations, or be absent
	// entirely (inferring the first rule's LHS); NewBuilder needed a
	// placeholder up front, so fix it up now that the real start symbol
	// is known.
	b.SetStart(start)
	return b.Build()
}

func splitLines(src io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
