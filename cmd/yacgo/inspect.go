package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/coldbrew-labs/yacgo/grammar"
	"github.com/coldbrew-labs/yacgo/table"
)

// runInspector starts an interactive readline prompt for querying the
// just-built tables. It understands:
//
//	ACTION <state> <symbol>   show the resolved action for that cell
//	GOTO <state> <symbol>     show the goto destination for that cell
//	STATE <n>                 list every terminal/nonterminal with a
//	                          non-error entry in state n
//	QUIT                      exit the inspector
//
// Symbol may be given by name or by its numeric Symbol value.
func runInspector(g *grammar.Grammar, tabs *table.Tables) {
	rl, err := readline.NewEx(&readline.Config{Prompt: "yacgo> "})
	if err != nil {
		fmt.Printf("ERROR: starting inspector: %s\n", err.Error())
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			}
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd := strings.ToUpper(fields[0])
		switch cmd {
		case "QUIT", "EXIT":
			return
		case "ACTION":
			handleAction(rl, g, tabs, fields[1:])
		case "GOTO":
			handleGoto(rl, g, tabs, fields[1:])
		case "STATE":
			handleState(rl, g, tabs, fields[1:])
		default:
			fmt.Fprintf(os.Stderr, "unrecognized command %q (try ACTION, GOTO, STATE, QUIT)\n", fields[0])
		}
	}
}

func handleAction(rl *readline.Instance, g *grammar.Grammar, tabs *table.Tables, args []string) {
	state, sym, err := parseStateSymbol(g, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		return
	}
	if !g.IsTerminal(sym) {
		fmt.Fprintf(os.Stderr, "%s is not a terminal; ACTION cells are indexed by terminal\n", g.Name(sym))
		return
	}
	fmt.Fprintln(os.Stdout, tabs.Action(state, sym).String())
}

func handleGoto(rl *readline.Instance, g *grammar.Grammar, tabs *table.Tables, args []string) {
	state, sym, err := parseStateSymbol(g, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		return
	}
	if !g.IsNonterminal(sym) {
		fmt.Fprintf(os.Stderr, "%s is not a nonterminal; GOTO cells are indexed by nonterminal\n", g.Name(sym))
		return
	}
	to, ok := tabs.Goto(state, sym)
	if !ok {
		fmt.Fprintln(os.Stdout, "undefined")
		return
	}
	fmt.Fprintf(os.Stdout, "%d\n", to)
}

func handleState(rl *readline.Instance, g *grammar.Grammar, tabs *table.Tables, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: STATE <n>")
		return
	}
	state, err := strconv.Atoi(args[0])
	if err != nil || state < 0 || state >= tabs.NStates {
		fmt.Fprintf(os.Stderr, "invalid state %q\n", args[0])
		return
	}
	for s := grammar.Symbol(0); int(s) < g.NTokens; s++ {
		a := tabs.Action(state, s)
		if a.Type != table.Error {
			fmt.Fprintf(os.Stdout, "  %s: %s\n", g.Name(s), a.String())
		}
	}
	for off := 0; off < g.NVars; off++ {
		s := grammar.Symbol(g.NTokens + off)
		if to, ok := tabs.Goto(state, s); ok {
			fmt.Fprintf(os.Stdout, "  %s: goto %d\n", g.Name(s), to)
		}
	}
}

func parseStateSymbol(g *grammar.Grammar, args []string) (int, grammar.Symbol, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("usage: ACTION|GOTO <state> <symbol>")
	}
	state, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid state %q", args[0])
	}
	sym, err := resolveSymbol(g, args[1])
	if err != nil {
		return 0, 0, err
	}
	return state, sym, nil
}

func resolveSymbol(g *grammar.Grammar, text string) (grammar.Symbol, error) {
	if n, err := strconv.Atoi(text); err == nil {
		s := grammar.Symbol(n)
		if int(s) < 0 || int(s) >= g.NSyms {
			return 0, fmt.Errorf("symbol %d out of range", n)
		}
		return s, nil
	}
	for s := grammar.Symbol(0); int(s) < g.NSyms; s++ {
		if g.Name(s) == text {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown symbol %q", text)
}
