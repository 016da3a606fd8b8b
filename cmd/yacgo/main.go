/*
Yacgo reads a grammar file and writes the resulting LALR(1) parser tables.

It implements the core table-construction pipeline (closure, LR(0) state
construction, DeRemer-Pennello lookahead computation, conflict resolution)
of a Yacc-compatible grammar compiler; see the repository's SPEC_FULL.md
for the full design.

Usage:

	yacgo [flags] grammar-file

The flags are:

	-b, --file-prefix PREFIX
		Set the prefix used for generated output file names. Defaults to
		the config file's default_prefix setting ("y" if unset).

	-d, --dump-tables
		Also write the binary-serialized table snapshot (PREFIX.tab),
		suitable for caching between runs.

	-l, --no-trace
		Suppress state-construction trace output even when -v or -t is
		given.

	-p, --symbol-prefix PREFIX
		Accepted for compatibility with the classic Yacc flag surface;
		this module's reader does not emit generated symbol names, so this
		flag currently has no effect beyond being recognized.

	-r, --separate-output
		Accepted for compatibility with the classic Yacc flag surface; no
		effect, since this module writes exactly one output file.

	-t, --debug-tables
		Enable debug trace output of the construction process to stderr.

	-v, --verbose
		Write the verbose dump (PREFIX.output): conflicts and the full
		ACTION/GOTO table listing.

	--inspect
		After building the tables, start an interactive readline prompt
		for querying them (ACTION/GOTO/STATE), instead of exiting.

Use "-" as the grammar file to read from stdin.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/coldbrew-labs/yacgo/automaton"
	"github.com/coldbrew-labs/yacgo/closure"
	"github.com/coldbrew-labs/yacgo/config"
	"github.com/coldbrew-labs/yacgo/grammar"
	"github.com/coldbrew-labs/yacgo/lookahead"
	"github.com/coldbrew-labs/yacgo/reader"
	"github.com/coldbrew-labs/yacgo/scratch"
	"github.com/coldbrew-labs/yacgo/table"
	"github.com/coldbrew-labs/yacgo/trace"
	"github.com/coldbrew-labs/yacgo/writer"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGrammarError indicates a diagnosable error: bad arguments, a
	// config or grammar file that cannot be read, or an output file that
	// cannot be written.
	ExitGrammarError

	// ExitInternalError indicates a core invariant was violated; this
	// should never happen given a grammar that read successfully.
	ExitInternalError
)

var (
	returnCode = ExitSuccess

	filePrefix     = pflag.StringP("file-prefix", "b", "", "Prefix used for generated output file names (default from config's default_prefix)")
	dumpTables     = pflag.BoolP("dump-tables", "d", false, "Also write the binary-serialized table snapshot")
	noTrace        = pflag.BoolP("no-trace", "l", false, "Suppress state-construction trace output even when -v is given")
	symbolPrefix   = pflag.StringP("symbol-prefix", "p", "", "Accepted for compatibility; currently has no effect")
	separateOutput = pflag.BoolP("separate-output", "r", false, "Accepted for compatibility; currently has no effect")
	debugTables    = pflag.BoolP("debug-tables", "t", false, "Enable debug trace output to stderr")
	verbose        = pflag.BoolP("verbose", "v", false, "Write the verbose conflict/table dump")
	inspect        = pflag.Bool("inspect", false, "Start an interactive table inspector after building")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()
	_ = symbolPrefix
	_ = separateOutput

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "ERROR: exactly one grammar file argument is required (use \"-\" for stdin)")
		returnCode = ExitGrammarError
		return
	}

	cfg, err := config.Load(".yacgenrc")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: loading config: %s\n", err.Error())
		returnCode = ExitGrammarError
		return
	}
	if *filePrefix == "" {
		*filePrefix = cfg.DefaultPrefix
	}

	mgr := scratch.New(cfg.TempDir)
	disarm := mgr.CloseOnSignal()
	defer disarm()
	defer mgr.Close()

	g, err := readGrammar(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGrammarError
		return
	}

	sink := trace.Sink(trace.Discard{})
	if (*verbose || *debugTables) && !*noTrace {
		sink = trace.Writer(os.Stderr)
	}

	a, tabs, err := buildTables(g, sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInternalError
		return
	}
	tabs.SetWidth(cfg.MaxInlineTableWidth)

	if cfg.ReportConflicts {
		for range tabs.Conflicts {
			// Conflicts are warnings, never a non-zero exit; see
			// SPEC_FULL.md section 7. The verbose writer lists them in
			// full when -v is given; here we only note the count.
		}
		if len(tabs.Conflicts) > 0 {
			fmt.Fprintf(os.Stderr, "%d conflict(s) found; rerun with -v for details\n", len(tabs.Conflicts))
		}
	}

	if *verbose {
		if err := writeVerbose(mgr, *filePrefix+".output", g, a, tabs); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: writing verbose output: %s\n", err.Error())
			returnCode = ExitGrammarError
			return
		}
	}

	if *dumpTables {
		if err := os.WriteFile(*filePrefix+".tab", writer.Serialize(tabs), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: writing table snapshot: %s\n", err.Error())
			returnCode = ExitGrammarError
			return
		}
	}

	if *inspect {
		runInspector(g, tabs)
	}
}

func readGrammar(path string) (*grammar.Grammar, error) {
	var src *os.File
	if path == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}
	return (reader.Text{}).Read(path, src)
}

func buildTables(g *grammar.Grammar, sink trace.Sink) (*automaton.Automaton, *table.Tables, error) {
	derives := grammar.ComputeDerives(g)
	eff := grammar.ComputeEFF(g, derives)
	fd := grammar.ComputeFirstDerives(g, derives, eff)
	nullable := grammar.ComputeNullable(g, derives)

	eng := closure.New(g, fd)
	a, err := automaton.Build(g, eng, sink)
	if err != nil {
		return nil, nil, err
	}

	la, err := lookahead.Compute(g, a, nullable)
	if err != nil {
		return nil, nil, err
	}

	return a, table.Build(g, a, la, sink), nil
}

// writeVerbose streams the verbose dump through a scratch file before
// renaming it into place, so a failure or interruption midway through
// formatting a large table never leaves a half-written output file at
// outPath.
func writeVerbose(mgr *scratch.Manager, outPath string, g *grammar.Grammar, a *automaton.Automaton, tabs *table.Tables) error {
	f, err := mgr.Create("output")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := (writer.Verbose{}).Write(f, g, a, tabs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(name, outPath)
}
