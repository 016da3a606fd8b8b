// Package trace defines the pluggable trace-sink interface that replaces
// the debug-only printers mentioned in the design notes: every stage that
// used to print directly to stdout under a debug build tag instead calls
// into a Sink, which is a no-op unless the caller wired one in. The CLI
// wires a real Sink whenever -v or -t is given, unless -l is also given to
// explicitly suppress it.
package trace

import (
	"fmt"
	"io"
)

// Sink receives progress notifications from the automaton and table
// stages; the lookahead stage reports nothing. All three methods must tolerate being called zero or many
// times and must not retain the strings passed to them past the call.
type Sink interface {
	// State is called once per LR(0) state as it is finalized.
	State(text string)
	// Item is called for each item considered while closing state n.
	Item(state int, text string)
	// Conflict is called once per shift/reduce or reduce/reduce conflict
	// encountered while building the action table.
	Conflict(text string)
}

// Discard is the zero-cost default Sink: every method is a no-op.
type Discard struct{}

func (Discard) State(string)     {}
func (Discard) Item(int, string) {}
func (Discard) Conflict(string)  {}

// writerSink formats every notification as a line written to an io.Writer,
// used by the CLI's -v flag.
type writerSink struct {
	w io.Writer
}

// Writer returns a Sink that writes a formatted line per notification to w.
func Writer(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) State(text string) {
	fmt.Fprintf(s.w, "state: %s\n", text)
}

func (s *writerSink) Item(state int, text string) {
	fmt.Fprintf(s.w, "state %d: %s\n", state, text)
}

func (s *writerSink) Conflict(text string) {
	fmt.Fprintf(s.w, "conflict: %s\n", text)
}
