// Package gerrors defines the error types produced by the grammar reader
// and by the core table-construction stages, following the same
// constructor-function-plus-wrap pattern used throughout this module's
// teacher lineage: a small struct carrying a message and an optional
// wrapped cause, exported "f"-suffixed constructors for formatted messages,
// and an Unwrap method so errors.Is/errors.As work against wrapped causes.
package gerrors

import "fmt"

// GrammarError reports a problem found while reading a grammar: an
// undefined or redefined symbol, a malformed precedence declaration, an
// unterminated rule. These are always fatal; the reader stops at the first
// one.
type GrammarError struct {
	msg  string
	wrap error
}

// Grammar creates a GrammarError with a plain message.
func Grammar(msg string) error {
	return &GrammarError{msg: msg}
}

// Grammarf creates a GrammarError with a formatted message.
func Grammarf(format string, args ...interface{}) error {
	return &GrammarError{msg: fmt.Sprintf(format, args...)}
}

// WrapGrammar wraps cause as a GrammarError with additional context.
func WrapGrammar(cause error, msg string) error {
	return &GrammarError{msg: msg, wrap: cause}
}

func (e *GrammarError) Error() string {
	if e.wrap != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.wrap.Error())
	}
	return e.msg
}

func (e *GrammarError) Unwrap() error { return e.wrap }

// CoreError reports a violated core invariant: a condition the reader's
// postconditions should have made structurally impossible (a symbol index
// out of range during closure, an item store inconsistency). CoreError
// carries the identifier of the invariant it violates (e.g. "I3") so tests
// can assert on it directly.
type CoreError struct {
	Invariant string
	msg       string
	wrap      error
}

// Core creates a CoreError naming the violated invariant.
func Core(invariant, msg string) error {
	return &CoreError{Invariant: invariant, msg: msg}
}

// Coref creates a CoreError naming the violated invariant with a formatted
// message.
func Coref(invariant, format string, args ...interface{}) error {
	return &CoreError{Invariant: invariant, msg: fmt.Sprintf(format, args...)}
}

// WrapCore wraps cause as a CoreError naming the violated invariant.
func WrapCore(cause error, invariant, msg string) error {
	return &CoreError{Invariant: invariant, msg: msg, wrap: cause}
}

func (e *CoreError) Error() string {
	if e.wrap != nil {
		return fmt.Sprintf("internal error [%s]: %s: %s", e.Invariant, e.msg, e.wrap.Error())
	}
	return fmt.Sprintf("internal error [%s]: %s", e.Invariant, e.msg)
}

func (e *CoreError) Unwrap() error { return e.wrap }
