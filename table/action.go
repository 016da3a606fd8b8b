package table

import "fmt"

// ActionType enumerates what the parser does on a given (state, terminal)
// pair.
type ActionType int

const (
	// Error means no entry exists for this (state, terminal) pair, and
	// there is no default reduction to fall back to.
	Error ActionType = iota
	Shift
	Reduce
	Accept
)

func (t ActionType) String() string {
	switch t {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one ACTION table entry: either a shift to Target, a reduce of
// Rule, an accept, or (the zero value) an error.
type Action struct {
	Type   ActionType
	Target int // valid when Type == Shift
	Rule   int // valid when Type == Reduce
}

func (a Action) String() string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("s%d", a.Target)
	case Reduce:
		return fmt.Sprintf("r%d", a.Rule)
	case Accept:
		return "acc"
	default:
		return ""
	}
}

// ConflictKind distinguishes the two ways two tentative actions can
// collide over the same (state, terminal) cell.
type ConflictKind int

const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict records one unresolved or precedence-resolved collision: the
// state and terminal it occurred on, which kind it was, the action that
// was kept, and the action that lost. ResolvedByPrecedence is true when the
// resolution came from an explicit %left/%right/%nonassoc declaration
// rather than the default "prefer shift, prefer the earlier rule" policy.
type Conflict struct {
	State                int
	Symbol               int
	Kind                 ConflictKind
	Chosen, Other        Action
	ResolvedByPrecedence bool
}

func (c Conflict) String() string {
	how := "default resolution"
	if c.ResolvedByPrecedence {
		how = "resolved by precedence"
	}
	return fmt.Sprintf("%s conflict in state %d on symbol %d: kept %s over %s (%s)",
		c.Kind, c.State, c.Symbol, c.Chosen, c.Other, how)
}
