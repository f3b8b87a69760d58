package ir

import "fmt"

// TypeError is raised (via panic) when a constructor's typing rule
// rejects its operands. Per spec.md §7, type-check failure is fatal:
// the compiler core never recovers from it, it only reports. The
// panic value carries enough structure for internal/diag to render a
// node dump of the offending pair.
type TypeError struct {
	Op      string
	Message string
	Nodes   []*Node
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error in %s: %s", e.Op, e.Message)
}

func typeErrorf(op, format string, nodes []*Node, args ...any) {
	panic(&TypeError{Op: op, Message: fmt.Sprintf(format, args...), Nodes: nodes})
}
