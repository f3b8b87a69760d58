package analysis

import "github.com/alichraghi/shady/internal/ir"

// freevars.go implements spec.md §4.6's free-frontier computation,
// grounded structurally on original_source/src/shady/analysis/
// free_frontier.c's visit_free_frontier: starting from an abstraction,
// walk every node reachable through operand edges; ask the scheduler
// where each one lives; a node whose home dominates the start is
// already available along every path that reaches it, so recurse past
// it into its own operands looking for the real frontier; a node whose
// home does NOT dominate start can't be assumed available and is
// recorded as a frontier member without recursing further into it.
func FreeFrontier(sched *Scheduler, dom *DomTree, start *CFGNode) []*ir.Node {
	visited := make(map[*ir.Node]bool)
	var frontier []*ir.Node

	var walk func(n *ir.Node)
	walk = func(n *ir.Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true

		home := sched.ScheduleInstruction(n)
		if home != nil && dom.Dominates(home, start) {
			for _, child := range ir.Children(n) {
				walk(child)
			}
			return
		}
		frontier = append(frontier, n)
	}

	body := ir.GetAbstractionBody(start.Abs)
	if body == nil {
		return nil
	}
	for _, child := range ir.Children(body) {
		walk(child)
	}
	return frontier
}

// FreeVariables is FreeFrontier restricted to Param nodes -- the
// variables (as opposed to arbitrary sub-expressions) start needs
// captured from an enclosing scope.
func FreeVariables(sched *Scheduler, dom *DomTree, start *CFGNode) []*ir.Node {
	var out []*ir.Node
	for _, n := range FreeFrontier(sched, dom, start) {
		if n.Tag() == ir.TagParam {
			out = append(out, n)
		}
	}
	return out
}
