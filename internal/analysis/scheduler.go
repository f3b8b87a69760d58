package analysis

import "github.com/alichraghi/shady/internal/ir"

// Scheduler implements spec.md §4.6's scheduler: "Given a CFG, assigns
// each pure expression node to a specific CFG node: the deepest node
// that dominates all of its users." Every CFGNode's own body is, by
// construction (internal/builder's right-to-left FinishBody fold),
// either a single bound instruction (a Let) or a bare terminator --
// so an instruction's fixed "home" is just the CFGNode whose body Lets
// it. Anything else (a literal, or a structural value referenced
// directly as an operand without its own Let) is unowned and gets
// scheduled to the nearest common dominator of its users' homes.
type Scheduler struct {
	cfg   *CFG
	dom   *DomTree
	uses  *UsesMap
	owner map[*ir.Node]*CFGNode
}

// BuildScheduler computes the fixed owners (one per CFGNode's bound
// instruction, if any) ahead of any ScheduleInstruction query.
func BuildScheduler(cfg *CFG, dom *DomTree, uses *UsesMap) *Scheduler {
	s := &Scheduler{cfg: cfg, dom: dom, uses: uses, owner: make(map[*ir.Node]*CFGNode)}
	for _, node := range cfg.Nodes {
		body := ir.GetAbstractionBody(node.Abs)
		if body == nil {
			continue
		}
		if lp, ok := body.Payload().(ir.LetPayload); ok {
			s.owner[lp.Instruction] = node
		}
	}
	return s
}

// ScheduleInstruction returns n's home CFGNode, or nil for a constant
// that may float freely (schedule_instruction).
func (s *Scheduler) ScheduleInstruction(n *ir.Node) *CFGNode {
	return s.scheduleRec(n, make(map[*ir.Node]bool))
}

func (s *Scheduler) scheduleRec(n *ir.Node, visiting map[*ir.Node]bool) *CFGNode {
	if owner, ok := s.owner[n]; ok {
		return owner
	}
	switch n.Tag() {
	case ir.TagIntLiteral, ir.TagFloatLiteral, ir.TagBoolLiteral:
		return nil
	}
	if visiting[n] {
		return nil
	}
	visiting[n] = true
	defer delete(visiting, n)

	var lca *CFGNode
	for _, u := range s.uses.UsersOf(n) {
		home := s.scheduleRec(u, visiting)
		if home == nil {
			continue
		}
		if lca == nil {
			lca = home
		} else {
			lca = s.nearestCommonDominator(lca, home)
		}
	}
	return lca
}

func (s *Scheduler) nearestCommonDominator(a, b *CFGNode) *CFGNode {
	ancestors := make(map[*CFGNode]bool)
	for cur := a; ; {
		ancestors[cur] = true
		if cur == s.cfg.Entry {
			break
		}
		next := s.dom.IDom(cur)
		if next == nil {
			break
		}
		cur = next
	}
	for cur := b; ; {
		if ancestors[cur] {
			return cur
		}
		if cur == s.cfg.Entry {
			return s.cfg.Entry
		}
		next := s.dom.IDom(cur)
		if next == nil {
			return s.cfg.Entry
		}
		cur = next
	}
}
