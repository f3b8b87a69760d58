// Package analysis builds the derived control-flow structures of
// spec.md §4.6 on top of internal/ir: CFG, dominator tree, structured
// dominator, loop tree, use map, scheduler and free-frontier/free-
// variables. None of these mutate nodes; they are pure read-side
// structures recomputed per function (optionally cached, see cache.go).
package analysis

import "github.com/alichraghi/shady/internal/ir"

// EdgeKind classifies a CFG edge, per spec.md §4.6's edge-kind table.
type EdgeKind uint8

const (
	EdgeJump EdgeKind = iota
	EdgeBranch
	EdgeSwitch
	EdgeLetTail
	EdgeStructuredEnterBody
	EdgeStructuredLeaveBody
	EdgeStructuredPseudoExit
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeJump:
		return "Jump"
	case EdgeBranch:
		return "Branch"
	case EdgeSwitch:
		return "Switch"
	case EdgeLetTail:
		return "LetTail"
	case EdgeStructuredEnterBody:
		return "StructuredEnterBody"
	case EdgeStructuredLeaveBody:
		return "StructuredLeaveBody"
	case EdgeStructuredPseudoExit:
		return "StructuredPseudoExit"
	default:
		return "?"
	}
}

// Edge is one directed CFG arc, annotated with the kind that produced
// it (spec.md §6.4's CFG-dump coloring keys off this).
type Edge struct {
	Kind EdgeKind
	To   *CFGNode
}

// CFGNode wraps one abstraction (Function, BasicBlock or
// AnonymousLambda) reachable in the graph, with typed predecessor and
// successor lists.
type CFGNode struct {
	Abs   *ir.Node
	Preds []Edge
	Succs []Edge

	processed bool
}

// CFG is the control-flow graph of one function, per spec.md §4.6:
// "Built per function. Node set = all abstractions reachable from the
// function entry via jumps, branches, switch arms, structured-entry
// edges ... and LetTail edges."
type CFG struct {
	Entry *CFGNode
	Nodes map[*ir.Node]*CFGNode
}

// BuildCFG constructs the CFG rooted at fn (a Function node).
func BuildCFG(fn *ir.Node) *CFG {
	cfg := &CFG{Nodes: make(map[*ir.Node]*CFGNode)}
	cfg.Entry = cfg.getOrCreate(fn)
	cfg.process(fn, nil, nil)
	return cfg
}

func (cfg *CFG) getOrCreate(abs *ir.Node) *CFGNode {
	if n, ok := cfg.Nodes[abs]; ok {
		return n
	}
	n := &CFGNode{Abs: abs}
	cfg.Nodes[abs] = n
	return n
}

func (cfg *CFG) addEdge(from, to *ir.Node, kind EdgeKind) {
	if to == nil {
		return
	}
	fn := cfg.getOrCreate(from)
	tn := cfg.getOrCreate(to)
	fn.Succs = append(fn.Succs, Edge{Kind: kind, To: tn})
	tn.Preds = append(tn.Preds, Edge{Kind: kind, To: fn})
}

// process walks abs's body, discovering CFG successors. exitTarget is
// the abstraction a JoinSelection/JoinBreak inside abs (or a
// structured body nested inside it) resumes into; loopBody is the
// nearest enclosing Loop's own body abstraction, the target of a
// JoinContinue back-edge. Both are nil outside any structured region
// (ordinary Function/BasicBlock bodies).
func (cfg *CFG) process(abs *ir.Node, exitTarget, loopBody *ir.Node) {
	node := cfg.getOrCreate(abs)
	if node.processed {
		return
	}
	node.processed = true

	body := ir.GetAbstractionBody(abs)
	if body == nil {
		return
	}
	cfg.walk(abs, body, exitTarget, loopBody)
}

func (cfg *CFG) walk(owner, body *ir.Node, exitTarget, loopBody *ir.Node) {
	switch p := body.Payload().(type) {
	case ir.LetPayload:
		cfg.walkStructured(owner, p.Instruction, p.Tail, loopBody)
		cfg.addEdge(owner, p.Tail, EdgeLetTail)
		cfg.process(p.Tail, exitTarget, loopBody)

	case ir.JumpPayload:
		cfg.addEdge(owner, p.Target, EdgeJump)
		cfg.process(p.Target, nil, nil)

	case ir.BranchPayload:
		cfg.addEdge(owner, p.TrueTarget, EdgeBranch)
		cfg.addEdge(owner, p.FalseTarget, EdgeBranch)
		cfg.process(p.TrueTarget, nil, nil)
		cfg.process(p.FalseTarget, nil, nil)

	case ir.SwitchPayload:
		for i := 0; i < p.CaseTargets.Count(); i++ {
			t := p.CaseTargets.At(i)
			cfg.addEdge(owner, t, EdgeSwitch)
			cfg.process(t, nil, nil)
		}
		if p.DefaultTarget != nil {
			cfg.addEdge(owner, p.DefaultTarget, EdgeSwitch)
			cfg.process(p.DefaultTarget, nil, nil)
		}

	case ir.JoinPayload:
		switch p.Kind {
		case ir.JoinContinue:
			if loopBody != nil {
				cfg.addEdge(owner, loopBody, EdgeStructuredPseudoExit)
			}
		default: // JoinSelection, JoinBreak
			if exitTarget != nil {
				cfg.addEdge(owner, exitTarget, EdgeStructuredLeaveBody)
			}
		}

	case ir.ReturnPayload, ir.UnreachablePayload, ir.TailCallPayload:
		// terminal: no CFG successor.
	}
}

// walkStructured wires StructuredEnterBody edges from owner into an
// If/Loop/Match instruction's branch bodies and recurses into each,
// threading tail as their exitTarget (and, for a Loop, the loop body
// itself as the next loopBody).
func (cfg *CFG) walkStructured(owner, instr, tail, loopBody *ir.Node) {
	switch p := instr.Payload().(type) {
	case ir.IfPayload:
		cfg.addEdge(owner, p.TrueCase, EdgeStructuredEnterBody)
		cfg.process(p.TrueCase, tail, loopBody)
		if p.FalseCase != nil {
			cfg.addEdge(owner, p.FalseCase, EdgeStructuredEnterBody)
			cfg.process(p.FalseCase, tail, loopBody)
		}
	case ir.LoopPayload:
		cfg.addEdge(owner, p.Body, EdgeStructuredEnterBody)
		cfg.process(p.Body, tail, p.Body)
	case ir.MatchPayload:
		for i := 0; i < p.CaseBodies.Count(); i++ {
			cb := p.CaseBodies.At(i)
			cfg.addEdge(owner, cb, EdgeStructuredEnterBody)
			cfg.process(cb, tail, loopBody)
		}
		if p.DefaultCase != nil {
			cfg.addEdge(owner, p.DefaultCase, EdgeStructuredEnterBody)
			cfg.process(p.DefaultCase, tail, loopBody)
		}
	}
}
