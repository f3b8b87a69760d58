package builder

import "github.com/alichraghi/shady/internal/ir"

// control.go builds the structured instructions (If/Loop/Match) whose
// branches are themselves bodies: each branch gets its own nested
// Builder, is finished with a Join terminator, and is wrapped as an
// AnonymousLambda before being handed to the matching ir constructor.
// Grounded on spec.md §4.4's description of the three builder modes
// (pure block / abstraction body / side-effect block all reduce to
// "build a sub-Builder, finish it, wrap the result").

// buildBranch runs fn against a fresh sub-body of a (with the given
// bound params in scope) and wraps the finished body as an
// AnonymousLambda.
func buildBranch(a *ir.Arena, params []*ir.Node, fn func(*Builder) *ir.Node) *ir.Node {
	sub := Begin(a)
	term := fn(sub)
	body := sub.FinishBody(term)
	return ir.AnonymousLambda(a, params, body)
}

// GenIf builds an If instruction from two branch-building callbacks,
// each expected to end its body in a Join(JoinSelection, ...) that
// yields yieldTypes, and binds the If's results into the body
// (bind_instruction applied to the freshly built If).
func (b *Builder) GenIf(cond *ir.Node, yieldTypes []*ir.Node, trueCase func(*Builder) *ir.Node, falseCase func(*Builder) *ir.Node) []*ir.Node {
	b.mustBeOpen()
	a := b.arena
	trueLambda := buildBranch(a, nil, trueCase)
	var falseLambda *ir.Node
	if falseCase != nil {
		falseLambda = buildBranch(a, nil, falseCase)
	}
	ifInstr := ir.If(a, cond, yieldTypes, trueLambda, falseLambda)
	return b.BindInstruction(ifInstr)
}

// GenLoop builds a Loop instruction. bodyFn receives the loop body's
// own Builder and its bound loop-carried parameters, and must end in
// a Join(JoinContinue, ...) (next iteration) or Join(JoinBreak, ...)
// (exit with yieldTypes' values) on every path.
func (b *Builder) GenLoop(yieldTypes, initialArgs []*ir.Node, paramNames []string, paramTypes []*ir.Node, bodyFn func(bb *Builder, params []*ir.Node) *ir.Node) []*ir.Node {
	b.mustBeOpen()
	a := b.arena
	params := make([]*ir.Node, len(paramNames))
	for i, n := range paramNames {
		params[i] = ir.DeclaredParam(a, n, ir.Qualified(a, true, paramTypes[i]))
	}
	sub := Begin(a)
	term := bodyFn(sub, params)
	body := sub.FinishBody(term)
	lambda := ir.AnonymousLambda(a, params, body)
	loopInstr := ir.Loop(a, yieldTypes, initialArgs, lambda)
	return b.BindInstruction(loopInstr)
}

// MatchCase pairs a case's IntLiteral selector value with its
// branch-building callback for GenMatch.
type MatchCase struct {
	Value *ir.Node
	Body  func(*Builder) *ir.Node
}

// GenMatch builds a Match instruction over inspectee; every case body
// (and the default) must end in a Join(JoinSelection, ...) yielding
// yieldTypes.
func (b *Builder) GenMatch(inspectee *ir.Node, yieldTypes []*ir.Node, cases []MatchCase, defaultCase func(*Builder) *ir.Node) []*ir.Node {
	b.mustBeOpen()
	a := b.arena
	caseValues := make([]*ir.Node, len(cases))
	caseBodies := make([]*ir.Node, len(cases))
	for i, c := range cases {
		caseValues[i] = c.Value
		caseBodies[i] = buildBranch(a, nil, c.Body)
	}
	defaultLambda := buildBranch(a, nil, defaultCase)
	matchInstr := ir.Match(a, inspectee, yieldTypes, caseValues, caseBodies, defaultLambda)
	return b.BindInstruction(matchInstr)
}

// YieldValuesAndWrapInControl terminates the current (sub-)body with
// a selection-merge join carrying values, the structured counterpart
// to an early "return out of this block" used by GenIf/GenMatch
// branch callbacks.
func YieldValuesAndWrapInControl(b *Builder, yieldTypes ir.Nodes, values []*ir.Node) *ir.Node {
	return ir.Join(b.arena, ir.JoinSelection, yieldTypes, values)
}
