package analysis_test

import (
	"testing"

	"github.com/alichraghi/shady/internal/analysis"
	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/builder"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
)

// buildLetFunction builds add_one(x: i32) -> i32 { let y = x + 1; return y },
// the minimal shape with a bound instruction owned by a single CFGNode.
func buildLetFunction(t *testing.T) *ir.Node {
	t.Helper()
	conf := arenacfg.DefaultConfig()
	conf.CheckTypes = true
	a := ir.New(conf)
	mod := module.New(a, "m")
	i32 := ir.IntType(a, arenacfg.IntSize32, true)

	fn, err := mod.NewFunction("add_one", []string{"x"}, []*ir.Node{i32}, []*ir.Node{i32}, nil)
	if err != nil {
		t.Fatalf("NewFunction: %v", err)
	}
	bb := builder.Begin(a)
	param := fn.Payload().(*ir.FunctionPayload).Params.At(0)
	sum := bb.BindInstruction(ir.PrimOp(a, ir.OpAdd, []*ir.Node{
		param, ir.IntLiteral(a, arenacfg.IntSize32, true, 1),
	}))
	ret := ir.Return(a, a.InternNodes([]*ir.Node{i32}), sum, ir.AbsMem(a, fn))
	ir.SetFunctionBody(fn, bb.FinishBody(ret))
	mod.Seal()
	return fn
}

func TestBuildUsesMapFindsLetAsUser(t *testing.T) {
	fn := buildLetFunction(t)
	cfg := analysis.BuildCFG(fn)
	uses := analysis.BuildUsesMap(cfg)

	body := ir.GetAbstractionBody(fn)
	lp, ok := body.Payload().(ir.LetPayload)
	if !ok {
		t.Fatalf("expected the function body to be a Let, got %T", body.Payload())
	}
	users := uses.UsersOf(lp.Instruction)
	if len(users) == 0 {
		t.Errorf("expected the bound PrimOp to have at least one user (its Let)")
	}
}

func TestSchedulerHomesBoundInstructionToItsOwnNode(t *testing.T) {
	fn := buildLetFunction(t)
	cfg := analysis.BuildCFG(fn)
	dom := analysis.BuildDomTree(cfg)
	uses := analysis.BuildUsesMap(cfg)
	sched := analysis.BuildScheduler(cfg, dom, uses)

	body := ir.GetAbstractionBody(fn)
	lp := body.Payload().(ir.LetPayload)

	home := sched.ScheduleInstruction(lp.Instruction)
	if home == nil {
		t.Fatalf("expected the bound instruction to have a fixed home, got nil")
	}
	if home.Abs != fn {
		t.Errorf("expected the bound instruction's home to be the function's own entry node")
	}
}

func TestSchedulerLiteralFloatsFree(t *testing.T) {
	fn := buildLetFunction(t)
	cfg := analysis.BuildCFG(fn)
	dom := analysis.BuildDomTree(cfg)
	uses := analysis.BuildUsesMap(cfg)
	sched := analysis.BuildScheduler(cfg, dom, uses)

	body := ir.GetAbstractionBody(fn)
	lp := body.Payload().(ir.LetPayload)
	primOp := lp.Instruction
	operand := primOp.Payload().(ir.PrimOpPayload).Operands.At(1) // the IntLiteral(1)

	if home := sched.ScheduleInstruction(operand); home != nil {
		t.Errorf("expected an IntLiteral operand to float freely (nil home), got %v", home.Abs)
	}
}
