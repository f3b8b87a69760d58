package analysis_test

import (
	"testing"

	"github.com/alichraghi/shady/internal/analysis"
	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/builder"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
)

// buildCapturingIfFunction builds foo(x: i32) -> i32 { if true { join
// x } else { join 0 } }: the true-case branch body captures the
// enclosing function's parameter x, the minimal shape for a non-empty
// free-variable set.
func buildCapturingIfFunction(t *testing.T) (*ir.Node, *ir.Node) {
	t.Helper()
	conf := arenacfg.DefaultConfig()
	conf.CheckTypes = true
	a := ir.New(conf)
	mod := module.New(a, "m")
	i32 := ir.IntType(a, arenacfg.IntSize32, true)

	fn, err := mod.NewFunction("foo", []string{"x"}, []*ir.Node{i32}, []*ir.Node{i32}, nil)
	if err != nil {
		t.Fatalf("NewFunction: %v", err)
	}
	param := fn.Payload().(*ir.FunctionPayload).Params.At(0)

	bb := builder.Begin(a)
	cond := ir.BoolLiteral(a, true)
	results := bb.GenIf(cond, []*ir.Node{i32},
		func(sub *builder.Builder) *ir.Node {
			return ir.Join(a, ir.JoinSelection, a.InternNodes([]*ir.Node{i32}), []*ir.Node{param})
		},
		func(sub *builder.Builder) *ir.Node {
			return ir.Join(a, ir.JoinSelection, a.InternNodes([]*ir.Node{i32}),
				[]*ir.Node{ir.IntLiteral(a, arenacfg.IntSize32, true, 0)})
		},
	)
	ret := ir.Return(a, a.InternNodes([]*ir.Node{i32}), results, ir.AbsMem(a, fn))
	ir.SetFunctionBody(fn, bb.FinishBody(ret))
	mod.Seal()
	return fn, param
}

func TestFreeVariablesCapturesEnclosingParam(t *testing.T) {
	fn, param := buildCapturingIfFunction(t)
	cfg := analysis.BuildCFG(fn)
	dom := analysis.BuildDomTree(cfg)
	uses := analysis.BuildUsesMap(cfg)
	sched := analysis.BuildScheduler(cfg, dom, uses)

	body := ir.GetAbstractionBody(fn)
	lp, ok := body.Payload().(ir.LetPayload)
	if !ok {
		t.Fatalf("expected the function body to be a Let, got %T", body.Payload())
	}
	ifPayload, ok := lp.Instruction.Payload().(ir.IfPayload)
	if !ok {
		t.Fatalf("expected the bound instruction to be an If, got %T", lp.Instruction.Payload())
	}
	trueCase, ok := cfg.Nodes[ifPayload.TrueCase]
	if !ok {
		t.Fatalf("expected the If's true-case lambda to be a CFG node")
	}

	free := analysis.FreeVariables(sched, dom, trueCase)
	var found bool
	for _, n := range free {
		if n == param {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the enclosing parameter to appear in the branch's free-variable set, got %v", free)
	}
}
