package builder_test

import (
	"testing"

	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/builder"
	"github.com/alichraghi/shady/internal/ir"
)

// TestFinishBodyNestsLetsRightToLeft builds two bound instructions and
// checks FinishBody's fold produces Let(first, Lambda(_, Let(second,
// Lambda(_, terminator)))), per finish.go's doc comment.
func TestFinishBodyNestsLetsRightToLeft(t *testing.T) {
	conf := arenacfg.DefaultConfig()
	conf.CheckTypes = true
	a := ir.New(conf)
	i32 := ir.IntType(a, arenacfg.IntSize32, true)

	bb := builder.Begin(a)
	first := ir.PrimOp(a, ir.OpAdd, []*ir.Node{
		ir.IntLiteral(a, arenacfg.IntSize32, true, 1),
		ir.IntLiteral(a, arenacfg.IntSize32, true, 2),
	})
	firstOut := bb.BindInstruction(first)
	second := ir.PrimOp(a, ir.OpAdd, []*ir.Node{
		firstOut[0], ir.IntLiteral(a, arenacfg.IntSize32, true, 3),
	})
	secondOut := bb.BindInstruction(second)
	term := ir.Return(a, a.InternNodes([]*ir.Node{i32}), secondOut, nil)

	body := bb.FinishBody(term)

	outerLet, ok := body.Payload().(ir.LetPayload)
	if !ok {
		t.Fatalf("expected the body to be a Let, got %T", body.Payload())
	}
	if outerLet.Instruction != first {
		t.Errorf("outer Let should bind the first instruction added")
	}

	innerBody := ir.GetAbstractionBody(outerLet.Tail)
	innerLet, ok := innerBody.Payload().(ir.LetPayload)
	if !ok {
		t.Fatalf("expected the inner body to be a Let, got %T", innerBody.Payload())
	}
	if innerLet.Instruction != second {
		t.Errorf("inner Let should bind the second instruction added")
	}
	if innerLet.Tail == nil || ir.GetAbstractionBody(innerLet.Tail) != term {
		t.Errorf("innermost lambda should wrap the terminator unchanged")
	}
}

// TestBuilderPanicsOnUseAfterFinish checks mustBeOpen's guard: a
// Builder is single-use.
func TestBuilderPanicsOnUseAfterFinish(t *testing.T) {
	a := ir.New(arenacfg.DefaultConfig())
	i32 := ir.IntType(a, arenacfg.IntSize32, true)
	bb := builder.Begin(a)
	term := ir.Return(a, a.InternNodes([]*ir.Node{i32}),
		[]*ir.Node{ir.IntLiteral(a, arenacfg.IntSize32, true, 0)}, nil)
	bb.FinishBody(term)

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected a panic from binding into a finished Builder")
		}
	}()
	bb.BindInstruction(ir.PrimOp(a, ir.OpAdd, []*ir.Node{
		ir.IntLiteral(a, arenacfg.IntSize32, true, 1),
		ir.IntLiteral(a, arenacfg.IntSize32, true, 1),
	}))
}
