package rewrite_test

import (
	"testing"

	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/builder"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
	"github.com/alichraghi/shady/internal/rewrite"
)

// buildSumModule builds a one-function module: main() -> i32 { return
// 4 + 38 }, the same shape as spec.md §8 scenario 1's constant-folding
// example.
func buildSumModule(t *testing.T) *module.Module {
	t.Helper()
	a := ir.New(arenacfg.DefaultConfig())
	mod := module.New(a, "sum")

	i32 := ir.IntType(a, arenacfg.IntSize32, true)
	fn, err := mod.NewFunction("main", nil, nil, []*ir.Node{i32}, nil)
	if err != nil {
		t.Fatalf("NewFunction: %v", err)
	}

	bb := builder.Begin(a)
	sum := ir.PrimOp(a, ir.OpAdd, []*ir.Node{
		ir.IntLiteral(a, arenacfg.IntSize32, true, 4),
		ir.IntLiteral(a, arenacfg.IntSize32, true, 38),
	})
	ret := ir.Return(a, a.InternNodes([]*ir.Node{i32}), []*ir.Node{sum}, ir.AbsMem(a, fn))
	ir.SetFunctionBody(fn, bb.FinishBody(ret))
	mod.Seal()
	return mod
}

// TestIdentityRewritePreservesDeclShape is spec.md §8's round-trip
// law: "Rewrite a module through the identity rewriter -> the
// destination module has the same declaration set and body shape as
// the source."
func TestIdentityRewritePreservesDeclShape(t *testing.T) {
	src := buildSumModule(t)
	dstArena := ir.New(src.Arena().Config())
	dstMod := module.New(dstArena, src.Name())

	r := rewrite.New(src.Arena(), dstArena, nil)
	r.DstOwnerModule = dstMod

	for _, decl := range src.Decls() {
		rewritten := r.Rewrite(decl)
		if err := dstMod.AddDecl(rewritten); err != nil {
			t.Fatalf("AddDecl: %v", err)
		}
	}

	srcDecls, dstDecls := src.Decls(), dstMod.Decls()
	if len(srcDecls) != len(dstDecls) {
		t.Fatalf("decl count: src=%d dst=%d", len(srcDecls), len(dstDecls))
	}
	for i, sd := range srcDecls {
		dd := dstDecls[i]
		if ir.GetDeclName(sd) != ir.GetDeclName(dd) {
			t.Errorf("decl %d: name %q != %q", i, ir.GetDeclName(sd), ir.GetDeclName(dd))
		}
		if sd.Tag() != dd.Tag() {
			t.Errorf("decl %d: tag %s != %s", i, sd.Tag(), dd.Tag())
		}
	}
}

// TestRewriteNodeIsMemoized is spec.md §8's quantified invariant: "For
// every rewriter R and every source node S: if rewrite_node(R, S) is
// called twice, both calls return the same destination node."
func TestRewriteNodeIsMemoized(t *testing.T) {
	src := buildSumModule(t)
	dstArena := ir.New(src.Arena().Config())
	r := rewrite.New(src.Arena(), dstArena, nil)

	fn := src.Decls()[0]
	first := r.Rewrite(fn)
	second := r.Rewrite(fn)
	if first != second {
		t.Fatalf("rewrite of the same source node returned different destination nodes")
	}
}

// TestGenericRecoversJoinYieldTypes exercises Generic's If/Join path,
// where the yield types aren't stored on JoinPayload and must be
// recovered from the rewritten branch values' own types.
func TestGenericRecoversJoinYieldTypes(t *testing.T) {
	conf := arenacfg.DefaultConfig()
	conf.CheckTypes = true
	a := ir.New(conf)
	mod := module.New(a, "m")
	i32 := ir.IntType(a, arenacfg.IntSize32, true)
	fn, err := mod.NewFunction("pick", nil, nil, []*ir.Node{i32}, nil)
	if err != nil {
		t.Fatalf("NewFunction: %v", err)
	}

	bb := builder.Begin(a)
	cond := ir.BoolLiteral(a, true)
	results := bb.GenIf(cond, []*ir.Node{i32},
		func(sub *builder.Builder) *ir.Node {
			return ir.Join(a, ir.JoinSelection, a.InternNodes([]*ir.Node{i32}),
				[]*ir.Node{ir.IntLiteral(a, arenacfg.IntSize32, true, 1)})
		},
		func(sub *builder.Builder) *ir.Node {
			return ir.Join(a, ir.JoinSelection, a.InternNodes([]*ir.Node{i32}),
				[]*ir.Node{ir.IntLiteral(a, arenacfg.IntSize32, true, 2)})
		},
	)
	ret := ir.Return(a, a.InternNodes([]*ir.Node{i32}), results, ir.AbsMem(a, fn))
	ir.SetFunctionBody(fn, bb.FinishBody(ret))
	mod.Seal()

	dstArena := ir.New(a.Config())
	dstMod := module.New(dstArena, mod.Name())
	r := rewrite.New(a, dstArena, nil)
	r.DstOwnerModule = dstMod
	rewritten := r.Rewrite(fn)
	if rewritten == nil || rewritten.Tag() != ir.TagFunction {
		t.Fatalf("expected a rewritten Function, got %v", rewritten)
	}
}
