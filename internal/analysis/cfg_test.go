package analysis_test

import (
	"testing"

	"github.com/alichraghi/shady/internal/analysis"
	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/builder"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
)

// buildBranchyFunction builds pick() -> i32 { if true { join 1 } else
// { join 2 } }, an If with two structured branch bodies, the minimal
// shape exercising EdgeStructuredEnterBody and EdgeStructuredLeaveBody.
func buildBranchyFunction(t *testing.T) *ir.Node {
	t.Helper()
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
	return fn
}

func TestBuildCFGHasStructuredEdges(t *testing.T) {
	fn := buildBranchyFunction(t)
	cfg := analysis.BuildCFG(fn)

	entry := cfg.Entry
	if entry.Abs != fn {
		t.Fatalf("entry node should wrap the function itself")
	}

	var sawEnterBody, sawLeaveBody int
	for _, n := range cfg.Nodes {
		for _, e := range n.Succs {
			switch e.Kind {
			case analysis.EdgeStructuredEnterBody:
				sawEnterBody++
			case analysis.EdgeStructuredLeaveBody:
				sawLeaveBody++
			}
		}
	}
	if sawEnterBody < 2 {
		t.Errorf("expected at least 2 StructuredEnterBody edges (true/false case), got %d", sawEnterBody)
	}
	if sawLeaveBody < 2 {
		t.Errorf("expected at least 2 StructuredLeaveBody edges (both joins resuming into tail), got %d", sawLeaveBody)
	}
}

func TestBuildDomTreeEntryHasNoIDom(t *testing.T) {
	fn := buildBranchyFunction(t)
	cfg := analysis.BuildCFG(fn)
	dt := analysis.BuildDomTree(cfg)

	if dt.IDom(cfg.Entry) != nil {
		t.Errorf("entry node must have no immediate dominator")
	}
	for _, n := range cfg.Nodes {
		if n == cfg.Entry {
			continue
		}
		if !dt.Dominates(cfg.Entry, n) {
			t.Errorf("entry should dominate every reachable node")
		}
	}
}

func TestBuildLoopTreeNoLoopsIsFlat(t *testing.T) {
	fn := buildBranchyFunction(t)
	cfg := analysis.BuildCFG(fn)
	lt := analysis.BuildLoopTree(cfg)

	if leaf := lt.LookupLeaf(cfg.Entry); leaf == nil {
		t.Errorf("every CFG node should map to some loop-tree leaf, even outside any loop")
	}
}
