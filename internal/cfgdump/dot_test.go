package cfgdump_test

import (
	"strings"
	"testing"

	"github.com/alichraghi/shady/internal/analysis"
	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/builder"
	"github.com/alichraghi/shady/internal/cfgdump"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
)

func buildDotSampleFunction(t *testing.T) *ir.Node {
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

func TestWriteDOTContainsStructuredEdgeColors(t *testing.T) {
	fn := buildDotSampleFunction(t)
	cfg := analysis.BuildCFG(fn)

	var buf strings.Builder
	cfgdump.WriteDOT(&buf, fn, cfg)
	out := buf.String()

	if !strings.HasPrefix(out, "digraph CFG {") {
		t.Errorf("expected a digraph header, got: %s", out[:min(40, len(out))])
	}
	if !strings.Contains(out, "color=blue") {
		t.Errorf("expected at least one StructuredEnterBody (blue) edge in output:\n%s", out)
	}
	if !strings.Contains(out, "color=red") {
		t.Errorf("expected at least one StructuredLeaveBody (red) edge in output:\n%s", out)
	}
	if !strings.Contains(out, "pick") {
		t.Errorf("expected the function name in the cluster label:\n%s", out)
	}
}

func TestWriteModuleDOTSkipsDeclarationOnlyFunctions(t *testing.T) {
	a := ir.New(arenacfg.DefaultConfig())
	mod := module.New(a, "m")
	i32 := ir.IntType(a, arenacfg.IntSize32, true)
	decl, err := mod.NewFunction("extern_only", nil, nil, []*ir.Node{i32}, nil)
	if err != nil {
		t.Fatalf("NewFunction: %v", err)
	}
	mod.Seal()

	var buf strings.Builder
	cfgdump.WriteModuleDOT(&buf, []*ir.Node{decl})
	out := buf.String()
	if strings.Contains(out, "extern_only") {
		t.Errorf("declaration-only function must not get a cluster: %s", out)
	}
	if out != "digraph Module {\n}\n" {
		t.Errorf("expected an empty module graph, got %q", out)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
