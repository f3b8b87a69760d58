package liftglobals_test

import (
	"testing"

	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/builder"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
	"github.com/alichraghi/shady/internal/passdriver"
	"github.com/alichraghi/shady/internal/passes/liftglobals"
)

// buildModuleWithGlobal builds a module with one AsGlobal global
// variable "counter" and one function that loads and returns it,
// spec.md §8 scenario 6's minimal input shape.
func buildModuleWithGlobal(t *testing.T) *module.Module {
	t.Helper()
	conf := arenacfg.DefaultConfig()
	conf.CheckTypes = true
	a := ir.New(conf)
	mod := module.New(a, "m")
	i32 := ir.IntType(a, arenacfg.IntSize32, true)

	global, err := mod.NewGlobalVariable("counter", ir.AsGlobal, i32, nil)
	if err != nil {
		t.Fatalf("NewGlobalVariable: %v", err)
	}

	fn, err := mod.NewFunction("read_counter", nil, nil, []*ir.Node{i32}, nil)
	if err != nil {
		t.Fatalf("NewFunction: %v", err)
	}
	bb := builder.Begin(a)
	ptr := ir.RefDecl(a, global)
	loaded := bb.BindInstruction(ir.Load(a, ptr, ir.AbsMem(a, fn)))
	ret := ir.Return(a, a.InternNodes([]*ir.Node{i32}), loaded, ir.AbsMem(a, fn))
	ir.SetFunctionBody(fn, bb.FinishBody(ret))
	mod.Seal()
	return mod
}

func TestLiftGlobalsRemovesGlobalAddsSSBO(t *testing.T) {
	src := buildModuleWithGlobal(t)
	out, err := liftglobals.Run(passdriver.DefaultConfig(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var foundSSBO bool
	var foundOldGlobal bool
	for _, decl := range out.Decls() {
		if decl.Tag() != ir.TagGlobalVariable {
			continue
		}
		gp := decl.Payload().(*ir.GlobalVariablePayload)
		if gp.AddressSpace == ir.AsSSBO {
			foundSSBO = true
		}
		if ir.GetDeclName(decl) == "counter" {
			foundOldGlobal = true
		}
	}
	if !foundSSBO {
		t.Errorf("expected a lifted AsSSBO global variable in the output module")
	}
	if foundOldGlobal {
		t.Errorf("the original AsGlobal 'counter' global must not survive into the output module")
	}

	if _, err := out.Resolve("read_counter"); err != nil {
		t.Errorf("the function referencing the lifted global should still resolve: %v", err)
	}
}

func TestLiftGlobalsNoGlobalsIsPassthrough(t *testing.T) {
	a := ir.New(arenacfg.DefaultConfig())
	mod := module.New(a, "empty")
	i32 := ir.IntType(a, arenacfg.IntSize32, true)
	fn, err := mod.NewFunction("main", nil, nil, []*ir.Node{i32}, nil)
	if err != nil {
		t.Fatalf("NewFunction: %v", err)
	}
	bb := builder.Begin(a)
	ret := ir.Return(a, a.InternNodes([]*ir.Node{i32}),
		[]*ir.Node{ir.IntLiteral(a, arenacfg.IntSize32, true, 0)}, ir.AbsMem(a, fn))
	ir.SetFunctionBody(fn, bb.FinishBody(ret))
	mod.Seal()

	out, err := liftglobals.Run(passdriver.DefaultConfig(), mod)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Decls()) != len(mod.Decls()) {
		t.Errorf("a module with no AsGlobal globals should pass through unchanged: %d != %d",
			len(out.Decls()), len(mod.Decls()))
	}
}
