package module_test

import (
	"errors"
	"testing"

	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
)

func TestResolveFindsDeclByName(t *testing.T) {
	a := ir.New(arenacfg.DefaultConfig())
	mod := module.New(a, "m")
	i32 := ir.IntType(a, arenacfg.IntSize32, true)
	decl, err := mod.NewFunction("counter", nil, nil, []*ir.Node{i32}, nil)
	if err != nil {
		t.Fatalf("NewFunction: %v", err)
	}

	found, err := mod.Resolve("counter")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if found != decl {
		t.Errorf("Resolve returned a different node than NewFunction produced")
	}
}

func TestResolveMissingNameSuggestsNearestMatch(t *testing.T) {
	a := ir.New(arenacfg.DefaultConfig())
	mod := module.New(a, "m")
	i32 := ir.IntType(a, arenacfg.IntSize32, true)
	if _, err := mod.NewFunction("counter", nil, nil, []*ir.Node{i32}, nil); err != nil {
		t.Fatalf("NewFunction: %v", err)
	}

	_, err := mod.Resolve("countr") // one char dropped
	var dangling *module.ErrDanglingName
	if !errors.As(err, &dangling) {
		t.Fatalf("expected *ErrDanglingName, got %T: %v", err, err)
	}
	if len(dangling.Suggestions) == 0 || dangling.Suggestions[0] != "counter" {
		t.Errorf("expected 'counter' as the nearest suggestion, got %v", dangling.Suggestions)
	}
}

func TestAddDeclRejectsDuplicateName(t *testing.T) {
	a := ir.New(arenacfg.DefaultConfig())
	mod := module.New(a, "m")
	i32 := ir.IntType(a, arenacfg.IntSize32, true)
	if _, err := mod.NewFunction("f", nil, nil, []*ir.Node{i32}, nil); err != nil {
		t.Fatalf("NewFunction: %v", err)
	}

	dup := ir.NewFunction(a, mod, "f", nil, nil, []*ir.Node{i32}, nil)
	err := mod.AddDecl(dup)
	var dupErr *module.ErrDuplicateDecl
	if !errors.As(err, &dupErr) {
		t.Fatalf("expected *ErrDuplicateDecl, got %T: %v", err, err)
	}
}

func TestAddDeclRejectsAfterSeal(t *testing.T) {
	a := ir.New(arenacfg.DefaultConfig())
	mod := module.New(a, "m")
	mod.Seal()

	i32 := ir.IntType(a, arenacfg.IntSize32, true)
	fn := ir.NewFunction(a, mod, "late", nil, nil, []*ir.Node{i32}, nil)
	err := mod.AddDecl(fn)
	var sealedErr *module.ErrModuleSealed
	if !errors.As(err, &sealedErr) {
		t.Fatalf("expected *ErrModuleSealed, got %T: %v", err, err)
	}
}
