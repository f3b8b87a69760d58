package ir_test

import (
	"testing"

	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/ir"
)

// TestStructuralInterningCollapsesEqualNodes is spec.md §3.3's
// invariant 1: two constructor calls with equal (tag, payload)
// produce the identical pointer for a structural tag.
func TestStructuralInterningCollapsesEqualNodes(t *testing.T) {
	a := ir.New(arenacfg.DefaultConfig())

	i32a := ir.IntType(a, arenacfg.IntSize32, true)
	i32b := ir.IntType(a, arenacfg.IntSize32, true)
	if i32a != i32b {
		t.Errorf("two IntType(32, signed) calls should return the identical interned node")
	}

	u32 := ir.IntType(a, arenacfg.IntSize32, false)
	if i32a == u32 {
		t.Errorf("IntType(32, signed) and IntType(32, unsigned) must not collapse to the same node")
	}

	litA := ir.IntLiteral(a, arenacfg.IntSize32, true, 42)
	litB := ir.IntLiteral(a, arenacfg.IntSize32, true, 42)
	if litA != litB {
		t.Errorf("two IntLiteral(42) calls should return the identical interned node")
	}
	litC := ir.IntLiteral(a, arenacfg.IntSize32, true, 43)
	if litA == litC {
		t.Errorf("IntLiteral(42) and IntLiteral(43) must not collapse to the same node")
	}
}

// TestNominalConstructorsAlwaysAllocateFresh is the nominal half of
// spec.md §3.3's invariant 1: two Functions with identical names and
// signatures are still distinct nodes (address identity).
func TestNominalConstructorsAlwaysAllocateFresh(t *testing.T) {
	a := ir.New(arenacfg.DefaultConfig())
	i32 := ir.IntType(a, arenacfg.IntSize32, true)

	fn1 := ir.NewFunction(a, nil, "f", nil, nil, []*ir.Node{i32}, nil)
	fn2 := ir.NewFunction(a, nil, "f", nil, nil, []*ir.Node{i32}, nil)
	if fn1 == fn2 {
		t.Errorf("two NewFunction calls must allocate distinct nodes even with identical names/signatures")
	}
}
