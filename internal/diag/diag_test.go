package diag_test

import (
	"strings"
	"testing"

	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/diag"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
)

func TestFormatDanglingNameWithSuggestions(t *testing.T) {
	err := &module.ErrDanglingName{Name: "computeMain", Suggestions: []string{"compute_main", "computeMan"}}
	got := diag.FormatDanglingName(err)
	if !strings.Contains(got, `"computeMain"`) || !strings.Contains(got, `"compute_main"`) {
		t.Errorf("expected both the missing name and a suggestion quoted in: %s", got)
	}
}

func TestFormatDanglingNameWithNoSuggestions(t *testing.T) {
	err := &module.ErrDanglingName{Name: "ghost"}
	got := diag.FormatDanglingName(err)
	if got != `no declaration named "ghost"` {
		t.Errorf("expected the no-suggestions form, got %q", got)
	}
}

func TestFormatTypeErrorRendersNodeTable(t *testing.T) {
	a := ir.New(arenacfg.DefaultConfig())
	i32 := ir.IntType(a, arenacfg.IntSize32, true)
	lit := ir.IntLiteral(a, arenacfg.IntSize32, true, 7)

	typeErr := captureTypeError(t, func() {
		// Return's arity check panics a *ir.TypeError on a mismatched
		// value count -- the cheapest way to get a real TypeError
		// without reaching into an unexported constructor.
		ir.Return(a, a.InternNodes([]*ir.Node{i32, i32}), []*ir.Node{lit}, nil)
	})

	got := diag.FormatTypeError(typeErr)
	if !strings.Contains(got, "type error in return") {
		t.Errorf("expected the op name in the formatted output, got: %s", got)
	}
	if !strings.Contains(got, "IntLiteral") {
		t.Errorf("expected the offending node's tag in the table, got: %s", got)
	}
}

func captureTypeError(t *testing.T, fn func()) (typeErr *ir.TypeError) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected fn to panic with a *ir.TypeError")
		}
		te, ok := r.(*ir.TypeError)
		if !ok {
			t.Fatalf("expected panic value to be *ir.TypeError, got %T: %v", r, r)
		}
		typeErr = te
	}()
	fn()
	return nil
}
