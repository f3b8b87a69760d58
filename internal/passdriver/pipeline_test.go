package passdriver_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/builder"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
	"github.com/alichraghi/shady/internal/passdriver"
)

func buildOneFuncModule(t *testing.T) *module.Module {
	t.Helper()
	a := ir.New(arenacfg.DefaultConfig())
	mod := module.New(a, "m")
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
	return mod
}

func identityPass(name string) passdriver.Pass {
	return passdriver.Pass{
		Name: name,
		Run: func(cfg passdriver.Config, mod *module.Module) (*module.Module, error) {
			return passdriver.RehostCopy(mod, mod.Arena().Config(), nil)
		},
	}
}

func TestPipelineRunsPassesInOrderThenNoBackend(t *testing.T) {
	mod := buildOneFuncModule(t)
	metrics := passdriver.NewMetrics(prometheus.NewRegistry())

	var ran []string
	pipeline := passdriver.NewPipeline(metrics, nil)
	for _, name := range []string{"a", "b", "c"} {
		n := name
		pipeline.Use(passdriver.Pass{
			Name: n,
			Run: func(cfg passdriver.Config, mod *module.Module) (*module.Module, error) {
				ran = append(ran, n)
				return passdriver.RehostCopy(mod, mod.Arena().Config(), nil)
			},
		})
	}

	_, err := pipeline.Run(passdriver.DefaultConfig(), mod)
	if !errors.Is(err, passdriver.ErrNoBackend) {
		t.Fatalf("expected ErrNoBackend from the default backend, got %v", err)
	}
	if want := []string{"a", "b", "c"}; !equalStrings(ran, want) {
		t.Errorf("passes ran out of order: got %v, want %v", ran, want)
	}
}

func TestPipelineAbortsOnPassError(t *testing.T) {
	mod := buildOneFuncModule(t)
	metrics := passdriver.NewMetrics(prometheus.NewRegistry())

	boom := errors.New("boom")
	ranSecond := false
	pipeline := passdriver.NewPipeline(metrics, nil).
		Use(passdriver.Pass{Name: "fails", Run: func(passdriver.Config, *module.Module) (*module.Module, error) {
			return nil, boom
		}}).
		Use(passdriver.Pass{Name: "never", Run: func(cfg passdriver.Config, mod *module.Module) (*module.Module, error) {
			ranSecond = true
			return mod, nil
		}})

	_, err := pipeline.Run(passdriver.DefaultConfig(), mod)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the pass error wrapped, got %v", err)
	}
	if ranSecond {
		t.Errorf("a pass after a failing one must not run")
	}
}

func TestRehostToTypedPreservesDeclCount(t *testing.T) {
	mod := buildOneFuncModule(t)
	typed, err := passdriver.RehostToTyped(mod)
	if err != nil {
		t.Fatalf("RehostToTyped: %v", err)
	}
	if len(typed.Decls()) != len(mod.Decls()) {
		t.Errorf("decl count changed across rehost: %d != %d", len(typed.Decls()), len(mod.Decls()))
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
