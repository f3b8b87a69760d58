package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prometheus/client_golang/prometheus"

	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/builder"
	"github.com/alichraghi/shady/internal/cfgdump"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
	"github.com/alichraghi/shady/internal/passdriver"
	"github.com/alichraghi/shady/internal/passes/liftglobals"
)

// newCompileCommand wires spec.md §6.2's front-end contract
// ("constructors with name_bound=false, check_types=false; a later
// pass re-hosts the module into a typed arena") end to end. There is
// no concrete front-end in scope (shader source parsing is explicitly
// out of scope, spec.md §1/Non-goals), so `compile` builds a small
// demonstration module directly through internal/ir/internal/builder
// -- the same constructors a real front-end would call -- and runs it
// through RehostToTyped, the lift-globals example pass, and the
// back-end stub, exactly the pipeline a front-end-equipped build would
// drive.
func newCompileCommand() *cobra.Command {
	var dotOut string
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "build and run the demo pipeline over a sample module",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCompilerConfig()
			if err != nil {
				return err
			}
			return runCompile(cfg, dotOut)
		},
	}
	cmd.Flags().StringVar(&dotOut, "dot", "", "write a CFG DOT dump of the demo module's functions to this path")
	return cmd
}

func runCompile(cfg passdriver.Config, dotOut string) error {
	src := buildDemoModule()

	typed, err := passdriver.RehostToTyped(src)
	if err != nil {
		return fmt.Errorf("shadyc: rehost to typed arena: %w", err)
	}

	metrics := passdriver.NewMetrics(noopRegisterer{})
	pipeline := passdriver.NewPipeline(metrics, nil).Use(liftglobals.Pass)
	pipeline.Backend = passdriver.NoBackend

	if dotOut != "" {
		if err := writeDemoDOT(typed, dotOut); err != nil {
			return err
		}
	}

	if _, err := pipeline.Run(cfg, typed); err != nil && !errors.Is(err, passdriver.ErrNoBackend) {
		return err
	}
	return nil
}

// buildDemoModule builds a tiny module with one function,
// `main() -> i32`, returning 4 + 38, as a smoke module rather than one
// read from any source file. The arena uses DefaultConfig, so AllowFold
// is off and the add stays an unfolded PrimOp.
func buildDemoModule() *module.Module {
	a := ir.New(arenacfg.DefaultConfig())
	mod := module.New(a, "demo")

	i32 := ir.IntType(a, arenacfg.IntSize32, true)
	fn, err := mod.NewFunction("main", nil, nil, []*ir.Node{i32}, nil)
	if err != nil {
		panic(err) // construction of a fresh demo module cannot fail
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

func writeDemoDOT(mod *module.Module, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("shadyc: create dot output %s: %w", path, err)
	}
	defer f.Close()
	cfgdump.WriteModuleDOT(f, mod.Decls())
	return nil
}

// noopRegisterer discards Prometheus collector registration, used by
// the one-shot `compile` demo which has no /metrics endpoint.
type noopRegisterer struct{}

func (noopRegisterer) Register(prometheus.Collector) error { return nil }
func (noopRegisterer) MustRegister(...prometheus.Collector) {}
func (noopRegisterer) Unregister(prometheus.Collector) bool { return true }
