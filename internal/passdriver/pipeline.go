package passdriver

import (
	"fmt"
	"time"

	"github.com/alichraghi/shady/internal/logging"
	"github.com/alichraghi/shady/internal/module"
)

// Pass is one named stage of the pipeline: a function from a module
// (plus the compiler config) to its replacement module, grounded on
// original_source/src/shady/ir.h's run_compiler_passes driving a fixed
// sequence of transformations over **mod.
type Pass struct {
	Name string
	Run  func(cfg Config, mod *module.Module) (*module.Module, error)
}

// Pipeline runs a sequence of Passes over a module, then an optional
// Backend, instrumenting each pass with Metrics and Logger.
type Pipeline struct {
	Passes  []Pass
	Backend Backend
	Metrics *Metrics
	Logger  *logging.Logger
}

// NewPipeline builds an empty Pipeline. A nil logger falls back to
// logging.Default; a nil Backend falls back to NoBackend.
func NewPipeline(metrics *Metrics, logger *logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Default
	}
	return &Pipeline{Metrics: metrics, Logger: logger, Backend: NoBackend}
}

// Use appends pass to the pipeline and returns the Pipeline, for
// chained construction.
func (p *Pipeline) Use(pass Pass) *Pipeline {
	p.Passes = append(p.Passes, pass)
	return p
}

// Run executes every pass in order over mod, each one re-hosting into
// whatever arena its Run function chooses (spec.md §6.5: a pass that
// targets a new arena must copy ArenaConfig unless intentionally
// flipping a flag -- individual Pass.Run implementations are
// responsible for that, e.g. via RehostCopy/RehostToTyped), then
// invokes p.Backend. A pass error aborts the pipeline immediately, per
// spec.md §7's "all errors are fatal" recovery policy for the core.
func (p *Pipeline) Run(cfg Config, mod *module.Module) ([]byte, error) {
	cur := mod
	for _, pass := range p.Passes {
		start := time.Now()
		next, err := pass.Run(cfg, cur)
		elapsed := time.Since(start)

		declCount := 0
		if next != nil {
			declCount = len(next.Decls())
		}
		if p.Metrics != nil {
			p.Metrics.observe(pass.Name, elapsed, declCount)
		}

		if err != nil {
			p.Logger.Errorf("pass %q failed after %s: %v", pass.Name, elapsed, err)
			return nil, fmt.Errorf("passdriver: pass %q: %w", pass.Name, err)
		}
		p.Logger.DebugVf("pass %q: %d decls in %s", pass.Name, declCount, elapsed)
		cur = next
	}

	backend := p.Backend
	if backend == nil {
		backend = NoBackend
	}
	out, err := backend(cfg, cur)
	if err != nil {
		p.Logger.Warnf("back-end: %v", err)
		return nil, err
	}
	return out, nil
}
