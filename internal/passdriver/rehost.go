package passdriver

import (
	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
	"github.com/alichraghi/shady/internal/rewrite"
)

// RehostToTyped implements spec.md §6.2's "a later pass re-hosts the
// module into a typed arena": the front-end builds with
// name_bound=false, check_types=false; this copies every declaration
// into a fresh arena with CheckTypes (and NameBound) flipped on via
// the identity rewriter, so every node is re-validated by the type
// checker as it is reconstructed (internal/rewrite.Generic's
// documented side effect of copying).
func RehostToTyped(src *module.Module) (*module.Module, error) {
	cfg := src.Arena().Config()
	cfg.NameBound = true
	cfg.CheckTypes = true

	dst := ir.New(cfg)
	dstMod := module.New(dst, src.Name())

	r := rewrite.New(src.Arena(), dst, nil)
	r.DstOwnerModule = dstMod

	for _, decl := range src.Decls() {
		rewritten := r.Rewrite(decl)
		if err := dstMod.AddDecl(rewritten); err != nil {
			return nil, err
		}
	}
	return dstMod, nil
}

// RehostCopy copies src's declarations into a fresh arena built with
// cfg, per spec.md §6.5: "a pass that targets a new arena must copy
// ArenaConfig from the source arena unless it is intentionally
// flipping a flag." Callers that only flip one or two fields should
// start from src.Arena().Config() and mutate before calling.
func RehostCopy(src *module.Module, cfg arenacfg.Config, fn rewrite.RewriteFn) (*module.Module, error) {
	dst := ir.New(cfg)
	dstMod := module.New(dst, src.Name())

	r := rewrite.New(src.Arena(), dst, fn)
	r.DstOwnerModule = dstMod

	for _, decl := range src.Decls() {
		rewritten := r.Rewrite(decl)
		if err := dstMod.AddDecl(rewritten); err != nil {
			return nil, err
		}
	}
	return dstMod, nil
}
