// Package liftglobals implements spec.md §8 scenario 6 ("lift globals
// to SSBO"), end to end: every AsGlobal global variable in a module is
// collected into one synthetic shader-storage-buffer-object record,
// and every reference to one of those globals is rewritten into a Lea
// into that record. Grounded directly on
// original_source/src/backend/spirv/spirv_lift_globals_ssbo.c
// (shd_spvbe_pass_lift_globals_ssbo), adapted to this IR's rewriter
// (internal/rewrite) and the fact that Lea here is a pure pointer
// computation carrying no Mem operand, so a RefDecl site can be
// replaced in place without needing to splice in a body-builder
// prelude the way the original's BodyBuilder-based process() does.
package liftglobals

import (
	arenacfg "github.com/alichraghi/shady/internal/arena"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
	"github.com/alichraghi/shady/internal/passdriver"
	"github.com/alichraghi/shady/internal/rewrite"
)

// Pass is the passdriver.Pass wrapper around Run, ready to append to a
// passdriver.Pipeline via Pipeline.Use(liftglobals.Pass).
var Pass = passdriver.Pass{Name: "lift_globals_ssbo", Run: Run}

// descriptorSet/descriptorBinding mirror the original's hardcoded
// DescriptorSet=0/DescriptorBinding=0 annotation values -- a single
// binding point, since this pass targets exactly one lifted-globals
// buffer per module.
const descriptorSet = 0
const descriptorBinding = 0

// Run lifts every AsGlobal global variable in src into one "lifted_globals"
// AsSSBO record, rewriting every reference in place. Modules with no
// AsGlobal globals are copied through unchanged (RehostCopy with an
// unmodified ArenaConfig, per spec.md §6.5).
func Run(cfg passdriver.Config, src *module.Module) (*module.Module, error) {
	srcDecls := src.Decls()

	var globals []*ir.Node
	for _, decl := range srcDecls {
		if decl.Tag() != ir.TagGlobalVariable {
			continue
		}
		gp := decl.Payload().(*ir.GlobalVariablePayload)
		if gp.AddressSpace == ir.AsGlobal {
			globals = append(globals, decl)
		}
	}
	if len(globals) == 0 {
		return passdriver.RehostCopy(src, src.Arena().Config(), nil)
	}

	dstArena := ir.New(src.Arena().Config())
	dstMod := module.New(dstArena, src.Name())

	memberIndex := make(map[*ir.Node]int, len(globals))
	for i, g := range globals {
		memberIndex[g] = i
	}

	var liftedDecl *ir.Node // set once the rewriter's Dst arena exists, read by process
	r := rewrite.New(src.Arena(), dstArena, func(r *rewrite.Rewriter, n *ir.Node) *ir.Node {
		if n.Tag() == ir.TagRefDecl {
			decl := n.Payload().(ir.RefDeclPayload).Decl
			if decl.Tag() == ir.TagGlobalVariable {
				if idx, ok := memberIndex[decl]; ok {
					return liftedGlobalPointer(r.Dst, liftedDecl, idx)
				}
			}
		}
		return r.Generic(n)
	})
	r.DstOwnerModule = dstMod

	memberTypes := make([]*ir.Node, len(globals))
	memberNames := make([]string, len(globals))
	for i, g := range globals {
		gp := g.Payload().(*ir.GlobalVariablePayload)
		memberTypes[i] = r.Rewrite(gp.PointeeType)
		memberNames[i] = gp.Name.Value()
	}
	structType := ir.RecordType(dstArena, memberTypes, memberNames)

	annotations := []*ir.Node{
		ir.AnnotationValue(dstArena, "DescriptorSet", ir.IntLiteral(dstArena, arenacfg.IntSize32, true, descriptorSet)),
		ir.AnnotationValue(dstArena, "DescriptorBinding", ir.IntLiteral(dstArena, arenacfg.IntSize32, true, descriptorBinding)),
		ir.Annotation(dstArena, "Constants"),
	}

	var err error
	liftedDecl, err = dstMod.NewGlobalVariable("lifted_globals", ir.AsSSBO, structType, annotations)
	if err != nil {
		return nil, err
	}

	for _, decl := range srcDecls {
		if _, lifted := memberIndex[decl]; lifted {
			continue // excluded from the output module, per the original's pass
		}
		rewritten := r.Rewrite(decl)
		if err := dstMod.AddDecl(rewritten); err != nil {
			return nil, err
		}
	}

	return dstMod, nil
}

// liftedGlobalPointer builds the pointer-into-the-record replacement
// for a reference to the idx'th lifted global: Lea(RefDecl(lifted), 0, [idx]).
func liftedGlobalPointer(a *ir.Arena, liftedDecl *ir.Node, idx int) *ir.Node {
	base := ir.RefDecl(a, liftedDecl)
	zero := ir.IntLiteral(a, arenacfg.IntSize32, true, 0)
	member := ir.IntLiteral(a, arenacfg.IntSize32, true, uint64(idx))
	return ir.Lea(a, base, zero, []*ir.Node{member})
}
