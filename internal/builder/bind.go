package builder

import "github.com/alichraghi/shady/internal/ir"

// BindInstruction appends instruction to the body, returning the
// params bound to its (possibly zero, possibly many) results. Mirrors
// append_instruction: outputsCount/types are entirely inferred from
// the instruction's own type.
func (b *Builder) BindInstruction(instr *ir.Node) []*ir.Node {
	return b.BindInstructionNamed(instr, nil)
}

// BindInstructionNamed is BindInstruction with debug names attached
// to each output (bind_instruction_named).
func (b *Builder) BindInstructionNamed(instr *ir.Node, names []string) []*ir.Node {
	b.mustBeOpen()
	params := createOutputVariables(b.arena, instr, 0, nil, names)
	b.stack = append(b.stack, stackEntry{instr: instr, params: params})
	return params
}

// BindInstructionExtra is bind_instruction_extra: the caller supplies
// the exact output count and (optionally) narrowed result types,
// needed whenever the arena isn't typed (so nothing can be inferred)
// or the caller wants a subtype narrower than the instruction's own
// declared result type.
func (b *Builder) BindInstructionExtra(instr *ir.Node, outputsCount int, providedTypes []*ir.Node, names []string) []*ir.Node {
	b.mustBeOpen()
	params := createOutputVariables(b.arena, instr, outputsCount, providedTypes, names)
	b.stack = append(b.stack, stackEntry{instr: instr, params: params})
	return params
}

// BindInstructionExtraMutable is BindInstructionExtra but marks the
// binding as a mutable local (declare_local_variable's mut=true path):
// a later pass (internal/passes) may legally rebind these params'
// uses to a different value, which plain let-bound outputs forbid.
func (b *Builder) BindInstructionExtraMutable(instr *ir.Node, outputsCount int, providedTypes []*ir.Node, names []string) []*ir.Node {
	b.mustBeOpen()
	params := createOutputVariables(b.arena, instr, outputsCount, providedTypes, names)
	b.stack = append(b.stack, stackEntry{instr: instr, params: params, mut: true})
	return params
}

// DeclareLocalVariable is declare_local_variable: like
// BindInstructionExtra, but tags the binding as mutable when mut is
// true.
func (b *Builder) DeclareLocalVariable(initialValue *ir.Node, mut bool, providedTypes []*ir.Node, outputsCount int, names []string) []*ir.Node {
	b.mustBeOpen()
	params := createOutputVariables(b.arena, initialValue, outputsCount, providedTypes, names)
	b.stack = append(b.stack, stackEntry{instr: initialValue, params: params, mut: mut})
	return params
}
