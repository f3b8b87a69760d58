// Package builder implements the body builder of spec.md §4.4: an
// imperative, append-only front end that accumulates instructions and
// folds them into the IR's nested Let(instr, Lambda(params, body))
// structure only once the caller supplies a terminator. Grounded on
// original_source/src/shady/body_builder.c.
package builder

import "github.com/alichraghi/shady/internal/ir"

// stackEntry mirrors body_builder.c's StackEntry{instr, tail, mut}.
// tail is not pre-built here: AnonymousLambda is a structural
// (hash-consed) node in this IR, so it cannot be mutated in place the
// way the original's `entry.tail->payload.lam.body = terminator`
// does. Instead Params is kept and the lambda is built bottom-up in
// FinishBody, once the tail's body is finally known (see that file's
// comment for the full rationale).
type stackEntry struct {
	instr  *ir.Node
	params []*ir.Node
	mut    bool
}

// Builder accumulates a function/basic-block body one instruction at
// a time. A Builder is single-use: call FinishBody or CancelBody
// exactly once.
type Builder struct {
	arena    *ir.Arena
	stack    []stackEntry
	deferred []deferredWrap
	done     bool
}

// Begin starts a new body builder over arena (begin_body).
func Begin(a *ir.Arena) *Builder {
	return &Builder{arena: a}
}

// Arena returns the builder's arena.
func (b *Builder) Arena() *ir.Arena { return b.arena }

func (b *Builder) mustBeOpen() {
	if b.done {
		panic("builder: use of a finished or cancelled Builder")
	}
}

// unwrapMultipleYieldTypes mirrors the original's
// unwrap_multiple_yield_types: an instruction's type may itself be a
// RecordType wrapping several result types (spec.md §4.4's multi-value
// binding), in which case each member is one output; otherwise the
// instruction yields exactly one value of its own type.
func unwrapMultipleYieldTypes(qt *ir.Node) []*ir.Node {
	inner := ir.Unqualified(qt)
	if inner.Tag() != ir.TagRecordType {
		return []*ir.Node{qt}
	}
	rp := inner.Payload().(ir.RecordTypePayload)
	uniform := ir.IsUniform(qt)
	out := make([]*ir.Node, rp.Members.Count())
	for i := 0; i < rp.Members.Count(); i++ {
		out[i] = ir.Qualified(qt.Arena(), uniform, rp.Members.At(i))
	}
	return out
}

// createOutputVariables is create_output_variables: builds the Param
// nodes bound to value's outputs, honoring an explicit outputsCount/
// providedTypes override for untyped arenas or narrowed subtypes.
func createOutputVariables(a *ir.Arena, value *ir.Node, outputsCount int, providedTypes []*ir.Node, names []string) []*ir.Node {
	var declaredTypes []*ir.Node
	if a.Config().CheckTypes {
		declaredTypes = unwrapMultipleYieldTypes(value.Type())
		if outputsCount == 0 && len(declaredTypes) > 0 {
			outputsCount = len(declaredTypes)
		}
		if providedTypes != nil {
			for i, pt := range providedTypes {
				if !ir.IsSubtype(pt, ir.Unqualified(declaredTypes[i])) {
					panic("builder: provided output type is not a subtype of the instruction's declared result type")
				}
			}
		}
	}
	vars := make([]*ir.Node, outputsCount)
	for i := 0; i < outputsCount; i++ {
		var ty *ir.Node
		switch {
		case providedTypes != nil:
			ty = ir.Qualified(a, true, providedTypes[i])
		case declaredTypes != nil:
			ty = declaredTypes[i]
		}
		var name string
		if names != nil {
			name = names[i]
		}
		vars[i] = ir.BoundParam(a, value, i, ty, name)
	}
	return vars
}
