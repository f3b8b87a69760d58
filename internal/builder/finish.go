package builder

import "github.com/alichraghi/shady/internal/ir"

// FinishBody is finish_body: folds the accumulated instruction stack
// right-to-left around terminator, producing nested
// Let(instr, Lambda(params, body)) nodes. Because AnonymousLambda is
// structural (hash-consed) rather than the original's mutable-in-place
// node, each lambda is built only once its body (the fold's running
// `terminator`) is fully known, instead of being pre-allocated and
// patched afterwards — the bottom-up fold direction is identical,
// only the "when is the lambda actually constructed" moment differs.
//
// Any deferred blocks registered via Defer are applied after the
// ordinary stack, outermost-registered-first, before the ordinary
// fold runs — see deferred.go.
func (b *Builder) FinishBody(terminator *ir.Node) *ir.Node {
	b.mustBeOpen()
	terminator = b.applyDeferred(terminator)

	cur := terminator
	for i := len(b.stack) - 1; i >= 0; i-- {
		entry := b.stack[i]
		tail := ir.AnonymousLambda(b.arena, entry.params, cur)
		cur = ir.Let(b.arena, entry.instr, tail)
	}

	b.done = true
	b.stack = nil
	return cur
}

// CancelBody abandons the builder without producing a term. Since
// nothing here holds external resources (unlike the original's malloc'd
// BodyBuilder/list), this only guards against further use.
func (b *Builder) CancelBody() {
	b.done = true
	b.stack = nil
	b.deferred = nil
}
