// Package rewrite implements the memoized rewriter framework of
// spec.md §4.5: a generic "rebuild this node, recursively rewriting
// its children" traversal with a per-arena memo table, so that passes
// only need to override the handful of tags they actually transform.
package rewrite

import "github.com/alichraghi/shady/internal/ir"

// RewriteFn is a pass's node-rewriting hook: it receives the
// in-progress Rewriter (to recurse via r.Rewrite on children) and the
// source node, and returns its replacement in the destination arena.
// Passes that don't override a given tag should fall back to
// r.Generic(n), which performs the default structural recreation.
type RewriteFn func(r *Rewriter, n *ir.Node) *ir.Node

// Rewriter carries the memo table mapping source nodes to their
// already-computed destination replacements (spec.md §4.5's
// "memoized rewrite_node"), plus an overlay stack supporting scoped
// memo entries (e.g. a pass that locally rebinds a parameter inside
// one function body without leaking that substitution to sibling
// functions).
type Rewriter struct {
	Src, Dst *ir.Arena
	fn       RewriteFn
	overlays []map[*ir.Node]*ir.Node // overlays[len-1] is the active (innermost) scope

	// DstOwnerModule is the WeakModule newly rewritten declarations are
	// attributed to. Set it before rewriting anything when the result
	// is meant to populate a destination Module.
	DstOwnerModule ir.WeakModule
}

// New creates a Rewriter translating nodes from src to dst, dispatching
// through fn (or, if fn is nil, purely generic structural recreation —
// an identity rewrite modulo re-interning in dst).
func New(src, dst *ir.Arena, fn RewriteFn) *Rewriter {
	r := &Rewriter{Src: src, Dst: dst, fn: fn}
	r.overlays = []map[*ir.Node]*ir.Node{make(map[*ir.Node]*ir.Node)}
	if r.fn == nil {
		r.fn = (*Rewriter).Generic
	}
	return r
}

func (r *Rewriter) top() map[*ir.Node]*ir.Node { return r.overlays[len(r.overlays)-1] }

// CloneDict pushes a fresh overlay scope that shadows (but does not
// destroy) the enclosing one: lookups fall through to outer scopes,
// but writes land in the new, innermost one. Mirrors the original's
// clone_dict used when entering a nested scope whose local
// substitutions must not escape it.
func (r *Rewriter) CloneDict() {
	clone := make(map[*ir.Node]*ir.Node, len(r.top()))
	for k, v := range r.top() {
		clone[k] = v
	}
	r.overlays = append(r.overlays, clone)
}

// DestroyDict pops the innermost overlay scope, discarding whatever
// memo entries or local substitutions it introduced (destroy_dict).
func (r *Rewriter) DestroyDict() {
	if len(r.overlays) == 1 {
		panic("rewrite: DestroyDict called with no overlay to pop")
	}
	r.overlays = r.overlays[:len(r.overlays)-1]
}

// Substitute registers an explicit replacement for src within the
// current (innermost) scope, without going through the ordinary
// rewrite dispatch. Used by passes that need to rebind a parameter
// (e.g. loop-carried variables during a loop-unrolling pass).
func (r *Rewriter) Substitute(src, dst *ir.Node) {
	r.top()[src] = dst
}

// lookup searches from innermost to outermost scope.
func (r *Rewriter) lookup(n *ir.Node) (*ir.Node, bool) {
	for i := len(r.overlays) - 1; i >= 0; i-- {
		if v, ok := r.overlays[i][n]; ok {
			return v, true
		}
	}
	return nil, false
}

// Rewrite is rewrite_node: the memoized entry point every pass calls
// on every child it touches. Nominal (declaration/basic-block) nodes
// are handled by the header-first protocol in module.go; everything
// else dispatches through r.fn.
func (r *Rewriter) Rewrite(n *ir.Node) *ir.Node {
	if n == nil {
		return nil
	}
	if cached, ok := r.lookup(n); ok {
		return cached
	}
	if ir.IsNominal(n.Tag()) {
		return r.rewriteNominal(n)
	}
	result := r.fn(r, n)
	r.top()[n] = result
	return result
}

// RewriteList applies Rewrite to every element of ns.
func (r *Rewriter) RewriteList(ns ir.Nodes) []*ir.Node {
	out := make([]*ir.Node, ns.Count())
	for i := 0; i < ns.Count(); i++ {
		out[i] = r.Rewrite(ns.At(i))
	}
	return out
}

// RewriteSlice applies Rewrite to every element of a plain slice.
func (r *Rewriter) RewriteSlice(ns []*ir.Node) []*ir.Node {
	out := make([]*ir.Node, len(ns))
	for i, n := range ns {
		out[i] = r.Rewrite(n)
	}
	return out
}
