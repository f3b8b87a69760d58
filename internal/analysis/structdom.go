package analysis

// structdom.go implements spec.md §4.6's "second, stricter dominator
// that stops at structured-region boundaries, used to reason about
// scoped break/continue targets": the same iterative algorithm as
// dom.go, but computed over a view of the CFG that drops
// StructuredEnterBody/StructuredLeaveBody/StructuredPseudoExit edges
// entirely, so dominance never crosses into or out of an if/loop/match
// branch body.

// StructDomTree is DomTree's structured-boundary-respecting sibling.
type StructDomTree struct {
	cfg   *CFG
	idom  map[*CFGNode]*CFGNode
	order map[*CFGNode]int
	rpo   []*CFGNode
}

func isStructuralEdge(k EdgeKind) bool {
	switch k {
	case EdgeStructuredEnterBody, EdgeStructuredLeaveBody, EdgeStructuredPseudoExit:
		return true
	default:
		return false
	}
}

func filteredSuccs(n *CFGNode) []*CFGNode {
	var out []*CFGNode
	for _, e := range n.Succs {
		if !isStructuralEdge(e.Kind) {
			out = append(out, e.To)
		}
	}
	return out
}

func filteredPreds(n *CFGNode) []*CFGNode {
	var out []*CFGNode
	for _, e := range n.Preds {
		if !isStructuralEdge(e.Kind) {
			out = append(out, e.To)
		}
	}
	return out
}

// BuildStructDomTree computes the structured dominator tree of cfg.
func BuildStructDomTree(cfg *CFG) *StructDomTree {
	d := &StructDomTree{cfg: cfg, idom: make(map[*CFGNode]*CFGNode), order: make(map[*CFGNode]int)}
	d.rpo = filteredReversePostorder(cfg.Entry)
	for i, n := range d.rpo {
		d.order[n] = i
	}
	d.idom[cfg.Entry] = cfg.Entry

	changed := true
	for changed {
		changed = false
		for _, n := range d.rpo {
			if n == cfg.Entry {
				continue
			}
			var newIdom *CFGNode
			for _, p := range filteredPreds(n) {
				if _, ok := d.idom[p]; !ok {
					continue
				}
				if newIdom == nil {
					newIdom = p
					continue
				}
				newIdom = d.intersect(newIdom, p)
			}
			if newIdom != nil && d.idom[n] != newIdom {
				d.idom[n] = newIdom
				changed = true
			}
		}
	}
	return d
}

func (d *StructDomTree) intersect(a, b *CFGNode) *CFGNode {
	for a != b {
		for d.order[a] > d.order[b] {
			a = d.idom[a]
		}
		for d.order[b] > d.order[a] {
			b = d.idom[b]
		}
	}
	return a
}

// Dominates reports whether a structurally dominates b. Nodes
// unreachable without crossing a structured-region boundary from a
// never dominate: their idom entry is simply absent.
func (d *StructDomTree) Dominates(a, b *CFGNode) bool {
	for cur := b; ; {
		if cur == a {
			return true
		}
		if cur == d.cfg.Entry {
			return cur == a
		}
		next, ok := d.idom[cur]
		if !ok || next == nil {
			return false
		}
		cur = next
	}
}

func filteredReversePostorder(entry *CFGNode) []*CFGNode {
	var post []*CFGNode
	visited := make(map[*CFGNode]bool)
	var dfs func(*CFGNode)
	dfs = func(n *CFGNode) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, s := range filteredSuccs(n) {
			dfs(s)
		}
		post = append(post, n)
	}
	dfs(entry)
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}
