package analysis

// dom.go computes the dominator tree of a CFG by the standard
// iterative algorithm (Cooper/Harvey/Kennedy): repeatedly intersect
// each node's processed predecessors' idoms over a reverse-postorder
// traversal until fixpoint. Grounded on spec.md §4.6: "Computed once
// per CFG by a standard iterative algorithm; stored as idom per node
// plus a dominates child-list."

// DomTree holds one CFG's dominator relation.
type DomTree struct {
	cfg   *CFG
	idom  map[*CFGNode]*CFGNode
	order map[*CFGNode]int // reverse-postorder index, entry = 0
	rpo   []*CFGNode
}

// BuildDomTree computes the dominator tree of cfg.
func BuildDomTree(cfg *CFG) *DomTree {
	d := &DomTree{cfg: cfg, idom: make(map[*CFGNode]*CFGNode), order: make(map[*CFGNode]int)}
	d.rpo = reversePostorder(cfg.Entry)
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
			for _, e := range n.Preds {
				p := e.To
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

func (d *DomTree) intersect(a, b *CFGNode) *CFGNode {
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

// IDom returns n's immediate dominator, nil for the entry node.
func (d *DomTree) IDom(n *CFGNode) *CFGNode {
	if n == d.cfg.Entry {
		return nil
	}
	return d.idom[n]
}

// Dominates reports whether a dominates b (is_dominated(b, a) in the
// original's naming: ascend b's idom chain looking for a).
func (d *DomTree) Dominates(a, b *CFGNode) bool {
	for cur := b; ; {
		if cur == a {
			return true
		}
		if cur == d.cfg.Entry {
			return cur == a
		}
		cur = d.idom[cur]
		if cur == nil {
			return false
		}
	}
}

// Children returns n's immediate dominator-tree children.
func (d *DomTree) Children(n *CFGNode) []*CFGNode {
	var out []*CFGNode
	for _, m := range d.rpo {
		if m != n && d.idom[m] == n {
			out = append(out, m)
		}
	}
	return out
}

func reversePostorder(entry *CFGNode) []*CFGNode {
	var post []*CFGNode
	visited := make(map[*CFGNode]bool)
	var dfs func(*CFGNode)
	dfs = func(n *CFGNode) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, e := range n.Succs {
			dfs(e.To)
		}
		post = append(post, n)
	}
	dfs(entry)
	// reverse
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}
