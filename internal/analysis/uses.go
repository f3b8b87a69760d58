package analysis

import "github.com/alichraghi/shady/internal/ir"

// UsesMap is the use/def map of spec.md §4.6: for every node reachable
// from a function, the set of nodes that reference it as an operand.
// Built by walking ir.Children over every reachable node (bodies,
// CFG-node abstractions, and their transitively-reachable operands).
type UsesMap struct {
	users map[*ir.Node][]*ir.Node
}

// BuildUsesMap walks every abstraction in cfg and every value/type
// reachable from their bodies, recording each node -> its users.
func BuildUsesMap(cfg *CFG) *UsesMap {
	u := &UsesMap{users: make(map[*ir.Node][]*ir.Node)}
	seen := make(map[*ir.Node]bool)
	var visit func(n *ir.Node)
	visit = func(n *ir.Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		for _, child := range ir.Children(n) {
			u.users[child] = append(u.users[child], n)
			visit(child)
		}
	}
	for _, node := range cfg.Nodes {
		if body := ir.GetAbstractionBody(node.Abs); body != nil {
			visit(body)
		}
	}
	return u
}

// UsersOf returns every node that directly references n as an
// operand.
func (u *UsesMap) UsersOf(n *ir.Node) []*ir.Node { return u.users[n] }
