package ir

// Payload is implemented by every concrete per-tag payload struct (see
// payloads.go). hashKey feeds the arena's hash-cons bucket table;
// equalPayload is the fallback exact-match check within a bucket. Both
// only need to consider structural tags' payloads — nominal payloads
// never go through interning.
type Payload interface {
	hashKey() uint64
	equalPayload(Payload) bool
}

// Node is the universal IR unit: every type, value, instruction,
// terminator, declaration, abstraction, annotation and meta construct
// is a Node distinguished by its Tag (spec.md §3.1).
type Node struct {
	arenaRef *Arena
	id       uint64
	tag      Tag
	payload  Payload
	typ      *Node // qualified type, nil for type-kind/declaration nodes
}

// Arena returns the (non-owning) arena this node belongs to.
func (n *Node) Arena() *Arena { return n.arenaRef }

// ID returns the node's arena-unique, monotonically assigned id.
func (n *Node) ID() uint64 { return n.id }

// Tag returns the node's variant discriminator.
func (n *Node) Tag() Tag { return n.tag }

// Payload returns the node's variant-specific payload record.
func (n *Node) Payload() Payload { return n.payload }

// Type returns the node's type (another Node of type-kind), or nil for
// nodes that are themselves types or for declaration nodes (spec.md
// §3.1).
func (n *Node) Type() *Node { return n.typ }

// Category returns the node's structural category.
func (n *Node) Category() Category { return CategoryOf(n.tag) }

// Same reports whether a and b are the same node instance. For
// structural tags this is equivalent to deep structural equality
// (invariant 1, spec.md §3.3); for nominal tags it is address
// equality, which is the only equality nominal nodes support.
func Same(a, b *Node) bool { return a == b }

func mixHash(tag Tag, payloadHash uint64) uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	h = (h ^ uint64(tag)) * prime
	h = (h ^ payloadHash) * prime
	return h
}

// InternNode turns a (tag, payload, type) triple into a Node.
// Structural tags are hash-consed: a second call with an equal (tag,
// payload) pair returns the identical pointer (spec.md §8's quantified
// invariant). Nominal tags always allocate a fresh, uniquely-addressed
// node; the nominal constructors in decls.go call allocNode directly.
//
// This is the construction-time choke point every exported constructor
// in construct.go routes through, after the type checker (typecheck.go)
// and folder (fold.go) have had their say.
func (a *Arena) InternNode(tag Tag, p Payload, typ *Node) *Node {
	a.mustBeLive()
	if IsNominal(tag) {
		return a.allocNode(tag, p, typ)
	}

	key := mixHash(tag, p.hashKey())
	for _, cand := range a.structural[key] {
		if cand.tag == tag && cand.payload.equalPayload(p) {
			return cand
		}
	}
	n := a.allocNode(tag, p, typ)
	a.structural[key] = append(a.structural[key], n)
	return n
}

// InternNodes interns a slice of *Node into a Nodes handle; equal
// contents (by node pointer, since nodes are already canonical) collapse
// to one backing array.
func (a *Arena) InternNodes(items []*Node) Nodes {
	a.mustBeLive()
	if len(items) == 0 {
		return Nodes{}
	}
	h := fnvSeed
	for _, it := range items {
		var id uint64
		if it != nil {
			id = it.id + 1 // +1 so nil (0) and real id 0 don't collide
		}
		h = mixHash64(h, id)
	}
	for _, cand := range a.nodeLists[h] {
		if nodesEqual(cand, items) {
			return cand
		}
	}
	cp := make([]*Node, len(items))
	copy(cp, items)
	handle := Nodes{data: &nodesData{items: cp}}
	a.nodeLists[h] = append(a.nodeLists[h], handle)
	return handle
}

// InternStrings interns a slice of strings into a Strings handle.
func (a *Arena) InternStrings(items []string) Strings {
	a.mustBeLive()
	if len(items) == 0 {
		return Strings{}
	}
	h := fnvSeed
	for _, it := range items {
		h = mixHash64(h, stringHash(it))
	}
	for _, cand := range a.stringLists[h] {
		if stringsEqual(cand, items) {
			return cand
		}
	}
	cp := make([]string, len(items))
	copy(cp, items)
	handle := Strings{data: &stringsData{items: cp}}
	a.stringLists[h] = append(a.stringLists[h], handle)
	return handle
}

const fnvSeed = uint64(14695981039346656037)

func mixHash64(h, v uint64) uint64 {
	const prime = 1099511628211
	return (h ^ v) * prime
}

func nodesEqual(h Nodes, items []*Node) bool {
	if h.Count() != len(items) {
		return false
	}
	for i, it := range items {
		if h.At(i) != it {
			return false
		}
	}
	return true
}

func stringsEqual(h Strings, items []string) bool {
	if h.Count() != len(items) {
		return false
	}
	for i, it := range items {
		if h.At(i) != it {
			return false
		}
	}
	return true
}
