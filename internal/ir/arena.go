package ir

import (
	"fmt"

	"github.com/google/uuid"

	arenacfg "github.com/alichraghi/shady/internal/arena"
)

// segmentSize mirrors the teacher's fixed-size node segment (bump
// allocation in chunks rather than node-by-node, see
// v1/storage/arena/node.go's SegmentSize). Go's GC means we don't need
// a freelist: nodes are never individually freed, only the whole arena
// goes away at once (spec.md §5).
const segmentSize = 512

// WeakModule is the minimal surface an Arena needs to keep a
// bookkeeping reference to a Module it has produced, without importing
// the module package (which itself depends on ir, so ir cannot import
// it back).
type WeakModule interface {
	ModuleName() string
}

// Arena is the hash-consing, bump-allocating owner of every Node,
// string and interned list built through it. All pointers derived from
// an Arena are valid until Destroy is called; after that they must
// never be dereferenced (spec.md §4.1's lifetime policy).
type Arena struct {
	id     uuid.UUID
	config arenacfg.Config

	segments [][]*Node
	nodeCnt  uint64

	structural map[uint64][]*Node // hash-cons buckets, structural tags only

	nodeLists   map[uint64][]Nodes
	stringLists map[uint64][]Strings
	strings     map[string]*string

	modules   []WeakModule
	destroyed bool
}

// New creates an Arena with the given configuration.
func New(cfg arenacfg.Config) *Arena {
	return &Arena{
		id:          uuid.New(),
		config:      cfg,
		structural:  make(map[uint64][]*Node),
		nodeLists:   make(map[uint64][]Nodes),
		stringLists: make(map[uint64][]Strings),
		strings:     make(map[string]*string),
	}
}

// ID returns the arena's process-unique instance identifier.
func (a *Arena) ID() uuid.UUID { return a.id }

// Config returns the arena's construction-time configuration.
func (a *Arena) Config() arenacfg.Config { return a.config }

// Destroy invalidates every node, string and list this arena produced.
// It does not need to walk anything (Go's GC reclaims the memory); it
// exists so arena-lifetime bugs (a stale pointer used after Destroy)
// can be caught defensively by Live.
func (a *Arena) Destroy() {
	a.destroyed = true
	a.segments = nil
	a.structural = nil
	a.nodeLists = nil
	a.stringLists = nil
	a.strings = nil
	a.modules = nil
}

// Live reports whether the arena has not yet been destroyed.
func (a *Arena) Live() bool { return !a.destroyed }

// RegisterModule records a weak reference to a Module this arena
// produced (spec.md §3.1's "weak list of modules it has produced").
func (a *Arena) RegisterModule(m WeakModule) {
	a.modules = append(a.modules, m)
}

// Modules returns the weak list of modules produced by this arena.
func (a *Arena) Modules() []WeakModule { return a.modules }

func (a *Arena) mustBeLive() {
	if a.destroyed {
		panic("ir: use of node/handle from a destroyed arena")
	}
}

// allocNode bump-allocates a fresh node slot, unconditionally (used for
// nominal tags, and internally by internNode for structural misses).
func (a *Arena) allocNode(tag Tag, p Payload, typ *Node) *Node {
	a.mustBeLive()
	n := &Node{arenaRef: a, id: a.nodeCnt, tag: tag, payload: p, typ: typ}
	a.nodeCnt++

	segIdx := int(n.id / segmentSize)
	for len(a.segments) <= segIdx {
		a.segments = append(a.segments, make([]*Node, 0, segmentSize))
	}
	a.segments[segIdx] = append(a.segments[segIdx], n)
	return n
}

func (a *Arena) String() string {
	return fmt.Sprintf("Arena(%s, nodes=%d)", a.id, a.nodeCnt)
}
