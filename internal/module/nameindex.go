package module

import (
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/alichraghi/shady/internal/ir"
)

// NameIndex is a patricia-trie-backed replacement for module.c's
// O(n) linear scan over declarations (shd_module_get_declaration):
// exact lookup is O(key length), and the trie's prefix structure also
// powers Suggest's "did you mean" candidate shortlist before the
// final Levenshtein ranking pass.
type NameIndex struct {
	trie *patricia.Trie
}

func NewNameIndex() *NameIndex {
	return &NameIndex{trie: patricia.NewTrie()}
}

func (idx *NameIndex) Insert(name string, decl *ir.Node) {
	idx.trie.Insert(patricia.Prefix(name), decl)
}

func (idx *NameIndex) Get(name string) (*ir.Node, bool) {
	item := idx.trie.Get(patricia.Prefix(name))
	if item == nil {
		return nil, false
	}
	return item.(*ir.Node), true
}

func (idx *NameIndex) Delete(name string) {
	idx.trie.Delete(patricia.Prefix(name))
}

// Names returns every indexed name, for diagnostics and tests.
func (idx *NameIndex) Names() []string {
	var names []string
	idx.trie.Visit(func(prefix patricia.Prefix, _ patricia.Item) error {
		names = append(names, string(prefix))
		return nil
	})
	sort.Strings(names)
	return names
}

// Suggest ranks the k closest indexed names to a dangling reference,
// for the "did you mean" diagnostic spec.md §7 asks for. It first
// narrows to names sharing query's first rune as a trie prefix (the
// common case for typos), falling back to scanning every name when
// that prefix yields nothing.
func (idx *NameIndex) Suggest(query string, k int) []string {
	type scored struct {
		name string
		dist int
	}
	var candidates []string
	if len(query) > 0 {
		idx.trie.VisitSubtree(patricia.Prefix(query[:1]), func(prefix patricia.Prefix, _ patricia.Item) error {
			candidates = append(candidates, string(prefix))
			return nil
		})
	}
	if len(candidates) == 0 {
		candidates = idx.Names()
	}

	scoredList := make([]scored, len(candidates))
	for i, c := range candidates {
		scoredList[i] = scored{name: c, dist: levenshtein.ComputeDistance(query, c)}
	}
	sort.Slice(scoredList, func(i, j int) bool {
		if scoredList[i].dist != scoredList[j].dist {
			return scoredList[i].dist < scoredList[j].dist
		}
		return scoredList[i].name < scoredList[j].name
	})
	if k > len(scoredList) {
		k = len(scoredList)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = scoredList[i].name
	}
	return out
}
