// Package module groups a tree of declarations under one arena and
// one name, and is the unit the rewriter and pass driver operate on.
package module

import (
	"github.com/alichraghi/shady/internal/ir"
)

// Module owns an ordered list of declarations sharing one Arena.
// Grounded directly on original_source/src/shady/module.c
// (shd_new_module/_shd_module_add_decl/shd_module_get_declaration).
type Module struct {
	arena  *ir.Arena
	name   string
	decls  []*ir.Node
	index  *NameIndex
	sealed bool
}

// New creates an empty module in arena and registers it as one of the
// arena's weak-referenced modules (spec.md §3.1).
func New(arena *ir.Arena, name string) *Module {
	m := &Module{arena: arena, name: name, index: NewNameIndex()}
	arena.RegisterModule(m)
	return m
}

// ModuleName implements ir.WeakModule.
func (m *Module) ModuleName() string { return m.name }

func (m *Module) Arena() *ir.Arena { return m.arena }
func (m *Module) Name() string     { return m.name }

// Decls returns the module's declarations in insertion order.
func (m *Module) Decls() []*ir.Node {
	out := make([]*ir.Node, len(m.decls))
	copy(out, m.decls)
	return out
}

// GetDecl looks up a declaration by name in O(name length) via the
// patricia-trie index, replacing module.c's O(n) linear scan.
func (m *Module) GetDecl(name string) (*ir.Node, bool) {
	return m.index.Get(name)
}

// Resolve looks up name, returning an *ErrDanglingName carrying
// ranked "did you mean" suggestions when it is not found (spec.md
// §7's diagnostic requirement for dangling references).
func (m *Module) Resolve(name string) (*ir.Node, error) {
	if decl, ok := m.index.Get(name); ok {
		return decl, nil
	}
	return nil, &ErrDanglingName{Name: name, Suggestions: m.index.Suggest(name, 3)}
}

// AddDecl registers decl under its own name, mirroring
// _shd_module_add_decl's duplicate-declaration assertion (raised here
// as an error rather than a panic/assert, per spec.md §7's "internal
// invariant violations panic, user-facing conditions return errors" --
// a duplicate top-level name is a user-facing authoring mistake, not
// an IR invariant break).
func (m *Module) AddDecl(decl *ir.Node) error {
	if m.sealed {
		return &ErrModuleSealed{Name: ir.GetDeclName(decl)}
	}
	name := ir.GetDeclName(decl)
	if _, exists := m.index.Get(name); exists {
		return &ErrDuplicateDecl{Name: name}
	}
	m.decls = append(m.decls, decl)
	m.index.Insert(name, decl)
	return nil
}

// Seal prevents further declarations from being added, the point at
// which the pass driver takes ownership of a module for compilation.
func (m *Module) Seal() { m.sealed = true }

// Sealed reports whether Seal has been called.
func (m *Module) Sealed() bool { return m.sealed }

// NewFunction forward-declares and registers a function owned by m.
func (m *Module) NewFunction(name string, paramNames []string, paramTypes, returnTypes, annotations []*ir.Node) (*ir.Node, error) {
	fn := ir.NewFunction(m.arena, m, name, paramNames, paramTypes, returnTypes, annotations)
	if err := m.AddDecl(fn); err != nil {
		return nil, err
	}
	return fn, nil
}

// NewGlobalVariable forward-declares and registers a global owned by m.
func (m *Module) NewGlobalVariable(name string, as ir.AddressSpace, pointeeType *ir.Node, annotations []*ir.Node) (*ir.Node, error) {
	gv := ir.NewGlobalVariable(m.arena, m, name, as, pointeeType, annotations)
	if err := m.AddDecl(gv); err != nil {
		return nil, err
	}
	return gv, nil
}

// NewConstant forward-declares and registers a constant owned by m.
func (m *Module) NewConstant(name string, declType *ir.Node, annotations []*ir.Node) (*ir.Node, error) {
	c := ir.NewConstant(m.arena, m, name, declType, annotations)
	if err := m.AddDecl(c); err != nil {
		return nil, err
	}
	return c, nil
}
