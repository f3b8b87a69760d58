package module

import "fmt"

// ErrDuplicateDecl is returned by AddDecl when name is already taken.
type ErrDuplicateDecl struct{ Name string }

func (e *ErrDuplicateDecl) Error() string {
	return fmt.Sprintf("module: duplicate declaration %q", e.Name)
}

// ErrModuleSealed is returned by AddDecl once the module has been
// sealed (e.g. handed to the pass driver for compilation).
type ErrModuleSealed struct{ Name string }

func (e *ErrModuleSealed) Error() string {
	return fmt.Sprintf("module: cannot add declaration %q to a sealed module", e.Name)
}

// ErrDanglingName is returned by Module.Resolve (via NameIndex.Suggest)
// when a referenced declaration name does not exist in the module,
// carrying the nearest-match suggestions for the diagnostic message.
type ErrDanglingName struct {
	Name        string
	Suggestions []string
}

func (e *ErrDanglingName) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("module: no declaration named %q", e.Name)
	}
	return fmt.Sprintf("module: no declaration named %q (did you mean %q?)", e.Name, e.Suggestions[0])
}
