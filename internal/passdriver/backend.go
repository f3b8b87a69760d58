package passdriver

import (
	"errors"

	"github.com/alichraghi/shady/internal/module"
)

// Backend implements spec.md §6.3's back-end contract: "A back-end is
// a function (Config, Module) -> (byte buffer, size). It walks
// module.decls in order and consumes only the public accessors." No
// concrete backend ships in this repo (SPIR-V/C emission is explicitly
// out of scope); only the interface and a stub exist, for pipelines
// and tests to target.
type Backend func(cfg Config, mod *module.Module) ([]byte, error)

// ErrNoBackend is returned by NoBackend, and by any Pipeline invoked
// without a Backend set.
var ErrNoBackend = errors.New("passdriver: no back-end configured")

// NoBackend is the stub Backend used by tests and by a Pipeline with
// Backend left nil: it performs the contractual walk (so a caller can
// still observe iteration order / decl count) and then reports
// ErrNoBackend rather than emitting bytes, matching spec.md §7's
// "back-end capability mismatch" being a reported, non-fatal error
// path rather than a panic.
func NoBackend(cfg Config, mod *module.Module) ([]byte, error) {
	for range mod.Decls() {
		// walk only; no capability to emit against.
	}
	return nil, ErrNoBackend
}
