package ir

import "github.com/cespare/xxhash/v2"

// StringHandle is a pointer-comparable interned string: identical
// strings interned in the same arena share one backing *string, so
// StringHandle equality via == is string equality (mirrors
// v1/storage/arena/interning_legacy.go's map-based fallback, chosen
// over the unique.Handle-based variant in v1/storage/arena/interning.go
// since the arena already owns a bespoke hash-cons table for nodes and
// lists; a second, independent interning strategy for strings alone
// would just be more machinery for the same idea).
type StringHandle struct{ p *string }

// EmptyStringHandle is the handle for the empty string.
func EmptyStringHandle() StringHandle { return StringHandle{} }

// Value returns the interned string, "" for the empty handle.
func (h StringHandle) Value() string {
	if h.p == nil {
		return ""
	}
	return *h.p
}

func stringHash(s string) uint64 { return xxhash.Sum64String(s) }

// InternString returns the interned handle for s.
func (a *Arena) InternString(s string) StringHandle {
	a.mustBeLive()
	if s == "" {
		return StringHandle{}
	}
	if existing, ok := a.strings[s]; ok {
		return StringHandle{p: existing}
	}
	cp := s
	a.strings[s] = &cp
	return StringHandle{p: &cp}
}
