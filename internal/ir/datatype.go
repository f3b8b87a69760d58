package ir

import arenacfg "github.com/alichraghi/shady/internal/arena"

// Type-kind constructors. These never consult the type checker or
// folder (they build types, not values): interning alone gives them
// their hash-consing guarantee (spec.md §8's round-trip law).

func IntType(a *Arena, width arenacfg.IntSize, signed bool) *Node {
	return a.InternNode(TagIntType, IntTypePayload{Width: width, Signed: signed}, nil)
}

func FloatType(a *Arena, width FloatWidth) *Node {
	return a.InternNode(TagFloatType, FloatTypePayload{Width: width}, nil)
}

func BoolType(a *Arena) *Node { return a.InternNode(TagBoolType, BoolTypePayload{}, nil) }

func MaskType(a *Arena) *Node { return a.InternNode(TagMaskType, MaskTypePayload{}, nil) }

func PtrType(a *Arena, as AddressSpace, pointee *Node) *Node {
	return a.InternNode(TagPtrType, PtrTypePayload{AddressSpace: as, Pointee: pointee}, nil)
}

func UnsizedArrayType(a *Arena, elem *Node) *Node {
	return a.InternNode(TagArrayType, ArrayTypePayload{Element: elem}, nil)
}

func SizedArrayType(a *Arena, elem *Node, size uint64) *Node {
	return a.InternNode(TagArrayType, ArrayTypePayload{Element: elem, Sized: true, Size: size}, nil)
}

func RecordType(a *Arena, members []*Node, names []string) *Node {
	return a.InternNode(TagRecordType, RecordTypePayload{
		Members: a.InternNodes(members),
		Names:   a.InternStrings(names),
	}, nil)
}

func VectorType(a *Arena, elem *Node, width uint32) *Node {
	return a.InternNode(TagVectorType, VectorTypePayload{Element: elem, Width: width}, nil)
}

func FnType(a *Arena, params, returns []*Node) *Node {
	return a.InternNode(TagFnType, FnTypePayload{Params: a.InternNodes(params), Returns: a.InternNodes(returns)}, nil)
}

func BBType(a *Arena, params []*Node) *Node {
	return a.InternNode(TagBBType, BBTypePayload{Params: a.InternNodes(params)}, nil)
}

func LamType(a *Arena, params []*Node) *Node {
	return a.InternNode(TagLamType, LamTypePayload{Params: a.InternNodes(params)}, nil)
}

func NoReturnType(a *Arena) *Node {
	return a.InternNode(TagNoReturnType, NoReturnTypePayload{}, nil)
}

// Qualified wraps a type with its uniformity qualifier. When the arena
// is not SIMT, uniform collapses to true (spec.md §4.2).
func Qualified(a *Arena, uniform bool, inner *Node) *Node {
	if !a.Config().IsSIMT {
		uniform = true
	}
	return a.InternNode(TagQualifiedType, QualifiedTypePayload{Uniform: uniform, Inner: inner}, nil)
}

// Uniformity/inner accessors on a qualified type node.
func IsUniform(qt *Node) bool     { return qt.Payload().(QualifiedTypePayload).Uniform }
func Unqualified(qt *Node) *Node  { return qt.Payload().(QualifiedTypePayload).Inner }

func int32Type(a *Arena) *Node { return IntType(a, arenacfg.IntSize32, true) }

// IsReinterpretCastLegal is a stub, matching the original's
// undocumented, permissive behavior (spec.md §9's open question):
// legality of reinterpret is currently permissive.
func IsReinterpretCastLegal(_, _ *Node) bool { return true }
