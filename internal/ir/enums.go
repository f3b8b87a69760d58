package ir

import arenacfg "github.com/alichraghi/shady/internal/arena"

// FloatWidth is the set of supported floating-point widths.
type FloatWidth uint8

const (
	FloatWidth16 FloatWidth = iota
	FloatWidth32
	FloatWidth64
)

// AddressSpace is the glossary's address-space label set.
type AddressSpace uint8

const (
	AsPrivate AddressSpace = iota
	AsSubgroup
	AsWorkgroup
	AsGlobal
	AsInput
	AsOutput
	AsUniformConstant
	AsPushConstant
	AsSSBO
	AsProgramCode
	AsGeneric
	AsFunctionLogical
	AsPrivateLogical
)

// IsAddrSpaceUniform reports whether values stored in address space as
// are guaranteed identical across the invocations that share that
// space's scope (spec.md §4.2's load-uniformity rule). Not specified by
// spec.md or by the retrieved original_source excerpt; decision
// recorded in DESIGN.md.
func IsAddrSpaceUniform(as AddressSpace) bool {
	switch as {
	case AsUniformConstant, AsPushConstant, AsProgramCode, AsSubgroup, AsWorkgroup:
		return true
	default:
		return false
	}
}

// PrimOpKind enumerates the primitive operation families of spec.md
// §4.2.
type PrimOpKind uint8

const (
	OpAdd PrimOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg

	OpAnd
	OpOr
	OpXor
	OpNot
	OpLShift
	OpRShiftArithmetic
	OpRShiftLogical

	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
)

func (k PrimOpKind) IsArithmetic() bool {
	return k >= OpAdd && k <= OpNeg
}

func (k PrimOpKind) IsBitwise() bool {
	return k >= OpAnd && k <= OpRShiftLogical
}

func (k PrimOpKind) IsComparison() bool {
	return k >= OpEq && k <= OpGte
}

func (k PrimOpKind) IsOrderedComparison() bool {
	return k == OpLt || k == OpLte || k == OpGt || k == OpGte
}

func (k PrimOpKind) IsUnary() bool {
	return k == OpNeg || k == OpNot
}

var primOpNames = map[PrimOpKind]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod", OpNeg: "neg",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNot: "not",
	OpLShift: "lshift", OpRShiftArithmetic: "rshift_a", OpRShiftLogical: "rshift_l",
	OpEq: "eq", OpNeq: "neq", OpLt: "lt", OpLte: "lte", OpGt: "gt", OpGte: "gte",
}

func (k PrimOpKind) String() string {
	if s, ok := primOpNames[k]; ok {
		return s
	}
	return "?"
}

// BuiltinKind is the "fixed table" of subgroup/workgroup id values
// (spec.md §4.2).
type BuiltinKind uint8

const (
	BuiltinSubgroupID BuiltinKind = iota
	BuiltinSubgroupLocalInvocationID
	BuiltinWorkgroupID
	BuiltinLocalInvocationID
	BuiltinGlobalInvocationID
)

// builtinInfo is the fixed typing table §4.2 refers to: each builtin
// yields either a scalar int32 or a vec3-of-int32, and is uniform (one
// value per subgroup/workgroup) or varying (one value per invocation).
type builtinInfo struct {
	vec3     bool
	uniform  bool
}

var builtinTable = map[BuiltinKind]builtinInfo{
	BuiltinSubgroupID:                {vec3: false, uniform: true},
	BuiltinSubgroupLocalInvocationID: {vec3: false, uniform: false},
	BuiltinWorkgroupID:               {vec3: true, uniform: true},
	BuiltinLocalInvocationID:         {vec3: true, uniform: false},
	BuiltinGlobalInvocationID:        {vec3: true, uniform: false},
}

var builtinNames = map[BuiltinKind]string{
	BuiltinSubgroupID:                "SubgroupId",
	BuiltinSubgroupLocalInvocationID: "SubgroupLocalInvocationId",
	BuiltinWorkgroupID:               "WorkgroupId",
	BuiltinLocalInvocationID:         "LocalInvocationId",
	BuiltinGlobalInvocationID:        "GlobalInvocationId",
}

func (k BuiltinKind) String() string {
	if s, ok := builtinNames[k]; ok {
		return s
	}
	return "?"
}

// JoinKind distinguishes the three structured-merge roles consolidated
// under the single TagJoin terminator (see DESIGN.md's "Join/merge_*
// consolidation" entry).
type JoinKind uint8

const (
	JoinSelection JoinKind = iota // exits an If
	JoinContinue                  // continues a Loop
	JoinBreak                     // breaks a Loop
)

func (k JoinKind) String() string {
	switch k {
	case JoinSelection:
		return "selection"
	case JoinContinue:
		return "continue"
	case JoinBreak:
		return "break"
	default:
		return "?"
	}
}

// intSizeBits converts the arena package's IntSize enum to a bit width.
func intSizeBits(s arenacfg.IntSize) int {
	switch s {
	case arenacfg.IntSize8:
		return 8
	case arenacfg.IntSize16:
		return 16
	case arenacfg.IntSize32:
		return 32
	case arenacfg.IntSize64:
		return 64
	default:
		return 32
	}
}
