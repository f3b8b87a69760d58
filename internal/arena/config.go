// Package arena holds the construction-time configuration of an IR
// arena (Config and its IntSize/SubgroupMaskRepresentation enums). The
// arena itself, with its bump allocator and hash-cons tables, is
// ir.Arena in internal/ir.
package arena

// IntSize is one of the fixed integer/pointer widths the memory model
// allows for pointers and the emulated-memory word size.
type IntSize uint8

const (
	IntSize8 IntSize = iota
	IntSize16
	IntSize32
	IntSize64
)

// SubgroupMaskRepresentation selects how subgroup intrinsic primops
// represent an active-invocation mask.
type SubgroupMaskRepresentation uint8

const (
	// SubgroupMaskAbstract uses the IR's own MaskType.
	SubgroupMaskAbstract SubgroupMaskRepresentation = iota
	// SubgroupMaskInt64 packs the mask into a 64-bit integer.
	SubgroupMaskInt64
	// SubgroupMaskBallotVec4 packs the mask into a vec4 of 32-bit lanes.
	SubgroupMaskBallotVec4
)

// MemoryConfig is the address-width portion of an ArenaConfig.
type MemoryConfig struct {
	PtrSize  IntSize
	WordSize IntSize
}

// Config is the set of construction-time flags every Arena is created
// with. A pass that targets a new arena must copy the source Config
// unless it is intentionally flipping a flag (spec §6.5).
type Config struct {
	// NameBound indicates identifiers have already been resolved; a
	// front-end parser runs with this false.
	NameBound bool
	// CheckTypes marks a typed arena. The node constructors in
	// internal/ir type-check every node whatever its value; the flag
	// decides whether internal/builder infers a bound instruction's
	// output count and types from the instruction's type.
	CheckTypes bool
	// AllowFold controls whether constant folding runs during
	// construction of primop nodes.
	AllowFold bool
	// IsSIMT selects single-instruction-multiple-thread semantics;
	// when false every value defaults to uniform.
	IsSIMT bool

	SubgroupMaskRepresentation SubgroupMaskRepresentation
	Memory                     MemoryConfig
}

// DefaultConfig mirrors a freshly front-ended, not-yet-type-checked
// module: no name resolution, no type checking, no folding, uniform
// (non-SIMT) semantics. Passes flip flags on as the module is re-hosted.
func DefaultConfig() Config {
	return Config{
		SubgroupMaskRepresentation: SubgroupMaskAbstract,
		Memory: MemoryConfig{
			PtrSize:  IntSize64,
			WordSize: IntSize32,
		},
	}
}
