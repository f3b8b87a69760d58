// Package passdriver runs a compiler pipeline over a module: a
// sequence of rewrite passes, each re-hosting into a fresh arena,
// instrumented with per-pass Prometheus timing, and finishing at an
// optional back-end stub. Grounded on original_source/src/shady/ir.h's
// CompilerConfig/run_compiler_passes and spec.md §6.1/§6.3/§6.5.
package passdriver

// Config is the field-for-field port of original_source's
// CompilerConfig (spec.md §6.1): every option a pass consults to
// decide how to lower or emit diagnostics. Field names carry
// `mapstructure` tags so cmd/shadyc can populate one straight out of
// spf13/viper (YAML file + env + pflag overrides).
type Config struct {
	AllowFrontendSyntax bool `mapstructure:"allow_frontend_syntax"`
	DynamicScheduling   bool `mapstructure:"dynamic_scheduling"`

	PerThreadStackSize   uint32 `mapstructure:"per_thread_stack_size"`
	PerSubgroupStackSize uint32 `mapstructure:"per_subgroup_stack_size"`

	SubgroupSize uint32 `mapstructure:"subgroup_size"`

	TargetSPIRVVersion struct {
		Major uint8 `mapstructure:"major"`
		Minor uint8 `mapstructure:"minor"`
	} `mapstructure:"target_spirv_version"`

	Lower struct {
		EmulateSubgroupOps              bool `mapstructure:"emulate_subgroup_ops"`
		EmulateSubgroupOpsExtendedTypes bool `mapstructure:"emulate_subgroup_ops_extended_types"`
		SIMTToExplicitSIMD              bool `mapstructure:"simt_to_explicit_simd"`
		Int64                           bool `mapstructure:"int64"`
	} `mapstructure:"lower"`

	Hacks struct {
		SPVShuffleInsteadOfBroadcastFirst bool `mapstructure:"spv_shuffle_instead_of_broadcast_first"`
	} `mapstructure:"hacks"`

	PrintfTrace struct {
		MemoryAccesses bool `mapstructure:"memory_accesses"`
		StackAccesses  bool `mapstructure:"stack_accesses"`
		GodFunction    bool `mapstructure:"god_function"`
		StackSize      bool `mapstructure:"stack_size"`
	} `mapstructure:"printf_trace"`

	ShaderDiagnostics struct {
		MaxTopIterations int `mapstructure:"max_top_iterations"`
	} `mapstructure:"shader_diagnostics"`

	Logging struct {
		SkipGenerated bool `mapstructure:"skip_generated"`
		SkipBuiltin   bool `mapstructure:"skip_builtin"`
	} `mapstructure:"logging"`
}

// DefaultConfig mirrors original_source's default_compiler_config: no
// frontend syntax sugar, static scheduling, conservative stack sizes,
// SPIR-V 1.3, every lowering/hack/trace toggle off.
func DefaultConfig() Config {
	cfg := Config{
		DynamicScheduling:    false,
		PerThreadStackSize:   1 << 12,
		PerSubgroupStackSize: 1 << 14,
		SubgroupSize:         8,
	}
	cfg.TargetSPIRVVersion.Major = 1
	cfg.TargetSPIRVVersion.Minor = 3
	cfg.ShaderDiagnostics.MaxTopIterations = 10_000_000
	return cfg
}
