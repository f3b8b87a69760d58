package ir

import arenacfg "github.com/alichraghi/shady/internal/arena"

// --- hashing helpers shared by every payload's hashKey() ---

func hashNode(n *Node) uint64 {
	if n == nil {
		return 0
	}
	return n.id + 1
}

func hashNodes(ns Nodes) uint64 {
	h := fnvSeed
	for i := 0; i < ns.Count(); i++ {
		h = mixHash64(h, hashNode(ns.At(i)))
	}
	return mixHash64(h, uint64(ns.Count())+1)
}

func hashStrHandle(s StringHandle) uint64 { return stringHash(s.Value()) }

func hashBool(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// combine folds a sequence of field hashes into one key.
func combine(tag Tag, parts ...uint64) uint64 {
	h := mixHash64(fnvSeed, uint64(tag))
	for _, p := range parts {
		h = mixHash64(h, p)
	}
	return h
}

// ===================== Types =====================

type IntTypePayload struct {
	Width  arenacfg.IntSize
	Signed bool
}

func (p IntTypePayload) hashKey() uint64 { return combine(TagIntType, uint64(p.Width), hashBool(p.Signed)) }
func (p IntTypePayload) equalPayload(o Payload) bool { op, ok := o.(IntTypePayload); return ok && op == p }

type FloatTypePayload struct{ Width FloatWidth }

func (p FloatTypePayload) hashKey() uint64 { return combine(TagFloatType, uint64(p.Width)) }
func (p FloatTypePayload) equalPayload(o Payload) bool {
	op, ok := o.(FloatTypePayload)
	return ok && op == p
}

type BoolTypePayload struct{}

func (p BoolTypePayload) hashKey() uint64               { return combine(TagBoolType) }
func (p BoolTypePayload) equalPayload(o Payload) bool   { _, ok := o.(BoolTypePayload); return ok }

type MaskTypePayload struct{}

func (p MaskTypePayload) hashKey() uint64             { return combine(TagMaskType) }
func (p MaskTypePayload) equalPayload(o Payload) bool { _, ok := o.(MaskTypePayload); return ok }

type PtrTypePayload struct {
	AddressSpace AddressSpace
	Pointee      *Node
}

func (p PtrTypePayload) hashKey() uint64 {
	return combine(TagPtrType, uint64(p.AddressSpace), hashNode(p.Pointee))
}
func (p PtrTypePayload) equalPayload(o Payload) bool { op, ok := o.(PtrTypePayload); return ok && op == p }

type ArrayTypePayload struct {
	Element *Node
	Sized   bool
	Size    uint64
}

func (p ArrayTypePayload) hashKey() uint64 {
	return combine(TagArrayType, hashNode(p.Element), hashBool(p.Sized), p.Size)
}
func (p ArrayTypePayload) equalPayload(o Payload) bool {
	op, ok := o.(ArrayTypePayload)
	return ok && op == p
}

type RecordTypePayload struct {
	Members Nodes
	Names   Strings
}

func (p RecordTypePayload) hashKey() uint64 {
	return combine(TagRecordType, hashNodes(p.Members))
}
func (p RecordTypePayload) equalPayload(o Payload) bool {
	op, ok := o.(RecordTypePayload)
	return ok && op == p
}

type VectorTypePayload struct {
	Element *Node
	Width   uint32
}

func (p VectorTypePayload) hashKey() uint64 {
	return combine(TagVectorType, hashNode(p.Element), uint64(p.Width))
}
func (p VectorTypePayload) equalPayload(o Payload) bool {
	op, ok := o.(VectorTypePayload)
	return ok && op == p
}

type FnTypePayload struct {
	Params  Nodes
	Returns Nodes
}

func (p FnTypePayload) hashKey() uint64 {
	return combine(TagFnType, hashNodes(p.Params), hashNodes(p.Returns))
}
func (p FnTypePayload) equalPayload(o Payload) bool { op, ok := o.(FnTypePayload); return ok && op == p }

type BBTypePayload struct{ Params Nodes }

func (p BBTypePayload) hashKey() uint64 { return combine(TagBBType, hashNodes(p.Params)) }
func (p BBTypePayload) equalPayload(o Payload) bool { op, ok := o.(BBTypePayload); return ok && op == p }

type LamTypePayload struct{ Params Nodes }

func (p LamTypePayload) hashKey() uint64 { return combine(TagLamType, hashNodes(p.Params)) }
func (p LamTypePayload) equalPayload(o Payload) bool {
	op, ok := o.(LamTypePayload)
	return ok && op == p
}

type NoReturnTypePayload struct{}

func (p NoReturnTypePayload) hashKey() uint64 { return combine(TagNoReturnType) }
func (p NoReturnTypePayload) equalPayload(o Payload) bool {
	_, ok := o.(NoReturnTypePayload)
	return ok
}

// QualifiedTypePayload wraps every value/instruction's type, per §4.2:
// `uniform` collapses to true when the arena is not SIMT.
type QualifiedTypePayload struct {
	Uniform bool
	Inner   *Node
}

func (p QualifiedTypePayload) hashKey() uint64 {
	return combine(TagQualifiedType, hashBool(p.Uniform), hashNode(p.Inner))
}
func (p QualifiedTypePayload) equalPayload(o Payload) bool {
	op, ok := o.(QualifiedTypePayload)
	return ok && op == p
}

// NominalTypePayload is mutable (nominal): Body is set at most once,
// null -> value (spec.md §5's monotonic mutation rule).
type NominalTypePayload struct {
	Name        StringHandle
	Annotations Nodes
	Body        *Node
}

func (p *NominalTypePayload) hashKey() uint64             { panic("ir: nominal payload is never hash-consed") }
func (p *NominalTypePayload) equalPayload(Payload) bool   { panic("ir: nominal payload is never hash-consed") }

// ===================== Values =====================

type IntLiteralPayload struct {
	Width  arenacfg.IntSize
	Signed bool
	Value  uint64
}

func (p IntLiteralPayload) hashKey() uint64 {
	return combine(TagIntLiteral, uint64(p.Width), hashBool(p.Signed), p.Value)
}
func (p IntLiteralPayload) equalPayload(o Payload) bool {
	op, ok := o.(IntLiteralPayload)
	return ok && op == p
}

// AsInt64 returns the literal's value sign-extended to int64 when
// signExtend is true, matching shd_get_int_literal_value's two modes.
func (p IntLiteralPayload) AsInt64(signExtend bool) int64 {
	bits := intSizeBits(p.Width)
	v := p.Value
	if bits < 64 {
		mask := uint64(1)<<uint(bits) - 1
		v &= mask
		if signExtend && v&(uint64(1)<<uint(bits-1)) != 0 {
			v |= ^mask
		}
	}
	return int64(v)
}

type FloatLiteralPayload struct {
	Width FloatWidth
	Bits  uint64
}

func (p FloatLiteralPayload) hashKey() uint64 {
	return combine(TagFloatLiteral, uint64(p.Width), p.Bits)
}
func (p FloatLiteralPayload) equalPayload(o Payload) bool {
	op, ok := o.(FloatLiteralPayload)
	return ok && op == p
}

type BoolLiteralPayload struct{ Value bool }

func (p BoolLiteralPayload) hashKey() uint64 { return combine(TagBoolLiteral, hashBool(p.Value)) }
func (p BoolLiteralPayload) equalPayload(o Payload) bool {
	op, ok := o.(BoolLiteralPayload)
	return ok && op == p
}

// ParamPayload is an output/bound variable: either a declared
// abstraction parameter (BoundInstr == nil) or the i'th output of an
// instruction bound by the body builder (BoundInstr != nil).
type ParamPayload struct {
	Name        StringHandle
	DeclaredTy  *Node
	BoundInstr  *Node
	OutputIndex int
}

func (p ParamPayload) hashKey() uint64 {
	return combine(TagParam, hashStrHandle(p.Name), hashNode(p.DeclaredTy), hashNode(p.BoundInstr), uint64(p.OutputIndex))
}
func (p ParamPayload) equalPayload(o Payload) bool { op, ok := o.(ParamPayload); return ok && op == p }

type CompositePayload struct {
	Type     *Node
	Contents Nodes
}

func (p CompositePayload) hashKey() uint64 {
	return combine(TagComposite, hashNode(p.Type), hashNodes(p.Contents))
}
func (p CompositePayload) equalPayload(o Payload) bool {
	op, ok := o.(CompositePayload)
	return ok && op == p
}

type TuplePayload struct{ Contents Nodes }

func (p TuplePayload) hashKey() uint64 { return combine(TagTuple, hashNodes(p.Contents)) }
func (p TuplePayload) equalPayload(o Payload) bool { op, ok := o.(TuplePayload); return ok && op == p }

type BuiltinRefPayload struct{ Kind BuiltinKind }

func (p BuiltinRefPayload) hashKey() uint64 { return combine(TagBuiltinRef, uint64(p.Kind)) }
func (p BuiltinRefPayload) equalPayload(o Payload) bool {
	op, ok := o.(BuiltinRefPayload)
	return ok && op == p
}

// ===================== Instructions =====================

type PrimOpPayload struct {
	Op       PrimOpKind
	Operands Nodes
}

func (p PrimOpPayload) hashKey() uint64 {
	return combine(TagPrimOp, uint64(p.Op), hashNodes(p.Operands))
}
func (p PrimOpPayload) equalPayload(o Payload) bool { op, ok := o.(PrimOpPayload); return ok && op == p }

type LoadPayload struct {
	Ptr *Node
	Mem *Node
}

func (p LoadPayload) hashKey() uint64 { return combine(TagLoad, hashNode(p.Ptr), hashNode(p.Mem)) }
func (p LoadPayload) equalPayload(o Payload) bool { op, ok := o.(LoadPayload); return ok && op == p }

type StorePayload struct {
	Ptr   *Node
	Value *Node
	Mem   *Node
}

func (p StorePayload) hashKey() uint64 {
	return combine(TagStore, hashNode(p.Ptr), hashNode(p.Value), hashNode(p.Mem))
}
func (p StorePayload) equalPayload(o Payload) bool { op, ok := o.(StorePayload); return ok && op == p }

type LeaPayload struct {
	Base    *Node
	Offset  *Node
	Indices Nodes
}

func (p LeaPayload) hashKey() uint64 {
	return combine(TagLea, hashNode(p.Base), hashNode(p.Offset), hashNodes(p.Indices))
}
func (p LeaPayload) equalPayload(o Payload) bool { op, ok := o.(LeaPayload); return ok && op == p }

type ConvertPayload struct {
	DstType *Node
	Value   *Node
}

func (p ConvertPayload) hashKey() uint64 {
	return combine(TagConvert, hashNode(p.DstType), hashNode(p.Value))
}
func (p ConvertPayload) equalPayload(o Payload) bool { op, ok := o.(ConvertPayload); return ok && op == p }

type ReinterpretPayload struct {
	DstType *Node
	Value   *Node
}

func (p ReinterpretPayload) hashKey() uint64 {
	return combine(TagReinterpret, hashNode(p.DstType), hashNode(p.Value))
}
func (p ReinterpretPayload) equalPayload(o Payload) bool {
	op, ok := o.(ReinterpretPayload)
	return ok && op == p
}

type CallPayload struct {
	Callee *Node
	Args   Nodes
	Mem    *Node
}

func (p CallPayload) hashKey() uint64 {
	return combine(TagCall, hashNode(p.Callee), hashNodes(p.Args), hashNode(p.Mem))
}
func (p CallPayload) equalPayload(o Payload) bool { op, ok := o.(CallPayload); return ok && op == p }

type StackPushPayload struct {
	Value *Node
	Mem   *Node
}

func (p StackPushPayload) hashKey() uint64 {
	return combine(TagStackPush, hashNode(p.Value), hashNode(p.Mem))
}
func (p StackPushPayload) equalPayload(o Payload) bool {
	op, ok := o.(StackPushPayload)
	return ok && op == p
}

type StackPopPayload struct {
	ElemType *Node
	Mem      *Node
}

func (p StackPopPayload) hashKey() uint64 {
	return combine(TagStackPop, hashNode(p.ElemType), hashNode(p.Mem))
}
func (p StackPopPayload) equalPayload(o Payload) bool {
	op, ok := o.(StackPopPayload)
	return ok && op == p
}

type StackGetSizePayload struct{ Mem *Node }

func (p StackGetSizePayload) hashKey() uint64 { return combine(TagStackGetSize, hashNode(p.Mem)) }
func (p StackGetSizePayload) equalPayload(o Payload) bool {
	op, ok := o.(StackGetSizePayload)
	return ok && op == p
}

type StackSetSizePayload struct {
	Value *Node
	Mem   *Node
}

func (p StackSetSizePayload) hashKey() uint64 {
	return combine(TagStackSetSize, hashNode(p.Value), hashNode(p.Mem))
}
func (p StackSetSizePayload) equalPayload(o Payload) bool {
	op, ok := o.(StackSetSizePayload)
	return ok && op == p
}

type StackGetBasePayload struct{ Mem *Node }

func (p StackGetBasePayload) hashKey() uint64 { return combine(TagStackGetBase, hashNode(p.Mem)) }
func (p StackGetBasePayload) equalPayload(o Payload) bool {
	op, ok := o.(StackGetBasePayload)
	return ok && op == p
}

type IfPayload struct {
	Cond       *Node
	YieldTypes Nodes
	TrueCase   *Node
	FalseCase  *Node // nil when there is no else branch
}

func (p IfPayload) hashKey() uint64 {
	return combine(TagIf, hashNode(p.Cond), hashNodes(p.YieldTypes), hashNode(p.TrueCase), hashNode(p.FalseCase))
}
func (p IfPayload) equalPayload(o Payload) bool { op, ok := o.(IfPayload); return ok && op == p }

type LoopPayload struct {
	YieldTypes  Nodes
	InitialArgs Nodes
	Body        *Node
}

func (p LoopPayload) hashKey() uint64 {
	return combine(TagLoop, hashNodes(p.YieldTypes), hashNodes(p.InitialArgs), hashNode(p.Body))
}
func (p LoopPayload) equalPayload(o Payload) bool { op, ok := o.(LoopPayload); return ok && op == p }

type MatchPayload struct {
	Inspectee   *Node
	YieldTypes  Nodes
	CaseValues  Nodes // IntLiteral nodes, one per CaseBodies entry
	CaseBodies  Nodes
	DefaultCase *Node
}

func (p MatchPayload) hashKey() uint64 {
	return combine(TagMatch, hashNode(p.Inspectee), hashNodes(p.YieldTypes), hashNodes(p.CaseValues),
		hashNodes(p.CaseBodies), hashNode(p.DefaultCase))
}
func (p MatchPayload) equalPayload(o Payload) bool { op, ok := o.(MatchPayload); return ok && op == p }

// ===================== Terminators =====================

type JumpPayload struct {
	Target *Node
	Args   Nodes
	Mem    *Node
}

func (p JumpPayload) hashKey() uint64 {
	return combine(TagJump, hashNode(p.Target), hashNodes(p.Args), hashNode(p.Mem))
}
func (p JumpPayload) equalPayload(o Payload) bool { op, ok := o.(JumpPayload); return ok && op == p }

type BranchPayload struct {
	Cond        *Node
	TrueTarget  *Node
	FalseTarget *Node
	Args        Nodes
	Mem         *Node
}

func (p BranchPayload) hashKey() uint64 {
	return combine(TagBranch, hashNode(p.Cond), hashNode(p.TrueTarget), hashNode(p.FalseTarget), hashNodes(p.Args), hashNode(p.Mem))
}
func (p BranchPayload) equalPayload(o Payload) bool { op, ok := o.(BranchPayload); return ok && op == p }

type SwitchPayload struct {
	Selector      *Node
	CaseValues    Nodes
	CaseTargets   Nodes
	DefaultTarget *Node
	Mem           *Node
}

func (p SwitchPayload) hashKey() uint64 {
	return combine(TagSwitch, hashNode(p.Selector), hashNodes(p.CaseValues), hashNodes(p.CaseTargets), hashNode(p.DefaultTarget), hashNode(p.Mem))
}
func (p SwitchPayload) equalPayload(o Payload) bool { op, ok := o.(SwitchPayload); return ok && op == p }

type JoinPayload struct {
	Kind JoinKind
	Args Nodes
}

func (p JoinPayload) hashKey() uint64 { return combine(TagJoin, uint64(p.Kind), hashNodes(p.Args)) }
func (p JoinPayload) equalPayload(o Payload) bool { op, ok := o.(JoinPayload); return ok && op == p }

type ReturnPayload struct {
	Values Nodes
	Mem    *Node
}

func (p ReturnPayload) hashKey() uint64 {
	return combine(TagReturn, hashNodes(p.Values), hashNode(p.Mem))
}
func (p ReturnPayload) equalPayload(o Payload) bool { op, ok := o.(ReturnPayload); return ok && op == p }

type UnreachablePayload struct{}

func (p UnreachablePayload) hashKey() uint64 { return combine(TagUnreachable) }
func (p UnreachablePayload) equalPayload(o Payload) bool {
	_, ok := o.(UnreachablePayload)
	return ok
}

type TailCallPayload struct {
	Callee *Node
	Args   Nodes
	Mem    *Node
}

func (p TailCallPayload) hashKey() uint64 {
	return combine(TagTailCall, hashNode(p.Callee), hashNodes(p.Args), hashNode(p.Mem))
}
func (p TailCallPayload) equalPayload(o Payload) bool {
	op, ok := o.(TailCallPayload)
	return ok && op == p
}

// ===================== Declarations (nominal, mutable) =====================

type FunctionPayload struct {
	Name        StringHandle
	Params      Nodes
	ReturnTypes Nodes
	Annotations Nodes
	Body        *Node // nil until set once by SetFunctionBody
	owner       WeakModule
}

func (p *FunctionPayload) hashKey() uint64           { panic("ir: nominal payload is never hash-consed") }
func (p *FunctionPayload) equalPayload(Payload) bool { panic("ir: nominal payload is never hash-consed") }

type GlobalVariablePayload struct {
	Name         StringHandle
	AddressSpace AddressSpace
	PointeeType  *Node
	Annotations  Nodes
	Init         *Node // nil until set once
	owner        WeakModule
}

func (p *GlobalVariablePayload) hashKey() uint64 { panic("ir: nominal payload is never hash-consed") }
func (p *GlobalVariablePayload) equalPayload(Payload) bool {
	panic("ir: nominal payload is never hash-consed")
}

type ConstantPayload struct {
	Name        StringHandle
	DeclType    *Node
	Annotations Nodes
	Value       *Node // nil until set once
	owner       WeakModule
}

func (p *ConstantPayload) hashKey() uint64           { panic("ir: nominal payload is never hash-consed") }
func (p *ConstantPayload) equalPayload(Payload) bool { panic("ir: nominal payload is never hash-consed") }

type BasicBlockPayload struct {
	Name            StringHandle
	Params          Nodes
	Body            *Node // nil until set once
	ParentFunction  *Node
}

func (p *BasicBlockPayload) hashKey() uint64           { panic("ir: nominal payload is never hash-consed") }
func (p *BasicBlockPayload) equalPayload(Payload) bool { panic("ir: nominal payload is never hash-consed") }

// ===================== Abstractions (structural) =====================

type AnonymousLambdaPayload struct {
	Params Nodes
	Body   *Node
}

func (p AnonymousLambdaPayload) hashKey() uint64 {
	return combine(TagAnonymousLambda, hashNodes(p.Params), hashNode(p.Body))
}
func (p AnonymousLambdaPayload) equalPayload(o Payload) bool {
	op, ok := o.(AnonymousLambdaPayload)
	return ok && op == p
}

// ===================== Annotations =====================

type AnnotationPayload struct{ Name StringHandle }

func (p AnnotationPayload) hashKey() uint64 { return combine(TagAnnotation, hashStrHandle(p.Name)) }
func (p AnnotationPayload) equalPayload(o Payload) bool {
	op, ok := o.(AnnotationPayload)
	return ok && op == p
}

type AnnotationValuePayload struct {
	Name  StringHandle
	Value *Node
}

func (p AnnotationValuePayload) hashKey() uint64 {
	return combine(TagAnnotationValue, hashStrHandle(p.Name), hashNode(p.Value))
}
func (p AnnotationValuePayload) equalPayload(o Payload) bool {
	op, ok := o.(AnnotationValuePayload)
	return ok && op == p
}

type AnnotationValuesPayload struct {
	Name   StringHandle
	Values Nodes
}

func (p AnnotationValuesPayload) hashKey() uint64 {
	return combine(TagAnnotationValues, hashStrHandle(p.Name), hashNodes(p.Values))
}
func (p AnnotationValuesPayload) equalPayload(o Payload) bool {
	op, ok := o.(AnnotationValuesPayload)
	return ok && op == p
}

// ===================== Meta =====================

// AbsMemPayload is the memory-effect sentinel anchoring an
// abstraction's memory chain (spec.md §4.7). It is structural: the
// sentinel for a given abstraction is canonical (hash-consed on the
// abstraction pointer), so get_abstraction_mem can always be
// implemented as "intern AbsMem{abs}" without keeping a side table.
type AbsMemPayload struct{ Abs *Node }

func (p AbsMemPayload) hashKey() uint64 { return combine(TagAbsMem, hashNode(p.Abs)) }
func (p AbsMemPayload) equalPayload(o Payload) bool { op, ok := o.(AbsMemPayload); return ok && op == p }

type RefDeclPayload struct{ Decl *Node }

func (p RefDeclPayload) hashKey() uint64 { return combine(TagRefDecl, hashNode(p.Decl)) }
func (p RefDeclPayload) equalPayload(o Payload) bool { op, ok := o.(RefDeclPayload); return ok && op == p }

type FnAddrPayload struct{ Fn *Node }

func (p FnAddrPayload) hashKey() uint64 { return combine(TagFnAddr, hashNode(p.Fn)) }
func (p FnAddrPayload) equalPayload(o Payload) bool { op, ok := o.(FnAddrPayload); return ok && op == p }

// ===================== Structural glue =====================

type LetPayload struct {
	Instruction *Node
	Tail        *Node // AnonymousLambda
}

func (p LetPayload) hashKey() uint64 {
	return combine(TagLet, hashNode(p.Instruction), hashNode(p.Tail))
}
func (p LetPayload) equalPayload(o Payload) bool { op, ok := o.(LetPayload); return ok && op == p }
