package ir

import arenacfg "github.com/alichraghi/shady/internal/arena"

// construct.go is the exported constructor surface: one function per
// tag, each routing operands through typecheck.go's rules, then
// fold.go's canonicalizations, before the result reaches
// Arena.InternNode. This is the only layer internal/builder and
// internal/rewrite are meant to call into directly.

// ---- Literals ----

func IntLiteral(a *Arena, width arenacfg.IntSize, signed bool, value uint64) *Node {
	qt := Qualified(a, true, IntType(a, width, signed))
	return a.InternNode(TagIntLiteral, IntLiteralPayload{Width: width, Signed: signed, Value: value}, qt)
}

func FloatLiteral(a *Arena, width FloatWidth, bits uint64) *Node {
	qt := Qualified(a, true, FloatType(a, width))
	return a.InternNode(TagFloatLiteral, FloatLiteralPayload{Width: width, Bits: bits}, qt)
}

func BoolLiteral(a *Arena, value bool) *Node {
	qt := Qualified(a, true, BoolType(a))
	return a.InternNode(TagBoolLiteral, BoolLiteralPayload{Value: value}, qt)
}

// ---- Params ----

// DeclaredParam creates a parameter bound by an abstraction's own
// signature (BoundInstr is nil).
func DeclaredParam(a *Arena, name string, declaredTy *Node) *Node {
	return a.InternNode(TagParam, ParamPayload{
		Name:       a.InternString(name),
		DeclaredTy: declaredTy,
	}, declaredTy)
}

// BoundParam creates the outputIndex'th result of instr, as produced
// by the body builder's let-binding (spec.md §4.4). name is a debug
// label only (shown in dumps); pass "" when the caller has none.
func BoundParam(a *Arena, instr *Node, outputIndex int, ty *Node, name string) *Node {
	return a.InternNode(TagParam, ParamPayload{
		Name:        a.InternString(name),
		BoundInstr:  instr,
		OutputIndex: outputIndex,
	}, ty)
}

// ---- Values ----

func Composite(a *Arena, declaredType *Node, contents []*Node) *Node {
	qt := typecheckComposite(a, declaredType, contents)
	return a.InternNode(TagComposite, CompositePayload{Type: declaredType, Contents: a.InternNodes(contents)}, qt)
}

func Tuple(a *Arena, contents []*Node) *Node {
	uniform := true
	types := make([]*Node, len(contents))
	for i, c := range contents {
		cqt := operandType(c)
		uniform = uniform && IsUniform(cqt)
		types[i] = cqt
	}
	qt := Qualified(a, uniform, RecordType(a, unqualifyAll(types), nil))
	return a.InternNode(TagTuple, TuplePayload{Contents: a.InternNodes(contents)}, qt)
}

func unqualifyAll(qts []*Node) []*Node {
	out := make([]*Node, len(qts))
	for i, qt := range qts {
		out[i] = Unqualified(qt)
	}
	return out
}

func BuiltinRef(a *Arena, kind BuiltinKind) *Node {
	qt := typecheckBuiltin(a, kind)
	return a.InternNode(TagBuiltinRef, BuiltinRefPayload{Kind: kind}, qt)
}

// ---- Instructions ----

// PrimOp builds a primop instruction, applying typecheck.go's rule
// for op's family and then fold.go's constant-folding/identity pass.
// When the fold succeeds, the folded value (never a fresh PrimOp
// node) is returned directly, matching spec.md §4.3's "folding
// happens before interning" rule.
func PrimOp(a *Arena, op PrimOpKind, operands []*Node) *Node {
	var qt *Node
	switch {
	case op.IsArithmetic():
		qt = typecheckArithmetic(a, op, operands)
	case op.IsBitwise():
		qt = typecheckBitwise(a, op, operands)
	case op.IsComparison():
		qt = typecheckComparison(a, op, operands)
	default:
		typeErrorf("primop", "unknown primop family", operands)
	}
	if !a.Config().AllowFold {
		return a.InternNode(TagPrimOp, PrimOpPayload{Op: op, Operands: a.InternNodes(operands)}, qt)
	}
	if v, ok := foldPrimOp(a, op, operands, qt); ok {
		return v
	}
	return a.InternNode(TagPrimOp, PrimOpPayload{Op: op, Operands: a.InternNodes(operands)}, qt)
}

func Load(a *Arena, ptr, mem *Node) *Node {
	qt := typecheckLoad(a, ptr)
	return a.InternNode(TagLoad, LoadPayload{Ptr: ptr, Mem: mem}, qt)
}

func Store(a *Arena, ptr, value, mem *Node) *Node {
	typecheckStore(a, ptr, value)
	qt := Qualified(a, true, NoReturnTypeLikeUnit(a))
	return a.InternNode(TagStore, StorePayload{Ptr: ptr, Value: value, Mem: mem}, qt)
}

func Lea(a *Arena, base, offset *Node, indices []*Node) *Node {
	qt := typecheckLea(a, base, offset, indices)
	if a.Config().AllowFold {
		if v, ok := foldLea(a, base, offset, indices); ok {
			return v
		}
	}
	return a.InternNode(TagLea, LeaPayload{Base: base, Offset: offset, Indices: a.InternNodes(indices)}, qt)
}

func Convert(a *Arena, dst, v *Node) *Node {
	qt := typecheckConvert(a, dst, v)
	if a.Config().AllowFold {
		if r, ok := foldConvert(a, dst, v); ok {
			return r
		}
	}
	return a.InternNode(TagConvert, ConvertPayload{DstType: dst, Value: v}, qt)
}

func Reinterpret(a *Arena, dst, v *Node) *Node {
	qt := typecheckReinterpret(a, dst, v)
	if a.Config().AllowFold {
		if r, ok := foldReinterpret(a, dst, v); ok {
			return r
		}
	}
	return a.InternNode(TagReinterpret, ReinterpretPayload{DstType: dst, Value: v}, qt)
}

// Call returns the full (possibly multi-value) result list; callers
// that want the common single-return case can index [0].
func Call(a *Arena, callee *Node, args []*Node, mem *Node) []*Node {
	returnQTs := typecheckCall(a, callee, args)
	instr := a.InternNode(TagCall, CallPayload{Callee: callee, Args: a.InternNodes(args), Mem: mem},
		Qualified(a, true, NoReturnTypeLikeUnit(a)))
	outs := make([]*Node, len(returnQTs))
	for i, qt := range returnQTs {
		outs[i] = BoundParam(a, instr, i, qt, "")
	}
	return outs
}

func StackPush(a *Arena, value, mem *Node) *Node {
	qt := typecheckStackPush(a, value)
	return a.InternNode(TagStackPush, StackPushPayload{Value: value, Mem: mem}, qt)
}

func StackPop(a *Arena, elemType, mem *Node) *Node {
	qt := typecheckStackPop(a, elemType)
	return a.InternNode(TagStackPop, StackPopPayload{ElemType: elemType, Mem: mem}, qt)
}

func StackGetSize(a *Arena, mem *Node) *Node {
	qt := typecheckStackGetSize(a)
	return a.InternNode(TagStackGetSize, StackGetSizePayload{Mem: mem}, qt)
}

func StackSetSize(a *Arena, value, mem *Node) *Node {
	qt := typecheckStackSetSize(a, value)
	return a.InternNode(TagStackSetSize, StackSetSizePayload{Value: value, Mem: mem}, qt)
}

func StackGetBase(a *Arena, as AddressSpace, mem *Node) *Node {
	qt := typecheckStackGetBase(a, as)
	return a.InternNode(TagStackGetBase, StackGetBasePayload{Mem: mem}, qt)
}

// If/Loop/Match are structured instructions whose branches are
// AnonymousLambda nodes already built by internal/builder; this layer
// only validates yield-type agreement and wires the qualified result
// type.
func If(a *Arena, cond *Node, yieldTypes []*Node, trueCase, falseCase *Node) *Node {
	if Unqualified(operandType(cond)).Tag() != TagBoolType {
		typeErrorf("if", "condition must be Bool", []*Node{cond})
	}
	uniform := IsUniform(operandType(cond))
	return a.InternNode(TagIf, IfPayload{
		Cond: cond, YieldTypes: a.InternNodes(yieldTypes), TrueCase: trueCase, FalseCase: falseCase,
	}, qualifiedTuple(a, uniform, yieldTypes))
}

// Loop's body is an AnonymousLambda already matched against
// initialArgs by the builder; arity is therefore not re-checked here.
func Loop(a *Arena, yieldTypes, initialArgs []*Node, body *Node) *Node {
	return a.InternNode(TagLoop, LoopPayload{
		YieldTypes: a.InternNodes(yieldTypes), InitialArgs: a.InternNodes(initialArgs), Body: body,
	}, qualifiedTuple(a, true, yieldTypes))
}

func Match(a *Arena, inspectee *Node, yieldTypes []*Node, caseValues, caseBodies []*Node, defaultCase *Node) *Node {
	if len(caseValues) != len(caseBodies) {
		typeErrorf("match", "case value/body count mismatch", caseBodies)
	}
	uniform := IsUniform(operandType(inspectee))
	return a.InternNode(TagMatch, MatchPayload{
		Inspectee: inspectee, YieldTypes: a.InternNodes(yieldTypes),
		CaseValues: a.InternNodes(caseValues), CaseBodies: a.InternNodes(caseBodies), DefaultCase: defaultCase,
	}, qualifiedTuple(a, uniform, yieldTypes))
}

func qualifiedTuple(a *Arena, uniform bool, types []*Node) *Node {
	if len(types) == 1 {
		return Qualified(a, uniform, types[0])
	}
	return Qualified(a, uniform, RecordType(a, types, nil))
}

// ---- Terminators (all yield NoReturnType) ----

func noReturn(a *Arena) *Node { return Qualified(a, true, NoReturnType(a)) }

func Jump(a *Arena, target *Node, args []*Node, mem *Node) *Node {
	typecheckJumpArgs(target, args)
	return a.InternNode(TagJump, JumpPayload{Target: target, Args: a.InternNodes(args), Mem: mem}, noReturn(a))
}

func Branch(a *Arena, cond, trueTarget, falseTarget *Node, args []*Node, mem *Node) *Node {
	if Unqualified(operandType(cond)).Tag() != TagBoolType {
		typeErrorf("branch", "condition must be Bool", []*Node{cond})
	}
	typecheckJumpArgs(trueTarget, args)
	typecheckJumpArgs(falseTarget, args)
	return a.InternNode(TagBranch, BranchPayload{
		Cond: cond, TrueTarget: trueTarget, FalseTarget: falseTarget, Args: a.InternNodes(args), Mem: mem,
	}, noReturn(a))
}

func Switch(a *Arena, selector *Node, caseValues, caseTargets []*Node, defaultTarget, mem *Node) *Node {
	if len(caseValues) != len(caseTargets) {
		typeErrorf("switch", "case value/target count mismatch", caseTargets)
	}
	return a.InternNode(TagSwitch, SwitchPayload{
		Selector: selector, CaseValues: a.InternNodes(caseValues), CaseTargets: a.InternNodes(caseTargets),
		DefaultTarget: defaultTarget, Mem: mem,
	}, noReturn(a))
}

func Join(a *Arena, kind JoinKind, yieldTypes Nodes, args []*Node) *Node {
	typecheckJoinArgs(yieldTypes, args)
	return a.InternNode(TagJoin, JoinPayload{Kind: kind, Args: a.InternNodes(args)}, noReturn(a))
}

func Return(a *Arena, returnTypes Nodes, values []*Node, mem *Node) *Node {
	if returnTypes.Count() != len(values) {
		typeErrorf("return", "return arity mismatch: want %d got %d", values, returnTypes.Count(), len(values))
	}
	for i, v := range values {
		if !IsSubtype(Unqualified(operandType(v)), returnTypes.At(i)) {
			typeErrorf("return", "value %d does not subtype the declared return type", []*Node{v}, i)
		}
	}
	return a.InternNode(TagReturn, ReturnPayload{Values: a.InternNodes(values), Mem: mem}, noReturn(a))
}

func Unreachable(a *Arena) *Node {
	return a.InternNode(TagUnreachable, UnreachablePayload{}, noReturn(a))
}

func TailCall(a *Arena, callee *Node, args []*Node, mem *Node) *Node {
	fnType := calleeFnType(callee)
	fp := fnType.Payload().(FnTypePayload)
	if fp.Params.Count() != len(args) {
		typeErrorf("tail_call", "argument count mismatch: want %d got %d", args, fp.Params.Count(), len(args))
	}
	for i, arg := range args {
		if !IsSubtype(Unqualified(operandType(arg)), fp.Params.At(i)) {
			typeErrorf("tail_call", "argument %d does not subtype parameter type", []*Node{arg}, i)
		}
	}
	return a.InternNode(TagTailCall, TailCallPayload{Callee: callee, Args: a.InternNodes(args), Mem: mem}, noReturn(a))
}

// ---- Abstractions ----

func AnonymousLambda(a *Arena, params []*Node, body *Node) *Node {
	return a.InternNode(TagAnonymousLambda, AnonymousLambdaPayload{Params: a.InternNodes(params), Body: body}, nil)
}

// ---- Annotations ----

func Annotation(a *Arena, name string) *Node {
	return a.InternNode(TagAnnotation, AnnotationPayload{Name: a.InternString(name)}, nil)
}

func AnnotationValue(a *Arena, name string, value *Node) *Node {
	return a.InternNode(TagAnnotationValue, AnnotationValuePayload{Name: a.InternString(name), Value: value}, nil)
}

func AnnotationValues(a *Arena, name string, values []*Node) *Node {
	return a.InternNode(TagAnnotationValues, AnnotationValuesPayload{Name: a.InternString(name), Values: a.InternNodes(values)}, nil)
}

// ---- Meta ----

// AbsMem returns the canonical memory-chain sentinel for abs. Because
// AbsMemPayload is structural and keyed on the abstraction pointer,
// repeated calls for the same abs always yield the same Node — no
// side table is needed to keep "the" sentinel unique (spec.md §4.7).
func AbsMem(a *Arena, abs *Node) *Node {
	return a.InternNode(TagAbsMem, AbsMemPayload{Abs: abs}, nil)
}

func RefDecl(a *Arena, decl *Node) *Node {
	var ty *Node
	switch decl.Tag() {
	case TagGlobalVariable:
		gp := decl.Payload().(*GlobalVariablePayload)
		ty = Qualified(a, true, PtrType(a, gp.AddressSpace, gp.PointeeType))
	case TagConstant:
		cp := decl.Payload().(*ConstantPayload)
		ty = Qualified(a, true, cp.DeclType)
	default:
		typeErrorf("ref_decl", "can only reference a global variable or constant", []*Node{decl})
	}
	return a.InternNode(TagRefDecl, RefDeclPayload{Decl: decl}, ty)
}

func FnAddr(a *Arena, fn *Node) *Node {
	if fn.Tag() != TagFunction {
		typeErrorf("fn_addr", "operand must be a function", []*Node{fn})
	}
	fp := fn.Payload().(*FunctionPayload)
	paramTypes := make([]*Node, fp.Params.Count())
	for i := 0; i < fp.Params.Count(); i++ {
		paramTypes[i] = fp.Params.At(i).Type()
	}
	returns := make([]*Node, fp.ReturnTypes.Count())
	for i := 0; i < fp.ReturnTypes.Count(); i++ {
		returns[i] = fp.ReturnTypes.At(i)
	}
	ty := Qualified(a, true, PtrType(a, AsProgramCode, FnType(a, paramTypes, returns)))
	return a.InternNode(TagFnAddr, FnAddrPayload{Fn: fn}, ty)
}

// ---- Structural glue ----

// Let binds instr's outputs into tail's params. Used exclusively by
// internal/builder's finish_body fold (spec.md §4.4); exported so
// internal/rewrite can recreate Let nodes when copying a body.
func Let(a *Arena, instr, tail *Node) *Node {
	return a.InternNode(TagLet, LetPayload{Instruction: instr, Tail: tail}, nil)
}
