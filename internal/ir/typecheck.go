package ir

// This file implements spec.md §4.2: the per-variant typing rules
// invoked from the node constructors in construct.go on every
// construction; arena.Config().CheckTypes does not turn them off.
// Grounded on
// original_source/src/shady/type.c.

func packedShape(t *Node) (elem *Node, width uint32) {
	if t.Tag() == TagVectorType {
		p := t.Payload().(VectorTypePayload)
		return p.Element, p.Width
	}
	return t, 1
}

func isIntOrFloat(t *Node) bool { return t.Tag() == TagIntType || t.Tag() == TagFloatType }

func isIntBoolMask(t *Node) bool {
	return t.Tag() == TagIntType || t.Tag() == TagBoolType || t.Tag() == TagMaskType
}

func operandType(n *Node) *Node {
	if n.Type() == nil {
		typeErrorf("operand", "operand %s has no type (arena is not type-checking)", []*Node{n}, n.Tag())
	}
	return n.Type()
}

// typecheckArithmetic implements: add, sub, mul, div, mod, neg.
func typecheckArithmetic(a *Arena, op PrimOpKind, operands []*Node) *Node {
	if op.IsUnary() {
		if len(operands) != 1 {
			typeErrorf("arithmetic", "unary op expects 1 operand, got %d", operands, len(operands))
		}
	} else if len(operands) < 2 {
		typeErrorf("arithmetic", "binary op expects >=2 operands, got %d", operands, len(operands))
	}

	qt0 := operandType(operands[0])
	elem0, width0 := packedShape(Unqualified(qt0))
	if !isIntOrFloat(elem0) {
		typeErrorf("arithmetic", "operand type must be Int or Float", operands)
	}

	uniform := IsUniform(qt0)
	for _, o := range operands[1:] {
		qt := operandType(o)
		elem, width := packedShape(Unqualified(qt))
		if !Same(elem, elem0) || width != width0 {
			typeErrorf("arithmetic", "all operands must share one packed element type and width", operands)
		}
		uniform = uniform && IsUniform(qt)
	}
	return Qualified(a, uniform, Unqualified(qt0))
}

// typecheckBitwise implements: and, or, xor, not, lshift, rshift_*.
func typecheckBitwise(a *Arena, op PrimOpKind, operands []*Node) *Node {
	if len(operands) == 0 {
		typeErrorf("bitwise", "expects at least 1 operand", operands)
	}
	qt0 := operandType(operands[0])
	elem0, width0 := packedShape(Unqualified(qt0))
	if !isIntBoolMask(elem0) {
		typeErrorf("bitwise", "operand type must be Int, Bool or Mask", operands)
	}
	uniform := IsUniform(qt0)
	isShift := op == OpLShift || op == OpRShiftArithmetic || op == OpRShiftLogical
	for i, o := range operands[1:] {
		qt := operandType(o)
		elem, width := packedShape(Unqualified(qt))
		if isShift && i == 0 {
			// shift width is independent of the shifted value's width
		} else if width != width0 {
			typeErrorf("bitwise", "packed widths must match across operands", operands)
		}
		if !isIntBoolMask(elem) {
			typeErrorf("bitwise", "operand type must be Int, Bool or Mask", operands)
		}
		uniform = uniform && IsUniform(qt)
	}
	return Qualified(a, uniform, Unqualified(qt0))
}

// typecheckComparison implements: eq, neq, lt, lte, gt, gte.
func typecheckComparison(a *Arena, op PrimOpKind, operands []*Node) *Node {
	if len(operands) != 2 {
		typeErrorf("comparison", "expects exactly 2 operands, got %d", operands, len(operands))
	}
	qt0, qt1 := operandType(operands[0]), operandType(operands[1])
	t0, t1 := Unqualified(qt0), Unqualified(qt1)
	if !Same(t0, t1) {
		typeErrorf("comparison", "operand types must be identical", operands)
	}
	if op.IsOrderedComparison() {
		elem, _ := packedShape(t0)
		if !isIntOrFloat(elem) {
			typeErrorf("comparison", "ordered comparisons require arithmetic types", operands)
		}
	}
	_, width := packedShape(t0)
	uniform := IsUniform(qt0) && IsUniform(qt1)
	return Qualified(a, uniform, VectorOrScalarBool(a, width))
}

// VectorOrScalarBool returns BoolType wrapped in a VectorType of the
// given width, or bare BoolType for width 1.
func VectorOrScalarBool(a *Arena, width uint32) *Node {
	b := BoolType(a)
	if width <= 1 {
		return b
	}
	return VectorType(a, b, width)
}

// typecheckLoad implements load(ptr): yields pointee, packed by the
// pointer's packing; uniformity is ptr.uniform && is_addr_space_uniform(ptr.space).
func typecheckLoad(a *Arena, ptr *Node) *Node {
	qt := operandType(ptr)
	pt := Unqualified(qt)
	if pt.Tag() != TagPtrType {
		typeErrorf("load", "operand must be a pointer", []*Node{ptr})
	}
	pp := pt.Payload().(PtrTypePayload)
	uniform := IsUniform(qt) && IsAddrSpaceUniform(pp.AddressSpace)
	return Qualified(a, uniform, pp.Pointee)
}

// typecheckStore implements store(ptr, val): val must subtype the
// pointee; in non-SIMT arenas it must also be uniform.
func typecheckStore(a *Arena, ptr, val *Node) {
	qt := operandType(ptr)
	pt := Unqualified(qt)
	if pt.Tag() != TagPtrType {
		typeErrorf("store", "first operand must be a pointer", []*Node{ptr, val})
	}
	pp := pt.Payload().(PtrTypePayload)
	vqt := operandType(val)
	if !IsSubtype(Unqualified(vqt), pp.Pointee) {
		typeErrorf("store", "value type does not subtype the pointee", []*Node{ptr, val})
	}
	if !a.Config().IsSIMT && !IsUniform(vqt) {
		typeErrorf("store", "non-SIMT arenas require a uniform stored value", []*Node{ptr, val})
	}
}

// typecheckLea implements lea(base, offset, indices...): walks
// pointer-to-array or pointer-to-record, enforcing integer offset, a
// zero offset unless the pointee is an array, integer-literal record
// indices within range, and conjunctive uniformity.
func typecheckLea(a *Arena, base, offset *Node, indices []*Node) *Node {
	qt := operandType(base)
	pt := Unqualified(qt)
	if pt.Tag() != TagPtrType {
		typeErrorf("lea", "base must be a pointer", []*Node{base})
	}
	pp := pt.Payload().(PtrTypePayload)

	oqt := operandType(offset)
	oElem, _ := packedShape(Unqualified(oqt))
	if oElem.Tag() != TagIntType {
		typeErrorf("lea", "offset must be an integer", []*Node{offset})
	}

	uniform := IsUniform(qt) && IsUniform(oqt)
	cur := pp.Pointee
	as := pp.AddressSpace

	if cur.Tag() != TagArrayType {
		if lit, ok := offset.Payload().(IntLiteralPayload); !ok || lit.Value != 0 {
			typeErrorf("lea", "a zero offset is required unless the pointee is an array", []*Node{base, offset})
		}
	}
	if cur.Tag() == TagArrayType {
		cur = cur.Payload().(ArrayTypePayload).Element
	}

	for _, idx := range indices {
		iqt := operandType(idx)
		uniform = uniform && IsUniform(iqt)
		switch cur.Tag() {
		case TagRecordType:
			lit, ok := idx.Payload().(IntLiteralPayload)
			if !ok {
				typeErrorf("lea", "record indices must be integer literals", []*Node{idx})
			}
			rp := cur.Payload().(RecordTypePayload)
			n := lit.AsInt64(false)
			if n < 0 || n >= int64(rp.Members.Count()) {
				typeErrorf("lea", "record index %d out of range [0,%d)", []*Node{idx}, n, rp.Members.Count())
			}
			cur = rp.Members.At(int(n))
		case TagArrayType:
			cur = cur.Payload().(ArrayTypePayload).Element
		default:
			typeErrorf("lea", "cannot index into non-array, non-record type", []*Node{idx})
		}
	}
	return Qualified(a, uniform, PtrType(a, as, cur))
}

// typecheckConvert/typecheckReinterpret: produce qualified T;
// uniformity inherits from v.
func typecheckConvert(a *Arena, dst, v *Node) *Node {
	vqt := operandType(v)
	return Qualified(a, IsUniform(vqt), dst)
}

func typecheckReinterpret(a *Arena, dst, v *Node) *Node {
	if !IsReinterpretCastLegal(operandType(v), dst) {
		typeErrorf("reinterpret", "illegal reinterpret cast", []*Node{v})
	}
	vqt := operandType(v)
	return Qualified(a, IsUniform(vqt), dst)
}

// typecheckBuiltin looks up the fixed subgroup/workgroup id typing
// table of spec.md §4.2.
func typecheckBuiltin(a *Arena, kind BuiltinKind) *Node {
	info := builtinTable[kind]
	base := int32Type(a)
	var inner *Node = base
	if info.vec3 {
		inner = VectorType(a, base, 3)
	}
	return Qualified(a, info.uniform, inner)
}

// Stack primops have fixed signatures parameterized by element type
// (spec.md §4.2).
func typecheckStackPush(a *Arena, value *Node) *Node {
	_ = operandType(value)
	return Qualified(a, true, NoReturnTypeLikeUnit(a))
}

func typecheckStackPop(a *Arena, elemType *Node) *Node {
	return Qualified(a, true, elemType)
}

func typecheckStackGetSize(a *Arena) *Node {
	return Qualified(a, true, int32Type(a))
}

func typecheckStackSetSize(a *Arena, value *Node) *Node {
	vqt := operandType(value)
	elem, _ := packedShape(Unqualified(vqt))
	if elem.Tag() != TagIntType {
		typeErrorf("stack_set_size", "size must be an integer", []*Node{value})
	}
	return Qualified(a, true, NoReturnTypeLikeUnit(a))
}

func typecheckStackGetBase(a *Arena, as AddressSpace) *Node {
	return Qualified(a, true, PtrType(a, as, int32Type(a)))
}

// NoReturnTypeLikeUnit gives stack push/set-size operations a trivial
// 0-width record as their "no useful value" result type, distinct from
// NoReturnType (which is reserved for terminators).
func NoReturnTypeLikeUnit(a *Arena) *Node {
	return RecordType(a, nil, nil)
}

// typecheckComposite implements: element types must subtype the
// declared composite member types; uniformity is the conjunction of
// members.
func typecheckComposite(a *Arena, declaredType *Node, contents []*Node) *Node {
	var members Nodes
	switch declaredType.Tag() {
	case TagRecordType:
		members = declaredType.Payload().(RecordTypePayload).Members
	case TagArrayType:
		// homogeneous: every content must subtype the element type
	case TagVectorType:
	default:
		typeErrorf("composite", "declared type must be record, array or vector", []*Node{declaredType})
	}

	uniform := true
	for i, c := range contents {
		cqt := operandType(c)
		uniform = uniform && IsUniform(cqt)
		var want *Node
		switch declaredType.Tag() {
		case TagRecordType:
			want = members.At(i)
		case TagArrayType:
			want = declaredType.Payload().(ArrayTypePayload).Element
		case TagVectorType:
			want = declaredType.Payload().(VectorTypePayload).Element
		}
		if !IsSubtype(Unqualified(cqt), want) {
			typeErrorf("composite", "element %d does not subtype the declared member type", []*Node{c}, i)
		}
	}
	return Qualified(a, uniform, declaredType)
}

// typecheckCall: callee must be an FnType (or qualified pointer-to-fn);
// args must subtype the parameter types; result is the (possibly
// multiple) return types, uniform iff every return and every argument
// is uniform.
func typecheckCall(a *Arena, callee *Node, args []*Node) []*Node {
	fnType := calleeFnType(callee)
	fp := fnType.Payload().(FnTypePayload)
	if fp.Params.Count() != len(args) {
		typeErrorf("call", "argument count mismatch: want %d got %d", args, fp.Params.Count(), len(args))
	}
	uniform := true
	for i, arg := range args {
		aqt := operandType(arg)
		if !IsSubtype(Unqualified(aqt), fp.Params.At(i)) {
			typeErrorf("call", "argument %d does not subtype parameter type", []*Node{arg}, i)
		}
		uniform = uniform && IsUniform(aqt)
	}
	out := make([]*Node, fp.Returns.Count())
	for i := 0; i < fp.Returns.Count(); i++ {
		out[i] = Qualified(a, uniform, fp.Returns.At(i))
	}
	return out
}

func calleeFnType(callee *Node) *Node {
	if callee.Tag() == TagFunction {
		fp := callee.Payload().(*FunctionPayload)
		params := make([]*Node, fp.Params.Count())
		for i := range params {
			params[i] = fp.Params.At(i).Type()
		}
		returns := make([]*Node, fp.ReturnTypes.Count())
		for i := 0; i < fp.ReturnTypes.Count(); i++ {
			returns[i] = fp.ReturnTypes.At(i)
		}
		return FnType(callee.Arena(), params, returns)
	}
	qt := operandType(callee)
	t := Unqualified(qt)
	if t.Tag() == TagFnType {
		return t
	}
	typeErrorf("call", "callee is not callable", []*Node{callee})
	return nil
}

// Control terminators produce NoReturnType; they check that arguments
// subtype the target's parameter types (jumps/branches) or the
// join-point's yield types (join).
func typecheckJumpArgs(target *Node, args []*Node) {
	params := abstractionParamTypes(target)
	if len(params) != len(args) {
		typeErrorf("jump", "argument count mismatch: want %d got %d", args, len(params), len(args))
	}
	for i, arg := range args {
		if !IsSubtype(Unqualified(operandType(arg)), Unqualified(params[i])) {
			typeErrorf("jump", "argument %d does not subtype target parameter type", []*Node{arg}, i)
		}
	}
}

// AbstractionParams returns the bound-variable list of a Function,
// BasicBlock or AnonymousLambda node. Lives here (rather than
// accessors.go) because typechecking jump/branch targets is its only
// caller in this file.
func AbstractionParams(abs *Node) Nodes {
	switch abs.Tag() {
	case TagFunction:
		return abs.Payload().(*FunctionPayload).Params
	case TagBasicBlock:
		return abs.Payload().(*BasicBlockPayload).Params
	case TagAnonymousLambda:
		return abs.Payload().(AnonymousLambdaPayload).Params
	default:
		typeErrorf("abstraction", "node is not an abstraction", []*Node{abs})
		return Nodes{}
	}
}

func abstractionParamTypes(abs *Node) []*Node {
	params := AbstractionParams(abs)
	out := make([]*Node, params.Count())
	for i := 0; i < params.Count(); i++ {
		out[i] = params.At(i).Type()
	}
	return out
}

func typecheckJoinArgs(yieldTypes Nodes, args []*Node) {
	if yieldTypes.Count() != len(args) {
		typeErrorf("join", "argument count mismatch: want %d got %d", args, yieldTypes.Count(), len(args))
	}
	for i, arg := range args {
		if !IsSubtype(Unqualified(operandType(arg)), yieldTypes.At(i)) {
			typeErrorf("join", "argument %d does not subtype the yield type", []*Node{arg}, i)
		}
	}
}
