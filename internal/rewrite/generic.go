package rewrite

import "github.com/alichraghi/shady/internal/ir"

// Generic is the default RewriteFn: it recursively rewrites n's
// children and reconstructs an equivalent node in r.Dst via the
// ir package's ordinary constructors, re-running typecheck/fold as a
// side effect (spec.md §4.5 calls this out explicitly: a rewrite pass
// that touches nothing still re-validates and re-canonicalizes every
// node it copies). Passes override just the tags they transform and
// fall back to r.Generic for everything else.
func (r *Rewriter) Generic(n *ir.Node) *ir.Node {
	a := r.Dst
	switch p := n.Payload().(type) {

	// ---- Types ----
	case ir.IntTypePayload:
		return ir.IntType(a, p.Width, p.Signed)
	case ir.FloatTypePayload:
		return ir.FloatType(a, p.Width)
	case ir.BoolTypePayload:
		return ir.BoolType(a)
	case ir.MaskTypePayload:
		return ir.MaskType(a)
	case ir.PtrTypePayload:
		return ir.PtrType(a, p.AddressSpace, r.Rewrite(p.Pointee))
	case ir.ArrayTypePayload:
		if p.Sized {
			return ir.SizedArrayType(a, r.Rewrite(p.Element), p.Size)
		}
		return ir.UnsizedArrayType(a, r.Rewrite(p.Element))
	case ir.RecordTypePayload:
		return ir.RecordType(a, r.RewriteList(p.Members), p.Names.Slice())
	case ir.VectorTypePayload:
		return ir.VectorType(a, r.Rewrite(p.Element), p.Width)
	case ir.FnTypePayload:
		return ir.FnType(a, r.RewriteList(p.Params), r.RewriteList(p.Returns))
	case ir.BBTypePayload:
		return ir.BBType(a, r.RewriteList(p.Params))
	case ir.LamTypePayload:
		return ir.LamType(a, r.RewriteList(p.Params))
	case ir.NoReturnTypePayload:
		return ir.NoReturnType(a)
	case ir.QualifiedTypePayload:
		return ir.Qualified(a, p.Uniform, r.Rewrite(p.Inner))

	// ---- Values ----
	case ir.IntLiteralPayload:
		return ir.IntLiteral(a, p.Width, p.Signed, p.Value)
	case ir.FloatLiteralPayload:
		return ir.FloatLiteral(a, p.Width, p.Bits)
	case ir.BoolLiteralPayload:
		return ir.BoolLiteral(a, p.Value)
	case ir.ParamPayload:
		// A Param not already resolved via an overlay substitution (the
		// ordinary case: Function/BasicBlock/loop params are seeded into
		// the memo table by rewriteFunction/rewriteBasicBlock/GenLoop's
		// caller before the body is rewritten) has no independent
		// identity to recreate from scratch.
		panic("rewrite: encountered an unbound Param outside any overlay scope")
	case ir.CompositePayload:
		return ir.Composite(a, r.Rewrite(p.Type), r.RewriteList(p.Contents))
	case ir.TuplePayload:
		return ir.Tuple(a, r.RewriteList(p.Contents))
	case ir.BuiltinRefPayload:
		return ir.BuiltinRef(a, p.Kind)

	// ---- Instructions ----
	case ir.PrimOpPayload:
		return ir.PrimOp(a, p.Op, r.RewriteList(p.Operands))
	case ir.LoadPayload:
		return ir.Load(a, r.Rewrite(p.Ptr), r.Rewrite(p.Mem))
	case ir.StorePayload:
		return ir.Store(a, r.Rewrite(p.Ptr), r.Rewrite(p.Value), r.Rewrite(p.Mem))
	case ir.LeaPayload:
		return ir.Lea(a, r.Rewrite(p.Base), r.Rewrite(p.Offset), r.RewriteList(p.Indices))
	case ir.ConvertPayload:
		return ir.Convert(a, r.Rewrite(p.DstType), r.Rewrite(p.Value))
	case ir.ReinterpretPayload:
		return ir.Reinterpret(a, r.Rewrite(p.DstType), r.Rewrite(p.Value))
	case ir.CallPayload:
		outs := ir.Call(a, r.Rewrite(p.Callee), r.RewriteList(p.Args), r.Rewrite(p.Mem))
		return firstOrNil(outs)
	case ir.StackPushPayload:
		return ir.StackPush(a, r.Rewrite(p.Value), r.Rewrite(p.Mem))
	case ir.StackPopPayload:
		return ir.StackPop(a, r.Rewrite(p.ElemType), r.Rewrite(p.Mem))
	case ir.StackGetSizePayload:
		return ir.StackGetSize(a, r.Rewrite(p.Mem))
	case ir.StackSetSizePayload:
		return ir.StackSetSize(a, r.Rewrite(p.Value), r.Rewrite(p.Mem))
	case ir.StackGetBasePayload:
		pp := ir.Unqualified(n.Type()).Payload().(ir.PtrTypePayload)
		return ir.StackGetBase(a, pp.AddressSpace, r.Rewrite(p.Mem))
	case ir.IfPayload:
		return ir.If(a, r.Rewrite(p.Cond), r.RewriteList(p.YieldTypes), r.Rewrite(p.TrueCase), r.Rewrite(p.FalseCase))
	case ir.LoopPayload:
		return ir.Loop(a, r.RewriteList(p.YieldTypes), r.RewriteList(p.InitialArgs), r.Rewrite(p.Body))
	case ir.MatchPayload:
		return ir.Match(a, r.Rewrite(p.Inspectee), r.RewriteList(p.YieldTypes),
			r.RewriteList(p.CaseValues), r.RewriteList(p.CaseBodies), r.Rewrite(p.DefaultCase))

	// ---- Terminators ----
	case ir.JumpPayload:
		return ir.Jump(a, r.Rewrite(p.Target), r.RewriteList(p.Args), r.Rewrite(p.Mem))
	case ir.BranchPayload:
		return ir.Branch(a, r.Rewrite(p.Cond), r.Rewrite(p.TrueTarget), r.Rewrite(p.FalseTarget), r.RewriteList(p.Args), r.Rewrite(p.Mem))
	case ir.SwitchPayload:
		return ir.Switch(a, r.Rewrite(p.Selector), r.RewriteList(p.CaseValues), r.RewriteList(p.CaseTargets), r.Rewrite(p.DefaultTarget), r.Rewrite(p.Mem))
	case ir.JoinPayload:
		args := r.RewriteList(p.Args)
		yieldTypes := make([]*ir.Node, len(args))
		for i, v := range args {
			yieldTypes[i] = ir.Unqualified(v.Type())
		}
		return ir.Join(a, p.Kind, a.InternNodes(yieldTypes), args)
	case ir.ReturnPayload:
		oldReturnTypes := calleeReturnTypesOf(n)
		newReturnTypes := make([]*ir.Node, oldReturnTypes.Count())
		for i := 0; i < oldReturnTypes.Count(); i++ {
			newReturnTypes[i] = r.Rewrite(oldReturnTypes.At(i))
		}
		return ir.Return(a, a.InternNodes(newReturnTypes), r.RewriteList(p.Values), r.Rewrite(p.Mem))
	case ir.UnreachablePayload:
		return ir.Unreachable(a)
	case ir.TailCallPayload:
		return ir.TailCall(a, r.Rewrite(p.Callee), r.RewriteList(p.Args), r.Rewrite(p.Mem))

	// ---- Abstractions ----
	case ir.AnonymousLambdaPayload:
		params := make([]*ir.Node, p.Params.Count())
		r.CloneDict()
		defer r.DestroyDict()
		for i := 0; i < p.Params.Count(); i++ {
			old := p.Params.At(i)
			fresh := ir.DeclaredParam(a, old.Payload().(ir.ParamPayload).Name.Value(), r.Rewrite(ir.Unqualified(old.Type())))
			r.Substitute(old, fresh)
			params[i] = fresh
		}
		return ir.AnonymousLambda(a, params, r.Rewrite(p.Body))

	// ---- Annotations ----
	case ir.AnnotationPayload:
		return ir.Annotation(a, p.Name.Value())
	case ir.AnnotationValuePayload:
		return ir.AnnotationValue(a, p.Name.Value(), r.Rewrite(p.Value))
	case ir.AnnotationValuesPayload:
		return ir.AnnotationValues(a, p.Name.Value(), r.RewriteList(p.Values))

	// ---- Meta ----
	case ir.AbsMemPayload:
		return ir.AbsMem(a, r.Rewrite(p.Abs))
	case ir.RefDeclPayload:
		return ir.RefDecl(a, r.Rewrite(p.Decl))
	case ir.FnAddrPayload:
		return ir.FnAddr(a, r.Rewrite(p.Fn))

	// ---- Structural glue ----
	case ir.LetPayload:
		return ir.Let(a, r.Rewrite(p.Instruction), r.Rewrite(p.Tail))

	default:
		panic("rewrite: unhandled payload type for tag " + n.Tag().String())
	}
}

func firstOrNil(ns []*ir.Node) *ir.Node {
	if len(ns) == 0 {
		return nil
	}
	return ns[0]
}

// calleeReturnTypesOf recovers a Return terminator's enclosing
// function's declared return types, needed because ReturnPayload
// itself only carries the returned values, not their declared types.
func calleeReturnTypesOf(ret *ir.Node) ir.Nodes {
	mem := ir.GetOriginalMem(ret)
	if mem.Tag() != ir.TagAbsMem {
		return ir.Nodes{}
	}
	abs := mem.Payload().(ir.AbsMemPayload).Abs
	if abs.Tag() != ir.TagFunction {
		return ir.Nodes{}
	}
	return abs.Payload().(*ir.FunctionPayload).ReturnTypes
}
