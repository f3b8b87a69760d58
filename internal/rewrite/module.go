package rewrite

import "github.com/alichraghi/shady/internal/ir"

// rewriteNominal implements the header-first, two-phase recreation
// spec.md §4.5 calls for: a declaration's signature (name, param
// types, return types -- everything a *caller* needs to know) is
// rebuilt and memoized before its body is touched, so that a
// recursive or mutually-recursive reference encountered while
// rewriting that very body resolves to the new node instead of
// recursing forever.
func (r *Rewriter) rewriteNominal(n *ir.Node) *ir.Node {
	switch n.Tag() {
	case ir.TagFunction:
		return r.rewriteFunction(n)
	case ir.TagGlobalVariable:
		return r.rewriteGlobalVariable(n)
	case ir.TagConstant:
		return r.rewriteConstant(n)
	case ir.TagNominalType:
		return r.rewriteNominalType(n)
	case ir.TagBasicBlock:
		return r.rewriteBasicBlock(n)
	default:
		panic("rewrite: unhandled nominal tag " + n.Tag().String())
	}
}

func (r *Rewriter) rewriteFunction(n *ir.Node) *ir.Node {
	fp := n.Payload().(*ir.FunctionPayload)

	paramNames := make([]string, fp.Params.Count())
	paramTypes := make([]*ir.Node, fp.Params.Count())
	for i := 0; i < fp.Params.Count(); i++ {
		p := fp.Params.At(i)
		paramNames[i] = p.Payload().(ir.ParamPayload).Name.Value()
		paramTypes[i] = r.Rewrite(ir.Unqualified(p.Type()))
	}
	returnTypes := r.RewriteList(fp.ReturnTypes)
	annotations := r.RewriteList(fp.Annotations)

	head := ir.NewFunction(r.Dst, r.dstOwner(), fp.Name.Value(), paramNames, paramTypes, returnTypes, annotations)
	r.top()[n] = head // registered before the body is touched: breaks recursive-call cycles

	newParams := ir.AbstractionParams(head)
	for i := 0; i < fp.Params.Count(); i++ {
		r.top()[fp.Params.At(i)] = newParams.At(i)
	}

	if fp.Body != nil {
		ir.SetFunctionBody(head, r.Rewrite(fp.Body))
	}
	return head
}

func (r *Rewriter) rewriteGlobalVariable(n *ir.Node) *ir.Node {
	gp := n.Payload().(*ir.GlobalVariablePayload)
	pointee := r.Rewrite(gp.PointeeType)
	annotations := r.RewriteList(gp.Annotations)
	head := ir.NewGlobalVariable(r.Dst, r.dstOwner(), gp.Name.Value(), gp.AddressSpace, pointee, annotations)
	r.top()[n] = head
	if gp.Init != nil {
		ir.SetGlobalInit(head, r.Rewrite(gp.Init))
	}
	return head
}

func (r *Rewriter) rewriteConstant(n *ir.Node) *ir.Node {
	cp := n.Payload().(*ir.ConstantPayload)
	declType := r.Rewrite(cp.DeclType)
	annotations := r.RewriteList(cp.Annotations)
	head := ir.NewConstant(r.Dst, r.dstOwner(), cp.Name.Value(), declType, annotations)
	r.top()[n] = head
	if cp.Value != nil {
		ir.SetConstantValue(head, r.Rewrite(cp.Value))
	}
	return head
}

func (r *Rewriter) rewriteNominalType(n *ir.Node) *ir.Node {
	np := n.Payload().(*ir.NominalTypePayload)
	annotations := r.RewriteList(np.Annotations)
	head := ir.NewNominalType(r.Dst, np.Name.Value(), annotations)
	r.top()[n] = head
	if np.Body != nil {
		ir.SetNominalTypeBody(head, r.Rewrite(np.Body))
	}
	return head
}

func (r *Rewriter) rewriteBasicBlock(n *ir.Node) *ir.Node {
	bp := n.Payload().(*ir.BasicBlockPayload)

	paramNames := make([]string, bp.Params.Count())
	paramTypes := make([]*ir.Node, bp.Params.Count())
	for i := 0; i < bp.Params.Count(); i++ {
		p := bp.Params.At(i)
		paramNames[i] = p.Payload().(ir.ParamPayload).Name.Value()
		paramTypes[i] = r.Rewrite(ir.Unqualified(p.Type()))
	}
	parentFn := r.Rewrite(bp.ParentFunction)

	head := ir.NewBasicBlock(r.Dst, parentFn, bp.Name.Value(), paramNames, paramTypes)
	r.top()[n] = head

	newParams := ir.AbstractionParams(head)
	for i := 0; i < bp.Params.Count(); i++ {
		r.top()[bp.Params.At(i)] = newParams.At(i)
	}

	if bp.Body != nil {
		ir.SetBasicBlockBody(head, r.Rewrite(bp.Body))
	}
	return head
}

// dstOwner reports the WeakModule new declarations register under.
// Left nil for rewrites that never touch a Module (e.g. rewriting a
// standalone expression tree in tests).
func (r *Rewriter) dstOwner() ir.WeakModule { return r.DstOwnerModule }
