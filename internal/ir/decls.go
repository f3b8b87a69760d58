package ir

// decls.go constructs the nominal (mutable, address-identified)
// declaration and BasicBlock nodes. Each is allocated once with a nil
// body/init/value and filled in exactly once by its Set* companion,
// mirroring the original's two-phase "forward-declare, then attach a
// body" construction (node.c's function/constant/global_var followed
// by a later assignment into ->payload.fun.body etc).

// NewFunction forward-declares a function: params are bound
// immediately (their types are known up front), but Body starts nil.
func NewFunction(a *Arena, owner WeakModule, name string, paramNames []string, paramTypes []*Node, returnTypes []*Node, annotations []*Node) *Node {
	fn := a.allocNode(TagFunction, &FunctionPayload{
		Name:        a.InternString(name),
		ReturnTypes: a.InternNodes(returnTypes),
		Annotations: a.InternNodes(annotations),
		owner:       owner,
	}, nil)
	params := make([]*Node, len(paramNames))
	for i, n := range paramNames {
		params[i] = DeclaredParam(a, n, paramTypes[i])
	}
	fn.payload.(*FunctionPayload).Params = a.InternNodes(params)
	return fn
}

// SetFunctionBody attaches fn's body exactly once.
func SetFunctionBody(fn *Node, body *Node) {
	fp := fn.Payload().(*FunctionPayload)
	if fp.Body != nil {
		typeErrorf("function", "body already set", []*Node{fn})
	}
	fp.Body = body
}

func FunctionOwner(fn *Node) WeakModule { return fn.Payload().(*FunctionPayload).owner }

// NewGlobalVariable forward-declares a global; Init starts nil.
func NewGlobalVariable(a *Arena, owner WeakModule, name string, as AddressSpace, pointeeType *Node, annotations []*Node) *Node {
	qt := Qualified(a, true, PtrType(a, as, pointeeType))
	return a.allocNode(TagGlobalVariable, &GlobalVariablePayload{
		Name: a.InternString(name), AddressSpace: as, PointeeType: pointeeType,
		Annotations: a.InternNodes(annotations), owner: owner,
	}, qt)
}

func SetGlobalInit(gv *Node, init *Node) {
	gp := gv.Payload().(*GlobalVariablePayload)
	if gp.Init != nil {
		typeErrorf("global_variable", "init already set", []*Node{gv})
	}
	gp.Init = init
}

// NewConstant forward-declares a constant; Value starts nil.
func NewConstant(a *Arena, owner WeakModule, name string, declType *Node, annotations []*Node) *Node {
	qt := Qualified(a, true, declType)
	return a.allocNode(TagConstant, &ConstantPayload{
		Name: a.InternString(name), DeclType: declType, Annotations: a.InternNodes(annotations), owner: owner,
	}, qt)
}

func SetConstantValue(c *Node, value *Node) {
	cp := c.Payload().(*ConstantPayload)
	if cp.Value != nil {
		typeErrorf("constant", "value already set", []*Node{c})
	}
	cp.Value = value
}

// NewNominalType forward-declares a named (opaque-until-filled) type.
func NewNominalType(a *Arena, name string, annotations []*Node) *Node {
	return a.allocNode(TagNominalType, &NominalTypePayload{
		Name: a.InternString(name), Annotations: a.InternNodes(annotations),
	}, nil)
}

func SetNominalTypeBody(nt *Node, body *Node) {
	np := nt.Payload().(*NominalTypePayload)
	if np.Body != nil {
		typeErrorf("nominal_type", "body already set", []*Node{nt})
	}
	np.Body = body
}

func NominalTypeBody(nt *Node) *Node { return nt.Payload().(*NominalTypePayload).Body }

// NewBasicBlock forward-declares a basic block owned by parentFn;
// Body starts nil.
func NewBasicBlock(a *Arena, parentFn *Node, name string, paramNames []string, paramTypes []*Node) *Node {
	bb := a.allocNode(TagBasicBlock, &BasicBlockPayload{
		Name: a.InternString(name), ParentFunction: parentFn,
	}, nil)
	params := make([]*Node, len(paramNames))
	for i, n := range paramNames {
		params[i] = DeclaredParam(a, n, paramTypes[i])
	}
	bb.payload.(*BasicBlockPayload).Params = a.InternNodes(params)
	return bb
}

func SetBasicBlockBody(bb *Node, body *Node) {
	bp := bb.Payload().(*BasicBlockPayload)
	if bp.Body != nil {
		typeErrorf("basic_block", "body already set", []*Node{bb})
	}
	bp.Body = body
}
