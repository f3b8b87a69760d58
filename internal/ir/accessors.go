package ir

// accessors.go gathers the small query functions spec.md and
// original_source/include/shady/ir.h's "Getters" section expose
// directly on Node, rather than forcing every caller to switch on Tag
// and reach into the payload by hand.

// GetDeclName returns the name of a Function, GlobalVariable or
// Constant declaration.
func GetDeclName(decl *Node) string {
	switch decl.Tag() {
	case TagFunction:
		return decl.Payload().(*FunctionPayload).Name.Value()
	case TagGlobalVariable:
		return decl.Payload().(*GlobalVariablePayload).Name.Value()
	case TagConstant:
		return decl.Payload().(*ConstantPayload).Name.Value()
	case TagNominalType:
		return decl.Payload().(*NominalTypePayload).Name.Value()
	default:
		return ""
	}
}

// DeclAnnotations returns the annotation list attached to a
// declaration.
func DeclAnnotations(decl *Node) Nodes {
	switch decl.Tag() {
	case TagFunction:
		return decl.Payload().(*FunctionPayload).Annotations
	case TagGlobalVariable:
		return decl.Payload().(*GlobalVariablePayload).Annotations
	case TagConstant:
		return decl.Payload().(*ConstantPayload).Annotations
	case TagNominalType:
		return decl.Payload().(*NominalTypePayload).Annotations
	default:
		return Nodes{}
	}
}

// ResolveToLiteral walks ref_decl/convert-free chains down to an
// IntLiteral, returning (nil, false) if v is not ultimately one.
func ResolveToLiteral(v *Node) (*Node, bool) {
	for {
		switch v.Tag() {
		case TagIntLiteral:
			return v, true
		case TagRefDecl:
			decl := v.Payload().(RefDeclPayload).Decl
			if decl.Tag() == TagConstant {
				cp := decl.Payload().(*ConstantPayload)
				if cp.Value == nil {
					return nil, false
				}
				v = cp.Value
				continue
			}
			return nil, false
		default:
			return nil, false
		}
	}
}

// GetIntLiteralValue reads an IntLiteral's value, sign-extended to
// int64 when signExtend is true (mirrors get_int_literal_value).
func GetIntLiteralValue(n *Node, signExtend bool) (int64, bool) {
	lit, ok := n.Payload().(IntLiteralPayload)
	if !ok {
		return 0, false
	}
	return lit.AsInt64(signExtend), true
}

// ---- Annotations ----

func IsAnnotation(n *Node) bool {
	switch n.Tag() {
	case TagAnnotation, TagAnnotationValue, TagAnnotationValues:
		return true
	default:
		return false
	}
}

func GetAnnotationName(n *Node) string {
	switch n.Tag() {
	case TagAnnotation:
		return n.Payload().(AnnotationPayload).Name.Value()
	case TagAnnotationValue:
		return n.Payload().(AnnotationValuePayload).Name.Value()
	case TagAnnotationValues:
		return n.Payload().(AnnotationValuesPayload).Name.Value()
	default:
		return ""
	}
}

// LookupAnnotation finds the first annotation named name directly
// attached to decl.
func LookupAnnotation(decl *Node, name string) *Node {
	return LookupAnnotationList(DeclAnnotations(decl), name)
}

func LookupAnnotationList(list Nodes, name string) *Node {
	for i := 0; i < list.Count(); i++ {
		if GetAnnotationName(list.At(i)) == name {
			return list.At(i)
		}
	}
	return nil
}

// GetAnnotationValue returns the single value carried by an
// AnnotationValue node, nil otherwise.
func GetAnnotationValue(ann *Node) *Node {
	if ann == nil || ann.Tag() != TagAnnotationValue {
		return nil
	}
	return ann.Payload().(AnnotationValuePayload).Value
}

// GetAnnotationValues returns the value list of an AnnotationValues
// node, the zero Nodes otherwise.
func GetAnnotationValues(ann *Node) Nodes {
	if ann == nil || ann.Tag() != TagAnnotationValues {
		return Nodes{}
	}
	return ann.Payload().(AnnotationValuesPayload).Values
}

// FilterOutAnnotation returns list with every annotation named name
// removed.
func FilterOutAnnotation(a *Arena, list Nodes, name string) Nodes {
	kept := make([]*Node, 0, list.Count())
	for i := 0; i < list.Count(); i++ {
		if GetAnnotationName(list.At(i)) != name {
			kept = append(kept, list.At(i))
		}
	}
	return a.InternNodes(kept)
}

// ---- Abstractions ----

func GetAbstractionName(abs *Node) string {
	switch abs.Tag() {
	case TagFunction:
		return abs.Payload().(*FunctionPayload).Name.Value()
	case TagBasicBlock:
		return abs.Payload().(*BasicBlockPayload).Name.Value()
	case TagAnonymousLambda:
		return "" // anonymous, by construction
	default:
		return ""
	}
}

// GetAbstractionBody returns the abstraction's root term, nil if it
// has not been set yet (a Function/BasicBlock whose body is still
// forward-declared).
func GetAbstractionBody(abs *Node) *Node {
	switch abs.Tag() {
	case TagFunction:
		return abs.Payload().(*FunctionPayload).Body
	case TagBasicBlock:
		return abs.Payload().(*BasicBlockPayload).Body
	case TagAnonymousLambda:
		return abs.Payload().(AnonymousLambdaPayload).Body
	default:
		typeErrorf("abstraction", "node is not an abstraction", []*Node{abs})
		return nil
	}
}

// ---- Let ----

func GetLetInstruction(let *Node) *Node { return let.Payload().(LetPayload).Instruction }
func GetLetTail(let *Node) *Node        { return let.Payload().(LetPayload).Tail }

// ---- Memory chain (spec.md §4.7) ----

// GetParentMem walks one step up a memory instruction's mem-in edge,
// nil once it reaches an AbsMem sentinel.
func GetParentMem(n *Node) *Node {
	switch p := n.Payload().(type) {
	case LoadPayload:
		return p.Mem
	case StorePayload:
		return p.Mem
	case CallPayload:
		return p.Mem
	case StackPushPayload:
		return p.Mem
	case StackPopPayload:
		return p.Mem
	case StackGetSizePayload:
		return p.Mem
	case StackSetSizePayload:
		return p.Mem
	case StackGetBasePayload:
		return p.Mem
	case JumpPayload:
		return p.Mem
	case BranchPayload:
		return p.Mem
	case SwitchPayload:
		return p.Mem
	case ReturnPayload:
		return p.Mem
	case TailCallPayload:
		return p.Mem
	case AbsMemPayload:
		return nil
	default:
		return nil
	}
}

// GetOriginalMem walks GetParentMem to its root AbsMem sentinel,
// identifying which abstraction's memory chain n belongs to.
func GetOriginalMem(n *Node) *Node {
	cur := n
	for {
		if cur.Tag() == TagAbsMem {
			return cur
		}
		parent := GetParentMem(cur)
		if parent == nil {
			return cur
		}
		cur = parent
	}
}

// ---- Node resolution (spec.md §3.4, supplemented from node.c) ----

// NodeResolveConfig toggles how far ResolveToDefinition chases
// through ref_decl/convert/reinterpret wrappers.
type NodeResolveConfig struct {
	ThroughRefDecl     bool
	ThroughConvert     bool
	ThroughReinterpret bool
}

// ResolveToDefinition peels the wrappers enabled in cfg off n,
// stopping at the first node that isn't one of them.
func ResolveToDefinition(cfg NodeResolveConfig, n *Node) *Node {
	for {
		switch {
		case cfg.ThroughRefDecl && n.Tag() == TagRefDecl:
			decl := n.Payload().(RefDeclPayload).Decl
			if decl.Tag() == TagConstant {
				cp := decl.Payload().(*ConstantPayload)
				if cp.Value == nil {
					return n
				}
				n = cp.Value
				continue
			}
			return n
		case cfg.ThroughConvert && n.Tag() == TagConvert:
			n = n.Payload().(ConvertPayload).Value
		case cfg.ThroughReinterpret && n.Tag() == TagReinterpret:
			n = n.Payload().(ReinterpretPayload).Value
		default:
			return n
		}
	}
}

// ChasePtrToSource follows lea chains back to the base pointer they
// index from, collecting the index path (outermost first).
func ChasePtrToSource(ptr *Node) (base *Node, path []*Node) {
	for ptr.Tag() == TagLea {
		lp := ptr.Payload().(LeaPayload)
		path = append([]*Node{lp.Offset}, append(lp.Indices.Slice(), path...)...)
		ptr = lp.Base
	}
	return ptr, path
}

// ResolvePtrToValue chases ptr to its source global/constant and, if
// that source has a statically-known initializer, returns the value
// stored at path.
func ResolvePtrToValue(ptr *Node) (*Node, bool) {
	base, path := ChasePtrToSource(ptr)
	if base.Tag() != TagRefDecl {
		return nil, false
	}
	decl := base.Payload().(RefDeclPayload).Decl
	var v *Node
	switch decl.Tag() {
	case TagGlobalVariable:
		v = decl.Payload().(*GlobalVariablePayload).Init
	case TagConstant:
		v = decl.Payload().(*ConstantPayload).Value
	default:
		return nil, false
	}
	if v == nil {
		return nil, false
	}
	for _, idx := range path {
		lit, ok := asIntLiteral(idx)
		if !ok {
			return nil, false
		}
		cp, ok := v.Payload().(CompositePayload)
		if !ok {
			return nil, false
		}
		i := lit.AsInt64(false)
		if i < 0 || i >= int64(cp.Contents.Count()) {
			return nil, false
		}
		v = cp.Contents.At(int(i))
	}
	return v, true
}
