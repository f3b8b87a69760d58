package ir

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// dump.go is the textual node dump, grounded on dump_node from
// original_source/include/shady/ir.h: a recursive, indentation-based
// printer that names every node by tag and recurses into its payload's
// child references. DumpModule additionally renders the declaration
// table with olekukonko/tablewriter (the teacher's own dependency).
// DumpNode's text is what internal/diag prints for the nodes of a type
// error and what cmd/shadyc's REPL `dump` command prints.

// DumpNode renders n and everything it structurally contains as an
// indented tree, one line per node, in the original's `dump_node`
// style: "<tag>#<id> <literal-values-if-any>" followed by indented
// children.
func DumpNode(w io.Writer, n *Node) {
	dumpNode(w, n, 0, make(map[*Node]bool))
}

func dumpIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat("  ", depth))
}

func dumpNode(w io.Writer, n *Node, depth int, seen map[*Node]bool) {
	if n == nil {
		dumpIndent(w, depth)
		io.WriteString(w, "<nil>\n")
		return
	}
	dumpIndent(w, depth)
	fmt.Fprintf(w, "%s#%d %s\n", n.Tag().String(), n.id, dumpSummary(n))

	if IsNominal(n.Tag()) {
		// Nominal nodes are identified by address; recursing into a
		// declaration already being dumped (a recursive function
		// referencing itself) would loop forever.
		if seen[n] {
			dumpIndent(w, depth+1)
			io.WriteString(w, "...(already dumped above)\n")
			return
		}
		seen[n] = true
	}

	for _, child := range dumpChildren(n) {
		dumpNode(w, child, depth+1, seen)
	}
}

// dumpSummary renders a payload's scalar fields inline, matching
// dump_node's "print the literal value next to the tag" behavior for
// leaf nodes.
func dumpSummary(n *Node) string {
	switch p := n.Payload().(type) {
	case IntTypePayload:
		return fmt.Sprintf("i%d%s", intSizeBits(p.Width), signedness(p.Signed))
	case FloatTypePayload:
		return fmt.Sprintf("f%d", p.Width)
	case PtrTypePayload:
		return fmt.Sprintf("as=%d", p.AddressSpace)
	case ArrayTypePayload:
		if p.Sized {
			return fmt.Sprintf("size=%d", p.Size)
		}
		return "unsized"
	case VectorTypePayload:
		return fmt.Sprintf("width=%d", p.Width)
	case QualifiedTypePayload:
		return fmt.Sprintf("uniform=%v", p.Uniform)
	case IntLiteralPayload:
		return fmt.Sprintf("value=%d", p.AsInt64(p.Signed))
	case FloatLiteralPayload:
		return fmt.Sprintf("bits=%#x", p.Bits)
	case BoolLiteralPayload:
		return fmt.Sprintf("value=%v", p.Value)
	case ParamPayload:
		return fmt.Sprintf("name=%q", p.Name.Value())
	case PrimOpPayload:
		return p.Op.String()
	case *FunctionPayload:
		return fmt.Sprintf("name=%q", p.Name.Value())
	case *GlobalVariablePayload:
		return fmt.Sprintf("name=%q as=%d", p.Name.Value(), p.AddressSpace)
	case *ConstantPayload:
		return fmt.Sprintf("name=%q", p.Name.Value())
	case *NominalTypePayload:
		return fmt.Sprintf("name=%q", p.Name.Value())
	case *BasicBlockPayload:
		return fmt.Sprintf("name=%q", p.Name.Value())
	case AnnotationPayload:
		return fmt.Sprintf("name=%q", p.Name.Value())
	case AnnotationValuePayload:
		return fmt.Sprintf("name=%q", p.Name.Value())
	case AnnotationValuesPayload:
		return fmt.Sprintf("name=%q", p.Name.Value())
	case BuiltinRefPayload:
		return p.Kind.String()
	case JoinPayload:
		return p.Kind.String()
	default:
		return ""
	}
}

// Children returns the immediate Node references held by n's payload,
// in declaration order: operands for instructions/terminators, element
// types for type-kind nodes, body/init/value for declarations, and so
// on. Used by the dump walk below and by internal/analysis's use-map
// and free-frontier computations, so that both stay in sync with the
// payload shapes defined in payloads.go instead of duplicating this
// switch per consumer.
func Children(n *Node) []*Node { return dumpChildren(n) }

func dumpChildren(n *Node) []*Node {
	var out []*Node
	add := func(ns ...*Node) {
		for _, c := range ns {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	addList := func(ns Nodes) {
		for i := 0; i < ns.Count(); i++ {
			add(ns.At(i))
		}
	}

	switch p := n.Payload().(type) {
	case PtrTypePayload:
		add(p.Pointee)
	case ArrayTypePayload:
		add(p.Element)
	case RecordTypePayload:
		addList(p.Members)
	case VectorTypePayload:
		add(p.Element)
	case FnTypePayload:
		addList(p.Params)
		addList(p.Returns)
	case BBTypePayload:
		addList(p.Params)
	case LamTypePayload:
		addList(p.Params)
	case QualifiedTypePayload:
		add(p.Inner)
	case CompositePayload:
		add(p.Type)
		addList(p.Contents)
	case TuplePayload:
		addList(p.Contents)
	case PrimOpPayload:
		addList(p.Operands)
	case LoadPayload:
		add(p.Ptr)
	case StorePayload:
		add(p.Ptr, p.Value)
	case LeaPayload:
		add(p.Base, p.Offset)
		addList(p.Indices)
	case ConvertPayload:
		add(p.DstType, p.Value)
	case ReinterpretPayload:
		add(p.DstType, p.Value)
	case CallPayload:
		add(p.Callee)
		addList(p.Args)
	case StackPushPayload:
		add(p.Value)
	case StackPopPayload:
		add(p.ElemType)
	case StackSetSizePayload:
		add(p.Value)
	case IfPayload:
		add(p.Cond)
		addList(p.YieldTypes)
		add(p.TrueCase, p.FalseCase)
	case LoopPayload:
		addList(p.YieldTypes)
		addList(p.InitialArgs)
		add(p.Body)
	case MatchPayload:
		add(p.Inspectee)
		addList(p.YieldTypes)
		addList(p.CaseValues)
		addList(p.CaseBodies)
		add(p.DefaultCase)
	case JumpPayload:
		add(p.Target)
		addList(p.Args)
	case BranchPayload:
		add(p.Cond, p.TrueTarget, p.FalseTarget)
		addList(p.Args)
	case SwitchPayload:
		add(p.Selector, p.DefaultTarget)
		addList(p.CaseValues)
		addList(p.CaseTargets)
	case JoinPayload:
		addList(p.Args)
	case ReturnPayload:
		addList(p.Values)
	case TailCallPayload:
		add(p.Callee)
		addList(p.Args)
	case *FunctionPayload:
		addList(p.Params)
		addList(p.ReturnTypes)
		addList(p.Annotations)
		add(p.Body)
	case *GlobalVariablePayload:
		add(p.PointeeType)
		addList(p.Annotations)
		add(p.Init)
	case *ConstantPayload:
		add(p.DeclType)
		addList(p.Annotations)
		add(p.Value)
	case *NominalTypePayload:
		addList(p.Annotations)
		add(p.Body)
	case *BasicBlockPayload:
		addList(p.Params)
		add(p.Body)
	case AnonymousLambdaPayload:
		addList(p.Params)
		add(p.Body)
	case AnnotationValuePayload:
		add(p.Value)
	case AnnotationValuesPayload:
		addList(p.Values)
	case AbsMemPayload:
		add(p.Abs)
	case RefDeclPayload:
		add(p.Decl)
	case FnAddrPayload:
		add(p.Fn)
	case LetPayload:
		add(p.Instruction, p.Tail)
	}
	return out
}

func signedness(signed bool) string {
	if signed {
		return ""
	}
	return "u"
}

// DumpModule renders a tabular summary of a module's top-level
// declarations: name, kind and annotation count, one row per
// declaration. Takes a plain decl slice rather than *module.Module
// since internal/module imports internal/ir, not the other way round.
func DumpModule(w io.Writer, moduleName string, decls []*Node) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Kind", "Annotations"})
	for _, d := range decls {
		table.Append([]string{GetDeclName(d), d.Tag().String(), fmt.Sprintf("%d", DeclAnnotations(d).Count())})
	}
	fmt.Fprintf(w, "module %q (%d declarations)\n", moduleName, len(decls))
	table.Render()
}
