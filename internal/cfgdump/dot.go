// Package cfgdump renders internal/analysis CFGs as Graphviz DOT,
// per spec.md §6.4: one cluster per function, node id the address of
// the abstraction each CFG node wraps (one CFG node per abstraction),
// edge colors keyed by EdgeKind, node colors keyed by what kind of
// abstraction the node wraps.
package cfgdump

import (
	"fmt"
	"io"

	"github.com/alichraghi/shady/internal/analysis"
	"github.com/alichraghi/shady/internal/ir"
)

// edgeColor implements spec.md §6.4's exact edge coloring table:
// "Jump/Branch black, LetTail green, StructuredEnterBody blue,
// StructuredLeaveBody red, StructuredPseudoExit dark red."
func edgeColor(k analysis.EdgeKind) string {
	switch k {
	case analysis.EdgeJump, analysis.EdgeBranch, analysis.EdgeSwitch:
		return "black"
	case analysis.EdgeLetTail:
		return "green"
	case analysis.EdgeStructuredEnterBody:
		return "blue"
	case analysis.EdgeStructuredLeaveBody:
		return "red"
	case analysis.EdgeStructuredPseudoExit:
		return "darkred"
	default:
		return "black"
	}
}

// nodeColor implements spec.md §6.4's node coloring: "basic-block
// blue, case green, other black." A node is a "case" if any of its
// incoming edges is a StructuredEnterBody edge (an If/Loop/Match branch
// body); a BasicBlock-tagged node is always blue regardless of how it
// is entered.
func nodeColor(n *analysis.CFGNode) string {
	if n.Abs.Tag() == ir.TagBasicBlock {
		return "blue"
	}
	for _, e := range n.Preds {
		if e.Kind == analysis.EdgeStructuredEnterBody {
			return "green"
		}
	}
	return "black"
}

func nodeLabel(n *analysis.CFGNode) string {
	switch n.Abs.Tag() {
	case ir.TagFunction:
		if name := ir.GetDeclName(n.Abs); name != "" {
			return name
		}
		return "fn"
	case ir.TagBasicBlock:
		if name := ir.GetDeclName(n.Abs); name != "" {
			return name
		}
		return "block"
	default:
		return "lambda"
	}
}

// WriteDOT renders the CFG of a single function to w.
func WriteDOT(w io.Writer, fn *ir.Node, cfg *analysis.CFG) {
	fmt.Fprintln(w, "digraph CFG {")
	fmt.Fprintf(w, "  subgraph \"cluster_%s\" {\n", dotID(fn))
	fmt.Fprintf(w, "    label=%q;\n", ir.GetDeclName(fn))

	for abs, node := range cfg.Nodes {
		fmt.Fprintf(w, "    %s [label=%q, color=%s];\n", dotID(abs), nodeLabel(node), nodeColor(node))
	}
	for _, node := range cfg.Nodes {
		for _, e := range node.Succs {
			fmt.Fprintf(w, "    %s -> %s [color=%s, label=%q];\n",
				dotID(node.Abs), dotID(e.To.Abs), edgeColor(e.Kind), e.Kind.String())
		}
	}

	fmt.Fprintln(w, "  }")
	fmt.Fprintln(w, "}")
}

// WriteModuleDOT renders one cluster per function in decls, each its
// own CFG built fresh from scratch.
func WriteModuleDOT(w io.Writer, decls []*ir.Node) {
	fmt.Fprintln(w, "digraph Module {")
	for _, decl := range decls {
		if decl.Tag() != ir.TagFunction {
			continue
		}
		if ir.GetAbstractionBody(decl) == nil {
			continue // declaration only, no body to walk
		}
		cfg := analysis.BuildCFG(decl)
		fmt.Fprintf(w, "  subgraph \"cluster_%s\" {\n", dotID(decl))
		fmt.Fprintf(w, "    label=%q;\n", ir.GetDeclName(decl))
		for abs, node := range cfg.Nodes {
			fmt.Fprintf(w, "    %s [label=%q, color=%s];\n", dotID(abs), nodeLabel(node), nodeColor(node))
		}
		for _, node := range cfg.Nodes {
			for _, e := range node.Succs {
				fmt.Fprintf(w, "    %s -> %s [color=%s, label=%q];\n",
					dotID(node.Abs), dotID(e.To.Abs), edgeColor(e.Kind), e.Kind.String())
			}
		}
		fmt.Fprintln(w, "  }")
	}
	fmt.Fprintln(w, "}")
}

// dotID derives a DOT id from an IR node's address. Node ids are taken
// from the abstraction a CFG node wraps, not from the *analysis.CFGNode
// itself; cluster ids are taken from the function node.
func dotID(n *ir.Node) string {
	return fmt.Sprintf("n%p", n)
}
