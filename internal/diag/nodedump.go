// Package diag renders diagnostics for spec.md §7's fatal error kinds:
// type-check failures (a tabular dump of the offending nodes) and
// dangling-name references (a ranked "did you mean" suggestion list,
// built on internal/module.NameIndex).
package diag

import (
	"bytes"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/alichraghi/shady/internal/ir"
)

// FormatTypeError renders a *ir.TypeError as a one-row-per-node table
// (index, tag, type) followed by each node's full textual dump.
func FormatTypeError(e *ir.TypeError) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "type error in %s: %s\n", e.Op, e.Message)
	WriteNodeTable(&buf, e.Nodes)
	return buf.String()
}

// WriteNodeTable renders one row per node: its index, its tag and its
// type (if any, as the first line of the type's ir.DumpNode text). Each
// node's full recursive ir.DumpNode text follows below the table.
func WriteNodeTable(w io.Writer, nodes []*ir.Node) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Tag", "Type"})
	for i, n := range nodes {
		if n == nil {
			table.Append([]string{fmt.Sprint(i), "<nil>", ""})
			continue
		}
		typ := ""
		if t := n.Type(); t != nil {
			typ = oneLine(t)
		}
		table.Append([]string{fmt.Sprint(i), n.Tag().String(), typ})
	}
	table.Render()

	for i, n := range nodes {
		if n == nil {
			continue
		}
		fmt.Fprintf(w, "--- node %d ---\n", i)
		ir.DumpNode(w, n)
	}
}

func oneLine(n *ir.Node) string {
	var buf bytes.Buffer
	ir.DumpNode(&buf, n)
	s := buf.String()
	for i, c := range s {
		if c == '\n' {
			return s[:i] + " ..."
		}
	}
	return s
}
