package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/alichraghi/shady/internal/cfgdump"
	"github.com/alichraghi/shady/internal/diag"
	"github.com/alichraghi/shady/internal/ir"
	"github.com/alichraghi/shady/internal/module"
)

// newReplCommand implements SPEC_FULL.md §2 A2's interactive IR/CFG
// inspection shell on top of the demo module, on peterh/liner (the
// teacher's own line-editing dependency): `dump <name>` prints a
// declaration's ir.DumpNode text, `cfg <name>` prints its CFG as DOT,
// `list` prints every declaration name, `quit`/`exit` leaves the
// shell.
func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "interactive shell for inspecting the demo module's IR/CFG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.OutOrStdout())
		},
	}
}

func runRepl(out io.Writer) error {
	mod := buildDemoModule()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Fprintln(out, "shadyc repl -- commands: list, dump <name>, cfg <name>, quit")
	for {
		input, err := line.Prompt("shadyc> ")
		if err != nil { // io.EOF or liner.ErrPromptAborted
			return nil
		}
		line.AppendHistory(input)

		switch fields := strings.Fields(input); {
		case len(fields) == 0:
			continue
		case fields[0] == "quit" || fields[0] == "exit":
			return nil
		case fields[0] == "list":
			for _, decl := range mod.Decls() {
				fmt.Fprintln(out, ir.GetDeclName(decl))
			}
		case fields[0] == "dump" && len(fields) == 2:
			replDump(out, mod, fields[1])
		case fields[0] == "cfg" && len(fields) == 2:
			replCFG(out, mod, fields[1])
		default:
			fmt.Fprintf(out, "unrecognized command: %s\n", input)
		}
	}
}

func replDump(out io.Writer, mod *module.Module, name string) {
	decl, err := mod.Resolve(name)
	if err != nil {
		fmt.Fprintln(out, diag.FormatDanglingName(err.(*module.ErrDanglingName)))
		return
	}
	ir.DumpNode(out, decl)
}

func replCFG(out io.Writer, mod *module.Module, name string) {
	decl, err := mod.Resolve(name)
	if err != nil {
		fmt.Fprintln(out, diag.FormatDanglingName(err.(*module.ErrDanglingName)))
		return
	}
	if decl.Tag() != ir.TagFunction {
		fmt.Fprintf(out, "%s is not a function\n", name)
		return
	}
	var buf bytes.Buffer
	cfgdump.WriteModuleDOT(&buf, []*ir.Node{decl})
	out.Write(buf.Bytes())
}
