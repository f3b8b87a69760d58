// Command shadyc is the ambient CLI driver for the shader compiler
// middle-end (SPEC_FULL.md §2 A0/A2): it loads a CompilerConfig,
// builds and runs a passdriver.Pipeline, and exposes watch and REPL
// modes for interactive use. Grounded on the teacher's own
// cobra/pflag/viper CLI stack.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
