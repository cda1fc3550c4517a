package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kovidgoyal/clutbench"
)

var _ = fmt.Print

// execute runs the command line given in args and returns the process exit
// code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := new_root_cmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if e, ok := clutbench.Located(err); ok {
			fmt.Fprintf(stderr, "%s: %s\n", e.Location(), err)
		} else {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
