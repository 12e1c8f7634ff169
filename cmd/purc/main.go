// Command purc is an illustrative CLI shell around the interpreter
// packages (spec.md §6). Run `purc --help` for usage.
package main

import (
	"os"

	"github.com/hvml/purc-go/cmd/purc/cli"
)

func main() {
	os.Exit(cli.Exec(os.Args[1:], os.Stdout, os.Stderr))
}
