// Command gedcheck parses genealogy files and reports rule violations.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/gedcheck/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
