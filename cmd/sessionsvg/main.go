// Command sessionsvg converts a drawing session file (plist XML)
// into a SVG document.
//
//	sessionsvg [flags] input.plist.xml output.svg
//
// Any failure is printed on stderr and the command exits with status 1,
// leaving no output file behind.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
