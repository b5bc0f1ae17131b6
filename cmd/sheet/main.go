// Command sheet manages a problem sheet from the terminal: topics hold
// sections, sections hold problems, and problems are ticked off as solved.
package main

import (
	"fmt"
	"os"
)

func main() {
	cli := NewCLI()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
