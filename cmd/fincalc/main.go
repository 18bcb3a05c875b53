// Command fincalc runs buy vs rent and compound interest projections from the command
// line, from YAML scenario files, or as a metered HTTP API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
