// Command quadstore is a thin CLI exercising the storage façade: open a
// store, insert quads, scan patterns, manage named graphs, flush, and
// report the on-disk layout version. It is a runnable example, not part of
// the engine's durable contract.
package main

import (
	"fmt"
	"os"

	"github.com/oxicore/quadstore/cmd/quadstore/command"
)

func main() {
	if err := command.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
