// Command gtconstants is a debugging tool for Gametime constants configuration. It resolves keys the
// same way the client does and can run a single remote sync to show what the remote document would
// change.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
