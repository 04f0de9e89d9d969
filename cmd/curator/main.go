// Command curator is the offline companion of the API server: it encodes and
// decodes share links, inspects and migrates stored exhibitions, browses
// galleries and seeds sample data.
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
