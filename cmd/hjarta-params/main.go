// Command hjarta-params loads parameter files and override rules into a
// parameter tree, then dumps it, queries it, or serves it over HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	command := NewDefaultRootCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hjarta-params: Error: %s\n", err)
		os.Exit(1)
	}
}
