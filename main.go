// The main package for the spiderling executable.
package main

import (
	"github.com/mdevereaux/spiderling/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
