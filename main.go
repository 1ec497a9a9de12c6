// The main package for the projectmeta executable.
package main

import (
	"projectmeta/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
