// Package main provides the entry point for the wingman CLI tool.
// It delegates execution to the cmd package to keep entry logic separate
// from command implementation details.
package main

import (
	"wingman/cmd"
)

func main() {
	cmd.Execute()
}
