package main

import (
	"os"

	"github.com/gridsix/g6/cmd/g6/commands"
)

// main is the entry point for the g6 CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
