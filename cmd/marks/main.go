// Package main is the entry point for the marks CLI.
package main

import (
	"os"

	"github.com/runger/marks/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
