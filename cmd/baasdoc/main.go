// Package main is the entry point for the baasdoc CLI.
package main

import (
	"fmt"
	"os"

	"github.com/vitalvas/baasdoc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
