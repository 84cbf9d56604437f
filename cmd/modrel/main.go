/*
Package main provides the CLI entry point for modrel.
*/
package main

import (
	"os"

	"github.com/oarkflow/modrel/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
