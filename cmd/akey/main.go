// Package main is the entry point for the akey CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/autokey/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
