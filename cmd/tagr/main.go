// Package main is the entry point for the tagr CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/tagr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
