// Package main is the entry point for the tdd-guard-rust CLI.
package main

import (
	"os"

	"github.com/tddguard/cargo-reporter/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
