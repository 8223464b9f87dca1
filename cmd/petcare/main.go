// Package main is the entry point for the petcare CLI.
package main

import "github.com/petcarehq/petcare-cli/internal/cli"

func main() {
	cli.Execute()
}
